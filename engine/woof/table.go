package woof

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/derekparker/trie"

	"github.com/npillmayer/weft/core"
)

// Woof failure modes.
var (
	ErrSyntax    = core.Error(core.EFORMAT, "malformed Woof table")
	ErrAmbiguous = core.Error(core.EFORMAT, "Woof key is a prefix of another key")
)

// A Table is a loaded Woof escape table: the escape lead plus a
// prefix-free key index.
type Table struct {
	lead   rune
	keys   *trie.Trie // escape key -> replacement string
	maxKey int
	count  int
}

// Lead returns the table's escape lead character.
func (t *Table) Lead() rune {
	return t.lead
}

// LoadTable reads a Woof table: a header line holding the escape lead
// ('H' standing in for '#'), then one 'hex(,hex)*:key' record per
// line. Blank lines are skipped; '#' introduces a comment at the line
// start or after whitespace. Key uniqueness and prefix-freedom are
// enforced here.
func LoadTable(r io.Reader) (*Table, error) {
	table := &Table{keys: trie.New()}
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line, err := asciiLine(scanner.Text(), lineno)
		if err != nil {
			return nil, err
		}
		if line == "" {
			continue
		}
		if table.lead == 0 {
			if err := table.setLead(line, lineno); err != nil {
				return nil, err
			}
			continue
		}
		if err := table.addRecord(line, lineno); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, core.WrapError(err, core.EIO, "reading Woof table")
	}
	if table.lead == 0 {
		return nil, core.WrapError(ErrSyntax, core.EFORMAT, "Woof table lacks a header")
	}
	tracer().Infof("Woof table: lead %q, %d key(s)", table.lead, table.count)
	return table, nil
}

// asciiLine checks the US-ASCII requirement and strips comments: a '#'
// at the line start or preceded by whitespace opens a comment.
func asciiLine(s string, lineno int) (string, error) {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return "", core.WrapError(ErrSyntax, core.EFORMAT,
				"Woof table line %d is not US-ASCII", lineno)
		}
		if s[i] == '#' && (i == 0 || s[i-1] == ' ' || s[i-1] == '\t') {
			s = s[:i]
			break
		}
	}
	return strings.Trim(s, " \t"), nil
}

func (t *Table) setLead(line string, lineno int) error {
	if len(line) != 1 {
		return core.WrapError(ErrSyntax, core.EFORMAT,
			"Woof header line %d must hold a single character", lineno)
	}
	lead := rune(line[0])
	if lead == 'H' { // 'H' stands in for '#', which would open a comment
		lead = '#'
	}
	if lead <= 0x20 || lead >= 0x7F || isAlphanumeric(lead) {
		return core.WrapError(ErrSyntax, core.EFORMAT,
			"escape lead %q must be printable ASCII and not alphanumeric", lead)
	}
	t.lead = lead
	return nil
}

func isAlphanumeric(c rune) bool {
	return c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z'
}

func (t *Table) addRecord(line string, lineno int) error {
	colon := strings.IndexByte(line, ':')
	if colon <= 0 || colon == len(line)-1 {
		return core.WrapError(ErrSyntax, core.EFORMAT,
			"Woof record line %d needs 'hex(,hex)*:key'", lineno)
	}
	var value strings.Builder
	for _, hex := range strings.Split(line[:colon], ",") {
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || n > 0x10FFFF {
			return core.WrapError(ErrSyntax, core.EFORMAT,
				"Woof record line %d: bad codepoint %q", lineno, hex)
		}
		value.WriteRune(rune(n))
	}
	key := line[colon+1:]
	for i := 0; i < len(key); i++ {
		if key[i] <= 0x20 || key[i] >= 0x7F {
			return core.WrapError(ErrSyntax, core.EFORMAT,
				"Woof key %q on line %d is not visible ASCII", key, lineno)
		}
	}
	if t.keys.HasKeysWithPrefix(key) {
		return core.WrapError(ErrAmbiguous, core.EFORMAT,
			"Woof key %q on line %d collides with an earlier key", key, lineno)
	}
	for i := 1; i < len(key); i++ {
		if _, ok := t.keys.Find(key[:i]); ok {
			return core.WrapError(ErrAmbiguous, core.EFORMAT,
				"Woof key %q on line %d extends the earlier key %q", key, lineno, key[:i])
		}
	}
	t.keys.Add(key, value.String())
	if len(key) > t.maxKey {
		t.maxKey = len(key)
	}
	t.count++
	return nil
}
