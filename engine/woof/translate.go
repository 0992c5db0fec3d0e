package woof

import (
	"io"
	"strings"

	"github.com/npillmayer/weft/core"
	"github.com/npillmayer/weft/engine/weft"
)

// Translate replaces every escape sequence in word by the table's
// replacement text. Text between occurrences of the escape lead passes
// through; at each occurrence the shortest matching key wins. A lead
// followed by no matching key is fatal.
func (t *Table) Translate(word string) (string, error) {
	rs := []rune(word)
	var sb strings.Builder
	pos := 0
	for pos < len(rs) {
		if rs[pos] != t.lead {
			sb.WriteRune(rs[pos])
			pos++
			continue
		}
		matched := false
		for n := 1; n <= t.maxKey && pos+n < len(rs); n++ {
			candidate := string(rs[pos+1 : pos+1+n])
			if len(candidate) != n { // non-ASCII cannot be a key
				break
			}
			if node, ok := t.keys.Find(candidate); ok {
				sb.WriteString(node.Meta().(string))
				pos += 1 + n
				matched = true
				break
			}
		}
		if !matched {
			return "", core.WrapError(ErrSyntax, core.EFORMAT,
				"no escape sequence matches after %q in %q", t.lead, word)
		}
	}
	return sb.String(), nil
}

// Apply reads a WEFT from r, translates every content word, and writes
// the result to w.
func (t *Table) Apply(r io.Reader, w io.Writer) error {
	in, err := weft.NewReader(r)
	if err != nil {
		return err
	}
	defer in.Close()
	out := weft.NewWriter(w)
	defer out.Discard()
	for {
		tuple, err := in.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		for i := 1; i < len(tuple); i += 2 {
			if tuple[i], err = t.Translate(tuple[i]); err != nil {
				return err
			}
		}
		if err := out.WriteLine(tuple); err != nil {
			return err
		}
	}
	tracer().Debugf("translated %d line(s)", in.LineCount())
	return out.Close()
}
