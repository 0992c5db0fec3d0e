/*
Package entities maps HTML5 entity names, without the surrounding '&'
and ';', to their codepoint sequences.

Lookup is case-sensitive and covers the complete HTML5 set. The package
also reads and writes the table's compact distribution form: one
'name=hex1,hex2,…' mapping per line, sorted by name. The one-shot build
step producing that form from the W3C entity JSON lives outside this
module.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package entities

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/npillmayer/weft/core"
)

// Lookup resolves an entity name like "amp" or "AElig" to its codepoint
// sequence. Names are matched case-sensitively; every HTML5 entity
// expands to one or two codepoints.
//
// The resolution is delegated to the HTML5 reference table shipped with
// golang.org/x/net/html. Unescaping "&name;" there may also match a
// legacy, semicolon-less entity prefix of name; such a partial match
// leaves at least two spurious codepoints behind, so any result longer
// than two codepoints is a failed full-name match.
func Lookup(name string) ([]rune, bool) {
	if name == "" {
		return nil, false
	}
	ref := "&" + name + ";"
	expanded := html.UnescapeString(ref)
	if expanded == ref || utf8.RuneCountInString(expanded) > 2 {
		return nil, false
	}
	return []rune(expanded), true
}

// A Table is an explicit name-to-codepoints mapping in the compact
// distribution form.
type Table map[string][]rune

// ParseTable reads a distribution-form table: 'name=hex1,hex2,…' per
// line, blank lines ignored.
func ParseTable(r io.Reader) (Table, error) {
	table := make(Table)
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq <= 0 {
			return nil, core.Error(core.EFORMAT, "entity table line %d: missing '='", lineno)
		}
		name := line[:eq]
		var seq []rune
		for _, hex := range strings.Split(line[eq+1:], ",") {
			n, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return nil, core.WrapError(err, core.EFORMAT,
					"entity table line %d: bad codepoint %q", lineno, hex)
			}
			seq = append(seq, rune(n))
		}
		if len(seq) == 0 {
			return nil, core.Error(core.EFORMAT, "entity table line %d: empty expansion", lineno)
		}
		table[name] = seq
	}
	if err := scanner.Err(); err != nil {
		return nil, core.WrapError(err, core.EIO, "reading entity table")
	}
	return table, nil
}

// WriteTable emits the table in distribution form, sorted by name.
func (t Table) WriteTable(w io.Writer) error {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	bw := bufio.NewWriter(w)
	for _, name := range names {
		hexes := make([]string, len(t[name]))
		for i, c := range t[name] {
			hexes[i] = fmt.Sprintf("%X", c)
		}
		if _, err := fmt.Fprintf(bw, "%s=%s\n", name, strings.Join(hexes, ",")); err != nil {
			return core.WrapError(err, core.EIO, "writing entity table")
		}
	}
	if err := bw.Flush(); err != nil {
		return core.WrapError(err, core.EIO, "writing entity table")
	}
	return nil
}

// Lookup resolves a name against this explicit table.
func (t Table) Lookup(name string) ([]rune, bool) {
	seq, ok := t[name]
	return seq, ok
}
