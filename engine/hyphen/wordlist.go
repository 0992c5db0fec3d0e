package hyphen

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/emirpasic/gods/maps/treemap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/npillmayer/weft/core"
	"github.com/npillmayer/weft/core/codepoint"
)

// LoadWordList reads a specialized word list: one word per line, grave
// accents marking the hyphen points. Entries are NFC-normalized after
// trimming; a grave accent must sit strictly between two non-grave
// codepoints. Keys are the words without graves, values carry soft
// hyphens instead; duplicate entries must agree.
func LoadWordList(r io.Reader) (map[string]string, error) {
	in := codepoint.NewLineReader(r)
	list := make(map[string]string)
	lineno := 0
	for {
		line, err := in.ReadLine()
		if err == io.EOF {
			tracer().Infof("specialized list with %d entry/entries", len(list))
			return list, nil
		}
		if err != nil {
			return nil, err
		}
		lineno++
		entry := strings.Trim(string(line), " \t")
		if entry == "" {
			continue
		}
		key, value, err := splitEntry(norm.NFC.String(entry))
		if err != nil {
			return nil, core.WrapError(err, core.EINVALID, "word list line %d: %q", lineno, entry)
		}
		if known, ok := list[key]; ok && known != value {
			return nil, core.WrapError(ErrWordSyntax, core.EINVALID,
				"word list line %d: %q disagrees with an earlier entry", lineno, entry)
		}
		list[key] = value
	}
}

// splitEntry turns a grave-marked entry into its cache key and value.
func splitEntry(entry string) (string, string, error) {
	rs := []rune(entry)
	if rs[0] == GraveAccent || rs[len(rs)-1] == GraveAccent {
		return "", "", core.WrapError(ErrWordSyntax, core.EINVALID,
			"grave accent at word edge")
	}
	key := make([]rune, 0, len(rs))
	value := make([]rune, 0, len(rs))
	prevGrave := false
	for _, c := range rs {
		if c == GraveAccent {
			if prevGrave {
				return "", "", core.WrapError(ErrWordSyntax, core.EINVALID,
					"adjacent grave accents")
			}
			prevGrave = true
			value = append(value, SoftHyphen)
			continue
		}
		prevGrave = false
		key = append(key, c)
		value = append(value, c)
	}
	return string(key), string(value), nil
}

// WriteWordList exports the run's cache as a word list: soft hyphens
// rendered as grave accents, one word per line. The list is ordered by
// descending codepoint length (graves not counted) and, within one
// length, by the Unicode Collation Algorithm.
func (h *Hyphenator) WriteWordList(w io.Writer) error {
	coll := collate.New(language.Und)
	byLength := func(a, b interface{}) int {
		ka, kb := a.(string), b.(string)
		if la, lb := utf8.RuneCountInString(ka), utf8.RuneCountInString(kb); la != lb {
			return lb - la
		}
		if c := coll.CompareString(ka, kb); c != 0 {
			return c
		}
		return strings.Compare(ka, kb)
	}
	sorted := treemap.NewWith(byLength)
	for key, value := range h.cache {
		sorted.Put(key, value)
	}
	out := codepoint.NewLineWriter(w)
	var werr error
	sorted.Each(func(key, value interface{}) {
		if werr != nil {
			return
		}
		line := strings.ReplaceAll(value.(string), string(SoftHyphen), string(GraveAccent))
		werr = out.WriteLine(line)
	})
	if werr != nil {
		return werr
	}
	return out.Flush()
}
