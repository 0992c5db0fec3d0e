package hyphen

import (
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/npillmayer/weft/core"
	"github.com/npillmayer/weft/engine/hyphen/texpat"
	"github.com/npillmayer/weft/engine/weft"
)

// SoftHyphen marks a hyphen point inside a decided word.
const SoftHyphen = '\u00AD'

// GraveAccent marks a hyphen point in word-list files.
const GraveAccent = '`'

// ErrWordSyntax flags a word carrying codepoints a word must not
// contain: whitespace, line terminators, or a grave accent.
var ErrWordSyntax = core.Error(core.EINVALID, "malformed word")

// A Hyphenator holds the state of one hyphenation run: the cache, the
// optional specialized word list, and the optional pattern set. All
// lookups and decisions are keyed by NFC-normalized words.
type Hyphenator struct {
	cache    map[string]string
	special  map[string]string
	patterns *texpat.Patterns
}

// New creates a Hyphenator without a specialized list and without
// patterns; such a hyphenator decides every word as unhyphenated.
func New() *Hyphenator {
	return &Hyphenator{cache: make(map[string]string)}
}

// UseSpecial installs a specialized word list taking precedence over
// the pattern set.
func (h *Hyphenator) UseSpecial(list map[string]string) {
	h.special = list
}

// UsePatterns installs the TeX pattern fallback.
func (h *Hyphenator) UsePatterns(p *texpat.Patterns) {
	h.patterns = p
}

// Word decides one content word. Words without any Letter codepoint
// pass through unchanged; linguistic words come back NFC-normalized
// with soft hyphens at the decided break points.
func (h *Hyphenator) Word(word string) (string, error) {
	if !strings.ContainsFunc(word, unicode.IsLetter) {
		return word, nil
	}
	if strings.ContainsAny(word, " \t\r\n`") {
		return "", core.WrapError(ErrWordSyntax, core.EINVALID,
			"word %q contains whitespace or a grave accent", word)
	}
	key := norm.NFC.String(word)
	if decided, ok := h.cache[key]; ok {
		return decided, nil
	}
	decided, ok := h.special[key]
	if !ok {
		decided = key
		if offsets := h.patterns.Offsets(key); len(offsets) > 0 {
			decided = insertSoftHyphens(key, offsets)
		}
	}
	h.cache[key] = decided
	return decided, nil
}

// insertSoftHyphens places a soft hyphen before the codepoint at every
// offset. Offsets are ascending and strictly inside the word.
func insertSoftHyphens(word string, offsets []int) string {
	rs := []rune(word)
	out := make([]rune, 0, len(rs)+len(offsets))
	next := 0
	for i, c := range rs {
		if next < len(offsets) && offsets[next] == i {
			out = append(out, SoftHyphen)
			next++
		}
		out = append(out, c)
	}
	return string(out)
}

// Apply reads a WEFT from r, hyphenates every content word, and writes
// the result to w.
func (h *Hyphenator) Apply(r io.Reader, w io.Writer) error {
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
			if tuple[i], err = h.Word(tuple[i]); err != nil {
				return err
			}
		}
		if err := out.WriteLine(tuple); err != nil {
			return err
		}
	}
	tracer().Debugf("hyphenated %d line(s), %d cached decision(s)",
		in.LineCount(), len(h.cache))
	return out.Close()
}
