package markup

import (
	"strconv"
	"strings"

	"github.com/npillmayer/weft/core"
	"github.com/npillmayer/weft/core/codepoint"
	"github.com/npillmayer/weft/input/markup/entities"
)

// Entity failure modes.
var (
	ErrEntityUnknown = core.Error(core.EFORMAT, "unknown or malformed entity reference")
	ErrEntityInvalid = core.Error(core.EFORMAT, "entity expands to an invalid codepoint")
	ErrAmpersandTag  = core.Error(core.EFORMAT, "raw '&' inside tag text")
)

// decodeEntities rewrites all character and entity references in text
// to the codepoints they denote. Maximal runs without '&' pass through
// as literals; every '&' must open a reference '&name;' with name drawn
// from [A-Za-z0-9#]. Decoding is a pure function of the text; it never
// touches the tokenizer's cursor.
func decodeEntities(text []rune) ([]rune, error) {
	amp := -1
	for i, c := range text {
		if c == '&' {
			amp = i
			break
		}
	}
	if amp < 0 {
		return text, nil
	}
	decoded := make([]rune, 0, len(text))
	pos := 0
	for pos < len(text) {
		c := text[pos]
		if c != '&' {
			decoded = append(decoded, c)
			pos++
			continue
		}
		end := pos + 1
		for end < len(text) && isNameRune(text[end]) {
			end++
		}
		if end == pos+1 || end >= len(text) || text[end] != ';' {
			return nil, core.WrapError(ErrEntityUnknown, core.EFORMAT,
				"entity reference %q is not terminated", string(text[pos:end]))
		}
		seq, err := expand(string(text[pos+1 : end]))
		if err != nil {
			return nil, err
		}
		decoded = append(decoded, seq...)
		pos = end + 1
	}
	return decoded, nil
}

func isNameRune(c rune) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '#'
}

// expand resolves one reference name to its codepoint sequence and
// validates every resulting codepoint.
func expand(name string) ([]rune, error) {
	var seq []rune
	if strings.HasPrefix(name, "#") {
		c, err := expandNumeric(name[1:])
		if err != nil {
			return nil, err
		}
		seq = []rune{c}
	} else {
		var ok bool
		if seq, ok = entities.Lookup(name); !ok {
			return nil, core.WrapError(ErrEntityUnknown, core.EFORMAT,
				"no entity named %q", name)
		}
	}
	for _, c := range seq {
		if !codepoint.ValidXML(c) {
			return nil, core.WrapError(ErrEntityInvalid, core.EFORMAT,
				"entity &%s; expands to invalid codepoint U+%04X", name, c)
		}
	}
	return seq, nil
}

// expandNumeric decodes the digits of '&#DIGITS;' or '&#xHEX;'.
func expandNumeric(digits string) (rune, error) {
	base := 10
	if strings.HasPrefix(digits, "x") || strings.HasPrefix(digits, "X") {
		base = 16
		digits = digits[1:]
	}
	n, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, core.WrapError(ErrEntityUnknown, core.EFORMAT,
			"bad numeric character reference &#%s;", digits)
	}
	if n > 0x10FFFF {
		return 0, core.WrapError(ErrEntityInvalid, core.EFORMAT,
			"numeric character reference &#%s; exceeds Unicode", digits)
	}
	return rune(n), nil
}

// reescape re-encodes the characters which are unsafe at the given
// location: '&', '<' and '>' everywhere, plus the quote character that
// would end the surrounding attribute value.
func reescape(text []rune, loc Location) string {
	var sb strings.Builder
	for _, c := range text {
		switch {
		case c == '&':
			sb.WriteString("&amp;")
		case c == '<':
			sb.WriteString("&lt;")
		case c == '>':
			sb.WriteString("&gt;")
		case c == '\'' && loc == LocTagAttSQ:
			sb.WriteString("&apos;")
		case c == '"' && loc == LocTagAttDQ:
			sb.WriteString("&quot;")
		default:
			sb.WriteRune(c)
		}
	}
	return sb.String()
}
