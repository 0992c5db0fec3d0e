package markup

import (
	"io"
	"strings"

	"github.com/npillmayer/weft/core/codepoint"
	"github.com/npillmayer/weft/engine/weft"
)

// Pack reads markup text from r and writes it as a WEFT to w. The
// tokenizer starts in location start, which is LocChar for whole
// documents; fragments may resume from any other location.
func Pack(r io.Reader, w io.Writer, start Location) error {
	in := codepoint.NewLineReader(r)
	out := weft.NewWriter(w)
	defer out.Discard()
	tk := &tokenizer{loc: start}
	lines := 0
	for {
		line, err := in.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		tuple, err := tk.processLine(line)
		if err != nil {
			return err
		}
		if err := out.WriteLine(tuple); err != nil {
			return err
		}
		lines++
	}
	tracer().Debugf("packed %d markup line(s), final location %s", lines, tk.loc)
	return out.Close()
}

// The tokenizer threads a single line cursor and a growable skip buffer
// through each classification step. Its location survives line breaks;
// the skip buffer does not, since every tuple closes with the line.
type tokenizer struct {
	loc   Location
	tuple weft.Tuple
	skip  strings.Builder
}

// processLine classifies one input line and returns its tuple.
func (tk *tokenizer) processLine(line []rune) (weft.Tuple, error) {
	tk.tuple = make(weft.Tuple, 0, 8)
	pos := 0
	for pos < len(line) {
		var err error
		switch tk.loc {
		case LocChar:
			pos, err = tk.inChar(line, pos)
		case LocTag:
			pos, err = tk.inTag(line, pos)
		case LocTagAttSQ:
			pos, err = tk.inAttribute(line, pos, '\'', LocTagAttSQ)
		case LocTagAttDQ:
			pos, err = tk.inAttribute(line, pos, '"', LocTagAttDQ)
		case LocComment:
			pos = tk.inOpaque(line, pos, "-->")
		case LocCDATA:
			pos = tk.inOpaque(line, pos, "]]>")
		case LocDoctype:
			pos = tk.inDoctype(line, pos)
		case LocDoctypeAttSQ:
			pos = tk.inDoctypeAttribute(line, pos, '\'')
		case LocDoctypeAttDQ:
			pos = tk.inDoctypeAttribute(line, pos, '"')
		case LocPI, LocXMLDecl:
			pos = tk.inOpaque(line, pos, "?>")
		}
		if err != nil {
			return nil, err
		}
	}
	tk.tuple = append(tk.tuple, tk.skip.String())
	tk.skip.Reset()
	return tk.tuple, nil
}

// addWord flushes the pending skip run and appends one content word.
func (tk *tokenizer) addWord(word string) {
	tk.tuple = append(tk.tuple, tk.skip.String(), word)
	tk.skip.Reset()
}

// inChar consumes raw character data up to the next '<' or the end of
// the line. The decoded text splits into whitespace, which accumulates
// as skip, and content words.
func (tk *tokenizer) inChar(line []rune, pos int) (int, error) {
	end := pos
	for end < len(line) && line[end] != '<' {
		end++
	}
	decoded, err := decodeEntities(line[pos:end])
	if err != nil {
		return 0, err
	}
	i := 0
	for i < len(decoded) {
		start := i
		if decoded[i] == ' ' || decoded[i] == '\t' {
			for i < len(decoded) && (decoded[i] == ' ' || decoded[i] == '\t') {
				i++
			}
			tk.skip.WriteString(string(decoded[start:i]))
			continue
		}
		for i < len(decoded) && decoded[i] != ' ' && decoded[i] != '\t' {
			i++
		}
		tk.addWord(reescape(decoded[start:i], LocChar))
	}
	if end < len(line) {
		end = tk.openMarkup(line, end)
	}
	return end, nil
}

// openMarkup classifies the markup opener at line[pos] (a '<') and
// moves to the opened location. The opener itself joins the skip run.
func (tk *tokenizer) openMarkup(line []rune, pos int) int {
	rest := line[pos:]
	var width int
	switch {
	case hasFoldPrefix(rest, "<?xml"):
		tk.loc, width = LocXMLDecl, 5
	case hasPrefix(rest, "<?"):
		tk.loc, width = LocPI, 2
	case hasFoldPrefix(rest, "<!DOCTYPE"):
		tk.loc, width = LocDoctype, 9
	case hasPrefix(rest, "<![CDATA["):
		tk.loc, width = LocCDATA, 9
	case hasPrefix(rest, "<!--"):
		tk.loc, width = LocComment, 4
	default:
		tk.loc, width = LocTag, 1
	}
	tk.skip.WriteString(string(line[pos : pos+width]))
	tracer().Debugf("markup opener %q, entering %s", string(line[pos:pos+width]), tk.loc)
	return pos + width
}

func hasPrefix(text []rune, prefix string) bool {
	return strings.HasPrefix(string(text), prefix)
}

func hasFoldPrefix(text []rune, prefix string) bool {
	if len(text) < len(prefix) { // prefixes are ASCII
		return false
	}
	return strings.EqualFold(string(text[:len(prefix)]), prefix)
}

// inTag consumes tag text outside quoted attribute values. A raw '&'
// here is fatal; '<' and '>' in the text are re-encoded.
func (tk *tokenizer) inTag(line []rune, pos int) (int, error) {
	end := pos
	for end < len(line) && line[end] != '\'' && line[end] != '"' && line[end] != '>' {
		if line[end] == '&' {
			return 0, ErrAmpersandTag
		}
		end++
	}
	tk.skip.WriteString(reescape(line[pos:end], LocTag))
	if end < len(line) {
		switch line[end] {
		case '\'':
			tk.loc = LocTagAttSQ
		case '"':
			tk.loc = LocTagAttDQ
		case '>':
			tk.loc = LocChar
		}
		tk.skip.WriteRune(line[end])
		end++
	}
	return end, nil
}

// inAttribute consumes a quoted attribute value up to the closing
// quote. Entities decode here; the re-escape keeps the value from
// closing its own quotes.
func (tk *tokenizer) inAttribute(line []rune, pos int, quote rune, loc Location) (int, error) {
	end := pos
	for end < len(line) && line[end] != quote {
		end++
	}
	decoded, err := decodeEntities(line[pos:end])
	if err != nil {
		return 0, err
	}
	tk.skip.WriteString(reescape(decoded, loc))
	if end < len(line) {
		tk.loc = LocTag
		tk.skip.WriteRune(line[end])
		end++
	}
	return end, nil
}

// inOpaque consumes text without any decoding, up to a multi-character
// terminator. The terminator cannot span lines, a line break would
// interrupt it.
func (tk *tokenizer) inOpaque(line []rune, pos int, terminator string) int {
	term := []rune(terminator)
	idx := runeIndex(line[pos:], term)
	if idx < 0 {
		tk.skip.WriteString(string(line[pos:]))
		return len(line)
	}
	stop := pos + idx + len(term)
	tk.skip.WriteString(string(line[pos:stop]))
	tk.loc = LocChar
	return stop
}

// runeIndex finds the first occurrence of needle in haystack, counted
// in codepoints.
func runeIndex(haystack []rune, needle []rune) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// inDoctype consumes doctype text without decoding; quotes open the
// doctype literal locations, '>' returns to character data.
func (tk *tokenizer) inDoctype(line []rune, pos int) int {
	end := pos
	for end < len(line) && line[end] != '\'' && line[end] != '"' && line[end] != '>' {
		end++
	}
	tk.skip.WriteString(string(line[pos:end]))
	if end < len(line) {
		switch line[end] {
		case '\'':
			tk.loc = LocDoctypeAttSQ
		case '"':
			tk.loc = LocDoctypeAttDQ
		case '>':
			tk.loc = LocChar
		}
		tk.skip.WriteRune(line[end])
		end++
	}
	return end
}

// inDoctypeAttribute consumes a quoted doctype literal verbatim.
func (tk *tokenizer) inDoctypeAttribute(line []rune, pos int, quote rune) int {
	end := pos
	for end < len(line) && line[end] != quote {
		end++
	}
	tk.skip.WriteString(string(line[pos:end]))
	if end < len(line) {
		tk.loc = LocDoctype
		tk.skip.WriteRune(line[end])
		end++
	}
	return end
}
