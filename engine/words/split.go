package words

import (
	"io"
	"unicode"

	"github.com/npillmayer/weft/engine/weft"
)

// Contextual apostrophes are parked on private-use sentinels while the
// word is cut into letter and non-letter runs, then restored.
const (
	sentinelApostrophe = '\uE000'
	sentinelRightQuote = '\uE001'
)

// Apply reads a WEFT from r, splits every content word, and writes the
// reshaped WEFT to w.
func Apply(r io.Reader, w io.Writer) error {
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
		if err := out.WriteLine(Reshape(tuple)); err != nil {
			return err
		}
	}
	tracer().Debugf("split %d line(s)", in.LineCount())
	return out.Close()
}

// Reshape substitutes every content word of the tuple by its split
// expansion, with empty skip runs between adjacent sub-words.
func Reshape(t weft.Tuple) weft.Tuple {
	out := make(weft.Tuple, 0, len(t))
	out = append(out, t[0])
	for i := 1; i < len(t); i += 2 {
		for j, piece := range SplitWord(t[i]) {
			if j > 0 {
				out = append(out, "")
			}
			out = append(out, piece)
		}
		out = append(out, t[i+1])
	}
	return out
}

// SplitWord cuts one content word into its alternating linguistic and
// non-linguistic pieces. All pieces are non-empty and concatenate back
// to the word; a word that is one single piece is returned as such.
func SplitWord(word string) []string {
	rs := []rune(word)
	work := make([]rune, len(rs))
	for i, c := range rs {
		work[i] = c
		if c != '\'' && c != '’' {
			continue
		}
		if i > 0 && i < len(rs)-1 && letterish(rs[i-1]) && letterish(rs[i+1]) {
			if c == '\'' {
				work[i] = sentinelApostrophe
			} else {
				work[i] = sentinelRightQuote
			}
		}
	}
	var pieces []string
	pos := 0
	for pos < len(work) {
		start := pos
		linguistic := letterlike(work[pos])
		for pos < len(work) && letterlike(work[pos]) == linguistic {
			pos++
		}
		pieces = append(pieces, string(rs[start:pos])) // original runes: sentinels restored
	}
	return pieces
}

func letterish(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsMark(c)
}

func letterlike(c rune) bool {
	return letterish(c) || c == sentinelApostrophe || c == sentinelRightQuote
}
