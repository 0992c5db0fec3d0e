package plaintext

import (
	"io"

	"github.com/npillmayer/weft/core/codepoint"
	"github.com/npillmayer/weft/engine/weft"
)

// Pack reads plain text from r and writes it as a WEFT to w.
// An optional leading BOM is stripped and not re-emitted.
func Pack(r io.Reader, w io.Writer) error {
	in := codepoint.NewLineReader(r)
	out := weft.NewWriter(w)
	defer out.Discard()
	lines := 0
	for {
		line, err := in.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := out.WriteLine(Split(line)); err != nil {
			return err
		}
		lines++
	}
	tracer().Debugf("packed %d plain text line(s)", lines)
	return out.Close()
}

// Split decomposes one line into its tuple: leading whitespace, then
// alternating content words and whitespace runs.
func Split(line []rune) weft.Tuple {
	tuple := make(weft.Tuple, 0, 8)
	pos := 0
	for pos < len(line) {
		start := pos
		for pos < len(line) && isBlank(line[pos]) {
			pos++
		}
		if len(tuple)%2 == 0 { // a skip run is due
			tuple = append(tuple, string(line[start:pos]))
			continue
		}
		pos = start
		for pos < len(line) && !isBlank(line[pos]) {
			pos++
		}
		tuple = append(tuple, string(line[start:pos]))
	}
	if len(tuple)%2 == 0 { // close with a trailing, possibly empty skip
		tuple = append(tuple, "")
	}
	if len(tuple) == 0 {
		tuple = append(tuple, "")
	}
	return tuple
}

func isBlank(c rune) bool {
	return c == ' ' || c == '\t'
}
