package codepoint

import (
	"bufio"
	"io"
	"unicode/utf8"

	"github.com/npillmayer/weft/core"
)

// ErrEncoding flags malformed UTF-8 input, a stray CR, or a misplaced
// byte-order mark.
var ErrEncoding = core.Error(core.EENCODING, "input is not well-formed UTF-8 text")

// A LineReader decodes a UTF-8 byte stream into lines of codepoints.
//
// Lines are terminated by LF or CRLF; the terminator is not part of the
// line. A CR not followed by LF is an encoding error. An empty trailing
// line is produced if and only if the input ends with a line terminator,
// or is completely empty.
type LineReader struct {
	in      *bufio.Reader
	atStart bool // BOM may still occur
	sawBOM  bool
	done    bool
}

// NewLineReader decodes input from r. A single leading U+FEFF is
// silently discarded.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{
		in:      bufio.NewReader(r),
		atStart: true,
	}
}

// SawBOM reports whether the input started with a byte-order mark.
// Container readers use this to reject BOMs which sources would accept.
func (r *LineReader) SawBOM() bool {
	return r.sawBOM
}

// ReadLine returns the next input line without its terminator.
// It returns io.EOF after the last line.
func (r *LineReader) ReadLine() ([]rune, error) {
	if r.done {
		return nil, io.EOF
	}
	var line []rune
	for {
		c, size, err := r.in.ReadRune()
		if err == io.EOF {
			r.done = true
			return line, nil
		}
		if err != nil {
			return nil, core.WrapError(err, core.EIO, "reading input stream")
		}
		if c == utf8.RuneError && size == 1 {
			return nil, core.WrapError(ErrEncoding, core.EENCODING, "invalid UTF-8 byte sequence")
		}
		if r.atStart {
			r.atStart = false
			if c == 0xFEFF {
				r.sawBOM = true
				continue
			}
		}
		switch c {
		case '\n':
			return line, nil
		case '\r':
			next, nsize, nerr := r.in.ReadRune()
			if nerr != nil || (next == utf8.RuneError && nsize == 1) || next != '\n' {
				return nil, core.WrapError(ErrEncoding, core.EENCODING, "CR not followed by LF")
			}
			return line, nil
		default:
			line = append(line, c)
		}
	}
}

// ReadAll collects all remaining lines.
func (r *LineReader) ReadAll() ([][]rune, error) {
	var lines [][]rune
	for {
		line, err := r.ReadLine()
		if err == io.EOF {
			tracer().Debugf("read %d input line(s)", len(lines))
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
}

// Count returns the number of codepoints in s.
func Count(s string) int {
	return utf8.RuneCountInString(s)
}
