package codepoint

import (
	"bufio"
	"io"

	"github.com/npillmayer/weft/core"
)

// A LineWriter emits UTF-8 text: WriteLine terminates a line with LF,
// WriteString writes text without a terminator. No BOM is ever written; supplementary codepoints are emitted as a
// single UTF-8 sequence.
type LineWriter struct {
	out *bufio.Writer
}

func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{out: bufio.NewWriter(w)}
}

// WriteLine writes s followed by LF.
func (w *LineWriter) WriteLine(s string) error {
	if _, err := w.out.WriteString(s); err != nil {
		return core.WrapError(err, core.EIO, "writing output stream")
	}
	if err := w.out.WriteByte('\n'); err != nil {
		return core.WrapError(err, core.EIO, "writing output stream")
	}
	return nil
}

// WriteString writes s without a terminator.
func (w *LineWriter) WriteString(s string) error {
	if _, err := w.out.WriteString(s); err != nil {
		return core.WrapError(err, core.EIO, "writing output stream")
	}
	return nil
}

// Flush drains buffered output.
func (w *LineWriter) Flush() error {
	if err := w.out.Flush(); err != nil {
		return core.WrapError(err, core.EIO, "flushing output stream")
	}
	return nil
}
