package weft

import (
	"fmt"
	"io"

	"github.com/npillmayer/weft/core"
	"github.com/npillmayer/weft/core/codepoint"
)

// A Writer collects per-line tuples and emits a complete WEFT on
// Close: signature, declaration, all map records, the EOF record, then
// all body lines. Map records never interleave with body lines in the
// output.
//
// Both streams are buffered through spills, so a writer can accept
// inputs larger than memory.
type Writer struct {
	out       io.Writer
	maps      *spill
	body      *spill
	recCount  int
	lineCount int
	closed    bool
}

// NewWriter prepares a writer emitting to w on Close.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		out:  w,
		maps: newSpill(),
		body: newSpill(),
	}
}

// WriteLine buffers one body line given as a tuple. The tuple must have
// odd length, non-empty content words at the odd indexes, and no
// element may contain CR, LF or a surrogate.
func (w *Writer) WriteLine(t Tuple) error {
	if w.closed {
		return core.Error(core.EINVALID, "writer is closed")
	}
	if err := t.check(); err != nil {
		return err
	}
	n := len(t) / 2 // number of content words
	if n == 0 {
		if err := w.putRecord(Record{Op: NL, Skip: codepoint.Count(t[0])}); err != nil {
			return err
		}
	} else {
		rec := Record{Op: NL, Skip: codepoint.Count(t[0]), Read: codepoint.Count(t[1])}
		if err := w.putRecord(rec); err != nil {
			return err
		}
		for k := 1; k < n; k++ {
			rec = Record{Op: W, Skip: codepoint.Count(t[2*k]), Read: codepoint.Count(t[2*k+1])}
			if err := w.putRecord(rec); err != nil {
				return err
			}
		}
		if err := w.putRecord(Record{Op: W, Skip: codepoint.Count(t[2*n])}); err != nil {
			return err
		}
	}
	if err := w.body.writeLine(t.Line()); err != nil {
		return err
	}
	w.lineCount++
	return nil
}

func (w *Writer) putRecord(rec Record) error {
	w.recCount++
	return w.maps.writeLine(rec.String())
}

// Discard releases the writer's buffers without emitting anything.
// A no-op after Close; callers defer it so an aborted run cannot leave
// a spill file behind.
func (w *Writer) Discard() {
	if w.closed {
		return
	}
	w.closed = true
	w.maps.release()
	w.body.release()
}

// Close emits the buffered container and releases all internal storage.
// Close is idempotent; the spills are released even when emission
// fails.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	defer w.maps.release()
	defer w.body.release()
	if w.lineCount == 0 {
		return core.Error(core.EINVALID, "a WEFT needs at least one body line")
	}
	tracer().Debugf("emitting WEFT with %d map record(s), %d body line(s)",
		w.recCount+1, w.lineCount)
	lw := codepoint.NewLineWriter(w.out)
	if err := lw.WriteLine(Signature); err != nil {
		return err
	}
	if err := lw.WriteLine(fmt.Sprintf("%d,%d", w.recCount+1, w.lineCount)); err != nil {
		return err
	}
	if err := drain(w.maps, lw); err != nil {
		return err
	}
	if err := lw.WriteLine(Record{Op: EOF}.String()); err != nil {
		return err
	}
	if err := drain(w.body, lw); err != nil {
		return err
	}
	return lw.Flush()
}

func drain(sp *spill, lw *codepoint.LineWriter) error {
	if err := sp.rewind(); err != nil {
		return err
	}
	for {
		line, ok, err := sp.readLine()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := lw.WriteLine(line); err != nil {
			return err
		}
	}
}
