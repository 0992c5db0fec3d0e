package weft

import (
	"bufio"
	"io"
	"os"

	"github.com/npillmayer/weft/core"
)

// spillThreshold is the line count above which a spill moves from
// memory to a backing file.
const spillThreshold = 1 << 16

// A spill buffers lines sequentially: filled once, rewound once,
// drained once. Small spills live in memory; beyond spillThreshold the
// buffered lines move to a temporary file. Release is safe on every
// exit path and idempotent.
type spill struct {
	mem      []string
	pos      int
	file     *os.File
	w        *bufio.Writer
	r        *bufio.Reader
	released bool
}

func newSpill() *spill {
	return &spill{}
}

func (sp *spill) writeLine(s string) error {
	if sp.file == nil {
		sp.mem = append(sp.mem, s)
		if len(sp.mem) <= spillThreshold {
			return nil
		}
		if err := sp.migrate(); err != nil {
			return err
		}
		return nil
	}
	return sp.fput(s)
}

// migrate moves the in-memory buffer to a temp file.
func (sp *spill) migrate() error {
	f, err := os.CreateTemp("", "weft-spill-")
	if err != nil {
		return core.WrapError(err, core.EIO, "cannot create spill file")
	}
	tracer().Debugf("spill exceeds %d lines, moving to %s", spillThreshold, f.Name())
	sp.file = f
	sp.w = bufio.NewWriter(f)
	for _, line := range sp.mem {
		if err := sp.fput(line); err != nil {
			return err
		}
	}
	sp.mem = nil
	return nil
}

func (sp *spill) fput(s string) error {
	if _, err := sp.w.WriteString(s); err != nil {
		return core.WrapError(err, core.EIO, "writing spill file")
	}
	if err := sp.w.WriteByte('\n'); err != nil {
		return core.WrapError(err, core.EIO, "writing spill file")
	}
	return nil
}

// rewind switches the spill from filling to draining.
func (sp *spill) rewind() error {
	if sp.file == nil {
		sp.pos = 0
		return nil
	}
	if err := sp.w.Flush(); err != nil {
		return core.WrapError(err, core.EIO, "flushing spill file")
	}
	if _, err := sp.file.Seek(0, io.SeekStart); err != nil {
		return core.WrapError(err, core.EIO, "rewinding spill file")
	}
	sp.r = bufio.NewReader(sp.file)
	return nil
}

// readLine returns the next buffered line, or ok=false when drained.
func (sp *spill) readLine() (string, bool, error) {
	if sp.file == nil {
		if sp.pos >= len(sp.mem) {
			return "", false, nil
		}
		line := sp.mem[sp.pos]
		sp.pos++
		return line, true, nil
	}
	line, err := sp.r.ReadString('\n')
	if err == io.EOF {
		return "", false, nil
	}
	if err != nil {
		return "", false, core.WrapError(err, core.EIO, "reading spill file")
	}
	return line[:len(line)-1], true, nil
}

// release frees the spill's resources. Idempotent.
func (sp *spill) release() error {
	if sp.released {
		return nil
	}
	sp.released = true
	sp.mem = nil
	if sp.file == nil {
		return nil
	}
	name := sp.file.Name()
	err := sp.file.Close()
	if rmerr := os.Remove(name); err == nil {
		err = rmerr
	}
	if err != nil {
		return core.WrapError(err, core.EIO, "releasing spill file")
	}
	return nil
}
