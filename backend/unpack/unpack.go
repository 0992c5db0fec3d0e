/*
Package unpack reconstructs the original file from a WEFT.

The body lines come out exactly as a source packaged them, joined by
LF: the empty trailing body line of an LF-terminated original yields
exactly one final LF, and a last line without terminator stays
unterminated. The embedded map can be teed to a separate file for
diagnostics.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package unpack

import (
	"io"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/weft/core/codepoint"
	"github.com/npillmayer/weft/engine/weft"
)

// tracer traces with key 'weft.backend'.
func tracer() tracing.Trace {
	return tracing.Select("weft.backend")
}

// Unpack reads a WEFT from r and writes its reassembled body to w.
// When mapOut is non-nil, the embedded map records are additionally
// written there, one per line.
func Unpack(r io.Reader, w io.Writer, mapOut io.Writer) error {
	var opts []weft.Option
	if mapOut != nil {
		opts = append(opts, weft.WithMapCopy(mapOut))
	}
	in, err := weft.NewReader(r, opts...)
	if err != nil {
		return err
	}
	defer in.Close()
	out := codepoint.NewLineWriter(w)
	first := true
	for {
		tuple, err := in.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		// join with LF: the trailing empty body line of an
		// LF-terminated original must not grow an extra terminator
		if !first {
			if err := out.WriteString("\n"); err != nil {
				return err
			}
		}
		first = false
		if err := out.WriteString(tuple.Line()); err != nil {
			return err
		}
	}
	tracer().Debugf("unpacked %d body line(s)", in.LineCount())
	return out.Flush()
}
