/*
Package jsonout renders the parsed lines of a WEFT as JSON, for
diagnostics.

The output is an array of arrays: one inner array per body line,
holding the line's tuple strings. Escaping is pinned down to the
codepoint: dedicated short escapes where JSON defines them, \uXXXX for
the remaining control codes, surrogate pairs for supplementary
codepoints. The stdlib JSON encoder is bypassed since its escaping
policy differs.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package jsonout

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/weft/core"
	"github.com/npillmayer/weft/engine/weft"
)

// tracer traces with key 'weft.backend'.
func tracer() tracing.Trace {
	return tracing.Select("weft.backend")
}

// Emit reads a WEFT from r and writes its JSON representation to w.
func Emit(r io.Reader, w io.Writer) error {
	in, err := weft.NewReader(r)
	if err != nil {
		return err
	}
	defer in.Close()
	out := bufio.NewWriter(w)
	if _, err := out.WriteString("[\n"); err != nil {
		return core.WrapError(err, core.EIO, "writing JSON")
	}
	first := true
	for {
		tuple, err := in.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if !first {
			if _, err := out.WriteString(",\n"); err != nil {
				return core.WrapError(err, core.EIO, "writing JSON")
			}
		}
		first = false
		if _, err := out.WriteString(encodeTuple(tuple)); err != nil {
			return core.WrapError(err, core.EIO, "writing JSON")
		}
	}
	if _, err := out.WriteString("\n]\n"); err != nil {
		return core.WrapError(err, core.EIO, "writing JSON")
	}
	tracer().Debugf("emitted %d line(s) as JSON", in.LineCount())
	if err := out.Flush(); err != nil {
		return core.WrapError(err, core.EIO, "writing JSON")
	}
	return nil
}

func encodeTuple(t weft.Tuple) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, s := range t {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(Quote(s))
	}
	sb.WriteByte(']')
	return sb.String()
}

// Quote renders s as a JSON string literal. Backslash and double quote
// get their dedicated escapes, as do BS, FF, LF, CR and HT; all other
// control codes (and DEL) become \uXXXX. Supplementary codepoints are
// written as surrogate pairs.
func Quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range s {
		switch {
		case c == '"':
			sb.WriteString(`\"`)
		case c == '\\':
			sb.WriteString(`\\`)
		case c == 0x08:
			sb.WriteString(`\b`)
		case c == 0x0C:
			sb.WriteString(`\f`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c < 0x20 || c == 0x7F:
			fmt.Fprintf(&sb, `\u%04X`, c)
		case c > 0xFFFF:
			hi := 0xD800 + ((c - 0x10000) >> 10)
			lo := 0xDC00 + ((c - 0x10000) & 0x3FF)
			fmt.Fprintf(&sb, `\u%04X\u%04X`, hi, lo)
		default:
			sb.WriteRune(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
