/*
Package codepoint provides codepoint-oriented I/O on UTF-8 byte streams.

Input is decoded to Unicode scalar values and split into lines at LF or
CRLF; a single leading byte-order mark is stripped. Output is UTF-8
without a BOM, with LF as the only line terminator. All counting in this module
is in codepoints, never in bytes or UTF-16 units.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package codepoint

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'weft.codepoint'.
func tracer() tracing.Trace {
	return tracing.Select("weft.codepoint")
}
