/*
Package weft implements the WEFT container: a framed package combining
a warp map and the original text body.

A WEFT file starts with a signature line and a declaration line, then
carries all map records, then all body lines. The map describes every
body line as an alternating sequence of skip runs and content words,
counted in codepoints. Readers decode the container into per-line
tuples (skip, word, skip, …, skip); writers accept such tuples and emit
a complete container on close. Filters between the two never need to
know the original file format.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package weft

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'weft.container'.
func tracer() tracing.Trace {
	return tracing.Select("weft.container")
}
