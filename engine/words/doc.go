/*
Package words splits mixed content words into alternating linguistic
and non-linguistic sub-words.

A linguistic sub-word is a maximal run of Unicode Letter or Mark
codepoints; an apostrophe or right single quote joins such a run when
both its neighbours are Letter or Mark codepoints. Splitting a WEFT through this filter
reshapes its tuples but never changes the concatenated text of a line.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package words

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'weft.words'.
func tracer() tracing.Trace {
	return tracing.Select("weft.words")
}
