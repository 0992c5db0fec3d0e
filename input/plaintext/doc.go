/*
Package plaintext packages plain UTF-8 text as a WEFT.

Content words are maximal runs of codepoints outside {SP, HT, CR, LF};
everything between them becomes skip runs. A completely empty input
still produces a single, empty body line.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package plaintext

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'weft.input'.
func tracer() tracing.Trace {
	return tracing.Select("weft.input")
}
