/*
Package hyphen marks hyphenation opportunities in the content words of
a WEFT.

Every linguistic word is decided exactly once per run: the decision is
looked up in a per-run cache, then in an optional specialized word
list, and finally computed from a TeX pattern set. Hyphen points are
inserted as soft hyphens (U+00AD). The cache can be exported as a
sorted word list with grave accents marking the hyphen points.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package hyphen

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'weft.hyphen'.
func tracer() tracing.Trace {
	return tracing.Select("weft.hyphen")
}
