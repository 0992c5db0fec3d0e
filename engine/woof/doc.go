/*
Package woof applies a user-supplied escape table to the content words
of a WEFT.

A Woof table names an escape lead character and maps short ASCII keys
to arbitrary codepoint sequences. Keys are unique and never a prefix of
one another, so scanning a word with a first-match policy is
unambiguous.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package woof

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'weft.woof'.
func tracer() tracing.Trace {
	return tracing.Select("weft.woof")
}
