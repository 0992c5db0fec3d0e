/*
Package markup packages XML/HTML text as a WEFT.

A line-spanning state machine classifies every codepoint into one of
eleven locations. Content words are emitted from raw character data
only; tags, comments, CDATA sections, doctypes and processing
instructions accumulate into the skip runs surrounding the words.
Character and entity references are decoded inside character data,
tags and quoted attribute values, then re-escaped so the emitted text
stays well-formed markup.

The machine can start in any of its eleven locations, so document
fragments beginning mid-markup can be processed.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package markup

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'weft.markup'.
func tracer() tracing.Trace {
	return tracing.Select("weft.markup")
}
