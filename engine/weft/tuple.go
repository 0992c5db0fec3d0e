package weft

import (
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/weft/core"
)

// A Tuple is the decoded form of one body line: an odd-length sequence
// of strings S0, W1, S1, …, WN, SN. Even indexes hold skip runs (which
// may be empty), odd indexes hold content words (which are non-empty).
// A line without content words is a single-element tuple holding the
// whole line.
type Tuple []string

// Words returns the content words of the tuple, in order.
func (t Tuple) Words() []string {
	words := make([]string, 0, len(t)/2)
	for i := 1; i < len(t); i += 2 {
		words = append(words, t[i])
	}
	return words
}

// Line reassembles the body line the tuple was sliced from.
func (t Tuple) Line() string {
	var sb strings.Builder
	for _, s := range t {
		sb.WriteString(s)
	}
	return sb.String()
}

// check verifies the tuple preconditions of the writer protocol: odd
// length, non-empty words at odd indexes, and no CR, LF or encoding
// garbage in any element.
func (t Tuple) check() error {
	if len(t) == 0 || len(t)%2 == 0 {
		return core.Error(core.EINVALID, "tuple length must be odd, have %d", len(t))
	}
	for i, s := range t {
		if i%2 == 1 && s == "" {
			return core.Error(core.EINVALID, "content word at tuple index %d is empty", i)
		}
		if !utf8.ValidString(s) {
			return core.Error(core.EENCODING, "tuple element %d is not valid UTF-8", i)
		}
		if strings.ContainsAny(s, "\r\n") {
			return core.Error(core.EENCODING, "tuple element %d contains a line terminator", i)
		}
	}
	return nil
}
