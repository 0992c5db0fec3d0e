/*
Package texpat compiles TeX hyphenation pattern files into a lookup
structure answering, for a given word, the list of legal hyphenation
offsets.

Patterns follow Frank Liang's scheme: inter-letter digits carry break
weights, odd merged weights permit a break. Pattern files are enclosed
in a \patterns{…} block; \hyphenation{…} exception blocks are skipped
here. Historic pattern distributions predate UTF-8, so the loader
accepts a byte-encoding style per file.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package texpat

import (
	"bufio"
	"io"
	"strings"

	"github.com/derekparker/trie"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/encoding/charmap"

	"github.com/npillmayer/weft/core"
)

// tracer traces with key 'weft.hyphen'.
func tracer() tracing.Trace {
	return tracing.Select("weft.hyphen")
}

// A Style names the byte encoding of a TeX pattern file.
type Style int8

const (
	StyleUTF8   Style = iota // modern distributions
	StyleCzech               // ISO 8859-2
	StyleGerman              // ISO 8859-1
)

// ParseStyle resolves a style name as accepted on the command line.
func ParseStyle(name string) (Style, error) {
	switch name {
	case "utf8":
		return StyleUTF8, nil
	case "czech":
		return StyleCzech, nil
	case "german":
		return StyleGerman, nil
	}
	return StyleUTF8, core.Error(core.EINVALID, "unknown pattern style %q", name)
}

// Patterns is a compiled pattern set. The zero value is not usable;
// call Load.
type Patterns struct {
	index *trie.Trie // pattern sequence -> []int weights
	count int
}

// Load parses TeX pattern data from r, decoding bytes according to
// style, and compiles the patterns into a prefix index.
func Load(r io.Reader, style Style) (*Patterns, error) {
	switch style {
	case StyleCzech:
		r = charmap.ISO8859_2.NewDecoder().Reader(r)
	case StyleGerman:
		r = charmap.ISO8859_1.NewDecoder().Reader(r)
	}
	p := &Patterns{index: trie.New()}
	scanner := bufio.NewScanner(r)
	inPatterns := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		if strings.HasPrefix(line, "\\patterns{") {
			inPatterns = true
			line = line[len("\\patterns{"):]
		} else if strings.HasPrefix(line, "\\hyphenation{") {
			skipBlock(scanner, line[len("\\hyphenation{"):])
			continue
		} else if !inPatterns {
			continue
		}
		if pct := strings.IndexByte(line, '%'); pct >= 0 {
			line = line[:pct]
		}
		if done := strings.IndexByte(line, '}'); done >= 0 {
			line = line[:done]
			inPatterns = false
		}
		for _, token := range strings.Fields(line) {
			seq, weights := decodePattern(token)
			if len(seq) == 0 {
				continue
			}
			p.index.Add(string(seq), weights)
			p.count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, core.WrapError(err, core.EIO, "reading pattern file")
	}
	if inPatterns {
		return nil, core.Error(core.EFORMAT, "unclosed \\patterns block")
	}
	tracer().Infof("compiled %d hyphenation pattern(s)", p.count)
	return p, nil
}

// skipBlock discards lines until the close of a braced block.
func skipBlock(scanner *bufio.Scanner, rest string) {
	if strings.ContainsRune(rest, '}') {
		return
	}
	for scanner.Scan() {
		if strings.ContainsRune(scanner.Text(), '}') {
			return
		}
	}
}

// decodePattern splits a pattern token like "a5ban" into its rune
// sequence "aban" and a weight vector of length len(sequence)+1: the
// weight at index k sits before sequence position k.
func decodePattern(token string) ([]rune, []int) {
	var seq []rune
	var weights []int
	pending := 0
	for _, c := range token {
		if c >= '0' && c <= '9' {
			pending = int(c - '0')
			continue
		}
		seq = append(seq, c)
		weights = append(weights, pending)
		pending = 0
	}
	weights = append(weights, pending) // a trailing digit binds after the sequence
	return seq, weights
}

// Offsets returns the hyphenation offsets of word, ascending, in
// codepoints, strictly inside the word. Breaks closer than two
// codepoints to either edge are suppressed.
func (p *Patterns) Offsets(word string) []int {
	const (
		leftMin  = 2
		rightMin = 2
	)
	if p == nil || p.index == nil {
		return nil
	}
	dotted := []rune("." + word + ".")
	n := len(dotted)
	merged := make([]int, n+1)
	for i := 0; i < n; i++ {
		for j := i + 1; j <= n; j++ {
			sub := string(dotted[i:j])
			if node, ok := p.index.Find(sub); ok {
				if weights, ok := node.Meta().([]int); ok {
					for k, d := range weights {
						if d > merged[i+k] {
							merged[i+k] = d
						}
					}
				}
			}
			if !p.index.HasKeysWithPrefix(sub) {
				break
			}
		}
	}
	wlen := n - 2 // codepoints of the bare word
	var offsets []int
	for o := leftMin; o <= wlen-rightMin; o++ {
		if merged[o+1]%2 == 1 {
			offsets = append(offsets, o)
		}
	}
	return offsets
}
