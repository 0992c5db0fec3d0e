package weft

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/weft/core"
)

// ErrMapSyntax flags a map record which does not follow the record
// grammar.
var ErrMapSyntax = core.Error(core.EFORMAT, "malformed map record")

// Op tags a map record.
type Op byte

// Map record operations. NL starts a body line, W continues it, EOF
// terminates the map.
const (
	NL  Op = '+'
	W   Op = '.'
	EOF Op = '$'
)

// A Record is one entry of the warp map: an operation together with a
// skip count and a read count, both in codepoints.
//
// The record sequence for one body line is exactly one NL followed by
// zero or more W records; the final record of a line has Read == 0, all
// intermediate records have Read > 0. A single all-zero EOF record
// terminates the full map.
type Record struct {
	Op   Op
	Skip int
	Read int
}

// IsEOF is true for the map-terminating record.
func (rec Record) IsEOF() bool {
	return rec.Op == EOF
}

// String formats a record the way it appears in a WEFT file.
func (rec Record) String() string {
	return fmt.Sprintf("%c%d,%d", rec.Op, rec.Skip, rec.Read)
}

// ParseRecord decodes one map record line (without its terminator).
// The grammar is: op, digits, ',', digits, optional trailing SP/HT.
// Integers are unsigned decimal and may have leading zeros.
func ParseRecord(s string) (Record, error) {
	if len(s) == 0 {
		return Record{}, core.WrapError(ErrMapSyntax, core.EFORMAT, "empty map record")
	}
	op := Op(s[0])
	if op != NL && op != W && op != EOF {
		return Record{}, core.WrapError(ErrMapSyntax, core.EFORMAT,
			"unknown map operation %q", s[0])
	}
	rest := strings.TrimRight(s[1:], " \t")
	comma := strings.IndexByte(rest, ',')
	if comma < 0 {
		return Record{}, core.WrapError(ErrMapSyntax, core.EFORMAT,
			"map record %q lacks a comma", s)
	}
	skip, err := parseCount(rest[:comma])
	if err != nil {
		return Record{}, err
	}
	read, err := parseCount(rest[comma+1:])
	if err != nil {
		return Record{}, err
	}
	if op == EOF && (skip != 0 || read != 0) {
		return Record{}, core.WrapError(ErrMapSyntax, core.EFORMAT,
			"EOF record %q must be all zero", s)
	}
	return Record{Op: op, Skip: skip, Read: read}, nil
}

// parseCount accepts unsigned decimal digits only: no sign, no spaces,
// leading zeros permitted.
func parseCount(s string) (int, error) {
	if len(s) == 0 {
		return 0, core.WrapError(ErrMapSyntax, core.EFORMAT, "empty integer in map record")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, core.WrapError(ErrMapSyntax, core.EFORMAT,
				"non-digit %q in map record integer", s[i])
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, core.WrapError(ErrMapSyntax, core.EFORMAT, "integer %q out of range", s)
	}
	return n, nil
}
