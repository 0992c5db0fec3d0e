package weft

import (
	"io"
	"strings"

	"github.com/npillmayer/weft/core"
	"github.com/npillmayer/weft/core/codepoint"
)

// Signature is the first line of every WEFT file, possibly padded with
// trailing blanks.
const Signature = "%WEFT;"

// Reader failure modes.
var (
	ErrSignature   = core.Error(core.EFORMAT, "missing WEFT signature")
	ErrHeader      = core.Error(core.EFORMAT, "malformed WEFT declaration")
	ErrMapMismatch = core.Error(core.EFORMAT, "map does not match body")
	ErrTruncated   = core.Error(core.EFORMAT, "premature end of WEFT stream")
)

// A Reader decodes a WEFT container into per-line tuples.
//
// The map section precedes the body but may be arbitrarily large, so
// the reader buffers it in a spill, rewinds, and then serves map
// records and body lines in lock-step. The spill is released when the
// last line has been served, when NewReader fails, and on Close; an
// error from ReadLine leaves it to Close, which is safe after errors.
type Reader struct {
	in        *codepoint.LineReader
	maps      *spill
	lineCount int
	served    int
	closed    bool
	mapCopy   io.Writer
}

// Option configures a Reader.
type Option func(*Reader) error

// WithMapCopy makes the reader copy the raw map-record lines, LF
// terminated and including the final EOF record, to w while the map is
// buffered.
func WithMapCopy(w io.Writer) Option {
	return func(r *Reader) error {
		r.mapCopy = w
		return nil
	}
}

// NewReader opens a WEFT stream. The signature and declaration are
// validated and the map is buffered before NewReader returns.
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	rd := &Reader{
		in:   codepoint.NewLineReader(r),
		maps: newSpill(),
	}
	for _, opt := range opts {
		if err := opt(rd); err != nil {
			return nil, err
		}
	}
	if err := rd.accept(); err != nil {
		rd.maps.release()
		return nil, err
	}
	return rd, nil
}

func (r *Reader) accept() error {
	sig, err := r.in.ReadLine()
	if err != nil {
		if err == io.EOF {
			return core.WrapError(ErrTruncated, core.EFORMAT, "empty WEFT stream")
		}
		return err
	}
	if r.in.SawBOM() {
		return core.WrapError(codepoint.ErrEncoding, core.EENCODING,
			"a WEFT must not carry a byte-order mark")
	}
	line := string(sig)
	if !strings.HasPrefix(line, Signature) ||
		strings.TrimRight(line[len(Signature):], " \t") != "" {
		return core.WrapError(ErrSignature, core.EFORMAT, "not a WEFT stream")
	}
	decl, err := r.in.ReadLine()
	if err != nil {
		if err == io.EOF {
			return core.WrapError(ErrTruncated, core.EFORMAT, "WEFT ends before declaration")
		}
		return err
	}
	recLines, bodyLines, err := parseDeclaration(string(decl))
	if err != nil {
		return err
	}
	r.lineCount = bodyLines
	tracer().Debugf("accepting WEFT with %d map line(s), %d body line(s)", recLines, bodyLines)
	copyTo := r.mapCopy
	for i := 0; i < recLines; i++ {
		raw, err := r.in.ReadLine()
		if err != nil {
			if err == io.EOF {
				return core.WrapError(ErrTruncated, core.EFORMAT,
					"WEFT ends inside the map, record %d of %d", i+1, recLines)
			}
			return err
		}
		if err := r.maps.writeLine(string(raw)); err != nil {
			return err
		}
		if copyTo != nil {
			if _, err := io.WriteString(copyTo, string(raw)+"\n"); err != nil {
				return core.WrapError(err, core.EIO, "copying map records")
			}
		}
	}
	return r.maps.rewind()
}

// parseDeclaration decodes the 'N,M' declaration line: two unsigned
// decimal integers, optional trailing blanks.
func parseDeclaration(s string) (int, int, error) {
	body := strings.TrimRight(s, " \t")
	comma := strings.IndexByte(body, ',')
	if comma < 0 {
		return 0, 0, core.WrapError(ErrHeader, core.EFORMAT, "declaration %q lacks a comma", s)
	}
	recLines, err := parseCount(body[:comma])
	if err != nil {
		return 0, 0, core.WrapError(ErrHeader, core.EFORMAT, "bad map line count in %q", s)
	}
	bodyLines, err := parseCount(body[comma+1:])
	if err != nil {
		return 0, 0, core.WrapError(ErrHeader, core.EFORMAT, "bad body line count in %q", s)
	}
	if recLines < 1 || bodyLines < 1 {
		return 0, 0, core.WrapError(ErrHeader, core.EFORMAT,
			"a WEFT carries at least one map record and one body line")
	}
	return recLines, bodyLines, nil
}

// LineCount returns the number of body lines declared by the stream.
func (r *Reader) LineCount() int {
	return r.lineCount
}

// ReadLine serves the tuple of the next body line. After the last line
// it verifies and consumes the map's EOF record and releases internal
// storage; subsequent calls return io.EOF.
func (r *Reader) ReadLine() (Tuple, error) {
	if r.closed {
		return nil, core.Error(core.EINVALID, "reader is closed")
	}
	if r.served >= r.lineCount {
		return nil, io.EOF
	}
	body, err := r.in.ReadLine()
	if err != nil {
		if err == io.EOF {
			return nil, core.WrapError(ErrTruncated, core.EFORMAT,
				"WEFT ends after body line %d of %d", r.served, r.lineCount)
		}
		return nil, err
	}
	recs, err := r.gatherLineRecords()
	if err != nil {
		return nil, err
	}
	tuple, err := slice(body, recs)
	if err != nil {
		return nil, err
	}
	r.served++
	if r.served == r.lineCount {
		if err := r.consumeMapEOF(); err != nil {
			return nil, err
		}
	}
	return tuple, nil
}

// gatherLineRecords collects the record group of one body line: an NL,
// then W records, up to and including the first record with Read == 0.
func (r *Reader) gatherLineRecords() ([]Record, error) {
	var recs []Record
	for {
		raw, ok, err := r.maps.readLine()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, core.WrapError(ErrTruncated, core.EFORMAT,
				"map exhausted at body line %d", r.served+1)
		}
		rec, err := ParseRecord(raw)
		if err != nil {
			return nil, err
		}
		if rec.IsEOF() {
			return nil, core.WrapError(ErrMapMismatch, core.EFORMAT,
				"EOF record before body line %d", r.served+1)
		}
		if len(recs) == 0 && rec.Op != NL {
			return nil, core.WrapError(ErrMapMismatch, core.EFORMAT,
				"body line %d does not start with an NL record", r.served+1)
		}
		if len(recs) > 0 && rec.Op != W {
			return nil, core.WrapError(ErrMapMismatch, core.EFORMAT,
				"NL record inside body line %d", r.served+1)
		}
		recs = append(recs, rec)
		if rec.Read == 0 {
			return recs, nil
		}
	}
}

// slice cuts a body line into its tuple at the cumulative codepoint
// offsets given by the line's records.
func slice(body []rune, recs []Record) (Tuple, error) {
	total := 0
	for _, rec := range recs {
		total += rec.Skip + rec.Read
	}
	if total != len(body) {
		return nil, core.WrapError(ErrMapMismatch, core.EFORMAT,
			"map accounts for %d codepoints, body line has %d", total, len(body))
	}
	tuple := make(Tuple, 0, 2*len(recs)-1)
	pos := 0
	for i, rec := range recs {
		tuple = append(tuple, string(body[pos:pos+rec.Skip]))
		pos += rec.Skip
		if i < len(recs)-1 {
			tuple = append(tuple, string(body[pos:pos+rec.Read]))
			pos += rec.Read
		}
	}
	return tuple, nil
}

// consumeMapEOF checks that exactly one EOF record closes the map, then
// releases the spill.
func (r *Reader) consumeMapEOF() error {
	raw, ok, err := r.maps.readLine()
	if err != nil {
		return err
	}
	if !ok {
		return core.WrapError(ErrTruncated, core.EFORMAT, "map lacks its EOF record")
	}
	rec, err := ParseRecord(raw)
	if err != nil {
		return err
	}
	if !rec.IsEOF() {
		return core.WrapError(ErrMapMismatch, core.EFORMAT,
			"map continues past the last body line")
	}
	if _, ok, err = r.maps.readLine(); err != nil {
		return err
	} else if ok {
		return core.WrapError(ErrMapMismatch, core.EFORMAT, "map records after EOF record")
	}
	return r.maps.release()
}

// ReadAll drains the reader into a slice of tuples.
func (r *Reader) ReadAll() ([]Tuple, error) {
	tuples := make([]Tuple, 0, r.lineCount)
	for {
		tuple, err := r.ReadLine()
		if err == io.EOF {
			return tuples, nil
		}
		if err != nil {
			return nil, err
		}
		tuples = append(tuples, tuple)
	}
}

// Close releases internal storage. It is idempotent and safe to call
// after an error.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.maps.release()
}
