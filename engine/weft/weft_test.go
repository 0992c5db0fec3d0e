package weft

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestRecordParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.container")
	defer teardown()
	//
	rec, err := ParseRecord("+0,3")
	assert.NoError(t, err)
	assert.Equal(t, Record{Op: NL, Skip: 0, Read: 3}, rec)
	rec, err = ParseRecord(".007,05 \t")
	assert.NoError(t, err)
	assert.Equal(t, Record{Op: W, Skip: 7, Read: 5}, rec)
	rec, err = ParseRecord("$0,0")
	assert.NoError(t, err)
	assert.True(t, rec.IsEOF())
	rec, err = ParseRecord("$00,000")
	assert.NoError(t, err)
	assert.True(t, rec.IsEOF())
}

func TestRecordParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.container")
	defer teardown()
	//
	for _, bad := range []string{
		"", "x1,2", "+1 ,2", "+,2", "+1,", "+1;2", "+1,2,3", "+ 1,2", "++1,2",
		"$0,1", "$1,0", "+-1,2", "+1,+2",
	} {
		_, err := ParseRecord(bad)
		assert.Error(t, err, "record %q should not parse", bad)
		assert.True(t, errors.Is(err, ErrMapSyntax), "record %q: wrong error kind", bad)
	}
}

func TestRecordString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.container")
	defer teardown()
	//
	assert.Equal(t, "+0,3", Record{Op: NL, Read: 3}.String())
	assert.Equal(t, ".1,5", Record{Op: W, Skip: 1, Read: 5}.String())
	assert.Equal(t, "$0,0", Record{Op: EOF}.String())
}

func TestWriterEmission(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.container")
	defer teardown()
	//
	var sb strings.Builder
	w := NewWriter(&sb)
	assert.NoError(t, w.WriteLine(Tuple{"", "The", " ", "quick", " ", "brown", " ", "fox", ""}))
	assert.NoError(t, w.WriteLine(Tuple{""}))
	assert.NoError(t, w.Close())
	expected := "%WEFT;\n" +
		"7,2\n" +
		"+0,3\n.1,5\n.1,5\n.1,3\n.0,0\n" +
		"+0,0\n" +
		"$0,0\n" +
		"The quick brown fox\n" +
		"\n"
	assert.Equal(t, expected, sb.String())
}

func TestWriterRejectsBadTuples(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.container")
	defer teardown()
	//
	var sb strings.Builder
	w := NewWriter(&sb)
	assert.Error(t, w.WriteLine(Tuple{}))
	assert.Error(t, w.WriteLine(Tuple{"a", "b"}))
	assert.Error(t, w.WriteLine(Tuple{"", "", ""}))
	assert.Error(t, w.WriteLine(Tuple{"a\nb"}))
	assert.Error(t, w.WriteLine(Tuple{"", "x\ry", ""}))
}

func TestReaderRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.container")
	defer teardown()
	//
	tuples := []Tuple{
		{"", "The", " ", "quick", "  ", "fox", " "},
		{"\t"},
		{" ", "über", " ", "𝔘", ""},
	}
	var sb strings.Builder
	w := NewWriter(&sb)
	for _, tuple := range tuples {
		assert.NoError(t, w.WriteLine(tuple))
	}
	assert.NoError(t, w.Close())
	//
	r, err := NewReader(strings.NewReader(sb.String()))
	assert.NoError(t, err)
	assert.Equal(t, 3, r.LineCount())
	for _, expected := range tuples {
		tuple, err := r.ReadLine()
		assert.NoError(t, err)
		assert.Equal(t, expected, tuple)
		assert.True(t, len(tuple)%2 == 1, "tuple length must be odd")
	}
	_, err = r.ReadLine()
	assert.Equal(t, io.EOF, err)
	assert.NoError(t, r.Close())
}

func TestReaderSignature(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.container")
	defer teardown()
	//
	_, err := NewReader(strings.NewReader("%WRONG;\n1,1\n$0,0\nx\n"))
	assert.True(t, errors.Is(err, ErrSignature))
	_, err = NewReader(strings.NewReader(""))
	assert.True(t, errors.Is(err, ErrSignature))
	// trailing blanks after the signature are fine
	_, err = NewReader(strings.NewReader("%WEFT; \t\n2,1\n+0,0\n$0,0\n\n"))
	assert.NoError(t, err)
}

func TestReaderHeader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.container")
	defer teardown()
	//
	for _, decl := range []string{"x,1", "1", "1,2,3", "-1,1", "1,+2", "0,0", "2,0"} {
		_, err := NewReader(strings.NewReader("%WEFT;\n" + decl + "\n+0,0\n$0,0\n\n"))
		assert.True(t, errors.Is(err, ErrHeader), "declaration %q should be rejected", decl)
	}
}

func TestReaderCRLF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.container")
	defer teardown()
	//
	weft := "%WEFT;\r\n3,1\r\n+0,1\r\n.0,0\r\n$0,0\r\na\r\n"
	r, err := NewReader(strings.NewReader(weft))
	assert.NoError(t, err)
	tuple, err := r.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, Tuple{"", "a", ""}, tuple)
}

func TestReaderMapMismatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.container")
	defer teardown()
	//
	// map accounts for 3 codepoints, body line has 4
	_, err := readAllOf("%WEFT;\n3,1\n+0,2\n.1,0\n$0,0\nabcd\n")
	assert.True(t, errors.Is(err, ErrMapMismatch))
	// line starts with a W record
	_, err = readAllOf("%WEFT;\n2,1\n.0,0\n$0,0\n\n")
	assert.True(t, errors.Is(err, ErrMapMismatch))
	// NL record continues a line
	_, err = readAllOf("%WEFT;\n3,1\n+0,1\n+0,0\n$0,0\na\n")
	assert.True(t, errors.Is(err, ErrMapMismatch))
	// EOF record appears before the last body line
	_, err = readAllOf("%WEFT;\n2,2\n$0,0\n+0,0\n\n\n")
	assert.True(t, errors.Is(err, ErrMapMismatch))
	// map continues past the last body line
	_, err = readAllOf("%WEFT;\n3,1\n+0,0\n+0,0\n$0,0\n\n\n")
	assert.True(t, errors.Is(err, ErrMapMismatch))
}

func TestReaderTruncated(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.container")
	defer teardown()
	//
	// a lone signature leaves an empty declaration line
	_, err := NewReader(strings.NewReader("%WEFT;\n"))
	assert.True(t, errors.Is(err, ErrHeader))
	_, err = NewReader(strings.NewReader("%WEFT;\n4,2\n+0,0\n"))
	assert.True(t, errors.Is(err, ErrTruncated))
	_, err = readAllOf("%WEFT;\n3,2\n+0,0\n+0,0\n$0,0\n")
	assert.True(t, errors.Is(err, ErrTruncated))
}

func TestReaderIgnoresTrailingBytes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.container")
	defer teardown()
	//
	tuples, err := readAllOf("%WEFT;\n3,1\n+0,1\n.0,0\n$0,0\nx\ntrailing garbage")
	assert.NoError(t, err)
	assert.Equal(t, []Tuple{{"", "x", ""}}, tuples)
}

func TestReaderMapCopy(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.container")
	defer teardown()
	//
	weft := "%WEFT;\n3,1\n+0,1\n.1,0\n$0,0\na \n"
	var maps strings.Builder
	r, err := NewReader(strings.NewReader(weft), WithMapCopy(&maps))
	assert.NoError(t, err)
	_, err = r.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, "+0,1\n.1,0\n$0,0\n", maps.String())
}

func TestTupleLine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.container")
	defer teardown()
	//
	tuple := Tuple{"", "The", " ", "fox", "  "}
	assert.Equal(t, "The fox  ", tuple.Line())
	assert.Equal(t, []string{"The", "fox"}, tuple.Words())
}

func TestSpillMigration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.container")
	defer teardown()
	//
	sp := newSpill()
	defer sp.release()
	lines := spillThreshold + 10
	for i := 0; i < lines; i++ {
		assert.NoError(t, sp.writeLine("line"))
	}
	assert.NotNil(t, sp.file, "spill should have migrated to a file")
	assert.NoError(t, sp.rewind())
	count := 0
	for {
		s, ok, err := sp.readLine()
		assert.NoError(t, err)
		if !ok {
			break
		}
		assert.Equal(t, "line", s)
		count++
	}
	assert.Equal(t, lines, count)
	assert.NoError(t, sp.release())
}

func readAllOf(weft string) ([]Tuple, error) {
	r, err := NewReader(strings.NewReader(weft))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.ReadAll()
}
