package woof

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"

	"github.com/npillmayer/weft/engine/weft"
)

const ligatureTable = `
# a small ligature table
;
61,65:ae   # ';ae' decodes to plain 'ae'
C6:AE      # ';AE' decodes to 'Æ'
DF:ss
`

func loadOf(t *testing.T, src string) *Table {
	t.Helper()
	table, err := LoadTable(strings.NewReader(src))
	assert.NoError(t, err)
	return table
}

func TestLoadTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.woof")
	defer teardown()
	//
	table := loadOf(t, ligatureTable)
	assert.Equal(t, ';', table.Lead())
	assert.Equal(t, 3, table.count)
	assert.Equal(t, 2, table.maxKey)
}

func TestLoadTableHeaderH(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.woof")
	defer teardown()
	//
	table := loadOf(t, "H\n61:a\n")
	assert.Equal(t, '#', table.Lead())
}

func TestLoadTableRejects(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.woof")
	defer teardown()
	//
	cases := []struct {
		src  string
		kind error
	}{
		{"", ErrSyntax},                          // no header
		{"x\n61:a\n", ErrSyntax},                 // alphanumeric lead
		{";;\n", ErrSyntax},                      // two-character header
		{";\n61\n", ErrSyntax},                   // record without colon
		{";\n61:\n", ErrSyntax},                  // empty key
		{";\nzz:a\n", ErrSyntax},                 // bad hex
		{";\n61:a b\n", ErrSyntax},               // blank inside key
		{";\n61:ä\n", ErrSyntax},                 // not US-ASCII
		{";\n61:a\n62:a\n", ErrAmbiguous},        // duplicate key
		{";\n61:abc\n62:abcd\n", ErrAmbiguous},   // key extends key
		{";\n61:abcd\n62:abc\n", ErrAmbiguous},   // key is prefix of key
	}
	for _, c := range cases {
		_, err := LoadTable(strings.NewReader(c.src))
		assert.True(t, errors.Is(err, c.kind), "table %q: expected %v, got %v", c.src, c.kind, err)
	}
}

func TestTranslate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.woof")
	defer teardown()
	//
	table := loadOf(t, ligatureTable)
	out, err := table.Translate(";AEther")
	assert.NoError(t, err)
	assert.Equal(t, "Æther", out)
	out, err = table.Translate(";aether")
	assert.NoError(t, err)
	assert.Equal(t, "aether", out)
	out, err = table.Translate("Stra;sse")
	assert.NoError(t, err)
	assert.Equal(t, "Straße", out)
	out, err = table.Translate("plain")
	assert.NoError(t, err)
	assert.Equal(t, "plain", out)
}

func TestTranslateNoMatchIsFatal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.woof")
	defer teardown()
	//
	table := loadOf(t, ligatureTable)
	_, err := table.Translate("x;zz")
	assert.True(t, errors.Is(err, ErrSyntax))
	_, err = table.Translate("trailing;")
	assert.True(t, errors.Is(err, ErrSyntax))
}

func TestApply(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.woof")
	defer teardown()
	//
	var weftIn strings.Builder
	w := weft.NewWriter(&weftIn)
	assert.NoError(t, w.WriteLine(weft.Tuple{"", ";AEther", " ", "unchanged", ""}))
	assert.NoError(t, w.Close())
	table := loadOf(t, ligatureTable)
	var out strings.Builder
	assert.NoError(t, table.Apply(strings.NewReader(weftIn.String()), &out))
	r, err := weft.NewReader(strings.NewReader(out.String()))
	assert.NoError(t, err)
	defer r.Close()
	tuple, err := r.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, weft.Tuple{"", "Æther", " ", "unchanged", ""}, tuple)
}
