package jsonout

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"

	"github.com/npillmayer/weft/engine/weft"
)

func TestQuote(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.backend")
	defer teardown()
	//
	assert.Equal(t, `"plain"`, Quote("plain"))
	assert.Equal(t, `"a\"b\\c"`, Quote(`a"b\c`))
	assert.Equal(t, `"\b\f\n\r\t"`, Quote("\b\f\n\r\t"))
	assert.Equal(t, `"\u0000\u001F\u007F"`, Quote("\x00\x1f\x7f"))
	// supplementary codepoints become surrogate pairs
	assert.Equal(t, `"\uD835\uDD18"`, Quote("𝔘"))
	assert.Equal(t, `"ü"`, Quote("ü"))
}

func TestEmit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.backend")
	defer teardown()
	//
	var packed strings.Builder
	w := weft.NewWriter(&packed)
	assert.NoError(t, w.WriteLine(weft.Tuple{"", "The", " ", "fox", ""}))
	assert.NoError(t, w.WriteLine(weft.Tuple{"\t"}))
	assert.NoError(t, w.Close())
	var out strings.Builder
	assert.NoError(t, Emit(strings.NewReader(packed.String()), &out))
	assert.Equal(t, "[\n[\"\",\"The\",\" \",\"fox\",\"\"],\n[\"\\t\"]\n]\n", out.String())
	// the emitted text is well-formed JSON
	var parsed [][]string
	assert.NoError(t, json.Unmarshal([]byte(out.String()), &parsed))
	assert.Equal(t, [][]string{{"", "The", " ", "fox", ""}, {"\t"}}, parsed)
}
