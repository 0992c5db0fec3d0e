package texpat

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

const tinyPatterns = `% a miniature pattern file
\patterns{ % begin of patterns
a1b
.ta2
2b.
}
`

func TestParseStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.hyphen")
	defer teardown()
	//
	for name, style := range map[string]Style{
		"utf8": StyleUTF8, "czech": StyleCzech, "german": StyleGerman,
	} {
		parsed, err := ParseStyle(name)
		assert.NoError(t, err)
		assert.Equal(t, style, parsed)
	}
	_, err := ParseStyle("latin1")
	assert.Error(t, err)
}

func TestDecodePattern(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.hyphen")
	defer teardown()
	//
	seq, weights := decodePattern("a5ban")
	assert.Equal(t, "aban", string(seq))
	assert.Equal(t, []int{0, 5, 0, 0, 0}, weights)
	seq, weights = decodePattern(".wil5i")
	assert.Equal(t, ".wili", string(seq))
	assert.Equal(t, []int{0, 0, 0, 0, 5, 0}, weights)
	seq, weights = decodePattern("ab3")
	assert.Equal(t, "ab", string(seq))
	assert.Equal(t, []int{0, 0, 3}, weights)
}

func TestOffsets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.hyphen")
	defer teardown()
	//
	p, err := Load(strings.NewReader(tinyPatterns), StyleUTF8)
	assert.NoError(t, err)
	// "a1b" permits a break before every inner 'b'
	assert.Equal(t, []int{3}, p.Offsets("ababab"))
	// edge minima suppress breaks too close to either end
	assert.Empty(t, p.Offsets("abab"))
	assert.Empty(t, p.Offsets("xyz"))
}

func TestOffsetsEvenWeightInhibits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.hyphen")
	defer teardown()
	//
	patterns := "\\patterns{\na1b\nxa2b\n}\n"
	p, err := Load(strings.NewReader(patterns), StyleUTF8)
	assert.NoError(t, err)
	// 'xa2b' overrides the break permitted by 'a1b' after an 'x'
	assert.Equal(t, []int{3}, p.Offsets("ababab"))
	assert.Empty(t, p.Offsets("zzxabzz"))
}

func TestLoadSkipsExceptions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.hyphen")
	defer teardown()
	//
	src := "\\hyphenation{\nta-ble\n}\n\\patterns{\na1b\n}\n"
	p, err := Load(strings.NewReader(src), StyleUTF8)
	assert.NoError(t, err)
	assert.Equal(t, 1, p.count)
}

func TestLoadUnclosedBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.hyphen")
	defer teardown()
	//
	_, err := Load(strings.NewReader("\\patterns{\na1b\n"), StyleUTF8)
	assert.Error(t, err)
}

// ISO 8859-2 pattern bytes decode to the right codepoints.
func TestLoadCzechStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "weft.hyphen")
	defer teardown()
	//
	// 0xE8 is 'č' in ISO 8859-2
	src := "\\patterns{\n" + string([]byte{'a', '1', 0xE8, '\n'}) + "}\n"
	p, err := Load(strings.NewReader(src), StyleCzech)
	assert.NoError(t, err)
	assert.Equal(t, []int{3}, p.Offsets("xxačxx"))
}
