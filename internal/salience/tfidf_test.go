package salience

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractOrdering(t *testing.T) {
	e := New(10, 1000)

	corpus := []string{
		"dumplings dumplings dumplings noodles",
		"burger fries burger",
		"noodles fries",
	}
	out := e.Extract(corpus)
	require.Len(t, out, 3)

	// "dumplings" appears 3x in doc 0 and nowhere else: highest weight
	require.NotEmpty(t, out[0])
	assert.Equal(t, "dumplings", out[0][0])

	// "noodles" is in two of three docs so it still carries weight
	assert.Contains(t, out[0], "noodles")

	// "burger" (2x, unique to doc 1) outweighs "fries" (1x, in two docs)
	require.NotEmpty(t, out[1])
	assert.Equal(t, "burger", out[1][0])
}

func TestExtractUniversalTermDropsOut(t *testing.T) {
	e := New(10, 1000)

	// a term present in every document has idf log(1) = 0
	corpus := []string{
		"kebab lamb",
		"kebab falafel",
		"kebab hummus",
	}
	out := e.Extract(corpus)
	for i := range out {
		assert.NotContains(t, out[i], "kebab", "doc %d", i)
	}
}

func TestExtractStopwordsAndShortTokens(t *testing.T) {
	e := New(10, 1000)

	out := e.Extract([]string{
		"the food was a delight",
		"I only came for the view",
	})
	require.Len(t, out, 2)
	assert.NotContains(t, out[0], "the")
	assert.NotContains(t, out[0], "was")
	assert.NotContains(t, out[0], "a")
	assert.Contains(t, out[0], "delight")
}

func TestExtractMaxTermsPerDoc(t *testing.T) {
	e := New(3, 1000)

	out := e.Extract([]string{
		"alpha bravo charlie delta echo foxtrot",
		"unrelated words here",
	})
	assert.LessOrEqual(t, len(out[0]), 3)
}

func TestExtractTieBreakLexicographic(t *testing.T) {
	e := New(10, 1000)

	// both terms unique to doc 0 with tf 1: identical weight, sorted by name
	out := e.Extract([]string{
		"zebra aardvark",
		"padding document",
	})
	require.GreaterOrEqual(t, len(out[0]), 2)
	assert.Equal(t, []string{"aardvark", "zebra"}, out[0][:2])
}

func TestExtractVocabularyCap(t *testing.T) {
	e := New(10, 2)

	// only the two highest-variance terms survive the cap
	out := e.Extract([]string{
		"dumplings dumplings dumplings burger burger quiet",
		"quiet",
	})
	require.Len(t, out, 2)
	assert.Equal(t, []string{"dumplings", "burger"}, out[0])
}

func TestExtractEmpty(t *testing.T) {
	e := New(10, 1000)
	assert.Empty(t, e.Extract(nil))

	out := e.Extract([]string{""})
	require.Len(t, out, 1)
	assert.Empty(t, out[0])
}
