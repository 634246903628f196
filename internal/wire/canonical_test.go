package wire

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCanonical(t *testing.T, v any) string {
	t.Helper()
	b, err := MarshalCanonical(v)
	require.NoError(t, err)
	return string(b)
}

func TestCanonicalSortsObjectKeys(t *testing.T) {
	got := mustCanonical(t, map[string]any{"b": int64(1), "a": int64(2), "c": "x"})
	assert.Equal(t, `{"a":2,"b":1,"c":"x"}`, got)
}

func TestCanonicalUTF16KeyOrdering(t *testing.T) {
	// U+1D11E (treble clef, surrogate pair D834 DD1E) sorts BEFORE
	// U+FF01 under UTF-16 code unit order, though its UTF-8 bytes are
	// larger. RFC 8785 mandates the UTF-16 order.
	got := mustCanonical(t, map[string]any{"！": int64(1), "\U0001D11E": int64(2)})
	assert.Equal(t, "{\"\U0001D11E\":2,\"！\":1}", got)
}

func TestCanonicalNoHTMLEscaping(t *testing.T) {
	got := mustCanonical(t, "<a>&</a>")
	assert.Equal(t, `"<a>&</a>"`, got)
}

func TestCanonicalNFCNormalization(t *testing.T) {
	// "e" + combining acute accent normalizes to the precomposed form,
	// so visually identical configs hash identically.
	decomposed := mustCanonical(t, "café")
	precomposed := mustCanonical(t, "café")
	assert.Equal(t, precomposed, decomposed)
}

func TestCanonicalLineSeparatorsLiteral(t *testing.T) {
	got := mustCanonical(t, "a b c")
	assert.Equal(t, "\"a b c\"", got)
}

func TestCanonicalIntegralFloatsAsIntegers(t *testing.T) {
	assert.Equal(t, "5", mustCanonical(t, 5.0))
	assert.Equal(t, "5", mustCanonical(t, int64(5)))
	assert.Equal(t, "-3", mustCanonical(t, -3.0))
	assert.Equal(t, "0.5", mustCanonical(t, 0.5))
}

func TestCanonicalRejectsNonFiniteNumbers(t *testing.T) {
	_, err := MarshalCanonical(math.NaN())
	require.Error(t, err)
	_, err = MarshalCanonical(math.Inf(1))
	require.Error(t, err)
}

func TestCanonicalRejectsNull(t *testing.T) {
	_, err := MarshalCanonical(nil)
	require.Error(t, err)

	_, err = MarshalCanonical(map[string]any{"a": nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `object["a"]`)
}

func TestCanonicalTypedSlices(t *testing.T) {
	assert.Equal(t, `["a","b"]`, mustCanonical(t, []string{"a", "b"}))
	assert.Equal(t, `[1,2,3]`, mustCanonical(t, []int64{1, 2, 3}))
	assert.Equal(t, `[0.5,2]`, mustCanonical(t, []float64{0.5, 2.0}))
	assert.Equal(t, `[]`, mustCanonical(t, []any{}))
}

func TestCanonicalNestedStructures(t *testing.T) {
	got := mustCanonical(t, map[string]any{
		"options": []any{"x", "y"},
		"bounds":  map[string]any{"min": 0, "max": 10.0},
		"label":   "Pick",
	})
	assert.Equal(t, `{"bounds":{"max":10,"min":0},"label":"Pick","options":["x","y"]}`, got)
}

func TestCanonicalStableAcrossCalls(t *testing.T) {
	config := map[string]any{"label": "Go", "disabled": false, "weight": 2}
	first := mustCanonical(t, config)
	for i := 0; i < 16; i++ {
		assert.Equal(t, first, mustCanonical(t, config))
	}
}
