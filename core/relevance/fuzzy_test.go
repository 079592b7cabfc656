package relevance_test

import (
	"strings"
	"testing"

	"github.com/goto/ticketsearch/core/relevance"
	"github.com/stretchr/testify/assert"
)

func TestSoundex(t *testing.T) {
	cases := map[string]string{
		"Robert":   "R163",
		"Rupert":   "R163",
		"Rubin":    "R150",
		"Ashcraft": "A261",
		"Tymczak":  "T522",
		"Pfister":  "P236",
		"Lee":      "L000",
		"o'brien":  "O165",
		"":         "",
		"1234":     "",
	}
	for in, expected := range cases {
		assert.Equal(t, expected, relevance.Soundex(in), in)
	}
}

func TestVariants(t *testing.T) {
	render := func(vs []relevance.Variant) []string {
		var out []string
		for _, v := range vs {
			out = append(out, v.String())
		}
		return out
	}

	assert.Equal(t, []string{"bac", "ab?", "acb"}, render(relevance.Variants("abc")))
	assert.Equal(t, []string{"aa?", "aba"}, render(relevance.Variants("aab")))
	assert.Equal(t, []string{"nivoice", "invoic?", "invoiec"}, render(relevance.Variants("Invoice")))
	assert.Empty(t, relevance.Variants("ab"))
	assert.LessOrEqual(t, len(relevance.Variants("abcdefgh")), relevance.MaxVariants)
}

func TestVariantMatchIn(t *testing.T) {
	vs := relevance.Variants("invoiec")
	var matched []string
	for _, v := range vs {
		if v.MatchIn("unpaid invoice") {
			matched = append(matched, v.String())
		}
	}
	assert.Equal(t, []string{"invoice"}, matched)

	wildcard := relevance.Variants("cat")[1]
	assert.True(t, wildcard.MatchIn("the car"))
	assert.False(t, wildcard.MatchIn("ca"))
}

func TestVariantLikePattern(t *testing.T) {
	escape := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace

	vs := relevance.Variants("50%off")
	assert.Equal(t, `05\%off`, vs[0].LikePattern(escape))
	assert.Equal(t, `50\%of_`, vs[1].LikePattern(escape))
}
