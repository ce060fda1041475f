package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCleansText(t *testing.T) {
	n := NewNormalizer(nil, false)

	doc := n.Normalize("Senior Go, Python & SQL Developer!")
	assert.Equal(t, []string{"senior", "go", "python", "sql", "developer"}, doc.Tokens)
	assert.Equal(t, "senior go python sql developer", doc.Text())
}

func TestNormalizeRemovesStopwords(t *testing.T) {
	n := NewNormalizer(nil, false)

	doc := n.Normalize("the candidate should have experience with databases")
	assert.NotContains(t, doc.Tokens, "the")
	assert.NotContains(t, doc.Tokens, "with")
	assert.Contains(t, doc.Tokens, "candidate")
	assert.Contains(t, doc.Tokens, "databases")
}

func TestNormalizeCustomStopwords(t *testing.T) {
	n := NewNormalizer([]string{"acme"}, false)

	doc := n.Normalize("ACME is hiring the best engineers")
	assert.NotContains(t, doc.Tokens, "acme")
	// "the" is kept because the custom set replaces the default list.
	assert.Contains(t, doc.Tokens, "the")
}

func TestNormalizeEmptyInput(t *testing.T) {
	n := NewNormalizer(nil, false)

	for _, input := range []string{"", "   ", "\n\t  \r\n", "!!! ,,, ---"} {
		doc := n.Normalize(input)
		assert.True(t, doc.Empty(), "input %q should normalize to no tokens", input)
		assert.Equal(t, input, doc.Raw)
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	n := NewNormalizer(nil, false)

	raw := "Kubernetes, Terraform and CI/CD pipelines (5 years)"
	first := n.Normalize(raw)
	second := n.Normalize(raw)
	assert.Equal(t, first.Tokens, second.Tokens)
}

func TestNormalizeUnicodeCompatibility(t *testing.T) {
	n := NewNormalizer(nil, false)

	// Fullwidth forms fold to ASCII under NFKC.
	doc := n.Normalize("Ｇｏ ｄｅｖｅｌｏｐｅｒ")
	assert.Equal(t, []string{"go", "developer"}, doc.Tokens)
}

func TestNormalizeWithStemming(t *testing.T) {
	n := NewNormalizer(nil, true)

	doc := n.Normalize("training skills")
	assert.Equal(t, []string{"train", "skill"}, doc.Tokens)
}
