package match

import (
	"strings"
	"unicode"

	"github.com/blevesearch/go-porterstemmer"
	"golang.org/x/text/unicode/norm"
)

// Document is an immutable, normalized view of a raw text. Tokens are
// lower-cased, punctuation-free and stopword-free, in original order.
type Document struct {
	Raw    string
	Tokens []string
}

// Empty reports whether normalization produced no usable tokens.
func (d Document) Empty() bool {
	return len(d.Tokens) == 0
}

// Text returns the normalized token sequence joined by single spaces.
// This is the form handed to the embedding capability.
func (d Document) Text() string {
	return strings.Join(d.Tokens, " ")
}

// Normalizer cleans and tokenizes raw resume/job text. Construction is
// cheap; a Normalizer is safe for concurrent use once built.
type Normalizer struct {
	stopwords map[string]struct{}
	stem      bool
}

// NewNormalizer builds a normalizer with the given stopword set. A nil
// set selects the default English list. When stem is true every token is
// reduced to its Porter stem; otherwise surface forms are kept and
// stemming happens only during keyword-gap matching.
func NewNormalizer(stopwords []string, stem bool) *Normalizer {
	if stopwords == nil {
		stopwords = DefaultStopwords()
	}
	set := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return &Normalizer{stopwords: set, stem: stem}
}

// Normalize lower-cases the input, applies NFKC, strips punctuation and
// control characters, collapses whitespace and removes stopwords.
// Whitespace-only input yields a Document with an empty token sequence,
// not an error; downstream components handle the empty case explicitly.
func (n *Normalizer) Normalize(raw string) Document {
	cleaned := norm.NFKC.String(raw)
	cleaned = strings.ToLower(cleaned)
	cleaned = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, cleaned)
	fields := strings.Fields(cleaned)
	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		if _, ok := n.stopwords[tok]; ok {
			continue
		}
		if n.stem {
			tok = stemWord(tok)
		}
		tokens = append(tokens, tok)
	}
	return Document{Raw: raw, Tokens: tokens}
}

// stemWord reduces a single word to its Porter stem.
func stemWord(w string) string {
	return string(porterstemmer.StemWithoutLowerCasing([]rune(w)))
}

// stemTerm stems every word of a possibly multi-word term so that
// morphological variants compare equal.
func stemTerm(term string) string {
	words := strings.Fields(strings.ToLower(term))
	for i, w := range words {
		words[i] = stemWord(w)
	}
	return strings.Join(words, " ")
}
