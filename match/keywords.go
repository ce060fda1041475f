package match

import (
	"fmt"
	"sort"
	"strings"
)

// Keyword is a salient term with its importance weight.
type Keyword struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// KeywordSet is a weighted set of salient terms, ordered by descending
// weight. Terms are unique; the order matters only for presentation and
// for the present/missing sequences of the gap analysis.
type KeywordSet []Keyword

// Terms returns the terms in ranked order.
func (ks KeywordSet) Terms() []string {
	out := make([]string, len(ks))
	for i, kw := range ks {
		out[i] = kw.Term
	}
	return out
}

// Contains reports whether the set holds the exact term.
func (ks KeywordSet) Contains(term string) bool {
	for _, kw := range ks {
		if kw.Term == term {
			return true
		}
	}
	return false
}

// minTermLength filters out tokens too short to be meaningful keywords.
const minTermLength = 3

// KeywordExtractor derives ranked keyword sets from normalized
// documents. Ranking is by term frequency with ties broken by first
// occurrence in the token sequence, so extraction is fully deterministic.
type KeywordExtractor struct {
	// UnigramsOnly disables adjacent-bigram candidates such as
	// "customer service".
	UnigramsOnly bool
}

// NewKeywordExtractor returns an extractor that considers unigrams and
// adjacent bigrams.
func NewKeywordExtractor() *KeywordExtractor {
	return &KeywordExtractor{}
}

type candidate struct {
	term  string
	count int
	first int
}

// Extract returns the top k keywords of the document. If the document
// has fewer than k distinct terms all of them are returned. k must be
// at least 1.
func (e *KeywordExtractor) Extract(doc Document, k int) (KeywordSet, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: keyword count must be >= 1, got %d", ErrInvalidConfig, k)
	}
	ranked := e.rank(doc)
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked, nil
}

// ExtractAll returns every candidate term of the document in ranked
// order. The gap analyzer matches job keywords against this full set so
// that a resume term outside its own top-k still counts as present.
func (e *KeywordExtractor) ExtractAll(doc Document) KeywordSet {
	return e.rank(doc)
}

func (e *KeywordExtractor) rank(doc Document) KeywordSet {
	byTerm := make(map[string]*candidate)
	var order []*candidate
	pos := 0
	record := func(term string) {
		c, ok := byTerm[term]
		if !ok {
			c = &candidate{term: term, first: pos}
			byTerm[term] = c
			order = append(order, c)
		}
		c.count++
		pos++
	}
	for i, tok := range doc.Tokens {
		if len(tok) >= minTermLength {
			record(tok)
		}
		if e.UnigramsOnly || i+1 >= len(doc.Tokens) {
			continue
		}
		next := doc.Tokens[i+1]
		if len(tok) >= minTermLength && len(next) >= minTermLength {
			record(tok + " " + next)
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].first < order[j].first
	})
	out := make(KeywordSet, len(order))
	for i, c := range order {
		out[i] = Keyword{Term: c.term, Weight: float64(c.count)}
	}
	return out
}

// joinTerms renders a keyword sequence for tabular export.
func joinTerms(terms []string) string {
	return strings.Join(terms, "; ")
}
