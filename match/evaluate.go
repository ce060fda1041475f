package match

import "context"

// FitLevel is the categorical bucket derived from the match score.
type FitLevel string

const (
	FitPoor      FitLevel = "Poor"
	FitFair      FitLevel = "Fair"
	FitGood      FitLevel = "Good"
	FitExcellent FitLevel = "Excellent"
)

// rank orders fit levels so callers can compare them.
func (f FitLevel) rank() int {
	switch f {
	case FitFair:
		return 1
	case FitGood:
		return 2
	case FitExcellent:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether f is the same or a better fit than other.
func (f FitLevel) AtLeast(other FitLevel) bool {
	return f.rank() >= other.rank()
}

// MatchResult is the immutable outcome of evaluating one (resume, job)
// pair. A new evaluation always yields a new MatchResult.
type MatchResult struct {
	MatchScore      float64         `json:"match_score"`
	FitLevel        FitLevel        `json:"fit_level"`
	KeywordAnalysis KeywordAnalysis `json:"keyword_analysis"`
	ResumeText      string          `json:"resume_text"`
	JobText         string          `json:"job_text"`
}

// Evaluator blends semantic similarity with keyword coverage into the
// final 0-100 match score. Semantic closeness captures paraphrased
// skills; keyword coverage captures exact requirements (certifications,
// tool names) that embeddings under-weight.
type Evaluator struct {
	scorer     *SimilarityScorer
	alpha      float64
	beta       float64
	thresholds FitThresholds
}

// NewEvaluator builds an evaluator from a validated configuration.
func NewEvaluator(scorer *SimilarityScorer, cfg Config) *Evaluator {
	return &Evaluator{
		scorer:     scorer,
		alpha:      cfg.Alpha,
		beta:       cfg.Beta,
		thresholds: cfg.Thresholds,
	}
}

// Evaluate computes the blended match score for the given documents and
// keyword sets. It is a pure computation over its inputs: no side
// effects, and ErrEmptyInput from the similarity scorer propagates
// unmasked.
func (e *Evaluator) Evaluate(ctx context.Context, resumeDoc, jobDoc Document, resumeKeywords, jobKeywords KeywordSet) (MatchResult, error) {
	sim, err := e.scorer.Similarity(ctx, resumeDoc, jobDoc)
	if err != nil {
		return MatchResult{}, err
	}
	analysis := AnalyzeKeywords(resumeKeywords, jobKeywords)
	score := 100 * (e.alpha*sim + e.beta*(analysis.MatchPercentage/100))
	score = clamp01(score/100) * 100
	return MatchResult{
		MatchScore:      score,
		FitLevel:        fitLevelFor(score, e.thresholds),
		KeywordAnalysis: analysis,
		ResumeText:      resumeDoc.Raw,
		JobText:         jobDoc.Raw,
	}, nil
}

// fitLevelFor maps a 0-100 score onto the configured buckets. The
// mapping is monotone: a higher score never yields a lower level.
func fitLevelFor(score float64, t FitThresholds) FitLevel {
	switch {
	case score >= t.Excellent:
		return FitExcellent
	case score >= t.Good:
		return FitGood
	case score >= t.Fair:
		return FitFair
	default:
		return FitPoor
	}
}
