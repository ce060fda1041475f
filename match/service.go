package match

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Pair is one evaluation request: a resume text against a job
// description text. NumKeywords overrides the configured default when
// positive.
type Pair struct {
	ResumeText  string
	JobText     string
	NumKeywords int
}

// Service orchestrates normalization, keyword extraction, similarity
// scoring and evaluation for resume/job pairs. Each evaluation is a
// self-contained, stateless computation, so batches run in parallel.
type Service struct {
	embedder Embedder

	cfgMu      sync.RWMutex
	cfg        Config
	normalizer *Normalizer
	extractor  *KeywordExtractor
	evaluator  *Evaluator

	logger *zap.Logger
}

// NewService validates the configuration and constructs a service with
// the given embedding capability.
func NewService(embedder Embedder, cfg Config, logger *zap.Logger) (*Service, error) {
	if embedder == nil {
		return nil, errors.New("embedder is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Service{
		embedder: embedder,
		logger:   logger,
	}
	s.install(cfg)
	return s, nil
}

// install rebuilds the derived components for the given configuration.
// Callers must hold cfgMu or be the sole owner.
func (s *Service) install(cfg Config) {
	s.cfg = cfg
	s.normalizer = NewNormalizer(cfg.Stopwords, cfg.StemTokens)
	s.extractor = &KeywordExtractor{UnigramsOnly: cfg.UnigramsOnly}
	s.evaluator = NewEvaluator(NewSimilarityScorer(s.embedder), cfg)
}

// ModelID reports the identifier of the embedding model backing this
// service, or empty when no model is available.
func (s *Service) ModelID() string {
	if s.embedder == nil {
		return ""
	}
	return s.embedder.ModelID()
}

// Close releases embedder resources.
func (s *Service) Close() error {
	if s.embedder != nil {
		return s.embedder.Close()
	}
	return nil
}

// Config returns a copy of the current configuration.
func (s *Service) Config() Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg.Clone()
}

// UpdateConfig validates and installs a new configuration.
func (s *Service) UpdateConfig(cfg Config) error {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfgMu.Lock()
	s.install(cfg)
	s.cfgMu.Unlock()
	return nil
}

// components snapshots the derived pipeline under the read lock so an
// in-flight evaluation is unaffected by a concurrent config update.
func (s *Service) components() (Config, *Normalizer, *KeywordExtractor, *Evaluator) {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg, s.normalizer, s.extractor, s.evaluator
}

// Evaluate runs the full pipeline for a single pair. A resume or job
// text that normalizes to zero tokens yields ErrEmptyInput annotated
// with the offending side.
func (s *Service) Evaluate(ctx context.Context, pair Pair) (MatchResult, error) {
	cfg, normalizer, extractor, evaluator := s.components()

	k := pair.NumKeywords
	if k <= 0 {
		k = cfg.NumKeywords
	}
	if k < 1 {
		return MatchResult{}, fmt.Errorf("%w: keyword count must be >= 1", ErrInvalidConfig)
	}

	resumeDoc := normalizer.Normalize(pair.ResumeText)
	jobDoc := normalizer.Normalize(pair.JobText)
	if resumeDoc.Empty() {
		return MatchResult{}, fmt.Errorf("resume text: %w", ErrEmptyInput)
	}
	if jobDoc.Empty() {
		return MatchResult{}, fmt.Errorf("job text: %w", ErrEmptyInput)
	}

	jobKeywords, err := extractor.Extract(jobDoc, k)
	if err != nil {
		return MatchResult{}, err
	}
	resumeKeywords := extractor.ExtractAll(resumeDoc)

	result, err := evaluator.Evaluate(ctx, resumeDoc, jobDoc, resumeKeywords, jobKeywords)
	if err != nil {
		return MatchResult{}, err
	}

	s.logger.Debug("evaluated pair",
		zap.Float64("match_score", result.MatchScore),
		zap.String("fit_level", string(result.FitLevel)),
		zap.Float64("match_percentage", result.KeywordAnalysis.MatchPercentage),
		zap.Int("job_keywords", len(jobKeywords)),
	)
	return result, nil
}

// EvaluateBatch evaluates independent pairs in parallel and reassembles
// the results in submission order, regardless of completion order. The
// first failure cancels the remaining work.
func (s *Service) EvaluateBatch(ctx context.Context, pairs []Pair) ([]MatchResult, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	cfg := s.Config()
	results := make([]MatchResult, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.BatchConcurrency)
	for i, pair := range pairs {
		g.Go(func() error {
			result, err := s.Evaluate(gctx, pair)
			if err != nil {
				return fmt.Errorf("pair %d: %w", i, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
