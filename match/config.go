package match

import (
	"encoding/json"
	"fmt"
	"math"
)

const weightTolerance = 1e-6

// FitThresholds are the lower bounds of the Fair, Good and Excellent
// buckets on the 0-100 match score scale. Scores below Fair map to Poor.
type FitThresholds struct {
	Fair      float64 `json:"fair"`
	Good      float64 `json:"good"`
	Excellent float64 `json:"excellent"`
}

// EmbedderConfig wraps the configuration for the ONNX embedder and its
// vector cache.
type EmbedderConfig struct {
	OrtDLL        string `json:"ortDll"`
	ModelPath     string `json:"modelPath"`
	TokenizerPath string `json:"tokenizerPath"`
	MaxSeqLen     int    `json:"maxSeqLen"`
	CacheDir      string `json:"cacheDir"`
	ModelID       string `json:"modelId"`
}

// Config aggregates the tunables of the match engine. Alpha weighs
// semantic similarity, Beta weighs keyword coverage; they must sum to 1.
// Keyword extraction covers unigrams plus adjacent bigrams unless
// UnigramsOnly selects the single-word fallback.
type Config struct {
	Alpha            float64        `json:"alpha"`
	Beta             float64        `json:"beta"`
	NumKeywords      int            `json:"numKeywords"`
	Thresholds       FitThresholds  `json:"thresholds"`
	Stopwords        []string       `json:"stopwords,omitempty"`
	StemTokens       bool           `json:"stemTokens"`
	UnigramsOnly     bool           `json:"unigramsOnly"`
	BatchConcurrency int            `json:"batchConcurrency"`
	Embedder         EmbedderConfig `json:"embedder"`
}

// Clone creates a deep copy of the configuration so callers can mutate safely.
func (c Config) Clone() Config {
	buf, _ := json.Marshal(c)
	var out Config
	_ = json.Unmarshal(buf, &out)
	return out
}

// ApplyDefaults populates zero values with the engine defaults.
func (c *Config) ApplyDefaults() {
	if c.Alpha == 0 && c.Beta == 0 {
		c.Alpha = 0.6
		c.Beta = 0.4
	}
	if c.NumKeywords == 0 {
		c.NumKeywords = 10
	}
	if c.Thresholds == (FitThresholds{}) {
		c.Thresholds = FitThresholds{Fair: 40, Good: 60, Excellent: 80}
	}
	if c.Stopwords == nil {
		c.Stopwords = DefaultStopwords()
	}
	if c.BatchConcurrency == 0 {
		c.BatchConcurrency = 4
	}
	if c.Embedder.MaxSeqLen == 0 {
		c.Embedder.MaxSeqLen = 512
	}
}

// Validate checks the configuration invariants. It fails fast so that a
// broken configuration is rejected at load time rather than mid-request.
func (c Config) Validate() error {
	if math.Abs(c.Alpha+c.Beta-1) > weightTolerance {
		return fmt.Errorf("%w: alpha (%v) + beta (%v) must equal 1", ErrInvalidConfig, c.Alpha, c.Beta)
	}
	if c.Alpha < 0 || c.Beta < 0 {
		return fmt.Errorf("%w: alpha and beta must be non-negative", ErrInvalidConfig)
	}
	if c.NumKeywords < 1 {
		return fmt.Errorf("%w: numKeywords must be >= 1, got %d", ErrInvalidConfig, c.NumKeywords)
	}
	t := c.Thresholds
	if !(t.Fair < t.Good && t.Good < t.Excellent) {
		return fmt.Errorf("%w: thresholds must be strictly increasing, got %v/%v/%v", ErrInvalidConfig, t.Fair, t.Good, t.Excellent)
	}
	if t.Fair < 0 || t.Excellent > 100 {
		return fmt.Errorf("%w: thresholds must lie within [0,100]", ErrInvalidConfig)
	}
	if c.BatchConcurrency < 1 {
		return fmt.Errorf("%w: batchConcurrency must be >= 1, got %d", ErrInvalidConfig, c.BatchConcurrency)
	}
	return nil
}
