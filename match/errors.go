package match

import "errors"

var (
	// ErrEmptyInput indicates a resume or job text normalized to zero
	// tokens. The evaluation boundary decides whether to reject the
	// request or substitute an explicit degraded score; the engine never
	// guesses.
	ErrEmptyInput = errors.New("input text has no usable tokens")

	// ErrInvalidConfig indicates the configuration failed validation.
	// It is raised at load time, never per request.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmbeddingUnavailable indicates the embedding capability could
	// not produce a vector. The failure is retryable; the engine never
	// falls back to a zero vector.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")
)
