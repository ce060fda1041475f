package match

import (
	"context"
	"encoding/binary"
	"errors"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hashEmbedder is a deterministic bag-of-words embedder for tests: each
// token increments one bucket of a fixed-size vector. Identical texts
// map to identical vectors, overlapping texts to correlated ones.
type hashEmbedder struct {
	dim   int
	calls int
}

func newHashEmbedder() *hashEmbedder {
	return &hashEmbedder{dim: 1024}
}

func (h *hashEmbedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	h.calls++
	vec := make([]float32, h.dim)
	for _, tok := range strings.Fields(text) {
		hasher := fnv.New32a()
		_, _ = hasher.Write([]byte(tok))
		vec[int(hasher.Sum32())%h.dim]++
	}
	return vec, nil
}

func (h *hashEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := h.EmbedText(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (h *hashEmbedder) Close() error    { return nil }
func (h *hashEmbedder) ModelID() string { return "hash-test" }

// failingEmbedder simulates an unavailable embedding capability.
type failingEmbedder struct{}

func (failingEmbedder) EmbedText(context.Context, string) ([]float32, error) {
	return nil, errors.New("model not loaded")
}

func (f failingEmbedder) EmbedTexts(context.Context, []string) ([][]float32, error) {
	return nil, errors.New("model not loaded")
}

func (failingEmbedder) Close() error    { return nil }
func (failingEmbedder) ModelID() string { return "failing-test" }

// zeroEmbedder returns degenerate all-zero vectors.
type zeroEmbedder struct{}

func (zeroEmbedder) EmbedText(context.Context, string) ([]float32, error) {
	return make([]float32, 8), nil
}

func (z zeroEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = make([]float32, 8)
	}
	return out, nil
}

func (zeroEmbedder) Close() error    { return nil }
func (zeroEmbedder) ModelID() string { return "zero-test" }

func newCacheEmbedder(t *testing.T) *OrtEmbedder {
	t.Helper()
	return &OrtEmbedder{
		cfg:      EmbedderConfig{CacheDir: t.TempDir(), ModelID: "minilm"},
		memCache: make(map[string][]float32),
	}
}

func TestVectorCacheRoundTrip(t *testing.T) {
	o := newCacheEmbedder(t)
	vec := []float32{0.25, -1.5, 3.75, 0}
	key := o.cacheKey("senior backend engineer")

	require.NoError(t, o.saveToDisk(key, vec))
	got, err := o.loadFromDisk(key)
	require.NoError(t, err)
	assert.Equal(t, vec, got)
}

func TestVectorCacheRejectsTruncatedFile(t *testing.T) {
	o := newCacheEmbedder(t)
	key := o.cacheKey("x")
	require.NoError(t, os.WriteFile(filepath.Join(o.cfg.CacheDir, key+".bin"), []byte{1, 0}, 0o644))

	_, err := o.loadFromDisk(key)
	assert.Error(t, err)
}

func TestVectorCacheRejectsLengthMismatch(t *testing.T) {
	o := newCacheEmbedder(t)
	key := o.cacheKey("y")

	// Header claims three floats, payload carries two.
	buf := make([]byte, 4+2*4)
	binary.LittleEndian.PutUint32(buf[:4], 3)
	require.NoError(t, os.WriteFile(filepath.Join(o.cfg.CacheDir, key+".bin"), buf, 0o644))

	_, err := o.loadFromDisk(key)
	assert.Error(t, err)
}

func TestVectorCacheMissWithoutDir(t *testing.T) {
	o := &OrtEmbedder{cfg: EmbedderConfig{ModelID: "minilm"}, memCache: make(map[string][]float32)}

	_, err := o.loadFromDisk(o.cacheKey("z"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoError(t, o.saveToDisk(o.cacheKey("z"), []float32{1}))
}

func TestCacheKeyVariesByModel(t *testing.T) {
	a := &OrtEmbedder{cfg: EmbedderConfig{ModelID: "minilm"}}
	b := &OrtEmbedder{cfg: EmbedderConfig{ModelID: "mpnet"}}

	assert.NotEqual(t, a.cacheKey("same text"), b.cacheKey("same text"))
	assert.Equal(t, a.cacheKey("same text"), a.cacheKey("same text"))
}
