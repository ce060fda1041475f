package match

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(newHashEmbedder(), Config{}, zap.NewNop())
	require.NoError(t, err)
	return svc
}

func TestServiceRequiresEmbedder(t *testing.T) {
	_, err := NewService(nil, Config{}, zap.NewNop())
	assert.Error(t, err)
}

func TestServiceRejectsBrokenConfig(t *testing.T) {
	_, err := NewService(newHashEmbedder(), Config{Alpha: 0.9, Beta: 0.9}, zap.NewNop())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestServiceRejectsNegativeKeywordCount(t *testing.T) {
	_, err := NewService(newHashEmbedder(), Config{Alpha: 0.6, Beta: 0.4, NumKeywords: -3}, zap.NewNop())
	assert.ErrorIs(t, err, ErrInvalidConfig)

	svc := newTestService(t)
	cfg := svc.Config()
	cfg.NumKeywords = -3
	assert.ErrorIs(t, svc.UpdateConfig(cfg), ErrInvalidConfig)
}

func TestServiceModelID(t *testing.T) {
	svc := newTestService(t)
	assert.Equal(t, "hash-test", svc.ModelID())
}

func TestServiceIdenticalTexts(t *testing.T) {
	svc := newTestService(t)

	text := "Senior backend engineer building Go microservices on Kubernetes"
	result, err := svc.Evaluate(context.Background(), Pair{ResumeText: text, JobText: text})
	require.NoError(t, err)

	assert.InDelta(t, 100.0, result.MatchScore, 1e-6)
	assert.Equal(t, FitExcellent, result.FitLevel)
	assert.Empty(t, result.KeywordAnalysis.Missing)
	assert.InDelta(t, 100.0, result.KeywordAnalysis.MatchPercentage, 1e-9)
	assert.Equal(t, text, result.ResumeText)
}

func TestServiceFlightAttendantScenario(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Evaluate(context.Background(), Pair{
		ResumeText:  "Experienced flight attendant with safety training and customer service skills",
		JobText:     "Seeking cabin crew with safety procedures and customer service experience",
		NumKeywords: 15,
	})
	require.NoError(t, err)

	assert.Greater(t, result.MatchScore, 0.0)
	assert.LessOrEqual(t, result.MatchScore, 100.0)
	assert.Contains(t, result.KeywordAnalysis.Present, "safety")
	assert.Contains(t, result.KeywordAnalysis.Present, "customer service")
	assert.NotContains(t, result.KeywordAnalysis.Present, "cabin")

	// Partition invariant: every job keyword lands on exactly one side.
	total := len(result.KeywordAnalysis.Present) + len(result.KeywordAnalysis.Missing)
	assert.InDelta(t,
		100*float64(len(result.KeywordAnalysis.Present))/float64(total),
		result.KeywordAnalysis.MatchPercentage, 1e-9)
}

func TestServiceEmptyResume(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Evaluate(context.Background(), Pair{
		ResumeText: "",
		JobText:    "Senior Python developer",
	})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestServiceEmptyJob(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Evaluate(context.Background(), Pair{
		ResumeText: "Senior Python developer",
		JobText:    "   \n ",
	})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestServiceEmbedderFailureSurfaces(t *testing.T) {
	svc, err := NewService(failingEmbedder{}, Config{}, zap.NewNop())
	require.NoError(t, err)

	_, err = svc.Evaluate(context.Background(), Pair{
		ResumeText: "golang developer",
		JobText:    "golang developer wanted",
	})
	assert.ErrorIs(t, err, ErrEmbeddingUnavailable)
}

func TestServiceBatchPreservesOrder(t *testing.T) {
	svc := newTestService(t)

	var pairs []Pair
	for i := 0; i < 12; i++ {
		pairs = append(pairs, Pair{
			ResumeText: fmt.Sprintf("candidate number%d with golang experience", i),
			JobText:    fmt.Sprintf("role number%d requires golang", i),
		})
	}

	results, err := svc.EvaluateBatch(context.Background(), pairs)
	require.NoError(t, err)
	require.Len(t, results, len(pairs))
	for i, result := range results {
		assert.Equal(t, pairs[i].ResumeText, result.ResumeText, "row %d out of order", i)
		assert.Equal(t, pairs[i].JobText, result.JobText, "row %d out of order", i)
	}
}

func TestServiceBatchFailsFast(t *testing.T) {
	svc := newTestService(t)

	pairs := []Pair{
		{ResumeText: "golang developer", JobText: "golang role"},
		{ResumeText: "", JobText: "python role"},
	}
	_, err := svc.EvaluateBatch(context.Background(), pairs)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestServiceBatchEmpty(t *testing.T) {
	svc := newTestService(t)

	results, err := svc.EvaluateBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestServiceUpdateConfig(t *testing.T) {
	svc := newTestService(t)

	cfg := svc.Config()
	cfg.Thresholds = FitThresholds{Fair: 10, Good: 20, Excellent: 30}
	require.NoError(t, svc.UpdateConfig(cfg))

	text := "site reliability engineer with terraform and aws"
	result, err := svc.Evaluate(context.Background(), Pair{ResumeText: text, JobText: text})
	require.NoError(t, err)
	assert.Equal(t, FitExcellent, result.FitLevel)

	cfg.Alpha = 2
	cfg.Beta = -1
	assert.ErrorIs(t, svc.UpdateConfig(cfg), ErrInvalidConfig)
}
