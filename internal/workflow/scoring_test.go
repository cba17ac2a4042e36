package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/support-workflow/internal/domain"
)

func kb(relevances ...float64) []domain.KBArticle {
	articles := make([]domain.KBArticle, 0, len(relevances))
	for _, r := range relevances {
		articles = append(articles, domain.KBArticle{Title: "article", URL: "https://example.com/kb/1", Relevance: r})
	}
	return articles
}

func TestSolutionScore(t *testing.T) {
	tests := []struct {
		name      string
		eval      any
		kb        []domain.KBArticle
		priority  domain.Priority
		sentiment domain.Sentiment
		want      int
	}{
		{"integer eval plus relevance boost", 85, kb(0.95), domain.PriorityMedium, domain.SentimentNeutral, 95},
		{"critical and negative deductions", 85, kb(0.9), domain.PriorityCritical, domain.SentimentNegative, 79},
		{"high priority deduction only", 85, kb(0.9), domain.PriorityHigh, domain.SentimentNeutral, 84},
		{"fractional eval scales to percent", 0.8, kb(0.6), domain.PriorityLow, domain.SentimentNeutral, 86},
		{"map eval with score entry", map[string]any{"score": 75}, kb(0.6), domain.PriorityLow, domain.SentimentNeutral, 81},
		{"unusable eval falls back to best relevance", "garbage", kb(0.9, 0.6), domain.PriorityLow, domain.SentimentNeutral, 99},
		{"unusable eval and empty kb use defaults", nil, nil, domain.PriorityLow, domain.SentimentNeutral, 66},
		{"clamped at 100", 100, kb(0.95), domain.PriorityLow, domain.SentimentNeutral, 100},
		{"clamped at 0", 0, nil, domain.PriorityCritical, domain.SentimentNegative, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := solutionScore(tt.eval, tt.kb, tt.priority, tt.sentiment)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestSolutionScoreDeterministic(t *testing.T) {
	first := solutionScore(85, kb(0.9), domain.PriorityCritical, domain.SentimentNegative)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, solutionScore(85, kb(0.9), domain.PriorityCritical, domain.SentimentNegative))
	}
}

func TestSolutionScoreDeductionSpread(t *testing.T) {
	baseline := solutionScore(85, kb(0.9), domain.PriorityLow, domain.SentimentNeutral)
	worst := solutionScore(85, kb(0.9), domain.PriorityCritical, domain.SentimentNegative)
	assert.Equal(t, 15, baseline-worst)
}

func TestBaseScore(t *testing.T) {
	tests := []struct {
		name   string
		eval   any
		want   int
		usable bool
	}{
		{"int", 85, 85, true},
		{"fraction", 0.85, 85, true},
		{"float above one rounds", 85.4, 85, true},
		{"map with int score", map[string]any{"score": 70}, 70, true},
		{"map with fraction score", map[string]any{"score": 0.7}, 70, true},
		{"map without score", map[string]any{"confidence": 0.9}, 0, false},
		{"string", "85", 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := baseScore(tt.eval)
			assert.Equal(t, tt.usable, ok)
			if tt.usable {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMaxRelevance(t *testing.T) {
	assert.Equal(t, 0.6, maxRelevance(nil))
	assert.Equal(t, 0.95, maxRelevance(kb(0.6, 0.95, 0.9)))
}

func TestShouldEscalate(t *testing.T) {
	assert.False(t, shouldEscalate(domain.TicketState{}))
	assert.True(t, shouldEscalate(domain.TicketState{EscalationRequired: true}))
}
