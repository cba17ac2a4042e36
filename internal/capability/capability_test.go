package capability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/support-workflow/internal/domain"
)

// unknownRequest belongs to no provider; every Execute must reject it.
type unknownRequest struct{}

func (unknownRequest) Capability() Name { return Name("unknown_capability") }

func TestProvidersRejectUnknownRequests(t *testing.T) {
	logger := zap.NewNop()
	providers := []Executor{
		NewCommonProvider(logger),
		NewExternalProvider(logger),
		NewStateProvider(logger),
	}

	for _, p := range providers {
		res, err := p.Execute(context.Background(), unknownRequest{})
		assert.Nil(t, res)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupported)
	}
}

func TestCommonProviderRejectsForeignRequest(t *testing.T) {
	p := NewCommonProvider(zap.NewNop())
	_, err := p.Execute(context.Background(), KnowledgeBaseSearch{Query: "password"})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestParseRequestTextSentiment(t *testing.T) {
	p := NewCommonProvider(zap.NewNop())

	tests := []struct {
		text string
		want domain.Sentiment
	}{
		{"Our production system is completely down", domain.SentimentNegative},
		{"Payment failed twice", domain.SentimentNegative},
		{"I get an error on checkout", domain.SentimentNegative},
		{"This is URGENT, please help", domain.SentimentNegative},
		{"How to reset my password for the main product?", domain.SentimentNeutral},
		{"", domain.SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			res, err := p.Execute(context.Background(), ParseRequestText{Text: tt.text})
			require.NoError(t, err)
			parsed, ok := res.(ParsedRequest)
			require.True(t, ok)
			assert.Equal(t, tt.want, parsed.Sentiment)
			assert.Equal(t, tt.text, parsed.StructuredText)
		})
	}
}

func TestParseRequestTextKeyPhrasesCapped(t *testing.T) {
	p := NewCommonProvider(zap.NewNop())
	res, err := p.Execute(context.Background(), ParseRequestText{
		Text: "one two three four five six seven eight",
	})
	require.NoError(t, err)
	parsed := res.(ParsedRequest)
	assert.Equal(t, []string{"one", "two", "three", "four", "five", "six"}, parsed.KeyPhrases)
}

func TestAddFlags(t *testing.T) {
	p := NewCommonProvider(zap.NewNop())

	for priority, wantRisk := range map[domain.Priority]bool{
		domain.PriorityLow:      false,
		domain.PriorityMedium:   false,
		domain.PriorityHigh:     true,
		domain.PriorityCritical: true,
	} {
		res, err := p.Execute(context.Background(), AddFlags{Priority: priority})
		require.NoError(t, err)
		flags := res.(map[string]any)
		_, hasRisk := flags["sla_risk"]
		assert.Equal(t, wantRisk, hasRisk, "priority %s", priority)
	}
}

func TestSolutionEvaluation(t *testing.T) {
	p := NewCommonProvider(zap.NewNop())

	res, err := p.Execute(context.Background(), SolutionEvaluation{Solutions: []Solution{
		{Solution: "a", Confidence: 0.75},
		{Solution: "b", Confidence: 0.85},
	}})
	require.NoError(t, err)
	assert.Equal(t, 85, res)

	// Empty candidate list falls back to the confidence floor.
	res, err = p.Execute(context.Background(), SolutionEvaluation{})
	require.NoError(t, err)
	assert.Equal(t, 50, res)
}

func TestResponseGeneration(t *testing.T) {
	p := NewCommonProvider(zap.NewNop())

	res, err := p.Execute(context.Background(), ResponseGeneration{Context: domain.TicketState{
		CustomerName: "Emma Garcia",
		Query:        "Login issue",
	}})
	require.NoError(t, err)
	response := res.(string)
	assert.Contains(t, response, "Dear Emma Garcia")
	assert.Contains(t, response, "Login issue")

	res, err = p.Execute(context.Background(), ResponseGeneration{Context: domain.TicketState{}})
	require.NoError(t, err)
	assert.Contains(t, res.(string), "Dear Customer")
}

func TestExtractEntities(t *testing.T) {
	p := NewExternalProvider(zap.NewNop())

	tests := []struct {
		name string
		text string
		want domain.Entities
	}{
		{
			"password query",
			"How to reset my password for the main product?",
			domain.Entities{Products: []string{"main_product"}, Accounts: []string{}, Dates: []string{}},
		},
		{
			"account and date",
			"My account was locked yesterday.",
			domain.Entities{Products: []string{}, Accounts: []string{"customer_account"}, Dates: []string{"recent_date"}},
		},
		{
			"no matches",
			"Everything broke",
			domain.Entities{Products: []string{}, Accounts: []string{}, Dates: []string{}},
		},
		{
			"punctuation trimmed",
			"login! today?",
			domain.Entities{Products: []string{"main_product"}, Accounts: []string{}, Dates: []string{"recent_date"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := p.Execute(context.Background(), ExtractEntities{Text: tt.text})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res)
		})
	}
}

func TestEnrichRecords(t *testing.T) {
	p := NewExternalProvider(zap.NewNop())

	res, err := p.Execute(context.Background(), EnrichRecords{Data: map[string]any{"key": "value"}})
	require.NoError(t, err)
	enriched := res.(map[string]any)
	assert.Equal(t, "value", enriched["key"])
	assert.Equal(t, 3, enriched["sla_days"])
	assert.Equal(t, 2, enriched["historical_tickets"])
}

func TestKnowledgeBaseSearch(t *testing.T) {
	p := NewExternalProvider(zap.NewNop())

	tests := []struct {
		name          string
		query         string
		wantTitles    []string
		bestRelevance float64
	}{
		{"password match", "reset my password", []string{"How to reset password"}, 0.95},
		{"outage match", "production is down", []string{"Production outage runbook"}, 0.9},
		{"both categories", "cannot login, production down", []string{"How to reset password", "Production outage runbook"}, 0.95},
		{"generic fallback", "something unrelated", []string{"Generic troubleshooting"}, 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := p.Execute(context.Background(), KnowledgeBaseSearch{Query: tt.query})
			require.NoError(t, err)
			articles := res.([]domain.KBArticle)
			require.Len(t, articles, len(tt.wantTitles))
			best := 0.0
			for i, a := range articles {
				assert.Equal(t, tt.wantTitles[i], a.Title)
				if a.Relevance > best {
					best = a.Relevance
				}
			}
			assert.Equal(t, tt.bestRelevance, best)
		})
	}
}

func TestEscalationDecision(t *testing.T) {
	p := NewExternalProvider(zap.NewNop())

	tests := []struct {
		score int
		want  bool
	}{
		{0, true},
		{89, true},
		{90, false},
		{100, false},
	}

	for _, tt := range tests {
		res, err := p.Execute(context.Background(), EscalationDecision{Score: tt.score})
		require.NoError(t, err)
		assert.Equal(t, tt.want, res, "score %d", tt.score)
	}
}

func TestExternalSideEffectsAcknowledge(t *testing.T) {
	p := NewExternalProvider(zap.NewNop())
	ctx := context.Background()

	requests := []Request{
		UpdateTicket{TicketID: "TKT-1", Updates: map[string]any{"status": "escalated"}},
		CloseTicket{TicketID: "TKT-1"},
		ExecuteAPICalls{Actions: []Action{{Action: "log_ticket", TicketID: "TKT-1"}}},
		TriggerNotifications{Recipient: "a@example.com", Message: "done"},
	}
	for _, req := range requests {
		res, err := p.Execute(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, true, res)
	}
}

func TestStateProvider(t *testing.T) {
	p := NewStateProvider(zap.NewNop())
	ctx := context.Background()
	st := domain.TicketState{TicketID: "TKT-1"}

	res, err := p.Execute(ctx, AcceptPayload{State: st})
	require.NoError(t, err)
	assert.Equal(t, st, res)

	res, err = p.Execute(ctx, StoreAnswer{State: st, Answer: "more details"})
	require.NoError(t, err)
	assert.Equal(t, "more details", res.(domain.TicketState).ClarificationAnswer)

	articles := []domain.KBArticle{{Title: "a", Relevance: 0.9}}
	res, err = p.Execute(ctx, StoreData{State: st, Articles: articles})
	require.NoError(t, err)
	assert.Equal(t, articles, res.(domain.TicketState).KBResults)

	res, err = p.Execute(ctx, UpdatePayload{State: st, SolutionScore: 79, EscalationRequired: true})
	require.NoError(t, err)
	updated := res.(domain.TicketState)
	assert.Equal(t, 79, updated.SolutionScore)
	assert.True(t, updated.EscalationRequired)

	payload := domain.FinalPayload{TicketID: "TKT-1", Status: domain.StatusEscalated}
	res, err = p.Execute(ctx, OutputPayload{State: st, Payload: payload})
	require.NoError(t, err)
	stored := res.(domain.TicketState)
	require.NotNil(t, stored.FinalPayload)
	assert.Equal(t, payload, *stored.FinalPayload)
}
