package capability

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/support-workflow/internal/domain"
)

// negativeSignals are keywords that flip the parsed sentiment to negative.
var negativeSignals = []string{"down", "fail", "error", "urgent"}

// CommonProvider implements text parsing, normalization, flag computation,
// solution scoring, and response drafting. All results are deterministic so
// identical runs produce identical payloads.
type CommonProvider struct {
	logger *zap.Logger
}

// NewCommonProvider constructs the provider.
func NewCommonProvider(logger *zap.Logger) *CommonProvider {
	return &CommonProvider{logger: logger}
}

// Execute dispatches over the common capability set.
func (p *CommonProvider) Execute(ctx context.Context, req Request) (any, error) {
	_ = ctx

	switch r := req.(type) {
	case ParseRequestText:
		return p.parseRequestText(r.Text), nil
	case NormalizeFields:
		return p.normalizeFields(r.Data), nil
	case AddFlags:
		return p.addFlags(r.Priority), nil
	case SolutionEvaluation:
		return p.solutionEvaluation(r.Solutions), nil
	case ResponseGeneration:
		return p.responseGeneration(r.Context), nil
	default:
		return nil, unsupported("common", req)
	}
}

func (p *CommonProvider) parseRequestText(text string) ParsedRequest {
	words := strings.Fields(text)
	phrases := words
	if len(phrases) > 6 {
		phrases = phrases[:6]
	}

	sentiment := domain.SentimentNeutral
	lower := strings.ToLower(text)
	for _, signal := range negativeSignals {
		if strings.Contains(lower, signal) {
			sentiment = domain.SentimentNegative
			break
		}
	}

	return ParsedRequest{
		StructuredText: text,
		KeyPhrases:     phrases,
		Sentiment:      sentiment,
	}
}

func (p *CommonProvider) normalizeFields(data map[string]any) map[string]any {
	normalized := make(map[string]any, len(data))
	for k, v := range data {
		normalized[k] = v
	}
	return normalized
}

func (p *CommonProvider) addFlags(priority domain.Priority) map[string]any {
	flags := map[string]any{}
	if priority == domain.PriorityHigh || priority == domain.PriorityCritical {
		flags["sla_risk"] = true
	}
	return flags
}

func (p *CommonProvider) solutionEvaluation(solutions []Solution) int {
	best := 0.5
	for _, s := range solutions {
		if s.Confidence > best {
			best = s.Confidence
		}
	}
	score := int(math.Round(best * 100))
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

func (p *CommonProvider) responseGeneration(state domain.TicketState) string {
	name := state.CustomerName
	if name == "" {
		name = "Customer"
	}
	query := state.Query
	if query == "" {
		query = "your issue"
	}
	return fmt.Sprintf("Dear %s,\n\nWe have addressed your query: %s.\n\nBest regards,\nSupport Team", name, query)
}

var _ Executor = (*CommonProvider)(nil)
