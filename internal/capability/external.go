package capability

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/support-workflow/internal/domain"
)

// escalationThreshold is the mock policy boundary: scores below it escalate.
const escalationThreshold = 90

// ExternalProvider mocks the domain data systems: entity extraction, record
// enrichment, clarification, knowledge-base search, escalation policy,
// ticket mutation, and outbound side effects. Matching is keyword based.
type ExternalProvider struct {
	logger *zap.Logger
}

// NewExternalProvider constructs the provider.
func NewExternalProvider(logger *zap.Logger) *ExternalProvider {
	return &ExternalProvider{logger: logger}
}

// Execute dispatches over the external capability set.
func (p *ExternalProvider) Execute(ctx context.Context, req Request) (any, error) {
	_ = ctx

	switch r := req.(type) {
	case ExtractEntities:
		return p.extractEntities(r.Text), nil
	case EnrichRecords:
		return p.enrichRecords(r.Data), nil
	case ClarifyQuestion:
		return fmt.Sprintf("Can you please provide more details about: %s?", r.MissingInfo), nil
	case ExtractAnswer:
		return "Customer provided additional details about the issue.", nil
	case KnowledgeBaseSearch:
		return p.knowledgeBaseSearch(r.Query), nil
	case EscalationDecision:
		return r.Score < escalationThreshold, nil
	case UpdateTicket:
		p.logger.Info("updating ticket", zap.String("ticket_id", r.TicketID), zap.Any("updates", r.Updates))
		return true, nil
	case CloseTicket:
		p.logger.Info("closing ticket", zap.String("ticket_id", r.TicketID))
		return true, nil
	case ExecuteAPICalls:
		for _, action := range r.Actions {
			p.logger.Info("executing api call", zap.String("action", action.Action), zap.String("ticket_id", action.TicketID))
		}
		return true, nil
	case TriggerNotifications:
		p.logger.Info("sending notification", zap.String("recipient", r.Recipient), zap.String("message", r.Message))
		return true, nil
	default:
		return nil, unsupported("external", req)
	}
}

func (p *ExternalProvider) extractEntities(text string) domain.Entities {
	entities := domain.Entities{
		Products: []string{},
		Accounts: []string{},
		Dates:    []string{},
	}
	words := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(text)) {
		words[strings.Trim(w, ".,!?:;")] = true
	}

	if words["account"] {
		entities.Accounts = append(entities.Accounts, "customer_account")
	}
	if words["product"] || words["login"] || words["password"] {
		entities.Products = append(entities.Products, "main_product")
	}
	if words["yesterday"] || words["today"] {
		entities.Dates = append(entities.Dates, "recent_date")
	}
	return entities
}

func (p *ExternalProvider) enrichRecords(data map[string]any) map[string]any {
	enriched := make(map[string]any, len(data)+2)
	for k, v := range data {
		enriched[k] = v
	}
	enriched["sla_days"] = 3
	enriched["historical_tickets"] = 2
	return enriched
}

func (p *ExternalProvider) knowledgeBaseSearch(query string) []domain.KBArticle {
	lower := strings.ToLower(query)
	var results []domain.KBArticle
	if strings.Contains(lower, "password") || strings.Contains(lower, "login") {
		results = append(results, domain.KBArticle{
			Title:     "How to reset password",
			URL:       "https://example.com/kb/123",
			Relevance: 0.95,
		})
	}
	if strings.Contains(lower, "down") || strings.Contains(lower, "production") {
		results = append(results, domain.KBArticle{
			Title:     "Production outage runbook",
			URL:       "https://example.com/kb/999",
			Relevance: 0.9,
		})
	}
	if len(results) == 0 {
		results = append(results, domain.KBArticle{
			Title:     "Generic troubleshooting",
			URL:       "https://example.com/kb/000",
			Relevance: 0.6,
		})
	}
	return results
}

var _ Executor = (*ExternalProvider)(nil)
