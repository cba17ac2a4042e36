package workflow

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/support-workflow/internal/capability"
	"github.com/spec-kit/support-workflow/internal/domain"
)

// minQueryTokens is the clarification threshold: shorter queries always ask.
const minQueryTokens = 5

// resultAs narrows a capability result to its expected type.
func resultAs[T any](res any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected capability result type %T", res)
	}
	return typed, nil
}

// intake resets per-run control flags and forwards the record through state
// acceptance.
func (p *Pipeline) intake(ctx context.Context, st domain.TicketState) (domain.TicketState, error) {
	st.NeedsClarification = false
	st.IsComplete = false

	accepted, err := resultAs[domain.TicketState](p.providers.State.Execute(ctx, capability.AcceptPayload{State: st}))
	if err != nil {
		return st, err
	}
	p.logger.Info("ticket accepted",
		zap.String("ticket_id", accepted.TicketID),
		zap.String("customer", accepted.CustomerName))
	return accepted, nil
}

// understand parses the query text and extracts entities.
func (p *Pipeline) understand(ctx context.Context, st domain.TicketState) (domain.TicketState, error) {
	parsed, err := resultAs[capability.ParsedRequest](p.providers.Common.Execute(ctx, capability.ParseRequestText{Text: st.Query}))
	if err != nil {
		return st, err
	}
	entities, err := resultAs[domain.Entities](p.providers.External.Execute(ctx, capability.ExtractEntities{Text: st.Query}))
	if err != nil {
		return st, err
	}

	st.StructuredData = map[string]any{
		"structured_text": parsed.StructuredText,
		"key_phrases":     parsed.KeyPhrases,
		"sentiment":       parsed.Sentiment,
	}
	st.ExtractedEntities = &entities
	return st, nil
}

// prepare normalizes structured data, enriches it, and computes flags.
func (p *Pipeline) prepare(ctx context.Context, st domain.TicketState) (domain.TicketState, error) {
	normalized, err := resultAs[map[string]any](p.providers.Common.Execute(ctx, capability.NormalizeFields{Data: st.StructuredData}))
	if err != nil {
		return st, err
	}
	enriched, err := resultAs[map[string]any](p.providers.External.Execute(ctx, capability.EnrichRecords{Data: st.StructuredData}))
	if err != nil {
		return st, err
	}
	flags, err := resultAs[map[string]any](p.providers.Common.Execute(ctx, capability.AddFlags{Priority: st.Priority}))
	if err != nil {
		return st, err
	}

	st.NormalizedFields = normalized
	st.EnrichedData = enriched
	st.Flags = flags
	return st, nil
}

// ask decides whether clarification is required and, if so, issues the
// clarification question. The needs-clarification flag is always set
// explicitly, in both directions.
func (p *Pipeline) ask(ctx context.Context, st domain.TicketState) (domain.TicketState, error) {
	if needsClarification(st) {
		question, err := resultAs[string](p.providers.External.Execute(ctx, capability.ClarifyQuestion{
			MissingInfo: "Please provide more details about your issue",
		}))
		if err != nil {
			return st, err
		}
		st.NeedsClarification = true
		st.ClarificationRequests = append(st.ClarificationRequests, question)
		p.logger.Info("clarification requested", zap.String("ticket_id", st.TicketID), zap.String("question", question))
	} else {
		st.NeedsClarification = false
	}
	return st, nil
}

// needsClarification holds when the query is too short, or when neither a
// product nor an account entity could be extracted.
func needsClarification(st domain.TicketState) bool {
	if len(strings.Fields(st.Query)) < minQueryTokens {
		return true
	}
	if st.ExtractedEntities == nil {
		return true
	}
	return len(st.ExtractedEntities.Products) == 0 && len(st.ExtractedEntities.Accounts) == 0
}

// wait collects the clarification answer when one was requested; otherwise it
// is a no-op.
func (p *Pipeline) wait(ctx context.Context, st domain.TicketState) (domain.TicketState, error) {
	if !st.NeedsClarification {
		return st, nil
	}

	answer, err := resultAs[string](p.providers.External.Execute(ctx, capability.ExtractAnswer{TicketID: st.TicketID}))
	if err != nil {
		return st, err
	}
	stored, err := resultAs[domain.TicketState](p.providers.State.Execute(ctx, capability.StoreAnswer{State: st, Answer: answer}))
	if err != nil {
		return st, err
	}
	stored.NeedsClarification = false
	return stored, nil
}

// retrieve searches the knowledge base with the raw query text.
func (p *Pipeline) retrieve(ctx context.Context, st domain.TicketState) (domain.TicketState, error) {
	articles, err := resultAs[[]domain.KBArticle](p.providers.External.Execute(ctx, capability.KnowledgeBaseSearch{Query: st.Query}))
	if err != nil {
		return st, err
	}
	stored, err := resultAs[domain.TicketState](p.providers.State.Execute(ctx, capability.StoreData{State: st, Articles: articles}))
	if err != nil {
		return st, err
	}
	p.logger.Info("knowledge base searched", zap.String("ticket_id", st.TicketID), zap.Int("results", len(articles)))
	return stored, nil
}

// candidateSolutions is the fixed set offered for evaluation each run.
var candidateSolutions = []capability.Solution{
	{Solution: "Standard troubleshooting", Confidence: 0.75},
	{Solution: "Advanced resolution", Confidence: 0.85},
}

// decide computes the solution score and delegates the escalation decision.
func (p *Pipeline) decide(ctx context.Context, st domain.TicketState) (domain.TicketState, error) {
	eval, err := p.providers.Common.Execute(ctx, capability.SolutionEvaluation{Solutions: candidateSolutions})
	if err != nil {
		return st, err
	}

	score := solutionScore(eval, st.KBResults, st.Priority, sentimentOf(st))

	escalate, err := resultAs[bool](p.providers.External.Execute(ctx, capability.EscalationDecision{Score: score}))
	if err != nil {
		return st, err
	}
	updated, err := resultAs[domain.TicketState](p.providers.State.Execute(ctx, capability.UpdatePayload{
		State:              st,
		SolutionScore:      score,
		EscalationRequired: escalate,
	}))
	if err != nil {
		return st, err
	}

	p.logger.Info("decision made",
		zap.String("ticket_id", st.TicketID),
		zap.Int("solution_score", score),
		zap.Bool("escalation_required", escalate))
	return updated, nil
}

// sentimentOf reads the parsed sentiment, defaulting to neutral when the
// UNDERSTAND stage did not run or was degraded.
func sentimentOf(st domain.TicketState) domain.Sentiment {
	if st.StructuredData == nil {
		return domain.SentimentNeutral
	}
	sentiment, ok := st.StructuredData["sentiment"].(domain.Sentiment)
	if !ok {
		return domain.SentimentNeutral
	}
	return sentiment
}

// update applies the escalation outcome to the ticketing backend. It only
// runs on the escalate branch; the close path covers degraded records that
// reach it without the flag set.
func (p *Pipeline) update(ctx context.Context, st domain.TicketState) (domain.TicketState, error) {
	if st.EscalationRequired {
		_, err := resultAs[bool](p.providers.External.Execute(ctx, capability.UpdateTicket{
			TicketID: st.TicketID,
			Updates: map[string]any{
				"status":      string(domain.StatusEscalated),
				"priority":    string(domain.PriorityHigh),
				"assigned_to": "senior_support",
			},
		}))
		if err != nil {
			return st, err
		}
		p.logger.Info("ticket escalated to senior support", zap.String("ticket_id", st.TicketID))
		return st, nil
	}

	if _, err := resultAs[bool](p.providers.External.Execute(ctx, capability.CloseTicket{TicketID: st.TicketID})); err != nil {
		return st, err
	}
	return st, nil
}

// create drafts the customer response with the full record as context.
func (p *Pipeline) create(ctx context.Context, st domain.TicketState) (domain.TicketState, error) {
	response, err := resultAs[string](p.providers.Common.Execute(ctx, capability.ResponseGeneration{Context: st}))
	if err != nil {
		return st, err
	}
	st.ResponseDraft = response
	return st, nil
}

// do executes the fixed action batch and, on the non-escalated path, notifies
// the customer.
func (p *Pipeline) do(ctx context.Context, st domain.TicketState) (domain.TicketState, error) {
	_, err := resultAs[bool](p.providers.External.Execute(ctx, capability.ExecuteAPICalls{
		Actions: []capability.Action{
			{Action: "log_ticket", TicketID: st.TicketID},
			{Action: "update_crm", Customer: st.CustomerName},
		},
	}))
	if err != nil {
		return st, err
	}

	if !st.EscalationRequired {
		message := fmt.Sprintf("Your ticket %s has been resolved.", st.TicketID)
		if _, err := resultAs[bool](p.providers.External.Execute(ctx, capability.TriggerNotifications{
			Recipient: st.Email,
			Message:   message,
		})); err != nil {
			return st, err
		}
	}
	return st, nil
}

// complete re-validates the record, assembles the final payload, and stores
// it through the output capability. A failed re-validation is logged but does
// not stop the best-effort payload from being produced.
func (p *Pipeline) complete(ctx context.Context, st domain.TicketState) (domain.TicketState, error) {
	if err := st.Validate(); err != nil {
		p.logger.Warn("terminal validation failed", zap.String("ticket_id", st.TicketID), zap.Error(err))
	}

	payload := domain.FinalPayload{
		TicketID:        st.TicketID,
		CustomerName:    st.CustomerName,
		Email:           st.Email,
		Status:          st.Status(),
		SolutionScore:   st.SolutionScore,
		Response:        st.ResponseDraft,
		KBArticlesFound: len(st.KBResults),
		CompletedStages: st.CompletedStages,
	}

	stored, err := resultAs[domain.TicketState](p.providers.State.Execute(ctx, capability.OutputPayload{State: st, Payload: payload}))
	if err != nil {
		return st, err
	}
	stored.IsComplete = true
	return stored, nil
}
