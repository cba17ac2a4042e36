package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Priority enumerates SLA urgency for a support ticket.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// ParsePriority validates a caller-supplied priority value. Priorities are
// checked once at the boundary; stages trust the parsed value.
func ParsePriority(raw string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(raw))) {
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	case PriorityCritical:
		return PriorityCritical, nil
	default:
		return "", fmt.Errorf("unknown priority %q", raw)
	}
}

// Status enumerates terminal outcomes of a workflow run.
type Status string

const (
	StatusEscalated Status = "escalated"
	StatusResolved  Status = "resolved"
)

// Sentiment labels produced by request parsing.
type Sentiment string

const (
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Entities holds category-grouped matches extracted from the query text.
type Entities struct {
	Products []string `json:"products"`
	Accounts []string `json:"accounts"`
	Dates    []string `json:"dates"`
}

// KBArticle is a single knowledge-base search hit.
type KBArticle struct {
	Title     string  `json:"title"`
	URL       string  `json:"url"`
	Relevance float64 `json:"relevance"`
}

// FinalPayload is the sole externally consumed output of a run.
type FinalPayload struct {
	TicketID        string  `json:"ticket_id"`
	CustomerName    string  `json:"customer_name"`
	Email           string  `json:"email"`
	Status          Status  `json:"status"`
	SolutionScore   int     `json:"solution_score"`
	Response        string  `json:"response"`
	KBArticlesFound int     `json:"kb_articles_found"`
	CompletedStages []Stage `json:"completed_stages"`
}

// TicketState is the single record threaded through the stage pipeline.
// Input fields are immutable after construction; each derived field is owned
// by exactly one stage and written at most once per run. Stages receive the
// state by value and return a new value, so a failed stage leaves no writes
// behind.
type TicketState struct {
	// Input
	CustomerName string   `json:"customer_name"`
	Email        string   `json:"email"`
	Query        string   `json:"query"`
	Priority     Priority `json:"priority"`
	TicketID     string   `json:"ticket_id"`

	// Derived
	StructuredData        map[string]any `json:"structured_data,omitempty"`
	ExtractedEntities     *Entities      `json:"extracted_entities,omitempty"`
	NormalizedFields      map[string]any `json:"normalized_fields,omitempty"`
	EnrichedData          map[string]any `json:"enriched_data,omitempty"`
	Flags                 map[string]any `json:"flags,omitempty"`
	ClarificationAnswer   string         `json:"clarification_answer,omitempty"`
	KBResults             []KBArticle    `json:"kb_results,omitempty"`
	SolutionScore         int            `json:"solution_score"`
	EscalationRequired    bool           `json:"escalation_required"`
	ResponseDraft         string         `json:"response_draft,omitempty"`
	FinalPayload          *FinalPayload  `json:"final_payload,omitempty"`
	ClarificationRequests []string       `json:"clarification_requests,omitempty"`

	// Control
	CurrentStage       Stage   `json:"current_stage"`
	CompletedStages    []Stage `json:"completed_stages"`
	NeedsClarification bool    `json:"needs_clarification"`
	IsComplete         bool    `json:"is_complete"`
}

var ticketIDPattern = regexp.MustCompile(`^TKT-\d+$`)

// NewTicketState builds the initial record for a run. The priority string is
// parsed here so stages never re-validate it.
func NewTicketState(customerName, email, query, rawPriority, ticketID string) (TicketState, error) {
	priority, err := ParsePriority(rawPriority)
	if err != nil {
		return TicketState{}, err
	}
	st := TicketState{
		CustomerName: strings.TrimSpace(customerName),
		Email:        strings.TrimSpace(email),
		Query:        strings.TrimSpace(query),
		Priority:     priority,
		TicketID:     strings.TrimSpace(ticketID),
		CurrentStage: StageInit,
	}
	if err := st.Validate(); err != nil {
		return TicketState{}, err
	}
	return st, nil
}

// Validate checks record integrity: ticket id format and stage membership.
// Called at pipeline entry (fatal) and at the terminal stage (logged only).
func (s TicketState) Validate() error {
	if !ticketIDPattern.MatchString(s.TicketID) {
		return fmt.Errorf("invalid ticket_id format: %q", s.TicketID)
	}
	if !KnownStage(s.CurrentStage) {
		return fmt.Errorf("invalid current_stage: %q", s.CurrentStage)
	}
	return nil
}

// Status derives the terminal outcome from the escalation flag.
func (s TicketState) Status() Status {
	if s.EscalationRequired {
		return StatusEscalated
	}
	return StatusResolved
}

// HasCompleted reports whether the given stage appears in the completed list.
func (s TicketState) HasCompleted(stage Stage) bool {
	for _, done := range s.CompletedStages {
		if done == stage {
			return true
		}
	}
	return false
}
