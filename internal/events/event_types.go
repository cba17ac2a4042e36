package events

import (
	"time"

	"github.com/spec-kit/support-workflow/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRunStarted        EventType = "run_started"
	EventRunStageCompleted EventType = "run_stage_completed"
	EventRunEscalated      EventType = "run_escalated"
	EventRunCompleted      EventType = "run_completed"
)

// Event represents a workflow event emitted during a run.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RunID     string      `json:"run_id"`
	TicketID  string      `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RunStartedPayload payload.
type RunStartedPayload struct {
	CustomerName string          `json:"customer_name"`
	Priority     domain.Priority `json:"priority"`
}

// RunStageCompletedPayload payload.
type RunStageCompletedPayload struct {
	Stage domain.Stage `json:"stage"`
}

// RunEscalatedPayload payload.
type RunEscalatedPayload struct {
	SolutionScore int `json:"solution_score"`
}

// RunCompletedPayload payload.
type RunCompletedPayload struct {
	Status          domain.Status `json:"status"`
	SolutionScore   int           `json:"solution_score"`
	KBArticlesFound int           `json:"kb_articles_found"`
	IsComplete      bool          `json:"is_complete"`
}
