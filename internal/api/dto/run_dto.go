package dto

import (
	"time"

	"github.com/spec-kit/support-workflow/internal/domain"
)

// TokenRequest payload.
type TokenRequest struct {
	APIKey   string `json:"api_key"`
	ClientID string `json:"client_id,omitempty"`
}

// TokenResponse payload.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// SubmitTicketRequest payload for starting a workflow run.
type SubmitTicketRequest struct {
	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`
	Query        string `json:"query"`
	Priority     string `json:"priority"`
	TicketID     string `json:"ticket_id"`
}

// RunResponse is the result of one workflow run.
type RunResponse struct {
	RunID           string               `json:"run_id"`
	TicketID        string               `json:"ticket_id"`
	Status          domain.Status        `json:"status"`
	IsComplete      bool                 `json:"is_complete"`
	CompletedStages []domain.Stage       `json:"completed_stages"`
	FinalPayload    *domain.FinalPayload `json:"final_payload"`
}

// RunHistoryEntry is one persisted run.
type RunHistoryEntry struct {
	RunID           string          `json:"run_id"`
	TicketID        string          `json:"ticket_id"`
	CustomerName    string          `json:"customer_name"`
	Priority        domain.Priority `json:"priority"`
	Status          domain.Status   `json:"status"`
	SolutionScore   int             `json:"solution_score"`
	KBArticlesFound int             `json:"kb_articles_found"`
	CompletedStages []string        `json:"completed_stages"`
	CreatedAt       time.Time       `json:"created_at"`
}
