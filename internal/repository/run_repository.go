package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-workflow/internal/domain"
)

// WorkflowRun is one persisted pipeline run.
type WorkflowRun struct {
	ID              string
	TicketID        string
	CustomerName    string
	Email           string
	Priority        domain.Priority
	Status          domain.Status
	SolutionScore   int
	Response        string
	KBArticlesFound int
	CompletedStages []string
	Payload         []byte
	CreatedAt       time.Time
}

// RunRepository stores completed workflow runs.
type RunRepository interface {
	Create(ctx context.Context, run *WorkflowRun) error
	ListByTicket(ctx context.Context, ticketID string) ([]WorkflowRun, error)
}

type runRepository struct {
	pool *pgxpool.Pool
}

// NewRunRepository builds repository.
func NewRunRepository(pool *pgxpool.Pool) RunRepository {
	return &runRepository{pool: pool}
}

func (r *runRepository) Create(ctx context.Context, run *WorkflowRun) error {
	const query = `
        INSERT INTO workflow_runs (id, ticket_id, customer_name, email, priority, status, solution_score, response, kb_articles_found, completed_stages, payload)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query,
		run.ID,
		run.TicketID,
		run.CustomerName,
		run.Email,
		run.Priority,
		run.Status,
		run.SolutionScore,
		run.Response,
		run.KBArticlesFound,
		run.CompletedStages,
		run.Payload,
	).Scan(&run.CreatedAt)
}

func (r *runRepository) ListByTicket(ctx context.Context, ticketID string) ([]WorkflowRun, error) {
	const query = `
        SELECT id, ticket_id, customer_name, email, priority, status, solution_score, response, kb_articles_found, completed_stages, payload, created_at
        FROM workflow_runs WHERE ticket_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []WorkflowRun
	for rows.Next() {
		var run WorkflowRun
		if err := rows.Scan(
			&run.ID,
			&run.TicketID,
			&run.CustomerName,
			&run.Email,
			&run.Priority,
			&run.Status,
			&run.SolutionScore,
			&run.Response,
			&run.KBArticlesFound,
			&run.CompletedStages,
			&run.Payload,
			&run.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, run)
	}
	return result, rows.Err()
}
