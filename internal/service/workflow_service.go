package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/support-workflow/internal/config"
	"github.com/spec-kit/support-workflow/internal/domain"
	"github.com/spec-kit/support-workflow/internal/events"
	"github.com/spec-kit/support-workflow/internal/persistence"
	"github.com/spec-kit/support-workflow/internal/repository"
	"github.com/spec-kit/support-workflow/internal/workflow"
	apperrors "github.com/spec-kit/support-workflow/pkg/util"
)

// TicketInput is the caller-supplied request for one workflow run.
type TicketInput struct {
	CustomerName string
	Email        string
	Query        string
	Priority     string
	TicketID     string
}

// RunResult pairs the terminal record with its run id.
type RunResult struct {
	RunID string
	State domain.TicketState
}

// WorkflowService orchestrates pipeline runs: validation, execution, event
// publication, run persistence, and payload caching. Persistence and caching
// are best-effort; a failure there never fails the run.
type WorkflowService struct {
	pipeline   *workflow.Pipeline
	runs       repository.RunRepository
	cache      *persistence.Redis
	cacheTTL   time.Duration
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// WorkflowDependencies bundles collaborators for the workflow service.
type WorkflowDependencies struct {
	Pipeline   *workflow.Pipeline
	RunRepo    repository.RunRepository
	Cache      *persistence.Redis
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewWorkflowService constructs the service.
func NewWorkflowService(cfg config.WorkflowConfig, deps WorkflowDependencies) *WorkflowService {
	return &WorkflowService{
		pipeline:   deps.Pipeline,
		runs:       deps.RunRepo,
		cache:      deps.Cache,
		cacheTTL:   cfg.PayloadCacheTTL(),
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// ProcessTicket runs one ticket through the pipeline. Input validation errors
// are returned as validation failures; a valid ticket always yields a
// terminal record.
func (s *WorkflowService) ProcessTicket(ctx context.Context, input TicketInput) (*RunResult, error) {
	st, err := domain.NewTicketState(input.CustomerName, input.Email, input.Query, input.Priority, input.TicketID)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), map[string]any{"ticket_id": input.TicketID})
	}

	runID := uuid.NewString()
	s.publish(ctx, events.Event{
		Type:     events.EventRunStarted,
		RunID:    runID,
		TicketID: st.TicketID,
		Payload: events.RunStartedPayload{
			CustomerName: st.CustomerName,
			Priority:     st.Priority,
		},
	})

	final, err := s.pipeline.Run(ctx, st)
	if err != nil {
		// entry validation is re-checked inside the pipeline; a failure
		// there echoes the unmodified record
		return nil, apperrors.NewValidationError(err.Error(), map[string]any{"ticket_id": st.TicketID})
	}

	for _, stage := range final.CompletedStages {
		s.publish(ctx, events.Event{
			Type:     events.EventRunStageCompleted,
			RunID:    runID,
			TicketID: final.TicketID,
			Payload:  events.RunStageCompletedPayload{Stage: stage},
		})
	}
	if final.EscalationRequired {
		s.publish(ctx, events.Event{
			Type:     events.EventRunEscalated,
			RunID:    runID,
			TicketID: final.TicketID,
			Payload:  events.RunEscalatedPayload{SolutionScore: final.SolutionScore},
		})
	}
	s.publish(ctx, events.Event{
		Type:     events.EventRunCompleted,
		RunID:    runID,
		TicketID: final.TicketID,
		Payload: events.RunCompletedPayload{
			Status:          final.Status(),
			SolutionScore:   final.SolutionScore,
			KBArticlesFound: len(final.KBResults),
			IsComplete:      final.IsComplete,
		},
	})

	s.persistRun(ctx, runID, final)
	s.cachePayload(ctx, final)

	return &RunResult{RunID: runID, State: final}, nil
}

// ListRuns returns persisted run history for a ticket.
func (s *WorkflowService) ListRuns(ctx context.Context, ticketID string) ([]repository.WorkflowRun, error) {
	if s.runs == nil {
		return nil, apperrors.NewNotFound("run history", map[string]any{"reason": "persistence disabled"})
	}
	return s.runs.ListByTicket(ctx, ticketID)
}

func (s *WorkflowService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	_ = s.dispatcher.Publish(ctx, event)
}

func (s *WorkflowService) persistRun(ctx context.Context, runID string, final domain.TicketState) {
	if s.runs == nil {
		return
	}

	var payload []byte
	if final.FinalPayload != nil {
		encoded, err := json.Marshal(final.FinalPayload)
		if err != nil {
			s.logger.Warn("marshal final payload", zap.String("ticket_id", final.TicketID), zap.Error(err))
		} else {
			payload = encoded
		}
	}

	stages := make([]string, 0, len(final.CompletedStages))
	for _, stage := range final.CompletedStages {
		stages = append(stages, string(stage))
	}

	run := &repository.WorkflowRun{
		ID:              runID,
		TicketID:        final.TicketID,
		CustomerName:    final.CustomerName,
		Email:           final.Email,
		Priority:        final.Priority,
		Status:          final.Status(),
		SolutionScore:   final.SolutionScore,
		Response:        final.ResponseDraft,
		KBArticlesFound: len(final.KBResults),
		CompletedStages: stages,
		Payload:         payload,
	}
	if err := s.runs.Create(ctx, run); err != nil {
		s.logger.Warn("persist workflow run", zap.String("ticket_id", final.TicketID), zap.Error(err))
	}
}

func (s *WorkflowService) cachePayload(ctx context.Context, final domain.TicketState) {
	if s.cache == nil || s.cache.Client == nil || final.FinalPayload == nil {
		return
	}
	encoded, err := json.Marshal(final.FinalPayload)
	if err != nil {
		return
	}
	key := "workflow:payload:" + final.TicketID
	if err := s.cache.Client.Set(ctx, key, encoded, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("cache final payload", zap.String("ticket_id", final.TicketID), zap.Error(err))
	}
}
