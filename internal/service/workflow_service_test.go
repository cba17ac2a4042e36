package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/support-workflow/internal/capability"
	"github.com/spec-kit/support-workflow/internal/config"
	"github.com/spec-kit/support-workflow/internal/domain"
	"github.com/spec-kit/support-workflow/internal/events"
	"github.com/spec-kit/support-workflow/internal/observability"
	"github.com/spec-kit/support-workflow/internal/repository"
	"github.com/spec-kit/support-workflow/internal/workflow"
	apperrors "github.com/spec-kit/support-workflow/pkg/util"
)

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

type fakeRunRepo struct {
	created   []*repository.WorkflowRun
	createErr error
	runs      []repository.WorkflowRun
}

func (r *fakeRunRepo) Create(_ context.Context, run *repository.WorkflowRun) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, run)
	return nil
}

func (r *fakeRunRepo) ListByTicket(_ context.Context, ticketID string) ([]repository.WorkflowRun, error) {
	var matched []repository.WorkflowRun
	for _, run := range r.runs {
		if run.TicketID == ticketID {
			matched = append(matched, run)
		}
	}
	return matched, nil
}

func newTestService(repo repository.RunRepository, dispatcher events.Dispatcher) *WorkflowService {
	logger := zap.NewNop()
	pipeline := workflow.New(workflow.Providers{
		Common:   capability.NewCommonProvider(logger),
		External: capability.NewExternalProvider(logger),
		State:    capability.NewStateProvider(logger),
	}, logger, observability.NewMetrics())

	return NewWorkflowService(config.WorkflowConfig{PayloadCacheTTLMin: 60}, WorkflowDependencies{
		Pipeline:   pipeline,
		RunRepo:    repo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
}

func TestProcessTicketPublishesEventsAndPersists(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	repo := &fakeRunRepo{}
	svc := newTestService(repo, dispatcher)

	result, err := svc.ProcessTicket(context.Background(), TicketInput{
		CustomerName: "John Smith",
		Email:        "john@example.com",
		Query:        "Our production system is completely down since yesterday and we are losing customers",
		Priority:     "critical",
		TicketID:     "TKT-10005",
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.RunID)
	assert.True(t, result.State.IsComplete)
	assert.Equal(t, domain.StatusEscalated, result.State.Status())

	// Escalated run: started, one event per completed stage, escalated,
	// completed, in that order.
	stageCount := len(result.State.CompletedStages)
	require.Len(t, dispatcher.published, stageCount+3)
	assert.Equal(t, events.EventRunStarted, dispatcher.published[0].Type)
	for i := 0; i < stageCount; i++ {
		event := dispatcher.published[1+i]
		assert.Equal(t, events.EventRunStageCompleted, event.Type)
		assert.Equal(t, events.RunStageCompletedPayload{Stage: result.State.CompletedStages[i]}, event.Payload)
	}
	assert.Equal(t, events.EventRunEscalated, dispatcher.published[stageCount+1].Type)
	assert.Equal(t, events.EventRunCompleted, dispatcher.published[stageCount+2].Type)
	for _, event := range dispatcher.published {
		assert.NotEmpty(t, event.ID)
		assert.Equal(t, result.RunID, event.RunID)
		assert.Equal(t, "TKT-10005", event.TicketID)
		assert.False(t, event.Timestamp.IsZero())
	}

	completed, ok := dispatcher.published[stageCount+2].Payload.(events.RunCompletedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.StatusEscalated, completed.Status)
	assert.Equal(t, 79, completed.SolutionScore)

	require.Len(t, repo.created, 1)
	run := repo.created[0]
	assert.Equal(t, result.RunID, run.ID)
	assert.Equal(t, "TKT-10005", run.TicketID)
	assert.Equal(t, domain.StatusEscalated, run.Status)
	assert.Equal(t, 79, run.SolutionScore)
	assert.Contains(t, run.CompletedStages, "UPDATE")

	var payload domain.FinalPayload
	require.NoError(t, json.Unmarshal(run.Payload, &payload))
	assert.Equal(t, "TKT-10005", payload.TicketID)
}

func TestProcessTicketNoEscalationEvent(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	svc := newTestService(nil, dispatcher)

	result, err := svc.ProcessTicket(context.Background(), TicketInput{
		CustomerName: "Carlos Rodriguez",
		Email:        "carlos@example.com",
		Query:        "How to reset my password for the main product?",
		Priority:     "medium",
		TicketID:     "TKT-10007",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusResolved, result.State.Status())

	for _, event := range dispatcher.published {
		assert.NotEqual(t, events.EventRunEscalated, event.Type)
	}
	last := dispatcher.published[len(dispatcher.published)-1]
	assert.Equal(t, events.EventRunCompleted, last.Type)
}

func TestProcessTicketValidationError(t *testing.T) {
	svc := newTestService(nil, nil)

	tests := []TicketInput{
		{CustomerName: "A", Email: "a@example.com", Query: "some query text", Priority: "low", TicketID: "BAD-1"},
		{CustomerName: "A", Email: "a@example.com", Query: "some query text", Priority: "urgent", TicketID: "TKT-1"},
	}

	for _, input := range tests {
		result, err := svc.ProcessTicket(context.Background(), input)
		require.Error(t, err)
		assert.Nil(t, result)

		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	}
}

func TestProcessTicketSurvivesPersistenceFailure(t *testing.T) {
	repo := &fakeRunRepo{createErr: errors.New("database unavailable")}
	svc := newTestService(repo, nil)

	result, err := svc.ProcessTicket(context.Background(), TicketInput{
		CustomerName: "Emma Garcia",
		Email:        "emma@example.com",
		Query:        "Login issue",
		Priority:     "low",
		TicketID:     "TKT-10006",
	})
	require.NoError(t, err, "persistence is best-effort")
	assert.True(t, result.State.IsComplete)
}

func TestListRuns(t *testing.T) {
	repo := &fakeRunRepo{runs: []repository.WorkflowRun{
		{ID: "run-1", TicketID: "TKT-10005"},
		{ID: "run-2", TicketID: "TKT-10006"},
	}}
	svc := newTestService(repo, nil)

	runs, err := svc.ListRuns(context.Background(), "TKT-10005")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0].ID)
}

func TestListRunsWithoutPersistence(t *testing.T) {
	svc := newTestService(nil, nil)

	_, err := svc.ListRuns(context.Background(), "TKT-10005")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
