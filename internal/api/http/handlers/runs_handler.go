package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-workflow/internal/api/dto"
	"github.com/spec-kit/support-workflow/internal/service"
	apperrors "github.com/spec-kit/support-workflow/pkg/util"
)

// demoTickets are the three canned sample runs: one escalation, one
// clarification, one clean resolution.
var demoTickets = []service.TicketInput{
	{
		CustomerName: "Emma Brown",
		Email:        "emma.b@example.com",
		Query:        "Our production system is completely down since yesterday and we are losing customers",
		Priority:     "critical",
		TicketID:     "TKT-10005",
	},
	{
		CustomerName: "Alice Smith",
		Email:        "alice.smith@example.com",
		Query:        "Login issue",
		Priority:     "low",
		TicketID:     "TKT-10006",
	},
	{
		CustomerName: "Bob Johnson",
		Email:        "bob.j@example.com",
		Query:        "How to reset my password for the main product?",
		Priority:     "medium",
		TicketID:     "TKT-10007",
	},
}

// RunsHandler manages workflow run endpoints.
type RunsHandler struct {
	service *service.WorkflowService
}

// NewRunsHandler constructs handler.
func NewRunsHandler(workflowService *service.WorkflowService) *RunsHandler {
	return &RunsHandler{service: workflowService}
}

// SubmitTicket POST /workflow/runs.
func (h *RunsHandler) SubmitTicket(c *fiber.Ctx) error {
	var req dto.SubmitTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Query) == "" || strings.TrimSpace(req.TicketID) == "" {
		return apperrors.NewValidationError("query and ticket_id required", nil)
	}

	result, err := h.service.ProcessTicket(c.Context(), service.TicketInput{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Query:        req.Query,
		Priority:     req.Priority,
		TicketID:     req.TicketID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": runResponse(result)})
}

// RunDemo POST /workflow/runs/demo.
func (h *RunsHandler) RunDemo(c *fiber.Ctx) error {
	results := make([]dto.RunResponse, 0, len(demoTickets))
	for _, input := range demoTickets {
		result, err := h.service.ProcessTicket(c.Context(), input)
		if err != nil {
			return err
		}
		results = append(results, runResponse(result))
	}
	return c.JSON(fiber.Map{"data": results})
}

// ListRuns GET /workflow/runs/:ticket_id.
func (h *RunsHandler) ListRuns(c *fiber.Ctx) error {
	ticketID := c.Params("ticket_id")
	runs, err := h.service.ListRuns(c.Context(), ticketID)
	if err != nil {
		return err
	}

	entries := make([]dto.RunHistoryEntry, 0, len(runs))
	for _, run := range runs {
		entries = append(entries, dto.RunHistoryEntry{
			RunID:           run.ID,
			TicketID:        run.TicketID,
			CustomerName:    run.CustomerName,
			Priority:        run.Priority,
			Status:          run.Status,
			SolutionScore:   run.SolutionScore,
			KBArticlesFound: run.KBArticlesFound,
			CompletedStages: run.CompletedStages,
			CreatedAt:       run.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": entries})
}

func runResponse(result *service.RunResult) dto.RunResponse {
	return dto.RunResponse{
		RunID:           result.RunID,
		TicketID:        result.State.TicketID,
		Status:          result.State.Status(),
		IsComplete:      result.State.IsComplete,
		CompletedStages: result.State.CompletedStages,
		FinalPayload:    result.State.FinalPayload,
	}
}
