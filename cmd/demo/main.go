// Command demo runs three canned support tickets through the workflow
// pipeline with the stock mock providers and prints each final payload.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spec-kit/support-workflow/internal/capability"
	"github.com/spec-kit/support-workflow/internal/config"
	"github.com/spec-kit/support-workflow/internal/domain"
	"github.com/spec-kit/support-workflow/internal/observability"
	"github.com/spec-kit/support-workflow/internal/workflow"
)

type sample struct {
	label        string
	customerName string
	email        string
	query        string
	priority     string
	ticketID     string
}

var samples = []sample{
	{
		label:        "critical",
		customerName: "Emma Brown",
		email:        "emma.b@example.com",
		query:        "Our production system is completely down since yesterday and we are losing customers",
		priority:     "critical",
		ticketID:     "TKT-10005",
	},
	{
		label:        "clarification",
		customerName: "Alice Smith",
		email:        "alice.smith@example.com",
		query:        "Login issue",
		priority:     "low",
		ticketID:     "TKT-10006",
	},
	{
		label:        "resolved",
		customerName: "Bob Johnson",
		email:        "bob.j@example.com",
		query:        "How to reset my password for the main product?",
		priority:     "medium",
		ticketID:     "TKT-10007",
	},
}

func main() {
	logger, err := observability.NewLogger(config.LoggerConfig{Level: "warn"})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	pipeline := workflow.New(workflow.Providers{
		Common:   capability.NewCommonProvider(logger),
		External: capability.NewExternalProvider(logger),
		State:    capability.NewStateProvider(logger),
	}, logger, observability.NewMetrics())

	ctx := context.Background()
	for _, s := range samples {
		st, err := domain.NewTicketState(s.customerName, s.email, s.query, s.priority, s.ticketID)
		if err != nil {
			log.Fatalf("invalid %s sample: %v", s.label, err)
		}

		final, err := pipeline.Run(ctx, st)
		if err != nil {
			log.Fatalf("run %s sample: %v", s.label, err)
		}

		payload, err := json.MarshalIndent(final.FinalPayload, "", "  ")
		if err != nil {
			log.Fatalf("encode %s payload: %v", s.label, err)
		}
		fmt.Printf("--- %s case (%s) ---\n%s\n\n", s.label, s.ticketID, payload)
	}
}
