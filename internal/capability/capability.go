// Package capability implements the three mocked capability provider groups
// consumed by the workflow pipeline: common (text handling and scoring),
// external (entity/KB/ticket systems), and state (record storage).
//
// Each provider exposes a uniform Execute entry point over a closed set of
// typed request variants. A request a provider does not recognize yields
// ErrUnsupported; there is no silent placeholder result.
package capability

import (
	"context"
	"errors"
	"fmt"
)

// Name identifies a capability on the wire and in logs.
type Name string

// Common provider capabilities.
const (
	NameParseRequestText   Name = "parse_request_text"
	NameNormalizeFields    Name = "normalize_fields"
	NameAddFlags           Name = "add_flags_calculations"
	NameSolutionEvaluation Name = "solution_evaluation"
	NameResponseGeneration Name = "response_generation"
)

// External provider capabilities.
const (
	NameExtractEntities      Name = "extract_entities"
	NameEnrichRecords        Name = "enrich_records"
	NameClarifyQuestion      Name = "clarify_question"
	NameExtractAnswer        Name = "extract_answer"
	NameKnowledgeBaseSearch  Name = "knowledge_base_search"
	NameEscalationDecision   Name = "escalation_decision"
	NameUpdateTicket         Name = "update_ticket"
	NameCloseTicket          Name = "close_ticket"
	NameExecuteAPICalls      Name = "execute_api_calls"
	NameTriggerNotifications Name = "trigger_notifications"
)

// State provider capabilities.
const (
	NameAcceptPayload Name = "accept_payload"
	NameStoreAnswer   Name = "store_answer"
	NameStoreData     Name = "store_data"
	NameUpdatePayload Name = "update_payload"
	NameOutputPayload Name = "output_payload"
)

// Request is one capability invocation. The concrete types in this package
// form the closed request set; providers reject anything else.
type Request interface {
	Capability() Name
}

// Executor is the uniform provider contract.
type Executor interface {
	Execute(ctx context.Context, req Request) (any, error)
}

// ErrUnsupported marks a request routed to a provider that does not implement
// it.
var ErrUnsupported = errors.New("unsupported capability")

func unsupported(provider string, req Request) error {
	return fmt.Errorf("%w: %s does not implement %q", ErrUnsupported, provider, req.Capability())
}
