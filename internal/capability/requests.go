package capability

import "github.com/spec-kit/support-workflow/internal/domain"

// Requests handled by the common provider.

// ParseRequestText asks for structured fields derived from raw query text.
type ParseRequestText struct {
	Text string
}

func (ParseRequestText) Capability() Name { return NameParseRequestText }

// ParsedRequest is the result of ParseRequestText.
type ParsedRequest struct {
	StructuredText string
	KeyPhrases     []string
	Sentiment      domain.Sentiment
}

// NormalizeFields asks for a normalized copy of structured data.
type NormalizeFields struct {
	Data map[string]any
}

func (NormalizeFields) Capability() Name { return NameNormalizeFields }

// AddFlags asks for computed flags given the ticket priority.
type AddFlags struct {
	Priority domain.Priority
}

func (AddFlags) Capability() Name { return NameAddFlags }

// Solution is one candidate resolution offered for evaluation.
type Solution struct {
	Solution   string
	Confidence float64
}

// SolutionEvaluation asks for a base confidence score over candidates.
type SolutionEvaluation struct {
	Solutions []Solution
}

func (SolutionEvaluation) Capability() Name { return NameSolutionEvaluation }

// ResponseGeneration asks for a drafted customer response. The full record is
// passed as context.
type ResponseGeneration struct {
	Context domain.TicketState
}

func (ResponseGeneration) Capability() Name { return NameResponseGeneration }

// Requests handled by the external provider.

// ExtractEntities asks for category-grouped entity matches in the text.
type ExtractEntities struct {
	Text string
}

func (ExtractEntities) Capability() Name { return NameExtractEntities }

// EnrichRecords asks for SLA and history enrichment of structured data.
type EnrichRecords struct {
	Data map[string]any
}

func (EnrichRecords) Capability() Name { return NameEnrichRecords }

// ClarifyQuestion asks for a clarification question to send the customer.
type ClarifyQuestion struct {
	MissingInfo string
}

func (ClarifyQuestion) Capability() Name { return NameClarifyQuestion }

// ExtractAnswer asks for the customer's clarification answer on a ticket.
type ExtractAnswer struct {
	TicketID string
}

func (ExtractAnswer) Capability() Name { return NameExtractAnswer }

// KnowledgeBaseSearch asks for ranked knowledge-base articles.
type KnowledgeBaseSearch struct {
	Query string
}

func (KnowledgeBaseSearch) Capability() Name { return NameKnowledgeBaseSearch }

// EscalationDecision asks whether a solution score warrants escalation.
type EscalationDecision struct {
	Score int
}

func (EscalationDecision) Capability() Name { return NameEscalationDecision }

// UpdateTicket asks the ticketing backend to apply field updates.
type UpdateTicket struct {
	TicketID string
	Updates  map[string]any
}

func (UpdateTicket) Capability() Name { return NameUpdateTicket }

// CloseTicket asks the ticketing backend to close a ticket.
type CloseTicket struct {
	TicketID string
}

func (CloseTicket) Capability() Name { return NameCloseTicket }

// Action is one entry in an ExecuteAPICalls batch.
type Action struct {
	Action   string `json:"action"`
	TicketID string `json:"ticket_id,omitempty"`
	Customer string `json:"customer,omitempty"`
}

// ExecuteAPICalls asks for a batch of side-effect API calls.
type ExecuteAPICalls struct {
	Actions []Action
}

func (ExecuteAPICalls) Capability() Name { return NameExecuteAPICalls }

// TriggerNotifications asks for a notification to be delivered.
type TriggerNotifications struct {
	Recipient string
	Message   string
}

func (TriggerNotifications) Capability() Name { return NameTriggerNotifications }

// Requests handled by the state provider.

// AcceptPayload forwards the freshly validated record through state
// acceptance (pass-through).
type AcceptPayload struct {
	State domain.TicketState
}

func (AcceptPayload) Capability() Name { return NameAcceptPayload }

// StoreAnswer records a clarification answer on the state.
type StoreAnswer struct {
	State  domain.TicketState
	Answer string
}

func (StoreAnswer) Capability() Name { return NameStoreAnswer }

// StoreData records knowledge-base results on the state.
type StoreData struct {
	State    domain.TicketState
	Articles []domain.KBArticle
}

func (StoreData) Capability() Name { return NameStoreData }

// UpdatePayload records the decision outputs on the state.
type UpdatePayload struct {
	State              domain.TicketState
	SolutionScore      int
	EscalationRequired bool
}

func (UpdatePayload) Capability() Name { return NameUpdatePayload }

// OutputPayload records the assembled final payload on the state.
type OutputPayload struct {
	State   domain.TicketState
	Payload domain.FinalPayload
}

func (OutputPayload) Capability() Name { return NameOutputPayload }
