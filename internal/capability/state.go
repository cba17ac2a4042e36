package capability

import (
	"context"

	"go.uber.org/zap"
)

// StateProvider mocks the record storage system. Every capability returns the
// updated record; the provider itself holds nothing between calls.
type StateProvider struct {
	logger *zap.Logger
}

// NewStateProvider constructs the provider.
func NewStateProvider(logger *zap.Logger) *StateProvider {
	return &StateProvider{logger: logger}
}

// Execute dispatches over the state capability set.
func (p *StateProvider) Execute(ctx context.Context, req Request) (any, error) {
	_ = ctx

	switch r := req.(type) {
	case AcceptPayload:
		return r.State, nil
	case StoreAnswer:
		st := r.State
		st.ClarificationAnswer = r.Answer
		return st, nil
	case StoreData:
		st := r.State
		st.KBResults = r.Articles
		return st, nil
	case UpdatePayload:
		st := r.State
		st.SolutionScore = r.SolutionScore
		st.EscalationRequired = r.EscalationRequired
		return st, nil
	case OutputPayload:
		st := r.State
		payload := r.Payload
		st.FinalPayload = &payload
		return st, nil
	default:
		return nil, unsupported("state", req)
	}
}

var _ Executor = (*StateProvider)(nil)
