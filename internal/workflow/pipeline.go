// Package workflow implements the fixed eleven-stage ticket pipeline: a
// deterministic state machine over one evolving ticket record, with a single
// data-dependent branch (escalate vs. continue) after the DECIDE stage.
package workflow

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/support-workflow/internal/capability"
	"github.com/spec-kit/support-workflow/internal/domain"
	"github.com/spec-kit/support-workflow/internal/observability"
)

// Providers bundles the three capability provider groups a pipeline calls.
type Providers struct {
	Common   capability.Executor
	External capability.Executor
	State    capability.Executor
}

// Pipeline drives one ticket record through the stage sequence. It is
// stateless across runs; concurrent runs are independent.
type Pipeline struct {
	providers Providers
	logger    *zap.Logger
	metrics   *observability.Metrics
}

// New constructs a pipeline over the given providers.
func New(providers Providers, logger *zap.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{providers: providers, logger: logger, metrics: metrics}
}

type stageFunc func(context.Context, domain.TicketState) (domain.TicketState, error)

func (p *Pipeline) stageHandler(stage domain.Stage) stageFunc {
	switch stage {
	case domain.StageIntake:
		return p.intake
	case domain.StageUnderstand:
		return p.understand
	case domain.StagePrepare:
		return p.prepare
	case domain.StageAsk:
		return p.ask
	case domain.StageWait:
		return p.wait
	case domain.StageRetrieve:
		return p.retrieve
	case domain.StageDecide:
		return p.decide
	case domain.StageUpdate:
		return p.update
	case domain.StageCreate:
		return p.create
	case domain.StageDo:
		return p.do
	case domain.StageComplete:
		return p.complete
	default:
		return nil
	}
}

// Run executes the pipeline over the input record and returns the terminal
// record. A validation failure at entry aborts before any stage executes and
// echoes the input record alongside the error; that is the only error this
// method returns. Stage-local failures are logged, the failing stage's writes
// are discarded, and execution continues with the pre-stage record.
func (p *Pipeline) Run(ctx context.Context, input domain.TicketState) (domain.TicketState, error) {
	if err := input.Validate(); err != nil {
		p.logger.Error("entry validation failed", zap.String("ticket_id", input.TicketID), zap.Error(err))
		return input, err
	}

	st := input
	for _, stage := range domain.PipelineStages {
		if stage == domain.StageUpdate && !shouldEscalate(st) {
			continue
		}

		handler := p.stageHandler(stage)
		start := time.Now()
		next, err := handler(ctx, st)
		elapsed := time.Since(start)

		if err != nil {
			p.logger.Error("stage failed; continuing with prior record",
				zap.String("ticket_id", st.TicketID),
				zap.String("stage", string(stage)),
				zap.Error(err))
			p.metrics.RecordStage(string(stage), false, elapsed)
			continue
		}

		next.CurrentStage = stage
		next.CompletedStages = append(next.CompletedStages, stage)
		st = next
		p.metrics.RecordStage(string(stage), true, elapsed)
	}

	p.metrics.RecordRun(string(st.Status()))
	p.logger.Info("workflow finished",
		zap.String("ticket_id", st.TicketID),
		zap.String("status", string(st.Status())),
		zap.Bool("is_complete", st.IsComplete),
		zap.Int("stages_completed", len(st.CompletedStages)))
	return st, nil
}
