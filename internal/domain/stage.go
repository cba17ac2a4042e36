package domain

// Stage identifies a pipeline stage. StageInit is the "not yet started"
// sentinel; it never appears in CompletedStages.
type Stage string

const (
	StageInit       Stage = "INIT"
	StageIntake     Stage = "INTAKE"
	StageUnderstand Stage = "UNDERSTAND"
	StagePrepare    Stage = "PREPARE"
	StageAsk        Stage = "ASK"
	StageWait       Stage = "WAIT"
	StageRetrieve   Stage = "RETRIEVE"
	StageDecide     Stage = "DECIDE"
	StageUpdate     Stage = "UPDATE"
	StageCreate     Stage = "CREATE"
	StageDo         Stage = "DO"
	StageComplete   Stage = "COMPLETE"
)

// PipelineStages lists every executable stage in fixed order. StageUpdate is
// conditional: it runs only when the DECIDE stage sets the escalation flag.
var PipelineStages = []Stage{
	StageIntake,
	StageUnderstand,
	StagePrepare,
	StageAsk,
	StageWait,
	StageRetrieve,
	StageDecide,
	StageUpdate,
	StageCreate,
	StageDo,
	StageComplete,
}

// KnownStage reports whether s belongs to the fixed stage set (INIT included).
func KnownStage(s Stage) bool {
	if s == StageInit {
		return true
	}
	for _, stage := range PipelineStages {
		if stage == s {
			return true
		}
	}
	return false
}
