package workflow

import (
	"fmt"

	"github.com/spec-kit/support-workflow/internal/config"
	"github.com/spec-kit/support-workflow/internal/domain"
)

// ValidateDescriptor checks that a workflow descriptor declares exactly the
// compiled-in stage sequence. A mismatched descriptor is a deployment error
// caught at startup.
func ValidateDescriptor(descriptor *config.WorkflowDescriptor) error {
	declared := descriptor.StageNames()
	if len(declared) != len(domain.PipelineStages) {
		return fmt.Errorf("workflow descriptor declares %d stages, pipeline has %d",
			len(declared), len(domain.PipelineStages))
	}
	for i, name := range declared {
		if domain.Stage(name) != domain.PipelineStages[i] {
			return fmt.Errorf("workflow descriptor stage %d is %q, pipeline expects %q",
				i, name, domain.PipelineStages[i])
		}
	}
	return nil
}
