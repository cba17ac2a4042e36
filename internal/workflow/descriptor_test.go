package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-workflow/internal/config"
)

func TestValidateDescriptorAcceptsDefault(t *testing.T) {
	require.NoError(t, ValidateDescriptor(config.DefaultWorkflowDescriptor()))
}

func TestValidateDescriptorRejectsMissingStage(t *testing.T) {
	descriptor := config.DefaultWorkflowDescriptor()
	descriptor.Stages = descriptor.Stages[:len(descriptor.Stages)-1]

	err := ValidateDescriptor(descriptor)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declares 10 stages")
}

func TestValidateDescriptorRejectsWrongOrder(t *testing.T) {
	descriptor := config.DefaultWorkflowDescriptor()
	descriptor.Stages[0], descriptor.Stages[1] = descriptor.Stages[1], descriptor.Stages[0]

	require.Error(t, ValidateDescriptor(descriptor))
}

func TestValidateDescriptorRejectsRenamedStage(t *testing.T) {
	descriptor := config.DefaultWorkflowDescriptor()
	descriptor.Stages[6].Name = "TRIAGE"

	require.Error(t, ValidateDescriptor(descriptor))
}
