package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWorkflowDescriptorMissingFileFallsBack(t *testing.T) {
	descriptor, err := LoadWorkflowDescriptor(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultWorkflowDescriptor(), descriptor)
}

func TestLoadWorkflowDescriptor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workflow.yaml")
	doc := `version: 1
name: CustomerSupportWorkflow
description: test descriptor
input_schema:
  ticket_id: TKT-<digits>
stages:
  - name: INTAKE
    description: accept the ticket
  - name: COMPLETE
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	descriptor, err := LoadWorkflowDescriptor(path)
	require.NoError(t, err)
	assert.Equal(t, "CustomerSupportWorkflow", descriptor.Name)
	assert.Equal(t, []string{"INTAKE", "COMPLETE"}, descriptor.StageNames())
	assert.Equal(t, "accept the ticket", descriptor.Stages[0].Description)
}

func TestLoadWorkflowDescriptorRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stages: [::"), 0o600))

	_, err := LoadWorkflowDescriptor(path)
	require.Error(t, err)
}

func TestLoadWorkflowDescriptorRejectsEmptyStageList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: x\nstages: []\n"), 0o600))

	_, err := LoadWorkflowDescriptor(path)
	require.Error(t, err)
}

func TestDefaultWorkflowDescriptorShape(t *testing.T) {
	descriptor := DefaultWorkflowDescriptor()
	assert.Len(t, descriptor.Stages, 11)
	assert.Equal(t, "INTAKE", descriptor.Stages[0].Name)
	assert.Equal(t, "COMPLETE", descriptor.Stages[10].Name)
	assert.NotEmpty(t, descriptor.InputSchema["priority"])
}
