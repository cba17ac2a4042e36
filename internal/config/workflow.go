package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WorkflowDescriptor is the YAML document describing the pipeline: name,
// input schema, and the ordered stage list. The stage list must match the
// compiled-in stage set; the descriptor exists so the deployed pipeline shape
// is visible and diffable, not to make stages pluggable.
type WorkflowDescriptor struct {
	Version     int               `yaml:"version"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	InputSchema map[string]string `yaml:"input_schema"`
	Stages      []StageDescriptor `yaml:"stages"`
}

// StageDescriptor describes one pipeline stage.
type StageDescriptor struct {
	Name        string `yaml:"name"`
	Mode        string `yaml:"mode,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// StageNames returns the declared stage names in order.
func (d *WorkflowDescriptor) StageNames() []string {
	names := make([]string, 0, len(d.Stages))
	for _, s := range d.Stages {
		names = append(names, s.Name)
	}
	return names
}

// DefaultWorkflowDescriptor is used when no descriptor file exists.
func DefaultWorkflowDescriptor() *WorkflowDescriptor {
	stages := []string{
		"INTAKE", "UNDERSTAND", "PREPARE", "ASK", "WAIT", "RETRIEVE",
		"DECIDE", "UPDATE", "CREATE", "DO", "COMPLETE",
	}
	descriptor := &WorkflowDescriptor{
		Version:     1,
		Name:        "CustomerSupportWorkflow",
		Description: "Linear workflow for the customer-support ticket lifecycle",
		InputSchema: map[string]string{
			"customer_name": "string",
			"email":         "string",
			"query":         "string",
			"priority":      "low|medium|high|critical",
			"ticket_id":     "TKT-<digits>",
		},
	}
	for _, name := range stages {
		descriptor.Stages = append(descriptor.Stages, StageDescriptor{Name: name})
	}
	return descriptor
}

// LoadWorkflowDescriptor reads the descriptor from path, falling back to the
// built-in default when the file does not exist.
func LoadWorkflowDescriptor(path string) (*WorkflowDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultWorkflowDescriptor(), nil
		}
		return nil, fmt.Errorf("read workflow descriptor: %w", err)
	}

	var descriptor WorkflowDescriptor
	if err := yaml.Unmarshal(data, &descriptor); err != nil {
		return nil, fmt.Errorf("parse workflow descriptor: %w", err)
	}
	if descriptor.Name == "" || len(descriptor.Stages) == 0 {
		return nil, fmt.Errorf("workflow descriptor %s missing name or stages", path)
	}
	return &descriptor, nil
}
