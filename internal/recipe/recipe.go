// Package recipe emits the executable workflow description for a compiled
// decomposition, and inverts one back into a decomposition summary. The
// recipe is a plain value: constructing it has no side effects, and the
// external runtime that executes it is not this package's concern.
package recipe

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Step is one executable unit of a recipe. Absent depends_on entries
// between two steps declare that the runtime may execute them concurrently.
type Step struct {
	Name        string `yaml:"name"`
	AgentRef    string `yaml:"agent_ref"`
	Instruction string `yaml:"instruction"`

	// DependsOn lists direct predecessors only, never the transitive
	// closure. It is always present, empty for root steps.
	DependsOn []string `yaml:"depends_on"`

	ForEach   string `yaml:"foreach,omitempty"`
	While     string `yaml:"while,omitempty"`
	BreakWhen string `yaml:"break_when,omitempty"`
	Approval  string `yaml:"approval,omitempty"`

	// ContextInputs references producer outputs as "<producer>.<output>".
	ContextInputs []string `yaml:"context_inputs,omitempty"`
}

// ApprovalRequired is the marker placed on root steps of human-confirmed
// recipes.
const ApprovalRequired = "required"

// Trigger carries the activation contract into the recipe.
type Trigger struct {
	Activation    string   `yaml:"activation"`
	PreConditions []string `yaml:"pre_conditions,omitempty"`
	Confirmation  string   `yaml:"confirmation"`
}

// Recipe is the compiled, immutable workflow description handed to the
// external runtime.
type Recipe struct {
	Name            string   `yaml:"name"`
	Intent          string   `yaml:"intent"`
	SuccessCriteria []string `yaml:"success_criteria"`
	Steps           []Step   `yaml:"steps"`
	Trigger         Trigger  `yaml:"trigger"`

	// Behaviors carries the decomposition's convention references through
	// uninterpreted, for the executing runtime.
	Behaviors []string `yaml:"behaviors,omitempty"`
}

// Step returns the named step, or nil.
func (r *Recipe) Step(name string) *Step {
	for i := range r.Steps {
		if r.Steps[i].Name == name {
			return &r.Steps[i]
		}
	}
	return nil
}

// EncodeYAML serializes the recipe. Field and step order are fixed by
// construction, so encoding the same recipe twice is byte-for-byte
// identical.
func (r *Recipe) EncodeYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("failed to encode recipe: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeYAML parses a serialized recipe.
func DecodeYAML(data []byte) (*Recipe, error) {
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode recipe: %w", err)
	}
	return &r, nil
}

var reSlug = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives a short, name-safe slug from free text.
func slugify(text string, maxLen int) string {
	if len(text) > maxLen {
		text = text[:maxLen]
	}
	return strings.Trim(reSlug.ReplaceAllString(strings.ToLower(text), "-"), "-")
}
