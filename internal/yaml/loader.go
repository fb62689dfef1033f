// Package yaml loads a decomposition from a single YAML file, the format
// upstream LLM extraction typically hands over.
package yaml

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vk/intentc/internal/ctxlog"
	"github.com/vk/intentc/internal/grammar"
)

// Loader parses .yaml/.yml decomposition files.
type Loader struct{}

// NewLoader creates a YAML decomposition loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and normalizes one YAML decomposition file.
func (l *Loader) Load(ctx context.Context, path string) (*grammar.Decomposition, error) {
	logger := ctxlog.FromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read decomposition file: %w", err)
	}

	var d grammar.Decomposition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse decomposition YAML %s: %w", path, err)
	}

	if err := normalize(&d); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Debug("YAML loading complete.", "path", path, "agents", len(d.Agents))
	return &d, nil
}

// normalize validates enum fields and applies defaults. Structural
// completeness stays the validator's job.
func normalize(d *grammar.Decomposition) error {
	if d.Trigger != nil {
		if d.Trigger.Activation != "" {
			activation, err := grammar.ParseActivation(string(d.Trigger.Activation))
			if err != nil {
				return err
			}
			d.Trigger.Activation = activation
		}
		confirmation, err := grammar.ParseConfirmation(string(d.Trigger.Confirmation))
		if err != nil {
			return err
		}
		d.Trigger.Confirmation = confirmation
	}
	for i, c := range d.Context {
		source, err := grammar.ParseContextSource(string(c.Source))
		if err != nil {
			return fmt.Errorf("context %q: %w", c.Name, err)
		}
		d.Context[i].Source = source
	}
	return nil
}
