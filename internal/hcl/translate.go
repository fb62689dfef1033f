package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/intentc/internal/grammar"
	"github.com/vk/intentc/internal/schema"
)

// translateIntent converts the HCL intent schema into the agnostic model.
func translateIntent(s *schema.Intent) *grammar.Intent {
	return &grammar.Intent{
		Goal:            s.Goal,
		SuccessCriteria: s.SuccessCriteria,
		ScopeIn:         s.ScopeIn,
		ScopeOut:        s.ScopeOut,
		Values:          s.Values,
	}
}

func translateTrigger(s *schema.Trigger) (*grammar.Trigger, error) {
	activation, err := grammar.ParseActivation(s.Activation)
	if err != nil {
		return nil, err
	}
	confirmation, err := grammar.ParseConfirmation(s.Confirmation)
	if err != nil {
		return nil, err
	}
	return &grammar.Trigger{
		Activation:    activation,
		PreConditions: s.PreConditions,
		Confirmation:  confirmation,
	}, nil
}

func translateAgent(s *schema.Agent) (grammar.Agent, error) {
	caps, err := stringList(s.Capabilities)
	if err != nil {
		return grammar.Agent{}, fmt.Errorf("agent %q: invalid capabilities: %w", s.Name, err)
	}
	return grammar.Agent{
		Name:         s.Name,
		Role:         s.Role,
		Instruction:  s.Instruction,
		Sequencing:   s.Sequencing,
		Capabilities: caps,
	}, nil
}

func translateContext(s *schema.Context) (grammar.ContextItem, error) {
	source, err := grammar.ParseContextSource(s.Source)
	if err != nil {
		return grammar.ContextItem{}, fmt.Errorf("context %q: %w", s.Name, err)
	}
	scope, err := stringList(s.Scope)
	if err != nil {
		return grammar.ContextItem{}, fmt.Errorf("context %q: invalid scope: %w", s.Name, err)
	}
	return grammar.ContextItem{Name: s.Name, Source: source, Scope: scope}, nil
}

// stringList evaluates an expression that may be a single string or a list
// of strings. A nil or null expression yields nil.
func stringList(expr hcl.Expression) ([]string, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	if val.Type().Equals(cty.String) {
		return []string{val.AsString()}, nil
	}

	converted, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, fmt.Errorf("expected a string or list of strings: %w", err)
	}
	var out []string
	for it := converted.ElementIterator(); it.Next(); {
		_, v := it.Element()
		out = append(out, v.AsString())
	}
	return out, nil
}
