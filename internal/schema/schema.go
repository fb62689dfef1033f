// Package schema defines the HCL block structure of decomposition files.
// These types carry hcl struct tags only; the loader translates them into
// the format-agnostic grammar model.
package schema

import "github.com/hashicorp/hcl/v2"

// Intent represents the single `intent` block.
type Intent struct {
	Goal            string   `hcl:"goal"`
	SuccessCriteria []string `hcl:"success_criteria"`
	ScopeIn         []string `hcl:"scope_in,optional"`
	ScopeOut        []string `hcl:"scope_out,optional"`
	Values          []string `hcl:"values,optional"`
}

// Trigger represents the `trigger` block.
type Trigger struct {
	Activation    string   `hcl:"activation"`
	PreConditions []string `hcl:"pre_conditions,optional"`
	Confirmation  string   `hcl:"confirmation,optional"`
}

// Agent represents an `agent "name"` block. Capabilities stays an
// expression so a single string and a list are both accepted.
type Agent struct {
	Name         string         `hcl:"name,label"`
	Role         string         `hcl:"role,optional"`
	Instruction  string         `hcl:"instruction"`
	Sequencing   string         `hcl:"sequencing,optional"`
	Capabilities hcl.Expression `hcl:"capabilities,optional"`
}

// Context represents a `context "name"` block.
type Context struct {
	Name   string         `hcl:"name,label"`
	Source string         `hcl:"source"`
	Scope  hcl.Expression `hcl:"scope,optional"`
}

// Handoff represents a `handoff` block: a declared producer→consumer
// context edge.
type Handoff struct {
	Producer string `hcl:"producer"`
	Consumer string `hcl:"consumer"`
	Output   string `hcl:"output"`
}

// Behavior represents a `behavior "name"` block.
type Behavior struct {
	Name string `hcl:"name,label"`
}

// Root is the top-level structure of a decomposition file. Any block may
// appear in any file; the loader merges across files.
type Root struct {
	Intent     *Intent     `hcl:"intent,block"`
	Trigger    *Trigger    `hcl:"trigger,block"`
	Agents     []*Agent    `hcl:"agent,block"`
	Contexts   []*Context  `hcl:"context,block"`
	Handoffs   []*Handoff  `hcl:"handoff,block"`
	Behaviors  []*Behavior `hcl:"behavior,block"`
	Confidence *float64    `hcl:"confidence,optional"`
	Remain     hcl.Body    `hcl:",remain"`
}
