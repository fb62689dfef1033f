package grammar

// Activation describes what starts a task.
type Activation string

const (
	ActivationOnDemand  Activation = "on-demand"
	ActivationEvent     Activation = "event"
	ActivationScheduled Activation = "scheduled"
)

// Confirmation describes how a task is approved before execution.
type Confirmation string

const (
	ConfirmationAuto  Confirmation = "auto"
	ConfirmationHuman Confirmation = "human"
	ConfirmationNone  Confirmation = "none"
)

// ContextSource describes where a context item comes from.
type ContextSource string

const (
	SourceAuto       ContextSource = "auto"
	SourceProvided   ContextSource = "provided"
	SourceToDiscover ContextSource = "to_discover"
)

// Intent is the WHY primitive: goal, success criteria, and scope boundaries.
type Intent struct {
	Goal            string   `yaml:"goal"`
	SuccessCriteria []string `yaml:"success_criteria"`
	ScopeIn         []string `yaml:"scope_in,omitempty"`
	ScopeOut        []string `yaml:"scope_out,omitempty"`
	Values          []string `yaml:"values,omitempty"`
}

// Trigger is the WHEN primitive: activation condition and confirmation mode.
type Trigger struct {
	Activation    Activation   `yaml:"activation"`
	PreConditions []string     `yaml:"pre_conditions,omitempty"`
	Confirmation  Confirmation `yaml:"confirmation"`
}

// Agent is the WHO primitive: a named agent with a role, an instruction, and
// a raw natural-language sequencing hint ("after X", "in parallel", ...).
// The hint is not a graph edge yet; the dag builder turns it into one.
type Agent struct {
	Name         string   `yaml:"name"`
	Role         string   `yaml:"role,omitempty"`
	Instruction  string   `yaml:"instruction"`
	Sequencing   string   `yaml:"sequencing,omitempty"`
	Capabilities []string `yaml:"capabilities,omitempty"`
}

// ContextItem is one entry of the WHAT primitive. Scope is a set of agent
// names, or the single element "all".
type ContextItem struct {
	Name   string        `yaml:"name"`
	Source ContextSource `yaml:"source"`
	Scope  []string      `yaml:"scope,omitempty"`
}

// Handoff is a declared producer→consumer context edge. Output is the name
// the producer publishes its result under.
type Handoff struct {
	Producer string `yaml:"producer"`
	Consumer string `yaml:"consumer"`
	Output   string `yaml:"output"`
}

// Behavior is the HOW primitive: an opaque convention reference. The
// compiler carries the name through without interpreting it.
type Behavior struct {
	Name string `yaml:"name"`
}

// Decomposition is the full five-primitive representation of a task.
// It is produced upstream (normally by an LLM extraction step) and consumed
// read-only by the compiler pipeline.
type Decomposition struct {
	Intent     *Intent       `yaml:"intent"`
	Trigger    *Trigger      `yaml:"trigger"`
	Agents     []Agent       `yaml:"agents"`
	Context    []ContextItem `yaml:"context,omitempty"`
	Handoffs   []Handoff     `yaml:"handoffs,omitempty"`
	Behaviors  []Behavior    `yaml:"behaviors,omitempty"`
	Confidence float64       `yaml:"confidence,omitempty"`
}

// AgentNames returns the declared agent names in declaration order.
func (d *Decomposition) AgentNames() []string {
	names := make([]string, 0, len(d.Agents))
	for _, a := range d.Agents {
		names = append(names, a.Name)
	}
	return names
}

// HasAgent reports whether an agent with the given name is declared.
// Matching is case-sensitive and exact.
func (d *Decomposition) HasAgent(name string) bool {
	for _, a := range d.Agents {
		if a.Name == name {
			return true
		}
	}
	return false
}
