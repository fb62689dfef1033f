package recipe

import (
	"errors"
	"fmt"

	"github.com/vk/intentc/internal/dag"
	"github.com/vk/intentc/internal/grammar"
)

// ErrUnmappedNode signals that a graph node could not be mapped to a recipe
// step. Given the pipeline's preconditions (validation passed, graph is
// acyclic) this is unreachable; seeing it means a compiler defect, not bad
// user input.
var ErrUnmappedNode = errors.New("internal invariant violation: graph node has no recipe step")

// Emit maps a validated decomposition plus its dependency graph onto a
// recipe. The mapping is total and deterministic: exactly one step per
// graph node, ordered topologically with declaration order as the
// tie-break. Callers must only invoke Emit after validation passed and the
// graph built without cycles; preconditions are not re-checked here.
func Emit(d *grammar.Decomposition, g *dag.Graph) (*Recipe, error) {
	r := &Recipe{
		Name:            recipeName(d),
		Intent:          d.Intent.Goal,
		SuccessCriteria: append([]string(nil), d.Intent.SuccessCriteria...),
		Trigger: Trigger{
			Activation:    string(d.Trigger.Activation),
			PreConditions: append([]string(nil), d.Trigger.PreConditions...),
			Confirmation:  string(d.Trigger.Confirmation),
		},
	}
	for _, b := range d.Behaviors {
		r.Behaviors = append(r.Behaviors, b.Name)
	}

	requireApproval := d.Trigger.Confirmation == grammar.ConfirmationHuman

	for _, node := range topoOrder(g) {
		step := Step{
			Name:        node.Name,
			AgentRef:    node.Name,
			Instruction: node.Instruction,
			DependsOn:   dependsOn(node),
			ForEach:     node.ForEach,
		}
		switch node.LoopKeyword {
		case "until":
			step.BreakWhen = node.LoopCondition
		case "while":
			step.While = node.LoopCondition
		}
		if requireApproval && node.IsRoot() {
			step.Approval = ApprovalRequired
		}
		step.ContextInputs = contextInputs(d, node.Name)
		r.Steps = append(r.Steps, step)
	}

	if len(r.Steps) != g.Len() {
		return nil, fmt.Errorf("%w: emitted %d steps for %d nodes", ErrUnmappedNode, len(r.Steps), g.Len())
	}
	return r, nil
}

// topoOrder runs Kahn's algorithm, always picking the ready node with the
// lowest declaration index. The tie-break governs only cosmetic step
// ordering in the emitted recipe; actual concurrency stays the runtime's
// decision.
func topoOrder(g *dag.Graph) []*dag.Node {
	remaining := make(map[string]int, g.Len())
	for _, n := range g.Nodes() {
		remaining[n.Name] = len(n.Deps())
	}

	var order []*dag.Node
	done := make(map[string]struct{}, g.Len())

	for len(order) < g.Len() {
		var pick *dag.Node
		for _, n := range g.Nodes() {
			if _, ok := done[n.Name]; ok {
				continue
			}
			if remaining[n.Name] == 0 && (pick == nil || n.Index < pick.Index) {
				pick = n
			}
		}
		if pick == nil {
			// Only possible on a cyclic graph, which the builder rejects.
			break
		}
		done[pick.Name] = struct{}{}
		order = append(order, pick)
		for _, dep := range pick.Dependents() {
			remaining[dep.Name]--
		}
	}
	return order
}

// dependsOn lists a node's direct predecessors ordered by declaration
// index. The slice is always non-nil so depends_on serializes as [].
func dependsOn(n *dag.Node) []string {
	deps := append([]*dag.Node(nil), n.Deps()...)
	for i := 1; i < len(deps); i++ {
		for j := i; j > 0 && deps[j].Index < deps[j-1].Index; j-- {
			deps[j], deps[j-1] = deps[j-1], deps[j]
		}
	}
	names := make([]string, 0, len(deps))
	for _, d := range deps {
		names = append(names, d.Name)
	}
	return names
}

// contextInputs resolves declared handoffs into "<producer>.<output>"
// references for the consuming step, in handoff declaration order.
func contextInputs(d *grammar.Decomposition, consumer string) []string {
	var refs []string
	for _, h := range d.Handoffs {
		if h.Consumer == consumer {
			refs = append(refs, h.Producer+"."+h.Output)
		}
	}
	return refs
}

// recipeName derives a short slug name from the intent goal.
func recipeName(d *grammar.Decomposition) string {
	slug := slugify(d.Intent.Goal, 60)
	if slug == "" {
		return "idd-task"
	}
	return "idd-" + slug
}
