package dag

import (
	"context"
	"fmt"

	"github.com/vk/intentc/internal/ctxlog"
	"github.com/vk/intentc/internal/grammar"
	"github.com/vk/intentc/internal/hint"
	"github.com/vk/intentc/internal/validate"
)

// Build constructs the dependency graph for a validated decomposition.
//
// Each agent's sequencing hint is parsed through the fixed rule table in
// package hint; ambiguous or unresolvable hints default to "no edge" and
// are reported as warnings, never silently interpreted. A cycle among the
// resulting edges is returned as a *CycleError.
func Build(ctx context.Context, d *grammar.Decomposition) (*Graph, []validate.Finding, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: starting graph construction.", "agents", len(d.Agents))

	graph := NewGraph()
	for _, a := range d.Agents {
		graph.AddNode(a.Name, a.Role, a.Instruction)
	}
	logger.Debug("Build: node creation complete.", "node_count", graph.Len())

	names := d.AgentNames()
	var warnings []validate.Finding

	for _, a := range d.Agents {
		dir := hint.Parse(a.Sequencing, names)
		node := graph.Node(a.Name)

		switch dir.Kind {
		case hint.None, hint.Parallel:
			// No ordering constraint.

		case hint.After:
			if len(dir.Targets) == 0 {
				warnings = append(warnings, validate.Warnf(validate.KindUnknownSequencingTarget,
					"agent %q: hint %q orders after an unknown agent; no edge added", a.Name, a.Sequencing))
				break
			}
			for _, target := range dir.Targets {
				if target == a.Name {
					continue
				}
				if err := graph.AddEdge(target, a.Name); err != nil {
					return nil, warnings, fmt.Errorf("agent %q: %w", a.Name, err)
				}
			}

		case hint.Before:
			if len(dir.Targets) == 0 {
				warnings = append(warnings, validate.Warnf(validate.KindUnknownSequencingTarget,
					"agent %q: hint %q orders before an unknown agent; no edge added", a.Name, a.Sequencing))
				break
			}
			for _, target := range dir.Targets {
				if target == a.Name {
					continue
				}
				if err := graph.AddEdge(a.Name, target); err != nil {
					return nil, warnings, fmt.Errorf("agent %q: %w", a.Name, err)
				}
			}

		case hint.ForEach:
			if dir.Collection == "" {
				warnings = append(warnings, validate.Warnf(validate.KindAmbiguousSequencing,
					"agent %q: hint %q names no collection to iterate over", a.Name, a.Sequencing))
				break
			}
			node.ForEach = dir.Collection

		case hint.Loop:
			if dir.Condition == "" {
				warnings = append(warnings, validate.Warnf(validate.KindAmbiguousSequencing,
					"agent %q: hint %q has no loop condition", a.Name, a.Sequencing))
				break
			}
			node.LoopKeyword = dir.Keyword
			node.LoopCondition = dir.Condition

		case hint.Ambiguous:
			warnings = append(warnings, validate.Warnf(validate.KindAmbiguousSequencing,
				"agent %q: hint %q matches no sequencing rule; treated as unordered", a.Name, a.Sequencing))
		}
	}
	logger.Debug("Build: edge linking complete.")

	if err := graph.DetectCycles(); err != nil {
		return nil, warnings, err
	}
	logger.Debug("Build: cycle detection passed.")

	return graph, warnings, nil
}
