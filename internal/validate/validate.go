// Package validate checks a five-primitive decomposition for completeness
// and structural validity. It is a pure function over its input: all checks
// run, all findings are collected, and the caller gets the full report
// rather than the first failure.
package validate

import (
	"regexp"

	"github.com/vk/intentc/internal/grammar"
)

// measurable criteria contain a comparison, a numeric threshold, or an
// enumerable boolean condition. The heuristic is deliberately loose; misses
// are surfaced as warnings, never errors.
var reMeasurable = regexp.MustCompile(`(?i)[0-9<>=%]|\b(?:all|every|each|none|no|zero|at least|at most|pass(?:es)?|fail(?:s)?|true|false|exists?|empty|non-empty|exactly)\b`)

// Run validates a decomposition and returns every finding. The checks
// mirror the compiler's input contract: intent, trigger, agents, context
// references, and scope consistency.
func Run(d *grammar.Decomposition) Result {
	var r Result

	r.Findings = append(r.Findings, checkIntent(d)...)
	r.Findings = append(r.Findings, checkTrigger(d)...)
	r.Findings = append(r.Findings, checkAgents(d)...)
	r.Findings = append(r.Findings, checkContextRefs(d)...)
	r.Findings = append(r.Findings, checkScopes(d)...)
	r.Findings = append(r.Findings, checkHandoffCycles(d)...)

	return r
}

func checkIntent(d *grammar.Decomposition) []Finding {
	if d.Intent == nil {
		return []Finding{Errorf(KindMissingIntent, "decomposition has no intent")}
	}

	var fs []Finding
	if d.Intent.Goal == "" {
		fs = append(fs, Errorf(KindMissingIntent, "intent goal is empty"))
	}
	if len(d.Intent.SuccessCriteria) == 0 {
		fs = append(fs, Errorf(KindMissingIntent, "intent declares no success criteria"))
	}
	for _, c := range d.Intent.SuccessCriteria {
		if !reMeasurable.MatchString(c) {
			fs = append(fs, Warnf(KindUnmeasurableCriterion,
				"success criterion %q has no measurable predicate (comparison, threshold, or boolean condition)", c))
		}
	}
	return fs
}

func checkTrigger(d *grammar.Decomposition) []Finding {
	if d.Trigger == nil {
		return []Finding{Errorf(KindMissingTrigger, "decomposition has no trigger")}
	}
	if d.Trigger.Activation == "" {
		return []Finding{Errorf(KindMissingTrigger, "trigger activation is empty")}
	}
	return nil
}

func checkAgents(d *grammar.Decomposition) []Finding {
	if len(d.Agents) == 0 {
		return []Finding{Errorf(KindNoAgents, "decomposition declares no agents")}
	}

	var fs []Finding
	seen := make(map[string]struct{}, len(d.Agents))
	for _, a := range d.Agents {
		if _, dup := seen[a.Name]; dup {
			fs = append(fs, Errorf(KindDuplicateAgentName, "agent name %q is declared more than once", a.Name))
			continue
		}
		seen[a.Name] = struct{}{}
	}
	return fs
}

// checkContextRefs verifies that handoff edges and context scopes only
// reference declared agent names.
func checkContextRefs(d *grammar.Decomposition) []Finding {
	var fs []Finding
	for _, h := range d.Handoffs {
		if !d.HasAgent(h.Producer) {
			fs = append(fs, Errorf(KindUnresolvableContextReference,
				"handoff producer %q is not a declared agent", h.Producer))
		}
		if !d.HasAgent(h.Consumer) {
			fs = append(fs, Errorf(KindUnresolvableContextReference,
				"handoff consumer %q is not a declared agent", h.Consumer))
		}
	}
	for _, c := range d.Context {
		for _, scope := range c.Scope {
			if scope == "all" {
				continue
			}
			if !d.HasAgent(scope) {
				fs = append(fs, Errorf(KindUnresolvableContextReference,
					"context %q is scoped to %q, which is not a declared agent", c.Name, scope))
			}
		}
	}
	return fs
}

func checkScopes(d *grammar.Decomposition) []Finding {
	if d.Intent == nil {
		return nil
	}
	in := make(map[string]struct{}, len(d.Intent.ScopeIn))
	for _, s := range d.Intent.ScopeIn {
		in[s] = struct{}{}
	}
	var fs []Finding
	for _, s := range d.Intent.ScopeOut {
		if _, ok := in[s]; ok {
			fs = append(fs, Errorf(KindScopeOverlap, "%q appears in both scope_in and scope_out", s))
		}
	}
	return fs
}

// checkHandoffCycles rejects context edges where a producer is transitively
// its own consumer.
func checkHandoffCycles(d *grammar.Decomposition) []Finding {
	consumers := make(map[string][]string)
	for _, h := range d.Handoffs {
		consumers[h.Producer] = append(consumers[h.Producer], h.Consumer)
	}

	const (
		white = iota
		grey
		black
	)
	color := make(map[string]int)

	var visit func(name string) bool
	visit = func(name string) bool {
		color[name] = grey
		for _, next := range consumers[name] {
			switch color[next] {
			case grey:
				return true
			case white:
				if visit(next) {
					return true
				}
			}
		}
		color[name] = black
		return false
	}

	for _, a := range d.Agents {
		if color[a.Name] == white && visit(a.Name) {
			return []Finding{Errorf(KindContextCycle,
				"context handoffs form a cycle reachable from agent %q", a.Name)}
		}
	}
	return nil
}
