package grammar

import (
	"fmt"
	"strings"
	"time"
)

// RunStatus tracks the lifecycle of one compilation/execution session.
type RunStatus string

const (
	StatusPending   RunStatus = "pending"
	StatusCompiling RunStatus = "compiling"
	StatusExecuting RunStatus = "executing"
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
)

// Correction records a mid-flight amendment to one of the five primitives.
type Correction struct {
	At        time.Time
	Primitive string
	OldValue  string
	NewValue  string
	Reason    string
}

// CriterionStatus tracks evaluation of a single success criterion.
// Passed is nil until the criterion has been evaluated.
type CriterionStatus struct {
	Name     string
	Passed   *bool
	Evidence string
}

// State is the mutable session state that travels with one decomposition
// through compile and (downstream) execution. It is owned by the caller and
// threaded through calls explicitly; nothing in this module keeps a
// process-wide instance.
type State struct {
	Decomposition  *Decomposition
	Corrections    []Correction
	Criteria       []CriterionStatus
	StepsCompleted int
	StepsTotal     int
	Status         RunStatus
}

// NewState returns a pending State tracking the given decomposition, with
// one untracked status entry per success criterion.
func NewState(d *Decomposition) *State {
	s := &State{Decomposition: d, Status: StatusPending}
	if d != nil && d.Intent != nil {
		for _, c := range d.Intent.SuccessCriteria {
			s.Criteria = append(s.Criteria, CriterionStatus{Name: c})
		}
	}
	return s
}

// RecordCorrection appends a correction entry for a primitive amendment.
func (s *State) RecordCorrection(primitive, oldValue, newValue, reason string) {
	s.Corrections = append(s.Corrections, Correction{
		At:        time.Now(),
		Primitive: primitive,
		OldValue:  oldValue,
		NewValue:  newValue,
		Reason:    reason,
	})
}

// MarkCriterion records a pass/fail verdict for a named success criterion.
// Unknown names are ignored.
func (s *State) MarkCriterion(name string, passed bool, evidence string) {
	for i := range s.Criteria {
		if s.Criteria[i].Name == name {
			p := passed
			s.Criteria[i].Passed = &p
			s.Criteria[i].Evidence = evidence
			return
		}
	}
}

// Summary renders all five primitives plus progress as human-readable text,
// for reporting back to the user or an outer orchestrator.
func (s *State) Summary() string {
	var b strings.Builder

	if s.Decomposition == nil {
		return "No decomposition yet.\n"
	}
	d := s.Decomposition

	b.WriteString("## Intent (WHY)\n")
	if d.Intent != nil {
		fmt.Fprintf(&b, "  Goal: %s\n", d.Intent.Goal)
		if len(d.Intent.SuccessCriteria) > 0 {
			b.WriteString("  Success criteria:\n")
			for _, c := range d.Intent.SuccessCriteria {
				fmt.Fprintf(&b, "    %s %s\n", s.criterionMarker(c), c)
			}
		}
		if len(d.Intent.ScopeIn) > 0 {
			fmt.Fprintf(&b, "  In scope:  %s\n", strings.Join(d.Intent.ScopeIn, ", "))
		}
		if len(d.Intent.ScopeOut) > 0 {
			fmt.Fprintf(&b, "  Out scope: %s\n", strings.Join(d.Intent.ScopeOut, ", "))
		}
		if len(d.Intent.Values) > 0 {
			fmt.Fprintf(&b, "  Values:    %s\n", strings.Join(d.Intent.Values, ", "))
		}
	}

	b.WriteString("\n## Trigger (WHEN)\n")
	if d.Trigger != nil {
		fmt.Fprintf(&b, "  Activation:   %s\n", d.Trigger.Activation)
		if len(d.Trigger.PreConditions) > 0 {
			fmt.Fprintf(&b, "  Pre-conditions: %s\n", strings.Join(d.Trigger.PreConditions, ", "))
		}
		fmt.Fprintf(&b, "  Confirmation: %s\n", d.Trigger.Confirmation)
	}

	b.WriteString("\n## Agents (WHO)\n")
	if len(d.Agents) == 0 {
		b.WriteString("  (none assigned)\n")
	}
	for _, a := range d.Agents {
		fmt.Fprintf(&b, "  - %s (%s)\n", a.Name, a.Role)
		if a.Instruction != "" {
			fmt.Fprintf(&b, "    %s\n", a.Instruction)
		}
	}

	b.WriteString("\n## Context (WHAT)\n")
	for _, c := range d.Context {
		fmt.Fprintf(&b, "  - %s (%s)\n", c.Name, c.Source)
	}

	b.WriteString("\n## Behaviors (HOW)\n")
	if len(d.Behaviors) == 0 {
		b.WriteString("  (default)\n")
	} else {
		names := make([]string, 0, len(d.Behaviors))
		for _, bh := range d.Behaviors {
			names = append(names, bh.Name)
		}
		fmt.Fprintf(&b, "  %s\n", strings.Join(names, ", "))
	}

	b.WriteString("\n## Progress\n")
	fmt.Fprintf(&b, "  Status: %s\n", s.Status)
	fmt.Fprintf(&b, "  Steps:  %d/%d\n", s.StepsCompleted, s.StepsTotal)
	fmt.Fprintf(&b, "  Confidence: %.0f%%\n", d.Confidence*100)
	if len(s.Corrections) > 0 {
		fmt.Fprintf(&b, "  Corrections: %d\n", len(s.Corrections))
	}

	return b.String()
}

// criterionMarker returns [x], [ ], [?] for tracked criteria, [-] otherwise.
func (s *State) criterionMarker(name string) string {
	for _, cs := range s.Criteria {
		if cs.Name != name {
			continue
		}
		switch {
		case cs.Passed == nil:
			return "[?]"
		case *cs.Passed:
			return "[x]"
		default:
			return "[ ]"
		}
	}
	return "[-]"
}
