package recipe

import (
	"strings"

	"github.com/vk/intentc/internal/grammar"
)

// Decompile reconstructs a decomposition summary from a recipe by
// inverting each field: depends_on becomes "after X completes", absent
// edges among multiple roots become "in parallel", an approval marker
// becomes human confirmation, and loop metadata becomes "until"/"while"
// phrasing. For any recipe this compiler emitted, recompiling the result
// yields a structurally equivalent recipe.
func Decompile(r *Recipe) *grammar.Decomposition {
	d := &grammar.Decomposition{
		Intent: &grammar.Intent{
			Goal:            r.Intent,
			SuccessCriteria: append([]string(nil), r.SuccessCriteria...),
		},
		Trigger: &grammar.Trigger{
			Activation:    grammar.Activation(r.Trigger.Activation),
			PreConditions: append([]string(nil), r.Trigger.PreConditions...),
			Confirmation:  grammar.Confirmation(r.Trigger.Confirmation),
		},
	}

	for _, b := range r.Behaviors {
		d.Behaviors = append(d.Behaviors, grammar.Behavior{Name: b})
	}

	roots := 0
	for _, s := range r.Steps {
		if len(s.DependsOn) == 0 {
			roots++
		}
	}
	for _, s := range r.Steps {
		if s.Approval == ApprovalRequired {
			d.Trigger.Confirmation = grammar.ConfirmationHuman
			break
		}
	}

	for _, s := range r.Steps {
		d.Agents = append(d.Agents, grammar.Agent{
			Name:        s.Name,
			Instruction: s.Instruction,
			Sequencing:  sequencingFor(s, roots),
		})
		for _, ref := range s.ContextInputs {
			producer, output, ok := strings.Cut(ref, ".")
			if !ok {
				continue
			}
			d.Handoffs = append(d.Handoffs, grammar.Handoff{
				Producer: producer,
				Consumer: s.Name,
				Output:   output,
			})
		}
	}
	return d
}

// sequencingFor synthesizes the natural-language hint for one step. A
// sequencing hint carries a single directive, so ordering edges win over
// loop and foreach metadata when both are present in a hand-written recipe.
func sequencingFor(s Step, roots int) string {
	switch {
	case len(s.DependsOn) == 1:
		return "after " + s.DependsOn[0] + " completes"
	case len(s.DependsOn) > 1:
		return "after " + strings.Join(s.DependsOn, " and ") + " complete"
	case s.ForEach != "":
		return "for each " + s.ForEach
	case s.BreakWhen != "":
		return "until " + s.BreakWhen
	case s.While != "":
		return "while " + s.While
	case roots > 1:
		return "in parallel"
	}
	return ""
}
