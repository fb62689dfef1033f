// Package testutil provides decomposition builders shared across test
// packages.
package testutil

import "github.com/vk/intentc/internal/grammar"

// Agent builds an agent assignment with a throwaway instruction.
func Agent(name, sequencing string) grammar.Agent {
	return grammar.Agent{
		Name:        name,
		Role:        "executor",
		Instruction: "do " + name + " work",
		Sequencing:  sequencing,
	}
}

// Decomposition builds a valid decomposition around the given agents:
// a measurable intent and an on-demand auto-confirmed trigger.
func Decomposition(agents ...grammar.Agent) *grammar.Decomposition {
	return &grammar.Decomposition{
		Intent: &grammar.Intent{
			Goal:            "Implement feature X",
			SuccessCriteria: []string{"all tests pass", "0 lint errors"},
		},
		Trigger: &grammar.Trigger{
			Activation:   grammar.ActivationOnDemand,
			Confirmation: grammar.ConfirmationAuto,
		},
		Agents:     agents,
		Confidence: 0.9,
	}
}
