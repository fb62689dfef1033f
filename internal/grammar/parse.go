package grammar

import "fmt"

// ParseActivation validates a raw activation value.
func ParseActivation(s string) (Activation, error) {
	switch Activation(s) {
	case ActivationOnDemand, ActivationEvent, ActivationScheduled:
		return Activation(s), nil
	}
	return "", fmt.Errorf("invalid activation %q: must be one of on-demand, event, scheduled", s)
}

// ParseConfirmation validates a raw confirmation value. Empty defaults to
// auto.
func ParseConfirmation(s string) (Confirmation, error) {
	if s == "" {
		return ConfirmationAuto, nil
	}
	switch Confirmation(s) {
	case ConfirmationAuto, ConfirmationHuman, ConfirmationNone:
		return Confirmation(s), nil
	}
	return "", fmt.Errorf("invalid confirmation %q: must be one of auto, human, none", s)
}

// ParseContextSource validates a raw context source value.
func ParseContextSource(s string) (ContextSource, error) {
	switch ContextSource(s) {
	case SourceAuto, SourceProvided, SourceToDiscover:
		return ContextSource(s), nil
	}
	return "", fmt.Errorf("invalid context source %q: must be one of auto, provided, to_discover", s)
}
