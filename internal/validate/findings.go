package validate

import (
	"fmt"
	"strings"
)

// Severity classifies a finding as blocking or advisory.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// Kind is the machine-readable category of a finding.
type Kind string

const (
	KindMissingIntent                Kind = "MissingIntent"
	KindMissingTrigger               Kind = "MissingTrigger"
	KindNoAgents                     Kind = "NoAgents"
	KindDuplicateAgentName           Kind = "DuplicateAgentName"
	KindUnresolvableContextReference Kind = "UnresolvableContextReference"
	KindScopeOverlap                 Kind = "ScopeOverlap"
	KindContextCycle                 Kind = "ContextCycle"

	KindUnmeasurableCriterion   Kind = "UnmeasurableCriterion"
	KindAmbiguousSequencing     Kind = "AmbiguousSequencing"
	KindUnknownSequencingTarget Kind = "UnknownSequencingTarget"
	KindUnknownAgent            Kind = "UnknownAgent"
)

// Finding is one validation observation: a machine-readable kind plus a
// human-readable message. Callers decide whether to halt or ask for
// clarification.
type Finding struct {
	Kind     Kind
	Severity Severity
	Message  string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s [%s] %s", f.Severity, f.Kind, f.Message)
}

// Errorf builds an ERROR finding.
func Errorf(kind Kind, format string, args ...any) Finding {
	return Finding{Kind: kind, Severity: SeverityError, Message: fmt.Sprintf(format, args...)}
}

// Warnf builds a WARNING finding.
func Warnf(kind Kind, format string, args ...any) Finding {
	return Finding{Kind: kind, Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)}
}

// Result is the full report of one validation pass.
type Result struct {
	Findings []Finding
}

// IsValid reports whether the pass produced no ERROR-level findings.
// Warnings alone do not invalidate a decomposition.
func (r Result) IsValid() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Errors returns only the ERROR-level findings.
func (r Result) Errors() []Finding {
	var errs []Finding
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			errs = append(errs, f)
		}
	}
	return errs
}

// InvalidDecompositionError is returned by callers that aggregate a failed
// validation pass into a single error value. It carries every ERROR finding
// so the author sees all problems at once.
type InvalidDecompositionError struct {
	Findings []Finding
}

func (e *InvalidDecompositionError) Error() string {
	msgs := make([]string, 0, len(e.Findings))
	for _, f := range e.Findings {
		msgs = append(msgs, f.String())
	}
	return fmt.Sprintf("decomposition is invalid:\n- %s", strings.Join(msgs, "\n- "))
}
