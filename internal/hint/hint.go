// Package hint parses natural-language sequencing hints attached to agent
// assignments into structured ordering directives. The rule table is fixed
// and applied in order; the first matching rule wins. Text that matches no
// rule is reported as ambiguous and contributes no ordering constraint.
package hint

import (
	"regexp"
	"strings"
)

// Kind identifies which sequencing rule matched.
type Kind int

const (
	// None means the hint was empty: no ordering constraint.
	None Kind = iota
	// After orders this agent after each target agent.
	After
	// Parallel is an explicit declaration of no ordering constraint.
	Parallel
	// ForEach marks the agent as a template expanded per collection item.
	ForEach
	// Loop marks the agent as a convergence loop with an exit condition.
	Loop
	// Before orders this agent before each target agent.
	Before
	// Ambiguous means the hint had text but matched no rule.
	Ambiguous
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case After:
		return "after"
	case Parallel:
		return "parallel"
	case ForEach:
		return "foreach"
	case Loop:
		return "loop"
	case Before:
		return "before"
	case Ambiguous:
		return "ambiguous"
	}
	return "unknown"
}

// Directive is the structured result of parsing one sequencing hint.
type Directive struct {
	Kind Kind

	// Targets holds resolved agent names for After and Before, in the
	// declaration order of the input agent list.
	Targets []string

	// Collection names the collection a ForEach template is bound to.
	Collection string

	// Keyword is "until" or "while" for Loop directives; Condition is the
	// raw condition clause.
	Keyword   string
	Condition string
}

var (
	reAfter    = regexp.MustCompile(`(?i)\b(?:after|once|following)\b`)
	reParallel = regexp.MustCompile(`(?i)\b(?:in parallel|parallel|simultaneously|concurrent(?:ly)?|at the same time)\b`)
	reForEach  = regexp.MustCompile(`(?i)\b(?:for each|iterate over)\b(.*)`)
	reLoop     = regexp.MustCompile(`(?i)\b(until|while)\b(.*)`)
	reBefore   = regexp.MustCompile(`(?i)\bbefore\b`)

	// "item in Z" / "items in Z" prefixes on a foreach collection clause.
	reItemIn = regexp.MustCompile(`(?i)^(?:item|items|entry|entries|element|elements)\s+in\s+`)
)

// Parse converts a raw sequencing hint into a Directive. agentNames is the
// full declared agent list, used to resolve After/Before targets by exact,
// case-sensitive token match.
func Parse(raw string, agentNames []string) Directive {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Directive{Kind: None}
	}

	if reAfter.MatchString(text) {
		return Directive{Kind: After, Targets: namedAgents(text, agentNames)}
	}
	if reParallel.MatchString(text) {
		return Directive{Kind: Parallel}
	}
	if loc := reForEach.FindStringSubmatchIndex(text); loc != nil {
		collection := strings.TrimSpace(text[loc[2]:loc[3]])
		collection = reItemIn.ReplaceAllString(collection, "")
		collection = strings.Trim(collection, " .,:;")
		return Directive{Kind: ForEach, Collection: collection}
	}
	if m := reLoop.FindStringSubmatch(text); m != nil {
		return Directive{
			Kind:      Loop,
			Keyword:   strings.ToLower(m[1]),
			Condition: strings.Trim(m[2], " .,:;"),
		}
	}
	if reBefore.MatchString(text) {
		return Directive{Kind: Before, Targets: namedAgents(text, agentNames)}
	}

	// A bare conjunction of agent names ("A and B") is an explicit
	// parallel listing.
	if strings.Contains(" "+strings.ToLower(text)+" ", " and ") && len(namedAgents(text, agentNames)) > 0 {
		return Directive{Kind: Parallel}
	}

	return Directive{Kind: Ambiguous}
}

// namedAgents returns every declared agent name that appears as a whole
// token in text, preserving declaration order.
func namedAgents(text string, agentNames []string) []string {
	tokens := tokenize(text)
	var found []string
	for _, name := range agentNames {
		if _, ok := tokens[name]; ok {
			found = append(found, name)
		}
	}
	return found
}

// tokenize splits text into identifier-like tokens. Hyphens and underscores
// are kept so that agent names like "code-reviewer" survive intact.
func tokenize(text string) map[string]struct{} {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return false
		case r == '-' || r == '_':
			return false
		}
		return true
	})
	tokens := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		tokens[f] = struct{}{}
	}
	return tokens
}
