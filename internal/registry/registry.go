// Package registry is a capability-tagged agent registry. Resolution is a
// deterministic best-match scoring over declared tags: the same query
// against the same roster always picks the same agent, with no
// string-similarity guessing involved.
package registry

import (
	"errors"
	"fmt"
	"sort"
)

// Descriptor describes one registered agent and the capabilities it
// declares.
type Descriptor struct {
	Name         string
	Role         string
	Capabilities []string
}

// Match is the outcome of a resolution: the chosen descriptor plus how
// many requested tags it covered.
type Match struct {
	Descriptor *Descriptor
	Score      int
}

// ErrNoMatch is returned when no registered agent covers any requested tag.
var ErrNoMatch = errors.New("no registered agent matches the requested capabilities")

// Registry holds descriptors in registration order.
type Registry struct {
	order  []*Descriptor
	byName map[string]*Descriptor
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{byName: make(map[string]*Descriptor)}
}

// Register adds a descriptor. Duplicate names are rejected so resolution
// stays unambiguous.
func (r *Registry) Register(d Descriptor) error {
	if d.Name == "" {
		return errors.New("descriptor name must not be empty")
	}
	if _, exists := r.byName[d.Name]; exists {
		return fmt.Errorf("agent %q is already registered", d.Name)
	}
	copied := d
	copied.Capabilities = append([]string(nil), d.Capabilities...)
	r.byName[d.Name] = &copied
	r.order = append(r.order, &copied)
	return nil
}

// Lookup returns the named descriptor, or nil.
func (r *Registry) Lookup(name string) *Descriptor {
	return r.byName[name]
}

// Names returns registered agent names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.order))
	for _, d := range r.order {
		names = append(names, d.Name)
	}
	return names
}

// Len returns the number of registered agents.
func (r *Registry) Len() int { return len(r.order) }

// Resolve picks the best agent for a set of required capability tags.
// Score is the number of covered tags; ties prefer the more specific agent
// (fewer declared capabilities), then the lexically smaller name.
func (r *Registry) Resolve(tags []string) (*Match, error) {
	if len(r.order) == 0 {
		return nil, errors.New("registry is empty")
	}

	want := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		want[t] = struct{}{}
	}

	var best *Match
	for _, d := range r.order {
		score := 0
		for _, c := range d.Capabilities {
			if _, ok := want[c]; ok {
				score++
			}
		}
		if score == 0 {
			continue
		}
		if best == nil || better(d, score, best) {
			best = &Match{Descriptor: d, Score: score}
		}
	}

	if best == nil {
		return nil, fmt.Errorf("%w: %v", ErrNoMatch, tags)
	}
	return best, nil
}

// better reports whether candidate (with score) beats the current best.
func better(d *Descriptor, score int, best *Match) bool {
	if score != best.Score {
		return score > best.Score
	}
	if len(d.Capabilities) != len(best.Descriptor.Capabilities) {
		return len(d.Capabilities) < len(best.Descriptor.Capabilities)
	}
	return d.Name < best.Descriptor.Name
}

// SortedCapabilities returns a copy of the descriptor's tags in lexical
// order, for stable display.
func (d *Descriptor) SortedCapabilities() []string {
	caps := append([]string(nil), d.Capabilities...)
	sort.Strings(caps)
	return caps
}
