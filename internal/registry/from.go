package registry

import (
	"fmt"

	"github.com/vk/intentc/internal/grammar"
)

// FromDecomposition builds a registry from a decomposition's agent list.
// An agent's role is registered as an implicit capability tag alongside its
// declared ones, so rosters without explicit capabilities still resolve.
func FromDecomposition(d *grammar.Decomposition) (*Registry, error) {
	r := New()
	for _, a := range d.Agents {
		caps := append([]string(nil), a.Capabilities...)
		if a.Role != "" && !contains(caps, a.Role) {
			caps = append(caps, a.Role)
		}
		if err := r.Register(Descriptor{Name: a.Name, Role: a.Role, Capabilities: caps}); err != nil {
			return nil, fmt.Errorf("building registry: %w", err)
		}
	}
	return r, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
