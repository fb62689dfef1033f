// Package pipeline orchestrates the three compiler stages: validate the
// decomposition, build the dependency graph, emit the recipe. Stages hand
// results forward and never re-check each other's preconditions; this
// package is the trust boundary. All ERROR findings are aggregated before
// halting so the author sees every problem at once.
package pipeline

import (
	"context"
	"fmt"

	"github.com/vk/intentc/internal/ctxlog"
	"github.com/vk/intentc/internal/dag"
	"github.com/vk/intentc/internal/gate"
	"github.com/vk/intentc/internal/grammar"
	"github.com/vk/intentc/internal/recipe"
	"github.com/vk/intentc/internal/registry"
	"github.com/vk/intentc/internal/validate"
)

// Result is the outcome of one compilation attempt. Findings are populated
// even when compilation halts, so callers can always render a full report.
type Result struct {
	Recipe   *recipe.Recipe
	Findings []validate.Finding
	Gate     gate.State
}

type options struct {
	registry *registry.Registry
	state    *grammar.State
	gate     gate.Gate
}

// Option configures a compilation.
type Option func(*options)

// WithRegistry checks each agent assignment against a roster; assignments
// naming unregistered agents produce UnknownAgent warnings.
func WithRegistry(r *registry.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithState attaches a caller-owned session state that is updated with
// compilation progress.
func WithState(s *grammar.State) Option {
	return func(o *options) { o.state = s }
}

// WithGate overrides the default confidence thresholds.
func WithGate(g gate.Gate) Option {
	return func(o *options) { o.gate = g }
}

// Compile runs the full validate → build_graph → emit pipeline over a
// decomposition. It never mutates its input and holds no state between
// calls; concurrent compilations need no coordination.
//
// On invalid input the returned error is a *validate.InvalidDecompositionError;
// on a sequencing cycle it is a *dag.CycleError. Both carry structured
// detail and leave Result.Findings populated.
func Compile(ctx context.Context, d *grammar.Decomposition, opts ...Option) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	o := options{gate: gate.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	res := &Result{Gate: o.gate.Evaluate(d.Confidence)}
	if o.state != nil {
		o.state.Decomposition = d
		o.state.Status = grammar.StatusCompiling
	}

	vr := validate.Run(d)
	res.Findings = append(res.Findings, vr.Findings...)
	if !vr.IsValid() {
		logger.Debug("Compile: validation failed.", "errors", len(vr.Errors()))
		if o.state != nil {
			o.state.Status = grammar.StatusFailed
		}
		return res, &validate.InvalidDecompositionError{Findings: vr.Errors()}
	}
	logger.Debug("Compile: validation passed.", "warnings", len(vr.Findings))

	if o.registry != nil {
		for _, a := range d.Agents {
			if a.Name == "self" {
				continue
			}
			if o.registry.Lookup(a.Name) == nil {
				res.Findings = append(res.Findings, validate.Warnf(validate.KindUnknownAgent,
					"agent %q is not in the roster (known: %v)", a.Name, o.registry.Names()))
			}
		}
	}

	graph, warnings, err := dag.Build(ctx, d)
	res.Findings = append(res.Findings, warnings...)
	if err != nil {
		logger.Debug("Compile: graph construction failed.", "error", err)
		if o.state != nil {
			o.state.Status = grammar.StatusFailed
		}
		return res, err
	}

	r, err := recipe.Emit(d, graph)
	if err != nil {
		// Emit only fails on a compiler defect; log it apart from
		// user-caused errors.
		logger.Error("Compile: emitter invariant violation.", "error", err)
		if o.state != nil {
			o.state.Status = grammar.StatusFailed
		}
		return res, fmt.Errorf("emitting recipe: %w", err)
	}

	res.Recipe = r
	if o.state != nil {
		o.state.StepsTotal = len(r.Steps)
		o.state.Status = grammar.StatusPending
	}
	logger.Debug("Compile: finished.", "steps", len(r.Steps), "gate", res.Gate)
	return res, nil
}
