package app

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/intentc/internal/ctxlog"
	"github.com/vk/intentc/internal/gate"
	"github.com/vk/intentc/internal/grammar"
	"github.com/vk/intentc/internal/pipeline"
	"github.com/vk/intentc/internal/recipe"
	"github.com/vk/intentc/internal/registry"
	"github.com/vk/intentc/internal/validate"
)

// Compile loads a decomposition, runs the full pipeline, and writes the
// recipe YAML to the configured output.
func (a *App) Compile(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	d, err := a.loadDecomposition(ctx, cfg.InputPath)
	if err != nil {
		return err
	}

	roster, err := registry.FromDecomposition(d)
	if err != nil {
		return err
	}
	state := grammar.NewState(d)

	res, err := pipeline.Compile(ctx, d,
		pipeline.WithRegistry(roster),
		pipeline.WithState(state),
	)
	a.reportFindings(res)
	if err != nil {
		return err
	}

	if res.Gate == gate.StateNeedsClarification {
		a.logger.Warn("Confidence below auto-approval threshold; review the plan before executing.",
			"confidence", d.Confidence)
	}

	data, err := res.Recipe.EncodeYAML()
	if err != nil {
		return err
	}
	if cfg.OutputPath != "" {
		if err := os.WriteFile(cfg.OutputPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write recipe: %w", err)
		}
		a.logger.Info("Recipe written.", "path", cfg.OutputPath, "steps", len(res.Recipe.Steps))
	} else {
		if _, err := a.outW.Write(data); err != nil {
			return err
		}
	}

	if cfg.Summary {
		fmt.Fprintln(a.outW)
		fmt.Fprint(a.outW, state.Summary())
	}
	return nil
}

// Validate loads a decomposition and prints the full findings report.
// It returns an error when any ERROR-level finding is present.
func (a *App) Validate(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	d, err := a.loadDecomposition(ctx, cfg.InputPath)
	if err != nil {
		return err
	}

	result := validate.Run(d)
	if len(result.Findings) == 0 {
		fmt.Fprintln(a.outW, "OK: decomposition is valid")
		return nil
	}
	for _, f := range result.Findings {
		fmt.Fprintln(a.outW, f.String())
	}
	if !result.IsValid() {
		return &validate.InvalidDecompositionError{Findings: result.Errors()}
	}
	return nil
}

// Decompile reads a recipe YAML file and prints the reconstructed
// decomposition summary.
func (a *App) Decompile(ctx context.Context, cfg *Config) error {
	data, err := os.ReadFile(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("error reading recipe file: %w", err)
	}
	r, err := recipe.DecodeYAML(data)
	if err != nil {
		return err
	}

	d := recipe.Decompile(r)
	fmt.Fprint(a.outW, grammar.NewState(d).Summary())
	return nil
}

// Resolve loads a decomposition's agent roster and prints the best match
// for the requested capability tags.
func (a *App) Resolve(ctx context.Context, cfg *Config, tags []string) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	d, err := a.loadDecomposition(ctx, cfg.InputPath)
	if err != nil {
		return err
	}
	roster, err := registry.FromDecomposition(d)
	if err != nil {
		return err
	}

	match, err := roster.Resolve(tags)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.outW, "%s (%s) score=%d capabilities=%v\n",
		match.Descriptor.Name, match.Descriptor.Role, match.Score,
		match.Descriptor.SortedCapabilities())
	return nil
}

// reportFindings logs every finding at its severity.
func (a *App) reportFindings(res *pipeline.Result) {
	if res == nil {
		return
	}
	for _, f := range res.Findings {
		if f.Severity == validate.SeverityError {
			a.logger.Error(f.Message, "kind", string(f.Kind))
		} else {
			a.logger.Warn(f.Message, "kind", string(f.Kind))
		}
	}
}
