// Package cli defines the intentc command tree.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vk/intentc/internal/app"
)

// New builds the root command. Primary output goes to outW, logs to errW.
func New(outW, errW io.Writer) *cobra.Command {
	var logLevel, logFormat string

	root := &cobra.Command{
		Use:           "intentc",
		Short:         "Compile intent decompositions into executable recipes",
		Long:          "intentc turns a five-primitive task decomposition (intent, trigger,\nagents, context, behaviors) into a DAG-based workflow recipe.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level: debug, info, warn, or error.")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log output format: text or json.")

	newApp := func(input string) (*app.App, *app.Config, error) {
		cfg, err := app.NewConfig(app.Config{
			InputPath: input,
			LogLevel:  logLevel,
			LogFormat: logFormat,
		})
		if err != nil {
			return nil, nil, err
		}
		return app.NewApp(outW, errW, cfg), cfg, nil
	}

	root.AddCommand(newCompileCommand(newApp))
	root.AddCommand(newValidateCommand(newApp))
	root.AddCommand(newDecompileCommand(newApp))
	root.AddCommand(newResolveCommand(newApp))
	return root
}

type appFactory func(input string) (*app.App, *app.Config, error)

func newCompileCommand(newApp appFactory) *cobra.Command {
	var output string
	var summary bool

	cmd := &cobra.Command{
		Use:   "compile <decomposition>",
		Short: "Compile a decomposition into a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cfg, err := newApp(args[0])
			if err != nil {
				return err
			}
			cfg.OutputPath = output
			cfg.Summary = summary
			return a.Compile(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the recipe to this file instead of stdout.")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print the five-primitive summary after compiling.")
	return cmd
}

func newValidateCommand(newApp appFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <decomposition>",
		Short: "Check a decomposition and report all findings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cfg, err := newApp(args[0])
			if err != nil {
				return err
			}
			return a.Validate(cmd.Context(), cfg)
		},
	}
}

func newDecompileCommand(newApp appFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "decompile <recipe.yaml>",
		Short: "Reconstruct a decomposition summary from a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cfg, err := newApp(args[0])
			if err != nil {
				return err
			}
			return a.Decompile(cmd.Context(), cfg)
		},
	}
}

func newResolveCommand(newApp appFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <decomposition> <tag>...",
		Short: "Find the best-matching agent for capability tags",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cfg, err := newApp(args[0])
			if err != nil {
				return err
			}
			if err := a.Resolve(cmd.Context(), cfg, args[1:]); err != nil {
				return fmt.Errorf("resolve: %w", err)
			}
			return nil
		},
	}
}
