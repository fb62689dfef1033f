package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/vk/intentc/internal/cli"
)

func main() {
	// Minimal logger until a command configures the real one.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	root := cli.New(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
