package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/intentc/internal/grammar"
	"github.com/vk/intentc/internal/hcl"
	"github.com/vk/intentc/internal/yaml"
)

// loadDecomposition picks a loader by path shape: directories and .hcl
// files go through the HCL loader, .yaml/.yml through the YAML loader.
func (a *App) loadDecomposition(ctx context.Context, path string) (*grammar.Decomposition, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing input path: %w", err)
	}

	if info.IsDir() {
		return hcl.NewLoader().Load(ctx, path)
	}

	switch filepath.Ext(path) {
	case ".hcl":
		return hcl.NewLoader().Load(ctx, path)
	case ".yaml", ".yml":
		return yaml.NewLoader().Load(ctx, path)
	}
	return nil, fmt.Errorf("unsupported decomposition format %q: expected .hcl, .yaml, or .yml", filepath.Ext(path))
}
