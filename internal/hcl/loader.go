// Package hcl loads decomposition files written in HCL and translates them
// into the grammar model. Blocks may be split across any number of files;
// the loader merges them and rejects duplicate singleton blocks.
package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/intentc/internal/ctxlog"
	"github.com/vk/intentc/internal/fsutil"
	"github.com/vk/intentc/internal/grammar"
	"github.com/vk/intentc/internal/schema"
)

// Loader parses .hcl decomposition files.
type Loader struct{}

// NewLoader creates an HCL decomposition loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every .hcl file under the given paths (files or directories)
// and merges their blocks into one decomposition.
func (l *Loader) Load(ctx context.Context, paths ...string) (*grammar.Decomposition, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := l.expand(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found under %v", paths)
	}
	logger.Debug("HCL loader discovered files.", "count", len(files))

	parser := hclparse.NewParser()
	d := &grammar.Decomposition{}

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %w", file, diags)
		}

		var root schema.Root
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode %s: %w", file, diags)
		}

		if err := l.merge(d, &root, file); err != nil {
			return nil, err
		}
	}

	logger.Debug("HCL loading complete.",
		"agents", len(d.Agents), "contexts", len(d.Context), "handoffs", len(d.Handoffs))
	return d, nil
}

// expand resolves a mix of file and directory paths into a flat .hcl file
// list, preserving order and dropping duplicates.
func (l *Loader) expand(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})

	add := func(f string) {
		if _, dup := seen[f]; !dup {
			seen[f] = struct{}{}
			files = append(files, f)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if info.IsDir() {
			found, err := fsutil.FindFiles(path, ".hcl")
			if err != nil {
				return nil, err
			}
			for _, f := range found {
				add(f)
			}
			continue
		}
		add(path)
	}
	return files, nil
}

// merge folds one file's blocks into the accumulated decomposition.
func (l *Loader) merge(d *grammar.Decomposition, root *schema.Root, file string) error {
	if root.Intent != nil {
		if d.Intent != nil {
			return fmt.Errorf("%s: duplicate intent block; a decomposition has exactly one intent", file)
		}
		d.Intent = translateIntent(root.Intent)
	}
	if root.Trigger != nil {
		if d.Trigger != nil {
			return fmt.Errorf("%s: duplicate trigger block", file)
		}
		trigger, err := translateTrigger(root.Trigger)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		d.Trigger = trigger
	}
	for _, a := range root.Agents {
		agent, err := translateAgent(a)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		d.Agents = append(d.Agents, agent)
	}
	for _, c := range root.Contexts {
		item, err := translateContext(c)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		d.Context = append(d.Context, item)
	}
	for _, h := range root.Handoffs {
		d.Handoffs = append(d.Handoffs, grammar.Handoff{
			Producer: h.Producer,
			Consumer: h.Consumer,
			Output:   h.Output,
		})
	}
	for _, b := range root.Behaviors {
		d.Behaviors = append(d.Behaviors, grammar.Behavior{Name: b.Name})
	}
	if root.Confidence != nil {
		d.Confidence = *root.Confidence
	}
	return nil
}
