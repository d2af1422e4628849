package scaffold

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/simonhull/expressgen/internal/generator"
	"github.com/simonhull/expressgen/internal/options"
	"github.com/simonhull/expressgen/internal/output"
)

// Options configures a build.
type Options struct {
	// DryRun reports what would be written without touching the filesystem.
	DryRun bool

	// Renderer is shared between runs when set; a fresh one is used otherwise.
	Renderer *generator.Renderer
}

// Build generates the application described by plan below plan.Root on base
// and returns the outcome of every entry the plan includes, in manifest
// order.
func Build(ctx context.Context, base afero.Fs, plan options.Plan, opts Options) ([]generator.WriteResult, error) {
	renderer := opts.Renderer
	if renderer == nil {
		renderer = generator.NewRenderer()
	}

	ops, err := Compile(plan, renderer)
	if err != nil {
		return nil, err
	}

	output.Debug("building application",
		"name", plan.AppName,
		"view", plan.View,
		"css", plan.CSS,
		"git", plan.Git,
		"force", plan.Force,
		"root", plan.Root)

	fsys := afero.NewBasePathFs(base, plan.Root)
	return generator.Execute(ctx, fsys, ops, generator.ExecuteOptions{
		DryRun: opts.DryRun,
		Force:  plan.Force,
		Root:   plan.Destination,
	})
}

// Compile turns the manifest entries plan includes into operations, computing
// every file's final content up front.
func Compile(plan options.Plan, renderer *generator.Renderer) ([]generator.Operation, error) {
	rc := NewContext(plan)

	var ops []generator.Operation
	for _, entry := range manifest {
		if !entry.Includes(plan) {
			continue
		}

		path := renderer.Render("path:"+entry.Path, entry.Path, rc)

		if entry.Kind == Directory {
			ops = append(ops, &generator.MkdirOp{Path: path, Mode: entry.Mode})
			continue
		}

		body, err := entry.Source.Body(plan)
		if err != nil {
			return nil, fmt.Errorf("preparing %s: %w", path, err)
		}
		if entry.Kind == RenderedTemplate {
			body = []byte(renderer.Render(path, string(body), rc))
		}

		ops = append(ops, &generator.WriteFileOp{Path: path, Content: body, Mode: entry.Mode})
	}

	return ops, nil
}
