package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"

	experrors "github.com/simonhull/expressgen/internal/errors"
	"github.com/simonhull/expressgen/internal/output"
)

// ExecuteOptions configures execution behavior
type ExecuteOptions struct {
	DryRun bool
	Force  bool

	// Root names the destination in error messages. The operations
	// themselves always address fsys relative to its root.
	Root string
}

// Execute runs operations against fsys in order and returns one result per
// operation executed.
//
// Without Force the destination must be absent or an empty directory; this is
// checked before anything else, so a rejected run performs zero writes. All
// operations are then validated before the first one executes. Execution
// errors are returned together with the results accumulated so far.
func Execute(ctx context.Context, fsys afero.Fs, ops []Operation, opts ExecuteOptions) ([]WriteResult, error) {
	root := opts.Root
	if root == "" {
		root = "."
	}

	// Phase 1: Pre-flight the destination as a whole
	if !opts.Force {
		if err := requireEmpty(fsys, root); err != nil {
			return nil, err
		}
	}

	// Phase 2: Validate all operations
	for _, op := range ops {
		if err := op.Validate(ctx, fsys, opts.Force); err != nil {
			return nil, fmt.Errorf("validation failed: %w", err)
		}
	}

	// Phase 3: Execute or preview
	results := make([]WriteResult, 0, len(ops))
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("generation cancelled: %w", err)
		}

		var (
			result WriteResult
			err    error
		)
		if opts.DryRun {
			result, err = op.Preview(fsys, opts.Force)
		} else {
			result, err = op.Execute(ctx, fsys, opts.Force)
		}
		if err != nil {
			return results, fmt.Errorf("execution failed: %w", err)
		}

		output.Debug(op.Description(), "outcome", result.Outcome, "dry_run", opts.DryRun)
		results = append(results, result)
	}

	return results, nil
}

// requireEmpty fails unless the root of fsys is missing or an empty directory.
func requireEmpty(fsys afero.Fs, root string) error {
	info, err := fsys.Stat(".")
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return experrors.NewFilesystemError(root, "stat", err)
	}
	if !info.IsDir() {
		return experrors.NewPathConflictError(root, "destination is not a directory")
	}

	empty, err := afero.IsEmpty(fsys, ".")
	if err != nil {
		return experrors.NewFilesystemError(root, "read directory", err)
	}
	if !empty {
		return experrors.NewDestinationNotEmptyError(root)
	}
	return nil
}
