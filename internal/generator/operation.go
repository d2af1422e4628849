package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	experrors "github.com/simonhull/expressgen/internal/errors"
)

// Operation represents a filesystem operation that can be validated and executed.
//
// Validate checks if the operation would succeed without executing it. It
// must not modify the filesystem.
//
// Execute performs the operation and reports the outcome. This should only be
// called after Validate succeeds.
//
// Preview reports the outcome Execute would have without performing it.
//
// Description returns a human-readable description for output (e.g., "Create app.js (1234 bytes)").
type Operation interface {
	Validate(ctx context.Context, fsys afero.Fs, force bool) error
	Execute(ctx context.Context, fsys afero.Fs, force bool) (WriteResult, error)
	Preview(fsys afero.Fs, force bool) (WriteResult, error)
	Description() string
}

// MkdirOp ensures a directory exists, creating parents as needed.
//
// Validation behavior:
//   - Succeeds if the path is absent or already a directory
//   - Fails with a path conflict if a non-directory occupies the path
type MkdirOp struct {
	Path string      // Slash-separated path relative to the root
	Mode fs.FileMode // Directory permissions (e.g., 0755)
}

// Validate fails if a non-directory occupies the path.
func (op *MkdirOp) Validate(ctx context.Context, fsys afero.Fs, force bool) error {
	info, err := stat(fsys, op.Path)
	if err != nil {
		return err
	}
	if info != nil && !info.IsDir() {
		return experrors.NewPathConflictError(op.Path, "a file occupies a directory path")
	}
	return nil
}

// Execute creates the directory and its parents when absent.
func (op *MkdirOp) Execute(ctx context.Context, fsys afero.Fs, force bool) (WriteResult, error) {
	result, err := op.Preview(fsys, force)
	if err != nil {
		return result, err
	}
	if result.Outcome == Created {
		if err := fsys.MkdirAll(filepath.FromSlash(op.Path), op.mode()); err != nil {
			return result, experrors.NewFilesystemError(op.Path, "mkdir", err)
		}
	}
	return directoryResult(op.Path, result.Outcome != Created, force), nil
}

// Preview reports Created for an absent directory and SkippedExisting otherwise.
func (op *MkdirOp) Preview(fsys afero.Fs, force bool) (WriteResult, error) {
	info, err := stat(fsys, op.Path)
	if err != nil {
		return WriteResult{Path: op.Path, Kind: KindDirectory}, err
	}
	if info != nil && !info.IsDir() {
		return WriteResult{Path: op.Path, Kind: KindDirectory},
			experrors.NewPathConflictError(op.Path, "a file occupies a directory path")
	}
	if info == nil {
		return WriteResult{Path: op.Path, Kind: KindDirectory, Outcome: Created}, nil
	}
	return WriteResult{Path: op.Path, Kind: KindDirectory, Outcome: SkippedExisting}, nil
}

// Description returns a human-readable description of the mkdir.
func (op *MkdirOp) Description() string {
	return fmt.Sprintf("Create directory %s", op.Path)
}

func (op *MkdirOp) mode() fs.FileMode {
	if op.Mode == 0 {
		return 0755
	}
	return op.Mode
}

// directoryResult maps an ensured directory onto the creation log. An
// existing directory is claimed by a force run; without force only an empty
// destination root can pre-exist, and it is reported as created.
func directoryResult(path string, existed, force bool) WriteResult {
	outcome := Created
	if existed && force {
		outcome = Overwritten
	}
	return WriteResult{Path: path, Kind: KindDirectory, Outcome: outcome}
}

// WriteFileOp writes a file with content.
//
// Validation behavior:
//   - Fails with a path conflict if a directory occupies the path
//   - Checks for an existing file unless force=true
//   - Allows empty content (zero bytes) but rejects nil content
//
// Execution behavior:
//   - Writes the file with the specified Mode, overwriting under force
type WriteFileOp struct {
	Path    string      // Slash-separated path relative to the root
	Content []byte      // File content (can be empty, must not be nil)
	Mode    fs.FileMode // File permissions (e.g., 0644)
}

// Validate checks content, path type and, without force, that the file is absent.
func (op *WriteFileOp) Validate(ctx context.Context, fsys afero.Fs, force bool) error {
	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}

	info, err := stat(fsys, op.Path)
	if err != nil {
		return err
	}
	if info == nil {
		return nil
	}
	if info.IsDir() {
		return experrors.NewPathConflictError(op.Path, "a directory occupies a file path")
	}
	if !force {
		return experrors.NewDestinationNotEmptyError(op.Path)
	}
	return nil
}

// Execute writes the file, overwriting an existing one under force.
func (op *WriteFileOp) Execute(ctx context.Context, fsys afero.Fs, force bool) (WriteResult, error) {
	result, err := op.Preview(fsys, force)
	if err != nil {
		return result, err
	}
	if result.Outcome == SkippedExisting {
		return result, experrors.NewDestinationNotEmptyError(op.Path)
	}

	name := filepath.FromSlash(op.Path)
	if err := afero.WriteFile(fsys, name, op.Content, op.mode()); err != nil {
		return result, experrors.NewFilesystemError(op.Path, "write", err)
	}
	if result.Outcome == Overwritten {
		// WriteFile keeps the mode of a file it truncates.
		if err := fsys.Chmod(name, op.mode()); err != nil {
			return result, experrors.NewFilesystemError(op.Path, "chmod", err)
		}
	}
	return result, nil
}

// Preview reports the outcome Execute would have.
func (op *WriteFileOp) Preview(fsys afero.Fs, force bool) (WriteResult, error) {
	result := WriteResult{Path: op.Path, Kind: KindFile}

	info, err := stat(fsys, op.Path)
	if err != nil {
		return result, err
	}
	switch {
	case info == nil:
		result.Outcome = Created
	case info.IsDir():
		return result, experrors.NewPathConflictError(op.Path, "a directory occupies a file path")
	case force:
		result.Outcome = Overwritten
	default:
		result.Outcome = SkippedExisting
	}
	return result, nil
}

// Description returns a human-readable description including the size.
func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Create %s (%d bytes)", op.Path, len(op.Content))
}

func (op *WriteFileOp) mode() fs.FileMode {
	if op.Mode == 0 {
		return 0644
	}
	return op.Mode
}

// stat returns nil info for a missing path. Other failures are filesystem
// errors.
func stat(fsys afero.Fs, path string) (fs.FileInfo, error) {
	info, err := fsys.Stat(filepath.FromSlash(path))
	if err == nil {
		return info, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return nil, experrors.NewFilesystemError(path, "stat", err)
}
