package generator_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	experrors "github.com/simonhull/expressgen/internal/errors"
	"github.com/simonhull/expressgen/internal/generator"
)

func sampleOps() []generator.Operation {
	return []generator.Operation{
		&generator.MkdirOp{Path: "."},
		&generator.MkdirOp{Path: "bin"},
		&generator.WriteFileOp{Path: "bin/www", Content: []byte("#!/usr/bin/env node\n"), Mode: 0755},
		&generator.WriteFileOp{Path: "app.js", Content: []byte("module.exports = app;\n"), Mode: 0644},
	}
}

func TestExecute_Created(t *testing.T) {
	fsys := afero.NewMemMapFs()

	results, err := generator.Execute(context.Background(), fsys, sampleOps(), generator.ExecuteOptions{})
	require.NoError(t, err)

	assert.Equal(t, []generator.WriteResult{
		{Path: ".", Kind: generator.KindDirectory, Outcome: generator.Created},
		{Path: "bin", Kind: generator.KindDirectory, Outcome: generator.Created},
		{Path: "bin/www", Kind: generator.KindFile, Outcome: generator.Created},
		{Path: "app.js", Kind: generator.KindFile, Outcome: generator.Created},
	}, results)

	content, err := afero.ReadFile(fsys, "app.js")
	require.NoError(t, err)
	assert.Equal(t, "module.exports = app;\n", string(content))

	info, err := fsys.Stat("bin/www")
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0755), info.Mode().Perm())
}

func TestExecute_DryRun(t *testing.T) {
	fsys := afero.NewMemMapFs()

	results, err := generator.Execute(context.Background(), fsys, sampleOps(), generator.ExecuteOptions{DryRun: true})
	require.NoError(t, err)
	require.Len(t, results, 4)

	// The in-memory root always exists, so the dry run reports it untouched.
	assert.Equal(t, generator.SkippedExisting, results[0].Outcome)
	assert.Equal(t, generator.Created, results[2].Outcome)

	exists, err := afero.Exists(fsys, "app.js")
	require.NoError(t, err)
	assert.False(t, exists, "dry run created file")
}

func TestExecute_NonEmptyDestination(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "README.md", []byte("keep"), 0644))

	results, err := generator.Execute(context.Background(), fsys, sampleOps(), generator.ExecuteOptions{Root: "demo"})
	require.Error(t, err)
	assert.ErrorIs(t, err, experrors.ErrDestinationNotEmpty)
	assert.Contains(t, err.Error(), "demo")
	assert.Empty(t, results)

	// Zero writes: only the pre-existing file is present.
	entries, err := afero.ReadDir(fsys, ".")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "README.md", entries[0].Name())
}

func TestExecute_ForceOverwrite(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "app.js", []byte("old"), 0600))

	results, err := generator.Execute(context.Background(), fsys, sampleOps(), generator.ExecuteOptions{Force: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"bin", "bin/www"}, generator.Paths(results, generator.Created))
	assert.Equal(t, []string{".", "app.js"}, generator.Paths(results, generator.Overwritten))

	content, _ := afero.ReadFile(fsys, "app.js")
	assert.Equal(t, "module.exports = app;\n", string(content))

	info, err := fsys.Stat("app.js")
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0644), info.Mode().Perm())
}

func TestExecute_ForceTwice(t *testing.T) {
	fsys := afero.NewMemMapFs()
	ctx := context.Background()
	opts := generator.ExecuteOptions{Force: true}

	first, err := generator.Execute(ctx, fsys, sampleOps()[1:], opts)
	require.NoError(t, err)
	second, err := generator.Execute(ctx, fsys, sampleOps()[1:], opts)
	require.NoError(t, err)

	assert.Equal(t,
		generator.Paths(first, generator.Created),
		generator.Paths(second, generator.Overwritten))
	assert.Empty(t, generator.Paths(second, generator.Created))
}

func TestExecute_PathConflicts(t *testing.T) {
	tests := []struct {
		name  string
		setup func(afero.Fs)
	}{
		{
			name: "file occupies directory path",
			setup: func(fsys afero.Fs) {
				afero.WriteFile(fsys, "bin", []byte("not a dir"), 0644)
			},
		},
		{
			name: "directory occupies file path",
			setup: func(fsys afero.Fs) {
				fsys.MkdirAll("app.js", 0755)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			tt.setup(fsys)

			results, err := generator.Execute(context.Background(), fsys, sampleOps(), generator.ExecuteOptions{Force: true})
			require.Error(t, err)
			assert.ErrorIs(t, err, experrors.ErrPathConflict)
			assert.Empty(t, results)

			exists, _ := afero.Exists(fsys, "bin/www")
			assert.False(t, exists, "conflict detected after writing")
		})
	}
}

func TestExecute_DestinationIsFile(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/work/app", []byte("x"), 0644))
	fsys := afero.NewBasePathFs(base, "/work/app")

	_, err := generator.Execute(context.Background(), fsys, sampleOps(), generator.ExecuteOptions{Root: "app"})
	assert.ErrorIs(t, err, experrors.ErrPathConflict)
}

func TestExecute_MissingDestinationIsCreated(t *testing.T) {
	base := afero.NewMemMapFs()
	fsys := afero.NewBasePathFs(base, "/work/new-app")

	results, err := generator.Execute(context.Background(), fsys, sampleOps(), generator.ExecuteOptions{})
	require.NoError(t, err)
	assert.Len(t, generator.Paths(results, generator.Created), 4)

	exists, _ := afero.Exists(base, "/work/new-app/bin/www")
	assert.True(t, exists)
}

func TestExecute_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := generator.Execute(ctx, afero.NewMemMapFs(), sampleOps(), generator.ExecuteOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestExecute_FilesystemError(t *testing.T) {
	fsys := afero.NewReadOnlyFs(afero.NewMemMapFs())

	_, err := generator.Execute(context.Background(), fsys, sampleOps()[1:], generator.ExecuteOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, experrors.ErrFilesystem)
}

func TestExecute_OsFs(t *testing.T) {
	tmpDir := t.TempDir()
	fsys := afero.NewBasePathFs(afero.NewOsFs(), tmpDir)

	_, err := generator.Execute(context.Background(), fsys, sampleOps(), generator.ExecuteOptions{})
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(tmpDir, "bin", "www"))
	require.NoError(t, err)
	assert.Equal(t, "#!/usr/bin/env node\n", string(content))
}

func TestWriteFileOp_NilContent(t *testing.T) {
	op := &generator.WriteFileOp{Path: "x.js"}
	err := op.Validate(context.Background(), afero.NewMemMapFs(), false)
	assert.ErrorContains(t, err, "content is nil")
}

func TestDescriptions(t *testing.T) {
	assert.Equal(t, "Create directory bin", (&generator.MkdirOp{Path: "bin"}).Description())
	assert.Equal(t, "Create app.js (3 bytes)", (&generator.WriteFileOp{Path: "app.js", Content: []byte("abc")}).Description())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "created", generator.Created.String())
	assert.Equal(t, "skipped", generator.SkippedExisting.String())
	assert.Equal(t, "overwritten", generator.Overwritten.String())
	assert.True(t, generator.Created.Written())
	assert.True(t, generator.Overwritten.Written())
	assert.False(t, generator.SkippedExisting.Written())
	assert.Equal(t, "directory", generator.KindDirectory.String())
}
