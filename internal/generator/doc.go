// Package generator provides the building blocks of the generation engine:
// a token renderer, filesystem operations and an executor that runs them
// with an all-or-nothing pre-flight check.
//
// # Rendering
//
// Templates use {%key%} placeholders. Known keys are replaced with values
// from a Context; unknown keys stay in the output verbatim:
//
//	r := generator.NewRenderer()
//	out := r.Render("www", "debug('{%serverNamespace%}')", ctx)
//
// # Executing
//
// Operations are validated first and executed in order afterwards:
//
//	fsys := afero.NewBasePathFs(afero.NewOsFs(), root)
//	results, err := generator.Execute(ctx, fsys, ops, generator.ExecuteOptions{})
//
// Without Force, Execute refuses to touch a destination that already has
// entries and performs zero writes. With Force, existing files are
// overwritten one by one. Failures are returned as they happen; nothing is
// rolled back.
package generator
