// Package scaffold builds an Express application skeleton from a generation
// plan.
//
// The tree is described by a fixed, ordered manifest of entries. Each entry
// names its path, its kind (directory, static file or rendered template),
// where its content comes from and the condition under which the plan
// includes it. Build is a single pass over that table: it compiles the
// selected entries into generator operations and executes them.
//
//	plan, _ := options.Resolve(options.Raw{Destination: "myapp"})
//	results, err := scaffold.Build(ctx, afero.NewOsFs(), plan, scaffold.Options{})
package scaffold
