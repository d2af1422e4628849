package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/simonhull/expressgen"
	"github.com/simonhull/expressgen/internal/catalog"
	"github.com/simonhull/expressgen/internal/config"
	experrors "github.com/simonhull/expressgen/internal/errors"
	"github.com/simonhull/expressgen/internal/generator"
	"github.com/simonhull/expressgen/internal/options"
	"github.com/simonhull/expressgen/internal/output"
	"github.com/simonhull/expressgen/internal/report"
	"github.com/simonhull/expressgen/internal/scaffold"
)

const usageTemplate = `Usage: {{.UseLine}}

Options:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
`

// viewShorthands are the flags that select a view engine without --view.
var viewShorthands = []string{"ejs", "hbs", "hogan", "pug", "no-view"}

// env carries the collaborators of a run so tests can replace them.
type env struct {
	fs          afero.Fs
	cwd         func() (string, error)
	interactive func() bool
	confirm     Confirmer
	configPaths []string
}

func defaultEnv() env {
	return env{
		fs:          afero.NewOsFs(),
		cwd:         os.Getwd,
		interactive: isInteractive,
		confirm:     terminalConfirm,
	}
}

type flags struct {
	view    string
	ejs     bool
	hbs     bool
	hogan   bool
	pug     bool
	noView  bool
	css     string
	git     bool
	force   bool
	dryRun  bool
	verbose bool
	config  string
}

// RootCmd creates and returns the express command
func RootCmd() *cobra.Command {
	cmd := newRootCmd(defaultEnv())
	cmd.SetOut(output.Stdout())
	cmd.SetErr(output.Stderr())
	return cmd
}

func newRootCmd(e env) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "express [flags] [dir]",
		Short: "Generate an Express application skeleton",
		Long: `Creates an Express application in dir (the current directory by default) with:
• bin/www server entry point and app.js
• routes, views and public assets
• package.json listing the selected engines

Example:
  express --view=hbs --css=less --git myapp`,
		Args:          cobra.MaximumNArgs(1),
		Version:       expressgen.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(f.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := ""
			if len(args) == 1 {
				dest = args[0]
			}
			return run(cmd.Context(), cmd, e, f, dest)
		},
	}

	cmd.SetUsageTemplate(usageTemplate)
	cmd.SetHelpTemplate(`{{.UsageString}}`)
	cmd.SetVersionTemplate("{{.Version}}\n")

	fl := cmd.Flags()
	fl.SortFlags = false
	fl.StringVarP(&f.view, "view", "v", "", fmt.Sprintf("add view <engine> support (%s)", strings.Join(catalog.ViewIDs(), "|")))
	fl.BoolVarP(&f.ejs, "ejs", "e", false, "add ejs engine support")
	fl.BoolVar(&f.hbs, "hbs", false, "add handlebars engine support")
	fl.BoolVarP(&f.hogan, "hogan", "H", false, "add hogan.js engine support")
	fl.BoolVar(&f.pug, "pug", false, "add pug engine support")
	fl.BoolVar(&f.noView, "no-view", false, "generate without view engine")
	fl.StringVarP(&f.css, "css", "c", "", fmt.Sprintf("add stylesheet <engine> support (%s)", strings.Join(catalog.CSSIDs(), "|")))
	fl.BoolVar(&f.git, "git", false, "add .gitignore")
	fl.BoolVarP(&f.force, "force", "f", false, "force on non-empty directory")
	fl.BoolVar(&f.dryRun, "dry-run", false, "show what would be created without writing")
	fl.BoolVar(&f.verbose, "verbose", false, "enable verbose output for debugging")
	fl.StringVar(&f.config, "config", "", "read defaults from <file>")

	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, e env, f flags, dest string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	settings, err := config.Load(config.LoadOptions{
		File:        f.config,
		Flags:       cmd.Flags(),
		Fs:          e.fs,
		SearchPaths: e.configPaths,
	})
	if err != nil {
		return err
	}

	raw := options.Raw{
		Destination: dest,
		View:        settings.View,
		EJS:         f.ejs,
		HBS:         f.hbs,
		Hogan:       f.hogan,
		Pug:         f.pug,
		NoView:      f.noView,
		CSS:         settings.CSS,
		Git:         settings.Git,
		Force:       f.force,
	}
	// A shorthand replaces the configured view; only an explicit --view can
	// conflict with it.
	if shorthandChanged(cmd) && !cmd.Flags().Changed("view") {
		raw.View = ""
	}

	cwd, err := e.cwd()
	if err != nil {
		return fmt.Errorf("determining working directory: %w", err)
	}
	plan, err := options.ResolveIn(raw, cwd)
	if err != nil {
		return err
	}

	output.Verbose(fmt.Sprintf("Generating %s (view %s, css %s) in %s", plan.AppName, plan.View, plan.CSS, plan.Root))

	results, err := generate(ctx, e, plan, f.dryRun)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	r := report.New(w)
	r.Created(results)
	if f.dryRun {
		output.Info("\n   dry run: nothing was written")
		output.Step("rerun without --dry-run to generate")
		return nil
	}
	r.Instructions(plan)
	return nil
}

// generate builds the plan, offering to continue with force when the
// destination is not empty and a terminal is attached.
func generate(ctx context.Context, e env, plan options.Plan, dryRun bool) ([]generator.WriteResult, error) {
	opts := scaffold.Options{DryRun: dryRun}

	results, err := scaffold.Build(ctx, e.fs, plan, opts)
	if err == nil || plan.Force || !experrors.Is(err, experrors.ErrDestinationNotEmpty) {
		return results, err
	}
	if e.interactive == nil || !e.interactive() {
		return nil, err
	}

	ok, perr := e.confirm(plan.Destination)
	if perr != nil {
		return nil, perr
	}
	if !ok {
		return nil, fmt.Errorf("aborting: %w", err)
	}

	output.Warn("continuing into non-empty destination", "root", plan.Root)
	plan.Force = true
	return scaffold.Build(ctx, e.fs, plan, opts)
}

func shorthandChanged(cmd *cobra.Command) bool {
	for _, name := range viewShorthands {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}
