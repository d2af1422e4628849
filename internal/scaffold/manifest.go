package scaffold

import (
	"io/fs"
	"slices"

	"github.com/simonhull/expressgen/internal/catalog"
	"github.com/simonhull/expressgen/internal/options"
)

// EntryKind tags a manifest entry.
type EntryKind int

const (
	Directory EntryKind = iota
	StaticFile
	RenderedTemplate
)

func (k EntryKind) String() string {
	switch k {
	case Directory:
		return "directory"
	case StaticFile:
		return "static"
	case RenderedTemplate:
		return "template"
	default:
		return "unknown"
	}
}

// Condition decides whether a plan includes an entry.
type Condition func(options.Plan) bool

// Source produces the raw body of a file entry.
type Source interface {
	Body(plan options.Plan) ([]byte, error)
}

// SourceFile is a static source from the catalog (e.g. "js/app.js").
type SourceFile string

func (s SourceFile) Body(options.Plan) ([]byte, error) {
	return catalog.Source(string(s))
}

// ViewTemplate is a logical template of the plan's view engine.
type ViewTemplate string

func (v ViewTemplate) Body(plan options.Plan) ([]byte, error) {
	tmpl, err := catalog.Lookup(plan.View, string(v))
	if err != nil {
		return nil, err
	}
	return []byte(tmpl.Body), nil
}

// Stylesheet is the starter stylesheet of the plan's css engine.
type Stylesheet struct{}

func (Stylesheet) Body(plan options.Plan) ([]byte, error) {
	tmpl, err := catalog.Stylesheet(plan.CSS)
	if err != nil {
		return nil, err
	}
	return []byte(tmpl.Body), nil
}

// Generated computes its body from the plan.
type Generated func(options.Plan) ([]byte, error)

func (g Generated) Body(plan options.Plan) ([]byte, error) {
	return g(plan)
}

// Entry is one potential output path.
type Entry struct {
	// Path is slash separated and relative to the destination. It may carry
	// placeholders (e.g. {%viewExtension%}) resolved with the run's context.
	Path string
	Kind EntryKind

	// Source is nil for directories.
	Source Source

	// Mode defaults to 0755 for directories and 0644 for files.
	Mode fs.FileMode

	// When is nil for entries every plan includes.
	When Condition
}

// Includes reports whether plan selects the entry.
func (e Entry) Includes(plan options.Plan) bool {
	return e.When == nil || e.When(plan)
}

func withViews(p options.Plan) bool    { return p.HasViews() }
func withoutViews(p options.Plan) bool { return !p.HasViews() }
func withGit(p options.Plan) bool      { return p.Git }

// viewDefines selects an entry when the plan's engine has the named template.
func viewDefines(name string) Condition {
	return func(p options.Plan) bool {
		return p.ViewEngine().Defines(name)
	}
}

func dir(path string, when Condition) Entry {
	return Entry{Path: path, Kind: Directory, When: when}
}

func view(name string) Entry {
	return Entry{
		Path:   "views/" + name + ".{%viewExtension%}",
		Kind:   RenderedTemplate,
		Source: ViewTemplate(name),
		When:   viewDefines(name),
	}
}

var manifest = []Entry{
	dir(".", nil),
	dir("public", nil),
	dir("public/javascripts", nil),
	dir("public/images", nil),
	dir("public/stylesheets", nil),
	{Path: "public/stylesheets/style.{%cssExtension%}", Kind: StaticFile, Source: Stylesheet{}},
	{Path: "public/index.html", Kind: StaticFile, Source: SourceFile("js/index.html"), When: withoutViews},
	dir("routes", nil),
	{Path: "routes/index.js", Kind: StaticFile, Source: SourceFile("js/routes/index.js"), When: withViews},
	{Path: "routes/users.js", Kind: StaticFile, Source: SourceFile("js/routes/users.js")},
	dir("views", withViews),
	view(catalog.TemplateIndex),
	view(catalog.TemplateLayout),
	view(catalog.TemplateError),
	{Path: "package.json", Kind: StaticFile, Source: Generated(PackageJSON)},
	{Path: "app.js", Kind: RenderedTemplate, Source: SourceFile("js/app.js")},
	dir("bin", nil),
	{Path: "bin/www", Kind: RenderedTemplate, Source: SourceFile("js/www"), Mode: 0755},
	{Path: ".gitignore", Kind: StaticFile, Source: SourceFile("js/gitignore"), When: withGit},
}

// Manifest returns the full ordered manifest.
func Manifest() []Entry {
	return slices.Clone(manifest)
}
