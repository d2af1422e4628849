package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"

	experrors "github.com/simonhull/expressgen/internal/errors"
)

//go:embed templates
var templatesFS embed.FS

// Logical template names every view engine may define.
const (
	TemplateIndex  = "index"
	TemplateLayout = "layout"
	TemplateError  = "error"
)

// Defaults applied when the user selects nothing.
const (
	DefaultView = "jade"
	DefaultCSS  = "css"

	// NoView is the view engine id for an app without server-side templates.
	NoView = "none"
)

// Dependency is a single npm dependency with its version range.
type Dependency struct {
	Name    string
	Version string
}

// ViewEngine describes a supported template-rendering technology.
type ViewEngine struct {
	// ID is the identifier accepted on the command line (e.g. "jade").
	ID string

	// Extension is the file extension of the engine's templates, without dot.
	Extension string

	// HasLayout reports whether the engine composes pages through a separate
	// layout template. Engines without it fold the layout into each page.
	HasLayout bool

	// Setting is the value passed to app.set('view engine', ...).
	Setting string

	// Dependency is the npm package that renders the templates. Empty for NoView.
	Dependency Dependency
}

// Templates returns the logical template names the engine defines, in
// generation order.
func (v ViewEngine) Templates() []string {
	if v.ID == NoView {
		return nil
	}
	if v.HasLayout {
		return []string{TemplateIndex, TemplateLayout, TemplateError}
	}
	return []string{TemplateIndex, TemplateError}
}

// Defines reports whether the engine has a template with the given name.
func (v ViewEngine) Defines(name string) bool {
	return slices.Contains(v.Templates(), name)
}

// CSSEngine describes a supported stylesheet technology.
type CSSEngine struct {
	// ID is the identifier accepted by --css.
	ID string

	// Extension is the stylesheet file extension, without dot.
	Extension string

	// Middleware is the app.js statement that compiles stylesheets on request.
	// Empty for plain css.
	Middleware string

	// Dependency is the npm package providing Middleware. Nil for plain css.
	Dependency *Dependency
}

// StyleFile returns the stylesheet file name (e.g. "style.less").
func (c CSSEngine) StyleFile() string {
	return "style." + c.Extension
}

// Template is a resolved catalog entry.
type Template struct {
	Engine    string
	Name      string
	Extension string
	Body      string
}

// FileName returns the file name the template is written to.
func (t Template) FileName() string {
	return t.Name + "." + t.Extension
}

var viewEngines = []ViewEngine{
	{ID: "jade", Extension: "jade", HasLayout: true, Setting: "jade", Dependency: Dependency{"jade", "~1.11.0"}},
	{ID: "pug", Extension: "pug", HasLayout: true, Setting: "pug", Dependency: Dependency{"pug", "~2.0.0"}},
	{ID: "ejs", Extension: "ejs", HasLayout: false, Setting: "ejs", Dependency: Dependency{"ejs", "~2.3.3"}},
	{ID: "hbs", Extension: "hbs", HasLayout: true, Setting: "hbs", Dependency: Dependency{"hbs", "~3.1.0"}},
	{ID: "hjs", Extension: "hjs", HasLayout: false, Setting: "hjs", Dependency: Dependency{"hjs", "~0.0.6"}},
	{ID: NoView},
}

var cssEngines = []CSSEngine{
	{ID: "css", Extension: "css"},
	{
		ID:         "less",
		Extension:  "less",
		Middleware: "app.use(require('less-middleware')(path.join(__dirname, 'public')));",
		Dependency: &Dependency{"less-middleware", "1.0.x"},
	},
	{
		ID:         "stylus",
		Extension:  "styl",
		Middleware: "app.use(require('stylus').middleware(path.join(__dirname, 'public')));",
		Dependency: &Dependency{"stylus", "0.42.1"},
	},
	{
		ID:         "compass",
		Extension:  "scss",
		Middleware: "app.use(require('node-compass')({mode: 'expanded'}));",
		Dependency: &Dependency{"node-compass", "0.2.3"},
	},
	{
		ID:        "sass",
		Extension: "sass",
		Middleware: `app.use(require('node-sass-middleware')({
  src: path.join(__dirname, 'public'),
  dest: path.join(__dirname, 'public'),
  indentedSyntax: true,
  sourceMap: true
}));`,
		Dependency: &Dependency{"node-sass-middleware", "0.8.0"},
	},
}

var baseDependencies = []Dependency{
	{"body-parser", "~1.13.2"},
	{"cookie-parser", "~1.3.5"},
	{"debug", "~2.2.0"},
	{"express", "~4.13.1"},
	{"morgan", "~1.6.1"},
	{"serve-favicon", "~2.3.0"},
}

// ViewIDs returns the identifiers of every supported view engine.
func ViewIDs() []string {
	ids := make([]string, len(viewEngines))
	for i, v := range viewEngines {
		ids[i] = v.ID
	}
	return ids
}

// View returns the view engine with the given id.
func View(id string) (ViewEngine, bool) {
	for _, v := range viewEngines {
		if v.ID == id {
			return v, true
		}
	}
	return ViewEngine{}, false
}

// CSSIDs returns the identifiers of every supported stylesheet engine.
func CSSIDs() []string {
	ids := make([]string, len(cssEngines))
	for i, c := range cssEngines {
		ids[i] = c.ID
	}
	return ids
}

// CSS returns the stylesheet engine with the given id.
func CSS(id string) (CSSEngine, bool) {
	for _, c := range cssEngines {
		if c.ID == id {
			if c.Dependency != nil {
				dep := *c.Dependency
				c.Dependency = &dep
			}
			return c, true
		}
	}
	return CSSEngine{}, false
}

// BaseDependencies returns the npm dependencies every generated app needs.
func BaseDependencies() []Dependency {
	return slices.Clone(baseDependencies)
}

// Lookup returns the named template of a view engine.
func Lookup(view, name string) (Template, error) {
	engine, ok := View(view)
	if !ok {
		return Template{}, experrors.NewUnsupportedEngineError("view", view, ViewIDs())
	}
	if !engine.Defines(name) {
		return Template{}, experrors.NewUnknownTemplateError(view, name)
	}

	file := name + "." + engine.Extension
	body, err := fs.ReadFile(templatesFS, path.Join("templates", "views", engine.ID, file))
	if err != nil {
		return Template{}, fmt.Errorf("reading %s template %s: %w", view, file, err)
	}

	return Template{
		Engine:    engine.ID,
		Name:      name,
		Extension: engine.Extension,
		Body:      string(body),
	}, nil
}

// Stylesheet returns the starter stylesheet for a css engine.
func Stylesheet(css string) (Template, error) {
	engine, ok := CSS(css)
	if !ok {
		return Template{}, experrors.NewUnsupportedEngineError("css", css, CSSIDs())
	}

	body, err := Source(path.Join("css", engine.StyleFile()))
	if err != nil {
		return Template{}, err
	}

	return Template{
		Engine:    engine.ID,
		Name:      "style",
		Extension: engine.Extension,
		Body:      string(body),
	}, nil
}

// Source returns a static source body by its path below the templates
// directory (e.g. "js/app.js").
func Source(name string) ([]byte, error) {
	body, err := fs.ReadFile(templatesFS, path.Join("templates", name))
	if err != nil {
		return nil, fmt.Errorf("reading template source %s: %w", name, err)
	}
	return body, nil
}
