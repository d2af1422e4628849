// Package options turns the raw option bag collected by the CLI into a
// validated, canonical generation plan.
package options

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/simonhull/expressgen/internal/catalog"
	experrors "github.com/simonhull/expressgen/internal/errors"
)

// FallbackAppName is used when the destination's base name normalizes to
// nothing usable as a package name.
const FallbackAppName = "hello-world"

// MaxAppNameLength is the longest package name npm accepts.
const MaxAppNameLength = 214

// Raw is the option bag supplied by the CLI layer.
type Raw struct {
	Destination string // Target directory as typed ("" means ".")
	View        string // --view
	EJS         bool   // --ejs
	HBS         bool   // --hbs
	Hogan       bool   // --hogan
	Pug         bool   // --pug
	NoView      bool   // --no-view
	CSS         string // --css
	Git         bool   // --git
	Force       bool   // --force
}

// Plan is the canonical set of choices that drives generation.
type Plan struct {
	AppName     string
	Destination string // As given by the user, for display
	Root        string // Absolute destination
	View        string
	CSS         string
	Git         bool
	Force       bool
}

// ViewEngine returns the catalog entry for the plan's view engine.
func (p Plan) ViewEngine() catalog.ViewEngine {
	engine, _ := catalog.View(p.View)
	return engine
}

// CSSEngine returns the catalog entry for the plan's stylesheet engine.
func (p Plan) CSSEngine() catalog.CSSEngine {
	engine, _ := catalog.CSS(p.CSS)
	return engine
}

// HasViews reports whether the plan renders server-side templates.
func (p Plan) HasViews() bool {
	return p.View != catalog.NoView
}

// Resolve validates raw options relative to the current working directory.
func Resolve(raw Raw) (Plan, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return Plan{}, fmt.Errorf("determining working directory: %w", err)
	}
	return ResolveIn(raw, cwd)
}

// ResolveIn validates raw options, resolving a relative destination against
// cwd. It touches no files.
func ResolveIn(raw Raw, cwd string) (Plan, error) {
	view, err := resolveView(raw)
	if err != nil {
		return Plan{}, err
	}

	css := strings.ToLower(strings.TrimSpace(raw.CSS))
	if css == "" {
		css = catalog.DefaultCSS
	}
	if _, ok := catalog.CSS(css); !ok {
		return Plan{}, experrors.NewUnsupportedEngineError("css", raw.CSS, catalog.CSSIDs())
	}

	dest := raw.Destination
	if dest == "" {
		dest = "."
	}
	root := dest
	if !filepath.IsAbs(root) {
		root = filepath.Join(cwd, root)
	}
	root = filepath.Clean(root)

	return Plan{
		AppName:     AppName(filepath.Base(root)),
		Destination: dest,
		Root:        root,
		View:        view,
		CSS:         css,
		Git:         raw.Git,
		Force:       raw.Force,
	}, nil
}

// resolveView folds --view and the engine shorthands into one engine id.
func resolveView(raw Raw) (string, error) {
	type choice struct {
		flag string
		id   string
	}

	var chosen []choice
	if v := strings.ToLower(strings.TrimSpace(raw.View)); v != "" {
		if _, ok := catalog.View(v); !ok {
			return "", experrors.NewUnsupportedEngineError("view", raw.View, catalog.ViewIDs())
		}
		chosen = append(chosen, choice{"--view " + v, v})
	}
	if raw.EJS {
		chosen = append(chosen, choice{"--ejs", "ejs"})
	}
	if raw.HBS {
		chosen = append(chosen, choice{"--hbs", "hbs"})
	}
	if raw.Hogan {
		chosen = append(chosen, choice{"--hogan", "hjs"})
	}
	if raw.Pug {
		chosen = append(chosen, choice{"--pug", "pug"})
	}
	if raw.NoView {
		chosen = append(chosen, choice{"--no-view", catalog.NoView})
	}

	if len(chosen) == 0 {
		return catalog.DefaultView, nil
	}
	for _, c := range chosen[1:] {
		if c.id != chosen[0].id {
			return "", experrors.NewConflictingOptionsError(
				fmt.Sprintf("%s cannot be combined with %s", chosen[0].flag, c.flag))
		}
	}
	return chosen[0].id, nil
}

// AppName normalizes a directory name into a valid npm package name.
func AppName(base string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), base)
	if err != nil {
		folded = base
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsSpace(r):
			pendingDash = true
			continue
		case isNameRune(r):
		default:
			continue
		}
		if pendingDash && b.Len() > 0 {
			b.WriteByte('-')
		}
		pendingDash = false
		b.WriteRune(r)
	}

	name := strings.TrimLeft(b.String(), "-._")
	if len(name) > MaxAppNameLength {
		name = name[:MaxAppNameLength]
	}
	name = strings.TrimRight(name, "-")
	if name == "" {
		return FallbackAppName
	}
	return name
}

func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == '-', r == '.', r == '_', r == '~':
		return true
	}
	return false
}
