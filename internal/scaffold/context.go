package scaffold

import (
	"strings"

	"github.com/simonhull/expressgen/internal/generator"
	"github.com/simonhull/expressgen/internal/options"
)

// Context keys available to templates and manifest paths.
const (
	KeyName             = "name"
	KeyDebugNamespace   = "debugNamespace"
	KeyServerNamespace  = "serverNamespace"
	KeyViewEngine       = "viewEngine"
	KeyViewExtension    = "viewExtension"
	KeyCSSExtension     = "cssExtension"
	KeyViewSetup        = "viewSetup"
	KeyCSSMiddleware    = "cssMiddleware"
	KeyRouteRequires    = "routeRequires"
	KeyRouteMounts      = "routeMounts"
	KeyDevelopmentError = "developmentError"
	KeyProductionError  = "productionError"
)

// DebugNamespace returns the DEBUG pattern matching every namespace of the
// generated app.
func DebugNamespace(appName string) string {
	return namespace(appName) + ":*"
}

func namespace(appName string) string {
	return strings.NewReplacer("/", "-", "\\", "-").Replace(appName)
}

// NewContext derives the render context of a plan.
func NewContext(plan options.Plan) generator.Context {
	engine := plan.ViewEngine()
	css := plan.CSSEngine()

	values := map[string]string{
		KeyName:            plan.AppName,
		KeyDebugNamespace:  DebugNamespace(plan.AppName),
		KeyServerNamespace: namespace(plan.AppName) + ":server",
		KeyViewEngine:      engine.ID,
		KeyViewExtension:   engine.Extension,
		KeyCSSExtension:    css.Extension,
	}

	if css.Middleware != "" {
		values[KeyCSSMiddleware] = "\n" + css.Middleware
	} else {
		values[KeyCSSMiddleware] = ""
	}

	if plan.HasViews() {
		values[KeyViewSetup] = "\n// view engine setup\n" +
			"app.set('views', path.join(__dirname, 'views'));\n" +
			"app.set('view engine', '" + engine.Setting + "');\n"
		values[KeyRouteRequires] = "var routes = require('./routes/index');\n" +
			"var users = require('./routes/users');"
		values[KeyRouteMounts] = "app.use('/', routes);\n" +
			"app.use('/users', users);"
		values[KeyDevelopmentError] = "res.render('error', {\n" +
			"      message: err.message,\n" +
			"      error: err\n" +
			"    });"
		values[KeyProductionError] = "res.render('error', {\n" +
			"    message: err.message,\n" +
			"    error: {}\n" +
			"  });"
	} else {
		values[KeyViewSetup] = ""
		values[KeyRouteRequires] = "var users = require('./routes/users');"
		values[KeyRouteMounts] = "app.use('/users', users);"
		values[KeyDevelopmentError] = "res.send('<h1>' + err.message + '</h1>\\n<h2>' + err.status + '</h2>\\n<pre>' + err.stack + '</pre>');"
		values[KeyProductionError] = "res.send('<h1>' + err.message + '</h1>');"
	}

	return generator.NewContext(values)
}
