package scaffold

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/simonhull/expressgen/internal/catalog"
	"github.com/simonhull/expressgen/internal/options"
)

//go:embed schema/package.schema.json
var packageSchemaBytes []byte

var (
	packageSchema     *jsonschema.Schema
	packageSchemaOnce sync.Once
	packageSchemaErr  error
)

// packageManifest fixes the key order of the generated package.json.
// Dependencies marshal with sorted keys.
type packageManifest struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Private      bool              `json:"private"`
	Scripts      packageScripts    `json:"scripts"`
	Dependencies map[string]string `json:"dependencies"`
}

type packageScripts struct {
	Start string `json:"start"`
}

// Dependencies returns the npm dependencies a plan implies: the fixed
// baseline, the view engine's renderer and the css engine's middleware.
func Dependencies(plan options.Plan) map[string]string {
	deps := make(map[string]string)
	for _, dep := range catalog.BaseDependencies() {
		deps[dep.Name] = dep.Version
	}
	if dep := plan.ViewEngine().Dependency; dep.Name != "" {
		deps[dep.Name] = dep.Version
	}
	if dep := plan.CSSEngine().Dependency; dep != nil {
		deps[dep.Name] = dep.Version
	}
	return deps
}

// PackageJSON renders the package.json of a plan: two-space indentation,
// fixed key order, sorted dependencies and no trailing newline. The document
// is checked against the embedded schema before it is returned.
func PackageJSON(plan options.Plan) ([]byte, error) {
	deps := Dependencies(plan)
	for name, version := range deps {
		if _, err := semver.NewConstraint(version); err != nil {
			return nil, fmt.Errorf("dependency %s has invalid version range %q: %w", name, version, err)
		}
	}

	pkg := packageManifest{
		Name:         plan.AppName,
		Version:      "0.0.0",
		Private:      true,
		Scripts:      packageScripts{Start: "node ./bin/www"},
		Dependencies: deps,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pkg); err != nil {
		return nil, fmt.Errorf("encoding package.json: %w", err)
	}
	content := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	if err := ValidatePackageJSON(content); err != nil {
		return nil, err
	}
	return content, nil
}

// ValidatePackageJSON checks a package.json document against the schema the
// generator guarantees.
func ValidatePackageJSON(content []byte) error {
	schema, err := getPackageSchema()
	if err != nil {
		return fmt.Errorf("loading package schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(content))
	if err != nil {
		return fmt.Errorf("parsing package.json: %w", err)
	}

	if err := schema.Validate(inst); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return fmt.Errorf("invalid package.json: %s", strings.Join(leafMessages(ve), "; "))
		}
		return fmt.Errorf("invalid package.json: %w", err)
	}
	return nil
}

// getPackageSchema compiles the embedded JSON schema once and returns it.
func getPackageSchema() (*jsonschema.Schema, error) {
	packageSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(packageSchemaBytes))
		if err != nil {
			packageSchemaErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("package.schema.json", doc); err != nil {
			packageSchemaErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		packageSchema, packageSchemaErr = c.Compile("package.schema.json")
	})
	return packageSchema, packageSchemaErr
}

// leafMessages flattens a validation error tree into "location: message" lines.
func leafMessages(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		return []string{"/" + strings.Join(ve.InstanceLocation, "/") + ": " + ve.Error()}
	}

	var msgs []string
	for _, cause := range ve.Causes {
		msgs = append(msgs, leafMessages(cause)...)
	}
	return msgs
}
