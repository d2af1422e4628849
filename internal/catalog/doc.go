// Package catalog holds the static data the generator draws from: the
// supported view and stylesheet engines, their npm dependencies, and the
// embedded template bodies for every generated source file.
//
// Everything in the catalog is immutable. Accessors return copies so callers
// cannot mutate shared state between runs.
package catalog
