// Package expressgen generates Express application skeletons.
package expressgen

// Version is the version of the express command. It is overridden at build
// time with -ldflags "-X github.com/simonhull/expressgen.Version=...".
var Version = "4.13.1"
