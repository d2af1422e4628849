// Package output provides styled terminal output for the express generator.
//
// # Usage
//
//	output.Info("Next steps:")
//	output.Step("cd myapp && npm install")
//	output.Error("destination is not empty")
//
// # Verbose Mode
//
// Diagnostics are routed through a charmbracelet/log logger on stderr.
// Verbose mode lowers its level to debug:
//
//	output.SetVerbose(true)
//	output.Verbose("rendering app.js")
//	output.Debug("write", "path", "bin/www", "outcome", "created")
//
// # Streams
//
// Info and Step write to stdout; Error and all log records
// write to stderr. Tests swap both with SetWriters.
package output
