// Package report prints the creation log and the post-generation
// instructions.
package report

import (
	"fmt"
	"io"
	"regexp"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/simonhull/expressgen/internal/generator"
	"github.com/simonhull/expressgen/internal/options"
	"github.com/simonhull/expressgen/internal/output"
	"github.com/simonhull/expressgen/internal/scaffold"
)

// createdLine matches one entry of the creation log, styled or not.
var createdLine = regexp.MustCompile(`create.*?: (.*)$`)

// Reporter writes generation results to a terminal.
type Reporter struct {
	out     io.Writer
	goos    string
	marker  lipgloss.Style
	command lipgloss.Style
}

// New returns a reporter writing to w. Styling follows w's terminal
// capabilities, so a pipe or buffer receives plain text.
func New(w io.Writer) *Reporter {
	r := lipgloss.NewRenderer(w)
	return &Reporter{
		out:     w,
		goos:    runtime.GOOS,
		marker:  r.NewStyle().Foreground(lipgloss.Color("36")),
		command: r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// ForOS returns a copy of r that formats commands for the given GOOS.
func (r *Reporter) ForOS(goos string) *Reporter {
	c := *r
	c.goos = goos
	return &c
}

// Created writes one log line per written result, in order. Skipped results
// only reach the debug log.
func (r *Reporter) Created(results []generator.WriteResult) {
	io.WriteString(r.out, r.createdLog(results))
}

// Instructions writes how to install and start the generated app.
func (r *Reporter) Instructions(plan options.Plan) {
	io.WriteString(r.out, r.instructions(plan))
}

// Summarize returns the creation log followed by the instructions.
func (r *Reporter) Summarize(results []generator.WriteResult, plan options.Plan) string {
	return r.createdLog(results) + r.instructions(plan)
}

func (r *Reporter) createdLog(results []generator.WriteResult) string {
	var b strings.Builder
	for _, res := range results {
		if !res.Outcome.Written() {
			output.Debug("left in place", "path", res.Path, "kind", res.Kind)
			continue
		}
		fmt.Fprintf(&b, "   %s : %s\n", r.marker.Render("create"), res.Path)
	}
	return b.String()
}

func (r *Reporter) instructions(plan options.Plan) string {
	prompt, start := "$", "DEBUG="+scaffold.DebugNamespace(plan.AppName)+" npm start"
	if r.goos == "windows" {
		prompt, start = ">", "SET DEBUG="+scaffold.DebugNamespace(plan.AppName)+" & npm start"
	}

	install := "npm install"
	if dest := plan.Destination; dest != "" && dest != "." {
		install = "cd " + dest + " && " + install
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("   install dependencies:\n")
	fmt.Fprintf(&b, "     %s\n", r.command.Render(prompt+" "+install))
	b.WriteString("\n")
	b.WriteString("   run the app:\n")
	fmt.Fprintf(&b, "     %s\n", r.command.Render(prompt+" "+start))
	b.WriteString("\n")
	return b.String()
}

// ParseCreated extracts the created paths from reporter output.
func ParseCreated(out string) []string {
	var paths []string
	for _, line := range strings.Split(out, "\n") {
		if m := createdLine.FindStringSubmatch(strings.TrimRight(line, "\r")); m != nil {
			paths = append(paths, m[1])
		}
	}
	return paths
}
