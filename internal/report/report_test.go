package report_test

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/expressgen/internal/generator"
	"github.com/simonhull/expressgen/internal/options"
	"github.com/simonhull/expressgen/internal/report"
)

func testPlan(t *testing.T, dest string) options.Plan {
	t.Helper()
	p, err := options.ResolveIn(options.Raw{Destination: dest}, "/work")
	require.NoError(t, err)
	return p
}

func TestCreated(t *testing.T) {
	var buf bytes.Buffer
	r := report.New(&buf)

	r.Created([]generator.WriteResult{
		{Path: ".", Kind: generator.KindDirectory, Outcome: generator.Created},
		{Path: "app.js", Kind: generator.KindFile, Outcome: generator.Overwritten},
		{Path: "views", Kind: generator.KindDirectory, Outcome: generator.SkippedExisting},
	})

	assert.Equal(t, "   create : .\n   create : app.js\n", buf.String())
	assert.Equal(t, []string{".", "app.js"}, report.ParseCreated(buf.String()))
}

func TestCreated_Empty(t *testing.T) {
	var buf bytes.Buffer
	report.New(&buf).Created(nil)
	assert.Empty(t, buf.String())
	assert.Empty(t, report.ParseCreated(buf.String()))
}

func TestInstructions(t *testing.T) {
	tests := []struct {
		name     string
		dest     string
		goos     string
		contains []string
		absent   []string
	}{
		{
			name:     "subdirectory",
			dest:     "app-0.42",
			goos:     "linux",
			contains: []string{"install dependencies:", "$ cd app-0.42 && npm install", "run the app:", "$ DEBUG=app-0.42:* npm start"},
		},
		{
			name:     "current directory",
			dest:     ".",
			goos:     "darwin",
			contains: []string{"$ npm install"},
			absent:   []string{"cd ."},
		},
		{
			name:     "windows",
			dest:     "blog",
			goos:     "windows",
			contains: []string{"> cd blog && npm install", "> SET DEBUG=blog:* & npm start"},
		},
	}

	debugHint := regexp.MustCompile(`DEBUG=[a-z0-9.-]+:\* (?:& )?npm start`)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			report.New(&buf).ForOS(tt.goos).Instructions(testPlan(t, tt.dest))

			out := buf.String()
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out, s)
			}
			assert.Regexp(t, debugHint, out)
			assert.Empty(t, report.ParseCreated(out))
		})
	}
}

func TestSummarize(t *testing.T) {
	var buf bytes.Buffer
	r := report.New(&buf).ForOS("linux")
	p := testPlan(t, "hello-world")

	results := []generator.WriteResult{
		{Path: ".", Kind: generator.KindDirectory, Outcome: generator.Created},
		{Path: "bin/www", Kind: generator.KindFile, Outcome: generator.Created},
	}
	summary := r.Summarize(results, p)

	r.Created(results)
	r.Instructions(p)
	assert.Equal(t, buf.String(), summary)
	assert.Equal(t, []string{".", "bin/www"}, report.ParseCreated(summary))
}

func TestParseCreated(t *testing.T) {
	out := "   \x1b[36mcreate\x1b[0m : public/images\r\n" +
		"noise\n" +
		"   create : routes/users.js\n"
	assert.Equal(t, []string{"public/images", "routes/users.js"}, report.ParseCreated(out))
}
