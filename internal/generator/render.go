package generator

import (
	"io"
	"maps"
	"strings"
	"sync"

	"github.com/valyala/fasttemplate"
)

// Placeholder delimiters. They never occur in jade, ejs, handlebars or
// hogan syntax, so engine templates pass through untouched.
const (
	StartTag = "{%"
	EndTag   = "%}"
)

// Context holds the values substituted into templates. It is immutable once
// constructed.
type Context struct {
	values map[string]string
}

// NewContext creates a context from a copy of values.
func NewContext(values map[string]string) Context {
	return Context{values: maps.Clone(values)}
}

// Value returns the value for key.
func (c Context) Value(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Len returns the number of values in the context.
func (c Context) Len() int {
	return len(c.values)
}

// Renderer substitutes context values into template bodies. Parsed templates
// are cached by name, so a single Renderer can be shared across runs.
type Renderer struct {
	cache map[string]compiled
	mu    sync.RWMutex // Protect cache for concurrent access
}

type compiled struct {
	body string
	tmpl *fasttemplate.Template
	tail string // Text from an unterminated StartTag on, emitted verbatim
}

// NewRenderer creates a renderer with an empty cache.
func NewRenderer() *Renderer {
	return &Renderer{
		cache: make(map[string]compiled),
	}
}

// Render returns body with every recognized placeholder replaced. The name is
// used for caching only. Render is deterministic and has no side effects
// beyond the cache.
func (r *Renderer) Render(name, body string, ctx Context) string {
	if !strings.Contains(body, StartTag) {
		return body
	}

	c := r.template(name, body)
	return c.tmpl.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		if v, ok := ctx.Value(strings.TrimSpace(tag)); ok {
			return io.WriteString(w, v)
		}
		return io.WriteString(w, StartTag+tag+EndTag)
	}) + c.tail
}

// template returns the cached template for name, recompiling when the body
// changed.
func (r *Renderer) template(name, body string) compiled {
	r.mu.RLock()
	c, ok := r.cache[name]
	r.mu.RUnlock()
	if ok && c.body == body {
		return c
	}

	cut := terminatedPrefix(body)
	c = compiled{
		body: body,
		tmpl: fasttemplate.New(body[:cut], StartTag, EndTag),
		tail: body[cut:],
	}

	r.mu.Lock()
	r.cache[name] = c
	r.mu.Unlock()

	return c
}

// terminatedPrefix returns the length of the longest prefix of body in which
// every StartTag has a matching EndTag.
func terminatedPrefix(body string) int {
	i := 0
	for {
		start := strings.Index(body[i:], StartTag)
		if start < 0 {
			return len(body)
		}
		start += i
		end := strings.Index(body[start+len(StartTag):], EndTag)
		if end < 0 {
			return start
		}
		i = start + len(StartTag) + end + len(EndTag)
	}
}
