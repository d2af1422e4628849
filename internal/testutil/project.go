package testutil

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"
)

// TestProject is a generated application in a temporary directory
type TestProject struct {
	Root string
	Name string
	t    *testing.T
}

// NewTestProject creates a temporary directory for an app called name
func NewTestProject(t *testing.T, name string) *TestProject {
	t.Helper()

	return &TestProject{
		Root: t.TempDir(),
		Name: name,
		t:    t,
	}
}

// Dir returns the application directory.
func (p *TestProject) Dir() string {
	return filepath.Join(p.Root, p.Name)
}

// FileExists checks if a file exists in the application
func (p *TestProject) FileExists(path string) bool {
	p.t.Helper()

	_, err := os.Stat(filepath.Join(p.Dir(), filepath.FromSlash(path)))
	return err == nil
}

// ReadFile reads a file from the application
func (p *TestProject) ReadFile(path string) (string, error) {
	p.t.Helper()

	content, err := os.ReadFile(filepath.Join(p.Dir(), filepath.FromSlash(path)))
	return string(content), err
}

// NpmInstall installs the application's dependencies
func (p *TestProject) NpmInstall(ctx context.Context) error {
	p.t.Helper()

	cmd := exec.CommandContext(ctx, "npm", "install")
	cmd.Dir = p.Dir()

	output, err := cmd.CombinedOutput()
	if err != nil {
		p.t.Logf("npm install failed: %s\nOutput: %s", err, string(output))
		return err
	}
	return nil
}

// Server is a running generated application.
type Server struct {
	URL string
}

// Start runs bin/www on a free port and waits until it accepts connections.
// The server is stopped when the test ends.
func (p *TestProject) Start(ctx context.Context) (*Server, error) {
	p.t.Helper()

	port, err := freePort()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, "node", filepath.Join("bin", "www"))
	cmd.Dir = p.Dir()
	cmd.Env = append(os.Environ(), "PORT="+strconv.Itoa(port))
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting server: %w", err)
	}
	p.t.Cleanup(func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	})

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
	deadline := time.Now().Add(10 * time.Second)
	for {
		conn, err := net.DialTimeout("tcp", addr, 200*time.Millisecond)
		if err == nil {
			conn.Close()
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("server did not listen on %s: %w", addr, err)
		}
		time.Sleep(100 * time.Millisecond)
	}

	return &Server{URL: "http://" + addr}, nil
}

// Get fetches path and returns the status code and body.
func (s *Server) Get(path string) (int, string, error) {
	resp, err := http.Get(s.URL + "/" + strings.TrimPrefix(path, "/"))
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body), err
}

func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("finding free port: %w", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
