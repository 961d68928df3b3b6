// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Orchestrate test environments with proper dependencies

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/webgenlabs/webgen/pkg/filesystem"
	"github.com/webgenlabs/webgen/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment provides a complete test environment with an isolated
// site root and home directory.
type TestEnvironment struct {
	// Core paths
	SiteRoot string
	HomeDir  string
	XDGData  string

	// FS is the filesystem all operations in the test should go through
	FS types.FS

	// Environment type
	Type EnvType

	// Test context
	t       *testing.T
	tempDir string // Only used for EnvIsolated
	cleanup []func()
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{
		t:    t,
		Type: envType,
	}

	switch envType {
	case EnvMemoryOnly:
		env.setupMemoryEnvironment()
	case EnvIsolated:
		env.setupIsolatedEnvironment()
	}

	// Set environment variables
	t.Setenv("WEBGEN_SITE_ROOT", env.SiteRoot)
	t.Setenv("HOME", env.HomeDir)
	t.Setenv("XDG_DATA_HOME", env.XDGData)

	t.Cleanup(func() {
		env.Cleanup()
	})

	return env
}

// setupMemoryEnvironment configures a pure in-memory environment
func (env *TestEnvironment) setupMemoryEnvironment() {
	env.SiteRoot = "/virtual/site"
	env.HomeDir = "/virtual/home"
	env.XDGData = "/virtual/home/.local/share"

	env.FS = filesystem.NewAferoFS(afero.NewMemMapFs())

	// Create base directories
	_ = env.FS.MkdirAll(env.SiteRoot, 0755)
	_ = env.FS.MkdirAll(env.HomeDir, 0755)
	_ = env.FS.MkdirAll(env.XDGData, 0755)
}

// setupIsolatedEnvironment configures a real filesystem in temp directory
func (env *TestEnvironment) setupIsolatedEnvironment() {
	tempDir := env.t.TempDir()
	env.tempDir = tempDir

	env.SiteRoot = filepath.Join(tempDir, "site")
	env.HomeDir = filepath.Join(tempDir, "home")
	env.XDGData = filepath.Join(tempDir, "home", ".local", "share")

	env.FS = filesystem.NewOS()

	// Create base directories
	_ = env.FS.MkdirAll(env.SiteRoot, 0755)
	_ = env.FS.MkdirAll(env.HomeDir, 0755)
	_ = env.FS.MkdirAll(env.XDGData, 0755)
}

// Cleanup performs environment cleanup
func (env *TestEnvironment) Cleanup() {
	for _, fn := range env.cleanup {
		fn()
	}
}

// InputDir returns the conventional input directory inside the site root.
func (env *TestEnvironment) InputDir() string {
	return filepath.Join(env.SiteRoot, "input")
}

// WithFileTree creates a complete file tree structure under the site root
func (env *TestEnvironment) WithFileTree(tree FileTree) {
	env.t.Helper()
	createFileTree(env.t, env.FS, env.SiteRoot, tree)
}

// WithInputTree creates a file tree under the site's input directory
func (env *TestEnvironment) WithInputTree(tree FileTree) {
	env.t.Helper()
	if err := env.FS.MkdirAll(env.InputDir(), 0755); err != nil {
		env.t.Fatalf("Failed to create input directory: %v", err)
	}
	createFileTree(env.t, env.FS, env.InputDir(), tree)
}

// FileTree represents a directory structure for testing
type FileTree map[string]interface{}

// createFileTree recursively creates a file tree
func createFileTree(t *testing.T, fs types.FS, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			// It's a file
			if dir := filepath.Dir(fullPath); dir != "." {
				if err := fs.MkdirAll(dir, 0755); err != nil {
					t.Fatalf("Failed to create directory %s: %v", dir, err)
				}
			}
			if err := fs.WriteFile(fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			// It's a directory
			if err := fs.MkdirAll(fullPath, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			createFileTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}

// CreateFileTree creates a file tree rooted at basePath on the given
// filesystem. Exposed for tests that manage their own roots.
func CreateFileTree(t *testing.T, fs types.FS, basePath string, tree FileTree) {
	t.Helper()
	createFileTree(t, fs, basePath, tree)
}

// Pre-built site trees for common test scenarios

// SampleSite returns an input tree with one of each page kind: a YAML
// page document, a markdown page, a templated stylesheet, a layout, and
// a file no processor claims. The layout carries the underscore prefix
// so it resolves as a layout without being processed standalone.
func SampleSite() FileTree {
	return FileTree{
		"index.yaml": "layout: _layout.html\ntitle: Home\nbody: Welcome\n",
		"about.md":   "# About\n\nA small site.\n",
		"main.css":   "body { color: {{ .text_color }}; }\n",
		"_layout.html": "<html><head><title>{{ .title }}</title></head>" +
			"<body>{{ .body }}</body></html>\n",
		"robots.txt": "User-agent: *\nAllow: /\n",
	}
}

// IgnoredFiles returns input entries that the default ignore patterns
// should exclude from generation.
func IgnoredFiles() FileTree {
	return FileTree{
		"_draft.yaml": "layout: layout.html\ntitle: Draft\n",
		".#lock.yaml": "scratch\n",
		"notes.txt~":  "backup\n",
	}
}
