package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/webgenlabs/webgen/pkg/testutil"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		siteRoot string
		envSetup map[string]string
		validate func(t *testing.T, p Paths)
		wantErr  bool
	}{
		{
			name:     "explicit site root",
			siteRoot: "/tmp/site",
			validate: func(t *testing.T, p Paths) {
				testutil.AssertEqual(t, "/tmp/site", p.SiteRoot())
			},
		},
		{
			name: "from WEBGEN_SITE_ROOT env",
			envSetup: map[string]string{
				EnvSiteRoot: "/env/site",
			},
			validate: func(t *testing.T, p Paths) {
				testutil.AssertEqual(t, "/env/site", p.SiteRoot())
			},
		},
		{
			name: "git repository or fallback",
			validate: func(t *testing.T, p Paths) {
				// This test will either find the git root if we're in a git repo,
				// or fall back to the current directory
				testutil.AssertNotEmpty(t, p.SiteRoot())
				testutil.AssertTrue(t, filepath.IsAbs(p.SiteRoot()), "Path should be absolute")
			},
		},
		{
			name:     "expand tilde in explicit path",
			siteRoot: "~/my-site",
			validate: func(t *testing.T, p Paths) {
				homeDir, _ := os.UserHomeDir()
				expected := filepath.Join(homeDir, "my-site")
				testutil.AssertEqual(t, expected, p.SiteRoot())
			},
		},
		{
			name: "custom XDG directories",
			envSetup: map[string]string{
				EnvWebgenDataDir:   "/custom/data",
				EnvWebgenConfigDir: "/custom/config",
				EnvWebgenCacheDir:  "/custom/cache",
			},
			validate: func(t *testing.T, p Paths) {
				testutil.AssertEqual(t, "/custom/data", p.DataDir())
				testutil.AssertEqual(t, "/custom/config", p.ConfigDir())
				testutil.AssertEqual(t, "/custom/cache", p.CacheDir())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear relevant environment variables first
			t.Setenv(EnvSiteRoot, "")
			t.Setenv(EnvWebgenDataDir, "")
			t.Setenv(EnvWebgenConfigDir, "")
			t.Setenv(EnvWebgenCacheDir, "")

			for k, v := range tt.envSetup {
				t.Setenv(k, v)
			}

			p, err := New(tt.siteRoot)

			if tt.wantErr {
				testutil.AssertError(t, err)
				return
			}

			testutil.AssertNoError(t, err)
			testutil.AssertNotNil(t, p)

			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

func TestSitePaths(t *testing.T) {
	p, err := New("/test/site")
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, "/test/site/webgen.toml", p.SiteConfigPath())
	testutil.AssertEqual(t, "/test/site/input", p.InputDir())
	testutil.AssertEqual(t, "/test/site/versions", p.VersionsDir())
}

func TestStateDirAndLogFile(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/custom/state")

	p, err := New("/test/site")
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, "/custom/state/webgen", p.StateDir())
	testutil.AssertEqual(t, "/custom/state/webgen/webgen.log", p.LogFilePath())
}

func TestNormalizePath(t *testing.T) {
	p, err := New("/test/site")
	testutil.AssertNoError(t, err)

	homeDir, _ := os.UserHomeDir()

	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "absolute path unchanged",
			input:    "/some/path",
			expected: "/some/path",
		},
		{
			name:     "cleans redundant segments",
			input:    "/some//path/../path",
			expected: "/some/path",
		},
		{
			name:     "expands tilde",
			input:    "~/notes",
			expected: filepath.Join(homeDir, "notes"),
		},
		{
			name:    "empty path is an error",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.NormalizePath(tt.input)
			if tt.wantErr {
				testutil.AssertError(t, err)
				return
			}
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, tt.expected, got)
		})
	}
}

func TestIsInSite(t *testing.T) {
	p, err := New("/test/site")
	testutil.AssertNoError(t, err)

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"inside site", "/test/site/input/index.yaml", true},
		{"site root itself", "/test/site", true},
		{"outside site", "/other/place", false},
		{"parent of site", "/test", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.IsInSite(tt.path)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, tt.expected, got)
		})
	}
}

func TestExpandHome(t *testing.T) {
	homeDir, _ := os.UserHomeDir()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"bare tilde", "~", homeDir},
		{"tilde slash", "~/site", filepath.Join(homeDir, "site")},
		{"tilde user untouched", "~other/site", "~other/site"},
		{"no tilde", "/abs/path", "/abs/path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, tt.expected, ExpandHome(tt.input))
		})
	}
}
