package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webgenlabs/webgen/pkg/testutil"
)

// chdir switches the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

// samePath compares paths with symlinks resolved, so the comparison
// survives macOS mapping TempDir under /private/var.
func samePath(t *testing.T, want, got string) {
	t.Helper()
	wantReal, _ := filepath.EvalSymlinks(want)
	gotReal, _ := filepath.EvalSymlinks(got)
	assert.Equal(t, wantReal, gotReal)
}

func TestFindSiteRoot_EnvWins(t *testing.T) {
	t.Setenv(EnvSiteRoot, "/env/site")

	root, usedFallback, err := findSiteRoot()
	require.NoError(t, err)
	assert.Equal(t, "/env/site", root)
	assert.False(t, usedFallback)
}

func TestFindSiteRoot_GitCheckout(t *testing.T) {
	if !testutil.CommandAvailable("git") {
		t.Skip("git not available")
	}
	t.Setenv(EnvSiteRoot, "")

	checkout := t.TempDir()
	chdir(t, checkout)
	testutil.RunCommand(t, "git", "init")

	// Discovery must reach the checkout top from anywhere inside it
	nested := filepath.Join(checkout, "sub", "dir")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	chdir(t, nested)

	root, usedFallback, err := findSiteRoot()
	require.NoError(t, err)
	samePath(t, checkout, root)
	assert.False(t, usedFallback)
}

func TestFindSiteRoot_FallsBackToCwd(t *testing.T) {
	t.Setenv(EnvSiteRoot, "")

	dir := t.TempDir()
	chdir(t, dir)

	root, usedFallback, err := findSiteRoot()
	require.NoError(t, err)
	samePath(t, dir, root)
	assert.True(t, usedFallback)
}

func TestFindGitRoot_FromNestedDir(t *testing.T) {
	if !testutil.CommandAvailable("git") {
		t.Skip("git not available")
	}

	checkout := t.TempDir()
	chdir(t, checkout)
	testutil.RunCommand(t, "git", "init")

	deep := filepath.Join(checkout, "a", "b", "c")
	require.NoError(t, os.MkdirAll(deep, 0o755))
	chdir(t, deep)

	gitRoot, err := findGitRoot()
	require.NoError(t, err)
	samePath(t, checkout, gitRoot)
}
