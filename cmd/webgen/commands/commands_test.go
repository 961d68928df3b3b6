// TEST TYPE: Integration Tests (real filesystem, full command execution)
// DEPENDENCIES: pkg/testutil
// PURPOSE: Verify the webgen commands end to end through the cobra tree

package commands

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webgenlabs/webgen/pkg/errors"
	"github.com/webgenlabs/webgen/pkg/testutil"
)

// runCommand executes the root command with args, capturing stdout
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	os.Stdout = w

	done := make(chan string)
	go func() {
		data, _ := io.ReadAll(r)
		done <- string(data)
	}()

	rootCmd := NewRootCmd()
	if args == nil {
		// A nil slice would make cobra fall back to os.Args
		args = []string{}
	}
	rootCmd.SetArgs(args)
	execErr := rootCmd.Execute()

	_ = w.Close()
	os.Stdout = stdout
	return <-done, execErr
}

func TestInitCmd(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	target := filepath.Join(filepath.Dir(env.SiteRoot), "newsite")

	out, err := runCommand(t, "init", target, "--title", "My Site")
	require.NoError(t, err)
	assert.Contains(t, out, "Created site container in "+target)

	assert.True(t, testutil.FileExists(t, filepath.Join(target, "webgen.toml")))
	assert.True(t, testutil.FileExists(t, filepath.Join(target, "input", "index.yaml")))
	assert.True(t, testutil.FileExists(t, filepath.Join(target, "input", "_layout.html")))
	assert.True(t, testutil.FileExists(t, filepath.Join(target, "input", "main.css")))
	assert.Contains(t, testutil.ReadFile(t, filepath.Join(target, "webgen.toml")), "My Site")

	// A second init against the same path must refuse
	_, err = runCommand(t, "init", target)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSiteExists))
}

func TestGenerateCmd(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WithInputTree(testutil.SampleSite())

	outputDir := filepath.Join(env.SiteRoot, "public")
	manifestPath := filepath.Join(env.SiteRoot, "public.manifest")

	out, err := runCommand(t, "generate", env.InputDir(), outputDir, "--manifest", manifestPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 4 files")

	testutil.AssertFileContent(t, filepath.Join(outputDir, "index.html"),
		"<html><head><title>Home</title></head><body>Welcome</body></html>\n")
	testutil.AssertFileContent(t, filepath.Join(outputDir, "main.css"),
		"body { color: #1a1a1a; }\n")
	assert.True(t, testutil.FileExists(t, filepath.Join(outputDir, "about.html")))
	assert.True(t, testutil.FileExists(t, filepath.Join(outputDir, "robots.txt")))

	manifest := testutil.ReadFile(t, manifestPath)
	indexHash := testutil.HashContent("<html><head><title>Home</title></head><body>Welcome</body></html>\n")
	assert.Contains(t, manifest, indexHash+"  index.html")
	assert.Contains(t, manifest, "robots.txt")
}

func TestGenerateCmd_MissingInput(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)

	_, err := runCommand(t, "generate",
		filepath.Join(env.SiteRoot, "no-such-input"),
		filepath.Join(env.SiteRoot, "public"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
}

func TestVGenerateCmd_FirstVersionBecomesCurrent(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WithInputTree(testutil.SampleSite())
	versionsDir := filepath.Join(env.SiteRoot, "versions")

	out, err := runCommand(t, "vgenerate", env.InputDir(), versionsDir)
	require.NoError(t, err)
	assert.Contains(t, out, "and made current.")

	entries, err := os.ReadDir(versionsDir)
	require.NoError(t, err)
	// One version dir, its manifest, and the current link
	assert.Len(t, entries, 3)
	assert.True(t, testutil.SymlinkExists(t, filepath.Join(versionsDir, "current")))

	infoOut, err := runCommand(t, "vinfo", versionsDir)
	require.NoError(t, err)
	assert.Contains(t, infoOut, "Versions:")
	assert.Contains(t, infoOut, "(current)")
}

func TestVInfoCmd_Empty(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	versionsDir := filepath.Join(env.SiteRoot, "versions")
	require.NoError(t, os.MkdirAll(versionsDir, 0o755))

	out, err := runCommand(t, "vinfo", versionsDir)
	require.NoError(t, err)
	assert.Contains(t, out, "No website versions.")
}

func TestVInfoCmd_JSON(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	versionsDir := filepath.Join(env.SiteRoot, "versions")
	require.NoError(t, os.MkdirAll(filepath.Join(versionsDir, "20240301-100000"), 0o755))

	out, err := runCommand(t, "vinfo", versionsDir, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"versions"`)
	assert.Contains(t, out, `"20240301-100000"`)
}

// seedVersions lays down version directories with manifests and a
// current link, oldest to newest.
func seedVersions(t *testing.T, versionsDir, current string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.MkdirAll(filepath.Join(versionsDir, name), 0o755))
		require.NoError(t, os.WriteFile(
			filepath.Join(versionsDir, name+".manifest"),
			[]byte("00000000deadbeef  index.html\n"), 0o644))
	}
	if current != "" {
		testutil.CreateSymlink(t, current, filepath.Join(versionsDir, "current"))
	}
}

func TestVCurrentCmd(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	versionsDir := filepath.Join(env.SiteRoot, "versions")
	seedVersions(t, versionsDir, "20240301-100000",
		"20240301-100000", "20240302-100000")

	out, err := runCommand(t, "vcurrent", versionsDir, "latest")
	require.NoError(t, err)
	assert.Contains(t, out, "Set current version to 20240302-100000.")
	testutil.AssertSymlink(t, filepath.Join(versionsDir, "current"), "20240302-100000")

	// Index 1 rolls back to the older version
	out, err = runCommand(t, "vcurrent", versionsDir, "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Set current version to 20240301-100000.")
}

func TestVCurrentCmd_Errors(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	versionsDir := filepath.Join(env.SiteRoot, "versions")
	seedVersions(t, versionsDir, "", "20240301-100000")

	// Out-of-range index is a runtime error
	_, err := runCommand(t, "vcurrent", versionsDir, "7")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrVersionNotFound))

	// A non-integer reference is a usage error
	_, err = runCommand(t, "vcurrent", versionsDir, "newest")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUsage))
	assert.Contains(t, err.Error(), `Version must be an integer, or "latest"`)
}

func TestVGCCmd(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	versionsDir := filepath.Join(env.SiteRoot, "versions")
	seedVersions(t, versionsDir, "20240302-100000",
		"20240301-100000", "20240302-100000", "20240303-100000")

	// Dry run reports without deleting
	out, err := runCommand(t, "vgc", versionsDir, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Would garbage collect 1 versions:")
	assert.True(t, testutil.DirExists(t, filepath.Join(versionsDir, "20240301-100000")))

	out, err = runCommand(t, "vgc", versionsDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Garbage collected 1 versions:")
	assert.Contains(t, out, "20240301-100000")

	assert.False(t, testutil.DirExists(t, filepath.Join(versionsDir, "20240301-100000")))
	testutil.AssertNoFile(t, filepath.Join(versionsDir, "20240301-100000.manifest"))
	assert.True(t, testutil.DirExists(t, filepath.Join(versionsDir, "20240302-100000")))
	assert.True(t, testutil.DirExists(t, filepath.Join(versionsDir, "20240303-100000")))
}

func TestVGCCmd_NothingToCollect(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	versionsDir := filepath.Join(env.SiteRoot, "versions")
	seedVersions(t, versionsDir, "", "20240301-100000")

	out, err := runCommand(t, "vgc", versionsDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to garbage collect or no current version to base from.")
}

func TestDeployAndUndeployCmds(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WithInputTree(testutil.SampleSite())

	outputDir := filepath.Join(env.SiteRoot, "public")
	manifestPath := filepath.Join(env.SiteRoot, "public.manifest")
	deployDir := filepath.Join(env.SiteRoot, "www")

	_, err := runCommand(t, "generate", env.InputDir(), outputDir, "-m", manifestPath)
	require.NoError(t, err)

	// Dry run must not touch the deploy dir
	out, err := runCommand(t, "deploy", outputDir, deployDir, manifestPath, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Would deploy 4 files to "+deployDir)
	testutil.AssertNoFile(t, filepath.Join(deployDir, "index.html"))

	out, err = runCommand(t, "deploy", outputDir, deployDir, manifestPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Deployed 4 files to "+deployDir)
	testutil.AssertFileContent(t, filepath.Join(deployDir, "index.html"),
		"<html><head><title>Home</title></head><body>Welcome</body></html>\n")

	// A repeated deploy skips everything
	out, err = runCommand(t, "deploy", outputDir, deployDir, manifestPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Deployed 0 files to "+deployDir+" (4 unchanged).")

	out, err = runCommand(t, "undeploy", outputDir, deployDir, manifestPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 4 files from "+deployDir)
	testutil.AssertNoFile(t, filepath.Join(deployDir, "index.html"))
}

func TestBootstrapCmd_DryRun(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WithFileTree(testutil.FileTree{
		"webgen.toml": "[[deps]]\n" +
			"url = \"https://example.com/theme.git\"\n" +
			"clone_dir = \"theme\"\n" +
			"source = \"templates\"\n" +
			"link = \"templates\"\n",
	})

	out, err := runCommand(t, "bootstrap", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "would link templates -> theme/templates")

	// Nothing was cloned or linked
	assert.False(t, testutil.DirExists(t, filepath.Join(env.SiteRoot, "theme")))
	testutil.AssertNoFile(t, filepath.Join(env.SiteRoot, "templates"))
}

func TestBootstrapCmd_GitMissing(t *testing.T) {
	testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	t.Setenv("PATH", "")

	_, err := runCommand(t, "bootstrap")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrGitMissing))
}
