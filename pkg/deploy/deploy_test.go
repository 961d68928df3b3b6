// TEST TYPE: Unit Tests (in-memory filesystem)
// DEPENDENCIES: None (mocked filesystem)
// PURPOSE: Verify manifest-driven copy, hash skipping, undeploy
// removal, and directory pruning

package deploy_test

import (
	"path"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webgenlabs/webgen/pkg/deploy"
	"github.com/webgenlabs/webgen/pkg/errors"
	"github.com/webgenlabs/webgen/pkg/filesystem"
	"github.com/webgenlabs/webgen/pkg/manifest"
	"github.com/webgenlabs/webgen/pkg/types"
)

const (
	outDir       = "/site/out"
	deployDir    = "/srv/www"
	manifestPath = "/site/out.manifest"
)

// setupOutput builds an output tree plus its manifest on a fresh
// in-memory filesystem.
func setupOutput(t *testing.T, files map[string]string) types.FS {
	t.Helper()
	fsys := filesystem.NewAferoFS(afero.NewMemMapFs())
	require.NoError(t, fsys.MkdirAll(outDir, 0o755))
	require.NoError(t, fsys.MkdirAll(deployDir, 0o755))

	man := manifest.New()
	for rel, content := range files {
		if dir := path.Dir(rel); dir != "." {
			require.NoError(t, fsys.MkdirAll(outDir+"/"+dir, 0o755))
		}
		require.NoError(t, fsys.WriteFile(outDir+"/"+rel, []byte(content), 0o644))
		man.AddContent(rel, []byte(content))
	}
	require.NoError(t, man.Write(fsys, manifestPath))
	return fsys
}

func options(fsys types.FS) deploy.Options {
	return deploy.Options{
		OutputDir:    outDir,
		DeployDir:    deployDir,
		ManifestPath: manifestPath,
		FileSystem:   fsys,
	}
}

func TestDeploy_CopiesEntries(t *testing.T) {
	fsys := setupOutput(t, map[string]string{
		"index.html":   "<html>home</html>",
		"sub/main.css": "body {}",
	})

	result, err := deploy.Deploy(options(fsys))
	require.NoError(t, err)

	assert.Equal(t, []string{"index.html", "sub/main.css"}, result.Copied)
	assert.Empty(t, result.Skipped)

	content, err := fsys.ReadFile(deployDir + "/index.html")
	require.NoError(t, err)
	assert.Equal(t, "<html>home</html>", string(content))

	content, err = fsys.ReadFile(deployDir + "/sub/main.css")
	require.NoError(t, err)
	assert.Equal(t, "body {}", string(content))
}

func TestDeploy_SkipsUnchanged(t *testing.T) {
	fsys := setupOutput(t, map[string]string{
		"index.html": "<html>home</html>",
		"other.html": "<html>other</html>",
	})

	_, err := deploy.Deploy(options(fsys))
	require.NoError(t, err)

	result, err := deploy.Deploy(options(fsys))
	require.NoError(t, err)
	assert.Empty(t, result.Copied)
	assert.Equal(t, []string{"index.html", "other.html"}, result.Skipped)
}

func TestDeploy_RecopiesModified(t *testing.T) {
	fsys := setupOutput(t, map[string]string{
		"index.html": "<html>home</html>",
	})

	_, err := deploy.Deploy(options(fsys))
	require.NoError(t, err)

	// Someone edited the deployed copy; the hash no longer matches.
	require.NoError(t, fsys.WriteFile(deployDir+"/index.html", []byte("tampered"), 0o644))

	result, err := deploy.Deploy(options(fsys))
	require.NoError(t, err)
	assert.Equal(t, []string{"index.html"}, result.Copied)

	content, err := fsys.ReadFile(deployDir + "/index.html")
	require.NoError(t, err)
	assert.Equal(t, "<html>home</html>", string(content))
}

func TestDeploy_MissingSourceFails(t *testing.T) {
	fsys := setupOutput(t, map[string]string{
		"a.html": "a",
		"z.html": "z",
	})
	require.NoError(t, fsys.Remove(outDir+"/a.html"))

	result, err := deploy.Deploy(options(fsys))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDeployCopy))

	// Fail-fast: the entry after the missing one was not copied.
	assert.Empty(t, result.Copied)
	_, statErr := fsys.Stat(deployDir + "/z.html")
	assert.Error(t, statErr)
}

func TestDeploy_DryRun(t *testing.T) {
	fsys := setupOutput(t, map[string]string{
		"index.html": "<html>home</html>",
	})

	opts := options(fsys)
	opts.DryRun = true
	result, err := deploy.Deploy(opts)
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, []string{"index.html"}, result.Copied)

	_, statErr := fsys.Stat(deployDir + "/index.html")
	assert.Error(t, statErr, "dry run must not write")
}

func TestDeploy_MissingManifest(t *testing.T) {
	fsys := filesystem.NewAferoFS(afero.NewMemMapFs())
	_, err := deploy.Deploy(options(fsys))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
}

func TestUndeploy_RemovesAndPrunes(t *testing.T) {
	fsys := setupOutput(t, map[string]string{
		"index.html":       "<html>home</html>",
		"sub/deep/app.css": "body {}",
	})
	_, err := deploy.Deploy(options(fsys))
	require.NoError(t, err)

	result, err := deploy.Undeploy(options(fsys))
	require.NoError(t, err)

	assert.Equal(t, []string{"index.html", "sub/deep/app.css"}, result.Removed)
	assert.Empty(t, result.Missing)
	assert.Equal(t, []string{"sub", "sub/deep"}, result.PrunedDirs)

	// The deploy dir itself stays.
	info, err := fsys.Stat(deployDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = fsys.Stat(deployDir + "/sub")
	assert.Error(t, err)
}

func TestUndeploy_KeepsDirsWithForeignFiles(t *testing.T) {
	fsys := setupOutput(t, map[string]string{
		"sub/page.html": "<html></html>",
	})
	_, err := deploy.Deploy(options(fsys))
	require.NoError(t, err)

	// A file webgen did not deploy shares the directory.
	require.NoError(t, fsys.WriteFile(deployDir+"/sub/keep.txt", []byte("mine"), 0o644))

	result, err := deploy.Undeploy(options(fsys))
	require.NoError(t, err)
	assert.Equal(t, []string{"sub/page.html"}, result.Removed)
	assert.Empty(t, result.PrunedDirs)

	content, err := fsys.ReadFile(deployDir + "/sub/keep.txt")
	require.NoError(t, err)
	assert.Equal(t, "mine", string(content))
}

func TestUndeploy_ToleratesMissingEntries(t *testing.T) {
	fsys := setupOutput(t, map[string]string{
		"index.html": "<html>home</html>",
		"gone.html":  "<html>gone</html>",
	})
	_, err := deploy.Deploy(options(fsys))
	require.NoError(t, err)
	require.NoError(t, fsys.Remove(deployDir+"/gone.html"))

	result, err := deploy.Undeploy(options(fsys))
	require.NoError(t, err)
	assert.Equal(t, []string{"index.html"}, result.Removed)
	assert.Equal(t, []string{"gone.html"}, result.Missing)
}

func TestUndeploy_DryRun(t *testing.T) {
	fsys := setupOutput(t, map[string]string{
		"index.html": "<html>home</html>",
	})
	_, err := deploy.Deploy(options(fsys))
	require.NoError(t, err)

	opts := options(fsys)
	opts.DryRun = true
	result, err := deploy.Undeploy(opts)
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, []string{"index.html"}, result.Removed)

	content, err := fsys.ReadFile(deployDir + "/index.html")
	require.NoError(t, err)
	assert.Equal(t, "<html>home</html>", string(content), "dry run must not remove")
}
