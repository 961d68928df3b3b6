// TEST TYPE: Unit Tests (in-memory filesystem)
// DEPENDENCIES: None (mocked filesystem)
// PURPOSE: Verify versioned generation, first-version promotion, and
// deploy-on-current behavior

package versions_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webgenlabs/webgen/pkg/config"
	"github.com/webgenlabs/webgen/pkg/errors"
	"github.com/webgenlabs/webgen/pkg/types"
	"github.com/webgenlabs/webgen/pkg/versions"
)

const (
	siteRoot = "/site"
	inputDir = "/site/input"
)

var (
	ts1 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	ts2 = time.Date(2024, 3, 1, 10, 5, 0, 0, time.UTC)
)

func setupSite(t *testing.T) types.FS {
	t.Helper()
	fsys := memFS(t)
	require.NoError(t, fsys.MkdirAll(inputDir, 0o755))
	require.NoError(t, fsys.WriteFile(
		filepath.Join(inputDir, "index.html"), []byte("<h1>{{ .title }}</h1>"), 0o644))
	require.NoError(t, fsys.WriteFile(
		filepath.Join(inputDir, "main.css"), []byte("body { color: {{ .text_color }}; }"), 0o644))
	return fsys
}

func genOptions(t *testing.T, fsys types.FS, ts time.Time) versions.GenerateOptions {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	return versions.GenerateOptions{
		InputDir:    inputDir,
		VersionsDir: versionsDir,
		SiteRoot:    siteRoot,
		Config:      cfg,
		FileSystem:  fsys,
		Timestamp:   ts,
	}
}

func TestGenerate_FirstVersionBecomesCurrent(t *testing.T) {
	fsys := setupSite(t)

	result, err := versions.Generate(genOptions(t, fsys, ts1))
	require.NoError(t, err)

	assert.Equal(t, "20240301-100000", result.Version.Name)
	assert.True(t, result.BecameCurrent)
	assert.True(t, result.Version.IsCurrent)
	assert.Equal(t, []string{"index.html", "main.css"}, result.Generate.Files)

	current, err := versions.Current(fsys, versionsDir)
	require.NoError(t, err)
	assert.Equal(t, "20240301-100000", current)

	data, err := fsys.ReadFile(filepath.Join(versionsDir, "20240301-100000", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<h1>A webgen site</h1>", string(data))

	// The manifest lands next to the version directory, never inside it.
	_, err = fsys.Stat(filepath.Join(versionsDir, "20240301-100000.manifest"))
	assert.NoError(t, err)
	_, err = fsys.Stat(filepath.Join(versionsDir, "20240301-100000", "20240301-100000.manifest"))
	assert.Error(t, err)
}

func TestGenerate_SecondVersionStaysPending(t *testing.T) {
	fsys := setupSite(t)

	_, err := versions.Generate(genOptions(t, fsys, ts1))
	require.NoError(t, err)

	result, err := versions.Generate(genOptions(t, fsys, ts2))
	require.NoError(t, err)
	assert.Equal(t, "20240301-100500", result.Version.Name)
	assert.False(t, result.BecameCurrent)
	assert.False(t, result.Version.IsCurrent)

	current, err := versions.Current(fsys, versionsDir)
	require.NoError(t, err)
	assert.Equal(t, "20240301-100000", current, "current must not move")

	list, err := versions.List(fsys, versionsDir)
	require.NoError(t, err)
	assert.Len(t, list.Versions, 2)
}

func TestGenerate_SameTimestampCollides(t *testing.T) {
	fsys := setupSite(t)

	_, err := versions.Generate(genOptions(t, fsys, ts1))
	require.NoError(t, err)

	_, err = versions.Generate(genOptions(t, fsys, ts1))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
}

func TestGenerate_DeploysWhenBecomingCurrent(t *testing.T) {
	fsys := setupSite(t)
	deployDir := "/srv/www"

	opts := genOptions(t, fsys, ts1)
	opts.DeployDir = deployDir
	result, err := versions.Generate(opts)
	require.NoError(t, err)

	require.NotNil(t, result.Deploy)
	assert.ElementsMatch(t, []string{"index.html", "main.css"}, result.Deploy.Copied)

	data, err := fsys.ReadFile(filepath.Join(deployDir, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<h1>A webgen site</h1>", string(data))
}

func TestGenerate_PendingVersionDoesNotDeploy(t *testing.T) {
	fsys := setupSite(t)
	deployDir := "/srv/www"

	opts := genOptions(t, fsys, ts1)
	opts.DeployDir = deployDir
	_, err := versions.Generate(opts)
	require.NoError(t, err)

	opts = genOptions(t, fsys, ts2)
	opts.DeployDir = deployDir
	result, err := versions.Generate(opts)
	require.NoError(t, err)

	assert.Nil(t, result.Deploy)
	data, err := fsys.ReadFile(filepath.Join(deployDir, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<h1>A webgen site</h1>", string(data), "deployed content unchanged")
}

func TestRedeploy(t *testing.T) {
	fsys := setupSite(t)
	deployDir := "/srv/www"

	_, err := versions.Generate(genOptions(t, fsys, ts1))
	require.NoError(t, err)

	// Change the input and build a second version.
	require.NoError(t, fsys.WriteFile(
		filepath.Join(inputDir, "index.html"), []byte("<h1>updated</h1>"), 0o644))
	result, err := versions.Generate(genOptions(t, fsys, ts2))
	require.NoError(t, err)

	deployResult, err := versions.Redeploy(fsys, versionsDir, result.Version.Name, deployDir)
	require.NoError(t, err)
	assert.Contains(t, deployResult.Copied, "index.html")

	data, err := fsys.ReadFile(filepath.Join(deployDir, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<h1>updated</h1>", string(data))
}
