package style

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/webgenlabs/webgen/pkg/errors"
	"github.com/webgenlabs/webgen/pkg/types"
)

func sampleBootstrap() *types.BootstrapResult {
	return &types.BootstrapResult{
		SiteRoot: "/site",
		Dependencies: []types.DependencyResult{
			{
				Dependency: types.Dependency{
					URL:      "https://github.com/webgenlabs/webgen-theme-classic.git",
					CloneDir: "webgen-theme-classic",
					Source:   "templates",
					LinkName: "templates",
				},
				State:  types.DependencyStateLinked,
				Target: "webgen-theme-classic/templates",
			},
			{
				Dependency: types.Dependency{
					URL:      "https://github.com/webgenlabs/webgen-assets-base.git",
					CloneDir: "webgen-assets-base",
					Source:   "css",
					LinkName: "styles",
				},
				State:   types.DependencyStateFailed,
				Target:  "webgen-assets-base/css",
				Message: "[CLONE_FAILED] git clone failed",
			},
		},
	}
}

func TestPlainRenderBootstrap(t *testing.T) {
	r := NewPlainRenderer()
	out := r.RenderBootstrap(sampleBootstrap())

	assert.Equal(t,
		"linked     templates -> webgen-theme-classic/templates\n"+
			"failed     styles: [CLONE_FAILED] git clone failed",
		out)
}

func TestPlainRenderBootstrap_DryRun(t *testing.T) {
	result := sampleBootstrap()
	result.DryRun = true
	result.Dependencies = result.Dependencies[:1]

	out := NewPlainRenderer().RenderBootstrap(result)
	assert.Equal(t, "would link templates -> webgen-theme-classic/templates", out)
}

func TestPlainRenderBootstrap_Dangling(t *testing.T) {
	result := sampleBootstrap()
	result.Dependencies = result.Dependencies[:1]
	result.Dependencies[0].DanglingTarget = true

	out := NewPlainRenderer().RenderBootstrap(result)
	assert.Contains(t, out, "(link target missing in clone)")
}

func TestPlainRenderBootstrap_Empty(t *testing.T) {
	out := NewPlainRenderer().RenderBootstrap(&types.BootstrapResult{})
	assert.Equal(t, "No dependencies configured.", out)
}

func TestPlainRenderVersionList(t *testing.T) {
	r := NewPlainRenderer()

	assert.Equal(t, "No website versions.",
		r.RenderVersionList(&types.VersionListResult{}))

	out := r.RenderVersionList(&types.VersionListResult{
		Versions: []types.VersionInfo{
			{Name: "20240302-100000"},
			{Name: "20240301-100000", IsCurrent: true},
		},
		Current: "20240301-100000",
	})
	assert.Equal(t,
		"Versions:\n"+
			"   0. 20240302-100000\n"+
			"   1. 20240301-100000 (current)",
		out)
}

func TestPlainRenderDeploy(t *testing.T) {
	r := NewPlainRenderer()

	out := r.RenderDeploy(&types.DeployResult{
		DeployDir: "/srv/www",
		Copied:    []string{"index.html", "main.css"},
		Skipped:   []string{"robots.txt"},
	})
	assert.Equal(t, "Deployed 2 files to /srv/www (1 unchanged).", out)

	dry := r.RenderDeploy(&types.DeployResult{DeployDir: "/srv/www", DryRun: true})
	assert.Equal(t, "Would deploy 0 files to /srv/www (0 unchanged).", dry)
}

func TestPlainRenderUndeploy(t *testing.T) {
	out := NewPlainRenderer().RenderUndeploy(&types.UndeployResult{
		DeployDir:  "/srv/www",
		Removed:    []string{"index.html", "main.css"},
		Missing:    []string{"old.html"},
		PrunedDirs: []string{"sub"},
	})
	assert.Equal(t, "Removed 2 files from /srv/www, 1 already missing, pruned 1 directories.", out)
}

func TestPlainRenderGC(t *testing.T) {
	r := NewPlainRenderer()

	assert.Equal(t, "Nothing to garbage collect or no current version to base from.",
		r.RenderGC(&types.GCResult{}))

	out := r.RenderGC(&types.GCResult{
		Removed: []string{"20240301-100000", "20240229-090000"},
		Current: "20240302-100000",
	})
	assert.Equal(t,
		"Garbage collected 2 versions:\n"+
			"  20240301-100000\n"+
			"  20240229-090000",
		out)

	dry := r.RenderGC(&types.GCResult{Removed: []string{"20240301-100000"}, DryRun: true})
	assert.Contains(t, dry, "Would garbage collect 1 versions:")
}

func TestPlainRenderInit(t *testing.T) {
	out := NewPlainRenderer().RenderInit(&types.InitResult{
		Path:         "/tmp/site",
		FilesCreated: []string{"webgen.toml", "input/index.yaml"},
	})
	assert.Equal(t,
		"Created site container in /tmp/site\n"+
			"  webgen.toml\n"+
			"  input/index.yaml",
		out)
}

func TestPlainRenderError(t *testing.T) {
	r := NewPlainRenderer()
	assert.Empty(t, r.RenderError(nil))

	err := errors.New(errors.ErrGitMissing, "git not found")
	assert.Equal(t, "Error: [GIT_MISSING] git not found", r.RenderError(err))
}

func TestTerminalRenderer(t *testing.T) {
	r := NewTerminalRenderer()

	boot := r.RenderBootstrap(sampleBootstrap())
	assert.Contains(t, boot, "templates")
	assert.Contains(t, boot, "git clone failed")

	list := r.RenderVersionList(&types.VersionListResult{
		Versions: []types.VersionInfo{{Name: "20240301-100000", IsCurrent: true}},
	})
	assert.Contains(t, list, "20240301-100000")
	assert.Contains(t, list, "(current)")

	gc := r.RenderGC(&types.GCResult{})
	assert.Contains(t, gc, "Nothing to garbage collect")

	errOut := r.RenderError(errors.New(errors.ErrCloneFailed, "boom"))
	assert.Contains(t, errOut, "boom")
}

func TestNewRenderer(t *testing.T) {
	_, isTerminal := NewRenderer(FormatTerminal).(*TerminalRenderer)
	assert.True(t, isTerminal)

	_, isPlain := NewRenderer(FormatText).(*PlainRenderer)
	assert.True(t, isPlain)

	// JSON and auto fall back to plain here; callers special-case JSON.
	_, isPlain = NewRenderer(FormatJSON).(*PlainRenderer)
	assert.True(t, isPlain)
}
