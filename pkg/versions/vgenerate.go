package versions

import (
	"path/filepath"
	"time"

	"github.com/webgenlabs/webgen/pkg/config"
	"github.com/webgenlabs/webgen/pkg/deploy"
	"github.com/webgenlabs/webgen/pkg/errors"
	"github.com/webgenlabs/webgen/pkg/filesystem"
	"github.com/webgenlabs/webgen/pkg/generator"
	"github.com/webgenlabs/webgen/pkg/logging"
	"github.com/webgenlabs/webgen/pkg/paths"
	"github.com/webgenlabs/webgen/pkg/types"
)

// GenerateOptions defines the options for a versioned generation.
type GenerateOptions struct {
	// InputDir is the tree to generate from.
	InputDir string
	// VersionsDir receives the new version. Created if missing.
	VersionsDir string
	// SiteRoot is passed through to the generator for layout lookups.
	SiteRoot string
	// Config supplies the generation settings. Defaults when nil.
	Config *config.Config
	// DeployDir, when set, deploys a version that became current.
	DeployDir string
	// FileSystem abstracts filesystem operations. Defaults to the
	// real filesystem when nil.
	FileSystem types.FS
	// Timestamp overrides the version time; zero means now.
	Timestamp time.Time
}

// Generate produces a new version directory with its manifest. The
// first version ever generated becomes current; later ones stay
// pending until promoted with ChangeCurrent. A version that became
// current is deployed when a deploy dir is configured.
func Generate(opts GenerateOptions) (*types.VGenerateResult, error) {
	logger := logging.GetLogger("versions")
	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	ts := opts.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	name := NewName(ts)
	versionDir := filepath.Join(opts.VersionsDir, name)
	manifestPath := filepath.Join(opts.VersionsDir, name+paths.ManifestExt)

	if err := fsys.MkdirAll(opts.VersionsDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "creating versions dir %s", opts.VersionsDir)
	}
	if _, err := fsys.Lstat(versionDir); err == nil {
		return nil, errors.Newf(errors.ErrAlreadyExists, "version %s already exists", name)
	}

	genResult, err := generator.Generate(generator.Options{
		InputDir:     opts.InputDir,
		OutputDir:    versionDir,
		SiteRoot:     opts.SiteRoot,
		Config:       opts.Config,
		ManifestPath: manifestPath,
		FileSystem:   fsys,
	})
	if err != nil {
		return nil, err
	}

	current, err := Current(fsys, opts.VersionsDir)
	if err != nil {
		return nil, err
	}
	becameCurrent := current == ""
	if becameCurrent {
		if err := setCurrent(fsys, opts.VersionsDir, name); err != nil {
			return nil, err
		}
	}

	parsed, _ := parseName(name)
	result := &types.VGenerateResult{
		Generate: genResult,
		Version: types.VersionInfo{
			Name:      name,
			Path:      versionDir,
			Timestamp: parsed,
			IsCurrent: becameCurrent,
			Manifest:  manifestPath,
		},
		BecameCurrent: becameCurrent,
	}

	logger.Info().
		Str("version", name).
		Bool("became_current", becameCurrent).
		Msg("Generated version")

	if becameCurrent && opts.DeployDir != "" {
		deployResult, err := deploy.Deploy(deploy.Options{
			OutputDir:    versionDir,
			DeployDir:    opts.DeployDir,
			ManifestPath: manifestPath,
			FileSystem:   fsys,
		})
		if err != nil {
			return result, err
		}
		result.Deploy = deployResult
	}
	return result, nil
}

// Redeploy deploys an existing version into the deploy dir, used when
// promotion switches the live version.
func Redeploy(fsys types.FS, versionsDir, name, deployDir string) (*types.DeployResult, error) {
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	return deploy.Deploy(deploy.Options{
		OutputDir:    filepath.Join(versionsDir, name),
		DeployDir:    deployDir,
		ManifestPath: filepath.Join(versionsDir, name+paths.ManifestExt),
		FileSystem:   fsys,
	})
}
