// Package site creates new site containers: the directory skeleton,
// starter input files, and the webgen.toml every other command reads.
package site

import (
	"context"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/webgenlabs/webgen/pkg/bootstrap"
	"github.com/webgenlabs/webgen/pkg/config"
	"github.com/webgenlabs/webgen/pkg/errors"
	"github.com/webgenlabs/webgen/pkg/filesystem"
	"github.com/webgenlabs/webgen/pkg/logging"
	"github.com/webgenlabs/webgen/pkg/paths"
	"github.com/webgenlabs/webgen/pkg/types"
)

// InitOptions defines the options for the Init command.
type InitOptions struct {
	// SitePath is the directory to create. It must not exist yet.
	SitePath string

	// Title overrides the starter site title.
	Title string

	// DeployDir, when set, is written into the starter configuration.
	DeployDir string

	// Bootstrap fetches the configured external dependencies into the
	// fresh site after scaffolding.
	Bootstrap bool

	// FileSystem defaults to the operating system filesystem.
	FileSystem types.FS
}

// starterConfig is the subset of the configuration written into a new
// site's webgen.toml. Everything else comes from the built-in defaults.
type starterConfig struct {
	Site starterSite `toml:"site"`
}

type starterSite struct {
	Title     string `toml:"title"`
	BaseURL   string `toml:"base_url"`
	DeployDir string `toml:"deploy_dir,omitempty"`
}

const configHeader = `# webgen site configuration. Values here override the built-in
# defaults key by key; delete a line to fall back to the default.

`

const starterLayout = `<html>
  <head>
    <title>{{ .title }}</title>
    <link rel="stylesheet" href="main.css" />
  </head>
  <body>
    {{ .body }}
  </body>
</html>
`

const starterIndex = `layout: _layout.html
title: Home
body: >-
  Welcome to your new webgen site. Edit the files under input/ and run
  webgen generate to build it.
`

const starterCSS = `body {
  color: {{ .text_color }};
  background: {{ .background_color }};
}
`

// Init creates a new site container with starter content. The target
// path must not exist; a site is never scaffolded into an existing
// directory.
func Init(ctx context.Context, opts InitOptions) (*types.InitResult, error) {
	logger := logging.GetLogger("site")

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	if opts.SitePath == "" {
		return nil, errors.New(errors.ErrInvalidInput, "site path cannot be empty")
	}

	if _, err := fsys.Lstat(opts.SitePath); err == nil {
		return nil, errors.Newf(errors.ErrSiteExists, "path %s already exists, cannot create site", opts.SitePath)
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot check site path %s", opts.SitePath)
	}

	defaults, err := config.Default()
	if err != nil {
		return nil, err
	}

	title := opts.Title
	if title == "" {
		title = defaults.Site.Title
	}

	inputDir := filepath.Join(opts.SitePath, paths.InputDirName)
	if err := fsys.MkdirAll(inputDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create site directories in %s", opts.SitePath)
	}

	starter := starterConfig{Site: starterSite{
		Title:     title,
		BaseURL:   defaults.Site.BaseURL,
		DeployDir: opts.DeployDir,
	}}
	body, err := toml.Marshal(starter)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot render site configuration")
	}

	files := []struct {
		rel     string
		content string
	}{
		{paths.SiteConfigFile, configHeader + string(body)},
		{filepath.Join(paths.InputDirName, "_layout.html"), starterLayout},
		{filepath.Join(paths.InputDirName, "index.yaml"), starterIndex},
		{filepath.Join(paths.InputDirName, "main.css"), starterCSS},
	}

	result := &types.InitResult{Path: opts.SitePath}
	for _, f := range files {
		target := filepath.Join(opts.SitePath, f.rel)
		if err := fsys.WriteFile(target, []byte(f.content), 0o644); err != nil {
			return result, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", target)
		}
		result.FilesCreated = append(result.FilesCreated, filepath.ToSlash(f.rel))
		logger.Info().Str("file", filepath.ToSlash(f.rel)).Msg("File created")
	}

	logger.Info().
		Str("path", opts.SitePath).
		Int("filesCreated", len(result.FilesCreated)).
		Msg("Site container created")

	if opts.Bootstrap {
		boot, err := bootstrap.Run(ctx, bootstrap.RunOptions{
			SiteRoot:     opts.SitePath,
			Dependencies: defaults.Dependencies(),
			FileSystem:   fsys,
		})
		result.Bootstrap = boot
		if err != nil {
			return result, err
		}
	}

	return result, nil
}
