// Package generator walks an input tree and produces the output tree
// by running every regular file through the processor chain.
package generator

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/webgenlabs/webgen/pkg/config"
	"github.com/webgenlabs/webgen/pkg/errors"
	"github.com/webgenlabs/webgen/pkg/filesystem"
	"github.com/webgenlabs/webgen/pkg/logging"
	"github.com/webgenlabs/webgen/pkg/manifest"
	"github.com/webgenlabs/webgen/pkg/processors"
	"github.com/webgenlabs/webgen/pkg/types"
)

// Options defines the options for a generation run.
type Options struct {
	// InputDir is the tree to generate from.
	InputDir string
	// OutputDir receives the generated files. Created if missing.
	OutputDir string
	// SiteRoot is the directory layout lookups fall back to. Usually
	// the input dir's parent; empty disables the fallback.
	SiteRoot string
	// Config supplies the processor list, ignore patterns, and site
	// settings. Defaults are used when nil.
	Config *config.Config
	// ManifestPath, when set, receives the manifest of all outputs.
	ManifestPath string
	// FileSystem abstracts filesystem operations. Defaults to the
	// real filesystem when nil.
	FileSystem types.FS
}

// Generate runs the processor chain over every file under the input
// dir, in sorted walk order, and writes the results under the output
// dir. The first processor that claims a file handles it; a processing
// error stops the run.
func Generate(opts Options) (*types.GenerateResult, error) {
	logger := logging.GetLogger("generator")
	start := time.Now()

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	cfg := opts.Config
	if cfg == nil {
		var err error
		cfg, err = config.Default()
		if err != nil {
			return nil, err
		}
	}

	if info, err := fsys.Stat(opts.InputDir); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "input dir %s is not accessible", opts.InputDir)
	} else if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "input %s is not a directory", opts.InputDir)
	}
	if err := fsys.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "creating output dir %s", opts.OutputDir)
	}

	chain, err := processors.Chain(cfg.Generate.Processors, cfg.Generate.IgnorePatterns)
	if err != nil {
		return nil, err
	}

	ctx := &processors.Context{
		InputRoot:      opts.InputDir,
		SiteRoot:       opts.SiteRoot,
		Title:          cfg.Site.Title,
		BaseURL:        cfg.Site.BaseURL,
		MarkdownLayout: cfg.Generate.MarkdownLayout,
		Theme:          cfg.Generate.Theme,
		Timestamp:      start.UTC(),
		FS:             fsys,
	}
	for _, proc := range chain {
		if err := proc.Start(ctx); err != nil {
			return nil, errors.Wrapf(err, errors.ErrProcessorFailed, "starting processor %s", proc.Name())
		}
	}

	logger.Info().
		Str("input", opts.InputDir).
		Str("output", opts.OutputDir).
		Strs("processors", cfg.Generate.Processors).
		Msg("Generating site")

	result := &types.GenerateResult{
		InputDir:  opts.InputDir,
		OutputDir: opts.OutputDir,
	}
	man := manifest.New()

	inputs, err := collectInputs(fsys, opts.InputDir)
	if err != nil {
		return nil, err
	}

	for _, rel := range inputs {
		inPath := filepath.Join(opts.InputDir, rel)

		proc := claim(chain, inPath)
		outRel := proc.OutputName(rel)
		outPath := filepath.Join(opts.OutputDir, outRel)

		if dir := filepath.Dir(outPath); dir != "." {
			if err := fsys.MkdirAll(dir, 0o755); err != nil {
				return nil, errors.Wrapf(err, errors.ErrDirCreate, "creating %s", dir)
			}
		}

		wrote, err := proc.Process(inPath, outPath)
		if err != nil {
			return nil, err
		}
		if !wrote {
			logger.Debug().
				Str("file", rel).
				Str("processor", proc.Name()).
				Msg("File skipped")
			result.Ignored++
			continue
		}

		logger.Debug().
			Str("file", rel).
			Str("output", outRel).
			Str("processor", proc.Name()).
			Msg("File processed")
		result.Files = append(result.Files, outRel)

		content, err := fsys.ReadFile(outPath)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "reading back %s", outPath)
		}
		man.AddContent(filepath.ToSlash(outRel), content)
	}

	for _, proc := range chain {
		if err := proc.End(); err != nil {
			return nil, errors.Wrapf(err, errors.ErrProcessorFailed, "finishing processor %s", proc.Name())
		}
	}

	if cfg.Site.BaseURL != "" {
		sitemapRel, err := writeSitemap(fsys, opts.OutputDir, cfg.Site.BaseURL, result.Files, ctx.Timestamp)
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, sitemapRel)
		result.SitemapPath = filepath.Join(opts.OutputDir, sitemapRel)
		content, err := fsys.ReadFile(result.SitemapPath)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "reading back %s", result.SitemapPath)
		}
		man.AddContent(sitemapRel, content)
	}

	if opts.ManifestPath != "" {
		if err := man.Write(fsys, opts.ManifestPath); err != nil {
			return nil, err
		}
		result.ManifestPath = opts.ManifestPath
	}

	result.Duration = time.Since(start)
	logger.Info().
		Int("files", len(result.Files)).
		Int("ignored", result.Ignored).
		Dur("duration", result.Duration).
		Msg("Generation complete")
	return result, nil
}

// claim returns the first processor that takes the file. The chain
// always ends with the copy fallback, so one always claims.
func claim(chain []processors.Processor, inPath string) processors.Processor {
	for _, proc := range chain {
		if proc.CanProcess(inPath) {
			return proc
		}
	}
	return chain[len(chain)-1]
}

// collectInputs walks the input tree and returns relative paths of all
// regular files in sorted order. Hidden directories are not descended
// into.
func collectInputs(fsys types.FS, root string) ([]string, error) {
	var files []string
	var walk func(dir string) error
	walk = func(dir string) error {
		entries, err := fsys.ReadDir(dir)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "reading %s", dir)
		}
		for _, entry := range entries {
			full := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				if strings.HasPrefix(entry.Name(), ".") {
					continue
				}
				if err := walk(full); err != nil {
					return err
				}
				continue
			}
			rel, err := filepath.Rel(root, full)
			if err != nil {
				return errors.Wrapf(err, errors.ErrInternal, "relativizing %s", full)
			}
			files = append(files, rel)
		}
		return nil
	}
	if err := walk(root); err != nil {
		return nil, err
	}
	return files, nil
}
