// Package bootstrap fetches a site's external dependencies and wires
// them into the site root.
//
// Each dependency descriptor names a git repository, the directory the
// clone lands in, a path inside the clone, and the local name that
// path is exposed under. The procedure is strictly sequential and
// fail-fast: descriptors are processed in configuration order, each one
// cloned and then linked, and the first failure halts the run. Nothing
// is rolled back; re-running after a successful bootstrap fails at the
// first clone because the destination already exists.
package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/webgenlabs/webgen/pkg/errors"
	"github.com/webgenlabs/webgen/pkg/filesystem"
	"github.com/webgenlabs/webgen/pkg/logging"
	"github.com/webgenlabs/webgen/pkg/types"
)

// RunOptions defines the options for the Run command.
type RunOptions struct {
	// SiteRoot is the directory clones and links are created in.
	SiteRoot string
	// Dependencies are processed in order. Usually config.Dependencies().
	Dependencies []types.Dependency
	// FileSystem abstracts filesystem operations. Defaults to the real
	// filesystem when nil.
	FileSystem types.FS
	// DryRun reports what would happen without cloning or linking.
	DryRun bool
}

// Run executes the bootstrap procedure. On failure the returned result
// is still populated, with dependencies after the failing one marked
// skipped, so callers can render per-dependency state before exiting
// non-zero.
func Run(ctx context.Context, opts RunOptions) (*types.BootstrapResult, error) {
	logger := logging.GetLogger("bootstrap")

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	if opts.SiteRoot == "" {
		return nil, errors.New(errors.ErrInvalidInput, "site root is required")
	}
	if info, err := fsys.Stat(opts.SiteRoot); err != nil {
		return nil, errors.Wrapf(err, errors.ErrSiteInvalid, "site root %s is not accessible", opts.SiteRoot)
	} else if !info.IsDir() {
		return nil, errors.Newf(errors.ErrSiteInvalid, "site root %s is not a directory", opts.SiteRoot)
	}

	if !opts.DryRun {
		if err := EnsureGit(); err != nil {
			return nil, err
		}
	}

	logger.Info().
		Str("site_root", opts.SiteRoot).
		Int("dependencies", len(opts.Dependencies)).
		Bool("dry_run", opts.DryRun).
		Msg("Bootstrapping site dependencies")

	result := &types.BootstrapResult{
		SiteRoot:  opts.SiteRoot,
		DryRun:    opts.DryRun,
		Timestamp: time.Now(),
	}

	var firstErr error
	for _, dep := range opts.Dependencies {
		if firstErr != nil {
			result.Dependencies = append(result.Dependencies, types.DependencyResult{
				Dependency: dep,
				State:      types.DependencyStateSkipped,
				ClonePath:  dep.ClonePath(opts.SiteRoot),
				LinkPath:   dep.LinkPath(opts.SiteRoot),
				Target:     dep.Target(),
				Message:    "not attempted: earlier dependency failed",
			})
			continue
		}

		depResult, err := processDependency(ctx, logger, fsys, opts.SiteRoot, dep, opts.DryRun)
		result.Dependencies = append(result.Dependencies, depResult)
		if err != nil {
			firstErr = err
			logger.Error().
				Err(err).
				Str("link", dep.LinkName).
				Msg("Bootstrap halted")
		}
	}

	if firstErr != nil {
		return result, firstErr
	}

	logger.Info().
		Int("dependencies", len(result.Dependencies)).
		Msg("Bootstrap complete")
	return result, nil
}

// processDependency clones one dependency and links its source path
// into the site root. The returned result always carries the resolved
// paths; its state records how far the sequence got.
func processDependency(ctx context.Context, logger zerolog.Logger, fsys types.FS, siteRoot string, dep types.Dependency, dryRun bool) (types.DependencyResult, error) {
	res := types.DependencyResult{
		Dependency: dep,
		State:      types.DependencyStateFailed,
		ClonePath:  dep.ClonePath(siteRoot),
		LinkPath:   dep.LinkPath(siteRoot),
		Target:     dep.Target(),
	}

	if err := dep.Validate(); err != nil {
		res.Message = err.Error()
		return res, err
	}

	// The clone destination must not exist, whatever it is. A
	// populated directory is never touched.
	if _, err := fsys.Lstat(res.ClonePath); err == nil {
		existsErr := errors.Newf(errors.ErrCloneExists,
			"clone destination already exists: %s", res.ClonePath)
		res.Message = existsErr.Error()
		return res, existsErr
	} else if !os.IsNotExist(err) {
		accessErr := errors.Wrapf(err, errors.ErrFileAccess,
			"checking clone destination %s", res.ClonePath)
		res.Message = accessErr.Error()
		return res, accessErr
	}

	if dryRun {
		if _, err := fsys.Lstat(res.LinkPath); err == nil {
			existsErr := errors.Newf(errors.ErrLinkExists,
				"link name already exists: %s", res.LinkPath)
			res.Message = existsErr.Error()
			return res, existsErr
		}
		logger.Info().
			Str("url", dep.URL).
			Str("clone_path", res.ClonePath).
			Str("link", dep.LinkName).
			Str("target", res.Target).
			Msg("Would clone and link")
		res.State = types.DependencyStateLinked
		return res, nil
	}

	logger.Info().
		Str("url", dep.URL).
		Str("clone_path", res.ClonePath).
		Msg("Cloning dependency")
	cloneDone := logging.LogOperationStart(logger, "clone "+dep.CloneDir)
	if err := clone(ctx, dep.URL, res.ClonePath); err != nil {
		res.Message = err.Error()
		return res, err
	}
	cloneDone()
	res.State = types.DependencyStateCloned

	// The link name must be free; an existing entry of any type is
	// left untouched.
	if _, err := fsys.Lstat(res.LinkPath); err == nil {
		existsErr := errors.Newf(errors.ErrLinkExists,
			"link name already exists: %s", res.LinkPath)
		res.Message = existsErr.Error()
		return res, existsErr
	} else if !os.IsNotExist(err) {
		accessErr := errors.Wrapf(err, errors.ErrFileAccess,
			"checking link name %s", res.LinkPath)
		res.Message = accessErr.Error()
		return res, accessErr
	}

	// The target is relative to the site root so the tree stays
	// relocatable.
	if err := fsys.Symlink(res.Target, res.LinkPath); err != nil {
		linkErr := errors.Wrapf(err, errors.ErrLinkCreate,
			"creating link %s -> %s", res.LinkPath, res.Target)
		res.Message = linkErr.Error()
		return res, linkErr
	}
	res.State = types.DependencyStateLinked

	// A dangling link is allowed; the clone may gain the path later.
	if _, err := fsys.Stat(filepath.Join(siteRoot, res.Target)); err != nil {
		res.DanglingTarget = true
		logger.Warn().
			Str("link", dep.LinkName).
			Str("target", res.Target).
			Msg("Link target does not exist inside the clone")
	}

	logger.Info().
		Str("link", dep.LinkName).
		Str("target", res.Target).
		Msg("Linked dependency")
	return res, nil
}
