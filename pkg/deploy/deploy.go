// Package deploy copies generated output into a deploy directory and
// removes it again, driven by the generation manifest.
package deploy

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/webgenlabs/webgen/pkg/errors"
	"github.com/webgenlabs/webgen/pkg/filesystem"
	"github.com/webgenlabs/webgen/pkg/logging"
	"github.com/webgenlabs/webgen/pkg/manifest"
	"github.com/webgenlabs/webgen/pkg/types"
)

// Options defines the options shared by Deploy and Undeploy.
type Options struct {
	// OutputDir is the generated tree entries are copied from.
	OutputDir string
	// DeployDir is the directory being deployed into.
	DeployDir string
	// ManifestPath names the manifest listing the entries to act on.
	ManifestPath string
	// FileSystem abstracts filesystem operations. Defaults to the
	// real filesystem when nil.
	FileSystem types.FS
	// DryRun reports what would happen without copying or removing.
	DryRun bool
}

// Deploy copies every manifest entry from the output dir into the
// deploy dir. Entries whose deployed copy already matches the manifest
// hash are skipped. A missing source file stops the deploy.
func Deploy(opts Options) (*types.DeployResult, error) {
	logger := logging.GetLogger("deploy")
	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	man, err := manifest.Read(fsys, opts.ManifestPath)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("output", opts.OutputDir).
		Str("deploy_dir", opts.DeployDir).
		Int("entries", man.Len()).
		Bool("dry_run", opts.DryRun).
		Msg("Deploying")

	result := &types.DeployResult{
		DeployDir: opts.DeployDir,
		DryRun:    opts.DryRun,
	}

	for _, rel := range man.Paths() {
		src := filepath.Join(opts.OutputDir, filepath.FromSlash(rel))
		dst := filepath.Join(opts.DeployDir, filepath.FromSlash(rel))
		hash, _ := man.Lookup(rel)

		content, err := fsys.ReadFile(src)
		if err != nil {
			return result, errors.Wrapf(err, errors.ErrDeployCopy, "reading %s", src)
		}

		if deployed, err := manifest.HashFile(fsys, dst); err == nil && deployed == hash {
			logger.Debug().Str("file", rel).Msg("Unchanged, skipping")
			result.Skipped = append(result.Skipped, rel)
			continue
		}

		if opts.DryRun {
			result.Copied = append(result.Copied, rel)
			continue
		}

		if dir := filepath.Dir(dst); dir != "." {
			if err := fsys.MkdirAll(dir, 0o755); err != nil {
				return result, errors.Wrapf(err, errors.ErrDirCreate, "creating %s", dir)
			}
		}
		if err := fsys.WriteFile(dst, content, 0o644); err != nil {
			return result, errors.Wrapf(err, errors.ErrDeployCopy, "writing %s", dst)
		}
		logger.Debug().Str("file", rel).Msg("Deployed")
		result.Copied = append(result.Copied, rel)
	}

	logger.Info().
		Int("copied", len(result.Copied)).
		Int("skipped", len(result.Skipped)).
		Msg("Deploy complete")
	return result, nil
}

// Undeploy removes every manifest entry from the deploy dir. Entries
// already gone are tolerated. Directories left empty by the removals
// are pruned, deepest first; the deploy dir itself always stays.
func Undeploy(opts Options) (*types.UndeployResult, error) {
	logger := logging.GetLogger("deploy")
	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	man, err := manifest.Read(fsys, opts.ManifestPath)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("deploy_dir", opts.DeployDir).
		Int("entries", man.Len()).
		Bool("dry_run", opts.DryRun).
		Msg("Undeploying")

	result := &types.UndeployResult{
		DeployDir:    opts.DeployDir,
		ManifestPath: opts.ManifestPath,
		DryRun:       opts.DryRun,
	}

	dirs := map[string]bool{}
	for _, rel := range man.Paths() {
		dst := filepath.Join(opts.DeployDir, filepath.FromSlash(rel))

		if _, err := fsys.Lstat(dst); err != nil {
			if os.IsNotExist(err) {
				result.Missing = append(result.Missing, rel)
				continue
			}
			return result, errors.Wrapf(err, errors.ErrFileAccess, "checking %s", dst)
		}

		if !opts.DryRun {
			if err := fsys.Remove(dst); err != nil {
				return result, errors.Wrapf(err, errors.ErrFileAccess, "removing %s", dst)
			}
		}
		logger.Debug().Str("file", rel).Msg("Removed")
		result.Removed = append(result.Removed, rel)

		for dir := filepath.Dir(rel); dir != "." && dir != "/"; dir = filepath.Dir(dir) {
			dirs[dir] = true
		}
	}

	if !opts.DryRun {
		result.PrunedDirs = pruneEmptyDirs(fsys, opts.DeployDir, dirs)
	}

	logger.Info().
		Int("removed", len(result.Removed)).
		Int("pruned_dirs", len(result.PrunedDirs)).
		Msg("Undeploy complete")
	return result, nil
}

// pruneEmptyDirs removes the candidate directories that the removals
// emptied, deepest first so parents empty out in the same pass.
func pruneEmptyDirs(fsys types.FS, deployDir string, candidates map[string]bool) []string {
	dirs := make([]string, 0, len(candidates))
	for dir := range candidates {
		dirs = append(dirs, dir)
	}
	sort.Slice(dirs, func(i, j int) bool {
		di := strings.Count(dirs[i], "/")
		dj := strings.Count(dirs[j], "/")
		if di != dj {
			return di > dj
		}
		return dirs[i] > dirs[j]
	})

	var pruned []string
	for _, rel := range dirs {
		full := filepath.Join(deployDir, filepath.FromSlash(rel))
		entries, err := fsys.ReadDir(full)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := fsys.Remove(full); err != nil {
			continue
		}
		pruned = append(pruned, rel)
	}
	sort.Strings(pruned)
	return pruned
}
