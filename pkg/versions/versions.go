// Package versions maintains timestamped generation outputs inside a
// versions directory and the `current` symlink selecting the live one.
//
// A version is a directory named after its UTC generation time
// (20060102-150405) with a sibling `<name>.manifest` file. The naming
// makes lexicographic and chronological order identical. The current
// link always holds a bare version name and is swapped atomically.
package versions

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/webgenlabs/webgen/pkg/errors"
	"github.com/webgenlabs/webgen/pkg/filesystem"
	"github.com/webgenlabs/webgen/pkg/logging"
	"github.com/webgenlabs/webgen/pkg/paths"
	"github.com/webgenlabs/webgen/pkg/types"
)

// TimestampFormat names version directories.
const TimestampFormat = "20060102-150405"

// currentTmpName is the staging name for atomic current swaps. It does
// not parse as a version name, so listings never pick it up.
const currentTmpName = ".current.tmp"

// NewName returns the version name for the given time.
func NewName(now time.Time) string {
	return now.UTC().Format(TimestampFormat)
}

// parseName reports whether name is a version directory name.
func parseName(name string) (time.Time, bool) {
	ts, err := time.Parse(TimestampFormat, name)
	return ts, err == nil
}

// Current returns the version the current link points at, or the empty
// string when no version has been made current yet.
func Current(fsys types.FS, versionsDir string) (string, error) {
	target, err := fsys.Readlink(filepath.Join(versionsDir, paths.CurrentLinkName))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "reading current link in %s", versionsDir)
	}
	return filepath.Base(target), nil
}

// List returns all versions in the directory, newest first.
func List(fsys types.FS, versionsDir string) (*types.VersionListResult, error) {
	entries, err := fsys.ReadDir(versionsDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "reading versions dir %s", versionsDir)
	}
	current, err := Current(fsys, versionsDir)
	if err != nil {
		return nil, err
	}

	result := &types.VersionListResult{
		VersionsDir: versionsDir,
		Current:     current,
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		ts, ok := parseName(entry.Name())
		if !ok {
			continue
		}
		info := types.VersionInfo{
			Name:      entry.Name(),
			Path:      filepath.Join(versionsDir, entry.Name()),
			Timestamp: ts,
			IsCurrent: entry.Name() == current,
		}
		manifestPath := filepath.Join(versionsDir, entry.Name()+paths.ManifestExt)
		if _, err := fsys.Stat(manifestPath); err == nil {
			info.Manifest = manifestPath
		}
		result.Versions = append(result.Versions, info)
	}

	sort.Slice(result.Versions, func(i, j int) bool {
		return result.Versions[i].Name > result.Versions[j].Name
	})
	return result, nil
}

// ParseRef resolves a version reference from the command line: the
// word "latest" or a non-negative index into the newest-first list.
func ParseRef(ref string) (int, error) {
	if ref == "latest" {
		return 0, nil
	}
	index, err := strconv.Atoi(ref)
	if err != nil || index < 0 {
		return 0, errors.Newf(errors.ErrInvalidInput,
			`version must be a non-negative integer or "latest", got %q`, ref)
	}
	return index, nil
}

// setCurrent atomically points the current link at name: the new link
// is created under a staging name and renamed over the old one.
func setCurrent(fsys types.FS, versionsDir, name string) error {
	tmp := filepath.Join(versionsDir, currentTmpName)
	_ = fsys.Remove(tmp)
	if err := fsys.Symlink(name, tmp); err != nil {
		return errors.Wrapf(err, errors.ErrLinkCreate, "staging current link in %s", versionsDir)
	}
	if err := fsys.Rename(tmp, filepath.Join(versionsDir, paths.CurrentLinkName)); err != nil {
		return errors.Wrapf(err, errors.ErrLinkCreate, "swapping current link in %s", versionsDir)
	}
	return nil
}

// ChangeCurrentOptions defines the options for the ChangeCurrent
// command.
type ChangeCurrentOptions struct {
	// VersionsDir holds the versions being managed.
	VersionsDir string
	// Index selects the version, 0 being the newest.
	Index int
	// FileSystem abstracts filesystem operations. Defaults to the
	// real filesystem when nil.
	FileSystem types.FS
}

// ChangeCurrent switches the current link to the selected version.
func ChangeCurrent(opts ChangeCurrentOptions) (*types.ChangeCurrentResult, error) {
	logger := logging.GetLogger("versions")
	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	list, err := List(fsys, opts.VersionsDir)
	if err != nil {
		return nil, err
	}
	if len(list.Versions) == 0 {
		return nil, errors.Newf(errors.ErrVersionNotFound, "no versions in %s", opts.VersionsDir)
	}
	if opts.Index < 0 || opts.Index >= len(list.Versions) {
		return nil, errors.Newf(errors.ErrVersionNotFound,
			"version index %d out of range, have %d versions", opts.Index, len(list.Versions))
	}

	name := list.Versions[opts.Index].Name
	if err := setCurrent(fsys, opts.VersionsDir, name); err != nil {
		return nil, err
	}

	logger.Info().
		Str("previous", list.Current).
		Str("current", name).
		Msg("Changed current version")
	return &types.ChangeCurrentResult{Previous: list.Current, Current: name}, nil
}

// GCOptions defines the options for the GC command.
type GCOptions struct {
	// VersionsDir holds the versions being collected.
	VersionsDir string
	// FileSystem abstracts filesystem operations. Defaults to the
	// real filesystem when nil.
	FileSystem types.FS
	// DryRun reports what would be removed without deleting.
	DryRun bool
}

// GC removes every version strictly older than the current one, along
// with its manifest. Without a current version nothing is collected.
func GC(opts GCOptions) (*types.GCResult, error) {
	logger := logging.GetLogger("versions")
	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	list, err := List(fsys, opts.VersionsDir)
	if err != nil {
		return nil, err
	}

	result := &types.GCResult{Current: list.Current, DryRun: opts.DryRun}
	if list.Current == "" {
		return result, nil
	}

	for _, version := range list.Versions {
		// Names order chronologically, so a plain comparison finds
		// everything older than current.
		if version.Name >= list.Current {
			continue
		}
		if !opts.DryRun {
			if err := fsys.RemoveAll(version.Path); err != nil {
				return result, errors.Wrapf(err, errors.ErrFileAccess, "removing %s", version.Path)
			}
			if version.Manifest != "" {
				_ = fsys.Remove(version.Manifest)
			}
		}
		logger.Info().Str("version", version.Name).Bool("dry_run", opts.DryRun).Msg("Collected version")
		result.Removed = append(result.Removed, version.Name)
	}
	return result, nil
}
