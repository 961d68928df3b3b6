package types

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/webgenlabs/webgen/pkg/errors"
)

// Dependency describes an external resource a site needs: a repository
// to clone under the site root and a symlink exposing a path inside the
// clone under a fixed local name.
type Dependency struct {
	// URL is the remote repository location
	URL string `json:"url" toml:"url" koanf:"url"`

	// CloneDir is the directory name the clone is created in, relative
	// to the site root. It may differ from the repository's own name.
	CloneDir string `json:"cloneDir" toml:"clone_dir" koanf:"clone_dir"`

	// Source is the path inside CloneDir that the symlink exposes
	Source string `json:"source" toml:"source" koanf:"source"`

	// LinkName is the symlink name created at the site root
	LinkName string `json:"linkName" toml:"link" koanf:"link"`
}

// Target returns the symlink target relative to the site root,
// i.e. CloneDir joined with Source.
func (d Dependency) Target() string {
	return filepath.Join(d.CloneDir, d.Source)
}

// ClonePath returns the absolute clone destination under root.
func (d Dependency) ClonePath(root string) string {
	return filepath.Join(root, d.CloneDir)
}

// LinkPath returns the absolute symlink location under root.
func (d Dependency) LinkPath(root string) string {
	return filepath.Join(root, d.LinkName)
}

// Validate checks that the descriptor is usable. CloneDir and LinkName
// must be bare names so both stay directly under the site root, and
// Source must not escape the clone.
func (d Dependency) Validate() error {
	if d.URL == "" {
		return errors.New(errors.ErrInvalidInput, "dependency URL is empty")
	}
	if d.CloneDir == "" {
		return errors.Newf(errors.ErrInvalidInput, "dependency %s has no clone_dir", d.URL)
	}
	if strings.ContainsRune(d.CloneDir, filepath.Separator) || d.CloneDir == "." || d.CloneDir == ".." {
		return errors.Newf(errors.ErrInvalidInput, "clone_dir %q must be a bare directory name", d.CloneDir)
	}
	if d.Source == "" {
		return errors.Newf(errors.ErrInvalidInput, "dependency %s has no source path", d.URL)
	}
	if filepath.IsAbs(d.Source) {
		return errors.Newf(errors.ErrInvalidInput, "source %q must be relative to clone_dir", d.Source)
	}
	cleaned := filepath.Clean(d.Source)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return errors.Newf(errors.ErrInvalidInput, "source %q escapes clone_dir", d.Source)
	}
	if d.LinkName == "" {
		return errors.Newf(errors.ErrInvalidInput, "dependency %s has no link name", d.URL)
	}
	if strings.ContainsRune(d.LinkName, filepath.Separator) || d.LinkName == "." || d.LinkName == ".." {
		return errors.Newf(errors.ErrInvalidInput, "link %q must be a bare name", d.LinkName)
	}
	return nil
}

// String returns a short human-readable form used in logs.
func (d Dependency) String() string {
	return fmt.Sprintf("%s -> %s", d.LinkName, d.URL)
}
