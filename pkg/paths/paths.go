// Package paths resolves where webgen reads and writes: the site root
// (environment variable, enclosing git checkout, or working directory,
// in that order), the conventional paths inside a site, and the XDG
// base directories used for state and configuration.
package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/webgenlabs/webgen/pkg/errors"
)

// Environment variable names
const (
	// EnvSiteRoot is the primary environment variable for the site location
	EnvSiteRoot = "WEBGEN_SITE_ROOT"

	// EnvWebgenDataDir overrides the XDG data directory for webgen
	EnvWebgenDataDir = "WEBGEN_DATA_DIR"

	// EnvWebgenConfigDir overrides the XDG config directory for webgen
	EnvWebgenConfigDir = "WEBGEN_CONFIG_DIR"

	// EnvWebgenCacheDir overrides the XDG cache directory for webgen
	EnvWebgenCacheDir = "WEBGEN_CACHE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
// IMPORTANT: These constants define webgen's on-disk layout and are NOT
// user-configurable. User-configurable paths belong in pkg/config instead.
const (
	// WebgenDirName is the directory name for webgen-specific files
	WebgenDirName = "webgen"

	// SiteConfigFile is the name of the site configuration file
	SiteConfigFile = "webgen.toml"

	// InputDirName is the default input directory name inside a site
	InputDirName = "input"

	// VersionsDirName is the directory versioned outputs live in
	VersionsDirName = "versions"

	// CurrentLinkName is the symlink name that marks the current version
	CurrentLinkName = "current"

	// ManifestExt is the file extension for generation manifests
	ManifestExt = ".manifest"

	// LogFileName is the name of the log file
	LogFileName = "webgen.log"
)

// Paths provides centralized path management for webgen
type Paths interface {
	SiteRoot() string
	UsedFallback() bool
	SiteConfigPath() string
	InputDir() string
	VersionsDir() string
	DataDir() string
	ConfigDir() string
	CacheDir() string
	StateDir() string
	NormalizePath(path string) (string, error)
	IsInSite(path string) (bool, error)
	LogFilePath() string
}

// paths provides centralized path management for webgen
type paths struct {
	// siteRoot is the root directory of the site being worked on
	siteRoot string

	// xdgData is the XDG data directory
	xdgData string

	// xdgConfig is the XDG config directory
	xdgConfig string

	// xdgCache is the XDG cache directory
	xdgCache string

	// xdgState is the XDG state directory
	xdgState string

	// usedFallback indicates if we fell back to cwd (for warning display)
	usedFallback bool
}

// New creates a new Paths instance with the given site root.
// If siteRoot is empty, it will be determined from environment variables
// or defaults.
func New(siteRoot string) (Paths, error) {
	p := &paths{}

	if siteRoot == "" {
		root, usedFallback, err := findSiteRoot()
		if err != nil {
			return nil, err
		}
		p.siteRoot = root
		p.usedFallback = usedFallback
	} else {
		p.siteRoot = expandHome(siteRoot)
		p.usedFallback = false
	}

	// Ensure site root is absolute
	absRoot, err := filepath.Abs(p.siteRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for site root")
	}
	p.siteRoot = absRoot

	p.setupXDGDirs()

	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	// Data directory
	if dataDir := os.Getenv(EnvWebgenDataDir); dataDir != "" {
		p.xdgData = expandHome(dataDir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, WebgenDirName)
	}

	// Config directory
	if configDir := os.Getenv(EnvWebgenConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, WebgenDirName)
	}

	// Cache directory
	if cacheDir := os.Getenv(EnvWebgenCacheDir); cacheDir != "" {
		p.xdgCache = expandHome(cacheDir)
	} else {
		p.xdgCache = filepath.Join(xdg.CacheHome, WebgenDirName)
	}

	// State directory - XDG doesn't provide StateHome, so we check manually
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, WebgenDirName)
	} else {
		homeDir, _ := os.UserHomeDir()
		p.xdgState = filepath.Join(homeDir, ".local", "state", WebgenDirName)
	}
}

// findSiteRoot determines the site root using the following priority:
// 1. WEBGEN_SITE_ROOT environment variable (if set)
// 2. Git repository root (found via 'git rev-parse --show-toplevel')
// 3. Current working directory (fallback)
//
// This allows webgen to work in three common scenarios:
// - Explicit configuration via WEBGEN_SITE_ROOT
// - Automatic detection when run from within a git-managed site
// - Fallback to current directory for quick testing or non-git setups
func findSiteRoot() (string, bool, error) {
	if root := os.Getenv(EnvSiteRoot); root != "" {
		return expandHome(root), false, nil
	}

	gitRoot, err := findGitRoot()
	if err == nil && gitRoot != "" {
		return gitRoot, false, nil
	}

	// Fallback to current working directory with warning
	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}

	return cwd, true, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		// Git command failed - not in a git repo or git not installed
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}

	return gitRoot, nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to HOME env var
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle both ~/ and ~
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// SiteRoot returns the root directory of the site
func (p *paths) SiteRoot() string {
	return p.siteRoot
}

// UsedFallback returns true if the current working directory was used as fallback
func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

// SiteConfigPath returns the path to the site's webgen.toml
func (p *paths) SiteConfigPath() string {
	return filepath.Join(p.siteRoot, SiteConfigFile)
}

// InputDir returns the default input directory inside the site
func (p *paths) InputDir() string {
	return filepath.Join(p.siteRoot, InputDirName)
}

// VersionsDir returns the directory versioned outputs live in
func (p *paths) VersionsDir() string {
	return filepath.Join(p.siteRoot, VersionsDirName)
}

// DataDir returns the XDG data directory for webgen
func (p *paths) DataDir() string {
	return p.xdgData
}

// ConfigDir returns the XDG config directory for webgen
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// CacheDir returns the XDG cache directory for webgen
func (p *paths) CacheDir() string {
	return p.xdgCache
}

// StateDir returns the XDG state directory for webgen
func (p *paths) StateDir() string {
	return p.xdgState
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func (p *paths) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	expanded := expandHome(path)

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path")
	}

	return filepath.Clean(abs), nil
}

// IsInSite checks if a path is within the site root
func (p *paths) IsInSite(path string) (bool, error) {
	normalized, err := p.NormalizePath(path)
	if err != nil {
		return false, err
	}

	rel, err := filepath.Rel(p.siteRoot, normalized)
	if err != nil {
		return false, nil
	}

	// If the relative path starts with .., it's outside the site
	return !strings.HasPrefix(rel, ".."), nil
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}

// LogFilePath returns the path to the webgen log file
// Respects XDG_STATE_HOME if set
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}
