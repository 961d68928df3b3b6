package config

import (
	"github.com/webgenlabs/webgen/pkg/types"
)

// Config is the root configuration for a webgen site.
type Config struct {
	Site     Site               `koanf:"site"`
	Generate Generate           `koanf:"generate"`
	Deps     []types.Dependency `koanf:"deps"`
}

// Site holds site-wide settings from the [site] section.
type Site struct {
	// Title is used by templates as the default page title
	Title string `koanf:"title"`

	// BaseURL enables sitemap generation when set
	BaseURL string `koanf:"base_url"`

	// DeployDir is the default deployment target for versioned sites
	DeployDir string `koanf:"deploy_dir"`
}

// Generate holds generation settings from the [generate] section.
type Generate struct {
	// Processors are tried in order for each input file. The ignore
	// step always runs first and the copy fallback always runs last.
	Processors []string `koanf:"processors"`

	// IgnorePatterns are basename globs excluded from generation
	IgnorePatterns []string `koanf:"ignore_patterns"`

	// MarkdownLayout names the layout wrapped around converted
	// markdown pages. Empty means bare output.
	MarkdownLayout string `koanf:"markdown_layout"`

	// Theme is the variable map available to css templates
	Theme map[string]string `koanf:"theme"`
}

// Dependencies returns the configured dependency descriptors in
// declaration order.
func (c *Config) Dependencies() []types.Dependency {
	return c.Deps
}

// HasDeployDir reports whether a deployment directory is configured.
func (c *Config) HasDeployDir() bool {
	return c.Site.DeployDir != ""
}
