package types

import "time"

// BootstrapResult is the top-level structure returned by the 'bootstrap'
// command. It carries one entry per configured dependency, in the order
// they were processed.
type BootstrapResult struct {
	SiteRoot     string             `json:"siteRoot"`
	Dependencies []DependencyResult `json:"dependencies"`
	DryRun       bool               `json:"dryRun"`
	Timestamp    time.Time          `json:"timestamp"`
}

// DependencyResult describes what happened to a single dependency.
type DependencyResult struct {
	Dependency Dependency      `json:"dependency"`
	State      DependencyState `json:"state"`

	// ClonePath and LinkPath are the absolute paths involved
	ClonePath string `json:"clonePath"`
	LinkPath  string `json:"linkPath"`

	// Target is the relative symlink target (CloneDir/Source)
	Target string `json:"target"`

	// DanglingTarget is set when the link was created but its target
	// does not exist inside the clone
	DanglingTarget bool `json:"danglingTarget,omitempty"`

	// Message carries failure details for failed/skipped entries
	Message string `json:"message,omitempty"`
}

// Failed reports whether any dependency failed.
func (r *BootstrapResult) Failed() bool {
	for _, dep := range r.Dependencies {
		if dep.State == DependencyStateFailed || dep.State == DependencyStateCloned {
			return true
		}
	}
	return false
}

// InitResult holds the result of the 'init' command.
type InitResult struct {
	Path         string           `json:"path"`
	FilesCreated []string         `json:"filesCreated"`
	Bootstrap    *BootstrapResult `json:"bootstrap,omitempty"`
}

// GenerateResult holds the result of a site generation run.
type GenerateResult struct {
	InputDir  string `json:"inputDir"`
	OutputDir string `json:"outputDir"`

	// Files lists output paths relative to OutputDir, in the order
	// they were written
	Files []string `json:"files"`

	// Ignored counts input files the ignore rules excluded
	Ignored int `json:"ignored"`

	ManifestPath string        `json:"manifestPath,omitempty"`
	SitemapPath  string        `json:"sitemapPath,omitempty"`
	Duration     time.Duration `json:"duration"`
}

// VersionInfo contains summary information about a single generated
// version directory.
type VersionInfo struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
	IsCurrent bool      `json:"isCurrent"`
	Manifest  string    `json:"manifest,omitempty"`
}

// VersionListResult holds the result of the 'vinfo' command.
type VersionListResult struct {
	VersionsDir string        `json:"versionsDir"`
	Versions    []VersionInfo `json:"versions"`
	Current     string        `json:"current,omitempty"`
}

// VGenerateResult holds the result of the 'vgenerate' command.
type VGenerateResult struct {
	Generate      *GenerateResult `json:"generate"`
	Version       VersionInfo     `json:"version"`
	BecameCurrent bool            `json:"becameCurrent"`
	Deploy        *DeployResult   `json:"deploy,omitempty"`
}

// ChangeCurrentResult holds the result of the 'vcurrent' command.
type ChangeCurrentResult struct {
	Previous string        `json:"previous,omitempty"`
	Current  string        `json:"current"`
	Deploy   *DeployResult `json:"deploy,omitempty"`
}

// GCResult holds the result of the 'vgc' command.
type GCResult struct {
	Removed []string `json:"removed"`
	Current string   `json:"current"`
	DryRun  bool     `json:"dryRun"`
}

// DeployResult holds the result of the 'deploy' command.
type DeployResult struct {
	DeployDir string   `json:"deployDir"`
	Copied    []string `json:"copied"`
	Skipped   []string `json:"skipped"`
	DryRun    bool     `json:"dryRun"`
}

// UndeployResult holds the result of the 'undeploy' command.
type UndeployResult struct {
	DeployDir    string   `json:"deployDir"`
	Removed      []string `json:"removed"`
	Missing      []string `json:"missing"`
	PrunedDirs   []string `json:"prunedDirs"`
	DryRun       bool     `json:"dryRun"`
	ManifestPath string   `json:"manifestPath"`
}
