package commands

import (
	"embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "A static site generator with versioned outputs"
	MsgBootstrapShort  = "Fetch and link the site's external dependencies"
	MsgInitShort       = "Create a new site container"
	MsgGenerateShort   = "Generate the site into an output directory"
	MsgServeShort      = "Preview the site locally, regenerating on change"
	MsgVGenerateShort  = "Generate a new timestamped site version"
	MsgVCurrentShort   = "Set the current site version"
	MsgVInfoShort      = "List site versions"
	MsgVInfoLong       = "Vinfo lists the versions under the versions dir, newest first, marking the current one."
	MsgVGCShort        = "Remove versions older than current"
	MsgVGCLong         = "Vgc removes every version strictly older than the current one, keeping current and anything newer. Without a current version nothing is collected."
	MsgDeployShort     = "Copy manifest entries into the deploy dir"
	MsgDeployLong      = "Deploy copies every manifest entry from the output dir into the deploy dir, creating directories as needed. Entries whose deployed copy already matches the manifest hash are skipped."
	MsgUndeployShort   = "Remove manifest entries from the deploy dir"
	MsgUndeployLong    = "Undeploy removes every manifest entry from the deploy dir, tolerating entries already gone, and prunes directories left empty."
	MsgDocsShort       = "Display documentation topics"
	MsgDocsLong        = "Docs renders webgen's built-in guides in the terminal. Without a topic it lists the available ones."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgVersionMadeCurrent = "Generated version %s and made current.\n"
	MsgVersionGenerated   = "Generated version %s.\n"
	MsgSetCurrent         = "Set current version to %s.\n"
	MsgServing            = "Serving on http://localhost:%d (Ctrl-C to stop)\n"
	MsgAvailableTopics    = "Available topics:"
	MsgTopicItem          = "  %s\n"

	// Error messages
	MsgErrInitPaths    = "failed to initialize paths: %w"
	MsgErrLoadConfig   = "failed to load site configuration: %w"
	MsgErrBadVersion   = `Version must be an integer, or "latest"`
	MsgErrUnknownTopic = "unknown topic %q, run 'webgen docs' for the list"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun    = "Preview changes without executing them"
	MsgFlagFormat    = "Output format: auto, term, text, or json"
	MsgFlagTitle     = "Site title written to webgen.toml"
	MsgFlagDeployDir = "Deployment directory written to webgen.toml"
	MsgFlagBootstrap = "Fetch the new site's dependencies after scaffolding"
	MsgFlagManifest  = "Write the generation manifest to this path"
	MsgFlagVDeploy   = "Deploy dir used when the version becomes current"
	MsgFlagPort      = "Port to serve on"
	MsgFlagWatch     = "Regenerate when input files change"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/fallback-warning.txt
	msgFallbackWarningRaw string
	MsgFallbackWarning    = strings.TrimSpace(msgFallbackWarningRaw)

	//go:embed msgs/bootstrap-long.txt
	msgBootstrapLongRaw string
	MsgBootstrapLong    = strings.TrimSpace(msgBootstrapLongRaw)

	//go:embed msgs/bootstrap-example.txt
	msgBootstrapExampleRaw string
	MsgBootstrapExample    = strings.TrimRight(msgBootstrapExampleRaw, "\n")

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/init-example.txt
	msgInitExampleRaw string
	MsgInitExample    = strings.TrimRight(msgInitExampleRaw, "\n")

	//go:embed msgs/generate-long.txt
	msgGenerateLongRaw string
	MsgGenerateLong    = strings.TrimSpace(msgGenerateLongRaw)

	//go:embed msgs/generate-example.txt
	msgGenerateExampleRaw string
	MsgGenerateExample    = strings.TrimRight(msgGenerateExampleRaw, "\n")

	//go:embed msgs/vgenerate-long.txt
	msgVGenerateLongRaw string
	MsgVGenerateLong    = strings.TrimSpace(msgVGenerateLongRaw)

	//go:embed msgs/vgenerate-example.txt
	msgVGenerateExampleRaw string
	MsgVGenerateExample    = strings.TrimRight(msgVGenerateExampleRaw, "\n")

	//go:embed msgs/vcurrent-long.txt
	msgVCurrentLongRaw string
	MsgVCurrentLong    = strings.TrimSpace(msgVCurrentLongRaw)

	//go:embed msgs/vcurrent-example.txt
	msgVCurrentExampleRaw string
	MsgVCurrentExample    = strings.TrimRight(msgVCurrentExampleRaw, "\n")

	//go:embed msgs/serve-long.txt
	msgServeLongRaw string
	MsgServeLong    = strings.TrimSpace(msgServeLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)

// Embedded documentation topics served by the docs command and the
// topic help system.
//
//go:embed docs
var docsFS embed.FS
