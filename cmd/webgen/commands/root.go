// Package commands wires the webgen command-line interface: a cobra
// root command, one constructor per subcommand, and the helpers shared
// between them.
package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/webgenlabs/webgen/internal/version"
	"github.com/webgenlabs/webgen/pkg/cobrax/topics"
	"github.com/webgenlabs/webgen/pkg/config"
	"github.com/webgenlabs/webgen/pkg/errors"
	"github.com/webgenlabs/webgen/pkg/logging"
	"github.com/webgenlabs/webgen/pkg/paths"
	"github.com/webgenlabs/webgen/pkg/style"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var (
		verbosity int
		dryRun    bool
		format    string
	)

	rootCmd := &cobra.Command{
		Use:     "webgen",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show help but exit non-zero
			_ = cmd.Help()
			return errors.New(errors.ErrUsage, "no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&format, "format", "auto", MsgFlagFormat)

	// Flag parse failures are usage errors, exit code 2
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(err, errors.ErrUsage, "invalid flags")
	})

	// Disable automatic help command (the topic system installs its own)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "site",
		Title: "SITE COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "versions",
		Title: "VERSION COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	// Add all commands
	rootCmd.AddCommand(newBootstrapCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVGenerateCmd())
	rootCmd.AddCommand(newVCurrentCmd())
	rootCmd.AddCommand(newVInfoCmd())
	rootCmd.AddCommand(newVGCCmd())
	rootCmd.AddCommand(newDeployCmd())
	rootCmd.AddCommand(newUndeployCmd())
	rootCmd.AddCommand(newDocsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Topic-based help over the embedded guides
	err := topics.InitializeWithOptions(rootCmd, docsFS, "docs", topics.Options{
		Extensions: []string{".txt", ".md"},
		Renderer:   topics.NewGlamourRenderer(),
	})
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// usageArgs turns positional-argument validation failures into usage
// errors so main can map them to exit code 2.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return errors.Wrap(err, errors.ErrUsage, "invalid arguments")
		}
		return nil
	}
}

// initPaths initializes the paths instance and shows a warning if using fallback
func initPaths() (paths.Paths, error) {
	p, err := paths.New("")
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	if p.UsedFallback() {
		fmt.Fprintf(os.Stderr, MsgFallbackWarning+"\n", p.SiteRoot())
	}

	return p, nil
}

// loadSite resolves the site root and its effective configuration
func loadSite() (paths.Paths, *config.Config, error) {
	p, err := initPaths()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(p.SiteRoot())
	if err != nil {
		return nil, nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return p, cfg, nil
}

// outputFormat resolves the persistent --format flag against stdout
func outputFormat(cmd *cobra.Command) (style.Format, error) {
	name, _ := cmd.Root().PersistentFlags().GetString("format")
	format, err := style.ParseFormat(name)
	if err != nil {
		return style.FormatAuto, errors.Wrap(err, errors.ErrUsage, "invalid --format")
	}
	return format.Resolve(os.Stdout), nil
}

// emit prints a command result: JSON when requested, rendered text otherwise
func emit(format style.Format, result interface{}, rendered string) error {
	if format == style.FormatJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "encoding result")
		}
		fmt.Println(string(data))
		return nil
	}
	fmt.Println(rendered)
	return nil
}
