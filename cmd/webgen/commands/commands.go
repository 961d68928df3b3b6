package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/webgenlabs/webgen/internal/version"
	"github.com/webgenlabs/webgen/pkg/bootstrap"
	"github.com/webgenlabs/webgen/pkg/cobrax/topics"
	"github.com/webgenlabs/webgen/pkg/deploy"
	"github.com/webgenlabs/webgen/pkg/errors"
	"github.com/webgenlabs/webgen/pkg/filesystem"
	"github.com/webgenlabs/webgen/pkg/generator"
	"github.com/webgenlabs/webgen/pkg/paths"
	"github.com/webgenlabs/webgen/pkg/server"
	"github.com/webgenlabs/webgen/pkg/site"
	"github.com/webgenlabs/webgen/pkg/style"
	"github.com/webgenlabs/webgen/pkg/versions"
)

func newBootstrapCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "bootstrap",
		Short:   MsgBootstrapShort,
		Long:    MsgBootstrapLong,
		Example: MsgBootstrapExample,
		GroupID: "site",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			p, cfg, err := loadSite()
			if err != nil {
				return err
			}
			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

			log.Info().
				Str("site_root", p.SiteRoot()).
				Bool("dry_run", dryRun).
				Msg("Bootstrapping site dependencies")

			result, runErr := bootstrap.Run(cmd.Context(), bootstrap.RunOptions{
				SiteRoot:     p.SiteRoot(),
				Dependencies: cfg.Dependencies(),
				DryRun:       dryRun,
			})
			// Render even on failure so the per-dependency states show
			if result != nil {
				renderer := style.NewRenderer(format)
				if err := emit(format, result, renderer.RenderBootstrap(result)); err != nil {
					return err
				}
			}
			return runErr
		},
	}
}

func newInitCmd() *cobra.Command {
	var (
		title     string
		deployDir string
		withBoot  bool
	)

	cmd := &cobra.Command{
		Use:     "init <dir>",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		GroupID: "site",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			result, runErr := site.Init(cmd.Context(), site.InitOptions{
				SitePath:  paths.ExpandHome(args[0]),
				Title:     title,
				DeployDir: deployDir,
				Bootstrap: withBoot,
			})
			// A failed bootstrap still leaves a scaffolded site worth showing
			if result != nil {
				renderer := style.NewRenderer(format)
				if err := emit(format, result, renderer.RenderInit(result)); err != nil {
					return err
				}
			}
			return runErr
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", MsgFlagTitle)
	cmd.Flags().StringVarP(&deployDir, "deploy-dir", "d", "", MsgFlagDeployDir)
	cmd.Flags().BoolVar(&withBoot, "bootstrap", false, MsgFlagBootstrap)

	return cmd
}

func newGenerateCmd() *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:     "generate <input> <output>",
		Short:   MsgGenerateShort,
		Long:    MsgGenerateLong,
		Example: MsgGenerateExample,
		GroupID: "site",
		Args:    usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			p, cfg, err := loadSite()
			if err != nil {
				return err
			}

			log.Info().
				Str("input", args[0]).
				Str("output", args[1]).
				Msg("Generating site")

			result, err := generator.Generate(generator.Options{
				InputDir:     args[0],
				OutputDir:    args[1],
				SiteRoot:     p.SiteRoot(),
				Config:       cfg,
				ManifestPath: manifestPath,
			})
			if err != nil {
				return err
			}

			renderer := style.NewRenderer(format)
			return emit(format, result, renderer.RenderGenerate(result))
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", MsgFlagManifest)

	return cmd
}

func newServeCmd() *cobra.Command {
	var (
		port  int
		watch bool
	)

	cmd := &cobra.Command{
		Use:     "serve <input>",
		Short:   MsgServeShort,
		Long:    MsgServeLong,
		GroupID: "site",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, cfg, err := loadSite()
			if err != nil {
				return err
			}

			srv, err := server.New(server.Options{
				SiteRoot: p.SiteRoot(),
				InputDir: args[0],
				Config:   cfg,
				Port:     port,
				Watch:    watch,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Printf(MsgServing, port)
			return srv.Serve(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", server.DefaultPort, MsgFlagPort)
	cmd.Flags().BoolVar(&watch, "watch", true, MsgFlagWatch)

	return cmd
}

func newVGenerateCmd() *cobra.Command {
	var deployDir string

	cmd := &cobra.Command{
		Use:     "vgenerate <input> <versions-dir>",
		Short:   MsgVGenerateShort,
		Long:    MsgVGenerateLong,
		Example: MsgVGenerateExample,
		GroupID: "versions",
		Args:    usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			p, cfg, err := loadSite()
			if err != nil {
				return err
			}
			target := deployDir
			if target == "" {
				target = cfg.Site.DeployDir
			}

			result, err := versions.Generate(versions.GenerateOptions{
				InputDir:    args[0],
				VersionsDir: args[1],
				SiteRoot:    p.SiteRoot(),
				Config:      cfg,
				DeployDir:   target,
			})
			if err != nil {
				return err
			}

			if format == style.FormatJSON {
				return emit(format, result, "")
			}
			if result.BecameCurrent {
				fmt.Printf(MsgVersionMadeCurrent, result.Version.Name)
			} else {
				fmt.Printf(MsgVersionGenerated, result.Version.Name)
			}
			if result.Deploy != nil {
				renderer := style.NewRenderer(format)
				fmt.Println(renderer.RenderDeploy(result.Deploy))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&deployDir, "deploy-dir", "d", "", MsgFlagVDeploy)

	return cmd
}

func newVCurrentCmd() *cobra.Command {
	var deployDir string

	cmd := &cobra.Command{
		Use:     "vcurrent <versions-dir> <version>",
		Short:   MsgVCurrentShort,
		Long:    MsgVCurrentLong,
		Example: MsgVCurrentExample,
		GroupID: "versions",
		Args:    usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			index, err := versions.ParseRef(args[1])
			if err != nil {
				return errors.New(errors.ErrUsage, MsgErrBadVersion)
			}

			result, err := versions.ChangeCurrent(versions.ChangeCurrentOptions{
				VersionsDir: args[0],
				Index:       index,
			})
			if err != nil {
				return err
			}

			target := deployDir
			if target == "" {
				_, cfg, err := loadSite()
				if err != nil {
					return err
				}
				target = cfg.Site.DeployDir
			}
			if target != "" {
				deployResult, err := versions.Redeploy(nil, args[0], result.Current, target)
				if err != nil {
					return err
				}
				result.Deploy = deployResult
			}

			if format == style.FormatJSON {
				return emit(format, result, "")
			}
			fmt.Printf(MsgSetCurrent, result.Current)
			if result.Deploy != nil {
				renderer := style.NewRenderer(format)
				fmt.Println(renderer.RenderDeploy(result.Deploy))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&deployDir, "deploy-dir", "d", "", MsgFlagVDeploy)

	return cmd
}

func newVInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "vinfo <versions-dir>",
		Short:   MsgVInfoShort,
		Long:    MsgVInfoLong,
		GroupID: "versions",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			result, err := versions.List(filesystem.NewOS(), args[0])
			if err != nil {
				return err
			}

			renderer := style.NewRenderer(format)
			return emit(format, result, renderer.RenderVersionList(result))
		},
	}
}

func newVGCCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "vgc <versions-dir>",
		Short:   MsgVGCShort,
		Long:    MsgVGCLong,
		GroupID: "versions",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

			result, err := versions.GC(versions.GCOptions{
				VersionsDir: args[0],
				DryRun:      dryRun,
			})
			if err != nil {
				return err
			}

			renderer := style.NewRenderer(format)
			return emit(format, result, renderer.RenderGC(result))
		},
	}
}

func newDeployCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "deploy <output-dir> <deploy-dir> <manifest>",
		Short:   MsgDeployShort,
		Long:    MsgDeployLong,
		GroupID: "versions",
		Args:    usageArgs(cobra.ExactArgs(3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

			result, err := deploy.Deploy(deploy.Options{
				OutputDir:    args[0],
				DeployDir:    args[1],
				ManifestPath: args[2],
				DryRun:       dryRun,
			})
			if err != nil {
				return err
			}

			renderer := style.NewRenderer(format)
			return emit(format, result, renderer.RenderDeploy(result))
		},
	}
}

func newUndeployCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "undeploy <output-dir> <deploy-dir> <manifest>",
		Short:   MsgUndeployShort,
		Long:    MsgUndeployLong,
		GroupID: "versions",
		Args:    usageArgs(cobra.ExactArgs(3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

			result, err := deploy.Undeploy(deploy.Options{
				OutputDir:    args[0],
				DeployDir:    args[1],
				ManifestPath: args[2],
				DryRun:       dryRun,
			})
			if err != nil {
				return err
			}

			renderer := style.NewRenderer(format)
			return emit(format, result, renderer.RenderUndeploy(result))
		},
	}
}

func newDocsCmd() *cobra.Command {
	manager := topics.NewWithOptions(docsFS, "docs", topics.Options{
		Extensions: []string{".txt", ".md"},
		Renderer:   topics.NewGlamourRenderer(),
	})
	scanErr := manager.Scan()

	return &cobra.Command{
		Use:     "docs [topic]",
		Short:   MsgDocsShort,
		Long:    MsgDocsLong,
		GroupID: "misc",
		Args:    usageArgs(cobra.MaximumNArgs(1)),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return manager.ListTopics(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if scanErr != nil {
				return errors.Wrap(scanErr, errors.ErrInternal, "loading documentation")
			}
			if len(args) == 0 {
				fmt.Println(MsgAvailableTopics)
				for _, name := range manager.ListTopics() {
					fmt.Printf(MsgTopicItem, name)
				}
				return nil
			}

			topic, exists := manager.GetTopic(args[0])
			if !exists {
				return errors.Newf(errors.ErrUsage, MsgErrUnknownTopic, args[0])
			}
			fmt.Print(manager.Render(topic))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("webgen version %s\n", version.Version)
			fmt.Printf("  commit: %s\n", version.Commit)
			fmt.Printf("  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  usageArgs(cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs)),
		Run: func(cmd *cobra.Command, args []string) {
			switch args[0] {
			case "bash":
				if err := cmd.Root().GenBashCompletion(cmd.OutOrStdout()); err != nil {
					log.Error().Err(err).Msg("Failed to generate bash completion")
				}
			case "zsh":
				if err := cmd.Root().GenZshCompletion(cmd.OutOrStdout()); err != nil {
					log.Error().Err(err).Msg("Failed to generate zsh completion")
				}
			case "fish":
				if err := cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true); err != nil {
					log.Error().Err(err).Msg("Failed to generate fish completion")
				}
			case "powershell":
				if err := cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout()); err != nil {
					log.Error().Err(err).Msg("Failed to generate powershell completion")
				}
			}
		},
	}
}
