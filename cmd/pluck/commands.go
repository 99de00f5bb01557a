package pluck

import (
	"context"
	"embed"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/arthur-debert/pluck/internal/version"
	"github.com/arthur-debert/pluck/pkg/acquire"
	"github.com/arthur-debert/pluck/pkg/cobrax/topics"
	"github.com/arthur-debert/pluck/pkg/config"
	"github.com/arthur-debert/pluck/pkg/errors"
	"github.com/arthur-debert/pluck/pkg/executor"
	"github.com/arthur-debert/pluck/pkg/filesystem"
	"github.com/arthur-debert/pluck/pkg/logging"
	"github.com/arthur-debert/pluck/pkg/manifest"
	"github.com/arthur-debert/pluck/pkg/output"
	"github.com/arthur-debert/pluck/pkg/report"
	"github.com/arthur-debert/pluck/pkg/section"
	"github.com/arthur-debert/pluck/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicsFS embed.FS

// globalFlags holds the persistent flags shared by every command
type globalFlags struct {
	verbosity int
	dryRun    bool
	noColor   bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "pluck",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.String(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show help but report incorrect usage
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&g.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, MsgFlagNoColor)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	tm := &topicsHolder{}

	rootCmd.AddCommand(newRunCmd(g))
	rootCmd.AddCommand(newPlanCmd(g))
	rootCmd.AddCommand(newInitCmd(g))
	rootCmd.AddCommand(newTopicsCmd(tm))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Topic-based help, embedded in the binary
	var renderer topics.Renderer = topics.NewGlamourRenderer()
	if !output.ColorEnabled(os.Stdout) {
		renderer = topics.NewPlainMarkdownRenderer()
	}
	manager, err := topics.InitializeWithOptions(rootCmd, topicsFS, topics.Options{
		Root:     "topics",
		Renderer: renderer,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
	tm.manager = manager
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}

// topicsHolder lets the topics command reach the manager created after it
type topicsHolder struct {
	manager *topics.TopicManager
}

// loadConfig reads the manifest named by args, or the one discovered in the
// working directory
func loadConfig(args []string) (*config.Config, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot determine working directory")
		}
		path = config.Discover(cwd)
		if path == "" {
			return nil, errors.Newf(errors.ErrNotFound, MsgNoManifest, cwd)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadManifest, err)
	}
	return cfg, nil
}

// buildTree loads the configuration and declares its section tree
func buildTree(args []string, dest string) (*config.Config, *section.Section, error) {
	cfg, err := loadConfig(args)
	if err != nil {
		return nil, nil, err
	}
	if dest != "" {
		// flag paths are relative to the working directory, not the manifest
		abs, err := filepath.Abs(dest)
		if err != nil {
			return nil, nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid destination").
				WithDetail("destination", dest)
		}
		cfg.Settings.Destination = abs
	}

	root, err := manifest.Build(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf(MsgErrBuildTree, err)
	}
	return cfg, root, nil
}

func newRenderer(w io.Writer, g *globalFlags) (*output.Renderer, error) {
	return output.NewRenderer(w, g.noColor || !output.ColorEnabled(w))
}

func newRunCmd(g *globalFlags) *cobra.Command {
	var (
		dest  string
		junit string
	)

	cmd := &cobra.Command{
		Use:               "run [manifest]",
		Short:             MsgRunShort,
		Long:              MsgRunLong,
		Example:           MsgRunExample,
		GroupID:           "core",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: manifestCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, root, err := buildTree(args, dest)
			if err != nil {
				return err
			}
			logger := logging.WithFields(map[string]interface{}{
				"component": "cmd.run",
				"manifest":  cfg.Path,
			})

			settings := cfg.Settings
			flags := cmd.Flags()
			if flags.Changed("workers") {
				settings.Workers, _ = flags.GetInt("workers")
			}
			if flags.Changed("fail-fast") {
				settings.FailFast, _ = flags.GetBool("fail-fast")
			}
			if flags.Changed("timeout") {
				settings.Timeout, _ = flags.GetDuration("timeout")
			}
			dryRun := g.dryRun || settings.DryRun

			logger.Info().
				Str("destination", root.Dir()).
				Int("workers", settings.Workers).
				Bool("failFast", settings.FailFast).
				Bool("dryRun", dryRun).
				Msg("Starting run")

			exec := executor.New(executor.Options{
				FS:       filesystem.NewOS(),
				Fetcher:  acquire.NewHTTPFetcher(&http.Client{Timeout: settings.Timeout}),
				Workers:  settings.Workers,
				FailFast: settings.FailFast,
				DryRun:   dryRun,
			})

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rep := exec.Execute(ctx, root)

			renderer, err := newRenderer(cmd.OutOrStdout(), g)
			if err != nil {
				return fmt.Errorf(MsgErrRender, err)
			}
			if err := renderer.RenderReport(rep); err != nil {
				return fmt.Errorf(MsgErrRender, err)
			}

			if junit != "" {
				if err := report.WriteJUnitFile(junit, rep); err != nil {
					return fmt.Errorf(MsgErrJUnit, err)
				}
				logger.Debug().Str("path", junit).Msg("JUnit report written")
			}

			if rep.HasFailures() {
				return &RunFailedError{Report: rep}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dest, "dest", "d", "", MsgFlagDest)
	cmd.Flags().IntP("workers", "w", 1, MsgFlagWorkers)
	cmd.Flags().Bool("fail-fast", false, MsgFlagFailFast)
	cmd.Flags().Duration("timeout", 0, MsgFlagTimeout)
	cmd.Flags().StringVar(&junit, "junit", "", MsgFlagJUnit)

	return cmd
}

func newPlanCmd(g *globalFlags) *cobra.Command {
	var dest string

	cmd := &cobra.Command{
		Use:               "plan [manifest]",
		Short:             MsgPlanShort,
		Long:              MsgPlanLong,
		GroupID:           "core",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: manifestCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, root, err := buildTree(args, dest)
			if err != nil {
				return err
			}

			renderer, err := newRenderer(cmd.OutOrStdout(), g)
			if err != nil {
				return fmt.Errorf(MsgErrRender, err)
			}
			return renderer.RenderPlan(output.PlanView{
				Root:      root.Dir(),
				Items:     root.Flatten(),
				Resolvers: root.Resolvers().Names(),
			})
		},
	}

	cmd.Flags().StringVarP(&dest, "dest", "d", "", MsgFlagDest)
	return cmd
}

func newInitCmd(g *globalFlags) *cobra.Command {
	var (
		force  bool
		format string
	)

	cmd := &cobra.Command{
		Use:     "init [path]",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ManifestNames[0]
			if len(args) > 0 {
				path = args[0]
			}
			if format == "" {
				format = formatFor(path)
			}

			if g.dryRun {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgDryRunInit, path)
				return manifest.WriteSample(cmd.OutOrStdout(), format)
			}

			fs := filesystem.NewOS()
			if filesystem.Exists(fs, path) && !force {
				return errors.Newf(errors.ErrAlreadyExists, MsgErrManifestExist, path).
					WithDetail("path", path)
			}
			if err := filesystem.EnsureDir(fs, filepath.Dir(path)); err != nil {
				return err
			}

			f, err := fs.Create(path)
			if err != nil {
				return errors.Wrap(err, errors.ErrFileWrite, "cannot create manifest").
					WithDetail("path", path)
			}
			if err := manifest.WriteSample(f, format); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return errors.Wrap(err, errors.ErrFileWrite, "cannot write manifest").
					WithDetail("path", path)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgManifestCreated, path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	cmd.Flags().StringVar(&format, "format", "", MsgFlagFormat)
	return cmd
}

// formatFor picks the sample format from a file extension
func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return manifest.FormatYAML
	}
	return manifest.FormatTOML
}

func newTopicsCmd(tm *topicsHolder) *cobra.Command {
	return &cobra.Command{
		Use:     "topics [name]",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if tm.manager == nil || len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return tm.manager.ListTopics(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if tm.manager == nil {
				return errors.New(errors.ErrNotFound, "help topics are not available")
			}
			if len(args) == 0 {
				tm.manager.WriteIndex(cmd.OutOrStdout(), cmd.Root().Name())
				return nil
			}

			topic, ok := tm.manager.GetTopic(args[0])
			if !ok {
				return errors.Newf(errors.ErrNotFound, MsgErrUnknownTopic, args[0])
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), tm.manager.Render(topic))
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "pluck version %s\n", version.Version)
			_, _ = fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			_, _ = fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// manifestCompletion offers manifest files for the first argument
func manifestCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"toml", "yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// RunFailedError is returned by "run" when at least one item failed
type RunFailedError struct {
	Report *types.Report
}

func (e *RunFailedError) Error() string {
	return fmt.Sprintf(MsgErrItemsFailed, e.Report.Failed(), len(e.Report.Results))
}

// Unwrap exposes the individual item errors
func (e *RunFailedError) Unwrap() error {
	return e.Report.Err()
}

// ExitCode maps an error returned by Execute to a process exit status:
// 2 for an invalid manifest, 1 for anything else
func ExitCode(err error) int {
	var failed *RunFailedError
	switch {
	case err == nil:
		return 0
	case stderrors.As(err, &failed):
		return 1
	case errors.IsConfigurationError(err):
		return 2
	}
	return 1
}
