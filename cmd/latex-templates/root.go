package latextemplates

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/arthur-debert/latex-templates/internal/version"
	"github.com/arthur-debert/latex-templates/pkg/build"
	"github.com/arthur-debert/latex-templates/pkg/cobrax/topics"
	"github.com/arthur-debert/latex-templates/pkg/compiler"
	"github.com/arthur-debert/latex-templates/pkg/config"
	"github.com/arthur-debert/latex-templates/pkg/filesystem"
	"github.com/arthur-debert/latex-templates/pkg/logging"
	"github.com/arthur-debert/latex-templates/pkg/paths"
	"github.com/arthur-debert/latex-templates/pkg/project"
	"github.com/arthur-debert/latex-templates/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// app holds the global flags and the state derived from them before a
// subcommand runs.
type app struct {
	verbosity    int
	searchPath   string
	settingsFile string
	format       string

	settings *config.Settings
	search   paths.SearchPaths
	finder   *project.Finder
	renderer ui.Renderer
	fs       afero.Fs
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	a := &app{fs: filesystem.NewOS()}

	rootCmd := &cobra.Command{
		Use:     "latex-templates",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show help and report incorrect usage
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&a.searchPath, "path", "p", "", MsgFlagPath)
	rootCmd.PersistentFlags().StringVar(&a.settingsFile, "settings", "", MsgFlagSettings)
	rootCmd.PersistentFlags().StringVar(&a.format, "format", "auto", MsgFlagFormat)

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "term", "text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newInfoCmd(a))
	rootCmd.AddCommand(newGenconfCmd(a))
	rootCmd.AddCommand(newGenerateCmd(a))
	rootCmd.AddCommand(newBuildCmd(a))
	rootCmd.AddCommand(newSettingsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	initTopics(rootCmd)

	return rootCmd
}

// initTopics serves the embedded documents through "help <topic>"
func initTopics(rootCmd *cobra.Command) {
	var renderer topics.Renderer = &topics.PlainRenderer{}
	if stdoutIsTerminal() {
		renderer = topics.NewGlamourRenderer()
	}

	sub, err := fs.Sub(topicFiles, "topics")
	if err == nil {
		err = topics.Initialize(rootCmd, sub, topics.Options{
			Extensions: []string{".md"},
			Renderer:   renderer,
			GroupID:    "misc",
		})
	}
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
}

// Execute runs the command line and renders any error to stderr. It returns
// the process exit code.
func Execute(ctx context.Context, args []string) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)

	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}

	renderError(cmd, err)
	return 1
}

// renderError writes err in the requested output format, falling back to
// automatic detection when the format flag itself is invalid.
func renderError(cmd *cobra.Command, err error) {
	format := ui.FormatAuto
	if value, flagErr := cmd.Flags().GetString("format"); flagErr == nil {
		if parsed, parseErr := ui.ParseFormat(value); parseErr == nil {
			format = parsed
		}
	}

	renderer, rendererErr := ui.NewRenderer(format, cmd.ErrOrStderr())
	if rendererErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	_ = renderer.RenderError(err)
}

// setup loads the settings and prepares the finder and the renderer. It
// runs before every subcommand and before shell completion.
func (a *app) setup(cmd *cobra.Command) error {
	format, err := ui.ParseFormat(a.format)
	if err != nil {
		return err
	}

	overrides := map[string]interface{}{}
	if a.searchPath != "" {
		overrides["search.path"] = a.searchPath
	}

	settings, err := config.Load(config.LoadOptions{
		File:      a.settingsFile,
		Overrides: overrides,
	})
	if err != nil {
		return err
	}

	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	a.settings = settings
	a.search = settings.SearchPaths()
	a.finder = project.NewFinder(project.WithFS(a.fs))
	a.renderer = renderer

	log.Debug().
		Strs("templates", a.search.Templates).
		Strs("libraries", a.search.Libraries).
		Msg("Resolved search path")
	return nil
}

// newCompiler returns the configured compiler, streaming its output to stderr
// in verbose mode.
func (a *app) newCompiler(cmd *cobra.Command) *compiler.Command {
	var opts []compiler.Option
	if a.verbosity > 0 {
		opts = append(opts, compiler.WithOutput(cmd.ErrOrStderr(), cmd.ErrOrStderr()))
	}
	return a.settings.NewCompiler(opts...)
}

// newBuilder returns a Builder whose log lines carry the template name.
func (a *app) newBuilder(cmd *cobra.Command, name string) *build.Builder {
	logger := logging.GetLogger("build").With().Str("template", name).Logger()
	return build.New(a.newCompiler(cmd), build.WithLogger(logger))
}

// userConfig reads the configuration passed to generate and build. An
// explicit path must exist; the configured default is optional. The
// directory of the file is injected as cwd either way.
func (a *app) userConfig(explicit string) (map[string]any, error) {
	path := explicit
	if path == "" {
		path = a.settings.Project.ConfigFile
		if !filesystem.IsFile(a.fs, path) {
			log.Info().Str("path", path).Msg("No configuration file, using template defaults")
			return project.WithWorkingDir(map[string]any{}, path)
		}
	}

	cfg, err := project.LoadUserConfig(a.fs, path)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", path).Msg("Loaded configuration file")
	return project.WithWorkingDir(cfg, path)
}
