package latextemplates

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/arthur-debert/latex-templates/internal/version"
	"github.com/arthur-debert/latex-templates/pkg/build"
	"github.com/arthur-debert/latex-templates/pkg/config"
	"github.com/arthur-debert/latex-templates/pkg/project"
	"github.com/arthur-debert/latex-templates/pkg/ui/display"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// templateNamesCompletion completes the first argument with template names
// and defers to rest for any later argument.
func (a *app) templateNamesCompletion(rest cobra.ShellCompDirective) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, rest
		}
		if err := a.setup(cmd); err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		var names []string
		for name := range a.finder.FindAll(a.search.Templates) {
			if strings.HasPrefix(name, toComplete) {
				names = append(names, name)
			}
		}
		slices.Sort(names)
		return slices.Compact(names), cobra.ShellCompDirectiveNoFileComp
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := slices.Collect(a.finder.FindAll(a.search.Templates))
			log.Info().Int("count", len(names)).Msg("Listed templates")

			return a.renderer.RenderResult(&display.ListResult{
				Templates:  names,
				SearchPath: a.search.Templates,
			})
		},
	}
}

func newInfoCmd(a *app) *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:               "info TEMPLATE",
		Short:             MsgInfoShort,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.templateNamesCompletion(cobra.ShellCompDirectiveNoFileComp),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, err := a.finder.Find(args[0], a.search)
			if err != nil {
				return err
			}

			defaults, err := tmpl.LoadDefaultConfig()
			if err != nil {
				return err
			}

			// Without --config the manifest is shown for the defaults alone.
			cfg, err := project.WithWorkingDir(map[string]any{}, a.settings.Project.ConfigFile)
			if configFile != "" {
				cfg, err = a.userConfig(configFile)
			}
			if err != nil {
				return err
			}

			manifest, err := tmpl.GeneratedFiles(cfg)
			if err != nil {
				return err
			}

			readme, _ := tmpl.Readme()
			return a.renderer.RenderResult(&display.InfoResult{
				Name:     tmpl.Name,
				Root:     tmpl.Root,
				LibPath:  tmpl.LibPath,
				Defaults: defaults,
				Manifest: manifest,
				Readme:   readme,
			})
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", MsgFlagConfig)
	return cmd
}

func newGenconfCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:               "genconf TEMPLATE",
		Short:             MsgGenconfShort,
		Long:              MsgGenconfLong,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.templateNamesCompletion(cobra.ShellCompDirectiveNoFileComp),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, err := a.finder.Find(args[0], a.search)
			if err != nil {
				return err
			}

			if output == "" {
				output = a.settings.Project.ConfigFile
			}
			written, err := tmpl.WriteDefaultConfig(output)
			if err != nil {
				return err
			}

			return a.renderer.RenderResult(&display.PathResult{
				Action:   display.ActionWrote,
				Template: tmpl.Name,
				Path:     filepath.Clean(written),
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagGenconf)
	return cmd
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		configFile string
		compile    bool
	)

	cmd := &cobra.Command{
		Use:               "generate TEMPLATE OUT_DIR",
		Short:             MsgGenerateShort,
		Long:              MsgGenerateLong,
		Example:           MsgGenerateExample,
		GroupID:           "core",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: a.templateNamesCompletion(cobra.ShellCompDirectiveFilterDirs),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, err := a.finder.Find(args[0], a.search)
			if err != nil {
				return err
			}

			cfg, err := a.userConfig(configFile)
			if err != nil {
				return err
			}

			outDir := args[1]
			if compile {
				builder := a.newBuilder(cmd, tmpl.Name)
				artifact, err := builder.Build(cmd.Context(), tmpl, cfg, build.Options{BuildDir: outDir})
				if err != nil {
					return err
				}
				return a.renderer.RenderResult(&display.PathResult{
					Action:   display.ActionBuilt,
					Template: tmpl.Name,
					Path:     artifact,
				})
			}

			entries, err := tmpl.Generate(cfg, outDir)
			if err != nil {
				return err
			}

			files := make([]string, 0, len(entries))
			for _, entry := range entries {
				files = append(files, entry.Tgt)
			}
			return a.renderer.RenderResult(&display.PathResult{
				Action:   display.ActionGenerated,
				Template: tmpl.Name,
				Path:     outDir,
				Files:    files,
			})
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", MsgFlagConfig)
	cmd.Flags().BoolVarP(&compile, "build", "b", false, MsgFlagBuild)
	return cmd
}

func newBuildCmd(a *app) *cobra.Command {
	var (
		configFile string
		output     string
		force      bool
	)

	cmd := &cobra.Command{
		Use:               "build TEMPLATE",
		Short:             MsgBuildShort,
		Long:              MsgBuildLong,
		Example:           MsgBuildExample,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.templateNamesCompletion(cobra.ShellCompDirectiveNoFileComp),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, err := a.finder.Find(args[0], a.search)
			if err != nil {
				return err
			}

			cfg, err := a.userConfig(configFile)
			if err != nil {
				return err
			}

			if output == "" {
				output = "."
			}
			builder := a.newBuilder(cmd, tmpl.Name)
			artifact, err := builder.Build(cmd.Context(), tmpl, cfg, build.Options{
				OutputPath: output,
				Overwrite:  force,
			})
			if err != nil {
				return err
			}

			return a.renderer.RenderResult(&display.PathResult{
				Action:   display.ActionBuilt,
				Template: tmpl.Name,
				Path:     filepath.Clean(artifact),
			})
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", MsgFlagConfig)
	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)
	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	return cmd
}

func newSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "settings",
		Short:   MsgSettingsShort,
		Long:    "Settings prints a settings file for " + config.DefaultSettingsFile() + " with every value commented out.",
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.GenerateSettingsContent())
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
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
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
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}
}
