package latextemplates

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Create LaTeX projects from templates"
	MsgListShort       = "List available templates"
	MsgListLong        = "List prints the name of every template found on the search path, in lookup order."
	MsgInfoShort       = "Show a template's configuration, files and README"
	MsgGenconfShort    = "Write a template's default configuration to a file"
	MsgGenerateShort   = "Generate a project from a template"
	MsgBuildShort      = "Generate and compile a template"
	MsgSettingsShort   = "Print a settings file with the default values commented out"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgVersionFormat = "latex-templates version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrNoCommand = "no command specified"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagPath     = "Template search bases, colon separated (overrides LATEX_TEMPLATE_PATH)"
	MsgFlagSettings = "Settings file (default $XDG_CONFIG_HOME/latex-templates/settings.yaml)"
	MsgFlagFormat   = "Output format: auto, term, text or json"
	MsgFlagConfig   = "Configuration file (default from settings, ./config.yaml)"
	MsgFlagBuild    = "Compile the generated project in OUT_DIR"
	MsgFlagOutput   = "Output file or directory"
	MsgFlagForce    = "Replace an existing output file"
	MsgFlagGenconf  = "File to write (default from settings, ./config.yaml)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/generate-long.txt
	msgGenerateLongRaw string
	MsgGenerateLong    = strings.TrimSpace(msgGenerateLongRaw)

	//go:embed msgs/generate-example.txt
	msgGenerateExampleRaw string
	MsgGenerateExample    = strings.TrimRight(msgGenerateExampleRaw, "\n")

	//go:embed msgs/build-long.txt
	msgBuildLongRaw string
	MsgBuildLong    = strings.TrimSpace(msgBuildLongRaw)

	//go:embed msgs/build-example.txt
	msgBuildExampleRaw string
	MsgBuildExample    = strings.TrimRight(msgBuildExampleRaw, "\n")

	//go:embed msgs/genconf-long.txt
	msgGenconfLongRaw string
	MsgGenconfLong    = strings.TrimSpace(msgGenconfLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
