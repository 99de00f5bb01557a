package pluck

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Gather local, remote and GitHub files into a destination tree"
	MsgRunShort        = "Acquire every item of a manifest"
	MsgPlanShort       = "List the items a run would acquire"
	MsgInitShort       = "Write a starter manifest"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics, or the topic given as argument."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgManifestCreated = "Created %s\n"
	MsgDryRunInit      = "Dry run: would write %s\n"

	// Error messages
	MsgErrLoadManifest  = "failed to load manifest: %w"
	MsgErrBuildTree     = "failed to build destination tree: %w"
	MsgErrRender        = "failed to render output: %w"
	MsgErrJUnit         = "failed to write JUnit report: %w"
	MsgErrManifestExist = "%s already exists, use --force to overwrite it"
	MsgErrUnknownTopic  = "unknown topic %q, run 'pluck topics' to list them"
	MsgErrItemsFailed   = "%d of %d items failed"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun   = "Report what would be acquired without writing anything"
	MsgFlagNoColor  = "Disable colored output"
	MsgFlagDest     = "Destination directory, overrides settings.destination"
	MsgFlagWorkers  = "Number of items acquired concurrently"
	MsgFlagFailFast = "Stop at the first failed item and skip the rest"
	MsgFlagTimeout  = "Timeout for each download (0 disables it)"
	MsgFlagJUnit    = "Write a JUnit XML report to this file"
	MsgFlagForce    = "Overwrite an existing manifest"
	MsgFlagFormat   = "Manifest format (toml or yaml), defaults to the file extension"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/run-long.txt
	msgRunLongRaw string
	MsgRunLong    = strings.TrimSpace(msgRunLongRaw)

	//go:embed msgs/run-example.txt
	msgRunExampleRaw string
	MsgRunExample    = strings.TrimRight(msgRunExampleRaw, "\n")

	//go:embed msgs/plan-long.txt
	msgPlanLongRaw string
	MsgPlanLong    = strings.TrimSpace(msgPlanLongRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/init-example.txt
	msgInitExampleRaw string
	MsgInitExample    = strings.TrimRight(msgInitExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/no-manifest.txt
	msgNoManifestRaw string
	MsgNoManifest    = strings.TrimSpace(msgNoManifestRaw)
)
