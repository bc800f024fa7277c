// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/treebrowse/internal/config"
	"github.com/temirov/treebrowse/internal/services/clipboard"
	"github.com/temirov/treebrowse/internal/session"
	"github.com/temirov/treebrowse/internal/utils"
)

const (
	exclusionFlagName     = "e"
	noGitignoreFlagName   = "no-gitignore"
	noIgnoreFlagName      = "no-ignore"
	includeGitFlagName    = "git"
	hiddenFlagName        = "hidden"
	maxLinesFlagName      = "max-lines"
	clipboardFlagName     = "clipboard"
	formatFlagName        = "format"
	configFlagName        = "config"
	globalFlagName        = "global"
	forceFlagName         = "force"
	versionTemplate       = "treebrowse version: {{.Version}}\n"
	defaultPath           = "."
	rootUse               = "treebrowse [path]"
	rootShortDescription  = "browse a directory tree and jump to entries by key"
	rootLongDescription   = `treebrowse lists a directory as a tree sized to the terminal.
Every entry gets a short key: type it to jump to the entry, or move with the
arrow keys. Enter prints the selected path and exits; Esc exits without output.`
	rootUsageExample = `  # Browse the current directory
  treebrowse

  # Browse ./src including hidden files and copy the chosen path
  treebrowse --hidden --clipboard ./src

  # cd into a chosen directory
  cd "$(treebrowse ~/projects)"`
	printUse              = "print [path]"
	printShortDescription = "print the keyed tree without starting the browser"
	printLongDescription  = `Render the same keyed tree the browser shows and print it.
Use --format to select raw or json output.`
	printUsageExample = `  # Print at most 40 entries as JSON
  treebrowse print --max-lines 40 --format json .`
	initUse              = "init"
	initShortDescription = "write the default configuration file"
	initLongDescription  = `Write the default configuration to ./.treebrowse.yaml, or with --global to
~/.treebrowse/config.yaml. Existing files are kept unless --force is given.`

	exclusionFlagDescription        = "exclude path pattern"
	disableGitignoreFlagDescription = "do not use .gitignore"
	disableIgnoreFlagDescription    = "do not use .ignore"
	includeGitFlagDescription       = "include git directory"
	hiddenFlagDescription           = "include hidden entries"
	maxLinesFlagDescription         = "maximum number of listed entries (default: terminal rows minus status rows)"
	clipboardFlagDescription        = "copy the opened path to the clipboard"
	formatFlagDescription           = "output format (raw or json)"
	configFlagDescription           = "path to a configuration file replacing ./.treebrowse.yaml"
	globalFlagDescription           = "write the global configuration instead of the local one"
	forceFlagDescription            = "overwrite an existing configuration file"

	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	// errorPathMissingFormat reports a missing path.
	errorPathMissingFormat = "path '%s' does not exist"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorNotDirectoryFormat reports a root that is not a directory.
	errorNotDirectoryFormat = "path '%s' is not a directory"
	// errorLoadConfigurationFormat wraps configuration loading failures.
	errorLoadConfigurationFormat = "load configuration: %w"
	// errorInvalidFormat reports an unsupported output format.
	errorInvalidFormat = "invalid format value '%s'"
	// errorBuildTreeFormat wraps tree builder failures.
	errorBuildTreeFormat = "building tree for %s: %w"
	// errorNotTerminal reports that the browser cannot start.
	errorNotTerminal = "treebrowse needs an interactive terminal; use 'treebrowse print' instead"
	// errorTerminalSizeFormat wraps terminal size lookup failures.
	errorTerminalSizeFormat = "read terminal size: %w"
	// initWrittenFormat reports the written configuration path.
	initWrittenFormat = "configuration written to %s\n"
	// warningClipboardMessage logs a failed clipboard copy.
	warningClipboardMessage = "failed to copy path to clipboard"
)

// SessionRunner starts an interactive session and reports how it ended.
type SessionRunner func(ctx context.Context, model session.Model, options ...tea.ProgramOption) (session.Result, error)

// Dependencies are the collaborators the commands use. Zero values are
// replaced by the real implementations.
type Dependencies struct {
	Logger           *zap.Logger
	Clipboard        clipboard.Copier
	Terminal         Terminal
	RunSession       SessionRunner
	WorkingDirectory string
	HomeDirectory    string
}

func (dependencies Dependencies) withDefaults() Dependencies {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.Clipboard == nil {
		dependencies.Clipboard = clipboard.NewService()
	}
	if dependencies.Terminal == nil {
		dependencies.Terminal = NewFileTerminal(os.Stdin, os.Stderr)
	}
	if dependencies.RunSession == nil {
		dependencies.RunSession = session.Run
	}
	return dependencies
}

// Execute runs the treebrowse application.
func Execute(ctx context.Context, logger *zap.Logger) error {
	rootCommand := NewRootCommand(Dependencies{Logger: logger})
	rootCommand.SetArgs(joinSwitchValues(rootCommand, os.Args[1:]))
	return rootCommand.ExecuteContext(ctx)
}

// NewRootCommand builds the root Cobra command with its subcommands.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	dependencies = dependencies.withDefaults()
	flags := &commandFlags{}

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.MaximumNArgs(1),
		Version:       utils.GetApplicationVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return runBrowse(command, arguments, flags, dependencies)
		},
	}
	rootCommand.SetVersionTemplate(versionTemplate)
	addSharedFlags(rootCommand, flags)
	addSwitchFlag(rootCommand.Flags(), &flags.clipboard, clipboardFlagName, clipboardFlagDescription)

	rootCommand.AddCommand(
		createPrintCommand(flags, dependencies),
		createInitCommand(dependencies),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// commandFlags stores the values of flags shared by browse and print.
type commandFlags struct {
	configPath        string
	exclusionPatterns []string
	disableGitignore  bool
	disableIgnoreFile bool
	includeGit        bool
	includeHidden     bool
	maxLines          int
	clipboard         bool
	format            string
}

// addSharedFlags registers persistent flags inherited by subcommands.
func addSharedFlags(command *cobra.Command, flags *commandFlags) {
	flagSet := command.PersistentFlags()
	flagSet.StringVar(&flags.configPath, configFlagName, "", configFlagDescription)
	flagSet.StringArrayVarP(&flags.exclusionPatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	addSwitchFlag(flagSet, &flags.disableGitignore, noGitignoreFlagName, disableGitignoreFlagDescription)
	addSwitchFlag(flagSet, &flags.disableIgnoreFile, noIgnoreFlagName, disableIgnoreFlagDescription)
	addSwitchFlag(flagSet, &flags.includeGit, includeGitFlagName, includeGitFlagDescription)
	addSwitchFlag(flagSet, &flags.includeHidden, hiddenFlagName, hiddenFlagDescription)
	flagSet.IntVar(&flags.maxLines, maxLinesFlagName, 0, maxLinesFlagDescription)
}

// createPrintCommand returns the print subcommand.
func createPrintCommand(flags *commandFlags, dependencies Dependencies) *cobra.Command {
	printCommand := &cobra.Command{
		Use:     printUse,
		Short:   printShortDescription,
		Long:    printLongDescription,
		Example: printUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			return runPrint(command, arguments, flags, dependencies)
		},
	}
	printCommand.Flags().StringVar(&flags.format, formatFlagName, config.DefaultFormat, formatFlagDescription)
	return printCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand(dependencies Dependencies) *cobra.Command {
	var global bool
	var force bool
	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: dependencies.WorkingDirectory,
			})
			if initError != nil {
				return initError
			}
			_, printError := fmt.Fprintf(command.OutOrStdout(), initWrittenFormat, writtenPath)
			return printError
		},
	}
	addSwitchFlag(initCommand.Flags(), &global, globalFlagName, globalFlagDescription)
	addSwitchFlag(initCommand.Flags(), &force, forceFlagName, forceFlagDescription)
	return initCommand
}

// loadBrowseConfiguration reads configuration files honoring --config.
func loadBrowseConfiguration(flags *commandFlags, dependencies Dependencies) (config.BrowseConfiguration, error) {
	loaded, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: dependencies.WorkingDirectory,
		ExplicitFilePath: flags.configPath,
		HomeDirectory:    dependencies.HomeDirectory,
	})
	if loadError != nil {
		return config.BrowseConfiguration{}, fmt.Errorf(errorLoadConfigurationFormat, loadError)
	}
	return loaded.Browse, nil
}

// resolveRootPath converts the optional path argument to a validated
// absolute directory path. Relative paths resolve against workingDirectory
// when it is set.
func resolveRootPath(arguments []string, workingDirectory string) (string, error) {
	inputPath := defaultPath
	if len(arguments) > 0 {
		inputPath = arguments[0]
	}
	candidatePath := inputPath
	if workingDirectory != "" && !filepath.IsAbs(candidatePath) {
		candidatePath = filepath.Join(workingDirectory, candidatePath)
	}
	absolutePath, absolutePathError := filepath.Abs(candidatePath)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
	}
	cleanPath := filepath.Clean(absolutePath)
	info, fileStatusError := os.Stat(cleanPath)
	if fileStatusError != nil {
		if os.IsNotExist(fileStatusError) {
			return "", fmt.Errorf(errorPathMissingFormat, inputPath)
		}
		return "", fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
	}
	if !info.IsDir() {
		return "", fmt.Errorf(errorNotDirectoryFormat, inputPath)
	}
	return cleanPath, nil
}
