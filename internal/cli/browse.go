package cli

import (
	"errors"
	"fmt"
	"math"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/treebrowse/internal/commands"
	"github.com/temirov/treebrowse/internal/config"
	"github.com/temirov/treebrowse/internal/flattree"
	"github.com/temirov/treebrowse/internal/input"
	"github.com/temirov/treebrowse/internal/output"
	"github.com/temirov/treebrowse/internal/services/clipboard"
	"github.com/temirov/treebrowse/internal/session"
)

// browseSettings is the outcome of merging configuration and flags.
type browseSettings struct {
	rootPath     string
	maxLines     int
	maxLinesSet  bool
	reservedRows int
	clipboard    bool
	format       string
	lister       commands.ListerOptions
}

// resolveSettings overlays changed flags on configuration values.
func resolveSettings(command *cobra.Command, rootPath string, flags *commandFlags, configuration config.BrowseConfiguration) browseSettings {
	flagSet := command.Flags()
	settings := browseSettings{
		rootPath:     rootPath,
		reservedRows: configuration.ReservedRowsOrDefault(),
		clipboard:    config.BoolOrDefault(configuration.Clipboard, false),
		format:       configuration.FormatOrDefault(),
		lister: commands.ListerOptions{
			Root:              rootPath,
			ExclusionPatterns: append([]string{}, configuration.Paths.Exclude...),
			UseGitignore:      config.BoolOrDefault(configuration.Paths.UseGitignore, true),
			UseIgnoreFile:     config.BoolOrDefault(configuration.Paths.UseIgnoreFile, true),
			IncludeGit:        config.BoolOrDefault(configuration.Paths.IncludeGit, false),
			IncludeHidden:     config.BoolOrDefault(configuration.Hidden, false),
		},
	}
	if configuration.MaxLines != nil {
		settings.maxLines = *configuration.MaxLines
		settings.maxLinesSet = true
	}

	if flagSet.Changed(maxLinesFlagName) {
		settings.maxLines = flags.maxLines
		settings.maxLinesSet = true
	}
	if flagSet.Changed(clipboardFlagName) {
		settings.clipboard = flags.clipboard
	}
	if flagSet.Changed(formatFlagName) {
		settings.format = flags.format
	}
	if flagSet.Changed(exclusionFlagName) {
		settings.lister.ExclusionPatterns = append(settings.lister.ExclusionPatterns, flags.exclusionPatterns...)
	}
	if flagSet.Changed(noGitignoreFlagName) {
		settings.lister.UseGitignore = !flags.disableGitignore
	}
	if flagSet.Changed(noIgnoreFlagName) {
		settings.lister.UseIgnoreFile = !flags.disableIgnoreFile
	}
	if flagSet.Changed(includeGitFlagName) {
		settings.lister.IncludeGit = flags.includeGit
	}
	if flagSet.Changed(hiddenFlagName) {
		settings.lister.IncludeHidden = flags.includeHidden
	}
	return settings
}

// lineBudget returns the explicit budget, or the rows left for the tree.
func (settings browseSettings) lineBudget(terminalRows int) int {
	if settings.maxLinesSet {
		return settings.maxLines
	}
	return terminalRows - settings.reservedRows
}

// copier returns the clipboard used for the opened path.
func (settings browseSettings) copier(dependencies Dependencies) clipboard.Copier {
	if !settings.clipboard {
		return clipboard.Discard{}
	}
	return dependencies.Clipboard
}

// buildTree lists settings.rootPath within maxLines lines.
func buildTree(settings browseSettings, maxLines int) (*flattree.Tree, error) {
	lister, listerError := commands.NewFileSystemLister(settings.lister)
	if listerError != nil {
		return nil, fmt.Errorf(errorBuildTreeFormat, settings.rootPath, listerError)
	}
	tree, buildError := commands.NewTreeBuilder(lister).Build(settings.rootPath, maxLines)
	if buildError != nil {
		return nil, fmt.Errorf(errorBuildTreeFormat, settings.rootPath, buildError)
	}
	return tree, nil
}

// runBrowse builds the tree for the terminal and runs the interactive session.
func runBrowse(command *cobra.Command, arguments []string, flags *commandFlags, dependencies Dependencies) error {
	configuration, configurationError := loadBrowseConfiguration(flags, dependencies)
	if configurationError != nil {
		return configurationError
	}
	rootPath, pathError := resolveRootPath(arguments, dependencies.WorkingDirectory)
	if pathError != nil {
		return pathError
	}
	settings := resolveSettings(command, rootPath, flags, configuration)

	if !dependencies.Terminal.IsInteractive() {
		return errors.New(errorNotTerminal)
	}
	width, height, sizeError := dependencies.Terminal.Size()
	if sizeError != nil {
		return fmt.Errorf(errorTerminalSizeFormat, sizeError)
	}

	tree, buildError := buildTree(settings, settings.lineBudget(height))
	if buildError != nil {
		return buildError
	}

	screen := command.ErrOrStderr()
	model := session.NewModel(session.Options{
		RootPath:     rootPath,
		Tree:         tree,
		KeyMap:       input.DefaultKeyMap(),
		Styles:       output.NewStyles(lipgloss.NewRenderer(screen)),
		Width:        width,
		Height:       height,
		ReservedRows: settings.reservedRows,
	})
	result, runError := dependencies.RunSession(command.Context(), model, tea.WithOutput(screen))
	if runError != nil {
		return runError
	}
	if !result.Opened {
		return nil
	}

	if _, printError := fmt.Fprintln(command.OutOrStdout(), result.Line.Path); printError != nil {
		return printError
	}
	if copyError := settings.copier(dependencies).Copy(result.Line.Path); copyError != nil {
		dependencies.Logger.Warn(warningClipboardMessage, zap.String("path", result.Line.Path), zap.Error(copyError))
	}
	return nil
}

// runPrint renders the keyed tree to standard output.
func runPrint(command *cobra.Command, arguments []string, flags *commandFlags, dependencies Dependencies) error {
	configuration, configurationError := loadBrowseConfiguration(flags, dependencies)
	if configurationError != nil {
		return configurationError
	}
	rootPath, pathError := resolveRootPath(arguments, dependencies.WorkingDirectory)
	if pathError != nil {
		return pathError
	}
	settings := resolveSettings(command, rootPath, flags, configuration)
	if settings.format != output.FormatRaw && settings.format != output.FormatJSON {
		return fmt.Errorf(errorInvalidFormat, settings.format)
	}

	maxLines := math.MaxInt
	if settings.maxLinesSet {
		maxLines = settings.maxLines
	}
	tree, buildError := buildTree(settings, maxLines)
	if buildError != nil {
		return buildError
	}

	writer := command.OutOrStdout()
	styles := output.NewStyles(lipgloss.NewRenderer(writer))
	return output.WriteTree(writer, tree, rootPath, settings.format, styles)
}
