// Package config loads ignore files and application configuration.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/treebrowse/internal/utils"
)

const (
	// gitDirectoryPattern represents the pattern that matches the Git directory.
	gitDirectoryPattern = utils.GitDirectoryName + "/"
	// binarySectionHeader identifies the section listing binary content patterns.
	binarySectionHeader = "[binary]"
	// ignoreSectionHeader identifies the section listing ignore patterns.
	ignoreSectionHeader = "[ignore]"

	errorLoadIgnoreFileFormat = "loading %s from %s: %w"
)

// LoadIgnoreFilePatterns reads an ignore file and returns its ignore patterns.
// A missing file yields no patterns. Lines under a [binary] section are
// skipped so .ignore files shared with other tools stay readable.
//
// #nosec G304
func LoadIgnoreFilePatterns(ignoreFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer fileHandle.Close()

	var ignorePatterns []string
	currentSectionHeader := ignoreSectionHeader
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, "#") {
			continue
		}
		if strings.EqualFold(trimmedLine, binarySectionHeader) {
			currentSectionHeader = binarySectionHeader
			continue
		}
		if strings.EqualFold(trimmedLine, ignoreSectionHeader) {
			currentSectionHeader = ignoreSectionHeader
			continue
		}
		if currentSectionHeader == binarySectionHeader {
			continue
		}
		ignorePatterns = append(ignorePatterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return ignorePatterns, nil
}

// LoadDirectoryIgnorePatterns reads .ignore and/or .gitignore from a single
// directory and prefixes each pattern with prefix.
func LoadDirectoryIgnorePatterns(absoluteDirectoryPath string, prefix string, useGitignore bool, useIgnoreFile bool) ([]string, error) {
	var directoryPatterns []string

	if useIgnoreFile {
		ignoreFilePath := filepath.Join(absoluteDirectoryPath, utils.IgnoreFileName)
		ignoreFilePatterns, loadError := LoadIgnoreFilePatterns(ignoreFilePath)
		if loadError != nil {
			return nil, fmt.Errorf(errorLoadIgnoreFileFormat, utils.IgnoreFileName, absoluteDirectoryPath, loadError)
		}
		for _, pattern := range ignoreFilePatterns {
			directoryPatterns = append(directoryPatterns, prefix+pattern)
		}
	}

	if useGitignore {
		gitIgnoreFilePath := filepath.Join(absoluteDirectoryPath, utils.GitIgnoreFileName)
		gitIgnoreFilePatterns, loadError := LoadIgnoreFilePatterns(gitIgnoreFilePath)
		if loadError != nil {
			return nil, fmt.Errorf(errorLoadIgnoreFileFormat, utils.GitIgnoreFileName, absoluteDirectoryPath, loadError)
		}
		for _, pattern := range gitIgnoreFilePatterns {
			directoryPatterns = append(directoryPatterns, prefix+pattern)
		}
	}

	return directoryPatterns, nil
}

// LoadCombinedIgnorePatterns aggregates patterns from .ignore and/or .gitignore files within a directory.
// The .git directory is excluded by default unless includeGit is true.
// The provided exclusionPatterns are appended to the result.
func LoadCombinedIgnorePatterns(absoluteDirectoryPath string, exclusionPatterns []string, useGitignore bool, useIgnoreFile bool, includeGit bool) ([]string, error) {
	combinedPatterns, loadError := LoadDirectoryIgnorePatterns(absoluteDirectoryPath, "", useGitignore, useIgnoreFile)
	if loadError != nil {
		return nil, loadError
	}

	if !includeGit {
		combinedPatterns = append(combinedPatterns, gitDirectoryPattern)
	}

	deduplicatedFilePatterns := utils.DeduplicatePatterns(combinedPatterns)

	for _, pattern := range exclusionPatterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == "" {
			continue
		}
		if !utils.ContainsString(deduplicatedFilePatterns, trimmedPattern) {
			deduplicatedFilePatterns = append(deduplicatedFilePatterns, trimmedPattern)
		}
	}

	return deduplicatedFilePatterns, nil
}
