package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultSourceFolder is the folder packed when no --path is given.
	DefaultSourceFolder = "OTA"

	// MarkerFolder must exist directly under the source folder.
	MarkerFolder = "META-INF"

	// OutputFolder receives the final archives, relative to the working directory.
	OutputFolder = "out"

	// ScratchFolder holds the intermediate archive, relative to OutputFolder.
	ScratchFolder = "temp"

	// DefaultDirPermissions is used when creating the output and scratch folders.
	DefaultDirPermissions os.FileMode = 0o755
)

// toolsFolder holds the builder and repacker executables, relative to the working directory.
//
//nolint:gochecknoglobals // Constant path, built with the platform separator.
var toolsFolder = filepath.Join("tools", "bin")

var errWorkDirRequired = errors.New("working directory must be provided")

// Layout anchors every path the packager touches to the working directory
// captured at start-up.
type Layout struct {
	// WorkDir is the absolute working directory captured once at start.
	WorkDir string
}

// NewLayout returns a Layout rooted at workDir, made absolute.
func NewLayout(workDir string) (*Layout, error) {
	if workDir == "" {
		return nil, errWorkDirRequired
	}

	abs, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	return &Layout{WorkDir: abs}, nil
}

// OutputDir is <workdir>/out.
func (l *Layout) OutputDir() string {
	return filepath.Join(l.WorkDir, OutputFolder)
}

// ScratchDir is <workdir>/out/temp.
func (l *Layout) ScratchDir() string {
	return filepath.Join(l.OutputDir(), ScratchFolder)
}

// ToolsDir is <workdir>/tools/bin.
func (l *Layout) ToolsDir() string {
	return filepath.Join(l.WorkDir, toolsFolder)
}

// ResolveSource returns source as an absolute path. Relative paths are taken
// from the working directory, never from the live process state.
func (l *Layout) ResolveSource(source string) string {
	if source == "" {
		source = DefaultSourceFolder
	}

	if filepath.IsAbs(source) {
		return filepath.Clean(source)
	}

	return filepath.Join(l.WorkDir, source)
}
