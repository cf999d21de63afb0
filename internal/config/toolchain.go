package config

import (
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Toolchain names the two external executables for one platform.
type Toolchain struct {
	// Builder packs a directory tree into an archive (soong_zip).
	Builder string `yaml:"builder"`
	// Repacker copies the intermediate archive into the final one (zip2zip).
	Repacker string `yaml:"repacker"`
}

// toolchainDescriptor is the document shape of toolchain.yaml.
type toolchainDescriptor struct {
	Platforms map[string]*Toolchain `yaml:"platforms"`
}

// ErrUnsupportedPlatform is returned when no toolchain is declared for the running OS.
var ErrUnsupportedPlatform = errors.New("not supported platform")

var (
	errToolNameRequired = errors.New("tool name must be provided")
	errToolNameIsPath   = errors.New("tool name must be a file name, not a path")
)

//go:embed toolchain.yaml
var embeddedToolchains []byte

// LoadToolchain returns the toolchain declared for platform (a GOOS value).
func LoadToolchain(platform string) (*Toolchain, error) {
	return parseToolchain(embeddedToolchains, platform)
}

func parseToolchain(contents []byte, platform string) (*Toolchain, error) {
	var desc toolchainDescriptor
	if err := yaml.Unmarshal(contents, &desc); err != nil {
		return nil, fmt.Errorf("unmarshal toolchain descriptor: %w", err)
	}

	tc, ok := desc.Platforms[strings.ToLower(strings.TrimSpace(platform))]
	if !ok || tc == nil {
		return nil, fmt.Errorf("%s: %w", platform, ErrUnsupportedPlatform)
	}

	if err := tc.Validate(); err != nil {
		return nil, fmt.Errorf("toolchain for %s: %w", platform, err)
	}

	return tc, nil
}

// Validate checks that both executables are named by plain file names.
func (t *Toolchain) Validate() error {
	for role, name := range map[string]string{"builder": t.Builder, "repacker": t.Repacker} {
		if name == "" {
			return fmt.Errorf("%s: %w", role, errToolNameRequired)
		}

		if filepath.Base(name) != name {
			return fmt.Errorf("%s %q: %w", role, name, errToolNameIsPath)
		}
	}

	return nil
}

// BuilderPath is the absolute path of the builder inside dir.
func (t *Toolchain) BuilderPath(dir string) string {
	return filepath.Join(dir, t.Builder)
}

// RepackerPath is the absolute path of the repacker inside dir.
func (t *Toolchain) RepackerPath(dir string) string {
	return filepath.Join(dir, t.Repacker)
}
