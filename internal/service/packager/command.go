package packager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/oshokin/ota-zip/internal/config"
	"github.com/oshokin/ota-zip/internal/domain/archive"
	"github.com/oshokin/ota-zip/internal/logger"
	"github.com/oshokin/ota-zip/internal/service/common"
	"github.com/oshokin/ota-zip/internal/version"
)

// Options contains inputs for the packager entry point.
type Options struct {
	// ZipName is the archive base name, without extension.
	ZipName string
	// SourcePath is the folder to pack (defaults to config.DefaultSourceFolder).
	// Relative paths are resolved against WorkDir.
	SourcePath string
	// WorkDir anchors out/ and tools/bin/ (defaults to the current directory).
	WorkDir string
	// StartedAt is the process start time used in the archive name (defaults to now).
	StartedAt time.Time
	// Platform selects the toolchain (defaults to runtime.GOOS).
	Platform string
}

// ErrToolNotFound indicates that a toolchain executable is missing from tools/bin.
var ErrToolNotFound = errors.New("required tool not found")

// packager builds one archive. It is unexported: callers go through Run,
// which validates everything before the first filesystem change.
type packager struct {
	// layout anchors output, scratch and tools paths.
	layout *config.Layout
	// source is the absolute folder being packed.
	source string
	// name is the final archive name.
	name *archive.Name
	// builder is the absolute path of soong_zip.
	builder string
	// repacker is the absolute path of zip2zip.
	repacker string
}

// Run packs opts.SourcePath into out/<name>_<timestamp>.zip.
//
// The scratch folder out/temp is removed on every path once it has been created.
// If ctx is cancelled while a tool runs, a partially written final archive is
// removed too and the returned error wraps context.Canceled.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "ota-zip")

	opts = withDefaults(opts)

	pkg, err := newPackager(ctx, opts)
	if err != nil {
		logger.ErrorKV(ctx, "Packager cannot start", "error", err)
		return err
	}

	if err = pkg.Run(ctx); err != nil {
		logger.ErrorKV(ctx, "Packager failed", "error", err)
		return err
	}

	logger.InfoKV(ctx, "Elapsed time", "elapsed", time.Since(opts.StartedAt).String())

	return nil
}

// withDefaults returns a copy of opts with empty fields filled in.
func withDefaults(opts *Options) *Options {
	o := Options{}
	if opts != nil {
		o = *opts
	}

	if o.SourcePath == "" {
		o.SourcePath = config.DefaultSourceFolder
	}

	if o.StartedAt.IsZero() {
		o.StartedAt = time.Now()
	}

	if o.Platform == "" {
		o.Platform = runtime.GOOS
	}

	return &o
}

// newPackager runs every check that must pass before anything is written:
// archive name, marker folder, platform toolchain and tool presence.
// It does not log failures; Run reports them once.
func newPackager(ctx context.Context, opts *Options) (*packager, error) {
	name, err := archive.NewName(opts.ZipName, opts.StartedAt)
	if err != nil {
		return nil, err
	}

	workDir := opts.WorkDir
	if workDir == "" {
		if workDir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	layout, err := config.NewLayout(workDir)
	if err != nil {
		return nil, err
	}

	source := layout.ResolveSource(opts.SourcePath)
	if err = checkSource(source); err != nil {
		return nil, err
	}

	toolchain, err := config.LoadToolchain(opts.Platform)
	if err != nil {
		return nil, err
	}

	pkg := &packager{
		layout:   layout,
		source:   source,
		name:     name,
		builder:  toolchain.BuilderPath(layout.ToolsDir()),
		repacker: toolchain.RepackerPath(layout.ToolsDir()),
	}

	for _, tool := range []string{pkg.builder, pkg.repacker} {
		if err = ensureExecutable(tool); err != nil {
			return nil, err
		}
	}

	logger.InfoKV(ctx, "Packager ready",
		"version", version.Full(),
		"source", source,
		"archive", name.FileName(),
		"platform", opts.Platform)

	return pkg, nil
}

// Run creates the scratch folder, then runs the builder and repacker stages in order.
func (p *packager) Run(ctx context.Context) error {
	ctx = logger.WithKV(ctx, "archive", p.name.FileName())

	warnAboutOtherInstances(ctx)

	if err := p.ensureScratchDir(ctx); err != nil {
		return err
	}

	defer p.cleanup(ctx)

	var (
		fileName       = p.name.FileName()
		scratchArchive = filepath.Join(p.layout.ScratchDir(), fileName)
		outputArchive  = filepath.Join(p.layout.OutputDir(), fileName)
	)

	logger.InfoKV(ctx, "Building archive", "source", p.source)

	if _, err := common.Run(ctx, p.buildCommand(scratchArchive)); err != nil {
		p.removePartialOutput(ctx, err, outputArchive)
		return fmt.Errorf("build archive: %w", err)
	}

	logger.InfoKV(ctx, "Repacking archive", "output", outputArchive)

	if _, err := common.Run(ctx, p.repackCommand(scratchArchive, outputArchive)); err != nil {
		p.removePartialOutput(ctx, err, outputArchive)
		return fmt.Errorf("repack archive: %w", err)
	}

	logger.InfoKV(ctx, "Archive created", "path", outputArchive)

	return nil
}

// buildCommand packs the whole source tree, with entries relative to the source root.
func (p *packager) buildCommand(scratchArchive string) *common.Command {
	return common.NewCommand(p.builder,
		"-o", scratchArchive,
		"-C", p.source,
		"-D", p.source,
	)
}

// repackCommand copies the intermediate archive into the output folder.
func (p *packager) repackCommand(scratchArchive, outputArchive string) *common.Command {
	return common.NewCommand(p.repacker,
		"-i", scratchArchive,
		"-o", outputArchive,
	)
}

// ensureScratchDir creates out/temp (and out/) when absent.
func (p *packager) ensureScratchDir(ctx context.Context) error {
	scratch := p.layout.ScratchDir()

	if _, err := os.Stat(scratch); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", scratch, err)
	}

	logger.InfoKV(ctx, "Creating scratch folder", "path", scratch)

	if err := os.MkdirAll(scratch, config.DefaultDirPermissions); err != nil {
		return fmt.Errorf("create scratch folder: %w", err)
	}

	return nil
}

// removePartialOutput deletes the final archive, but only when the run was interrupted:
// either ctx is cancelled or the stage error wraps context.Canceled.
// Ordinary tool failures leave the output folder untouched.
func (p *packager) removePartialOutput(ctx context.Context, stageErr error, outputArchive string) {
	if ctx.Err() == nil && !errors.Is(stageErr, context.Canceled) {
		return
	}

	if _, err := os.Stat(outputArchive); err != nil {
		return
	}

	logger.InfoKV(ctx, "Removing incomplete archive", "path", outputArchive)

	if err := os.Remove(outputArchive); err != nil {
		logger.WarnKV(ctx, "Unable to remove incomplete archive", "path", outputArchive, "error", err)
	}
}

// cleanup removes the scratch folder together with any intermediate archive.
func (p *packager) cleanup(ctx context.Context) {
	scratch := p.layout.ScratchDir()

	logger.InfoKV(ctx, "Removing scratch folder", "path", scratch)

	if err := os.RemoveAll(scratch); err != nil {
		logger.WarnKV(ctx, "Unable to remove scratch folder", "path", scratch, "error", err)
	}
}

// ensureExecutable checks that path exists and is a regular file.
func ensureExecutable(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", path, ErrToolNotFound)
	} else if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%s is a directory: %w", path, ErrToolNotFound)
	}

	return nil
}
