package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/ota-zip/internal/config"
	"github.com/oshokin/ota-zip/internal/logger"
	"github.com/oshokin/ota-zip/internal/service/packager"
	"github.com/oshokin/ota-zip/internal/version"
)

const (
	// exitFailure is returned for usage errors and failed runs.
	exitFailure = 1
	// exitInterrupted follows the shell convention of 128+SIGINT.
	exitInterrupted = 130
)

// newRootCmd builds the ota-zip command. startedAt is captured at process start
// and names the archive, so slow checks do not shift the timestamp.
func newRootCmd(startedAt time.Time) *cobra.Command {
	var sourcePath string

	rootCmd := &cobra.Command{
		Use:   "ota-zip <zip_name>",
		Short: "Create an OTA ROM zip",
		Long: `Packs a folder containing META-INF into out/<zip_name>_<YYYYMMDD-HHMM>.zip.

The archive is built with tools/bin/soong_zip into out/temp and then
repacked with tools/bin/zip2zip. out/temp is removed when the run ends.

Example: ota-zip rom_name  ->  out/rom_name_20240115-0930.zip`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Arguments are valid past this point; failures are reported through the logger.
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true

			workDir, err := os.Getwd()
			if err != nil {
				return err
			}

			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			ctx = logger.ToContext(ctx, logger.New(zapcore.InfoLevel))

			options := &packager.Options{
				ZipName:    args[0],
				SourcePath: sourcePath,
				WorkDir:    workDir,
				StartedAt:  startedAt,
			}

			return packager.Run(ctx, options)
		},
	}

	rootCmd.Flags().
		StringVarP(&sourcePath, "path", "p", config.DefaultSourceFolder, "path to the files to create the OTA zip from")

	version.AttachCobraVersionFlag(rootCmd)

	return rootCmd
}

// Execute runs the ota-zip CLI and exits with non-zero status on error.
func Execute() {
	startedAt := time.Now()

	if err := newRootCmd(startedAt).ExecuteContext(context.Background()); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps a run error to the process exit status.
func exitCode(err error) int {
	if errors.Is(err, context.Canceled) {
		return exitInterrupted
	}

	return exitFailure
}
