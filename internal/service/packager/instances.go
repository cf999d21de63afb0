package packager

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/ota-zip/internal/logger"
)

// warnAboutOtherInstances logs a warning when another copy of this executable
// is running. Runs share out/temp and may collide on the archive name; nothing
// here prevents that.
func warnAboutOtherInstances(ctx context.Context) {
	self, err := os.Executable()
	if err != nil {
		return
	}

	pids, err := otherInstances(os.Getpid(), filepath.Base(self))
	if err != nil {
		logger.DebugKV(ctx, "Unable to list processes", "error", err)
		return
	}

	if len(pids) > 0 {
		logger.WarnKV(ctx, "Another packager instance is running, concurrent runs share the scratch folder", "pids", pids)
	}
}

// otherInstances returns the PIDs of processes named executable, excluding selfPID.
func otherInstances(selfPID int, executable string) ([]int, error) {
	processList, err := ps.Processes()
	if err != nil {
		return nil, err
	}

	var pids []int

	for _, process := range processList {
		if process.Pid() == selfPID {
			continue
		}

		if process.Executable() != executable {
			continue
		}

		pids = append(pids, process.Pid())
	}

	return pids, nil
}
