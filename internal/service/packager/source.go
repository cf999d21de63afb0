package packager

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oshokin/ota-zip/internal/config"
)

// ErrMissingMarker indicates the source folder has no META-INF subfolder.
var ErrMissingMarker = errors.New("missing META-INF folder")

// checkSource confirms that source contains the marker folder.
func checkSource(source string) error {
	marker := filepath.Join(source, config.MarkerFolder)

	info, err := os.Stat(marker)
	if err == nil && info.IsDir() {
		return nil
	}

	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", marker, err)
	}

	return fmt.Errorf("%w in %s, check and try again", ErrMissingMarker, source)
}
