package archive

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// TimestampLayout renders the creation time as YYYYMMDD-HHMM.
	TimestampLayout = "20060102-1504"

	// Extension is appended to every archive file name.
	Extension = ".zip"
)

// ErrInvalidBaseName is returned for empty base names or ones containing path separators.
var ErrInvalidBaseName = errors.New("invalid archive base name")

// Name identifies one archive: the user-supplied base plus the run start time.
// Two names built from the same base within the same minute are equal.
type Name struct {
	// Base is the user-supplied name without extension.
	Base string
	// CreatedAt is the moment the run started.
	CreatedAt time.Time
}

// NewName validates base and binds it to createdAt.
func NewName(base string, createdAt time.Time) (*Name, error) {
	if strings.TrimSpace(base) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidBaseName)
	}

	if strings.ContainsAny(base, `/\`) {
		return nil, fmt.Errorf("%w: %q contains a path separator", ErrInvalidBaseName, base)
	}

	return &Name{
		Base:      base,
		CreatedAt: createdAt,
	}, nil
}

// FileName returns <base>_<YYYYMMDD-HHMM>.zip.
func (n *Name) FileName() string {
	return n.Base + "_" + n.CreatedAt.Format(TimestampLayout) + Extension
}
