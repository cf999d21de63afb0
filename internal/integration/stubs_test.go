package integration

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// Stub bodies parse the same flags as soong_zip and zip2zip.
const (
	// stubBuilder writes a sorted listing of the -D tree to the -o file.
	stubBuilder = `out=""; root=""
while [ $# -gt 0 ]; do
	case "$1" in
		-o) out="$2"; shift 2 ;;
		-C) root="$2"; shift 2 ;;
		-D) shift 2 ;;
		*) shift ;;
	esac
done
[ -n "$out" ] || { echo "output file path must be nonempty" >&2; exit 1; }
(cd "$root" && find . -type f | LC_ALL=C sort) > "$out"`

	// stubRepacker copies -i to -o.
	stubRepacker = `in=""; out=""
while [ $# -gt 0 ]; do
	case "$1" in
		-i) in="$2"; shift 2 ;;
		-o) out="$2"; shift 2 ;;
		*) shift ;;
	esac
done
cp "$in" "$out"`

	failingBuilder = `echo "output file path must be nonempty" >&2
exit 2`

	failingRepacker = `echo "zip2zip: bad input" >&2
exit 1`

	// hangingRepacker starts writing -o and then blocks until killed.
	hangingRepacker = `out=""
while [ $# -gt 0 ]; do
	case "$1" in
		-o) out="$2"; shift 2 ;;
		*) shift ;;
	esac
done
echo partial > "$out"
exec sleep 30`

	// hangingBuilder starts writing -o into out/temp and then blocks until killed.
	hangingBuilder = `out=""
while [ $# -gt 0 ]; do
	case "$1" in
		-o) out="$2"; shift 2 ;;
		*) shift ;;
	esac
done
echo partial > "$out"
exec sleep 30`

	// terminatedRepacker starts writing -o and then dies from SIGTERM on its own.
	terminatedRepacker = `out=""
while [ $# -gt 0 ]; do
	case "$1" in
		-o) out="$2"; shift 2 ;;
		*) shift ;;
	esac
done
echo partial > "$out"
kill -TERM $$`

	// ctrlCRepacker mimics a terminal Ctrl+C: SIGINT reaches the packager and the tool.
	// If SIGINT is ignored in the tool it keeps blocking until killed.
	ctrlCRepacker = `out=""
while [ $# -gt 0 ]; do
	case "$1" in
		-o) out="$2"; shift 2 ;;
		*) shift ;;
	esac
done
echo partial > "$out"
kill -INT $PPID
kill -INT $$
exec sleep 30`
)

// requireShell skips on platforms without a POSIX shell for the stub tools.
func requireShell(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("stub tools are shell scripts")
	}

	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found")
	}
}

// writeStub writes an executable script that records its name in callsLog and then runs body.
func writeStub(t *testing.T, path, callsLog, name, body string) {
	t.Helper()

	script := fmt.Sprintf("#!/bin/sh\necho %s >> '%s'\n%s\n", name, callsLog, body)

	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
}
