package version

import (
	"github.com/spf13/cobra"
)

// versionTemplate renders "<program>: <version>".
const versionTemplate = "{{.Name}}: {{.Version}}\n"

// AttachCobraVersionFlag enables the -v/--version flag on root.
// Cobra handles the flag before argument validation, so it works without the
// required positional arguments and has no other side effects.
func AttachCobraVersionFlag(root *cobra.Command) {
	root.Version = Short()
	root.SetVersionTemplate(versionTemplate)
}
