// Package version exposes build metadata for the project.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags and default to sensible values for local builds.
// AttachCobraVersionFlag wires the short form into a cobra root command.
package version
