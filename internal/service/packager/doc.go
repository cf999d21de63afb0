// Package packager builds an OTA archive from a source folder.
//
// It checks the META-INF marker, resolves soong_zip and zip2zip from
// tools/bin for the current platform, and runs them in sequence through the
// out/temp scratch folder, which is always removed afterwards.
package packager
