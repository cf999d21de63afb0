// Package common holds helpers shared by services.
//
// It runs external programs without a shell, captures their output and
// exit status, and reports non-zero exits as *CommandError.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
