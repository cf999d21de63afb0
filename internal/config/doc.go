// Package config defines the fixed filesystem layout of a packaging run and
// the per-platform toolchain.
//
// There is no user configuration file: Layout derives every path from the
// working directory captured at start-up, and the toolchain table is an
// embedded YAML document.
package config
