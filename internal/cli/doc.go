// Package cli defines the Cobra command tree for the extensiond binary. Each
// file registers one top-level command with the root command. Commands only
// handle flags and output; the work is done by the internal packages.
package cli
