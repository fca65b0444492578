// Package cli defines the Cobra command tree for the kickstart CLI. Each file
// registers one top-level command with the root command. Commands delegate
// to the wizard and the other internal packages and only handle flags,
// output formatting and exit behaviour.
package cli
