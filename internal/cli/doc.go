// Package cli defines the Cobra command tree for the ofxbundle CLI. Each file
// in this package registers one top-level command (build, inspect, verify,
// etc.) with the root command. Command implementations delegate to internal
// packages for the bundle logic and only handle flag parsing, option
// resolution, and output formatting.
package cli
