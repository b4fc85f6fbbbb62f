// Package platform maps Go's GOOS/GOARCH pairs onto the architecture
// directory names that OpenFX hosts look for inside a bundle's Contents
// folder, and wraps the few filesystem calls whose behaviour differs
// between Unix and Windows.
package platform
