// Package inspect reads an existing OFX bundle back from disk. Load reports
// what the bundle contains; Verify checks it against the layout hosts expect
// and returns the problems it finds.
package inspect
