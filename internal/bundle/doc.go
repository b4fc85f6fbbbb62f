// Package bundle stages a compiled OpenFX plugin into the directory layout
// hosts load:
//
//	<name>.ofx.bundle/
//	    Contents/
//	        Info.plist
//	        <arch>/<name>.ofx
//	        Resources/
//
// Building is idempotent: existing directories are reused, the binary and
// Info.plist are replaced, and other platforms' arch directories are left
// untouched so one bundle can carry several builds.
package bundle
