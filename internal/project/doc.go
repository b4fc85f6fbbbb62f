// Package project handles ofxbundle.yaml, the per-plugin file that records
// the bundle name, identifier, versions and resources so that a build only
// needs the path of the compiled plugin. Files are validated against an
// embedded JSON Schema before use.
package project
