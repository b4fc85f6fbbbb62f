// Package scaffold writes a starter ofxbundle.yaml for a plugin from an
// embedded text/template and validates the result against the project schema.
package scaffold
