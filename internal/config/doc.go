// Package config manages user-level settings stored at ~/.ofxbundle/config.yaml.
// Settings supply defaults for the build command (output directory, platform,
// bundle version) and can be overridden per run with OFXBUNDLE_* environment
// variables or flags.
package config
