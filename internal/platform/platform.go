package platform

import (
	"errors"
	"fmt"
	"runtime"
)

// Architecture directory names defined by the OpenFX bundle layout.
const (
	MacOS   = "MacOS"
	Win32   = "Win32"
	Win64   = "Win64"
	Linux32 = "Linux-x86"
	Linux64 = "Linux-x86-64"
)

// ErrUnsupportedPlatform is returned when no architecture directory exists
// for the requested operating system.
var ErrUnsupportedPlatform = errors.New("unknown platform")

var known = []string{MacOS, Win32, Win64, Linux32, Linux64}

// Current returns the architecture directory for the running binary.
func Current() (string, error) {
	return ForGOOS(runtime.GOOS, runtime.GOARCH)
}

// ForGOOS returns the architecture directory for an explicit GOOS/GOARCH pair.
// Windows builds default to Win64 unless the arch is 386; macOS bundles share
// one directory for every arch. Linux has no OFX directory for arm64 or other
// non-x86 arches, so those are unsupported; pass an explicit platform to
// package a cross-built binary.
func ForGOOS(goos, goarch string) (string, error) {
	switch goos {
	case "linux":
		switch goarch {
		case "amd64":
			return Linux64, nil
		case "386":
			return Linux32, nil
		}
	case "windows":
		if goarch == "386" {
			return Win32, nil
		}
		return Win64, nil
	case "darwin":
		return MacOS, nil
	}
	return "", fmt.Errorf("%w: %s/%s", ErrUnsupportedPlatform, goos, goarch)
}

// Known returns every supported architecture directory name.
func Known() []string {
	out := make([]string, len(known))
	copy(out, known)
	return out
}

// IsKnown reports whether name is a supported architecture directory.
func IsKnown(name string) bool {
	for _, k := range known {
		if k == name {
			return true
		}
	}
	return false
}

// Resolve returns override when it is non-empty and known, or the detected
// platform otherwise.
func Resolve(override string) (string, error) {
	if override == "" {
		return Current()
	}
	if !IsKnown(override) {
		return "", fmt.Errorf("%w: %q is not an OFX architecture directory", ErrUnsupportedPlatform, override)
	}
	return override, nil
}
