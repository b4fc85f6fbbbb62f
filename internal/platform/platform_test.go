package platform

import (
	"errors"
	"runtime"
	"testing"
)

func TestForGOOS(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         string
	}{
		{"linux", "amd64", Linux64},
		{"linux", "386", Linux32},
		{"windows", "amd64", Win64},
		{"windows", "386", Win32},
		{"windows", "arm64", Win64},
		{"darwin", "arm64", MacOS},
		{"darwin", "amd64", MacOS},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			got, err := ForGOOS(tt.goos, tt.goarch)
			if err != nil {
				t.Fatalf("ForGOOS: %v", err)
			}
			if got != tt.want {
				t.Errorf("ForGOOS(%s, %s) = %q, want %q", tt.goos, tt.goarch, got, tt.want)
			}
		})
	}
}

func TestForGOOSUnsupported(t *testing.T) {
	for _, pair := range [][2]string{{"freebsd", "amd64"}, {"linux", "arm64"}, {"plan9", "386"}} {
		_, err := ForGOOS(pair[0], pair[1])
		if !errors.Is(err, ErrUnsupportedPlatform) {
			t.Errorf("ForGOOS(%s, %s) error = %v, want ErrUnsupportedPlatform", pair[0], pair[1], err)
		}
	}
}

func TestCurrentMatchesForGOOS(t *testing.T) {
	want, wantErr := ForGOOS(runtime.GOOS, runtime.GOARCH)
	got, err := Current()
	if got != want || (err == nil) != (wantErr == nil) {
		t.Errorf("Current() = (%q, %v), want (%q, %v)", got, err, want, wantErr)
	}
}

func TestKnownIsACopy(t *testing.T) {
	k := Known()
	k[0] = "mutated"
	if Known()[0] == "mutated" {
		t.Error("Known() exposes internal slice")
	}
	if !IsKnown(Linux64) || IsKnown("Linux-arm64") {
		t.Error("IsKnown returned unexpected result")
	}
}

func TestResolve(t *testing.T) {
	got, err := Resolve(Win32)
	if err != nil || got != Win32 {
		t.Errorf("Resolve(Win32) = (%q, %v)", got, err)
	}

	if _, err := Resolve("Amiga"); !errors.Is(err, ErrUnsupportedPlatform) {
		t.Errorf("Resolve(Amiga) error = %v, want ErrUnsupportedPlatform", err)
	}
}
