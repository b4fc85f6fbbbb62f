package inspect

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tkarabela/ofxbundle/internal/bundle"
	"github.com/tkarabela/ofxbundle/internal/infoplist"
	"github.com/tkarabela/ofxbundle/internal/platform"
)

// buildBundle stages a fake plugin for each arch and returns the bundle dir.
func buildBundle(t *testing.T, archs ...string) string {
	t.Helper()
	tmp := t.TempDir()
	src := filepath.Join(tmp, "lic.ofx")
	if err := os.WriteFile(src, []byte("plugin"), 0755); err != nil {
		t.Fatal(err)
	}
	for _, arch := range archs {
		if _, err := bundle.Build(context.Background(), bundle.Options{Source: src, Platform: arch}); err != nil {
			t.Fatalf("Build(%s): %v", arch, err)
		}
	}
	return filepath.Join(tmp, "lic.ofx.bundle")
}

func messages(issues []Issue) string {
	var b strings.Builder
	for _, i := range issues {
		b.WriteString(string(i.Severity) + ": " + i.Message + "\n")
	}
	return b.String()
}

func TestLoad(t *testing.T) {
	dir := buildBundle(t, platform.Linux64, platform.Win64)
	if err := os.MkdirAll(filepath.Join(dir, "Contents", "Resources", "icons"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Contents", "Resources", "icons", "lic.png"), []byte("png"), 0644); err != nil {
		t.Fatal(err)
	}

	r, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if r.Name != "lic" {
		t.Errorf("Name = %q, want lic", r.Name)
	}
	if r.Info == nil || r.Info.Executable != "lic.ofx" {
		t.Errorf("Info = %+v, InfoErr = %q", r.Info, r.InfoErr)
	}
	if diff := cmp.Diff([]string{"Linux-x86-64", "Win64"}, r.Platforms()); diff != "" {
		t.Errorf("Platforms mismatch (-want +got):\n%s", diff)
	}
	for _, b := range r.Binaries {
		if b.Size != int64(len("plugin")) || !b.Known {
			t.Errorf("binary %+v", b)
		}
	}
	if diff := cmp.Diff([]string{"icons/lic.png"}, r.Resources); diff != "" {
		t.Errorf("Resources mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadNoContents(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("expected error for directory without Contents")
	}
}

func TestVerifyClean(t *testing.T) {
	dir := buildBundle(t, platform.Linux64)
	r, issues := Verify(dir)
	if r == nil {
		t.Fatal("Verify returned nil report")
	}
	if len(issues) != 0 {
		t.Errorf("expected no issues, got:\n%s", messages(issues))
	}
}

func TestVerifyProblems(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(t *testing.T, dir string)
		wantErr bool
		want    string
	}{
		{
			name: "missing plist",
			mutate: func(t *testing.T, dir string) {
				os.Remove(filepath.Join(dir, "Contents", "Info.plist"))
			},
			wantErr: true,
			want:    "Info.plist",
		},
		{
			name: "wrong package type",
			mutate: func(t *testing.T, dir string) {
				info := infoplist.Default("lic")
				info.PackageType = "APPL"
				if err := infoplist.Write(filepath.Join(dir, "Contents", "Info.plist"), info); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: true,
			want:    "CFBundlePackageType",
		},
		{
			name: "missing executable",
			mutate: func(t *testing.T, dir string) {
				os.Remove(filepath.Join(dir, "Contents", "Linux-x86-64", "lic.ofx"))
			},
			wantErr: true,
			want:    "executable",
		},
		{
			name: "unknown arch dir",
			mutate: func(t *testing.T, dir string) {
				arch := filepath.Join(dir, "Contents", "IRIX64")
				if err := os.MkdirAll(arch, 0755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(filepath.Join(arch, "lic.ofx"), []byte("x"), 0644); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: false,
			want:    "IRIX64",
		},
		{
			name: "executable name mismatch",
			mutate: func(t *testing.T, dir string) {
				info := infoplist.Default("other")
				if err := infoplist.Write(filepath.Join(dir, "Contents", "Info.plist"), info); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: true,
			want:    "does not match bundle name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := buildBundle(t, platform.Linux64)
			tt.mutate(t, dir)

			_, issues := Verify(dir)
			if HasErrors(issues) != tt.wantErr {
				t.Errorf("HasErrors = %v, want %v:\n%s", HasErrors(issues), tt.wantErr, messages(issues))
			}
			if !strings.Contains(messages(issues), tt.want) {
				t.Errorf("issues do not mention %q:\n%s", tt.want, messages(issues))
			}
		})
	}
}

func TestVerifyBadName(t *testing.T) {
	dir := buildBundle(t, platform.Linux64)
	renamed := filepath.Join(filepath.Dir(dir), "lic-bundle")
	if err := os.Rename(dir, renamed); err != nil {
		t.Fatal(err)
	}

	_, issues := Verify(renamed)
	if !HasErrors(issues) {
		t.Errorf("expected an error for bad bundle name:\n%s", messages(issues))
	}
}
