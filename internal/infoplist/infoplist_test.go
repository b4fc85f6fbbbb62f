package infoplist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// legacyManifest is the hand-written manifest older LIC releases shipped.
const legacyManifest = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple Computer//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>CFBundleDevelopmentRegion</key>
    <string>English</string>
    <key>CFBundleExecutable</key>
    <string>lic.ofx</string>
    <key>CFBundleInfoDictionaryVersion</key>
    <string>6.0</string>
    <key>CFBundlePackageType</key>
    <string>BNDL</string>
    <key>CFBundleSignature</key>
    <string>????</string>
    <key>CFBundleVersion</key>
    <string>0.0.1d1</string>
    <key>CSResourcesFileMapped</key>
    <true/>
</dict>
</plist>
`

func TestDefault(t *testing.T) {
	got := Default("lic")
	want := Info{
		DevelopmentRegion:     "English",
		Executable:            "lic.ofx",
		InfoDictionaryVersion: "6.0",
		PackageType:           "BNDL",
		Signature:             "????",
		Version:               "0.0.1d1",
		ResourcesFileMapped:   true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Default mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeLegacyManifest(t *testing.T) {
	got, err := Decode([]byte(legacyManifest))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(Default("lic"), *got); diff != "" {
		t.Errorf("legacy manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalContainsKeys(t *testing.T) {
	data, err := Marshal(Default("lic"))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<plist version="1.0">`,
		"<key>CFBundleExecutable</key>",
		"<string>lic.ofx</string>",
		"<key>CFBundlePackageType</key>",
		"<string>BNDL</string>",
		"<string>????</string>",
		"<true/>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("encoded plist missing %q:\n%s", want, out)
		}
	}

	// Optional keys stay out of the default manifest.
	for _, absent := range []string{"CFBundleIdentifier", "CFBundleShortVersionString", "CFBundleName"} {
		if strings.Contains(out, absent) {
			t.Errorf("encoded plist unexpectedly contains %q", absent)
		}
	}
	if !strings.HasSuffix(out, "</plist>\n") {
		t.Errorf("encoded plist does not end with a newline-terminated closing tag")
	}
}

func TestWriteReadOptionalKeys(t *testing.T) {
	info := Default("lic")
	info.Identifier = "com.github.tkarabela.licPlugin"
	info.ShortVersion = "1.0.0"
	info.Name = "LIC"

	path := filepath.Join(t.TempDir(), "Info.plist")
	if err := Write(path, info); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if diff := cmp.Diff(info, *got); diff != "" {
		t.Errorf("Read mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Info.plist")
	if err := os.WriteFile(path, []byte("stale content that is much longer than nothing"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Write(path, Default("lic")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := Read(path); err != nil {
		t.Fatalf("Read after overwrite: %v", err)
	}
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Read(filepath.Join(dir, "missing.plist")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.plist")
	if err := os.WriteFile(bad, []byte("<plist><dict><key>x</key>"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(bad); err == nil {
		t.Error("expected error for truncated plist")
	}
}
