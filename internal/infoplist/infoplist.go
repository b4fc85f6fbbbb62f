// Package infoplist reads and writes the Contents/Info.plist manifest that
// describes an OpenFX bundle to the host.
package infoplist

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"howett.net/plist"
)

// Default values written for every bundle.
const (
	DevelopmentRegion     = "English"
	InfoDictionaryVersion = "6.0"
	PackageType           = "BNDL"
	Signature             = "????"
	DefaultBundleVersion  = "0.0.1d1"

	// BinaryExt is appended to the bundle name to form the executable name.
	BinaryExt = ".ofx"
)

// Info is the property-list dictionary stored in Contents/Info.plist.
// Fields are declared in key order so the encoded dictionary is sorted.
type Info struct {
	DevelopmentRegion     string `plist:"CFBundleDevelopmentRegion" json:"CFBundleDevelopmentRegion"`
	Executable            string `plist:"CFBundleExecutable" json:"CFBundleExecutable"`
	Identifier            string `plist:"CFBundleIdentifier,omitempty" json:"CFBundleIdentifier,omitempty"`
	InfoDictionaryVersion string `plist:"CFBundleInfoDictionaryVersion" json:"CFBundleInfoDictionaryVersion"`
	Name                  string `plist:"CFBundleName,omitempty" json:"CFBundleName,omitempty"`
	PackageType           string `plist:"CFBundlePackageType" json:"CFBundlePackageType"`
	ShortVersion          string `plist:"CFBundleShortVersionString,omitempty" json:"CFBundleShortVersionString,omitempty"`
	Signature             string `plist:"CFBundleSignature" json:"CFBundleSignature"`
	Version               string `plist:"CFBundleVersion" json:"CFBundleVersion"`
	ResourcesFileMapped   bool   `plist:"CSResourcesFileMapped" json:"CSResourcesFileMapped"`
}

// Default returns the manifest for a bundle whose executable is name+".ofx".
func Default(name string) Info {
	return Info{
		DevelopmentRegion:     DevelopmentRegion,
		Executable:            name + BinaryExt,
		InfoDictionaryVersion: InfoDictionaryVersion,
		PackageType:           PackageType,
		Signature:             Signature,
		Version:               DefaultBundleVersion,
		ResourcesFileMapped:   true,
	}
}

// Encode writes info as an indented XML property list.
func Encode(w io.Writer, info Info) error {
	data, err := Marshal(info)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Marshal returns the encoded XML property list, terminated by one newline.
func Marshal(info Info) ([]byte, error) {
	var buf bytes.Buffer
	enc := plist.NewEncoderForFormat(&buf, plist.XMLFormat)
	enc.Indent("    ")
	if err := enc.Encode(info); err != nil {
		return nil, fmt.Errorf("encoding Info.plist: %w", err)
	}
	return append(bytes.TrimRight(buf.Bytes(), "\n"), '\n'), nil
}

// Write encodes info to path, replacing any existing file.
func Write(path string, info Info) error {
	data, err := Marshal(info)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Decode parses a property list in any format plist understands
// (XML, binary, OpenStep).
func Decode(data []byte) (*Info, error) {
	var info Info
	if _, err := plist.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("decoding Info.plist: %w", err)
	}
	return &info, nil
}

// Read loads and decodes the property list at path.
func Read(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	info, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return info, nil
}
