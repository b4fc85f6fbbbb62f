package inspect

import (
	"fmt"

	"github.com/tkarabela/ofxbundle/internal/bundle"
	"github.com/tkarabela/ofxbundle/internal/infoplist"
)

// Severity classifies a verification finding.
type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warn"
)

// Issue is a single verification finding.
type Issue struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

func errorf(format string, args ...any) Issue {
	return Issue{Severity: SeverityError, Message: fmt.Sprintf(format, args...)}
}

func warnf(format string, args ...any) Issue {
	return Issue{Severity: SeverityWarn, Message: fmt.Sprintf(format, args...)}
}

// Verify checks bundleDir against the OFX layout. The returned report is nil
// only when the bundle could not be read at all.
func Verify(bundleDir string) (*Report, []Issue) {
	var issues []Issue

	if bundle.NameFromBundle(bundleDir) == "" {
		issues = append(issues, errorf("directory name must end in %s", bundle.BundleExt))
	}

	r, err := Load(bundleDir)
	if err != nil {
		return nil, append(issues, errorf("%v", err))
	}

	if r.Info == nil {
		issues = append(issues, errorf("Info.plist: %s", r.InfoErr))
	} else {
		issues = append(issues, checkInfo(r)...)
	}

	present := 0
	for _, b := range r.Binaries {
		if !b.Known {
			issues = append(issues, warnf("%s is not a recognised OFX architecture directory", b.Platform))
		}
		if !b.Present {
			issues = append(issues, errorf("%s: executable %s missing", b.Platform, b.Path))
			continue
		}
		if b.Size == 0 {
			issues = append(issues, warnf("%s: executable is empty", b.Platform))
		}
		present++
	}
	if present == 0 {
		issues = append(issues, errorf("no architecture directory contains the plugin executable"))
	}

	return r, issues
}

func checkInfo(r *Report) []Issue {
	var issues []Issue
	info := r.Info

	if info.PackageType != infoplist.PackageType {
		issues = append(issues, errorf("CFBundlePackageType is %q, want %q", info.PackageType, infoplist.PackageType))
	}
	if info.Executable == "" {
		issues = append(issues, errorf("CFBundleExecutable is missing"))
	} else if r.Name != "" && info.Executable != r.Name+infoplist.BinaryExt {
		issues = append(issues, warnf("CFBundleExecutable %q does not match bundle name %q", info.Executable, r.Name))
	}
	if info.Version == "" {
		issues = append(issues, warnf("CFBundleVersion is missing"))
	}
	if info.InfoDictionaryVersion == "" {
		issues = append(issues, warnf("CFBundleInfoDictionaryVersion is missing"))
	}
	return issues
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}
