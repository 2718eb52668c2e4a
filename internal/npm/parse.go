package npm

import (
	"regexp"
	"strings"
)

// Record is a package name and version found in install output.
type Record struct {
	Name    string
	Version string
}

// addedMarker prefixes each added-package line in the npm install summary.
const addedMarker = "+"

// packagePattern matches "(@scope/)?name@1.2.3". The scope is part of the
// name; the version is the numeric suffix after the final "@".
var packagePattern = regexp.MustCompile(`(?P<name>(?:@[\w.-]+/)?\w[\w.-]*)@(?P<version>\d+(?:\.\d+)*)`)

// ParseInstallOutput extracts a Record from every added-package line in the
// stdout of an install invocation. Lines that do not match are skipped.
func ParseInstallOutput(stdout string) []Record {
	var records []Record
	for _, line := range strings.Split(stdout, "\n") {
		if rec, ok := ParseLine(line); ok {
			records = append(records, rec)
		}
	}
	return records
}

// ParseLine parses a single line of install output.
func ParseLine(line string) (Record, bool) {
	line = strings.TrimRight(line, "\r")
	if !strings.HasPrefix(line, addedMarker) {
		return Record{}, false
	}
	m := packagePattern.FindStringSubmatch(line)
	if m == nil {
		return Record{}, false
	}
	return Record{
		Name:    m[packagePattern.SubexpIndex("name")],
		Version: m[packagePattern.SubexpIndex("version")],
	}, true
}

// PackageName strips a version or range suffix from a package specifier:
// "react@16" becomes "react" and "@types/react@^16" becomes "@types/react".
func PackageName(spec string) string {
	if idx := strings.LastIndex(spec, "@"); idx > 0 {
		return spec[:idx]
	}
	return spec
}
