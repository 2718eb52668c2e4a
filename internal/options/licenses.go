package options

import (
	"fmt"
	"strings"

	"github.com/agentx-labs/tsinit/internal/license"
)

// LicenseChoices are the values advertised by the --license flag.
var LicenseChoices = []string{"BSD-2", "BSD-3", "MIT", "Eclipse"}

var licenseAliases = map[string]license.ID{
	"apache": license.Apache2,
	"bsd-2":  license.BSD2,
	"bsd-3":  license.BSD3,
	"mit":    license.MIT,
}

// ValidLicenseChoice reports whether s is accepted by the --license flag.
// Canonical SPDX identifiers are accepted as well so config defaults can use
// them.
func ValidLicenseChoice(s string) bool {
	for _, c := range LicenseChoices {
		if strings.EqualFold(c, s) {
			return true
		}
	}
	_, ok := license.Lookup(s)
	return ok
}

// ParseLicense maps a --license value to a supported license.
// Eclipse passes flag validation but has no template.
func ParseLicense(s string) (license.ID, error) {
	if s == "" {
		return license.Default, nil
	}
	if id, ok := licenseAliases[strings.ToLower(s)]; ok {
		return id, nil
	}
	if id, ok := license.Lookup(s); ok {
		return id, nil
	}
	if strings.EqualFold(s, "Eclipse") {
		return "", &InputError{Field: "license", Value: s, Reason: "Eclipse is not yet supported"}
	}
	return "", &InputError{
		Field:  "license",
		Value:  s,
		Reason: fmt.Sprintf("must be one of %v", LicenseChoices),
	}
}
