package npm

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// summaryDropped is the first npm release whose --dry-run output no longer
// lists "+ name@version" lines.
var summaryDropped = semver.MustParse("7.0.0")

// CheckVersion inspects an npm version string and returns a warning when
// dry-run installs on that version cannot report package versions.
func CheckVersion(version string) (string, error) {
	v, err := semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(version), "v"))
	if err != nil {
		return "", fmt.Errorf("parsing npm version %q: %w", version, err)
	}
	if !v.LessThan(summaryDropped) {
		return fmt.Sprintf("npm %s does not print added-package lines during --dry-run; dry-run versions may be empty", v), nil
	}
	return "", nil
}
