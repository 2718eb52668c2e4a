// Package license renders the LICENSE file for a scaffolded project. Each
// supported license is an embedded text template stamped with the copyright
// year and the author name.
package license

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed texts/*.txt
var textFS embed.FS

// ID is an SPDX license identifier.
type ID string

// Supported licenses.
const (
	Apache2 ID = "Apache-2.0"
	BSD2    ID = "BSD-2-Clause"
	BSD3    ID = "BSD-3-Clause"
	MIT     ID = "MIT"
)

// Default is used when no license is requested.
const Default = Apache2

// Template renders license text for a copyright year and holder.
type Template func(year int, author string) string

// IDs returns every supported license in display order.
func IDs() []ID {
	return []ID{Apache2, BSD2, BSD3, MIT}
}

// Lookup matches name against the supported SPDX identifiers, ignoring case.
func Lookup(name string) (ID, bool) {
	for _, id := range IDs() {
		if strings.EqualFold(string(id), name) {
			return id, true
		}
	}
	return "", false
}

// For returns the template for id.
func For(id ID) (Template, error) {
	raw, err := textFS.ReadFile("texts/" + string(id) + ".txt")
	if err != nil {
		return nil, fmt.Errorf("no license template for %q", id)
	}
	tmpl, err := template.New(string(id)).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing license template %s: %w", id, err)
	}

	return func(year int, author string) string {
		var buf bytes.Buffer
		data := struct {
			Year   int
			Author string
		}{year, author}
		// The templates only reference Year and Author, so Execute cannot fail
		// on well-formed data.
		_ = tmpl.Execute(&buf, data)
		return buf.String()
	}, nil
}
