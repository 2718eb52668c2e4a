package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"text/template"
)

//go:embed templates/*
var templateFS embed.FS

// TemplateData holds the variables available to project templates.
type TemplateData struct {
	Name   string
	Author string
	Year   int
	Parcel bool
	Mobx   bool
	Tool   string
}

// file is one generated file: its path relative to the project root and the
// embedded template it is rendered from.
type file struct {
	Path     string
	Template string
}

var (
	gitignoreFile = file{Path: ".gitignore", Template: "gitignore"}
	indexFile     = file{Path: "static/index.html", Template: "index.html.tmpl"}
	appFile       = file{Path: "src/app.tsx", Template: "app.tsx.tmpl"}
	webpackFile   = file{Path: "webpack.config.js", Template: "webpack.config.js.tmpl"}
)

// render executes the named embedded template with data.
func render(name string, data *TemplateData) ([]byte, error) {
	tmplPath := path.Join("templates", name)
	raw, err := templateFS.ReadFile(tmplPath)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", tmplPath, err)
	}

	tmpl, err := template.New(name).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
