package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/agentx-labs/tsinit/internal/branding"
	"github.com/agentx-labs/tsinit/internal/license"
	"github.com/agentx-labs/tsinit/internal/manifest"
	"github.com/agentx-labs/tsinit/internal/npm"
	"github.com/agentx-labs/tsinit/internal/options"
	"github.com/agentx-labs/tsinit/internal/pipeline"
)

// Project subdirectories created for every project.
var projectDirs = []string{"src", "dist", "test"}

// staticDir holds the page served by the bundler in React projects.
const staticDir = "static"

// LicenseFileName is the generated license file.
const LicenseFileName = "LICENSE"

// Scaffolder creates projects from resolved options.
type Scaffolder struct {
	Runner   npm.Runner
	Identity pipeline.AuthorSource
	// Notify receives progress lines; nil disables them.
	Notify pipeline.Notifier
	// Out receives the dry-run report; defaults to os.Stdout.
	Out    io.Writer
	Logger *slog.Logger
	// BaseDir is the parent of the project directory; empty means the
	// current directory.
	BaseDir string
	// WorkDir is where dry-run installs run; empty means the current
	// directory.
	WorkDir string
	// Now supplies the license year; defaults to time.Now.
	Now func() time.Time
}

// Result describes a completed scaffold run.
type Result struct {
	ProjectDir string
	// Files lists generated files relative to ProjectDir. In dry-run mode
	// these are the files that would have been written.
	Files    []string
	Warnings []string
	Manifest *manifest.Manifest
	TSConfig *manifest.TSConfig
	DryRun   bool
}

type state int

const (
	stateCreateManifest state = iota
	stateDryRunReport
	statePersistProject
	stateTerminal
)

func (s state) String() string {
	switch s {
	case stateCreateManifest:
		return "create-manifest"
	case stateDryRunReport:
		return "dry-run-report"
	case statePersistProject:
		return "persist-project"
	case stateTerminal:
		return "terminal"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// run carries the data handed from one state to the next.
type run struct {
	opts   *options.Options
	root   string
	result *Result
}

// Run scaffolds the project described by opts. Real runs create the project
// directory before anything is installed and fail if it already exists.
// Nothing is rolled back on failure.
func (s *Scaffolder) Run(ctx context.Context, opts *options.Options) (*Result, error) {
	if opts == nil {
		return nil, errors.New("scaffold: nil options")
	}
	if s.Runner == nil {
		return nil, errors.New("scaffold: no npm runner configured")
	}

	root := filepath.Join(s.BaseDir, opts.ProjectName)
	r := &run{
		opts: opts,
		root: root,
		result: &Result{
			ProjectDir: root,
			DryRun:     opts.DryRun,
		},
	}

	if !opts.DryRun {
		if err := s.prepare(r); err != nil {
			return nil, err
		}
	}

	for st := stateCreateManifest; st != stateTerminal; {
		s.logger().Debug("scaffold state", "state", st, "project", opts.ProjectName)
		next, err := s.transition(ctx, st, r)
		if err != nil {
			return nil, err
		}
		st = next
	}
	return r.result, nil
}

func (s *Scaffolder) transition(ctx context.Context, st state, r *run) (state, error) {
	switch st {
	case stateCreateManifest:
		if err := s.createManifest(ctx, r); err != nil {
			return stateTerminal, err
		}
		if r.opts.DryRun {
			return stateDryRunReport, nil
		}
		return statePersistProject, nil
	case stateDryRunReport:
		return stateTerminal, s.report(r)
	case statePersistProject:
		return stateTerminal, s.persist(r)
	default:
		return stateTerminal, fmt.Errorf("scaffold: unexpected state %s", st)
	}
}

// prepare creates the project root and its fixed subdirectories, and seeds a
// package.json so npm installs into the project rather than a parent.
func (s *Scaffolder) prepare(r *run) error {
	s.notify("Creating folders")
	if err := os.Mkdir(r.root, 0755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("project directory %s already exists", r.root)
		}
		return fmt.Errorf("creating project directory %s: %w", r.root, err)
	}
	for _, dir := range projectDirs {
		p := filepath.Join(r.root, dir)
		if err := os.Mkdir(p, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", p, err)
		}
	}

	seed := manifest.New()
	seed.Name = r.opts.ProjectName
	return seed.Write(filepath.Join(r.root, manifest.FileName))
}

func (s *Scaffolder) createManifest(ctx context.Context, r *run) error {
	s.notify("Setting up package.json file")
	builder := &pipeline.Builder{
		Applier:  pipeline.NewApplier(r.opts.DryRun, s.Runner, r.root, s.WorkDir, s.Logger),
		Identity: s.Identity,
		Notify:   s.Notify,
	}
	m, err := builder.Build(ctx, r.opts)
	if err != nil {
		return err
	}

	tsconfig, err := manifest.DefaultTSConfig()
	if err != nil {
		return err
	}
	tsconfig.Patch(string(r.opts.Target), string(r.opts.Module))

	r.result.Manifest = m
	r.result.TSConfig = tsconfig
	r.result.Files = plannedFiles(r.opts)

	s.validate(r.result, manifest.PackageDocument, manifest.FileName, m.Encode)
	s.validate(r.result, manifest.TSConfigDocument, manifest.TSConfigFileName, tsconfig.Encode)
	return nil
}

// validate appends schema issues for a generated document to the warnings.
func (s *Scaffolder) validate(res *Result, doc manifest.Document, name string, encode func() ([]byte, error)) {
	data, err := encode()
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("could not encode %s: %v", name, err))
		return
	}
	vr, err := manifest.Validate(doc, data)
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("could not validate %s: %v", name, err))
		return
	}
	for _, issue := range vr.Issues {
		res.Warnings = append(res.Warnings, name+": "+issue.String())
	}
	if !vr.Valid {
		s.logger().Warn("generated document failed schema validation", "file", name, "issues", len(vr.Issues))
	}
}

// plannedFiles lists the files a run writes, relative to the project root.
func plannedFiles(opts *options.Options) []string {
	files := []string{manifest.FileName, manifest.TSConfigFileName, gitignoreFile.Path, LicenseFileName}
	if opts.React {
		files = append(files, indexFile.Path, appFile.Path)
		if !opts.Parcel {
			files = append(files, webpackFile.Path)
		}
	}
	return files
}

// Report is the dry-run summary.
type Report struct {
	Project     string             `yaml:"project"`
	Directory   string             `yaml:"directory"`
	PackageJSON *manifest.Manifest `yaml:"package.json"`
	TSConfig    *manifest.TSConfig `yaml:"tsconfig.json"`
	Directories []string           `yaml:"directories"`
	Files       []string           `yaml:"files"`
	Warnings    []string           `yaml:"warnings,omitempty"`
}

func (s *Scaffolder) report(r *run) error {
	dirs := append([]string{}, projectDirs...)
	if r.opts.React {
		dirs = append(dirs, staticDir)
	}
	rep := Report{
		Project:     r.opts.ProjectName,
		Directory:   r.root,
		PackageJSON: r.result.Manifest,
		TSConfig:    r.result.TSConfig,
		Directories: dirs,
		Files:       r.result.Files,
		Warnings:    r.result.Warnings,
	}

	out := s.Out
	if out == nil {
		out = os.Stdout
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("writing dry-run report: %w", err)
	}
	return enc.Close()
}

func (s *Scaffolder) persist(r *run) error {
	opts, m := r.opts, r.result.Manifest

	s.notify("Writing " + manifest.FileName)
	if err := m.Write(filepath.Join(r.root, manifest.FileName)); err != nil {
		return err
	}
	s.notify("Writing " + manifest.TSConfigFileName)
	if err := r.result.TSConfig.Write(filepath.Join(r.root, manifest.TSConfigFileName)); err != nil {
		return err
	}

	data := &TemplateData{
		Name:   opts.ProjectName,
		Author: m.Author,
		Year:   s.now().Year(),
		Parcel: opts.Parcel,
		Mobx:   opts.Mobx,
		Tool:   branding.CLIName(),
	}
	if err := writeTemplate(r.root, gitignoreFile, data); err != nil {
		return err
	}

	s.notify("Writing " + LicenseFileName)
	tmpl, err := license.For(opts.License)
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(r.root, LicenseFileName), []byte(tmpl(data.Year, data.Author))); err != nil {
		return err
	}

	if !opts.React {
		return nil
	}

	static := filepath.Join(r.root, staticDir)
	if _, err := os.Stat(static); errors.Is(err, fs.ErrNotExist) {
		if err := os.Mkdir(static, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", static, err)
		}
	}
	files := []file{indexFile, appFile}
	if !opts.Parcel {
		files = append(files, webpackFile)
	}
	for _, f := range files {
		s.notify("Writing " + f.Path)
		if err := writeTemplate(r.root, f, data); err != nil {
			return err
		}
	}
	return nil
}

func writeTemplate(root string, f file, data *TemplateData) error {
	content, err := render(f.Template, data)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(root, filepath.FromSlash(f.Path)), content)
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (s *Scaffolder) notify(msg string) {
	if s.Notify != nil {
		s.Notify.Step(msg)
	}
}

func (s *Scaffolder) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

func (s *Scaffolder) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
