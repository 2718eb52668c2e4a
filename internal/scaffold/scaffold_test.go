package scaffold

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/agentx-labs/tsinit/internal/license"
	"github.com/agentx-labs/tsinit/internal/manifest"
	"github.com/agentx-labs/tsinit/internal/npm"
	"github.com/agentx-labs/tsinit/internal/npm/npmtest"
	"github.com/agentx-labs/tsinit/internal/options"
)

type fixedAuthor string

func (f fixedAuthor) AuthorName(context.Context) string { return string(f) }

func newScaffolder(t *testing.T, runner *npmtest.Runner) (*Scaffolder, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &Scaffolder{
		Runner:   runner,
		Identity: fixedAuthor("Ada Lovelace"),
		Out:      &out,
		BaseDir:  t.TempDir(),
		WorkDir:  t.TempDir(),
		Now:      func() time.Time { return time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC) },
	}, &out
}

func resolve(t *testing.T, raw options.Raw) *options.Options {
	t.Helper()
	opts, err := options.Resolve(raw)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	return opts
}

func TestRunPlainProject(t *testing.T) {
	runner := &npmtest.Runner{Versions: map[string]string{"typescript": "3.2.1"}}
	s, _ := newScaffolder(t, runner)

	result, err := s.Run(context.Background(), resolve(t, options.Raw{Args: []string{"demo"}}))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	root := filepath.Join(s.BaseDir, "demo")
	if result.ProjectDir != root {
		t.Errorf("ProjectDir = %q, want %q", result.ProjectDir, root)
	}

	for _, dir := range []string{"src", "dist", "test"} {
		assertDir(t, filepath.Join(root, dir))
	}
	if _, err := os.Stat(filepath.Join(root, "static")); !os.IsNotExist(err) {
		t.Error("static/ should not exist for a plain project")
	}
	assertFiles(t, result, []string{"package.json", "tsconfig.json", ".gitignore", "LICENSE"})

	pkg, err := manifest.Read(filepath.Join(root, "package.json"))
	if err != nil {
		t.Fatalf("reading package.json: %v", err)
	}
	if pkg.Name != "demo" {
		t.Errorf("name = %q, want demo", pkg.Name)
	}
	if pkg.Author != "Ada Lovelace" {
		t.Errorf("author = %q, want Ada Lovelace", pkg.Author)
	}
	if pkg.License != "Apache-2.0" {
		t.Errorf("license = %q, want Apache-2.0", pkg.License)
	}
	if got := pkg.DevDependencies["typescript"]; got != "^3.2.1" {
		t.Errorf("typescript = %q, want ^3.2.1", got)
	}
	for _, dep := range []string{"tslint", "ava", "rimraf"} {
		if _, ok := pkg.DevDependencies[dep]; !ok {
			t.Errorf("devDependencies missing %s", dep)
		}
	}

	if got := readGenerated(t, root, ".gitignore"); got != "node_modules/\ndist/" {
		t.Errorf(".gitignore = %q", got)
	}

	tsconfig := readGenerated(t, root, "tsconfig.json")
	assertContains(t, tsconfig, `"target": "ES2015"`)
	assertContains(t, tsconfig, `"module": "commonjs"`)

	lic := readGenerated(t, root, "LICENSE")
	assertContains(t, lic, "2019")
	assertContains(t, lic, "Ada Lovelace")

	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
	for _, req := range runner.Requests() {
		if req.Dir != root {
			t.Errorf("install ran in %q, want %q", req.Dir, root)
		}
		if req.DryRun {
			t.Error("real run issued a dry-run install")
		}
	}
}

func TestRunReactParcel(t *testing.T) {
	s, _ := newScaffolder(t, &npmtest.Runner{})
	opts := resolve(t, options.Raw{Args: []string{"demo2"}, React: true, Parcel: true, License: "MIT"})

	result, err := s.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	root := result.ProjectDir

	assertDir(t, filepath.Join(root, "static"))
	assertFiles(t, result, []string{"package.json", "tsconfig.json", ".gitignore", "LICENSE", "static/index.html", "src/app.tsx"})
	if _, err := os.Stat(filepath.Join(root, "webpack.config.js")); !os.IsNotExist(err) {
		t.Error("webpack.config.js should not be written for parcel projects")
	}

	assertContains(t, readGenerated(t, root, "tsconfig.json"), `"module": "es2015"`)
	assertContains(t, readGenerated(t, root, "static/index.html"), `<script src="../src/app.tsx"></script>`)
	assertContains(t, readGenerated(t, root, "src/app.tsx"), "demo2")
	assertContains(t, readGenerated(t, root, "LICENSE"), "MIT License")

	pkg, err := manifest.Read(filepath.Join(root, "package.json"))
	if err != nil {
		t.Fatalf("reading package.json: %v", err)
	}
	if pkg.License != string(license.MIT) {
		t.Errorf("license = %q, want MIT", pkg.License)
	}
	for _, dep := range []string{"react", "react-dom", "react-router", "redux"} {
		if _, ok := pkg.Dependencies[dep]; !ok {
			t.Errorf("dependencies missing %s", dep)
		}
	}
	if _, ok := pkg.DevDependencies["parcel-bundler"]; !ok {
		t.Error("devDependencies missing parcel-bundler")
	}
	if pkg.Scripts["serve"] != "parcel static/index.html" {
		t.Errorf("serve script = %q", pkg.Scripts["serve"])
	}
}

func TestRunReactWebpack(t *testing.T) {
	s, _ := newScaffolder(t, &npmtest.Runner{})
	opts := resolve(t, options.Raw{Args: []string{"web"}, React: true})

	result, err := s.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	webpack := readGenerated(t, result.ProjectDir, "webpack.config.js")
	assertContains(t, webpack, "copy-webpack-plugin")
	assertContains(t, webpack, "./src/app.tsx")
	assertContains(t, readGenerated(t, result.ProjectDir, "static/index.html"), `<script src="./index.js"></script>`)
}

func TestRunKeepsExistingStaticDir(t *testing.T) {
	s, _ := newScaffolder(t, &npmtest.Runner{})
	opts := resolve(t, options.Raw{Args: []string{"web"}, React: true})

	// Simulate a tool that creates static/ during install.
	s.Runner = &staticMaker{Runner: &npmtest.Runner{}, root: filepath.Join(s.BaseDir, "web")}

	if _, err := s.Run(context.Background(), opts); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.BaseDir, "web", "static", "keep.txt")); err != nil {
		t.Errorf("existing static/ contents were lost: %v", err)
	}
}

func TestRunRefusesExistingDirectory(t *testing.T) {
	runner := &npmtest.Runner{}
	s, _ := newScaffolder(t, runner)
	if err := os.Mkdir(filepath.Join(s.BaseDir, "demo"), 0755); err != nil {
		t.Fatal(err)
	}

	_, err := s.Run(context.Background(), resolve(t, options.Raw{Args: []string{"demo"}}))
	if err == nil {
		t.Fatal("expected error for existing directory")
	}
	assertContains(t, err.Error(), "already exists")
	if n := len(runner.Requests()); n != 0 {
		t.Errorf("npm ran %d times before the directory check failed", n)
	}
}

func TestRunDryRun(t *testing.T) {
	runner := &npmtest.Runner{Versions: map[string]string{"typescript": "3.2.1"}}
	s, out := newScaffolder(t, runner)
	opts := resolve(t, options.Raw{Args: []string{"demo"}, DryRun: true, React: true, Parcel: true})

	result, err := s.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !result.DryRun {
		t.Error("Result.DryRun = false")
	}

	entries, err := os.ReadDir(s.BaseDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("dry run created %d entries in the base directory", len(entries))
	}
	if result.Manifest.DevDependencies["typescript"] != "3.2.1" {
		t.Errorf("typescript = %q, want 3.2.1", result.Manifest.DevDependencies["typescript"])
	}
	for _, req := range runner.Requests() {
		if !req.DryRun {
			t.Error("dry run issued a real install")
		}
		if req.Dir != s.WorkDir {
			t.Errorf("dry-run install ran in %q, want %q", req.Dir, s.WorkDir)
		}
	}

	var rep Report
	if err := yaml.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatalf("report is not YAML: %v\n%s", err, out.String())
	}
	if rep.Project != "demo" {
		t.Errorf("report project = %q", rep.Project)
	}
	if rep.PackageJSON == nil || rep.PackageJSON.DevDependencies["parcel-bundler"] == "" {
		t.Errorf("report package.json missing parcel-bundler: %+v", rep.PackageJSON)
	}
	if rep.TSConfig == nil || rep.TSConfig.CompilerOptions.Module != "es2015" {
		t.Errorf("report tsconfig = %+v", rep.TSConfig)
	}
	assertContains(t, strings.Join(rep.Files, ","), "static/index.html")
	assertContains(t, strings.Join(rep.Directories, ","), "static")
}

func TestRunInstallFailure(t *testing.T) {
	s, _ := newScaffolder(t, &npmtest.Runner{Fail: "ava"})

	_, err := s.Run(context.Background(), resolve(t, options.Raw{Args: []string{"demo"}}))
	if err == nil {
		t.Fatal("expected install error")
	}
	assertContains(t, err.Error(), "ava")
	if _, err := os.Stat(filepath.Join(s.BaseDir, "demo", "LICENSE")); !os.IsNotExist(err) {
		t.Error("LICENSE should not be written after a failed install")
	}
}

func TestRunRequiresRunner(t *testing.T) {
	s := &Scaffolder{BaseDir: t.TempDir()}
	if _, err := s.Run(context.Background(), resolve(t, options.Raw{Args: []string{"demo"}})); err == nil {
		t.Error("expected error without a runner")
	}
}

func TestPlannedFiles(t *testing.T) {
	tests := []struct {
		name string
		opts options.Options
		want int
	}{
		{"plain", options.Options{}, 4},
		{"react parcel", options.Options{React: true, Parcel: true}, 6},
		{"react webpack", options.Options{React: true}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := plannedFiles(&tt.opts); len(got) != tt.want {
				t.Errorf("plannedFiles() = %v, want %d files", got, tt.want)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	if got := stateDryRunReport.String(); got != "dry-run-report" {
		t.Errorf("String() = %q", got)
	}
	if got := state(42).String(); got != "state(42)" {
		t.Errorf("String() = %q", got)
	}
}

// --- helpers ---

type staticMaker struct {
	*npmtest.Runner
	root string
}

func (s *staticMaker) Install(ctx context.Context, req npm.InstallRequest) (*npm.Output, error) {
	dir := filepath.Join(s.root, "static")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("keep"), 0644); err != nil {
		return nil, err
	}
	return s.Runner.Install(ctx, req)
}

func assertDir(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory %s: %v", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("%s is not a directory", path)
	}
}

func assertFiles(t *testing.T, result *Result, expected []string) {
	t.Helper()
	got := make(map[string]bool)
	for _, f := range result.Files {
		got[f] = true
	}
	for _, f := range expected {
		if !got[f] {
			t.Errorf("expected file %s in result, got %v", f, result.Files)
		}
		if _, err := os.Stat(filepath.Join(result.ProjectDir, filepath.FromSlash(f))); err != nil {
			t.Errorf("expected %s on disk: %v", f, err)
		}
	}
	if len(result.Files) != len(expected) {
		t.Errorf("got %d files, want %d: %v", len(result.Files), len(expected), result.Files)
	}
}

func readGenerated(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	if err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("expected content to contain %q, got:\n%s", substr, content)
	}
}
