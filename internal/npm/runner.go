package npm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// DefaultBinary is the npm executable looked up on PATH.
const DefaultBinary = "npm"

// InstallRequest describes one npm install invocation.
type InstallRequest struct {
	// Dir is the working directory. Empty means the current directory.
	Dir      string
	Packages []string
	DryRun   bool
	Dev      bool
}

// Args returns the npm arguments for the request.
func (r InstallRequest) Args() []string {
	args := []string{"install"}
	if r.DryRun {
		args = append(args, "--dry-run")
	}
	if r.Dev {
		args = append(args, "--save-dev")
	}
	return append(args, r.Packages...)
}

// Output captures the result of an npm invocation.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner runs npm install commands.
type Runner interface {
	Install(ctx context.Context, req InstallRequest) (*Output, error)
}

// InstallError reports an install command that exited non-zero.
type InstallError struct {
	Packages []string
	ExitCode int
	Stderr   string
}

func (e *InstallError) Error() string {
	msg := fmt.Sprintf("npm install %s exited with status %d", strings.Join(e.Packages, " "), e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ":\n" + s
	}
	return msg
}

// ExecRunner runs the real npm binary.
type ExecRunner struct {
	// Binary is the npm executable; defaults to DefaultBinary on PATH.
	Binary string
	// Stdout and Stderr receive a copy of the subprocess output when set.
	Stdout io.Writer
	Stderr io.Writer
}

func (r *ExecRunner) binary() (string, error) {
	name := r.Binary
	if name == "" {
		name = DefaultBinary
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("locating npm binary %q: %w", name, err)
	}
	return path, nil
}

// Install runs `npm install` for req and blocks until it exits. A non-zero
// exit is returned as *InstallError together with the captured output.
func (r *ExecRunner) Install(ctx context.Context, req InstallRequest) (*Output, error) {
	out, err := r.run(ctx, req.Dir, req.Args()...)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out, &InstallError{
				Packages: req.Packages,
				ExitCode: exitErr.ExitCode(),
				Stderr:   out.Stderr,
			}
		}
		return out, fmt.Errorf("running npm install: %w", err)
	}
	return out, nil
}

// Version returns the output of `npm --version`.
func (r *ExecRunner) Version(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "", "--version")
	if err != nil {
		return "", fmt.Errorf("running npm --version: %w", err)
	}
	return strings.TrimSpace(out.Stdout), nil
}

func (r *ExecRunner) run(ctx context.Context, dir string, args ...string) (*Output, error) {
	bin, err := r.binary()
	if err != nil {
		return &Output{ExitCode: -1}, err
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = teeTo(&stdoutBuf, r.Stdout)
	cmd.Stderr = teeTo(&stderrBuf, r.Stderr)

	err = cmd.Run()
	out := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}
	if err != nil {
		out.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
		}
		return out, err
	}
	return out, nil
}

func teeTo(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(w, buf)
}
