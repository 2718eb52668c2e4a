// Package identity looks up the author name recorded in the user's global
// git configuration.
package identity

import (
	"context"
	"log/slog"
	"os/exec"
	"strings"
)

// CommandFunc runs name with args and returns its standard output.
type CommandFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Resolver resolves the author name.
type Resolver struct {
	// Run executes the lookup command; defaults to os/exec.
	Run    CommandFunc
	Logger *slog.Logger
}

func execCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// AuthorName returns `git config --global user.name`. Lookup failures are
// logged and yield an empty name.
func (r *Resolver) AuthorName(ctx context.Context) string {
	run := r.Run
	if run == nil {
		run = execCommand
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	out, err := run(ctx, "git", "config", "--global", "user.name")
	if err != nil {
		logger.Warn("could not get name from git config --global", "error", err)
		return ""
	}
	name := strings.TrimSpace(string(out))
	if name == "" {
		logger.Warn("git config --global user.name is empty")
	}
	return name
}
