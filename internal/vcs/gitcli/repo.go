// Package gitcli implements vcs.Repository by running the git executable.
package gitcli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/spiffcs/checkout-ago/internal/history"
	"github.com/spiffcs/checkout-ago/internal/log"
	"github.com/spiffcs/checkout-ago/internal/vcs"
)

// Repo runs git commands against a working tree.
type Repo struct {
	dir string
	git string
}

// Open locates the git executable and verifies dir is inside a repository.
func Open(ctx context.Context, dir string) (*Repo, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return nil, fmt.Errorf("git executable not found: %w", err)
	}

	r := &Repo{dir: dir, git: gitPath}
	if _, err := r.run(ctx, "rev-parse", "--git-dir"); err != nil {
		return nil, fmt.Errorf("not a git repository: %s: %w", dir, err)
	}
	return r, nil
}

// Head returns the currently checked out commit.
func (r *Repo) Head(ctx context.Context) (history.Commit, error) {
	id, err := r.run(ctx, "rev-parse", "--verify", "--quiet", "HEAD^{commit}")
	// With --quiet an unborn branch exits 1 without output.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return history.Commit{}, vcs.ErrNoCommits
	}
	if err != nil {
		return history.Commit{}, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	out, err := r.run(ctx, "log", "-1", "--no-color", "--format="+logFormat, id, "--")
	if err != nil {
		return history.Commit{}, fmt.Errorf("failed to read HEAD commit %s: %w", id, err)
	}
	return parseLogLine(out)
}

// Log streams git log from the given revision. Commits are parsed as git
// produces them; closing the iterator early stops the git process.
func (r *Repo) Log(ctx context.Context, from string) (history.Iterator, error) {
	args := r.args("log", "--no-color", "--format="+logFormat, from, "--")
	log.Debug("walking history", "backend", "gitcli", "args", strings.Join(args, " "))

	it, err := startLog(exec.CommandContext(ctx, r.git, args...))
	if err != nil {
		return nil, err
	}
	return it, nil
}

// Checkout detaches HEAD at id. git's own refusal (for example local
// changes that would be overwritten) becomes the CheckoutError reason.
func (r *Repo) Checkout(ctx context.Context, id string) error {
	log.Debug("checking out", "backend", "gitcli", "commit", id)

	if _, err := r.run(ctx, "checkout", "--quiet", "--detach", id); err != nil {
		reason := ""
		var runErr *runError
		if errors.As(err, &runErr) {
			reason = runErr.stderr
		}
		return &vcs.CheckoutError{ID: id, Reason: reason, Err: err}
	}
	return nil
}

func (r *Repo) args(args ...string) []string {
	return append([]string{"-C", r.dir}, args...)
}

// run executes git and returns trimmed stdout.
func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, r.git, r.args(args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Trace("running git", "args", strings.Join(args, " "))

	if err := cmd.Run(); err != nil {
		return strings.TrimSpace(stdout.String()), &runError{
			args:   args,
			stderr: strings.TrimSpace(stderr.String()),
			err:    err,
		}
	}
	return strings.TrimSpace(stdout.String()), nil
}

// runError carries git's stderr alongside the exit status.
type runError struct {
	args   []string
	stderr string
	err    error
}

func (e *runError) Error() string {
	if e.stderr == "" {
		return fmt.Sprintf("git %s: %v", strings.Join(e.args, " "), e.err)
	}
	return fmt.Sprintf("git %s: %v (stderr: %s)", strings.Join(e.args, " "), e.err, e.stderr)
}

func (e *runError) Unwrap() error {
	return e.err
}

var _ vcs.Repository = (*Repo)(nil)
