// Package gogit implements vcs.Repository on top of go-git, without
// requiring a git executable.
package gogit

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/spiffcs/checkout-ago/internal/history"
	"github.com/spiffcs/checkout-ago/internal/log"
	"github.com/spiffcs/checkout-ago/internal/vcs"
)

// Repo is a go-git backed repository.
type Repo struct {
	repo *git.Repository
}

// Open opens the repository containing path, searching parent directories
// for the .git directory.
func Open(path string) (*Repo, error) {
	r, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", path, err)
	}
	return New(r), nil
}

// New wraps an already opened go-git repository.
func New(r *git.Repository) *Repo {
	return &Repo{repo: r}
}

// Head returns the currently checked out commit.
func (r *Repo) Head(_ context.Context) (history.Commit, error) {
	ref, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return history.Commit{}, vcs.ErrNoCommits
	}
	if err != nil {
		return history.Commit{}, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	c, err := r.repo.CommitObject(ref.Hash())
	if err != nil {
		return history.Commit{}, fmt.Errorf("failed to read HEAD commit %s: %w", ref.Hash(), err)
	}
	return toCommit(c), nil
}

// Log walks history from the given revision in committer-time order, which
// is the order git rev-list uses by default.
func (r *Repo) Log(ctx context.Context, from string) (history.Iterator, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(from))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve revision %s: %w", from, err)
	}

	log.Debug("walking history", "backend", "gogit", "from", hash.String())

	iter, err := r.repo.Log(&git.LogOptions{
		From:  *hash,
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read history from %s: %w", from, err)
	}
	return &commitIter{ctx: ctx, iter: iter}, nil
}

// ErrLocalChanges is returned when a checkout would discard staged work or
// overwrite untracked files.
var ErrLocalChanges = errors.New("your local changes would be overwritten by checkout")

// Checkout detaches HEAD at id. It refuses, as git does, when the worktree
// has staged or unstaged changes to tracked files, or untracked files that
// the target commit tracks.
func (r *Repo) Checkout(_ context.Context, id string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return &vcs.CheckoutError{ID: id, Reason: err.Error(), Err: err}
	}

	target, err := r.repo.CommitObject(plumbing.NewHash(id))
	if err != nil {
		return &vcs.CheckoutError{ID: id, Reason: err.Error(), Err: err}
	}
	if err := checkLocalChanges(wt, target); err != nil {
		return &vcs.CheckoutError{ID: id, Reason: err.Error(), Err: err}
	}

	log.Debug("checking out", "backend", "gogit", "commit", id)

	if err := wt.Checkout(&git.CheckoutOptions{Hash: target.Hash}); err != nil {
		return &vcs.CheckoutError{ID: id, Reason: err.Error(), Err: err}
	}
	return nil
}

// checkLocalChanges covers what go-git's own check misses: it only refuses
// unstaged edits, and resets staged ones and tracked-to-be files silently.
func checkLocalChanges(wt *git.Worktree, target *object.Commit) error {
	status, err := wt.Status()
	if err != nil {
		return fmt.Errorf("failed to read worktree status: %w", err)
	}

	var paths []string
	for path, s := range status {
		if s.Staging == git.Untracked {
			if _, err := target.File(path); err == nil {
				paths = append(paths, path)
			}
			continue
		}
		if s.Staging != git.Unmodified || s.Worktree != git.Unmodified {
			paths = append(paths, path)
		}
	}
	if len(paths) == 0 {
		return nil
	}

	sort.Strings(paths)
	log.Debug("refusing checkout", "backend", "gogit", "paths", paths)
	return fmt.Errorf("%w: %s", ErrLocalChanges, strings.Join(paths, ", "))
}

type commitIter struct {
	ctx  context.Context
	iter object.CommitIter
}

// Next returns io.EOF unchanged when go-git runs out of commits.
func (it *commitIter) Next() (history.Commit, error) {
	if err := it.ctx.Err(); err != nil {
		return history.Commit{}, err
	}
	c, err := it.iter.Next()
	if err != nil {
		return history.Commit{}, err
	}
	log.Trace("read commit", "id", c.Hash.String(), "committer", c.Committer.When)
	return toCommit(c), nil
}

func (it *commitIter) Close() error {
	it.iter.Close()
	return nil
}

func toCommit(c *object.Commit) history.Commit {
	parents := make([]string, len(c.ParentHashes))
	for i, p := range c.ParentHashes {
		parents[i] = p.String()
	}

	subject, _, _ := strings.Cut(c.Message, "\n")

	return history.Commit{
		ID:        c.Hash.String(),
		Parents:   parents,
		Author:    c.Author.When,
		Committer: c.Committer.When,
		Subject:   strings.TrimSpace(subject),
	}
}

var _ vcs.Repository = (*Repo)(nil)
