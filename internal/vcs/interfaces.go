// Package vcs defines the version-control operations checkout-ago relies on.
// Implementations live in the gogit and gitcli subpackages.
package vcs

import (
	"context"
	"errors"
	"fmt"

	"github.com/spiffcs/checkout-ago/internal/history"
)

// Repository is the version-control collaborator.
type Repository interface {
	// Head returns the commit the working tree is checked out at.
	Head(ctx context.Context) (history.Commit, error)

	// Log returns the history reachable from the commit id, most recent
	// first. Callers must Close the iterator.
	Log(ctx context.Context, from string) (history.Iterator, error)

	// Checkout moves the working tree to the commit id, detaching HEAD.
	// Failures are reported as *CheckoutError.
	Checkout(ctx context.Context, id string) error
}

// ErrNoCommits is returned by Head for a repository without commits.
var ErrNoCommits = errors.New("repository has no commits")

// CheckoutError wraps a failed checkout. Reason is the collaborator's own
// message, unmodified.
type CheckoutError struct {
	ID     string
	Reason string
	Err    error
}

func (e *CheckoutError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("git checkout %s failed: %v", e.ID, e.Err)
	}
	return fmt.Sprintf("git checkout %s failed: %s", e.ID, e.Reason)
}

func (e *CheckoutError) Unwrap() error {
	return e.Err
}
