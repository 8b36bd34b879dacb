// Package history models commit history as a lazy, single-pass sequence and
// selects the commit a working tree should be rewound to.
package history

import (
	"fmt"
	"io"
	"time"
)

// DateField selects which commit timestamp is compared.
type DateField string

const (
	// DateCommitter compares committer dates, as git rev-list --before does.
	DateCommitter DateField = "committer"
	// DateAuthor compares author dates.
	DateAuthor DateField = "author"
)

// ParseDateField validates a date field name. Empty selects DateCommitter.
func ParseDateField(s string) (DateField, error) {
	switch DateField(s) {
	case "", DateCommitter:
		return DateCommitter, nil
	case DateAuthor:
		return DateAuthor, nil
	default:
		return "", fmt.Errorf("invalid date field: %s (must be committer or author)", s)
	}
}

// Commit is a read-only record of one commit.
type Commit struct {
	ID        string    `json:"id"`
	Parents   []string  `json:"parents,omitempty"`
	Author    time.Time `json:"author_date"`
	Committer time.Time `json:"committer_date"`
	Subject   string    `json:"subject,omitempty"`
}

// When returns the commit timestamp for the given field.
func (c Commit) When(field DateField) time.Time {
	if field == DateAuthor {
		return c.Author
	}
	return c.Committer
}

// ShortID returns the first 12 characters of the commit ID.
func (c Commit) ShortID() string {
	if len(c.ID) > 12 {
		return c.ID[:12]
	}
	return c.ID
}

// IsRoot reports whether the commit has no parents.
func (c Commit) IsRoot() bool {
	return len(c.Parents) == 0
}

// Iterator produces commits most-recent-first. Next returns io.EOF once the
// history is exhausted. Iterators are not restartable.
type Iterator interface {
	Next() (Commit, error)
	Close() error
}

// SliceIterator iterates over an in-memory history.
type SliceIterator struct {
	commits []Commit
	pos     int
}

// NewSliceIterator returns an iterator over commits in the given order.
func NewSliceIterator(commits []Commit) *SliceIterator {
	return &SliceIterator{commits: commits}
}

// Next returns the next commit or io.EOF.
func (it *SliceIterator) Next() (Commit, error) {
	if it.pos >= len(it.commits) {
		return Commit{}, io.EOF
	}
	c := it.commits[it.pos]
	it.pos++
	return c, nil
}

// Close is a no-op.
func (it *SliceIterator) Close() error {
	return nil
}

var _ Iterator = (*SliceIterator)(nil)
