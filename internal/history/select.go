package history

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrNoMatchingCommit is returned when every commit in the history is newer
// than the requested instant.
var ErrNoMatchingCommit = errors.New("no commit found before the given time")

// Selection is the outcome of a successful Select.
type Selection struct {
	Commit  Commit
	Scanned int // commits read, including the match
}

// Select walks it in traversal order and returns the first commit whose
// timestamp is at or before instant. Traversal order wins over timestamp
// order: a commit with a skewed timestamp is accepted if it is the first
// to qualify. The walk stops at the first match.
func Select(it Iterator, instant time.Time, field DateField) (Selection, error) {
	scanned := 0
	for {
		c, err := it.Next()
		if errors.Is(err, io.EOF) {
			return Selection{Scanned: scanned}, fmt.Errorf("%w: %s predates all %d commits in history",
				ErrNoMatchingCommit, instant.Format(time.RFC3339), scanned)
		}
		if err != nil {
			return Selection{Scanned: scanned}, fmt.Errorf("failed to read history: %w", err)
		}
		scanned++

		if !c.When(field).After(instant) {
			return Selection{Commit: c, Scanned: scanned}, nil
		}
	}
}
