package rewind

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spiffcs/checkout-ago/internal/history"
	"github.com/spiffcs/checkout-ago/internal/timephrase"
	"github.com/spiffcs/checkout-ago/internal/vcs"
)

var now = time.Date(2024, time.March, 31, 12, 0, 0, 0, time.UTC)

// fakeRepo serves a fixed history and records checkouts.
type fakeRepo struct {
	commits     []history.Commit
	headErr     error
	checkoutErr error
	checkedOut  []string
	logFrom     string
	closed      bool
}

func (f *fakeRepo) Head(_ context.Context) (history.Commit, error) {
	if f.headErr != nil {
		return history.Commit{}, f.headErr
	}
	return f.commits[0], nil
}

func (f *fakeRepo) Log(_ context.Context, from string) (history.Iterator, error) {
	f.logFrom = from
	return &trackingIterator{SliceIterator: history.NewSliceIterator(f.commits), repo: f}, nil
}

func (f *fakeRepo) Checkout(_ context.Context, id string) error {
	if f.checkoutErr != nil {
		return &vcs.CheckoutError{ID: id, Reason: f.checkoutErr.Error(), Err: f.checkoutErr}
	}
	f.checkedOut = append(f.checkedOut, id)
	return nil
}

type trackingIterator struct {
	*history.SliceIterator
	repo *fakeRepo
}

func (t *trackingIterator) Close() error {
	t.repo.closed = true
	return nil
}

var _ vcs.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{commits: []history.Commit{
		{ID: "head", Committer: now.Add(-time.Hour), Author: now.Add(-time.Hour)},
		{ID: "week", Committer: now.AddDate(0, 0, -7), Author: now.AddDate(0, 0, -7)},
		{ID: "feb", Committer: time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC), Author: time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)},
		{ID: "root", Committer: time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC), Author: time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)},
	}}
}

func clock() time.Time { return now }

func TestPlan(t *testing.T) {
	tests := []struct {
		phrase string
		want   string
	}{
		{"0 seconds", "head"},
		{"30m", "head"},
		{"2 days", "week"},
		{"1 month", "feb"},
		{"3 months", "root"},
		{"1 week extra words", "week"},
	}

	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			repo := newFakeRepo()
			svc := NewService(repo, WithClock(clock))

			plan, err := svc.Plan(context.Background(), tt.phrase)
			if err != nil {
				t.Fatalf("Plan(%q) error: %v", tt.phrase, err)
			}
			if plan.Target.ID != tt.want {
				t.Errorf("Plan(%q).Target = %s, want %s", tt.phrase, plan.Target.ID, tt.want)
			}
			if plan.Current.ID != "head" {
				t.Errorf("Plan(%q).Current = %s, want head", tt.phrase, plan.Current.ID)
			}
			if repo.logFrom != "head" {
				t.Errorf("Log started from %q, want head", repo.logFrom)
			}
			if !repo.closed {
				t.Error("history iterator was not closed")
			}
			if len(repo.checkedOut) != 0 {
				t.Errorf("Plan must not check out, got %v", repo.checkedOut)
			}
		})
	}
}

func TestPlanInstant(t *testing.T) {
	svc := NewService(newFakeRepo(), WithClock(clock))

	plan, err := svc.Plan(context.Background(), "1 month")
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	want := time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC)
	if !plan.Instant.Equal(want) {
		t.Errorf("Instant = %v, want %v", plan.Instant, want)
	}
	if !plan.Now.Equal(now) {
		t.Errorf("Now = %v, want %v", plan.Now, now)
	}
	if plan.Parsed.String() != "1 month" {
		t.Errorf("Parsed = %q", plan.Parsed.String())
	}
	if plan.Scanned != 3 {
		t.Errorf("Scanned = %d, want 3", plan.Scanned)
	}
}

func TestPlanErrors(t *testing.T) {
	t.Run("parse error", func(t *testing.T) {
		_, err := NewService(newFakeRepo(), WithClock(clock)).Plan(context.Background(), "banana")
		if !errors.Is(err, timephrase.ErrParse) {
			t.Errorf("error = %v, want ErrParse", err)
		}
	})

	t.Run("no matching commit", func(t *testing.T) {
		_, err := NewService(newFakeRepo(), WithClock(clock)).Plan(context.Background(), "2 years")
		if !errors.Is(err, history.ErrNoMatchingCommit) {
			t.Errorf("error = %v, want ErrNoMatchingCommit", err)
		}
	})

	t.Run("empty repository", func(t *testing.T) {
		repo := newFakeRepo()
		repo.headErr = vcs.ErrNoCommits
		_, err := NewService(repo, WithClock(clock)).Plan(context.Background(), "1 day")
		if !errors.Is(err, vcs.ErrNoCommits) {
			t.Errorf("error = %v, want ErrNoCommits", err)
		}
	})
}

func TestPlanDateField(t *testing.T) {
	repo := &fakeRepo{commits: []history.Commit{
		{ID: "rebased", Author: now.AddDate(0, 0, -10), Committer: now.Add(-time.Minute)},
		{ID: "older", Author: now.AddDate(0, 0, -5), Committer: now.AddDate(0, 0, -5)},
	}}

	plan, err := NewService(repo, WithClock(clock)).Plan(context.Background(), "1 day")
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if plan.Target.ID != "older" {
		t.Errorf("committer date: Target = %s, want older", plan.Target.ID)
	}

	plan, err = NewService(repo, WithClock(clock), WithDateField(history.DateAuthor)).Plan(context.Background(), "1 day")
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if plan.Target.ID != "rebased" {
		t.Errorf("author date: Target = %s, want rebased", plan.Target.ID)
	}
	if plan.Field != history.DateAuthor {
		t.Errorf("Field = %s, want author", plan.Field)
	}
}

func TestPlanCalendarFirst(t *testing.T) {
	repo := &fakeRepo{commits: []history.Commit{
		{ID: "head", Committer: now},
		{ID: "feb29", Committer: time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)},
		{ID: "feb28", Committer: time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC)},
	}}

	plan, err := NewService(repo, WithClock(clock)).Plan(context.Background(), "1 month 1 day")
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if plan.Target.ID != "feb29" {
		t.Errorf("fixed first: Target = %s, want feb29", plan.Target.ID)
	}

	svc := NewService(repo, WithClock(clock), WithResolver(timephrase.Resolver{CalendarFirst: true}))
	plan, err = svc.Plan(context.Background(), "1 month 1 day")
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if plan.Target.ID != "feb28" {
		t.Errorf("calendar first: Target = %s, want feb28", plan.Target.ID)
	}
}

func TestExecute(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, WithClock(clock))

	plan, err := svc.Plan(context.Background(), "2 days")
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if err := svc.Execute(context.Background(), plan); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(repo.checkedOut) != 1 || repo.checkedOut[0] != "week" {
		t.Errorf("checked out %v, want [week]", repo.checkedOut)
	}
}

func TestExecuteCurrentCommit(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, WithClock(clock))

	plan, err := svc.Plan(context.Background(), "1 minute")
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if !plan.AlreadyThere() {
		t.Fatal("AlreadyThere() = false, want true")
	}
	if err := svc.Execute(context.Background(), plan); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(repo.checkedOut) != 1 || repo.checkedOut[0] != "head" {
		t.Errorf("checked out %v, want [head]", repo.checkedOut)
	}
}

func TestExecuteCheckoutFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.checkoutErr = errors.New("your local changes would be overwritten")
	svc := NewService(repo, WithClock(clock))

	plan, err := svc.Plan(context.Background(), "2 days")
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}

	err = svc.Execute(context.Background(), plan)
	var coErr *vcs.CheckoutError
	if !errors.As(err, &coErr) {
		t.Fatalf("Execute() error = %v, want *vcs.CheckoutError", err)
	}
	if coErr.Reason != "your local changes would be overwritten" {
		t.Errorf("Reason = %q, want collaborator message unchanged", coErr.Reason)
	}
}
