// Package rewind ties phrase resolution, history selection and checkout
// together into a single jump.
package rewind

import (
	"context"
	"fmt"
	"time"

	"github.com/spiffcs/checkout-ago/internal/history"
	"github.com/spiffcs/checkout-ago/internal/log"
	"github.com/spiffcs/checkout-ago/internal/timephrase"
	"github.com/spiffcs/checkout-ago/internal/vcs"
)

// Plan describes a jump before it is executed.
type Plan struct {
	Phrase  string            `json:"phrase"`
	Parsed  timephrase.Phrase `json:"-"`
	Now     time.Time         `json:"now"`
	Instant time.Time         `json:"instant"`
	Field   history.DateField `json:"date_field"`
	Current history.Commit    `json:"current"`
	Target  history.Commit    `json:"target"`
	Scanned int               `json:"scanned"`
}

// AlreadyThere reports whether the target is the current commit.
func (p *Plan) AlreadyThere() bool {
	return p.Current.ID == p.Target.ID
}

// Service plans and executes jumps against one repository.
type Service struct {
	repo     vcs.Repository
	resolver timephrase.Resolver
	field    history.DateField
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithResolver sets the phrase resolver.
func WithResolver(r timephrase.Resolver) Option {
	return func(s *Service) {
		s.resolver = r
	}
}

// WithDateField sets which commit date is compared.
func WithDateField(field history.DateField) Option {
	return func(s *Service) {
		s.field = field
	}
}

// WithClock overrides the reference instant, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a Service. Phrases resolve against the local clock and
// compare committer dates unless overridden.
func NewService(repo vcs.Repository, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		field: history.DateCommitter,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Plan resolves phrase and selects the commit to jump to. It reads the
// repository but does not modify it.
func (s *Service) Plan(ctx context.Context, phrase string) (*Plan, error) {
	parsed, err := timephrase.Parse(phrase)
	if err != nil {
		return nil, err
	}
	return s.PlanParsed(ctx, phrase, parsed)
}

// PlanParsed is Plan for a phrase the caller has already parsed.
func (s *Service) PlanParsed(ctx context.Context, phrase string, parsed timephrase.Phrase) (*Plan, error) {
	now := s.now()
	instant, err := s.resolver.Apply(parsed, now)
	if err != nil {
		return nil, err
	}
	log.Info("resolved time phrase", "phrase", parsed.String(), "instant", instant.Format(time.RFC3339))

	head, err := s.repo.Head(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read current position: %w", err)
	}

	it, err := s.repo.Log(ctx, head.ID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := it.Close(); err != nil {
			log.Warn("failed to close history", "error", err)
		}
	}()

	sel, err := history.Select(it, instant, s.field)
	if err != nil {
		return nil, err
	}
	log.Info("selected commit", "commit", sel.Commit.ShortID(), "date", sel.Commit.When(s.field).Format(time.RFC3339), "scanned", sel.Scanned)

	return &Plan{
		Phrase:  phrase,
		Parsed:  parsed,
		Now:     now,
		Instant: instant,
		Field:   s.field,
		Current: head,
		Target:  sel.Commit,
		Scanned: sel.Scanned,
	}, nil
}

// Execute checks out the plan's target commit. Checking out the current
// commit still detaches HEAD.
func (s *Service) Execute(ctx context.Context, p *Plan) error {
	if p.AlreadyThere() {
		log.Debug("target is the current commit", "commit", p.Target.ShortID())
	}
	return s.repo.Checkout(ctx, p.Target.ID)
}
