package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spiffcs/checkout-ago/config"
	"github.com/spiffcs/checkout-ago/internal/constants"
	"github.com/spiffcs/checkout-ago/internal/history"
	"github.com/spiffcs/checkout-ago/internal/log"
	"github.com/spiffcs/checkout-ago/internal/output"
	"github.com/spiffcs/checkout-ago/internal/rewind"
	"github.com/spiffcs/checkout-ago/internal/timephrase"
	"github.com/spiffcs/checkout-ago/internal/vcs"
	"github.com/spiffcs/checkout-ago/internal/vcs/gitcli"
	"github.com/spiffcs/checkout-ago/internal/vcs/gogit"
)

// settings are the effective jump settings after flags override config.
type settings struct {
	backend       string
	field         history.DateField
	format        output.Format
	calendarFirst bool
}

func runJump(cmd *cobra.Command, phrase string, opts *Options) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	log.Initialize(opts.Verbosity, os.Stderr)

	// A bad phrase is reported before anything touches the repository.
	parsed, err := timephrase.Parse(phrase)
	if err != nil {
		return err
	}

	prof := newProfiler(opts)
	if err := prof.start(); err != nil {
		return err
	}
	defer prof.stop()

	cfg, err := config.LoadForDir(opts.Dir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	s, err := resolveSettings(cmd, cfg, opts)
	if err != nil {
		return err
	}

	repo, err := openRepository(ctx, s.backend, opts.Dir)
	if err != nil {
		return err
	}

	svc := rewind.NewService(repo,
		rewind.WithDateField(s.field),
		rewind.WithResolver(timephrase.Resolver{CalendarFirst: s.calendarFirst}),
	)

	plan, err := svc.PlanParsed(ctx, phrase, parsed)
	if err != nil {
		return err
	}

	if err := newFormatter(s.format, opts).Format(plan, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}

	if opts.PrintOnly {
		return nil
	}

	// An interrupt after printing the plan must not leave a checkout behind.
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := svc.Execute(ctx, plan); err != nil {
		return err
	}
	log.Info("checked out", "commit", plan.Target.ShortID())
	return nil
}

// resolveSettings layers command-line flags over the loaded config.
func resolveSettings(cmd *cobra.Command, cfg *config.Config, opts *Options) (settings, error) {
	override := *cfg
	for key, value := range map[string]string{
		"backend":    opts.Backend,
		"date_field": opts.DateField,
		"output":     opts.Format,
	} {
		if value == "" {
			continue
		}
		if err := override.Set(key, value); err != nil {
			return settings{}, err
		}
	}
	if cmd.Flags().Changed("calendar-first") {
		override.CalendarFirst = &opts.CalendarFirst
	}

	field, err := history.ParseDateField(override.DateField)
	if err != nil {
		return settings{}, err
	}
	format, err := output.ParseFormat(override.Output)
	if err != nil {
		return settings{}, err
	}

	s := settings{
		backend:       override.Backend,
		field:         field,
		format:        format,
		calendarFirst: override.IsCalendarFirst(),
	}
	log.Debug("effective settings", "backend", s.backend, "date", s.field, "output", s.format, "calendar_first", s.calendarFirst)
	return s, nil
}

func newFormatter(format output.Format, opts *Options) output.Formatter {
	if format != output.FormatText {
		return output.NewFormatter(format)
	}
	f := output.NewTextFormatter()
	if opts.Color != nil {
		f.Color = *opts.Color
	}
	return f
}

// openRepository opens the repository containing dir with the named backend.
func openRepository(ctx context.Context, backend, dir string) (vcs.Repository, error) {
	log.Debug("opening repository", "backend", backend, "dir", dir)

	switch backend {
	case constants.BackendGoGit, "":
		repo, err := gogit.Open(dir)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case constants.BackendGitCLI:
		repo, err := gitcli.Open(ctx, dir)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("invalid backend: %s (must be %s or %s)", backend, constants.BackendGoGit, constants.BackendGitCLI)
	}
}
