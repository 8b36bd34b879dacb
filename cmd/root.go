package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := NewOptions()

	rootCmd := &cobra.Command{
		Use:   "checkout-ago <TIME>",
		Short: "Check out the latest commit from a given time ago",
		Long: `Resolves a relative time such as "2 days" or "1 month and 2 weeks ago"
against the current clock, finds the most recent commit in HEAD's history
made at or before that instant, and checks it out as a detached HEAD.

Units: s(econds), m(inutes), h(ours), d(ays), w(eeks), mo(nths), y(ears).
Pairs may be glued ("2d") or spaced ("2 days") and combine additively.`,
		Example: `  checkout-ago 2d
  checkout-ago "1 month and 2 weeks ago"
  checkout-ago 3 hours --print
  checkout-ago 1w -C ../other-repo --backend gitcli`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJump(cmd, strings.Join(args, " "), opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	addJumpFlags(rootCmd, opts)

	// Register subcommands
	rootCmd.AddCommand(NewCmdConfig())
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}

// addJumpFlags adds the jump flags to a command.
func addJumpFlags(cmd *cobra.Command, opts *Options) {
	flags := cmd.Flags()
	flags.BoolVarP(&opts.PrintOnly, "print", "p", false, "Only show where you are and where you would jump to")
	flags.BoolVar(&opts.PrintOnly, "show", false, "Alias for --print")
	flags.StringVarP(&opts.Dir, "repo", "C", ".", "Run as if started in this directory; its .checkout-ago.yaml is the local config")
	flags.StringVar(&opts.Backend, "backend", "", "Git implementation (gogit, gitcli; default from config)")
	flags.StringVar(&opts.DateField, "date", "", "Commit date to compare (committer, author; default from config)")
	flags.BoolVar(&opts.CalendarFirst, "calendar-first", false, "Subtract months and years before smaller units")
	flags.StringVarP(&opts.Format, "output", "o", "", "Output format (text, json)")
	flags.CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")

	// Color flag with tri-state: nil = auto, true = always, false = never
	flags.Var(newColorFlag(opts), "color", "Colorize output (auto, always, never)")
	flags.Lookup("color").NoOptDefVal = "always"

	// Profiling flags
	flags.StringVar(&opts.CPUProfile, "cpuprofile", "", "Write CPU profile to file")
	flags.StringVar(&opts.MemProfile, "memprofile", "", "Write memory profile to file")
	flags.StringVar(&opts.Trace, "trace", "", "Write execution trace to file")
	for _, name := range []string{"cpuprofile", "memprofile", "trace"} {
		_ = flags.MarkHidden(name)
	}
}
