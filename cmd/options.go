package cmd

// Options holds the command-line options for a jump. Empty strings and nil
// pointers mean "not set on the command line" so config values apply.
type Options struct {
	Dir           string
	Backend       string
	DateField     string
	Format        string
	CalendarFirst bool
	PrintOnly     bool
	Verbosity     int
	Color         *bool // nil = auto-detect, true = always, false = never

	// Profiling options
	CPUProfile string // Write CPU profile to file
	MemProfile string // Write memory profile to file
	Trace      string // Write execution trace to file
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// NewOptions creates a new Options with defaults and applies any provided options.
func NewOptions(opts ...Option) *Options {
	o := &Options{
		Dir: ".",
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithDir sets the directory the repository is discovered from.
func WithDir(dir string) Option {
	return func(o *Options) {
		o.Dir = dir
	}
}

// WithBackend sets the git backend (gogit, gitcli).
func WithBackend(backend string) Option {
	return func(o *Options) {
		o.Backend = backend
	}
}

// WithDateField sets the commit date compared (committer, author).
func WithDateField(field string) Option {
	return func(o *Options) {
		o.DateField = field
	}
}

// WithFormat sets the output format (text, json).
func WithFormat(format string) Option {
	return func(o *Options) {
		o.Format = format
	}
}

// WithPrintOnly shows the plan without checking out.
func WithPrintOnly(printOnly bool) Option {
	return func(o *Options) {
		o.PrintOnly = printOnly
	}
}

// WithVerbosity sets the verbosity level.
func WithVerbosity(v int) Option {
	return func(o *Options) {
		o.Verbosity = v
	}
}

// WithColor controls colored output (nil = auto-detect, true = always, false = never).
func WithColor(c *bool) Option {
	return func(o *Options) {
		o.Color = c
	}
}
