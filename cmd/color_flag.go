package cmd

import (
	"fmt"
)

// colorFlag implements pflag.Value for the tri-state --color flag.
type colorFlag struct {
	opts *Options
}

func newColorFlag(opts *Options) *colorFlag {
	return &colorFlag{opts: opts}
}

func (f *colorFlag) String() string {
	if f.opts.Color == nil {
		return "auto"
	}
	if *f.opts.Color {
		return "always"
	}
	return "never"
}

func (f *colorFlag) Set(s string) error {
	switch s {
	case "always", "true", "1", "yes":
		v := true
		f.opts.Color = &v
	case "never", "false", "0", "no":
		v := false
		f.opts.Color = &v
	case "auto":
		f.opts.Color = nil
	default:
		return fmt.Errorf("invalid value %q: use always, never, or auto", s)
	}
	return nil
}

func (f *colorFlag) Type() string {
	return "when"
}
