package cmd

import (
	"errors"

	"github.com/spiffcs/checkout-ago/internal/history"
	"github.com/spiffcs/checkout-ago/internal/timephrase"
	"github.com/spiffcs/checkout-ago/internal/vcs"
)

// Process exit codes.
const (
	ExitOK       = 0
	ExitError    = 1
	ExitParse    = 2
	ExitNoMatch  = 3
	ExitCheckout = 4
)

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	var checkoutErr *vcs.CheckoutError

	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, timephrase.ErrParse):
		return ExitParse
	case errors.Is(err, history.ErrNoMatchingCommit):
		return ExitNoMatch
	case errors.As(err, &checkoutErr):
		return ExitCheckout
	default:
		return ExitError
	}
}
