// Package output renders a jump plan for the terminal or for scripts.
package output

import (
	"fmt"
	"io"

	"github.com/spiffcs/checkout-ago/internal/rewind"
)

// Format represents the output format
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name. Empty selects FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid output format: %s (must be text or json)", s)
	}
}

// Formatter defines the interface for plan formatters
type Formatter interface {
	Format(p *rewind.Plan, w io.Writer) error
}

// NewFormatter creates a formatter for the specified format. Text output
// is colored and truncated to the terminal when stdout is one.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Pretty: true}
	default:
		return NewTextFormatter()
	}
}

// ReturnCommand is the command that undoes the jump.
func ReturnCommand(p *rewind.Plan) string {
	return "git checkout " + p.Current.ID
}
