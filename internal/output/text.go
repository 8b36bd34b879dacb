package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/spiffcs/checkout-ago/internal/format"
	"github.com/spiffcs/checkout-ago/internal/history"
	"github.com/spiffcs/checkout-ago/internal/rewind"
)

// labelWidth aligns values after "Target commit: ".
const labelWidth = 15

const timeLayout = "2006-01-02 15:04:05 -0700"

// TextFormatter prints the plan the way a person reads it:
//
//	Current HEAD:  <id>  <subject>
//	Target commit: <id>  <subject>
//	               3d before HEAD, resolved "2 days" to 2024-03-29 12:00:00 +0000
//	To return:     git checkout <id>
type TextFormatter struct {
	// Width truncates subjects so each line fits; 0 disables truncation.
	Width int
	// Color enables ANSI colors.
	Color bool
}

// NewTextFormatter sizes and colors output for the current stdout.
func NewTextFormatter() *TextFormatter {
	tty := IsTerminal(os.Stdout)
	return &TextFormatter{
		Width: TerminalWidth(os.Stdout),
		Color: tty && !color.NoColor,
	}
}

// Format writes the plan as aligned text
func (f *TextFormatter) Format(p *rewind.Plan, w io.Writer) error {
	idColor := f.style(color.FgYellow)
	dimColor := f.style(color.Faint)
	cmdColor := f.style(color.FgCyan, color.Bold)

	lines := []string{
		f.label("Current HEAD:") + f.commitLine(p.Current, idColor),
		f.label("Target commit:") + f.commitLine(p.Target, idColor),
		f.label("") + dimColor.Sprint(f.detail(p)),
		f.label("To return:") + cmdColor.Sprint(ReturnCommand(p)),
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (f *TextFormatter) label(s string) string {
	return fmt.Sprintf("%-*s", labelWidth, s)
}

func (f *TextFormatter) commitLine(c history.Commit, idColor *color.Color) string {
	line := idColor.Sprint(c.ID)
	if c.Subject == "" {
		return line
	}

	// Remaining columns after label, id and two spaces.
	room := 0
	if f.Width > 0 {
		room = f.Width - labelWidth - len(c.ID) - 2
		if room < 8 {
			return line
		}
	}
	return line + "  " + format.Truncate(c.Subject, room)
}

func (f *TextFormatter) detail(p *rewind.Plan) string {
	if p.AlreadyThere() {
		return fmt.Sprintf("already at the latest commit before %s (resolved %q)",
			p.Instant.Format(timeLayout), p.Parsed.String())
	}
	return fmt.Sprintf("%s HEAD, resolved %q to %s (%s date)",
		format.Between(p.Target.When(p.Field), p.Current.When(p.Field)),
		p.Parsed.String(), p.Instant.Format(timeLayout), p.Field)
}

func (f *TextFormatter) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if f.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
