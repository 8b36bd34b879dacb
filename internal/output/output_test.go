package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/spiffcs/checkout-ago/internal/history"
	"github.com/spiffcs/checkout-ago/internal/rewind"
	"github.com/spiffcs/checkout-ago/internal/timephrase"
)

func testPlan(t *testing.T) *rewind.Plan {
	t.Helper()
	parsed, err := timephrase.Parse("3 days")
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	return &rewind.Plan{
		Phrase:  "3d",
		Parsed:  parsed,
		Now:     now,
		Instant: now.AddDate(0, 0, -3),
		Field:   history.DateCommitter,
		Current: history.Commit{
			ID:        "1111111111111111111111111111111111111111",
			Committer: now.Add(-time.Hour),
			Subject:   "Refactor parser for better error messages",
		},
		Target: history.Commit{
			ID:        "2222222222222222222222222222222222222222",
			Committer: now.AddDate(0, 0, -4).Add(-time.Hour),
			Subject:   "Fix race condition in file watcher initialization",
		},
		Scanned: 7,
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"table", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter(FormatJSON).(*JSONFormatter); !ok {
		t.Error("NewFormatter(json) should return *JSONFormatter")
	}
	if _, ok := NewFormatter(FormatText).(*TextFormatter); !ok {
		t.Error("NewFormatter(text) should return *TextFormatter")
	}
}

func TestTextFormatter(t *testing.T) {
	p := testPlan(t)
	var buf bytes.Buffer

	if err := (&TextFormatter{}).Format(p, &buf); err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Current HEAD:  " + p.Current.ID + "  Refactor parser for better error messages",
		"Target commit: " + p.Target.ID + "  Fix race condition in file watcher initialization",
		"4d before HEAD",
		`resolved "3 days" to 2024-03-07 12:00:00 +0000 (committer date)`,
		"To return:     git checkout " + p.Current.ID,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("expected no ANSI codes with Color disabled:\n%s", out)
	}
	if lines := strings.Count(out, "\n"); lines != 4 {
		t.Errorf("expected 4 lines, got %d:\n%s", lines, out)
	}
}

func TestTextFormatterTruncates(t *testing.T) {
	p := testPlan(t)
	var buf bytes.Buffer

	f := &TextFormatter{Width: 80}
	if err := f.Format(p, &buf); err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if !strings.HasPrefix(line, "Current HEAD:") && !strings.HasPrefix(line, "Target commit:") {
			continue
		}
		if len(line) > 80 {
			t.Errorf("line exceeds width 80 (%d): %q", len(line), line)
		}
		if !strings.HasSuffix(line, "...") {
			t.Errorf("expected truncated subject: %q", line)
		}
	}
}

func TestTextFormatterColor(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextFormatter{Color: true}).Format(testPlan(t), &buf); err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected ANSI codes with Color enabled:\n%s", buf.String())
	}
}

func TestTextFormatterAlreadyThere(t *testing.T) {
	p := testPlan(t)
	p.Target = p.Current
	var buf bytes.Buffer

	if err := (&TextFormatter{}).Format(p, &buf); err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	if !strings.Contains(buf.String(), "already at the latest commit") {
		t.Errorf("expected already-there note:\n%s", buf.String())
	}
}

func TestJSONFormatter(t *testing.T) {
	p := testPlan(t)
	var buf bytes.Buffer

	if err := (&JSONFormatter{}).Format(p, &buf); err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	var got struct {
		Phrase        string `json:"phrase"`
		Resolved      string `json:"resolved"`
		DateField     string `json:"date_field"`
		Scanned       int    `json:"scanned"`
		ReturnCommand string `json:"return_command"`
		Target        struct {
			ID      string `json:"id"`
			Subject string `json:"subject"`
		} `json:"target"`
		Instant time.Time `json:"instant"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	if got.Phrase != "3d" || got.Resolved != "3 days" {
		t.Errorf("phrase = %q, resolved = %q", got.Phrase, got.Resolved)
	}
	if got.DateField != "committer" || got.Scanned != 7 {
		t.Errorf("date_field = %q, scanned = %d", got.DateField, got.Scanned)
	}
	if got.Target.ID != p.Target.ID {
		t.Errorf("target.id = %q, want %q", got.Target.ID, p.Target.ID)
	}
	if got.ReturnCommand != "git checkout "+p.Current.ID {
		t.Errorf("return_command = %q", got.ReturnCommand)
	}
	if !got.Instant.Equal(p.Instant) {
		t.Errorf("instant = %v, want %v", got.Instant, p.Instant)
	}
}
