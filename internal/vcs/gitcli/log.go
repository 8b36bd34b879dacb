package gitcli

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/spiffcs/checkout-ago/internal/history"
)

// logFormat emits one commit per line: hash, parents, author and committer
// unix times, subject. Fields are separated by the ASCII unit separator.
const logFormat = "%H%x1f%P%x1f%at%x1f%ct%x1f%s"

const fieldSep = "\x1f"

// parseLogLine parses one line produced with logFormat.
func parseLogLine(line string) (history.Commit, error) {
	fields := strings.SplitN(line, fieldSep, 5)
	if len(fields) != 5 {
		return history.Commit{}, fmt.Errorf("unexpected git log line: %q", line)
	}

	authored, err := parseUnix(fields[2])
	if err != nil {
		return history.Commit{}, fmt.Errorf("invalid author date in %q: %w", line, err)
	}
	committed, err := parseUnix(fields[3])
	if err != nil {
		return history.Commit{}, fmt.Errorf("invalid committer date in %q: %w", line, err)
	}

	return history.Commit{
		ID:        fields[0],
		Parents:   strings.Fields(fields[1]),
		Author:    authored,
		Committer: committed,
		Subject:   fields[4],
	}, nil
}

func parseUnix(s string) (time.Time, error) {
	secs, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(secs, 0), nil
}

// logIter reads commits from a running git log process.
type logIter struct {
	cmd     *exec.Cmd
	scanner *bufio.Scanner
	stderr  *bytes.Buffer
	done    bool
	waitErr error
}

func startLog(cmd *exec.Cmd) (*logIter, error) {
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open git log output: %w", err)
	}
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start git log: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	return &logIter{cmd: cmd, scanner: scanner, stderr: stderr}, nil
}

// Next returns io.EOF once git exits cleanly after its last line.
func (it *logIter) Next() (history.Commit, error) {
	if it.done {
		return history.Commit{}, it.finalErr()
	}

	for it.scanner.Scan() {
		line := it.scanner.Text()
		if line == "" {
			continue
		}
		return parseLogLine(line)
	}

	scanErr := it.scanner.Err()
	it.wait()
	if scanErr != nil {
		return history.Commit{}, fmt.Errorf("failed to read git log output: %w", scanErr)
	}
	return history.Commit{}, it.finalErr()
}

// Close stops git if it is still producing output.
func (it *logIter) Close() error {
	if it.done {
		return nil
	}
	if it.cmd.Process != nil {
		_ = it.cmd.Process.Kill()
	}
	it.wait()
	return nil
}

func (it *logIter) wait() {
	if it.done {
		return
	}
	it.done = true
	it.waitErr = it.cmd.Wait()
}

func (it *logIter) finalErr() error {
	if it.waitErr == nil {
		return io.EOF
	}
	if msg := strings.TrimSpace(it.stderr.String()); msg != "" {
		return fmt.Errorf("git log failed: %w (stderr: %s)", it.waitErr, msg)
	}
	return fmt.Errorf("git log failed: %w", it.waitErr)
}
