package resolver

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/specialistvlad/dasmanifest/internal/ctxlog"
)

// DefaultCommand is the catalog client looked up on PATH.
const DefaultCommand = "dasgoclient"

const stderrLimit = 8 << 10 // 8 KiB

// DAS queries the dataset catalog through the dasgoclient command line tool.
type DAS struct {
	// Command is the client executable. Empty means DefaultCommand.
	Command string
	// Timeout bounds a single query. Zero means no timeout.
	Timeout time.Duration
}

// NewDAS returns a DAS resolver running command with the given per-query timeout.
func NewDAS(command string, timeout time.Duration) *DAS {
	return &DAS{Command: command, Timeout: timeout}
}

// Args returns the client arguments used to list the files of dataset.
func (d *DAS) Args(dataset string) []string {
	return []string{"--query", Query(dataset), "--limit=0"}
}

// Resolve runs the catalog client and parses its stdout. A non-zero exit, a
// missing executable or an expired timeout yield a failed Result.
func (d *DAS) Resolve(ctx context.Context, dataset string) Result {
	logger := ctxlog.FromContext(ctx)

	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	command := d.Command
	if command == "" {
		command = DefaultCommand
	}

	cmd := exec.CommandContext(ctx, command, d.Args(dataset)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logger.Debug("Executing catalog query.", "cmd", cmd.String())

	out, err := cmd.Output()
	if err != nil {
		s := stderr.String()
		if len(s) > stderrLimit {
			s = s[:stderrLimit] + "… (truncated)"
		}
		// Surface context errors so callers can errors.Is(..., context.DeadlineExceeded).
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return Failure(dataset, fmt.Errorf("catalog query '%s' failed: %w (stderr: %s)", Query(dataset), err, strings.TrimSpace(s)))
	}

	return Success(dataset, ParseOutput(string(out)))
}
