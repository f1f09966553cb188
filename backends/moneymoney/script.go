package moneymoney

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/finscript/money/apperrors"
)

// Runner executes an AppleScript and returns its stdout. The production
// implementation shells out to osascript; tests inject canned plist
// responses instead.
type Runner interface {
	Run(ctx context.Context, script string) ([]byte, error)
}

// ScriptError is an error raised by the application while executing an
// otherwise deliverable script, e.g. a reference to an unknown account.
type ScriptError struct {
	Message string
}

func (e *ScriptError) Error() string {
	return "applescript: " + e.Message
}

// osascriptRunner pipes scripts into the osascript interpreter.
type osascriptRunner struct {
	timeout time.Duration
}

func (r osascriptRunner) Run(ctx context.Context, script string) ([]byte, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, "osascript", "-")
	cmd.Stdin = strings.NewReader(script)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}
	return nil, classifyRunFailure(err, stderr.String(), ctx.Err())
}

// classifyRunFailure separates "application unreachable" failures from
// errors the AppleScript interpreter reported about our request.
func classifyRunFailure(err error, stderr string, ctxErr error) error {
	// Interpreter missing or not starting, or the deadline fired: the
	// application is unreachable rather than complaining about our request.
	var execErr *exec.Error
	if errors.As(err, &execErr) || ctxErr != nil {
		return fmt.Errorf("osascript: %v: %w", err, apperrors.ErrBackendUnavailable)
	}

	message := strings.TrimSpace(stderr)
	if message == "" {
		message = err.Error()
	}
	// MoneyMoney refuses every export while its database is locked.
	if strings.Contains(message, "Locked database") {
		return fmt.Errorf("%s: %w", message, apperrors.ErrBackendUnavailable)
	}
	return &ScriptError{Message: message}
}
