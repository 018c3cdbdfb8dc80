package model

import (
	"errors"
	"fmt"
	"time"
)

// FormatError reports malformed problem or solution text.
type FormatError struct {
	Line  int    // 1-based line number, 0 when not tied to a line
	Token string // offending token or line
	Msg   string
}

func (e *FormatError) Error() string {
	if e == nil {
		return "<nil>"
	}
	s := "invalid format"
	if e.Line > 0 {
		s += fmt.Sprintf(" at line %d", e.Line)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Token != "" {
		s += fmt.Sprintf(" (%q)", e.Token)
	}
	return s
}

func formatErrorf(line int, token, format string, args ...any) error {
	return &FormatError{Line: line, Token: token, Msg: fmt.Sprintf(format, args...)}
}

// OverlapError reports the first pair of intersecting placements.
type OverlapError struct {
	First, Second int
	A, B          Placement
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("overlap in solution: placement %d (%s) intersects placement %d (%s)",
		e.First, e.A, e.Second, e.B)
}

// BoundsExceededError reports a placement reaching above a fixed container height.
type BoundsExceededError struct {
	Top   int
	Bound int
}

func (e *BoundsExceededError) Error() string {
	return fmt.Sprintf("solution placements exceed problem bounds: top: %d, bound: %d", e.Top, e.Bound)
}

// InvariantViolation means a filling rate above 1 slipped past the overlap scan.
type InvariantViolation struct {
	FillingRate   float64
	MinArea       int64
	ContainerArea int64
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("undetected overlap in solution: filling rate %.4f (area %d in container of %d)",
		e.FillingRate, e.MinArea, e.ContainerArea)
}

// TimeoutError means the solver did not finish before its deadline.
type TimeoutError struct {
	Elapsed  time.Duration
	Deadline time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("solver timed out after %s (deadline %s)", e.Elapsed.Round(time.Millisecond), e.Deadline)
}

// SpawnError means the solver process could not be started.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start solver %q: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// BusyError rejects a batch submitted while another one is still running.
type BusyError struct {
	Running int
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("failed to start new jobs: %d job(s) still running", e.Running)
}

// PipeError wraps a failure moving data through the solver's pipes.
type PipeError struct {
	Op  string
	Err error
}

func (e *PipeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PipeError) Unwrap() error { return e.Err }

// EncodingError reports solver output that is not valid UTF-8.
type EncodingError struct {
	Offset int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("solver output is not valid UTF-8 (first invalid byte at offset %d)", e.Offset)
}

// SolverExitError reports a solver that exited with a non-zero status.
type SolverExitError struct {
	Code   int
	Stderr string // tail of the solver's standard error
}

func (e *SolverExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("solver exited with status %d", e.Code)
	}
	return fmt.Sprintf("solver exited with status %d: %s", e.Code, e.Stderr)
}

// Kind returns a short stable label for err, used in result records and logs.
func Kind(err error) string {
	var (
		formatErr    *FormatError
		overlapErr   *OverlapError
		boundsErr    *BoundsExceededError
		invariantErr *InvariantViolation
		timeoutErr   *TimeoutError
		spawnErr     *SpawnError
		busyErr      *BusyError
		pipeErr      *PipeError
		encodingErr  *EncodingError
		exitErr      *SolverExitError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &formatErr):
		return "format"
	case errors.As(err, &overlapErr):
		return "overlap"
	case errors.As(err, &boundsErr):
		return "bounds_exceeded"
	case errors.As(err, &invariantErr):
		return "invariant_violation"
	case errors.As(err, &timeoutErr):
		return "timeout"
	case errors.As(err, &spawnErr):
		return "spawn"
	case errors.As(err, &busyErr):
		return "busy"
	case errors.As(err, &pipeErr):
		return "pipe"
	case errors.As(err, &encodingErr):
		return "encoding"
	case errors.As(err, &exitErr):
		return "solver_exit"
	default:
		return "other"
	}
}
