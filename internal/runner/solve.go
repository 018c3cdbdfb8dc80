package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/packt/internal/engine"
	"github.com/piwi3910/packt/internal/logger"
	"github.com/piwi3910/packt/internal/model"
)

const (
	// MaxOutputBytes bounds the solver output kept for parsing.
	MaxOutputBytes = 64 << 20
	// stderrTailBytes is how much of the solver's stderr is kept for diagnostics.
	stderrTailBytes = 4 << 10
	// waitDelay bounds how long Wait blocks on pipes after the process is gone.
	waitDelay = 2 * time.Second
)

// Harness runs one external solver. It is safe for sequential use only;
// use one harness per worker.
type Harness struct {
	Solver model.SolverSpec
}

// NewHarness creates a harness for the given solver.
func NewHarness(solver model.SolverSpec) *Harness {
	return &Harness{Solver: solver}
}

type exitResult struct {
	elapsed  time.Duration
	ioErr    error
	waitErr  error
	stdout   *cappedBuffer
	stderr   *tailBuffer
	writeErr error
}

// Solve sends problem to the solver, waits for its answer under the solver
// deadline, and evaluates the returned solution against problem. Params are
// added to the solver's environment.
func (h *Harness) Solve(ctx context.Context, problem model.Problem, params model.Params) (model.Evaluation, error) {
	log := logger.L().With("solver", h.Solver.String(), "params", params.String())

	deadline := h.Solver.Deadline
	if deadline <= 0 {
		deadline = model.DefaultDeadline
	}

	name, args := h.Solver.Command()
	cmd := exec.Command(name, args...)
	cmd.Env = append(os.Environ(), params.Env()...)
	cmd.WaitDelay = waitDelay
	setProcessGroup(cmd)

	stdin, stdout, err := openPipes(cmd)
	if err != nil {
		return model.Evaluation{}, err
	}
	res := &exitResult{
		stdout: &cappedBuffer{limit: MaxOutputBytes},
		stderr: &tailBuffer{limit: stderrTailBytes},
	}
	cmd.Stderr = res.stderr

	start := time.Now()
	if err := cmd.Start(); err != nil {
		log.Debug("solver.spawn_failed", "error", err)
		return model.Evaluation{}, &model.SpawnError{Command: h.Solver.String(), Err: err}
	}
	log.Debug("solver.started", "pid", cmd.Process.Pid, "deadline", deadline)

	input := problem.String() + "\n"
	done := make(chan struct{})
	go func() {
		defer close(done)
		var g errgroup.Group
		g.Go(func() error {
			_, err := io.WriteString(stdin, input)
			if cerr := stdin.Close(); err == nil {
				err = cerr
			}
			res.writeErr = err
			return nil
		})
		g.Go(func() error {
			_, err := io.Copy(res.stdout, stdout)
			return err
		})
		res.ioErr = g.Wait()
		res.waitErr = cmd.Wait()
		res.elapsed = time.Since(start)
	}()

	timer := time.NewTimer(deadline)
	defer timer.Stop()

	select {
	case <-timer.C:
		_ = killProcessGroup(cmd)
		<-done
		elapsed := time.Since(start)
		log.Info("solver.timeout", "elapsed", elapsed, "kind", "timeout")
		return model.Evaluation{}, &model.TimeoutError{Elapsed: elapsed, Deadline: deadline}
	case <-ctx.Done():
		_ = killProcessGroup(cmd)
		<-done
		log.Info("solver.cancelled", "elapsed", time.Since(start))
		return model.Evaluation{}, ctx.Err()
	case <-done:
	}

	eval, err := h.evaluate(problem, res)
	if err != nil {
		log.Info("solver.failed", "elapsed", res.elapsed, "kind", model.Kind(err), "error", err)
		return model.Evaluation{}, err
	}
	log.Info("solver.done", "elapsed", res.elapsed, "filling_rate", eval.FillingRate)
	return eval, nil
}

// openPipes connects the solver's stdin and stdout. Nothing is left open
// when it fails.
func openPipes(cmd *exec.Cmd) (io.WriteCloser, io.ReadCloser, error) {
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, &model.PipeError{Op: "open solver stdin", Err: err}
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		return nil, nil, &model.PipeError{Op: "open solver stdout", Err: err}
	}
	return stdin, stdout, nil
}

func (h *Harness) evaluate(problem model.Problem, res *exitResult) (model.Evaluation, error) {
	if res.waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(res.waitErr, &exitErr) {
			return model.Evaluation{}, &model.SolverExitError{Code: exitErr.ExitCode(), Stderr: res.stderr.String()}
		}
		if !errors.Is(res.waitErr, exec.ErrWaitDelay) {
			return model.Evaluation{}, &model.PipeError{Op: "wait for solver", Err: res.waitErr}
		}
	}
	if res.writeErr != nil {
		return model.Evaluation{}, &model.PipeError{Op: "write problem", Err: res.writeErr}
	}
	if res.ioErr != nil {
		return model.Evaluation{}, &model.PipeError{Op: "read solution", Err: res.ioErr}
	}
	if res.stdout.overflow {
		return model.Evaluation{}, &model.PipeError{
			Op:  "read solution",
			Err: fmt.Errorf("output exceeds %d bytes", MaxOutputBytes),
		}
	}

	out := res.stdout.buf.Bytes()
	if !utf8.Valid(out) {
		return model.Evaluation{}, &model.EncodingError{Offset: invalidUTF8Offset(out)}
	}

	sol, err := model.ParseSolution(string(out))
	if err != nil {
		return model.Evaluation{}, fmt.Errorf("parse solver output: %w", err)
	}
	if err := sol.Attach(problem); err != nil {
		return model.Evaluation{}, err
	}
	return engine.Evaluate(sol, res.elapsed)
}

func invalidUTF8Offset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(b)
}
