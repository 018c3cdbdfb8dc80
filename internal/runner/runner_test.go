package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/piwi3910/packt/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioAnswer = `container height: fixed 22
rotations allowed: no
number of rectangles: 2
12 8
10 9
placement of rectangles
0 0
24 3
`

func scenarioProblem() model.Problem {
	return model.Problem{
		Variant:    model.FixedHeight(22),
		Rectangles: []model.Rectangle{model.NewRectangle(12, 8), model.NewRectangle(10, 9)},
	}
}

// writeSolver creates an executable shell script acting as a solver.
func writeSolver(t *testing.T, body string) model.SolverSpec {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("solver scripts need /bin/sh")
	}
	path := filepath.Join(t.TempDir(), "solver.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return model.SolverSpec{Path: path, Deadline: 5 * time.Second}
}

func answering(answer string) string {
	return "cat > /dev/null\ncat <<'EOF'\n" + answer + "EOF"
}

func TestSolve_ValidSolution(t *testing.T) {
	h := NewHarness(writeSolver(t, answering(scenarioAnswer)))

	eval, err := h.Solve(context.Background(), scenarioProblem(), nil)
	require.NoError(t, err)
	assert.Equal(t, model.NewRectangle(34, 22), eval.Container)
	assert.Equal(t, int64(186), eval.MinArea)
	assert.Positive(t, eval.Duration)
}

func TestSolve_ReceivesProblemOnStdin(t *testing.T) {
	// Echo the problem back and append placements.
	h := NewHarness(writeSolver(t, "cat\nprintf '\\nplacement of rectangles\\n0 0\\n24 3\\n'"))

	_, err := h.Solve(context.Background(), scenarioProblem(), nil)
	require.NoError(t, err)
}

func TestSolve_ParamsReachEnvironment(t *testing.T) {
	h := NewHarness(writeSolver(t, `cat > /dev/null
[ "$RETRY" = "5" ] || exit 9
cat <<'EOF'
`+scenarioAnswer+"EOF"))

	_, err := h.Solve(context.Background(), scenarioProblem(), model.Params{{Name: "RETRY", Value: 5}})
	require.NoError(t, err)

	_, err = h.Solve(context.Background(), scenarioProblem(), nil)
	var exitErr *model.SolverExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 9, exitErr.Code)
}

func TestSolve_SpawnError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("path semantics differ")
	}
	h := NewHarness(model.SolverSpec{Path: filepath.Join(t.TempDir(), "missing"), Deadline: time.Second})

	_, err := h.Solve(context.Background(), scenarioProblem(), nil)
	var spawnErr *model.SpawnError
	require.True(t, errors.As(err, &spawnErr))
	assert.Equal(t, "spawn", model.Kind(err))
}

func TestSolve_OutputErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		kind string
	}{
		{"garbage", "cat > /dev/null\necho garbage", "format"},
		{"empty", "cat > /dev/null", "format"},
		{"invalid utf8", "cat > /dev/null\nprintf '\\377\\376'", "encoding"},
		{"non-zero exit", "cat > /dev/null\necho oops >&2\nexit 4", "solver_exit"},
		{"overlap", answering("container height: fixed 22\nrotations allowed: no\nnumber of rectangles: 2\n12 8\n10 9\n" +
			"placement of rectangles\n0 0\n5 5\n"), "overlap"},
		{"too tall", answering("container height: fixed 22\nrotations allowed: no\nnumber of rectangles: 2\n12 8\n10 9\n" +
			"placement of rectangles\n0 0\n24 20\n"), "bounds_exceeded"},
		{"wrong echo", answering("container height: free\nrotations allowed: no\nnumber of rectangles: 2\n12 8\n10 9\n" +
			"placement of rectangles\n0 0\n24 3\n"), "format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHarness(writeSolver(t, tt.body))
			_, err := h.Solve(context.Background(), scenarioProblem(), nil)
			require.Error(t, err)
			assert.Equal(t, tt.kind, model.Kind(err), "error: %v", err)
		})
	}
}

func TestSolve_StderrTailInExitError(t *testing.T) {
	h := NewHarness(writeSolver(t, "cat > /dev/null\necho 'java.lang.OutOfMemoryError' >&2\nexit 1"))
	_, err := h.Solve(context.Background(), scenarioProblem(), nil)
	var exitErr *model.SolverExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, "java.lang.OutOfMemoryError", exitErr.Stderr)
}

func TestSolve_Timeout(t *testing.T) {
	spec := writeSolver(t, "sleep 30")
	spec.Deadline = 200 * time.Millisecond
	h := NewHarness(spec)

	start := time.Now()
	_, err := h.Solve(context.Background(), scenarioProblem(), nil)
	var timeoutErr *model.TimeoutError
	require.True(t, errors.As(err, &timeoutErr), "expected timeout, got %v", err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.GreaterOrEqual(t, timeoutErr.Elapsed, spec.Deadline)
	assert.Equal(t, spec.Deadline, timeoutErr.Deadline)
}

func TestSolve_ContextCancelled(t *testing.T) {
	spec := writeSolver(t, "sleep 30")
	spec.Deadline = time.Minute
	h := NewHarness(spec)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := h.Solve(ctx, scenarioProblem(), nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}
