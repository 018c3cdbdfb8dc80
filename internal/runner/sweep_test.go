package runner

import (
	"context"
	"testing"

	"github.com/piwi3910/packt/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweep_ContinuesPastFailures(t *testing.T) {
	h := NewHarness(writeSolver(t, `cat > /dev/null
[ "$RETRY" = "2" ] && exit 3
cat <<'EOF'
`+scenarioAnswer+"EOF"))
	grid := model.Grid{
		{Env: "RETRY", Values: []int{1, 2}},
		{Env: "N_HEIGHTS", Values: []int{10, 20}},
	}

	var emitted []model.Record
	records := h.Sweep(context.Background(), scenarioProblem(), "perfect-n2.txt", grid, func(r model.Record) {
		emitted = append(emitted, r)
	})

	require.Len(t, records, 4)
	assert.Equal(t, records, emitted)

	wantParams := []string{"RETRY=1 N_HEIGHTS=10", "RETRY=1 N_HEIGHTS=20", "RETRY=2 N_HEIGHTS=10", "RETRY=2 N_HEIGHTS=20"}
	for i, r := range records {
		assert.Equal(t, wantParams[i], r.Params.String())
		assert.True(t, r.Perfect)
		assert.Equal(t, 2, r.Count)
	}
	assert.False(t, records[0].Failed())
	assert.False(t, records[1].Failed())
	assert.Equal(t, "solver_exit", records[2].ErrorKind)
	assert.Equal(t, "solver_exit", records[3].ErrorKind)
}

func TestSweep_EmptyGridRunsOnce(t *testing.T) {
	h := NewHarness(writeSolver(t, answering(scenarioAnswer)))
	records := h.Sweep(context.Background(), scenarioProblem(), "p.txt", nil, nil)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].Params)
	assert.False(t, records[0].Failed())
}

func TestSweep_StopsWhenCancelled(t *testing.T) {
	h := NewHarness(writeSolver(t, answering(scenarioAnswer)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := h.Sweep(ctx, scenarioProblem(), "p.txt", model.DefaultGrid(), nil)
	assert.Empty(t, records)
}
