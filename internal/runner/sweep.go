package runner

import (
	"context"

	"github.com/piwi3910/packt/internal/logger"
	"github.com/piwi3910/packt/internal/model"
)

// Sweep solves problem once per combination of grid, in order, and reports
// every outcome as a record. Failed invocations are recorded and the sweep
// moves on; only cancellation of ctx stops it early. An empty grid runs the
// solver once without parameters.
//
// emit, when non-nil, receives each record as soon as it is available.
func (h *Harness) Sweep(ctx context.Context, problem model.Problem, source string, grid model.Grid, emit func(model.Record)) []model.Record {
	combos := grid.Combinations()
	if len(grid) == 0 {
		combos = []model.Params{nil}
	}
	log := logger.L().With("solver", h.Solver.String(), "source", source)
	log.Info("sweep.started", "combinations", len(combos))

	records := make([]model.Record, 0, len(combos))
	for i, params := range combos {
		if ctx.Err() != nil {
			log.Info("sweep.cancelled", "completed", i, "combinations", len(combos))
			break
		}

		eval, err := h.Solve(ctx, problem, params)
		var rec model.Record
		if err != nil {
			rec = model.NewRecord(source, problem, params, nil, err)
		} else {
			rec = model.NewRecord(source, problem, params, &eval, nil)
		}
		records = append(records, rec)
		if emit != nil {
			emit(rec)
		}
	}

	failed := 0
	for _, r := range records {
		if r.Failed() {
			failed++
		}
	}
	log.Info("sweep.done", "records", len(records), "failed", failed)
	return records
}
