package runner

import (
	"errors"
	"testing"
	"time"

	"github.com/piwi3910/packt/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, w *Worker, n int) []Event {
	t.Helper()
	events := make([]Event, 0, n)
	timeout := time.After(30 * time.Second)
	for len(events) < n {
		select {
		case ev, ok := <-w.Events():
			require.True(t, ok, "events closed early")
			events = append(events, ev)
		case <-timeout:
			t.Fatalf("got %d of %d events", len(events), n)
		}
	}
	return events
}

func TestWorker_EventsInSubmissionOrder(t *testing.T) {
	h := NewHarness(writeSolver(t, answering(scenarioAnswer)))
	w := NewWorker(h, 0)
	defer w.Close()

	entries := []*Entry{
		NewEntry("a.txt", scenarioProblem()),
		NewEntry("b.txt", scenarioProblem()),
		NewEntry("c.txt", scenarioProblem()),
	}
	jobs := make([]Job, len(entries))
	for i, e := range entries {
		jobs[i] = Job{Entry: e}
	}
	require.NoError(t, w.Submit(jobs))

	events := collect(t, w, 3)
	for i, ev := range events {
		assert.Same(t, entries[i], ev.Entry)
		assert.Equal(t, i, ev.Index)
		assert.Equal(t, 3, ev.Total)
		assert.Equal(t, entries[i].Source, ev.Record.Source)
		assert.False(t, ev.Record.Failed(), ev.Record.Error)
	}
	assert.Equal(t, 0, w.Running())
}

func TestWorker_BusyWhileBatchInFlight(t *testing.T) {
	spec := writeSolver(t, "sleep 30")
	spec.Deadline = 300 * time.Millisecond
	w := NewWorker(NewHarness(spec), 1)
	defer w.Close()

	entry := NewEntry("slow.txt", scenarioProblem())
	require.NoError(t, w.Submit([]Job{{Entry: entry}, {Entry: entry}}))

	err := w.Submit([]Job{{Entry: entry}})
	var busy *model.BusyError
	require.True(t, errors.As(err, &busy))
	assert.Positive(t, busy.Running)
	assert.Equal(t, "busy", model.Kind(err))

	events := collect(t, w, 2)
	for _, ev := range events {
		assert.Equal(t, "timeout", ev.Record.ErrorKind)
	}

	// the gate reopens once the batch is done
	require.NoError(t, w.Submit([]Job{{Entry: entry}}))
	collect(t, w, 1)
}

func TestWorker_SubmitAfterClose(t *testing.T) {
	w := NewWorker(NewHarness(model.SolverSpec{}), 0)
	w.Close()
	assert.ErrorIs(t, w.Submit([]Job{{Entry: NewEntry("x", scenarioProblem())}}), ErrWorkerClosed)

	_, ok := <-w.Events()
	assert.False(t, ok)
}

func TestEntryString(t *testing.T) {
	e := NewEntry("p.txt", scenarioProblem())
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "n=2 h=fixed 22 r=no", e.Name)

	eval := model.Evaluation{Container: model.NewRectangle(34, 22), MinArea: 186}
	e.Records = append(e.Records,
		model.NewRecord("p.txt", e.Problem, nil, &eval, nil),
		model.NewRecord("p.txt", e.Problem, nil, nil, &model.TimeoutError{Deadline: time.Second}),
	)
	s := e.String()
	assert.Contains(t, s, "bounding box: 34 22")
	assert.Contains(t, s, "Error: solver timed out")
	assert.Contains(t, s, "number of rectangles: 2")
}
