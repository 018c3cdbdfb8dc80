package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/piwi3910/packt/internal/model"
)

// printRecord writes one line per finished solver run.
func printRecord(w io.Writer, th theme, r model.Record) {
	mark := th.OK.Render("ok  ")
	if r.Failed() {
		mark = th.Fail.Render("FAIL")
	}
	fmt.Fprintf(w, "[%s] %s\n", mark, r.Summary())
}

// runStats aggregates the records of a sweep or batch.
type runStats struct {
	total   int
	failed  int
	perfect int
	best    *model.Record
}

func collectStats(records []model.Record) runStats {
	var s runStats
	s.total = len(records)
	for i := range records {
		r := &records[i]
		if r.Failed() {
			s.failed++
			continue
		}
		if r.Evaluation.Perfect() {
			s.perfect++
		}
		if s.best == nil || r.Evaluation.FillingRate > s.best.Evaluation.FillingRate {
			s.best = r
		}
	}
	return s
}

// renderSummary draws the closing card of a sweep or batch.
func renderSummary(th theme, title string, records []model.Record) string {
	s := collectStats(records)

	var b strings.Builder
	b.WriteString(th.Title.Render(title))
	fmt.Fprintf(&b, "\nruns: %d  failed: %d  perfect: %d", s.total, s.failed, s.perfect)
	if s.best != nil {
		fmt.Fprintf(&b, "\nbest filling rate: %.4f (%s", s.best.Evaluation.FillingRate, s.best.Source)
		if len(s.best.Params) > 0 {
			fmt.Fprintf(&b, ", %s", s.best.Params)
		}
		b.WriteString(")")
	}
	return th.Card.Render(b.String())
}
