package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/packt/internal/export"
	"github.com/piwi3910/packt/internal/logger"
	"github.com/piwi3910/packt/internal/model"
	"github.com/piwi3910/packt/internal/project"
	"github.com/piwi3910/packt/internal/runner"
)

func batchCmd(a *app) *cobra.Command {
	var (
		sf      solverFlags
		rf      resultFlags
		plan    string
		labels  string
		verbose bool
	)

	c := &cobra.Command{
		Use:   "batch <solver> <dir>",
		Short: "Solve every problem file in a directory",
		Long: "Queue every *.txt problem in dir, in natural order, on a background\n" +
			"worker. Each problem runs once, or once per combination of --plan.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := sf.resolve(cmd, a.config, args[0])
			if err != nil {
				return err
			}

			var combos []model.Params
			if plan != "" {
				grid, err := project.LoadSweepPlan(plan)
				if err != nil {
					return err
				}
				combos = grid.Combinations()
			}
			if len(combos) == 0 {
				combos = []model.Params{nil}
			}

			jobs, err := loadJobs(cmd, args[1], combos)
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				return fmt.Errorf("no problem files in %s", args[1])
			}

			stream, err := rf.openCSV()
			if err != nil {
				return err
			}

			th := defaultTheme()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, th.Subtitle.Render(fmt.Sprintf("%s: %d run(s) of %s", args[1], len(jobs), spec)))

			records, runErr := runBatch(cmd.Context(), runner.NewHarness(spec), jobs, func(ev runner.Event) {
				printRecord(out, th, ev.Record)
				if verbose && (ev.Index == ev.Total-1 || jobs[ev.Index+1].Entry != ev.Entry) {
					fmt.Fprintf(out, "\n%s\n\n", ev.Entry)
				}
				if stream != nil {
					if err := stream.Add(ev.Record); err != nil {
						logger.L().Warn("batch.csv_failed", "path", rf.csv, "error", err)
					}
				}
			})
			if stream != nil {
				if err := stream.Close(); err != nil {
					return err
				}
			}
			if err := rf.finish(a, spec, records); err != nil {
				return err
			}
			if labels != "" && len(records) > 0 {
				if err := export.ExportLabels(labels, records); err != nil {
					return fmt.Errorf("failed to write %s: %w", labels, err)
				}
			}

			fmt.Fprintln(out, renderSummary(th, "Batch of "+args[1], records))
			if runErr != nil {
				return runErr
			}
			if rf.failOnError && collectStats(records).failed > 0 {
				return errFailures
			}
			return nil
		},
	}

	sf.register(c)
	rf.register(c)
	c.Flags().StringVar(&plan, "plan", "", "YAML sweep plan applied to every problem")
	c.Flags().StringVar(&labels, "labels", "", "write a PDF sheet of QR result labels")
	c.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every outcome and problem digest once a problem is done")
	return c
}

// loadJobs reads every problem in dir. Files that do not parse are reported
// and skipped.
func loadJobs(cmd *cobra.Command, dir string, combos []model.Params) ([]runner.Job, error) {
	paths, err := project.ListProblems(dir)
	if err != nil {
		return nil, err
	}
	var jobs []runner.Job
	for _, path := range paths {
		p, source, err := readProblem(cmd, path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s\n", err)
			continue
		}
		entry := runner.NewEntry(source, p)
		for _, params := range combos {
			jobs = append(jobs, runner.Job{Entry: entry, Params: params})
		}
	}
	return jobs, nil
}

// runBatch submits jobs to a fresh worker and collects one record per job,
// in submission order. Cancelling ctx stops the worker and returns the
// records gathered so far with ctx's error.
func runBatch(ctx context.Context, h *runner.Harness, jobs []runner.Job, onEvent func(runner.Event)) ([]model.Record, error) {
	w := runner.NewWorker(h, len(jobs))
	defer w.Close()
	stop := context.AfterFunc(ctx, w.Close)
	defer stop()

	if err := w.Submit(jobs); err != nil {
		return nil, err
	}

	records := make([]model.Record, 0, len(jobs))
	for ev := range w.Events() {
		ev.Entry.Records = append(ev.Entry.Records, ev.Record)
		records = append(records, ev.Record)
		onEvent(ev)
		if len(records) == len(jobs) {
			return records, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return records, err
	}
	return records, errors.New("worker stopped before the batch finished")
}
