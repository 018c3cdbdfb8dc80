package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/packt/internal/export"
	"github.com/piwi3910/packt/internal/model"
	"github.com/piwi3910/packt/internal/project"
	"github.com/piwi3910/packt/internal/runner"
)

// resultFlags select where the records of a sweep or batch are written.
type resultFlags struct {
	csv         string
	xlsx        string
	archive     string
	failOnError bool
}

func (f *resultFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.csv, "csv", "", "write records to this CSV file as they arrive")
	cmd.Flags().StringVar(&f.xlsx, "xlsx", "", "write records to this Excel file")
	cmd.Flags().StringVar(&f.archive, "archive", "", "write a JSON archive of the run")
	cmd.Flags().BoolVar(&f.failOnError, "fail-on-error", false, "exit non-zero when any run failed")
}

// openCSV starts the CSV stream, if one was requested.
func (f *resultFlags) openCSV() (*export.CSVStream, error) {
	if f.csv == "" {
		return nil, nil
	}
	return export.NewCSVStream(f.csv)
}

// finish writes the non-streamed outputs.
func (f *resultFlags) finish(a *app, spec model.SolverSpec, records []model.Record) error {
	if f.xlsx != "" {
		if err := export.ExportXLSX(f.xlsx, records); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.xlsx, err)
		}
	}
	if f.archive != "" {
		if err := project.ExportArchive(f.archive, project.NewArchive(spec, a.config, records)); err != nil {
			return err
		}
	}
	return nil
}

func sweepCmd(a *app) *cobra.Command {
	var (
		sf   solverFlags
		rf   resultFlags
		plan string
	)

	c := &cobra.Command{
		Use:   "sweep <solver> [problem]",
		Short: "Solve one problem for every combination of solver parameters",
		Long: "Run the solver once per combination of the sweep grid, passing each\n" +
			"parameter as an environment variable. Failed runs are recorded and the\n" +
			"sweep moves on. The grid comes from --plan or the config file.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := sf.resolve(cmd, a.config, args[0])
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 2 {
				path = args[1]
			}
			p, source, err := readProblem(cmd, path)
			if err != nil {
				return err
			}
			if path != "" && path != "-" {
				a.remember(path)
			}

			grid := a.config.SweepGrid
			if plan != "" {
				if grid, err = project.LoadSweepPlan(plan); err != nil {
					return err
				}
			}

			stream, err := rf.openCSV()
			if err != nil {
				return err
			}

			th := defaultTheme()
			out := cmd.OutOrStdout()
			runs := grid.Size()
			if runs == 0 {
				runs = 1
			}
			fmt.Fprintln(out, th.Subtitle.Render(fmt.Sprintf("%s: %d run(s) of %s", source, runs, spec)))

			var streamErr error
			records := runner.NewHarness(spec).Sweep(cmd.Context(), p, source, grid, func(r model.Record) {
				printRecord(out, th, r)
				if stream != nil && streamErr == nil {
					streamErr = stream.Add(r)
				}
			})
			if stream != nil {
				if err := stream.Close(); streamErr == nil {
					streamErr = err
				}
				if streamErr != nil {
					return fmt.Errorf("failed to write %s: %w", rf.csv, streamErr)
				}
			}
			if err := rf.finish(a, spec, records); err != nil {
				return err
			}

			fmt.Fprintln(out, renderSummary(th, "Sweep of "+source, records))
			if err := cmd.Context().Err(); err != nil {
				return err
			}
			if rf.failOnError && collectStats(records).failed > 0 {
				return errFailures
			}
			return nil
		},
	}

	sf.register(c)
	rf.register(c)
	c.Flags().StringVar(&plan, "plan", "", "YAML sweep plan")
	return c
}
