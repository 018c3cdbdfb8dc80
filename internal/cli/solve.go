package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/packt/internal/runner"
)

func solveCmd(a *app) *cobra.Command {
	var sf solverFlags

	c := &cobra.Command{
		Use:   "solve <solver> [problem]",
		Short: "Run the solver once and evaluate its answer",
		Long: "Send a problem to the solver and print the evaluation of its solution.\n" +
			"The problem is read from stdin when no file is given. Any failure is fatal.",
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
			p, _, err := readProblem(cmd, path)
			if err != nil {
				return err
			}
			if path != "" && path != "-" {
				a.remember(path)
			}

			eval, err := runner.NewHarness(spec).Solve(cmd.Context(), p, nil)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), eval.String())
			return err
		},
	}

	sf.register(c)
	return c
}
