package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/piwi3910/packt/internal/engine"
	"github.com/piwi3910/packt/internal/logger"
	"github.com/piwi3910/packt/internal/model"
	"github.com/piwi3910/packt/internal/project"
)

func generateCmd(_ *app) *cobra.Command {
	var (
		count         int
		rotation      string
		variant       string
		width, height int
		seed          int64
		knownSolution bool
		dir           string
	)

	c := &cobra.Command{
		Use:   "generate [output]",
		Short: "Generate a problem that admits a perfect packing",
		Long: "Cut a container into rectangles. Every setting left unset is chosen at random.\n" +
			"The problem is printed unless an output file or --dir is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg model.GeneratorConfig
			flags := cmd.Flags()

			if flags.Changed("count") {
				if count < 1 || count > model.MaxCount {
					return fmt.Errorf("count must be between 1 and %d, got %d", model.MaxCount, count)
				}
				cfg.Count = &count
			}
			if flags.Changed("width") != flags.Changed("height") {
				return errors.New("--width and --height must be given together")
			}
			if flags.Changed("width") {
				if width < 1 || height < 1 {
					return fmt.Errorf("container must be at least 1 x 1, got %d x %d", width, height)
				}
				r := model.NewRectangle(width, height)
				cfg.Container = &r
			}
			if variant != "" {
				v, err := model.ParseVariant(variant)
				if err != nil {
					return err
				}
				cfg.Variant = &v
			}
			if rotation != "" {
				r, err := parseYesNo(rotation)
				if err != nil {
					return fmt.Errorf("--rotation: %w", err)
				}
				cfg.AllowRotation = &r
			}
			if !flags.Changed("seed") {
				seed = time.Now().UnixNano()
			}

			d := engine.NewGenerator(seed).GenerateWithSolution(cfg)
			p := d.Problem
			logger.L().Info("problem.generated",
				"rectangles", len(p.Rectangles), "variant", p.Variant.String(),
				"rotation", p.AllowRotation, "source", p.Source.String(), "seed", seed)

			output := ""
			if len(args) == 1 {
				output = args[0]
			}
			if dir != "" {
				if output != "" {
					return errors.New("use either an output file or --dir")
				}
				output = filepath.Join(dir, project.ProblemFileName(p, uuid.New().String()[:8]))
			}

			if output == "" || output == "-" {
				if knownSolution {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), d.Solution().String())
					return err
				}
				return writeProblem(cmd, "", p)
			}

			if err := project.SaveProblem(output, p); err != nil {
				return err
			}
			if knownSolution {
				if err := os.WriteFile(project.SolutionPath(output), []byte(d.Solution().String()+"\n"), 0644); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.ErrOrStderr(), output)
			return nil
		},
	}

	c.Flags().IntVarP(&count, "count", "n", 0, "number of rectangles (default random)")
	c.Flags().StringVar(&rotation, "rotation", "", "allow rotations: yes|no (default random)")
	c.Flags().StringVar(&variant, "variant", "", "container height: free|fixed (default random)")
	c.Flags().IntVar(&width, "width", 0, "container width (default random)")
	c.Flags().IntVar(&height, "height", 0, "container height (default random)")
	c.Flags().Int64Var(&seed, "seed", 0, "random seed (default time based)")
	c.Flags().BoolVar(&knownSolution, "known-solution", false, "also write the perfect packing the problem was cut from")
	c.Flags().StringVar(&dir, "dir", "", "write into this directory under a generated file name")
	return c
}
