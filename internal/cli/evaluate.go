package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/packt/internal/engine"
	"github.com/piwi3910/packt/internal/export"
	"github.com/piwi3910/packt/internal/logger"
	"github.com/piwi3910/packt/internal/model"
	"github.com/piwi3910/packt/internal/project"
)

func evaluateCmd(_ *app) *cobra.Command {
	var (
		pdfPath string
		dxfPath string
		pngPath string
		pngSize int
	)

	c := &cobra.Command{
		Use:   "evaluate <problem> <solution>",
		Short: "Validate and score a saved solution without running a solver",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.LoadProblem(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			sol, err := model.ParseSolution(string(data))
			if err != nil {
				return fmt.Errorf("%s: %w", args[1], err)
			}
			if err := sol.Attach(p); err != nil {
				return fmt.Errorf("%s: %w", args[1], err)
			}

			eval, err := engine.Evaluate(sol, 0)
			if err != nil {
				return err
			}
			logger.L().Info("solution.evaluated", "solution", args[1], "filling_rate", eval.FillingRate)

			if pdfPath != "" {
				source := filepath.Base(args[0])
				report := export.Report{Name: source, Solution: sol, Evaluation: eval}
				record := model.NewRecord(source, p, nil, &eval, nil)
				if err := export.ExportPDF(pdfPath, []export.Report{report}, []model.Record{record}); err != nil {
					return fmt.Errorf("failed to write %s: %w", pdfPath, err)
				}
			}
			if dxfPath != "" {
				if err := export.ExportDXF(dxfPath, sol, eval.Container); err != nil {
					return fmt.Errorf("failed to write %s: %w", dxfPath, err)
				}
			}
			if pngPath != "" {
				if err := export.RenderPNG(pngPath, sol, eval.Container, pngSize); err != nil {
					return fmt.Errorf("failed to write %s: %w", pngPath, err)
				}
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), eval.String())
			return err
		},
	}

	c.Flags().StringVar(&pdfPath, "pdf", "", "render the layout to a PDF report")
	c.Flags().StringVar(&dxfPath, "dxf", "", "export the layout as DXF")
	c.Flags().StringVar(&pngPath, "png", "", "render the layout to a PNG image")
	c.Flags().IntVar(&pngSize, "png-size", 800, "longest side of the PNG in pixels")
	return c
}
