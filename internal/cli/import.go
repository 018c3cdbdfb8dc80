package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/packt/internal/importer"
	"github.com/piwi3910/packt/internal/logger"
	"github.com/piwi3910/packt/internal/model"
)

func importCmd(_ *app) *cobra.Command {
	var (
		variant  string
		rotation string
	)

	c := &cobra.Command{
		Use:   "import <file> [output]",
		Short: "Build a problem from a CSV, Excel or DXF part list",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := model.ParseVariant(variant)
			if err != nil {
				return err
			}
			allowRotation, err := parseYesNo(rotation)
			if err != nil {
				return fmt.Errorf("--rotation: %w", err)
			}

			result, err := importFile(args[0])
			if err != nil {
				return err
			}
			for _, w := range result.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
			}
			if len(result.Errors) > 0 {
				return fmt.Errorf("import of %s failed:\n  %s", args[0], strings.Join(result.Errors, "\n  "))
			}
			if len(result.Rectangles) == 0 {
				return fmt.Errorf("no rectangles found in %s", args[0])
			}

			if v.Fixed && v.Height == 0 {
				v.Height = minimumHeight(result.Rectangles, allowRotation)
			}
			p := result.Problem(v, allowRotation)
			logger.L().Info("problem.imported", "file", args[0], "rectangles", len(p.Rectangles), "variant", v.String())

			output := ""
			if len(args) == 2 {
				output = args[1]
			}
			return writeProblem(cmd, output, p)
		},
	}

	c.Flags().StringVar(&variant, "variant", "free", "container height: free, fixed <H>, or fixed (tallest rectangle)")
	c.Flags().StringVar(&rotation, "rotation", "no", "allow rotations: yes|no")
	return c
}

func importFile(path string) (importer.ImportResult, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt", ".tsv":
		return importer.ImportCSV(path), nil
	case ".xlsx", ".xlsm":
		return importer.ImportExcel(path), nil
	case ".dxf":
		return importer.ImportDXF(path), nil
	default:
		return importer.ImportResult{}, errors.New("unsupported file type " + filepath.Ext(path) + " (expected .csv, .xlsx or .dxf)")
	}
}

// minimumHeight is the smallest fixed height every rectangle fits under.
func minimumHeight(rects []model.Rectangle, allowRotation bool) int {
	h := 0
	for _, r := range rects {
		need := r.Height
		if allowRotation && r.Width < need {
			need = r.Width
		}
		if need > h {
			h = need
		}
	}
	return h
}
