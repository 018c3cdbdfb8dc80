// Package project persists problems, configuration, solver profiles, sweep
// plans and run archives on disk.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"

	"github.com/piwi3910/packt/internal/model"
)

// ProblemExt is the extension of problem files.
const ProblemExt = ".txt"

// SolutionSuffix marks the known solution saved next to a generated problem.
const SolutionSuffix = ".solution" + ProblemExt

// SaveProblem writes p in the solver text protocol, with a trailing newline.
func SaveProblem(path string, p model.Problem) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(p.String()+"\n"), 0644)
}

// LoadProblem reads a problem file.
func LoadProblem(path string) (model.Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Problem{}, err
	}
	p, err := model.ParseProblem(string(data))
	if err != nil {
		return model.Problem{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ProblemFileName names a problem file after its header. Generated problems,
// whose perfect packing is known, carry model.PerfectMarker.
func ProblemFileName(p model.Problem, id string) string {
	prefix := "problem"
	if p.Source != nil {
		prefix = model.PerfectMarker
	}
	variant := "free"
	if p.Variant.Fixed {
		variant = fmt.Sprintf("fixed%d", p.Variant.Height)
	}
	rotation := "rno"
	if p.AllowRotation {
		rotation = "ryes"
	}
	return fmt.Sprintf("%s-n%d-%s-%s-%s%s", prefix, len(p.Rectangles), variant, rotation, id, ProblemExt)
}

// SolutionPath is where the known solution of the problem at path goes:
// "p.txt" becomes "p.solution.txt".
func SolutionPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + SolutionSuffix
}

// ListProblems returns the problem files in dir in natural order, so that
// "n10" sorts after "n9". Known solutions are left out.
func ListProblems(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		name := strings.ToLower(e.Name())
		if e.IsDir() || filepath.Ext(name) != ProblemExt || strings.HasSuffix(name, SolutionSuffix) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Sort(natural.StringSlice(paths))
	return paths, nil
}
