package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/packt/internal/model"
	"github.com/piwi3910/packt/internal/project"
)

// solverFlags override the configured solver invocation.
type solverFlags struct {
	runtime  string
	args     []string
	deadline time.Duration
	profiles string
}

func (f *solverFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.runtime, "runtime", "", "launcher for the solver, empty to run it directly (default from config)")
	cmd.Flags().StringSliceVar(&f.args, "runtime-arg", nil, "launcher arguments placed before the solver path")
	cmd.Flags().DurationVar(&f.deadline, "deadline", 0, "wall-clock limit per solver run (default from config)")
	cmd.Flags().StringVar(&f.profiles, "profiles", "", "solver profiles file (default ~/.packt/profiles.json)")
}

// resolve turns the solver argument into a launchable spec. A name found in
// the profiles file selects that profile; anything else is a solver path run
// with the configured launcher.
func (f *solverFlags) resolve(cmd *cobra.Command, cfg model.AppConfig, arg string) (model.SolverSpec, error) {
	path := f.profiles
	if path == "" {
		path = project.DefaultProfilesPath()
	}
	profiles, err := project.LoadProfiles(path)
	if err != nil {
		return model.SolverSpec{}, fmt.Errorf("failed to load solver profiles: %w", err)
	}

	spec, ok := project.FindProfile(profiles, arg)
	if !ok {
		spec = model.SolverSpec{Path: arg}
		cfg.ApplyToSolver(&spec)
	}

	flags := cmd.Flags()
	switch {
	case flags.Changed("runtime"):
		spec.Runtime = f.runtime
		spec.Args = append([]string(nil), f.args...)
	case flags.Changed("runtime-arg"):
		spec.Args = append([]string(nil), f.args...)
	}
	if flags.Changed("deadline") {
		spec.Deadline = f.deadline
	}

	if err := spec.Validate(); err != nil {
		return model.SolverSpec{}, err
	}
	return spec, nil
}

// readProblem loads a problem from path, or from stdin when path is empty
// or "-". It returns the problem and the source name used in records.
func readProblem(cmd *cobra.Command, path string) (model.Problem, string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return model.Problem{}, "", fmt.Errorf("failed to read problem from stdin: %w", err)
		}
		p, err := model.ParseProblem(string(data))
		if err != nil {
			return model.Problem{}, "", fmt.Errorf("stdin: %w", err)
		}
		return p, "stdin", nil
	}
	p, err := project.LoadProblem(path)
	if err != nil {
		return model.Problem{}, "", err
	}
	return p, filepath.Base(path), nil
}

// writeProblem saves p to path, or prints it when path is empty or "-".
func writeProblem(cmd *cobra.Command, path string, p model.Problem) error {
	if path == "" || path == "-" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), p.String())
		return err
	}
	return project.SaveProblem(path, p)
}

func parseYesNo(s string) (bool, error) {
	switch s {
	case "yes", "y", "true":
		return true, nil
	case "no", "n", "false":
		return false, nil
	default:
		return false, fmt.Errorf("expected yes or no, got %q", s)
	}
}
