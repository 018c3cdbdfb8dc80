package model

import (
	"errors"
	"strings"
	"time"
)

// SolverSpec describes how to launch an external solver.
type SolverSpec struct {
	Name string `json:"name,omitempty"`
	// Runtime is the launcher, e.g. "java". Empty runs Path directly.
	Runtime  string        `json:"runtime"`
	Args     []string      `json:"args"`
	Path     string        `json:"path"`
	Deadline time.Duration `json:"deadline"`
}

// DefaultSolverSpec runs a solver jar with "java -jar".
func DefaultSolverSpec(path string) SolverSpec {
	return SolverSpec{
		Runtime:  "java",
		Args:     []string{"-jar"},
		Path:     path,
		Deadline: DefaultDeadline,
	}
}

// Command returns the program and its arguments.
func (s SolverSpec) Command() (string, []string) {
	if s.Runtime == "" {
		return s.Path, append([]string(nil), s.Args...)
	}
	args := make([]string, 0, len(s.Args)+1)
	args = append(args, s.Args...)
	args = append(args, s.Path)
	return s.Runtime, args
}

// String is the command line, for logs and error messages.
func (s SolverSpec) String() string {
	name, args := s.Command()
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}

// Validate checks that the spec can be launched.
func (s SolverSpec) Validate() error {
	if s.Path == "" {
		return errors.New("solver path is empty")
	}
	if s.Deadline <= 0 {
		return errors.New("solver deadline must be positive")
	}
	return nil
}
