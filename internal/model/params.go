package model

import (
	"fmt"
	"strings"
)

// Param is one solver tuning value passed through the solver's environment.
// The name and meaning belong to the solver.
type Param struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Params is an ordered list of solver parameters.
type Params []Param

// Env renders the parameters as NAME=value environment entries.
func (p Params) Env() []string {
	if len(p) == 0 {
		return nil
	}
	env := make([]string, len(p))
	for i, param := range p {
		env[i] = fmt.Sprintf("%s=%d", param.Name, param.Value)
	}
	return env
}

// String renders the parameters space-separated, e.g. "RETRY=5 N_HEIGHTS=10".
func (p Params) String() string {
	return strings.Join(p.Env(), " ")
}
