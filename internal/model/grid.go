package model

import "fmt"

// Axis is one swept solver parameter and the values it takes.
type Axis struct {
	Env    string `json:"env" yaml:"env"`
	Values []int  `json:"values" yaml:"values"`
}

// Grid is a set of axes whose Cartesian product is swept.
type Grid []Axis

// DefaultGrid sweeps RETRY and N_HEIGHTS over the same candidate values.
func DefaultGrid() Grid {
	values := []int{5, 10, 25, 50, 100}
	return Grid{
		{Env: "RETRY", Values: values},
		{Env: "N_HEIGHTS", Values: append([]int(nil), values...)},
	}
}

// Size is the number of combinations.
func (g Grid) Size() int {
	if len(g) == 0 {
		return 0
	}
	n := 1
	for _, a := range g {
		n *= len(a.Values)
	}
	return n
}

// Combinations lists the Cartesian product in row-major order, first axis
// outermost. An empty grid yields no combinations.
func (g Grid) Combinations() []Params {
	size := g.Size()
	if size == 0 {
		return nil
	}
	combos := make([]Params, 0, size)
	idx := make([]int, len(g))
	for {
		params := make(Params, len(g))
		for i, a := range g {
			params[i] = Param{Name: a.Env, Value: a.Values[idx[i]]}
		}
		combos = append(combos, params)

		// advance the odometer from the last axis
		i := len(g) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(g[i].Values) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return combos
		}
	}
}

// Validate rejects unnamed, duplicate, or empty axes. An empty axis would
// make the product empty and the sweep a silent no-op.
func (g Grid) Validate() error {
	seen := make(map[string]bool, len(g))
	for i, a := range g {
		if a.Env == "" {
			return fmt.Errorf("axis %d has no environment variable name", i)
		}
		if seen[a.Env] {
			return fmt.Errorf("axis %q appears twice", a.Env)
		}
		seen[a.Env] = true
		if len(a.Values) == 0 {
			return fmt.Errorf("axis %q has no values", a.Env)
		}
	}
	return nil
}
