// packt generates rectangle packing problems, runs external solvers on
// them, and evaluates their answers.
//
// Build:
//
//	go build -o packt ./cmd/packt
//
// Examples:
//
//	packt generate -n 25 --variant fixed --dir problems
//	packt sweep solver.jar problems/perfect-n25-fixed70-rno-1a2b3c4d.txt --csv sweep.csv
//	packt batch solver.jar problems --xlsx results.xlsx --labels labels.pdf
package main

import "github.com/piwi3910/packt/internal/cli"

func main() {
	cli.Execute()
}
