package model

import (
	"strconv"
	"strings"
)

// SolutionSeparator introduces the placement section of solver output.
const SolutionSeparator = "placement of rectangles"

// Solution is a solver's answer: one placement per problem rectangle, in the
// problem's rectangle order.
type Solution struct {
	Variant       Variant
	AllowRotation bool
	Rectangles    []Rectangle
	Placements    []Placement
	// Source is the problem that was submitted to the solver; set by Attach.
	Source *Problem
}

// ParseSolution reads solver output: an echo of the problem, the separator
// line, then one placement line per rectangle.
func ParseSolution(text string) (Solution, error) {
	idx := indexFold(text, SolutionSeparator)
	if idx < 0 {
		return Solution{}, formatErrorf(0, "", "missing %q section", SolutionSeparator)
	}

	head := text[:idx]
	tail := text[idx+len(SolutionSeparator):]

	headLines := splitLines(head)
	problem, err := parseProblemLines(headLines, 0)
	if err != nil {
		return Solution{}, err
	}

	// The separator shares its line with whatever preceded it on that line.
	sepLine := strings.Count(head, "\n") + 1
	var placementLines []string
	var lineNums []int
	for i, line := range strings.Split(tail, "\n") {
		if i == 0 {
			// rest of the separator line
			if strings.TrimSpace(line) != "" {
				return Solution{}, formatErrorf(sepLine, line, "unexpected text after separator")
			}
			continue
		}
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		placementLines = append(placementLines, line)
		lineNums = append(lineNums, sepLine+i)
	}

	if len(placementLines) != len(problem.Rectangles) {
		return Solution{}, formatErrorf(sepLine, "",
			"solution contains %d placements for %d rectangles", len(placementLines), len(problem.Rectangles))
	}

	placements := make([]Placement, 0, len(placementLines))
	for i, line := range placementLines {
		p, err := parsePlacement(line, problem.Rectangles[i], problem.AllowRotation)
		if err != nil {
			return Solution{}, formatErrorf(lineNums[i], line, "%v", err)
		}
		placements = append(placements, p)
	}

	return Solution{
		Variant:       problem.Variant,
		AllowRotation: problem.AllowRotation,
		Rectangles:    problem.Rectangles,
		Placements:    placements,
	}, nil
}

// indexFold is a case-insensitive strings.Index that returns an offset into s.
func indexFold(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if c := s[i]; c != substr[0] && c != substr[0]-('a'-'A') {
			continue
		}
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return i
		}
	}
	return -1
}

type placementGrammarError struct {
	allowRotation bool
}

func (e placementGrammarError) Error() string {
	if e.allowRotation {
		return "expected \"<yes|no> <x> <y>\" when rotations are allowed"
	}
	return "expected \"<x> <y>\" when rotations are not allowed"
}

func parsePlacement(line string, r Rectangle, allowRotation bool) (Placement, error) {
	tokens := strings.Fields(line)
	rotation := Normal
	switch {
	case !allowRotation && len(tokens) == 2:
	case allowRotation && len(tokens) == 3:
		rot, err := ParseRotation(tokens[0])
		if err != nil {
			return Placement{}, err
		}
		rotation = rot
		tokens = tokens[1:]
	default:
		return Placement{}, placementGrammarError{allowRotation: allowRotation}
	}

	x, err := parseCoordinate(tokens[0])
	if err != nil {
		return Placement{}, err
	}
	y, err := parseCoordinate(tokens[1])
	if err != nil {
		return Placement{}, err
	}
	return NewPlacement(r, rotation, NewPoint(x, y)), nil
}

// Attach binds the submitted problem to the solution. The problem echoed in
// the solver output must describe the same instance.
func (s *Solution) Attach(p Problem) error {
	echo := Problem{Variant: s.Variant, AllowRotation: s.AllowRotation, Rectangles: s.Rectangles}
	if !p.sameInstance(echo) {
		return formatErrorf(0, "", "solution does not answer the submitted problem (echo %q, submitted %q)",
			echo.Name(), p.Name())
	}
	s.Source = &p
	return nil
}

// String renders the solution in the solver text protocol.
func (s Solution) String() string {
	var b strings.Builder
	b.WriteString(Problem{Variant: s.Variant, AllowRotation: s.AllowRotation, Rectangles: s.Rectangles}.String())
	b.WriteString("\n")
	b.WriteString(SolutionSeparator)
	for _, p := range s.Placements {
		b.WriteByte('\n')
		if s.AllowRotation {
			b.WriteString(p.Rotation.String())
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(p.BottomLeft.X))
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(p.BottomLeft.Y))
	}
	return b.String()
}
