package model

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxDimension bounds every number read from problem or solution text so
// that coordinate arithmetic cannot overflow.
const MaxDimension = 1<<31 - 1

// Problem is one packing instance. Rectangle order is significant: solution
// placement lines are matched to rectangles by position.
type Problem struct {
	Variant       Variant     `json:"variant"`
	AllowRotation bool        `json:"allow_rotation"`
	Rectangles    []Rectangle `json:"rectangles"`
	// Source is the rectangle the generator cut the pieces from. It is only
	// known for generated problems and is never written to problem text.
	Source *Rectangle `json:"source,omitempty"`
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func (p Problem) header() string {
	return fmt.Sprintf("container height: %s\nrotations allowed: %s\nnumber of rectangles: %d",
		p.Variant, yesNo(p.AllowRotation), len(p.Rectangles))
}

// String serializes the problem in the solver text protocol, without a
// trailing newline.
func (p Problem) String() string {
	var b strings.Builder
	b.WriteString(p.header())
	for _, r := range p.Rectangles {
		b.WriteByte('\n')
		b.WriteString(r.String())
	}
	return b.String()
}

// Digest is a human-oriented summary: the header, the known bounding box if
// any, and at most limit rectangles. A limit <= 0 lists every rectangle.
func (p Problem) Digest(limit int) string {
	var b strings.Builder
	b.WriteString(p.header())
	if p.Source != nil {
		fmt.Fprintf(&b, "\nbounding box: %s", p.Source)
	}
	for i, r := range p.Rectangles {
		if limit > 0 && i == limit {
			b.WriteString("\n...")
			break
		}
		b.WriteByte('\n')
		b.WriteString(r.String())
	}
	return b.String()
}

// Name is the short label used for workspace entries.
func (p Problem) Name() string {
	return fmt.Sprintf("n=%d h=%s r=%s", len(p.Rectangles), p.Variant, yesNo(p.AllowRotation))
}

// TotalArea sums the areas of all rectangles.
func (p Problem) TotalArea() int64 {
	var total int64
	for _, r := range p.Rectangles {
		total += r.Area()
	}
	return total
}

// sameInstance reports whether q describes the same instance as p, ignoring Source.
func (p Problem) sameInstance(q Problem) bool {
	if p.Variant != q.Variant || p.AllowRotation != q.AllowRotation || len(p.Rectangles) != len(q.Rectangles) {
		return false
	}
	for i := range p.Rectangles {
		if p.Rectangles[i].Width != q.Rectangles[i].Width || p.Rectangles[i].Height != q.Rectangles[i].Height {
			return false
		}
	}
	return true
}

// ParseProblem reads a problem in the solver text protocol.
func ParseProblem(text string) (Problem, error) {
	return parseProblemLines(splitLines(text), 0)
}

// splitLines splits on '\n', strips '\r' and drops trailing blank lines.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// parseProblemLines parses lines whose first element is line offset+1 of the
// original input.
func parseProblemLines(lines []string, offset int) (Problem, error) {
	var p Problem
	if len(lines) < 1 {
		return p, formatErrorf(offset+1, "", "unexpected end of input: unable to parse problem variant")
	}

	l1 := strings.Fields(lines[0])
	switch {
	case len(l1) == 3 && l1[0] == "container" && l1[1] == "height:" && l1[2] == "free":
		p.Variant = Free()
	case len(l1) == 4 && l1[0] == "container" && l1[1] == "height:" && l1[2] == "fixed":
		h, err := parseDimension(l1[3])
		if err != nil {
			return p, formatErrorf(offset+1, l1[3], "invalid container height: %v", err)
		}
		p.Variant = FixedHeight(h)
	default:
		return p, formatErrorf(offset+1, lines[0], "expected \"container height: free|fixed <H>\"")
	}

	if len(lines) < 2 {
		return p, formatErrorf(offset+2, "", "unexpected end of input: unable to parse rotation setting")
	}
	switch strings.Join(strings.Fields(lines[1]), " ") {
	case "rotations allowed: yes":
		p.AllowRotation = true
	case "rotations allowed: no":
		p.AllowRotation = false
	default:
		return p, formatErrorf(offset+2, lines[1], "expected \"rotations allowed: yes|no\"")
	}

	if len(lines) < 3 {
		return p, formatErrorf(offset+3, "", "unexpected end of input: unable to parse rectangle count")
	}
	l3 := strings.Fields(lines[2])
	if len(l3) != 4 || l3[0] != "number" || l3[1] != "of" || l3[2] != "rectangles:" {
		return p, formatErrorf(offset+3, lines[2], "expected \"number of rectangles: <N>\"")
	}
	n, err := strconv.Atoi(l3[3])
	if err != nil || n < 0 {
		return p, formatErrorf(offset+3, l3[3], "invalid rectangle count")
	}

	body := lines[3:]
	if len(body) != n {
		return p, formatErrorf(offset+3, l3[3], "header announces %d rectangles but %d follow", n, len(body))
	}

	p.Rectangles = make([]Rectangle, 0, n)
	for i, line := range body {
		r, err := ParseRectangle(line)
		if err != nil {
			return Problem{}, formatErrorf(offset+4+i, line, "%v", err)
		}
		p.Rectangles = append(p.Rectangles, r)
	}
	return p, nil
}

func parseDimension(s string) (int, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	if v <= 0 || v > MaxDimension {
		return 0, fmt.Errorf("%q is out of range (1..%d)", s, MaxDimension)
	}
	return int(v), nil
}

func parseCoordinate(s string) (int, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	if v < 0 || v > MaxDimension {
		return 0, fmt.Errorf("%q is out of range (0..%d)", s, MaxDimension)
	}
	return int(v), nil
}
