package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Rotation tells whether a rectangle is placed as given or turned by 90 degrees.
type Rotation int

const (
	Normal  Rotation = iota // Placed as width x height
	Rotated                 // Placed as height x width
)

// String returns the token used by the text protocol ("no" or "yes").
func (r Rotation) String() string {
	if r == Rotated {
		return "yes"
	}
	return "no"
}

// ParseRotation reads a rotation token from a placement line.
func ParseRotation(s string) (Rotation, error) {
	switch s {
	case "yes":
		return Rotated, nil
	case "no":
		return Normal, nil
	default:
		return Normal, fmt.Errorf("unexpected rotation token %q", s)
	}
}

// Point is an integer grid coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewPoint(x, y int) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Rectangle is an immutable width x height pair. The area is computed once
// at construction; always build rectangles through NewRectangle.
type Rectangle struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	area   int64 // memoized Width*Height
}

func NewRectangle(width, height int) Rectangle {
	return Rectangle{
		Width:  width,
		Height: height,
		area:   int64(width) * int64(height),
	}
}

// Area returns width*height.
func (r Rectangle) Area() int64 {
	if r.area == 0 && r.Width != 0 && r.Height != 0 {
		// zero value built by a struct literal
		return int64(r.Width) * int64(r.Height)
	}
	return r.area
}

// UnmarshalJSON rebuilds the memoized area.
func (r *Rectangle) UnmarshalJSON(data []byte) error {
	var raw struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = NewRectangle(raw.Width, raw.Height)
	return nil
}

// String renders the rectangle as it appears in problem files: "<W> <H>".
func (r Rectangle) String() string {
	return fmt.Sprintf("%d %d", r.Width, r.Height)
}

// ParseRectangle reads a "<W> <H>" line. Both sides must be positive.
func ParseRectangle(s string) (Rectangle, error) {
	tokens := strings.Fields(s)
	if len(tokens) != 2 {
		return Rectangle{}, fmt.Errorf("expected \"<width> <height>\", got %q", s)
	}
	w, err := parseDimension(tokens[0])
	if err != nil {
		return Rectangle{}, err
	}
	h, err := parseDimension(tokens[1])
	if err != nil {
		return Rectangle{}, err
	}
	return NewRectangle(w, h), nil
}

// Placement is a rectangle laid down at a bottom-left point. TopRight is the
// last occupied cell (inclusive), so a 1x1 rectangle has TopRight == BottomLeft.
type Placement struct {
	Rectangle  Rectangle `json:"rectangle"`
	Rotation   Rotation  `json:"rotation"`
	BottomLeft Point     `json:"bottom_left"`
	TopRight   Point     `json:"top_right"`
}

// NewPlacement derives the inclusive top-right corner from the rotated extent.
func NewPlacement(r Rectangle, rotation Rotation, bottomLeft Point) Placement {
	p := Placement{
		Rectangle:  r,
		Rotation:   rotation,
		BottomLeft: bottomLeft,
	}
	p.TopRight = Point{
		X: bottomLeft.X + p.PlacedWidth() - 1,
		Y: bottomLeft.Y + p.PlacedHeight() - 1,
	}
	return p
}

// PlacedWidth returns the horizontal extent considering rotation.
func (p Placement) PlacedWidth() int {
	if p.Rotation == Rotated {
		return p.Rectangle.Height
	}
	return p.Rectangle.Width
}

// PlacedHeight returns the vertical extent considering rotation.
func (p Placement) PlacedHeight() int {
	if p.Rotation == Rotated {
		return p.Rectangle.Width
	}
	return p.Rectangle.Height
}

// Overlaps reports whether the two inclusive boxes share at least one cell.
func (p Placement) Overlaps(other Placement) bool {
	return other.BottomLeft.Y <= p.TopRight.Y &&
		p.BottomLeft.Y <= other.TopRight.Y &&
		other.BottomLeft.X <= p.TopRight.X &&
		p.BottomLeft.X <= other.TopRight.X
}

func (p Placement) String() string {
	return fmt.Sprintf("%s at %s rotated=%s", p.Rectangle, p.BottomLeft, p.Rotation)
}
