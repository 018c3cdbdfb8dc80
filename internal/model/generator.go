package model

// AvgRectangleArea is the mean rectangle area targeted when the generator
// picks the container itself.
const AvgRectangleArea = 50

// MaxCount bounds the rectangles one generated problem may hold. It keeps
// Count * AvgRectangleArea well inside int64.
const MaxCount = 10_000_000

// DefaultCounts are the rectangle counts drawn when none is given.
var DefaultCounts = []int{3, 5, 10, 25, 5000}

// GeneratorConfig controls problem generation. Every nil field is chosen at
// random by the generator. A Count above MaxCount, or above the container
// area, is clamped.
type GeneratorConfig struct {
	Container     *Rectangle
	Count         *int
	Variant       *Variant
	AllowRotation *bool
}
