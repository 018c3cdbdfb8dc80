package engine

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/piwi3910/packt/internal/model"
)

// Generator produces packing problems that are known to admit a perfect
// packing, by cutting a source rectangle into pieces.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator with a deterministic random source.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate builds a problem, choosing every field cfg leaves unset.
func (g *Generator) Generate(cfg model.GeneratorConfig) model.Problem {
	return g.Decompose(g.resolve(cfg)).Problem
}

// GenerateWithSolution is Generate plus the perfect packing the pieces were
// cut from.
func (g *Generator) GenerateWithSolution(cfg model.GeneratorConfig) Decomposition {
	return g.Decompose(g.resolve(cfg))
}

// Request is a fully resolved generation request.
type Request struct {
	Source        model.Rectangle
	Count         int
	Variant       model.Variant
	AllowRotation bool
}

func (g *Generator) resolve(cfg model.GeneratorConfig) Request {
	var n int
	if cfg.Count != nil {
		n = min(*cfg.Count, model.MaxCount)
	} else {
		n = model.DefaultCounts[g.rng.Intn(len(model.DefaultCounts))]
	}

	var source model.Rectangle
	if cfg.Container != nil {
		source = model.NewRectangle(cfg.Container.Width, cfg.Container.Height)
	} else {
		source = g.RectangleWithArea(int64(n) * model.AvgRectangleArea)
	}
	if int64(n) > source.Area() {
		n = int(source.Area())
	}

	// Only the source height is guaranteed to fit the known packing.
	var variant model.Variant
	switch {
	case cfg.Variant != nil && cfg.Variant.Fixed:
		variant = model.FixedHeight(source.Height)
	case cfg.Variant != nil:
		variant = model.Free()
	case g.rng.Intn(2) == 0:
		variant = model.Free()
	default:
		variant = model.FixedHeight(source.Height)
	}

	var allowRotation bool
	if cfg.AllowRotation != nil {
		allowRotation = *cfg.AllowRotation
	} else {
		allowRotation = g.rng.Intn(2) == 0
	}

	return Request{Source: source, Count: n, Variant: variant, AllowRotation: allowRotation}
}

// RectangleWithArea factors area into a rectangle, preferring shapes close
// to a square: a divisor no larger than sqrt(area) is drawn from a normal
// distribution centered on the middle divisor, then randomly used as the
// width or the height.
func (g *Generator) RectangleWithArea(area int64) model.Rectangle {
	if area < 1 {
		panic(fmt.Sprintf("cannot build a rectangle with area %d", area))
	}
	limit := int64(math.Sqrt(float64(area)))
	for (limit+1)*(limit+1) <= area {
		limit++
	}
	var divisors []int64
	for d := int64(1); d <= limit; d++ {
		if area%d == 0 {
			divisors = append(divisors, d)
		}
	}

	n := float64(len(divisors))
	x := g.rng.NormFloat64()*(n/7) + n/2
	i := int(math.Min(math.Max(x, 0), n-1))

	d := divisors[i]
	if g.rng.Intn(2) == 0 {
		return model.NewRectangle(int(d), int(area/d))
	}
	return model.NewRectangle(int(area/d), int(d))
}

// GenerateFrom cuts source into exactly n rectangles. n must be between 1
// and the source area; anything else is a programming error and panics.
func (g *Generator) GenerateFrom(source model.Rectangle, n int, variant model.Variant, allowRotation bool) model.Problem {
	return g.Decompose(Request{Source: source, Count: n, Variant: variant, AllowRotation: allowRotation}).Problem
}

// Decomposition is a generated problem together with the origin of every
// piece inside the source rectangle.
type Decomposition struct {
	Problem model.Problem
	Origins []model.Point
}

// Solution lays every piece back at its origin, giving a perfect packing.
func (d Decomposition) Solution() model.Solution {
	placements := make([]model.Placement, len(d.Origins))
	for i, origin := range d.Origins {
		placements[i] = model.NewPlacement(d.Problem.Rectangles[i], model.Normal, origin)
	}
	p := d.Problem
	return model.Solution{
		Variant:       p.Variant,
		AllowRotation: p.AllowRotation,
		Rectangles:    p.Rectangles,
		Placements:    placements,
		Source:        &p,
	}
}

type piece struct {
	origin model.Point
	rect   model.Rectangle
}

// Decompose runs the guillotine decomposition for req.
func (g *Generator) Decompose(req Request) Decomposition {
	source := model.NewRectangle(req.Source.Width, req.Source.Height)
	area := source.Area()
	n := req.Count
	if n < 1 || int64(n) > area {
		panic(fmt.Sprintf("%s cannot be split into %d rectangles", source, n))
	}

	var pieces []piece
	if int64(n) == area {
		pieces = make([]piece, 0, n)
		unit := model.NewRectangle(1, 1)
		for y := 0; y < source.Height; y++ {
			for x := 0; x < source.Width; x++ {
				pieces = append(pieces, piece{origin: model.NewPoint(x, y), rect: unit})
			}
		}
	} else {
		pieces = make([]piece, 1, n)
		pieces[0] = piece{origin: model.NewPoint(0, 0), rect: source}
		for len(pieces) < n {
			i := g.rng.Intn(len(pieces))
			p := pieces[i]
			if p.rect.Width == 1 && p.rect.Height == 1 {
				continue
			}
			a, b := g.split(p)
			pieces[i] = pieces[len(pieces)-1]
			pieces[len(pieces)-1] = a
			pieces = append(pieces, b)
		}
	}

	problem := model.Problem{
		Variant:       req.Variant,
		AllowRotation: req.AllowRotation,
		Rectangles:    make([]model.Rectangle, len(pieces)),
		Source:        &source,
	}
	origins := make([]model.Point, len(pieces))
	for i, p := range pieces {
		problem.Rectangles[i] = p.rect
		origins[i] = p.origin
	}
	return Decomposition{Problem: problem, Origins: origins}
}

// split makes one guillotine cut at a uniform interior offset. The axis is
// vertical with probability width/(width+height).
func (g *Generator) split(p piece) (piece, piece) {
	w, h := p.rect.Width, p.rect.Height
	vertical := h == 1 || (w > 1 && g.rng.Intn(w+h) < w)
	if vertical {
		x := 1 + g.rng.Intn(w-1)
		return piece{origin: p.origin, rect: model.NewRectangle(x, h)},
			piece{origin: model.NewPoint(p.origin.X+x, p.origin.Y), rect: model.NewRectangle(w-x, h)}
	}
	y := 1 + g.rng.Intn(h-1)
	return piece{origin: p.origin, rect: model.NewRectangle(w, y)},
		piece{origin: model.NewPoint(p.origin.X, p.origin.Y+y), rect: model.NewRectangle(w, h-y)}
}
