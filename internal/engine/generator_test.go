package engine

import (
	"testing"

	"github.com/piwi3910/packt/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }
func boolPtr(v bool) *bool { return &v }
func rectPtr(w, h int) *model.Rectangle {
	r := model.NewRectangle(w, h)
	return &r
}

func totalArea(rects []model.Rectangle) int64 {
	var total int64
	for _, r := range rects {
		total += r.Area()
	}
	return total
}

func TestGenerateFrom_PreservesArea(t *testing.T) {
	g := NewGenerator(1)
	source := model.NewRectangle(17, 11)
	for _, n := range []int{1, 2, 3, 10, 50, 186, 187} {
		p := g.GenerateFrom(source, n, model.Free(), false)
		require.Len(t, p.Rectangles, n)
		assert.Equal(t, source.Area(), totalArea(p.Rectangles), "n=%d", n)
		for _, r := range p.Rectangles {
			assert.Positive(t, r.Width)
			assert.Positive(t, r.Height)
		}
		require.NotNil(t, p.Source)
		assert.Equal(t, source, *p.Source)
	}
}

func TestGenerateFrom_UnitRectanglesWhenNEqualsArea(t *testing.T) {
	p := NewGenerator(2).GenerateFrom(model.NewRectangle(3, 4), 12, model.FixedHeight(4), true)
	require.Len(t, p.Rectangles, 12)
	for _, r := range p.Rectangles {
		assert.Equal(t, model.NewRectangle(1, 1), r)
	}
	assert.True(t, p.AllowRotation)
	assert.Equal(t, model.FixedHeight(4), p.Variant)
}

func TestGenerateFrom_PanicsWhenNTooLarge(t *testing.T) {
	g := NewGenerator(3)
	assert.Panics(t, func() { g.GenerateFrom(model.NewRectangle(2, 2), 5, model.Free(), false) })
	assert.Panics(t, func() { g.GenerateFrom(model.NewRectangle(2, 2), 0, model.Free(), false) })
}

func TestGenerate_Deterministic(t *testing.T) {
	a := NewGenerator(42).Generate(model.GeneratorConfig{})
	b := NewGenerator(42).Generate(model.GeneratorConfig{})
	assert.Equal(t, a, b)
}

func TestGenerate_Defaults(t *testing.T) {
	g := NewGenerator(7)
	for i := 0; i < 20; i++ {
		p := g.Generate(model.GeneratorConfig{})
		assert.Contains(t, model.DefaultCounts, len(p.Rectangles))
		require.NotNil(t, p.Source)
		assert.Equal(t, int64(len(p.Rectangles))*model.AvgRectangleArea, p.Source.Area())
		if p.Variant.Fixed {
			assert.Equal(t, p.Source.Height, p.Variant.Height)
		}
	}
}

func TestGenerate_ExplicitFields(t *testing.T) {
	fixed := model.FixedHeight(999)
	p := NewGenerator(8).Generate(model.GeneratorConfig{
		Container:     rectPtr(20, 10),
		Count:         intPtr(7),
		Variant:       &fixed,
		AllowRotation: boolPtr(true),
	})
	assert.Len(t, p.Rectangles, 7)
	assert.True(t, p.AllowRotation)
	assert.Equal(t, model.FixedHeight(10), p.Variant, "fixed height is pinned to the source")
	assert.Equal(t, int64(200), totalArea(p.Rectangles))
}

func TestGenerate_CountClampedToContainer(t *testing.T) {
	p := NewGenerator(9).Generate(model.GeneratorConfig{Container: rectPtr(2, 3), Count: intPtr(100)})
	assert.Len(t, p.Rectangles, 6)
}

func TestResolve_HugeCountClampedWithoutOverflow(t *testing.T) {
	req := NewGenerator(4).resolve(model.GeneratorConfig{Count: intPtr(200_000_000_000_000_000)})
	assert.Equal(t, model.MaxCount, req.Count)
	assert.Equal(t, int64(model.MaxCount)*model.AvgRectangleArea, req.Source.Area())
}

func TestRectangleWithArea(t *testing.T) {
	g := NewGenerator(10)
	for _, area := range []int64{1, 2, 7, 50, 250, 250000} {
		r := g.RectangleWithArea(area)
		assert.Equal(t, area, r.Area())
	}
	assert.Panics(t, func() { g.RectangleWithArea(0) })
}

func TestDecompose_KnownSolutionIsPerfect(t *testing.T) {
	g := NewGenerator(11)
	for _, n := range []int{1, 5, 25, 200} {
		d := g.Decompose(Request{Source: model.NewRectangle(40, 15), Count: n, Variant: model.FixedHeight(15)})
		sol := d.Solution()
		require.True(t, IsValid(sol), "n=%d", n)

		eval, err := Evaluate(sol, 0)
		require.NoError(t, err)
		assert.Equal(t, model.NewRectangle(40, 15), eval.Container)
		assert.Equal(t, 1.0, eval.FillingRate)
		assert.Zero(t, eval.EmptyArea)
		require.NotNil(t, eval.Optimum)
		assert.Equal(t, eval.Container, *eval.Optimum)
	}
}

func TestDecompose_SolutionRoundTripsThroughText(t *testing.T) {
	d := NewGenerator(12).GenerateWithSolution(model.GeneratorConfig{Count: intPtr(25), AllowRotation: boolPtr(true)})
	sol := d.Solution()

	parsed, err := model.ParseSolution(sol.String())
	require.NoError(t, err)
	require.NoError(t, parsed.Attach(d.Problem))
	assert.Equal(t, sol.Placements, parsed.Placements)
}
