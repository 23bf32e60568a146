package sph

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/sphfluid/vecmath"
)

func snapshotCells(g *NeighborIndex) [][]int {
	out := make([][]int, g.NumCells())
	for k := range out {
		out[k] = slices.Clone(g.Cell(k))
	}
	return out
}

func randomParticles(rng *rand.Rand, n int, min, max vecmath.Vec2) []Particle {
	ps := make([]Particle, n)
	for i := range ps {
		ps[i].Position = vecmath.New(
			min.X+rng.Float64()*(max.X-min.X),
			min.Y+rng.Float64()*(max.Y-min.Y),
		)
	}
	return ps
}

func TestNeighborIndexDims(t *testing.T) {
	p := DefaultParams()
	g := NewNeighborIndexFor(&p)

	cols, rows := g.Dims()
	if cols != 9 || rows != 21 {
		t.Errorf("expected 9x21 cells, got %dx%d", cols, rows)
	}
	if g.NumCells() != cols*rows {
		t.Errorf("expected %d cells, got %d", cols*rows, g.NumCells())
	}
}

func TestNeighborIndexMaxEdgeHasOwnColumn(t *testing.T) {
	p := DefaultParams()
	g := NewNeighborIndexFor(&p)

	edge, in := g.CellKey(vecmath.New(20, 0))
	assert.True(t, in)
	nextRow, _ := g.CellKey(vecmath.New(0, 2.5))
	assert.NotEqual(t, edge, nextRow)
}

func TestNeighborIndexOutsideDomainIsClamped(t *testing.T) {
	p := DefaultParams()
	g := NewNeighborIndexFor(&p)

	key, in := g.CellKey(vecmath.New(-3, 60))
	assert.False(t, in)
	corner, _ := g.CellKey(vecmath.New(0, 50))
	assert.Equal(t, corner, key)

	ps := []Particle{{Position: vecmath.New(-3, 60)}}
	g.Build(ps)
	assert.Equal(t, []int{0}, g.Cell(key))
}

func TestNeighborIndexBuildIdempotent(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(1))
	ps := randomParticles(rng, 500, p.DomainMin, p.DomainMax)

	g := NewNeighborIndexFor(&p)
	g.Build(ps)
	first := snapshotCells(g)

	g.Build(ps)
	require.Equal(t, first, snapshotCells(g))

	total := 0
	for _, c := range first {
		total += len(c)
	}
	assert.Equal(t, len(ps), total, "every particle lands in exactly one bucket")
}

func TestNeighborIndexCellOutOfRange(t *testing.T) {
	p := DefaultParams()
	g := NewNeighborIndexFor(&p)
	assert.Nil(t, g.Cell(-1))
	assert.Nil(t, g.Cell(g.NumCells()))
}

// bruteNeighbors returns every j != i within one cell size of ps[i].
func bruteNeighbors(ps []Particle, pos vecmath.Vec2, radius float64) []int {
	var out []int
	for j := range ps {
		if ps[j].Position.Sub(pos).Len() < radius {
			out = append(out, j)
		}
	}
	return out
}

func TestQueryCellsIsSuperset(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(7))
	// Include particles outside the domain; they are clamped into edge cells.
	ps := randomParticles(rng, 800, vecmath.New(-2, -2), vecmath.New(22, 52))

	g := NewNeighborIndexFor(&p)
	g.Build(ps)

	var dst []int
	for q := 0; q < 200; q++ {
		pos := ps[rng.Intn(len(ps))].Position
		dst = g.QueryInto(dst[:0], pos)

		for _, j := range bruteNeighbors(ps, pos, p.CellSize) {
			if !slices.Contains(dst, j) {
				t.Fatalf("query at %v missed particle %d at %v", pos, j, ps[j].Position)
			}
		}

		sorted := slices.Clone(dst)
		slices.Sort(sorted)
		if len(slices.Compact(sorted)) != len(dst) {
			t.Fatalf("cells query at %v returned duplicates", pos)
		}
	}
}

func TestQueryProbeIsSupersetAtCellCenters(t *testing.T) {
	p := DefaultParams()
	p.Neighbor = NeighborProbe
	rng := rand.New(rand.NewSource(11))
	ps := randomParticles(rng, 800, p.DomainMin, p.DomainMax)

	g := NewNeighborIndexFor(&p)
	g.Build(ps)

	cols, rows := g.Dims()
	var dst []int
	for row := 1; row < rows-2; row++ {
		for col := 1; col < cols-2; col++ {
			pos := vecmath.New((float64(col)+0.5)*p.CellSize, (float64(row)+0.5)*p.CellSize)
			dst = g.QueryInto(dst[:0], pos)
			for _, j := range bruteNeighbors(ps, pos, p.CellSize) {
				if !slices.Contains(dst, j) {
					t.Fatalf("probe query at %v missed particle %d", pos, j)
				}
			}
		}
	}
}

// Probes that leave the domain are dropped, so a particle just inside the
// max-x wall does not see one that has drifted just past it, while the
// escaped particle still sees the inner one.
func TestQueryProbeEdgeAsymmetry(t *testing.T) {
	p := DefaultParams()
	ps := []Particle{
		{Position: vecmath.New(19.5, 25)},
		{Position: vecmath.New(20.5, 25)},
	}

	p.Neighbor = NeighborProbe
	probe := NewNeighborIndexFor(&p)
	probe.Build(ps)
	assert.NotContains(t, probe.QueryInto(nil, ps[0].Position), 1)
	assert.Contains(t, probe.QueryInto(nil, ps[1].Position), 0)

	p.Neighbor = NeighborCells
	cells := NewNeighborIndexFor(&p)
	cells.Build(ps)
	assert.Contains(t, cells.QueryInto(nil, ps[0].Position), 1)
	assert.Contains(t, cells.QueryInto(nil, ps[1].Position), 0)
}

func TestQueryIntoAppends(t *testing.T) {
	p := DefaultParams()
	g := NewNeighborIndexFor(&p)
	g.Build([]Particle{{Position: vecmath.New(5, 5)}})

	dst := []int{42}
	dst = g.QueryInto(dst, vecmath.New(5, 5))
	assert.Equal(t, []int{42, 0}, dst)
}

func BenchmarkNeighborIndexBuild(b *testing.B) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(1))
	ps := randomParticles(rng, 2000, p.DomainMin, p.DomainMax)
	g := NewNeighborIndexFor(&p)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Build(ps)
	}
}
