package sph

import (
	"math"

	"github.com/pthm-cable/sphfluid/vecmath"
)

// NeighborIndex is a uniform spatial hash over the domain. Buckets hold
// particle indices and are addressed by row*cols + col. The bucket array is
// allocated once and cleared in place on every Build.
type NeighborIndex struct {
	min, max vecmath.Vec2
	cellSize float64
	cols     int
	rows     int
	mode     NeighborMode
	cells    [][]int
}

// NewNeighborIndex creates an index covering [min, max] with square cells.
func NewNeighborIndex(min, max vecmath.Vec2, cellSize float64, mode NeighborMode) *NeighborIndex {
	// +1 so a position exactly on the max edge has a column of its own.
	cols := int((max.X-min.X)/cellSize) + 1
	rows := int((max.Y-min.Y)/cellSize) + 1

	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 8)
	}

	return &NeighborIndex{
		min:      min,
		max:      max,
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		mode:     mode,
		cells:    cells,
	}
}

// NewNeighborIndexFor creates an index sized from params.
func NewNeighborIndexFor(p *Params) *NeighborIndex {
	return NewNeighborIndex(p.DomainMin, p.DomainMax, p.CellSize, p.Neighbor)
}

// Clear empties every bucket, keeping capacity.
func (g *NeighborIndex) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Build clears the index and inserts every particle in slice order.
func (g *NeighborIndex) Build(ps []Particle) {
	g.Clear()
	for i := range ps {
		g.Insert(i, ps[i].Position)
	}
}

// Insert adds particle index i at pos. Positions outside the domain are
// filed under the nearest edge cell.
func (g *NeighborIndex) Insert(i int, pos vecmath.Vec2) {
	col, row := g.cellCoords(pos)
	key := row*g.cols + col
	g.cells[key] = append(g.cells[key], i)
}

// CellKey returns the bucket key for pos and whether pos lies inside the domain.
func (g *NeighborIndex) CellKey(pos vecmath.Vec2) (int, bool) {
	col, row := g.cellCoords(pos)
	return row*g.cols + col, g.contains(pos)
}

// Cell returns the bucket for key. The slice is owned by the index and is
// only valid until the next Build.
func (g *NeighborIndex) Cell(key int) []int {
	if key < 0 || key >= len(g.cells) {
		return nil
	}
	return g.cells[key]
}

// NumCells returns the number of buckets.
func (g *NeighborIndex) NumCells() int {
	return len(g.cells)
}

// Dims returns the grid size in cells.
func (g *NeighborIndex) Dims() (cols, rows int) {
	return g.cols, g.rows
}

// Mode returns the query strategy.
func (g *NeighborIndex) Mode() NeighborMode {
	return g.mode
}

// QueryInto appends the indices of candidate neighbors of pos to dst and
// returns the extended slice. The result is a superset of the particles
// within one cell size of pos in NeighborCells mode. In NeighborProbe mode
// it may contain duplicates and may omit neighbors across the domain edge.
func (g *NeighborIndex) QueryInto(dst []int, pos vecmath.Vec2) []int {
	if g.mode == NeighborProbe {
		return g.probeInto(dst, pos)
	}

	col, row := g.cellCoords(pos)
	for r := row - 1; r <= row+1; r++ {
		if r < 0 || r >= g.rows {
			continue
		}
		for c := col - 1; c <= col+1; c++ {
			if c < 0 || c >= g.cols {
				continue
			}
			dst = append(dst, g.cells[r*g.cols+c]...)
		}
	}
	return dst
}

func (g *NeighborIndex) probeInto(dst []int, pos vecmath.Vec2) []int {
	offsets := [3]float64{-g.cellSize, 0, g.cellSize}
	for _, ox := range offsets {
		for _, oy := range offsets {
			probe := vecmath.Vec2{X: pos.X + ox, Y: pos.Y + oy}
			if !g.contains(probe) {
				continue
			}
			col, row := g.cellCoords(probe)
			dst = append(dst, g.cells[row*g.cols+col]...)
		}
	}
	return dst
}

func (g *NeighborIndex) contains(pos vecmath.Vec2) bool {
	return pos.X >= g.min.X && pos.X <= g.max.X &&
		pos.Y >= g.min.Y && pos.Y <= g.max.Y
}

// cellCoords returns the clamped grid cell containing pos.
func (g *NeighborIndex) cellCoords(pos vecmath.Vec2) (col, row int) {
	col = clampInt(int(math.Floor((pos.X-g.min.X)/g.cellSize)), 0, g.cols-1)
	row = clampInt(int(math.Floor((pos.Y-g.min.Y)/g.cellSize)), 0, g.rows-1)
	return col, row
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
