// Package path implements grid-based A* pathfinding between world positions.
// Search runs over 4-directional neighbors with unit edge cost and a
// Manhattan heuristic; results are world-space waypoints at cell centers.
package path

import (
	"container/heap"
	"math"

	"github.com/duskfall/duskfall/internal/game/geom"
	"github.com/duskfall/duskfall/internal/game/grid"
)

// WorldToCell maps a world position to the grid cell containing it.
func WorldToCell(p geom.Vec2) grid.Cell {
	return grid.Cell{
		X: int(math.Floor(p.X / grid.CellSize)),
		Y: int(math.Floor(p.Y / grid.CellSize)),
	}
}

// CellToWorld returns the world-space center of c.
//
// Postcondition: WorldToCell(CellToWorld(c)) == c for all cells.
func CellToWorld(c grid.Cell) geom.Vec2 {
	return geom.Vec2{
		X: float64(c.X)*grid.CellSize + grid.CellSize/2,
		Y: float64(c.Y)*grid.CellSize + grid.CellSize/2,
	}
}

var neighborOffsets = [4]grid.Cell{
	{X: 0, Y: 1},
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
}

type node struct {
	cell grid.Cell
	// f is g + Manhattan heuristic to the goal.
	f     int
	g     int
	index int
}

type nodeHeap []*node

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].f < h[j].f }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *nodeHeap) Push(x interface{}) { n := x.(*node); n.index = len(*h); *h = append(*h, n) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*h = old[:len(old)-1]
	return n
}

func manhattan(a, b grid.Cell) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Find searches for a path from start to goal (both world positions) on g.
// If the goal cell is solid it fails immediately: agents never path onto a
// wall. On success the returned waypoints are cell centers, one per cell of
// the route including the start cell.
//
// Postcondition: When ok, the slice is non-empty, its first waypoint is the
// start cell's center, and its last is the goal cell's center. When !ok the
// slice is nil; callers degrade via their state-machine fallback.
func Find(g *grid.Grid, start, goal geom.Vec2) ([]geom.Vec2, bool) {
	startCell := WorldToCell(start)
	goalCell := WorldToCell(goal)

	if g.IsSolid(goalCell) {
		return nil, false
	}
	if startCell == goalCell {
		return []geom.Vec2{CellToWorld(startCell)}, true
	}

	open := &nodeHeap{}
	heap.Init(open)
	heap.Push(open, &node{cell: startCell, g: 0, f: manhattan(startCell, goalCell)})

	cameFrom := make(map[grid.Cell]grid.Cell)
	bestG := map[grid.Cell]int{startCell: 0}

	for open.Len() > 0 {
		current := heap.Pop(open).(*node)
		if current.cell == goalCell {
			return reconstruct(cameFrom, startCell, goalCell), true
		}
		// A stale heap entry: a cheaper route to this cell was already expanded.
		if current.g > bestG[current.cell] {
			continue
		}
		for _, off := range neighborOffsets {
			next := grid.Cell{X: current.cell.X + off.X, Y: current.cell.Y + off.Y}
			if g.IsSolid(next) {
				continue
			}
			tentative := current.g + 1
			if known, seen := bestG[next]; seen && tentative >= known {
				continue
			}
			bestG[next] = tentative
			cameFrom[next] = current.cell
			heap.Push(open, &node{
				cell: next,
				g:    tentative,
				f:    tentative + manhattan(next, goalCell),
			})
		}
	}
	return nil, false
}

func reconstruct(cameFrom map[grid.Cell]grid.Cell, start, goal grid.Cell) []geom.Vec2 {
	var cells []grid.Cell
	for c := goal; ; {
		cells = append(cells, c)
		if c == start {
			break
		}
		c = cameFrom[c]
	}
	waypoints := make([]geom.Vec2, len(cells))
	for i, c := range cells {
		waypoints[len(cells)-1-i] = CellToWorld(c)
	}
	return waypoints
}
