// Package grid provides the static collision grid the simulation runs on:
// an integer-cell occupancy map answering solidity and box-fit queries.
package grid

import "math"

// CellSize is the width of one grid cell in world units.
const CellSize = 8.0

// Cell is an integer grid coordinate.
type Cell struct {
	X int
	Y int
}

// TileKind discriminates the tile variants stored in a Grid.
type TileKind int

const (
	// TileEmpty is a walkable tile.
	TileEmpty TileKind = iota
	// TileWall is a solid tile with a render height.
	TileWall
)

// Tile is one cell's content. Height is only meaningful for TileWall.
type Tile struct {
	Kind   TileKind
	Height float64
}

// Grid is a width×height collision map over integer cells. Cells outside
// [0,Width)×[0,Height) are treated as solid. Unmapped in-bounds cells are
// empty. Grid is read-only during a simulation tick; wall mutations must be
// serialized between ticks by the caller.
type Grid struct {
	Width  int
	Height int
	tiles  map[Cell]Tile
}

// New creates an empty Grid of the given dimensions.
//
// Precondition: width and height must be >= 1.
func New(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		tiles:  make(map[Cell]Tile),
	}
}

// IsSolid reports whether the cell blocks movement. Out-of-bounds cells are
// always solid, keeping every geometric query total.
func (g *Grid) IsSolid(c Cell) bool {
	if c.X < 0 || c.Y < 0 || c.X >= g.Width || c.Y >= g.Height {
		return true
	}
	return g.tiles[c].Kind == TileWall
}

// Tile returns the tile stored at c. Out-of-bounds cells report a wall.
func (g *Grid) Tile(c Cell) Tile {
	if c.X < 0 || c.Y < 0 || c.X >= g.Width || c.Y >= g.Height {
		return Tile{Kind: TileWall, Height: 0}
	}
	return g.tiles[c]
}

// CanOccupy reports whether an axis-aligned square of side 2*halfSize
// centered at (worldX, worldY) overlaps only non-solid cells. Every cell
// touched by the box's bounding range is checked, inclusive on both ends.
//
// Postcondition: Returns false if any overlapped cell IsSolid.
func (g *Grid) CanOccupy(worldX, worldY, halfSize float64) bool {
	minX := int(math.Floor((worldX - halfSize) / CellSize))
	maxX := int(math.Floor((worldX + halfSize) / CellSize))
	minY := int(math.Floor((worldY - halfSize) / CellSize))
	maxY := int(math.Floor((worldY + halfSize) / CellSize))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if g.IsSolid(Cell{x, y}) {
				return false
			}
		}
	}
	return true
}

// SetWall places a wall of the given height at c. In-bounds only; setting an
// out-of-bounds cell is a no-op since those already read as solid.
func (g *Grid) SetWall(c Cell, height float64) {
	if c.X < 0 || c.Y < 0 || c.X >= g.Width || c.Y >= g.Height {
		return
	}
	g.tiles[c] = Tile{Kind: TileWall, Height: height}
}

// ClearWall removes any wall at c, leaving the cell empty.
func (g *Grid) ClearWall(c Cell) {
	delete(g.tiles, c)
}
