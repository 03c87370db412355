package grid

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Wall render heights for the two map-file wall glyphs.
const (
	tallWallHeight = 16.0
	lowWallHeight  = 8.0
)

// SpawnPoint places one agent on the map at load time.
type SpawnPoint struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Type string  `yaml:"type"`
}

// MapFile is the on-disk map format: a character grid plus agent spawns.
// Grid glyphs: 'X' tall wall, 'x' low wall, '.' empty.
type MapFile struct {
	Grid   []string     `yaml:"grid"`
	Agents []SpawnPoint `yaml:"agents"`
}

// Validate checks the map file's structural invariants.
//
// Postcondition: Returns nil iff the grid is non-empty, every row has the
// same length, every glyph is one of 'X', 'x', '.', and every spawn has a
// non-empty type.
func (m *MapFile) Validate() error {
	if len(m.Grid) == 0 {
		return fmt.Errorf("map: grid must not be empty")
	}
	width := len(m.Grid[0])
	if width == 0 {
		return fmt.Errorf("map: grid rows must not be empty")
	}
	for i, row := range m.Grid {
		if len(row) != width {
			return fmt.Errorf("map: row %d has length %d, want %d", i, len(row), width)
		}
		for j, ch := range row {
			switch ch {
			case 'X', 'x', '.':
			default:
				return fmt.Errorf("map: row %d col %d: unknown glyph %q", i, j, string(ch))
			}
		}
	}
	for i, sp := range m.Agents {
		if sp.Type == "" {
			return fmt.Errorf("map: agent spawn %d: type must not be empty", i)
		}
	}
	return nil
}

// LoadMapFile parses and validates a map file from path.
//
// Precondition: path must be a readable YAML map file.
// Postcondition: Returns a validated *MapFile or a non-nil error.
func LoadMapFile(path string) (*MapFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map file %q: %w", path, err)
	}
	var mf MapFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parsing map file %q: %w", path, err)
	}
	if err := mf.Validate(); err != nil {
		return nil, err
	}
	return &mf, nil
}

// Build converts the character grid into a collision Grid. Row 0 of the file
// is the top of the map, so rows are flipped to keep Y increasing upward.
//
// Precondition: m must have passed Validate.
func (m *MapFile) Build() *Grid {
	height := len(m.Grid)
	width := len(m.Grid[0])
	g := New(width, height)
	for rowIdx, row := range m.Grid {
		y := height - 1 - rowIdx
		for x, ch := range row {
			switch ch {
			case 'X':
				g.SetWall(Cell{x, y}, tallWallHeight)
			case 'x':
				g.SetWall(Cell{x, y}, lowWallHeight)
			}
		}
	}
	return g
}
