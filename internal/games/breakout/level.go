// Package breakout implements a multi-ball brick breaker: an engine-agnostic
// simulation driven by collision events and ticks, plus the platform
// adapter that hosts it.
package breakout

import "fmt"

// Health codes stored in a Level grid.
const (
	SlotEmpty  = 0  // No brick
	SlotRandom = -1 // Health rolled from the configured range at start
)

// Level describes which grid slots hold bricks and how tough they are.
type Level struct {
	ID     string
	Name   string
	Width  int     // Number of brick columns
	Height int     // Number of brick rows
	Slots  [][]int // Health codes [row][col]
}

// GridLevel returns a full rows x cols grid of random-health bricks.
func GridLevel(rows, cols int) *Level {
	level := &Level{
		ID:     "grid",
		Name:   "Grid",
		Width:  cols,
		Height: rows,
		Slots:  make([][]int, rows),
	}
	for row := range rows {
		level.Slots[row] = make([]int, cols)
		for col := range cols {
			level.Slots[row][col] = SlotRandom
		}
	}
	return level
}

// Count returns the number of bricks the level places.
func (l *Level) Count() int {
	count := 0
	for _, row := range l.Slots {
		for _, s := range row {
			if s != SlotEmpty {
				count++
			}
		}
	}
	return count
}

// ParseLevel creates a Level from an ASCII map.
// Characters:
//
//	'#' = brick with random health
//	'1'-'9' = brick with that many hit points
//	anything else = empty
func ParseLevel(id, name string, lines []string) *Level {
	if len(lines) == 0 {
		return &Level{ID: id, Name: name}
	}

	// Find max width
	maxWidth := 0
	for _, line := range lines {
		if len(line) > maxWidth {
			maxWidth = len(line)
		}
	}

	level := &Level{
		ID:     id,
		Name:   name,
		Width:  maxWidth,
		Height: len(lines),
		Slots:  make([][]int, len(lines)),
	}

	for row, line := range lines {
		level.Slots[row] = make([]int, maxWidth)
		for col := range maxWidth {
			var ch byte = '.'
			if col < len(line) {
				ch = line[col]
			}

			switch {
			case ch == '#':
				level.Slots[row][col] = SlotRandom
			case ch >= '1' && ch <= '9':
				level.Slots[row][col] = int(ch - '0')
			default:
				level.Slots[row][col] = SlotEmpty
			}
		}
	}

	return level
}

// BuiltinLevels returns all built-in layouts for the default 10-column grid.
func BuiltinLevels() []*Level {
	return []*Level{
		GridLevel(6, 10),

		ParseLevel("pyramid", "Pyramid", []string{
			"....##....",
			"...####...",
			"..######..",
			".########.",
			"##########",
			"##########",
		}),

		ParseLevel("checker", "Checkerboard", []string{
			"#.#.#.#.#.",
			".#.#.#.#.#",
			"#.#.#.#.#.",
			".#.#.#.#.#",
			"#.#.#.#.#.",
			".#.#.#.#.#",
		}),

		ParseLevel("diamond", "Diamond", []string{
			"....33....",
			"...2222...",
			"..111111..",
			"...2222...",
			"....33....",
		}),

		ParseLevel("fortress", "Fortress", []string{
			"3333333333",
			"3........3",
			"3.######.3",
			"3.######.3",
			"3........3",
			"3333333333",
		}),
	}
}

// LevelByID looks up a built-in layout.
func LevelByID(id string) (*Level, error) {
	for _, l := range BuiltinLevels() {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, fmt.Errorf("breakout: unknown level %q", id)
}
