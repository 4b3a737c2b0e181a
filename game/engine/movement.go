package engine

import "fmt"

// Shift slides every row (Left/Right) or column (Up/Down) toward dir, merging equal
// neighbours once. The new grid is built from the pre-move snapshot and swapped in
// whole. It reports whether any cell changed. Shift never spawns.
func (e *GameEngine) Shift(dir Direction) (bool, error) {
	if !dir.Valid() {
		return false, fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}

	next, merges := shiftGrid(e.grid, dir, e.config.MergeDisabled)

	moved := !gridsEqual(e.grid, next)
	e.grid = next
	e.lastMerges = merges
	if containsValue(e.grid, e.config.Target()) {
		e.won = true
	}
	return moved, nil
}

// CanShift reports whether shifting toward dir would change the grid
func (e *GameEngine) CanShift(dir Direction) bool {
	return CanShift(e.grid, dir, e.config.MergeDisabled)
}

// CanShift reports whether shifting grid toward dir under the given merge rule
// would change it. grid is not modified.
func CanShift(grid [][]int, dir Direction, mergeDisabled bool) bool {
	if !dir.Valid() || len(grid) == 0 {
		return false
	}
	next, _ := shiftGrid(grid, dir, mergeDisabled)
	return !gridsEqual(grid, next)
}

// shiftGrid builds the shifted copy of grid and counts merged pairs
func shiftGrid(grid [][]int, dir Direction, mergeDisabled bool) ([][]int, int) {
	rows, cols := len(grid), len(grid[0])
	next := blankGrid(rows, cols)
	merges := 0

	switch dir {
	case Left, Right:
		for i := 0; i < rows; i++ {
			line, n := shiftLine(grid[i], dir == Right, mergeDisabled)
			next[i] = line
			merges += n
		}
	case Up, Down:
		for j := 0; j < cols; j++ {
			column := make([]int, rows)
			for i := 0; i < rows; i++ {
				column[i] = grid[i][j]
			}
			line, n := shiftLine(column, dir == Down, mergeDisabled)
			for i := 0; i < rows; i++ {
				next[i][j] = line[i]
			}
			merges += n
		}
	}
	return next, merges
}

// SpawnTile places a 2 in a uniformly chosen empty cell and returns where.
// On a full grid it returns ErrGridFull, leaves the grid alone and marks the game over.
func (e *GameEngine) SpawnTile() (Location, error) {
	empty := emptyCells(e.grid)
	if len(empty) == 0 {
		e.over = true
		return Location{}, ErrGridFull
	}

	loc := empty[e.random.Intn(len(empty))]
	e.grid[loc.Row][loc.Column] = SpawnValue
	e.lastSpawn = &loc
	return loc, nil
}
