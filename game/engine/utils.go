package engine

func blankGrid(rows, cols int) [][]int {
	grid := make([][]int, rows)
	for i := range grid {
		grid[i] = make([]int, cols)
	}
	return grid
}

func copyGrid(grid [][]int) [][]int {
	out := make([][]int, len(grid))
	for i, row := range grid {
		out[i] = make([]int, len(row))
		copy(out[i], row)
	}
	return out
}

func gridsEqual(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

// emptyCells lists zero cells in row-major order
func emptyCells(grid [][]int) []Location {
	var out []Location
	for i, row := range grid {
		for j, v := range row {
			if v == 0 {
				out = append(out, Location{Row: i, Column: j})
			}
		}
	}
	return out
}

func containsValue(grid [][]int, value int) bool {
	for _, row := range grid {
		for _, v := range row {
			if v == value {
				return true
			}
		}
	}
	return false
}

// hasAdjacentPair reports whether two orthogonal neighbours hold the same tile
func hasAdjacentPair(grid [][]int) bool {
	for i, row := range grid {
		for j, v := range row {
			if v == 0 {
				continue
			}
			if j+1 < len(row) && row[j+1] == v {
				return true
			}
			if i+1 < len(grid) && grid[i+1][j] == v {
				return true
			}
		}
	}
	return false
}

// MaxTile returns the largest value on the grid
func MaxTile(grid [][]int) int {
	best := 0
	for _, row := range grid {
		for _, v := range row {
			if v > best {
				best = v
			}
		}
	}
	return best
}

// SumTiles returns the total of all cell values
func SumTiles(grid [][]int) int {
	sum := 0
	for _, row := range grid {
		for _, v := range row {
			sum += v
		}
	}
	return sum
}

// CountEmpty counts zero cells
func CountEmpty(grid [][]int) int {
	return len(emptyCells(grid))
}

// IsPowerOfTwo reports whether v is a tile value (2, 4, 8, ...)
func IsPowerOfTwo(v int) bool {
	return v >= 2 && v&(v-1) == 0
}
