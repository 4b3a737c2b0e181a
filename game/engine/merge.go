package engine

// MergeLine merges the compacted, non-zero values of one row or column.
// towardEnd merges toward the last index (Right/Down); otherwise toward index 0.
// The result has len(values) entries; zeros fill the side tiles moved away from.
// A tile produced by a merge never merges again in the same pass.
func MergeLine(values []int, towardEnd bool) []int {
	if towardEnd {
		return MergeRight(values)
	}
	return MergeLeft(values)
}

// MergeRight merges toward the last index, scanning from that edge.
func MergeRight(values []int) []int {
	return reverse(MergeLeft(reverse(values)))
}

// MergeLeft merges toward index 0, scanning from that edge.
func MergeLeft(values []int) []int {
	out, _ := mergeLeading(values)
	return out
}

// mergeLeading does the single merge pass toward index 0 and reports how many pairs merged
func mergeLeading(values []int) ([]int, int) {
	out := make([]int, len(values))
	n, merges := 0, 0
	for i := 0; i < len(values); i++ {
		v := values[i]
		if i+1 < len(values) && values[i+1] == v {
			out[n] = v * 2
			merges++
			i++ // second half of the pair is consumed
		} else {
			out[n] = v
		}
		n++
	}
	return out, merges
}

// shiftLine compacts and merges one full-length line toward the requested edge.
// It returns the new line and the number of merged pairs.
func shiftLine(line []int, towardEnd, mergeDisabled bool) ([]int, int) {
	tiles := nonZero(line)
	out := make([]int, len(line))
	if len(tiles) == 0 {
		return out, 0
	}
	if towardEnd {
		tiles = reverse(tiles)
	}
	merged, merges := tiles, 0
	if !mergeDisabled {
		merged, merges = mergeLeading(tiles)
	}
	// merged is padded with trailing zeros up to len(tiles); the rest of out is already zero
	copy(out, merged)
	if towardEnd {
		out = reverse(out)
	}
	return out, merges
}

// nonZero returns the non-zero values of line in order
func nonZero(line []int) []int {
	out := make([]int, 0, len(line))
	for _, v := range line {
		if v != 0 {
			out = append(out, v)
		}
	}
	return out
}

func reverse(values []int) []int {
	out := make([]int, len(values))
	for i, v := range values {
		out[len(values)-1-i] = v
	}
	return out
}
