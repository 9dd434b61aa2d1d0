package grid

// Components groups the flagged cells of a rows×cols raster into 4-connected
// clusters. mask is row-major; mask[k] marks cell k as a member.
// Each component lists row-major offsets in BFS order; components appear in
// the order of their first cell, so the result is deterministic.
//
// Time:   O(rows·cols).
// Memory: O(rows·cols) for visited flags and output.
func Components(rows, cols int, mask []bool) [][]int {
	if rows <= 0 || cols <= 0 || len(mask) != rows*cols {
		return nil
	}
	offsets := [4][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}
	seen := make([]bool, len(mask))
	var comps [][]int

	for i0 := range mask {
		if !mask[i0] || seen[i0] {
			continue
		}
		// BFS to collect component
		queue := []int{i0}
		seen[i0] = true
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			ur, uc := u/cols, u%cols
			for _, d := range offsets {
				vr, vc := ur+d[0], uc+d[1]
				if vr < 0 || vr >= rows || vc < 0 || vc >= cols {
					continue
				}
				vi := vr*cols + vc
				if mask[vi] && !seen[vi] {
					seen[vi] = true
					queue = append(queue, vi)
				}
			}
		}
		comps = append(comps, queue)
	}

	return comps
}
