package rotation

// refine runs doubling passes over index until every rotation of an n-symbol
// text sits in a group of its own (or in a group of literally identical
// rotations). index and rank carry one sentinel slot at position n whose rank
// is below every real rank; scratch must be as long as rank. It returns the
// number of passes that found work to do.
//
// Ranks are always the position of the first slot of the rotation's group, so
// a group split at offset j of a run starting at left gets rank base+j-left.
func refine(index, rank, scratch []int, n int) int {
	var (
		sorter groupSorter
		passes int
	)
	for g := 1; g < n; g += g {
		c := comparator{rank: rank, n: n, g: g}
		tied := false

		count := 0
		for i := 1; i <= n; i++ {
			if rank[index[i]] == rank[index[i-1]] {
				count++
				continue
			}
			if count == 0 {
				continue
			}
			left, right := i-1-count, i-1
			count = 0
			tied = true

			sorter.sort(index, c, left, right)

			base := rank[index[left]]
			r := base
			for j := left + 1; j <= right; j++ {
				if c.less(index[j-1], index[j]) {
					r = base + j - left
				}
				scratch[index[j]] = r
			}
			// Ranks of the run are read by the comparisons above and must
			// not change until the whole run has been assigned.
			for j := left + 1; j <= right; j++ {
				rank[index[j]] = scratch[index[j]]
			}
		}
		if !tied {
			break
		}
		passes++
	}
	return passes
}
