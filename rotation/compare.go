package rotation

// comparator orders rotations by the rank of the rotation g symbols further
// on. Rotations compared by it are expected to already agree on their first g
// symbols, i.e. to belong to the same tie group.
type comparator struct {
	rank []int
	n    int
	g    int
}

func (c comparator) key(v int) int {
	v += c.g
	if v >= c.n {
		v -= c.n
	}
	return c.rank[v]
}

func (c comparator) less(v, w int) bool {
	return c.key(v) < c.key(w)
}

// compareQuery compares the rotation starting at start with q over the first
// min(n, len(q)) symbols, wrapping past the end of text. When those symbols
// are all equal the result is n-len(q), so a rotation that merely starts with
// a shorter q sorts after it.
func compareQuery(text []int32, start int, q []int32) int {
	n := len(text)
	size := min(n, len(q))
	for i := 0; i < size; i++ {
		j := start + i
		if j >= n {
			j -= n
		}
		if text[j] < q[i] {
			return -1
		}
		if text[j] > q[i] {
			return 1
		}
	}
	return n - len(q)
}

// matchLen returns the number of leading symbols the rotation at start shares
// with q, capped at min(n, len(q)).
func matchLen(text []int32, start int, q []int32) int {
	n := len(text)
	size := min(n, len(q))
	for i := 0; i < size; i++ {
		j := start + i
		if j >= n {
			j -= n
		}
		if text[j] != q[i] {
			return i
		}
	}
	return size
}
