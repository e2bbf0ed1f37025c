package rotation

// buildLCP returns, for every pair of adjacent sorted positions i and i+1,
// how many leading symbols their rotations share, capped at len(text).
//
// Equal final ranks mark identical rotations, and those share all n symbols.
// A text with identical rotations is u^k for a primitive root u of length
// p = n/k, and every rotation appears in a run of exactly k copies. Two
// distinct rotations share fewer than p symbols, the same as the matching
// rotations of u, so Kasai runs over u alone and the carry stays valid.
func buildLCP(text []int32, order, rank []int) []int {
	n := len(order)
	if n < 2 {
		return nil
	}

	k := 1
	for k < n && rank[order[k]] == rank[order[0]] {
		k++
	}
	p := n / k

	// Runs of k copies; the first copy of run r is order[r*k].
	root := make([]int, p)
	for r := range root {
		root[r] = order[r*k] % p
	}
	rootLCP := kasai(text[:p], root)

	lcp := make([]int, n-1)
	for i := range lcp {
		if (i+1)%k != 0 {
			lcp[i] = n
		} else {
			lcp[i] = rootLCP[i/k]
		}
	}
	return lcp
}

// kasai computes the LCP of adjacent rotations of a text whose rotations are
// all distinct.
func kasai(text []int32, order []int) []int {
	n := len(order)
	if n < 2 {
		return make([]int, 0)
	}
	pos := make([]int, n)
	for i, v := range order {
		pos[v] = i
	}

	lcp := make([]int, n-1)
	l := 0
	for i := 0; i < n; i++ {
		if pos[i]+1 == n {
			l = 0
			continue
		}
		j := order[pos[i]+1]
		for l < n && text[wrap(i+l, n)] == text[wrap(j+l, n)] {
			l++
		}
		lcp[pos[i]] = l
		if l > 0 {
			l--
		}
	}
	return lcp
}

func wrap(i, n int) int {
	if i >= n {
		return i - n
	}
	return i
}
