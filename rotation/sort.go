package rotation

import "math/bits"

const insertionSortThreshold = 12

type span struct {
	lo, hi int // inclusive
	limit  int
}

// groupSorter sorts one tie group of the rotation array at a time. It keeps
// an explicit stack instead of recursing and always continues with the
// smaller side of a partition, so the stack stays O(log n) deep no matter how
// the keys are distributed. Spans that keep partitioning badly fall back to
// heapsort once their depth budget is spent.
//
// The zero value is ready to use. A groupSorter is not safe for concurrent use.
type groupSorter struct {
	stack []span
}

func ilog2(n int) int {
	return bits.Len(uint(n)) - 1
}

func (s *groupSorter) sort(index []int, c comparator, left, right int) {
	if right <= left {
		return
	}
	s.stack = append(s.stack[:0], span{left, right, 2 * ilog2(right-left+1)})
	for len(s.stack) > 0 {
		top := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]

		lo, hi, limit := top.lo, top.hi, top.limit
		for hi-lo+1 > insertionSortThreshold {
			if limit == 0 {
				heapSort(index, c, lo, hi)
				lo, hi = 0, -1
				break
			}
			limit--

			lt, gt := partition3(index, c, lo, hi)
			if lt-lo < hi-gt {
				s.stack = append(s.stack, span{gt + 1, hi, limit})
				hi = lt - 1
			} else {
				s.stack = append(s.stack, span{lo, lt - 1, limit})
				lo = gt + 1
			}
		}
		insertionSort(index, c, lo, hi)
	}
}

// partition3 splits index[lo..hi] around the key of its rightmost element
// after a median-of-three swap. On return index[lo:lt] sorts below the pivot,
// index[lt:gt+1] ties with it and index[gt+1:hi+1] sorts above it.
func partition3(index []int, c comparator, lo, hi int) (lt, gt int) {
	mid := int(uint(lo+hi) >> 1)
	medianToRight(index, c, lo, mid, hi)

	pivot := c.key(index[hi])
	lt, gt = lo, hi
	for i := lo; i <= gt; {
		k := c.key(index[i])
		switch {
		case k < pivot:
			index[lt], index[i] = index[i], index[lt]
			lt++
			i++
		case k > pivot:
			index[i], index[gt] = index[gt], index[i]
			gt--
		default:
			i++
		}
	}
	return lt, gt
}

func medianToRight(index []int, c comparator, a, b, h int) {
	ka, kb, kh := c.key(index[a]), c.key(index[b]), c.key(index[h])
	switch {
	case (ka <= kb && kb <= kh) || (kh <= kb && kb <= ka):
		index[b], index[h] = index[h], index[b]
	case (kb <= ka && ka <= kh) || (kh <= ka && ka <= kb):
		index[a], index[h] = index[h], index[a]
	}
}

func insertionSort(index []int, c comparator, lo, hi int) {
	for i := lo + 1; i <= hi; i++ {
		for j := i; j > lo && c.less(index[j], index[j-1]); j-- {
			index[j], index[j-1] = index[j-1], index[j]
		}
	}
}

func heapSort(index []int, c comparator, lo, hi int) {
	n := hi - lo + 1
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(index[lo:hi+1], c, i, n)
	}
	for end := n - 1; end > 0; end-- {
		index[lo], index[lo+end] = index[lo+end], index[lo]
		siftDown(index[lo:hi+1], c, 0, end)
	}
}

func siftDown(heap []int, c comparator, root, n int) {
	for {
		child := 2*root + 1
		if child >= n {
			return
		}
		if child+1 < n && c.less(heap[child], heap[child+1]) {
			child++
		}
		if !c.less(heap[root], heap[child]) {
			return
		}
		heap[root], heap[child] = heap[child], heap[root]
		root = child
	}
}
