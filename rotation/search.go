package rotation

import "sort"

// Query returns the start offsets of every rotation that begins with q, in
// sorted rotation order.
//
// A query longer than the text is cut to the text's length first, so in
// cyclic mode it matches exactly the rotations equal to that cut. In linear
// mode no suffix is that long and the result is empty.
func (x *Index) Query(q []byte) []int {
	if x.Len() == 0 {
		return nil
	}
	return x.query(x.encode(q))
}

func (x *Index) QueryString(q string) []int {
	return x.Query([]byte(q))
}

// QuerySymbols is Query for a query that is already decoded into symbols.
// Every symbol must lie in [0, 256).
func (x *Index) QuerySymbols(q []int32) ([]int, error) {
	if err := checkSymbols(q); err != nil {
		return nil, err
	}
	if x.Len() == 0 {
		return nil, nil
	}
	return x.query(x.encodeSymbols(q)), nil
}

// Count returns len(x.Query(q)) without materializing the offsets.
func (x *Index) Count(q []byte) int {
	lo, hi := x.Range(q)
	return hi - lo
}

// Range returns the half-open range [lo, hi) of sorted positions whose
// rotations begin with q.
func (x *Index) Range(q []byte) (lo, hi int) {
	if x.Len() == 0 {
		return 0, 0
	}
	enc := x.encode(q)
	l := x.lowerBound(enc)
	return l - x.first, x.upperBound(enc, l) - x.first
}

// LowerBound returns the first sorted position whose rotation is not below q,
// or Len() if there is none.
func (x *Index) LowerBound(q []byte) int {
	lo, _ := x.Range(q)
	return lo
}

// UpperBound returns the last sorted position whose rotation begins with q.
// It is LowerBound(q)-1 when nothing matches.
func (x *Index) UpperBound(q []byte) int {
	_, hi := x.Range(q)
	return hi - 1
}

func (x *Index) query(q []int32) []int {
	lo := x.lowerBound(q)
	hi := x.upperBound(q, lo)
	if hi <= lo {
		return nil
	}
	return append([]int(nil), x.index[lo:hi]...)
}

func (x *Index) shift() int32 {
	if x.linear {
		return 1
	}
	return 0
}

// maxSymbol sorts above every symbol of the text.
func (x *Index) maxSymbol() int32 {
	return alphabetSize + x.shift()
}

// encode cuts q to the text length and shifts it like the text. The result
// has room for one more symbol.
func (x *Index) encode(q []byte) []int32 {
	size := min(len(q), len(x.text))
	out := make([]int32, size, size+1)
	s := x.shift()
	for i := 0; i < size; i++ {
		out[i] = int32(q[i]) + s
	}
	return out
}

func (x *Index) encodeSymbols(q []int32) []int32 {
	size := min(len(q), len(x.text))
	out := make([]int32, size, size+1)
	s := x.shift()
	for i := 0; i < size; i++ {
		out[i] = q[i] + s
	}
	return out
}

// lowerBound returns the first absolute sorted position at or above q.
func (x *Index) lowerBound(q []int32) int {
	n := len(x.text)
	return x.first + sort.Search(n-x.first, func(i int) bool {
		return compareQuery(x.text, x.index[x.first+i], q) >= 0
	})
}

// upperBound returns one past the last absolute sorted position beginning
// with q, given lo = x.lowerBound(q).
func (x *Index) upperBound(q []int32, lo int) int {
	if x.lcpRMQ != nil {
		return x.upperBoundLCP(q, lo)
	}
	return x.upperBoundCompare(q, lo)
}

// upperBoundCompare searches for the first rotation above q followed by a
// symbol larger than any in the text. Every rotation starting with q sorts
// below that bound and every other rotation at or after lo sorts above it.
func (x *Index) upperBoundCompare(q []int32, lo int) int {
	n := len(x.text)
	bound := append(q, x.maxSymbol())
	return lo + sort.Search(n-lo, func(i int) bool {
		return compareQuery(x.text, x.index[lo+i], bound) > 0
	})
}

func (x *Index) upperBoundLCP(q []int32, lo int) int {
	n := len(x.text)
	if lo == n || matchLen(x.text, x.index[lo], q) < len(q) {
		return lo
	}
	// We have T T T F F F for "shares len(q) symbols with lo", find the
	// first F.
	return lo + 1 + sort.Search(n-lo-1, func(i int) bool {
		return x.lcp[x.lcpRMQ.Query(lo, lo+i)] < len(q)
	})
}
