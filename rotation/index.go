// Package rotation sorts the cyclic rotations of a text by prefix doubling
// and answers prefix queries against that order with binary search.
//
// An Index is built once and never modified, so any number of goroutines may
// query it concurrently.
package rotation

import (
	"fmt"

	"github.com/viniciusth/rmq"
)

const (
	alphabetSize = 256

	// terminal is the symbol appended in linear mode after shifting every
	// real symbol up by one.
	terminal = 0
)

type options struct {
	linear bool
	lcp    bool
}

type Option func(*options)

// WithLinearSuffixes makes the index behave like a suffix array: matches
// never wrap from the end of the text back to its start.
func WithLinearSuffixes() Option {
	return func(o *options) { o.linear = true }
}

// WithLCP builds the longest-common-prefix table of adjacent rotations. It
// costs two extra ints per symbol and lets UpperBound skip symbol comparisons.
func WithLCP() Option {
	return func(o *options) { o.lcp = true }
}

// Index is the sorted order of every rotation of a text together with the
// final rank of each rotation.
type Index struct {
	text  []int32 // symbols as sorted, shifted and terminated in linear mode
	index []int   // sorted rotation starts; index[n] is the sentinel
	rank  []int   // rank per rotation start; rank[n] is the sentinel

	// first is the first sorted position a query may report. In linear mode
	// position 0 always holds the terminal rotation.
	first  int
	linear bool
	passes int

	lcp    []int
	lcpRMQ *rmq.RMQHybridNaive[int]
}

// Build sorts the rotations of text, reading every byte as one symbol.
func Build(text []byte, opts ...Option) (*Index, error) {
	symbols := make([]int32, len(text))
	for i, c := range text {
		symbols[i] = int32(c)
	}
	return build(symbols, opts)
}

// BuildSymbols is Build for texts that are already decoded into symbols. Every
// symbol must lie in [0, 256).
func BuildSymbols(symbols []int32, opts ...Option) (*Index, error) {
	if err := checkSymbols(symbols); err != nil {
		return nil, err
	}
	return build(append([]int32(nil), symbols...), opts)
}

// build takes ownership of text.
func build(text []int32, opts []Option) (*Index, error) {
	if len(text) == 0 {
		return nil, fmt.Errorf("%w: empty text", ErrInvalidInput)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	alphabet := alphabetSize
	first := 0
	if o.linear {
		for i := range text {
			text[i]++
		}
		text = append(text, terminal)
		alphabet++
		first = 1
	}

	n := len(text)
	index := make([]int, n+1)
	rank := make([]int, n+1)
	index[n] = n
	rank[n] = -1

	bucketByFirstSymbol(text, alphabet, index, rank)
	passes := refine(index, rank, make([]int, n+1), n)

	x := &Index{
		text:   text,
		index:  index,
		rank:   rank,
		first:  first,
		linear: o.linear,
		passes: passes,
	}
	if o.lcp {
		x.lcp = buildLCP(text, index[:n], rank)
		if len(x.lcp) > 0 {
			x.lcpRMQ = rmq.NewRMQHybridNaive(x.lcp)
		}
	}
	return x, nil
}

// Len returns the number of rotations a query can report.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.text) - x.first
}

// Linear reports whether the index was built WithLinearSuffixes.
func (x *Index) Linear() bool {
	return x != nil && x.linear
}

// Passes returns how many doubling passes the build needed.
func (x *Index) Passes() int {
	if x == nil {
		return 0
	}
	return x.passes
}

// Offset returns the start offset of the rotation at sorted position pos,
// with 0 <= pos < Len().
func (x *Index) Offset(pos int) int {
	return x.index[x.first+pos]
}

// Order returns the start offsets of all rotations in sorted order.
func (x *Index) Order() []int {
	n := len(x.text)
	return append([]int(nil), x.index[x.first:n]...)
}

// Ranks returns the final rank of every rotation, indexed by start offset. In
// linear mode the terminal rotation is left out.
func (x *Index) Ranks() []int {
	n := len(x.text) - x.first
	return append([]int(nil), x.rank[:n]...)
}
