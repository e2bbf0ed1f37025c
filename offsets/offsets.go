// Package offsets maps global text offsets back to the records they came from.
package offsets

import (
	"errors"
	"fmt"

	"github.com/google/btree"
)

var ErrDuplicateStart = errors.New("offsets: record start already present")

const degree = 32

type entry struct {
	start int
	id    int
}

func lessEntry(a, b entry) bool {
	return a.start < b.start
}

// Index is an ordered map from the start offset of each record to its id.
// Once filled it is only read, and reads are safe for concurrent use.
type Index struct {
	tree *btree.BTreeG[entry]
}

func New() *Index {
	return &Index{tree: btree.NewG(degree, lessEntry)}
}

// Add records that the record id starts at offset start.
func (x *Index) Add(start, id int) error {
	if _, ok := x.tree.Get(entry{start: start}); ok {
		return fmt.Errorf("%w: %d", ErrDuplicateStart, start)
	}
	x.tree.ReplaceOrInsert(entry{start: start, id: id})
	return nil
}

// Floor returns the record with the largest start offset not above offset.
func (x *Index) Floor(offset int) (start, id int, ok bool) {
	x.tree.DescendLessOrEqual(entry{start: offset}, func(e entry) bool {
		start, id, ok = e.start, e.id, true
		return false
	})
	return start, id, ok
}

// ID is Floor without the start offset; it returns -1 when offset precedes
// every record.
func (x *Index) ID(offset int) int {
	_, id, ok := x.Floor(offset)
	if !ok {
		return -1
	}
	return id
}

func (x *Index) Len() int {
	return x.tree.Len()
}
