package kwic

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/viniciusth/rmq"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/viniciusth/kwic/offsets"
	"github.com/viniciusth/kwic/rotation"
)

var (
	ErrInvalidInput      = errors.New("kwic: invalid input")
	ErrInvalidUTF8       = fmt.Errorf("%w: invalid UTF-8 encoding in records", ErrInvalidInput)
	ErrSeparatorInRecord = fmt.Errorf("%w: separator occurs inside a record", ErrInvalidInput)
	ErrInvalidQuery      = errors.New("kwic: invalid query")
)

const (
	// DefaultSeparator is not a valid UTF-8 byte, so text records never
	// contain it. It is also the largest byte value.
	DefaultSeparator = 0xFF
)

type Builder struct {
	records         []string
	separator       byte
	useLCP          bool
	useDocListing   bool
	caseInsensitive bool
	normalize       bool
	linear          bool
	logger          *zap.Logger
}

func NewBuilder(records []string) *Builder {
	return &Builder{
		records:       records,
		separator:     DefaultSeparator,
		useLCP:        true,
		useDocListing: true,
		logger:        zap.NewNop(),
	}
}

// Separator sets the byte appended after every record. It must not occur in
// any record.
func (b *Builder) Separator(sep byte) *Builder {
	b.separator = sep
	return b
}

// Skips the LCP array construction, upper bounds are then found with a second
// comparison-based binary search instead of range minimum queries.
// Saves O(|S|) memory.
func (b *Builder) SkipLCP() *Builder {
	b.useLCP = false
	return b
}

// Skips the document listing structures construction.
// FindKMatches then scans the whole match range, which can take O(|S|) time.
// Saves O(|S|) memory.
func (b *Builder) SkipDocListing() *Builder {
	b.useDocListing = false
	return b
}

// Makes the search case insensitive by Unicode case folding records and
// queries.
func (b *Builder) CaseInsensitive() *Builder {
	b.caseInsensitive = true
	return b
}

// Normalizes records and queries with NFC.
func (b *Builder) Normalize() *Builder {
	b.normalize = true
	return b
}

// Stops matches from running off the end of the joined text back into the
// first record.
func (b *Builder) LinearSuffixes() *Builder {
	b.linear = true
	return b
}

func (b *Builder) Logger(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	b.logger = logger
	return b
}

func (b *Builder) Build() (*KWIC, error) {
	start := time.Now()
	if len(b.records) == 0 {
		return nil, fmt.Errorf("%w: no records", ErrInvalidInput)
	}

	transformed := make([]string, len(b.records))
	for i, record := range b.records {
		if (b.caseInsensitive || b.normalize) && !utf8.ValidString(record) {
			return nil, fmt.Errorf("%w: record %d", ErrInvalidUTF8, i)
		}
		w := applyTransforms(record, b.caseInsensitive, b.normalize)
		if j := strings.IndexByte(w, b.separator); j >= 0 {
			return nil, fmt.Errorf("%w: record %d at byte %d", ErrSeparatorInRecord, i, j)
		}
		transformed[i] = w
	}

	text, starts := joinRecords(transformed, b.separator)
	recordOffsets := offsets.New()
	for id, s := range starts {
		if err := recordOffsets.Add(s, id); err != nil {
			return nil, err
		}
	}

	var opts []rotation.Option
	if b.useLCP {
		opts = append(opts, rotation.WithLCP())
	}
	if b.linear {
		opts = append(opts, rotation.WithLinearSuffixes())
	}
	index, err := rotation.Build(text, opts...)
	if err != nil {
		return nil, err
	}

	k := &KWIC{
		index:           index,
		offsets:         recordOffsets,
		records:         b.records,
		transformed:     transformed,
		separator:       b.separator,
		caseInsensitive: b.caseInsensitive,
		normalize:       b.normalize,
	}
	if b.useDocListing {
		k.recordAt = buildRecordAtArray(index, recordOffsets)
		k.prev = buildPrevArray(k.recordAt, len(b.records))
		k.prevRMQ = rmq.NewRMQHybridNaive(k.prev)
	}

	b.logger.Debug("built rotation index",
		zap.Int("records", len(b.records)),
		zap.Int("symbols", len(text)),
		zap.Int("passes", index.Passes()),
		zap.Bool("lcp", b.useLCP),
		zap.Bool("docListing", b.useDocListing),
		zap.Bool("linear", b.linear),
		zap.Duration("took", time.Since(start)))
	return k, nil
}

// KWIC answers keyword-in-context queries over a fixed set of records.
// It is immutable and safe for concurrent use.
type KWIC struct {
	index           *rotation.Index
	offsets         *offsets.Index
	records         []string
	transformed     []string
	separator       byte
	recordAt        []int
	prev            []int
	prevRMQ         *rmq.RMQHybridNaive[int]
	caseInsensitive bool
	normalize       bool
}

// Joins every record followed by sep and returns the start offset of each.
func joinRecords(records []string, sep byte) ([]byte, []int) {
	size := 0
	for _, r := range records {
		size += len(r) + 1
	}
	text := make([]byte, 0, size)
	starts := make([]int, len(records))
	for i, r := range records {
		starts[i] = len(text)
		text = append(text, r...)
		text = append(text, sep)
	}
	return text, starts
}

func applyTransforms(word string, caseInsensitive bool, normalize bool) string {
	if caseInsensitive {
		word = cases.Fold().String(word)
	}
	if normalize {
		word = norm.NFC.String(word)
	}
	return word
}

// recordAt[i] is the record owning the rotation at sorted position i.
func buildRecordAtArray(index *rotation.Index, recordOffsets *offsets.Index) []int {
	recordAt := make([]int, index.Len())
	for i := range recordAt {
		recordAt[i] = recordOffsets.ID(index.Offset(i))
	}
	return recordAt
}

// Builds the prev array for the doc listing problem.
// For each sorted position i, prev[i] is the previous sorted position owned by
// the same record, or -1 if there is none.
func buildPrevArray(recordAt []int, numRecords int) []int {
	prev := make([]int, len(recordAt))
	recordPrev := make([]int, numRecords)
	for i := range recordPrev {
		recordPrev[i] = -1
	}

	for i, r := range recordAt {
		prev[i] = recordPrev[r]
		recordPrev[r] = i
	}

	return prev
}

func (k *KWIC) prepareQuery(query string) (string, error) {
	if (k.caseInsensitive || k.normalize) && !utf8.ValidString(query) {
		return "", fmt.Errorf("%w: invalid UTF-8", ErrInvalidQuery)
	}
	q := applyTransforms(query, k.caseInsensitive, k.normalize)
	if strings.IndexByte(q, k.separator) >= 0 {
		return "", fmt.Errorf("%w: contains the record separator", ErrInvalidQuery)
	}
	return q, nil
}

// Find returns, for every occurrence of query, the id of the record it occurs
// in. Occurrences come in sorted rotation order, so a record shows up once per
// occurrence.
func (k *KWIC) Find(query string) ([]int, error) {
	q, err := k.prepareQuery(query)
	if err != nil {
		return nil, err
	}
	matches := k.index.QueryString(q)
	ids := make([]int, len(matches))
	for i, off := range matches {
		ids[i] = k.offsets.ID(off)
	}
	return ids, nil
}

// FindKMatches returns up to k distinct ids of records containing query.
func (k *KWIC) FindKMatches(query string, limit int) ([]int, error) {
	q, err := k.prepareQuery(query)
	if err != nil {
		return nil, err
	}

	// Every sorted position in [l, r) is a match for the query.
	l, r := k.index.Range([]byte(q))
	if l >= r || limit <= 0 {
		return nil, nil
	}

	matches := make([]int, 0, min(limit, r-l))
	if k.prev != nil {
		return recursiveFindKMatches(l, l, r-1, limit, k.recordAt, matches, k.prev, k.prevRMQ), nil
	}

	used := make(map[int]bool)
	for i := l; i < r && len(matches) < limit; i++ {
		id := k.offsets.ID(k.index.Offset(i))
		if used[id] {
			continue
		}
		used[id] = true
		matches = append(matches, id)
	}
	return matches, nil
}

func (k *KWIC) FindKMatchesString(query string, limit int) ([]string, error) {
	ids, err := k.FindKMatches(query, limit)
	if err != nil {
		return nil, err
	}
	matches := make([]string, len(ids))
	for i := range matches {
		matches[i] = k.records[ids[i]]
	}
	return matches, nil
}

func recursiveFindKMatches(baseL, l, r, k int, recordAt, matches, prev []int, rmq *rmq.RMQHybridNaive[int]) []int {
	if k <= len(matches) || l > r {
		return matches
	}

	// prev[p] < l, since if prev[p] >= l, prev[p] ∈ [l, r] and we would have prev[prev[p]] < prev[p], a contradiction.
	p := rmq.Query(l, r)

	// nothing in [l, r] is outside of the original l anymore, no more new elements.
	if prev[p] >= baseL {
		return matches
	}
	matches = append(matches, recordAt[p])
	matches = recursiveFindKMatches(baseL, l, p-1, k, recordAt, matches, prev, rmq)
	return recursiveFindKMatches(baseL, p+1, r, k, recordAt, matches, prev, rmq)
}

// Records returns the records as they were given to the builder.
func (k *KWIC) Records() []string {
	return k.records
}

func (k *KWIC) Record(id int) string {
	return k.records[id]
}

// Len returns the length of the joined text, separators included.
func (k *KWIC) Len() int {
	return k.index.Len()
}
