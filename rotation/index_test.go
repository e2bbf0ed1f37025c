package rotation

import (
	"errors"
	"index/suffixarray"
	"math/rand"
	"slices"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rotationOf(text []byte, start int) string {
	return string(text[start:]) + string(text[:start])
}

func genRandText(r *rand.Rand, size, alphabet int) []byte {
	text := make([]byte, size)
	for i := range text {
		text[i] = byte('a' + r.Intn(alphabet))
	}
	return text
}

var buildCases = map[string][]byte{
	"single character":    []byte("x"),
	"two characters":      []byte("ba"),
	"same characters":     []byte(strings.Repeat("a", 64)),
	"banana":              []byte("banana"),
	"abracadabra":         []byte("abracadabra"),
	"periodic":            []byte("abababababab"),
	"reverse sorted":      {5, 4, 3, 2, 1},
	"min/max edges":       {0, 255, 0, 255, 1},
	"separator joined":    []byte("cow\xffdog\xffcwd\xffcat\xff"),
	"mississippi":         []byte("mississippi"),
	"ACGTGCCTAGCCTACCGTG": []byte("ACGTGCCTAGCCTACCGTG"),
}

func TestBuildSortsRotations(t *testing.T) {
	for name, text := range buildCases {
		t.Run(name, func(t *testing.T) {
			x, err := Build(text)
			require.NoError(t, err)
			require.Equal(t, len(text), x.Len())

			order := x.Order()
			sorted := slices.Clone(order)
			slices.Sort(sorted)
			for i, v := range sorted {
				require.Equal(t, i, v, "order is not a permutation")
			}

			ranks := x.Ranks()
			for i := 0; i+1 < len(order); i++ {
				a, b := rotationOf(text, order[i]), rotationOf(text, order[i+1])
				require.LessOrEqual(t, a, b, "positions %d and %d out of order", i, i+1)
				if a == b {
					assert.Equal(t, ranks[order[i]], ranks[order[i+1]])
				} else {
					assert.Less(t, ranks[order[i]], ranks[order[i+1]])
				}
			}
		})
	}
}

func TestBuildRandom(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, alphabet := range []int{1, 2, 3, 4, 26} {
		for _, size := range []int{1, 2, 7, 64, 500} {
			text := genRandText(r, size, alphabet)
			x, err := Build(text)
			require.NoError(t, err)

			want := make([]string, size)
			for i := range text {
				want[i] = rotationOf(text, i)
			}
			sort.Strings(want)

			got := make([]string, size)
			for i, v := range x.Order() {
				got[i] = rotationOf(text, v)
			}
			require.Equal(t, want, got, "alphabet %d size %d", alphabet, size)
		}
	}
}

func TestBuildLinearMatchesSuffixArray(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for _, size := range []int{1, 2, 10, 300} {
		text := genRandText(r, size, 3)
		x, err := Build(text, WithLinearSuffixes())
		require.NoError(t, err)
		require.True(t, x.Linear())
		require.Equal(t, size, x.Len())

		order := x.Order()
		for i := 0; i+1 < len(order); i++ {
			require.Less(t, string(text[order[i]:]), string(text[order[i+1]:]))
		}

		sa := suffixarray.New(text)
		for _, q := range []string{"a", "ab", "ca", "bbb", string(text[size/2:])} {
			want := sa.Lookup([]byte(q), -1)
			got := x.QueryString(q)
			assert.ElementsMatch(t, want, got, "query %q", q)
		}
	}
}

func TestBuildIdempotent(t *testing.T) {
	text := []byte("she sells sea shells by the sea shore")
	a, err := Build(text)
	require.NoError(t, err)
	b, err := Build(text)
	require.NoError(t, err)
	assert.Equal(t, a.Order(), b.Order())
	assert.Equal(t, a.Ranks(), b.Ranks())
	assert.Equal(t, a.Passes(), b.Passes())
}

func TestBuildSameSymbol(t *testing.T) {
	text := []byte(strings.Repeat("z", 1000))
	x, err := Build(text)
	require.NoError(t, err)
	got := x.QueryString("z")
	require.Len(t, got, 1000)
	assert.ElementsMatch(t, x.Order(), got)

	ranks := x.Ranks()
	for _, r := range ranks {
		assert.Equal(t, 0, r)
	}
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = BuildSymbols([]int32{})
	require.ErrorIs(t, err, ErrInvalidInput)

	x, err := BuildSymbols([]int32{'a', 'b', 300, 'c'})
	require.Nil(t, x)
	require.ErrorIs(t, err, ErrAlphabetOutOfRange)
	var serr *SymbolError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 2, serr.Offset)
	assert.Equal(t, int32(300), serr.Value)

	_, err = BuildSymbols([]int32{-1})
	require.ErrorIs(t, err, ErrAlphabetOutOfRange)
}

func TestNilIndex(t *testing.T) {
	var x *Index
	assert.Equal(t, 0, x.Len())
	assert.Equal(t, 0, x.Passes())
	assert.False(t, x.Linear())
	assert.Nil(t, x.Query([]byte("a")))
	assert.Equal(t, 0, x.Count([]byte("a")))
}

func TestBuildSymbolsMatchesBuild(t *testing.T) {
	text := []byte("abracadabra")
	symbols := make([]int32, len(text))
	for i, c := range text {
		symbols[i] = int32(c)
	}
	a, err := Build(text)
	require.NoError(t, err)
	b, err := BuildSymbols(symbols)
	require.NoError(t, err)
	assert.Equal(t, a.Order(), b.Order())
	assert.Equal(t, a.Ranks(), b.Ranks())
}

func TestPassesBounded(t *testing.T) {
	// Distinct leading symbols are fully sorted by bucketing alone.
	x, err := Build([]byte("abcdefgh"))
	require.NoError(t, err)
	assert.Equal(t, 0, x.Passes())

	x, err = Build([]byte(strings.Repeat("ab", 64)))
	require.NoError(t, err)
	assert.Equal(t, 7, x.Passes())
}

func TestLCP(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	texts := [][]byte{
		[]byte("a"), []byte("abab"), []byte("aaaaaa"), []byte("abcabcabc"), []byte("mississippi"),
		genRandText(r, 200, 2), []byte(strings.Repeat(string(genRandText(r, 7, 2)), 9)),
	}
	for _, text := range texts {
		x, err := Build(text, WithLCP())
		require.NoError(t, err)
		order := x.Order()
		if len(order) < 2 {
			assert.Nil(t, x.lcp)
			continue
		}
		require.Len(t, x.lcp, len(order)-1)
		for i := 0; i+1 < len(order); i++ {
			a, b := rotationOf(text, order[i]), rotationOf(text, order[i+1])
			l := 0
			for l < len(a) && a[l] == b[l] {
				l++
			}
			assert.Equal(t, l, x.lcp[i], "text %q position %d", text, i)
		}
	}
}

func TestLCPPeriodicLarge(t *testing.T) {
	const m = 1 << 16
	x, err := Build([]byte(strings.Repeat("ab", m)), WithLCP())
	require.NoError(t, err)
	n := 2 * m
	require.Len(t, x.lcp, n-1)
	// m copies of "ab..." followed by m copies of "ba...".
	for i, l := range x.lcp {
		want := n
		if i == m-1 {
			want = 0
		}
		if l != want {
			t.Fatalf("lcp[%d] = %d, want %d", i, l, want)
		}
	}

	x, err = Build([]byte(strings.Repeat("a", n)), WithLCP())
	require.NoError(t, err)
	for i, l := range x.lcp {
		if l != n {
			t.Fatalf("lcp[%d] = %d, want %d", i, l, n)
		}
	}
	assert.Equal(t, n, x.Count([]byte("aaa")))
}
