package main

import (
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"runtime/pprof"
	"sort"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/viniciusth/kwic"
)

type variant struct {
	name   string
	config func(*kwic.Builder) *kwic.Builder
}

var variants = map[string]variant{
	"full":          {name: "full", config: func(b *kwic.Builder) *kwic.Builder { return b }},
	"no_lcp":        {name: "no_lcp", config: func(b *kwic.Builder) *kwic.Builder { return b.SkipLCP() }},
	"no_doc":        {name: "no_doc", config: func(b *kwic.Builder) *kwic.Builder { return b.SkipDocListing() }},
	"no_lcp_no_doc": {name: "no_lcp_no_doc", config: func(b *kwic.Builder) *kwic.Builder { return b.SkipLCP().SkipDocListing() }},
	"linear":        {name: "linear", config: func(b *kwic.Builder) *kwic.Builder { return b.LinearSuffixes() }},
}

func variantNames() string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

type densityType string

const (
	densityLow  densityType = "low"
	densityHigh densityType = "high"
	// Every record is the same word, which leaves the doubling passes with
	// one huge tie group per distinct rotation.
	densityPeriodic densityType = "periodic"
)

type memMonitor struct {
	maxAlloc uint64
	stop     chan struct{}
	done     chan struct{}
}

func newMemMonitor() *memMonitor {
	mm := &memMonitor{stop: make(chan struct{}), done: make(chan struct{})}
	go func() {
		defer close(mm.done)
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			mm.maxAlloc = max(mm.maxAlloc, m.Alloc)
			select {
			case <-mm.stop:
				return
			case <-ticker.C:
			}
		}
	}()
	return mm
}

func (mm *memMonitor) Stop() uint64 {
	close(mm.stop)
	<-mm.done
	return mm.maxAlloc
}

func getCurrentAlloc() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

type measurement struct {
	took  time.Duration
	peak  uint64
	alloc uint64
}

func measure(fn func() error) (measurement, error) {
	runtime.GC()
	mm := newMemMonitor()
	start := time.Now()
	err := fn()
	took := time.Since(start)
	peak := mm.Stop()
	runtime.GC()
	return measurement{took: took, peak: peak, alloc: getCurrentAlloc()}, err
}

func randomWord(r *rand.Rand, w int) []byte {
	word := make([]byte, w)
	for j := range word {
		word[j] = byte(r.Intn(26) + 'a')
	}
	return word
}

// generate returns M words of length W and Q patterns of length P drawn from
// them.
func generate(r *rand.Rand, M, W, P, Q int, density densityType) ([]string, []string) {
	words := make([]string, M)
	patterns := make([]string, Q)
	switch density {
	case densityHigh:
		common := string(randomWord(r, P))
		for i := range words {
			word := randomWord(r, W)
			copy(word[r.Intn(W-P+1):], common)
			words[i] = string(word)
		}
		for i := range patterns {
			patterns[i] = common
		}
	case densityPeriodic:
		word := string(randomWord(r, W))
		for i := range words {
			words[i] = word
		}
		for i := range patterns {
			start := r.Intn(W - P + 1)
			patterns[i] = word[start : start+P]
		}
	default:
		for i := range words {
			words[i] = string(randomWord(r, W))
		}
		for i := range patterns {
			start := r.Intn(W - P + 1)
			patterns[i] = words[r.Intn(M)][start : start+P]
		}
	}
	return words, patterns
}

func runBenchmark(v variant, M, W, P, K, Q, runs int, density densityType) error {
	for run := 0; run < runs; run++ {
		r := rand.New(rand.NewSource(int64(run)))
		words, patterns := generate(r, M, W, P, Q, density)

		var index *kwic.KWIC
		build, err := measure(func() error {
			var err error
			index, err = v.config(kwic.NewBuilder(words)).Build()
			return err
		})
		if err != nil {
			return err
		}
		distinct, err := measure(func() error {
			for _, p := range patterns {
				if _, err := index.FindKMatches(p, K); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		occurrences, err := measure(func() error {
			for _, p := range patterns {
				if _, err := index.Find(p); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		fmt.Printf("%s,%d,%d,%d,%d,%d,%s,%d,%d,%d,%d,%d,%d,%d\n",
			v.name, M, W, P, K, Q, density,
			build.took.Nanoseconds(), build.peak, build.alloc,
			distinct.took.Nanoseconds(), distinct.peak,
			occurrences.took.Nanoseconds(), occurrences.peak)
	}
	return nil
}

func run() error {
	variantName := pflag.String("variant", "", "Variant to benchmark: "+variantNames())
	m := pflag.Int("m", 0, "Number of words M")
	w := pflag.Int("w", 0, "Word length W")
	p := pflag.Int("p", 0, "Pattern length P")
	k := pflag.Int("k", 0, "Number of distinct matches K")
	q := pflag.Int("q", 0, "Number of queries Q")
	runs := pflag.Int("runs", 3, "Number of runs for averaging")
	d := pflag.String("d", string(densityLow), "Density: low, high or periodic")
	cpuprofile := pflag.String("cpuprofile", "", "Write CPU profile to file")
	pflag.Parse()

	if *variantName == "" || *m <= 0 || *w <= 0 || *p <= 0 || *k <= 0 || *q <= 0 || *p > *w {
		pflag.Usage()
		return fmt.Errorf("missing or invalid arguments")
	}
	v, ok := variants[*variantName]
	if !ok {
		return fmt.Errorf("invalid variant %q, want one of %s", *variantName, variantNames())
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	return runBenchmark(v, *m, *w, *p, *k, *q, *runs, densityType(*d))
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
