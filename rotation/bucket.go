package rotation

// bucketByFirstSymbol counting-sorts the rotations of text by their leading
// symbol. Every rotation gets the position of its bucket's first slot as its
// rank, so equal leading symbols share a rank. text must only hold values in
// [0, alphabet).
func bucketByFirstSymbol(text []int32, alphabet int, index, rank []int) {
	freq := make([]int, alphabet)
	for _, c := range text {
		freq[c]++
	}

	start := make([]int, alphabet)
	for c := 1; c < alphabet; c++ {
		start[c] = start[c-1] + freq[c-1]
	}

	for i, c := range text {
		rank[i] = start[c]
	}
	for i, c := range text {
		index[start[c]] = i
		start[c]++
	}
}
