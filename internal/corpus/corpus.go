// Package corpus reads records for the kwic tools.
package corpus

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
)

//go:embed samples/*.txt
var samples embed.FS

// Read returns the whitespace-separated tokens of r, one record each.
func Read(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	var records []string
	for scanner.Scan() {
		records = append(records, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// ReadFiles reads every file in order and concatenates their records, so ids
// continue from one file to the next.
func ReadFiles(paths ...string) ([]string, error) {
	var records []string
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		rs, err := Read(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		records = append(records, rs...)
	}
	return records, nil
}

// Sample returns the records of an embedded sample corpus, such as
// "input0.txt".
func Sample(name string) ([]string, error) {
	f, err := samples.Open("samples/" + name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
