package rotation

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("rotation: invalid input")
	ErrAlphabetOutOfRange = errors.New("rotation: symbol outside the 256-value alphabet")
)

// SymbolError reports the first out-of-range symbol of a text or query.
type SymbolError struct {
	Offset int
	Value  int32
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("%s: value %d at offset %d", ErrAlphabetOutOfRange, e.Value, e.Offset)
}

func (e *SymbolError) Unwrap() error {
	return ErrAlphabetOutOfRange
}

func checkSymbols(symbols []int32) error {
	for i, c := range symbols {
		if c < 0 || c >= alphabetSize {
			return &SymbolError{Offset: i, Value: c}
		}
	}
	return nil
}
