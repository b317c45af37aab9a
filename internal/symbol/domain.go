package symbol

import (
	"cmp"
	"math"
	"unicode"

	"golang.org/x/exp/constraints"
)

// Domain is the primitive order of a symbol type. Everything else a Provider
// offers is derived from these operations.
//
// Previous and Next are only called when HasPrevious / HasNext report true.
type Domain[T any] interface {
	Compare(x, y T) int
	HasPrevious(v T) bool
	HasNext(v T) bool
	Previous(v T) T
	Next(v T) T
	// First and Last are the domain extremes used to build complements.
	First() T
	Last() T
}

// Integer is a contiguous discrete domain [Min, Max].
type Integer[T constraints.Integer] struct {
	Min T
	Max T
}

func (d Integer[T]) Compare(x, y T) int { return cmp.Compare(x, y) }
func (d Integer[T]) HasPrevious(v T) bool { return v > d.Min }
func (d Integer[T]) HasNext(v T) bool { return v < d.Max }
func (d Integer[T]) Previous(v T) T { return v - 1 }
func (d Integer[T]) Next(v T) T { return v + 1 }
func (d Integer[T]) First() T { return d.Min }
func (d Integer[T]) Last() T { return d.Max }

// Runes is the Unicode code point domain.
func Runes() *Provider[rune] {
	return New[rune](Integer[rune]{Min: 0, Max: unicode.MaxRune}, WithFormatter[rune](RuneFormat))
}

// CodeUnits is the 16-bit code unit domain.
func CodeUnits() *Provider[uint16] {
	return New[uint16](Integer[uint16]{Min: 0, Max: math.MaxUint16})
}

// Bytes is the octet domain.
func Bytes() *Provider[byte] {
	return New[byte](Integer[byte]{Min: 0, Max: math.MaxUint8})
}
