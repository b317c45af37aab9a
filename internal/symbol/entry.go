package symbol

import "fmt"

// Entry is a closed interval [From, To] over an ordered symbol domain.
// From == To denotes a single symbol.
type Entry[T any] struct {
	From T
	To   T
}

// Single returns the entry holding exactly v.
func Single[T any](v T) Entry[T] { return Entry[T]{From: v, To: v} }

func (e Entry[T]) String() string { return fmt.Sprintf("[%v,%v]", e.From, e.To) }

// Formatter renders a symbol for diagnostics (String methods, DOT labels).
type Formatter[T any] func(T) string

// DefaultFormat renders with %v.
func DefaultFormat[T any](v T) string { return fmt.Sprint(v) }

// RuneFormat renders runes as quoted characters.
func RuneFormat(r rune) string { return fmt.Sprintf("%q", r) }
