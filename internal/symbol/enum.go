package symbol

import (
	"cmp"
	"slices"

	"golang.org/x/exp/constraints"
)

// Enum is a finite domain ordered by member position. The member index is
// built per instance.
type Enum[T comparable] struct {
	members []T
	index   map[T]int
}

// NewEnum returns the domain of members in the given order. Duplicates keep
// their first position.
func NewEnum[T comparable](members ...T) *Enum[T] {
	if len(members) == 0 {
		panic("symbol: enum needs at least one member")
	}
	e := &Enum[T]{index: make(map[T]int, len(members))}
	for _, m := range members {
		if _, ok := e.index[m]; ok {
			continue
		}
		e.index[m] = len(e.members)
		e.members = append(e.members, m)
	}
	return e
}

// NewFlagEnum returns the domain of every OR-combination of flags, ordered by
// value.
func NewFlagEnum[T constraints.Integer](flags ...T) *Enum[T] {
	return NewEnum(Combinations(flags)...)
}

// Combinations returns the sorted distinct OR of every subset of flags,
// including the empty subset (zero).
func Combinations[T constraints.Integer](flags []T) []T {
	out := []T{0}
	for _, f := range flags {
		for _, v := range out {
			out = append(out, v|f)
		}
		slices.Sort(out)
		out = slices.Compact(out)
	}
	return out
}

func (e *Enum[T]) Members() []T { return slices.Clone(e.members) }

func (e *Enum[T]) position(v T) int {
	if i, ok := e.index[v]; ok {
		return i
	}
	return -1
}

func (e *Enum[T]) Compare(x, y T) int { return cmp.Compare(e.position(x), e.position(y)) }

func (e *Enum[T]) HasPrevious(v T) bool { return e.position(v) >= 1 }

func (e *Enum[T]) HasNext(v T) bool {
	i := e.position(v)
	return i >= 0 && i < len(e.members)-1
}

func (e *Enum[T]) Previous(v T) T { return e.members[e.position(v)-1] }
func (e *Enum[T]) Next(v T) T { return e.members[e.position(v)+1] }
func (e *Enum[T]) First() T { return e.members[0] }
func (e *Enum[T]) Last() T { return e.members[len(e.members)-1] }
