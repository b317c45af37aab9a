package regex

import (
	"automata/internal/symbol"
)

// Unbounded is the maximum count of a repeat without an upper bound.
const Unbounded = -1

// Provider creates the regex objects over one symbol domain. Objects are
// scoped to the Provider that built them: equality and the combinators only
// relate objects of the same Provider.
type Provider[T any] struct {
	symbols *symbol.Provider[T]
	format  symbol.Formatter[T]
}

type Option[T any] func(*Provider[T])

// WithFormat sets how symbols are rendered by String. The default is the
// symbol provider's formatter.
func WithFormat[T any](f symbol.Formatter[T]) Option[T] {
	return func(p *Provider[T]) { p.format = f }
}

func NewProvider[T any](symbols *symbol.Provider[T], opts ...Option[T]) *Provider[T] {
	if symbols == nil {
		panic(&ArgumentError{ParamName: "symbols", Message: "value must not be nil"})
	}
	p := &Provider[T]{symbols: symbols, format: symbols.Formatter()}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Symbols returns the input symbol algebra the automata are built over.
func (p *Provider[T]) Symbols() *symbol.Provider[T] { return p.symbols }

func (p *Provider[T]) formatValue(v T) string { return p.format(v) }

func (p *Provider[T]) own(name string, o Object[T]) {
	if o == nil {
		panic(&ArgumentError{ParamName: name, Message: "value must not be nil"})
	}
	if o.Provider() != p {
		panic(&ArgumentError{ParamName: name, Message: "object belongs to another provider"})
	}
}

func (p *Provider[T]) Const(v T) *Const[T] {
	return &Const[T]{provider: p, value: v}
}

// Range matches one symbol in [min, max].
func (p *Provider[T]) Range(min, max T) *Range[T] {
	return p.RangeExclusive(min, max, true, true)
}

// RangeExclusive matches one symbol between min and max; takeMin and takeMax
// tell whether the bounds themselves are included. Reversed bounds are
// swapped along with their flags.
func (p *Provider[T]) RangeExclusive(min, max T, takeMin, takeMax bool) *Range[T] {
	if p.symbols.Compare(min, max) > 0 {
		min, max = max, min
		takeMin, takeMax = takeMax, takeMin
	}
	return &Range[T]{provider: p, min: min, max: max, takeMin: takeMin, takeMax: takeMax}
}

// Any matches every symbol of the domain.
func (p *Provider[T]) Any() *Range[T] {
	d := p.symbols.Domain()
	return p.Range(d.First(), d.Last())
}

// Not matches one symbol outside [min, max]. Excluding the whole domain
// yields an object that matches nothing.
func (p *Provider[T]) Not(min, max T) Object[T] {
	entries := p.symbols.ExcludeRange(min, max)
	switch len(entries) {
	case 0:
		first := p.symbols.Domain().First()
		return p.RangeExclusive(first, first, false, false)
	case 1:
		return p.Range(entries[0].From, entries[0].To)
	}
	items := make([]Object[T], len(entries))
	for i, e := range entries {
		items[i] = p.Range(e.From, e.To)
	}
	return p.Parallels(items...)
}

func (p *Provider[T]) Series(items ...Object[T]) *Series[T] {
	for _, it := range items {
		p.own("items", it)
	}
	return &Series[T]{provider: p, items: append([]Object[T](nil), items...)}
}

func (p *Provider[T]) Parallels(items ...Object[T]) *Parallels[T] {
	for _, it := range items {
		p.own("items", it)
	}
	return &Parallels[T]{provider: p, items: append([]Object[T](nil), items...)}
}

// NewRepeat repeats inner between min and max times; max may be Unbounded.
// Bounds are validated, never clamped.
func (p *Provider[T]) NewRepeat(inner Object[T], min, max int, greedy bool) (*Repeat[T], error) {
	p.own("inner", inner)
	if min < 0 || max < Unbounded || (max != Unbounded && min > max) {
		return nil, &OutOfRangeError{Min: min, Max: max}
	}
	return &Repeat[T]{provider: p, inner: inner, min: min, max: max, greedy: greedy}, nil
}

func (p *Provider[T]) mustRepeat(inner Object[T], min, max int, greedy bool) *Repeat[T] {
	r, err := p.NewRepeat(inner, min, max, greedy)
	if err != nil {
		panic(err)
	}
	return r
}

func (p *Provider[T]) Star(inner Object[T]) *Repeat[T] { return p.mustRepeat(inner, 0, Unbounded, true) }
func (p *Provider[T]) Plus(inner Object[T]) *Repeat[T] { return p.mustRepeat(inner, 1, Unbounded, true) }
func (p *Provider[T]) Optional(inner Object[T]) *Repeat[T] { return p.mustRepeat(inner, 0, 1, true) }
