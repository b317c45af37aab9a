package symbol

import (
	"slices"
	"strings"
)

// Provider implements the input symbol algebra for one symbol type on top of
// a Domain: membership, complements and interval normalisation.
type Provider[T any] struct {
	domain Domain[T]
	format Formatter[T]
}

// Option configures a Provider.
type Option[T any] func(*Provider[T])

// WithFormatter sets how symbols are rendered.
func WithFormatter[T any](f Formatter[T]) Option[T] {
	return func(p *Provider[T]) {
		if f != nil {
			p.format = f
		}
	}
}

// New returns a Provider over d.
func New[T any](d Domain[T], opts ...Option[T]) *Provider[T] {
	if d == nil {
		panic("symbol: nil domain")
	}
	p := &Provider[T]{domain: d, format: DefaultFormat[T]}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider[T]) Domain() Domain[T] { return p.domain }
func (p *Provider[T]) Compare(x, y T) int { return p.domain.Compare(x, y) }
func (p *Provider[T]) Equal(x, y T) bool { return p.domain.Compare(x, y) == 0 }
func (p *Provider[T]) HasPrevious(v T) bool { return p.domain.HasPrevious(v) }
func (p *Provider[T]) HasNext(v T) bool { return p.domain.HasNext(v) }
func (p *Provider[T]) Format(v T) string { return p.format(v) }
func (p *Provider[T]) Formatter() Formatter[T] { return p.format }

// Previous returns the symbol immediately before v. It panics when v is the
// first symbol of the domain.
func (p *Provider[T]) Previous(v T) T {
	if !p.domain.HasPrevious(v) {
		panic("symbol: no previous symbol for " + p.format(v))
	}
	return p.domain.Previous(v)
}

// Next returns the symbol immediately after v. It panics when v is the last
// symbol of the domain.
func (p *Provider[T]) Next(v T) T {
	if !p.domain.HasNext(v) {
		panic("symbol: no next symbol for " + p.format(v))
	}
	return p.domain.Next(v)
}

// NextTo reports whether x and y are adjacent, in either order.
func (p *Provider[T]) NextTo(x, y T) bool {
	if p.domain.HasNext(x) && p.domain.Compare(p.domain.Next(x), y) == 0 {
		return true
	}
	return p.domain.HasNext(y) && p.domain.Compare(p.domain.Next(y), x) == 0
}

// Normalize orders the bounds of e.
func (p *Provider[T]) Normalize(e Entry[T]) Entry[T] {
	if p.domain.Compare(e.From, e.To) > 0 {
		return Entry[T]{From: e.To, To: e.From}
	}
	return e
}

// Contains reports whether any entry holds v.
func (p *Provider[T]) Contains(entries []Entry[T], v T) bool {
	for _, e := range entries {
		e = p.Normalize(e)
		if p.domain.Compare(e.From, v) <= 0 && p.domain.Compare(v, e.To) <= 0 {
			return true
		}
	}
	return false
}

// ContainsEntry reports whether a single entry of entries subsumes value.
func (p *Provider[T]) ContainsEntry(entries []Entry[T], value Entry[T]) bool {
	value = p.Normalize(value)
	for _, e := range entries {
		e = p.Normalize(e)
		if p.domain.Compare(e.From, value.From) <= 0 && p.domain.Compare(value.To, e.To) <= 0 {
			return true
		}
	}
	return false
}

func (p *Provider[T]) Include(v T) []Entry[T] { return []Entry[T]{Single(v)} }

func (p *Provider[T]) IncludeRange(from, to T) []Entry[T] {
	return []Entry[T]{p.Normalize(Entry[T]{From: from, To: to})}
}

// Exclude returns the complement of v within the domain.
func (p *Provider[T]) Exclude(v T) []Entry[T] { return p.ExcludeRange(v, v) }

// ExcludeRange returns the complement of [from, to] within the domain: at most
// two entries, with a side omitted when the range touches a domain extreme.
func (p *Provider[T]) ExcludeRange(from, to T) []Entry[T] {
	r := p.Normalize(Entry[T]{From: from, To: to})
	var out []Entry[T]
	if p.domain.HasPrevious(r.From) {
		out = append(out, Entry[T]{From: p.domain.First(), To: p.domain.Previous(r.From)})
	}
	if p.domain.HasNext(r.To) {
		out = append(out, Entry[T]{From: p.domain.Next(r.To), To: p.domain.Last()})
	}
	return out
}

// Complement returns the sorted entries covering every domain value that no
// entry holds.
func (p *Provider[T]) Complement(entries []Entry[T]) []Entry[T] {
	merged := p.SplitEntries(entries)
	if len(merged) == 0 {
		return []Entry[T]{{From: p.domain.First(), To: p.domain.Last()}}
	}
	var out []Entry[T]
	if p.domain.HasPrevious(merged[0].From) {
		out = append(out, Entry[T]{From: p.domain.First(), To: p.domain.Previous(merged[0].From)})
	}
	for i := 1; i < len(merged); i++ {
		out = append(out, Entry[T]{From: p.domain.Next(merged[i-1].To), To: p.domain.Previous(merged[i].From)})
	}
	if last := merged[len(merged)-1].To; p.domain.HasNext(last) {
		out = append(out, Entry[T]{From: p.domain.Next(last), To: p.domain.Last()})
	}
	return out
}

// SplitEntries normalises a possibly overlapping multiset of entries into the
// minimal sorted set of disjoint intervals. Overlapping and adjacent intervals
// are merged.
func (p *Provider[T]) SplitEntries(entries []Entry[T]) []Entry[T] {
	if len(entries) == 0 {
		return nil
	}
	normalized := make([]Entry[T], 0, len(entries))
	for _, e := range entries {
		normalized = append(normalized, p.Normalize(e))
	}
	slices.SortStableFunc(normalized, func(a, b Entry[T]) int { return p.domain.Compare(a.From, b.From) })

	var out []Entry[T]
	cur := normalized[0]
	for _, next := range normalized[1:] {
		if p.domain.Compare(cur.To, next.From) < 0 && !p.NextTo(cur.To, next.From) {
			out = append(out, cur)
			cur = next
			continue
		}
		if p.domain.Compare(next.To, cur.To) > 0 {
			cur.To = next.To
		}
	}
	return append(out, cur)
}

// Partition refines entries into sorted, pairwise disjoint pieces such that
// every input entry is exactly the union of some pieces. Unlike SplitEntries
// it keeps the boundaries between overlapping intervals.
func (p *Provider[T]) Partition(entries []Entry[T]) []Entry[T] {
	if len(entries) == 0 {
		return nil
	}
	normalized := make([]Entry[T], 0, len(entries))
	bounds := make([]T, 0, 2*len(entries))
	last := p.Normalize(entries[0]).To
	for _, e := range entries {
		e = p.Normalize(e)
		normalized = append(normalized, e)
		bounds = append(bounds, e.From)
		if p.domain.HasNext(e.To) {
			bounds = append(bounds, p.domain.Next(e.To))
		}
		if p.domain.Compare(e.To, last) > 0 {
			last = e.To
		}
	}
	slices.SortFunc(bounds, p.domain.Compare)
	bounds = slices.CompactFunc(bounds, p.Equal)

	var out []Entry[T]
	for i, lo := range bounds {
		if !p.Contains(normalized, lo) {
			continue
		}
		hi := last
		if i+1 < len(bounds) {
			hi = p.domain.Previous(bounds[i+1])
		}
		out = append(out, Entry[T]{From: lo, To: hi})
	}
	return out
}

// FormatEntries renders entries in a class-like form, e.g. 'a'-'z','_'.
func (p *Provider[T]) FormatEntries(entries []Entry[T]) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		e = p.Normalize(e)
		if p.Equal(e.From, e.To) {
			parts = append(parts, p.format(e.From))
			continue
		}
		parts = append(parts, p.format(e.From)+"-"+p.format(e.To))
	}
	return strings.Join(parts, ",")
}
