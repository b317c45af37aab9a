package regex

import (
	"strconv"
	"strings"

	"automata/internal/fsm"
)

// Object is an immutable regex expression node.
//
// Segment allocates the node's NFA fragment in g. start is the fragment's
// entry transition, to be attached to a predecessor state; end is its exit
// transition, whose target the caller sets. They are the same transition
// for a fragment made of a single edge.
type Object[T any] interface {
	Provider() *Provider[T]
	String() string
	Equal(other Object[T]) bool
	Segment(g *fsm.Graph[T]) (start, end *fsm.Transition[T])
	IsMatch(values ...T) bool
}

// Const matches exactly one symbol.
type Const[T any] struct {
	provider *Provider[T]
	value    T
}

func (c *Const[T]) Provider() *Provider[T] { return c.provider }
func (c *Const[T]) Value() T { return c.value }
func (c *Const[T]) String() string { return c.provider.formatValue(c.value) }
func (c *Const[T]) IsMatch(values ...T) bool { return IsMatch[T](c, values...) }

func (c *Const[T]) Equal(other Object[T]) bool {
	o, ok := other.(*Const[T])
	return ok && o.provider == c.provider && c.provider.symbols.Equal(c.value, o.value)
}

func (c *Const[T]) Segment(g *fsm.Graph[T]) (start, end *fsm.Transition[T]) {
	t := g.NewTransition(c.provider.symbols.Include(c.value)...)
	return t, t
}

// Range matches one symbol between Min and Max.
type Range[T any] struct {
	provider         *Provider[T]
	min, max         T
	takeMin, takeMax bool
}

func (r *Range[T]) Provider() *Provider[T] { return r.provider }
func (r *Range[T]) Min() T { return r.min }
func (r *Range[T]) Max() T { return r.max }
func (r *Range[T]) TakesMin() bool { return r.takeMin }
func (r *Range[T]) TakesMax() bool { return r.takeMax }
func (r *Range[T]) IsMatch(values ...T) bool { return IsMatch[T](r, values...) }

func (r *Range[T]) Equal(other Object[T]) bool {
	o, ok := other.(*Range[T])
	if !ok || o.provider != r.provider {
		return false
	}
	s := r.provider.symbols
	return s.Equal(r.min, o.min) && s.Equal(r.max, o.max) &&
		r.takeMin == o.takeMin && r.takeMax == o.takeMax
}

func (r *Range[T]) String() string {
	f := r.provider.formatValue
	if r.takeMin && r.takeMax && r.provider.symbols.Equal(r.min, r.max) {
		return f(r.min)
	}
	var b strings.Builder
	b.WriteByte("(["[btoi(r.takeMin)])
	b.WriteString(f(r.min))
	b.WriteByte('-')
	b.WriteString(f(r.max))
	b.WriteByte(")]"[btoi(r.takeMax)])
	return b.String()
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

// bounds returns the closed interval the range covers; ok is false when the
// exclusive bounds leave nothing.
func (r *Range[T]) bounds() (from, to T, ok bool) {
	s := r.provider.symbols
	from, to = r.min, r.max
	if !r.takeMin {
		if !s.HasNext(from) {
			return from, to, false
		}
		from = s.Next(from)
	}
	if !r.takeMax {
		if !s.HasPrevious(to) {
			return from, to, false
		}
		to = s.Previous(to)
	}
	return from, to, s.Compare(from, to) <= 0
}

func (r *Range[T]) Segment(g *fsm.Graph[T]) (start, end *fsm.Transition[T]) {
	from, to, ok := r.bounds()
	if !ok {
		// dead end: nothing leaves the entry state and end is never reached
		start = g.NewEpsilon()
		start.SetTarget(g.NewState(false))
		return start, g.NewEpsilon()
	}
	t := g.NewTransition(r.provider.symbols.IncludeRange(from, to)...)
	return t, t
}

// Series matches its items one after another.
type Series[T any] struct {
	provider *Provider[T]
	items    []Object[T]
}

func (s *Series[T]) Provider() *Provider[T] { return s.provider }
func (s *Series[T]) Items() []Object[T] { return append([]Object[T](nil), s.items...) }
func (s *Series[T]) IsMatch(values ...T) bool { return IsMatch[T](s, values...) }

func (s *Series[T]) Equal(other Object[T]) bool {
	o, ok := other.(*Series[T])
	return ok && o.provider == s.provider && equalItems(s.items, o.items)
}

func (s *Series[T]) String() string { return joinItems(s.items, "") }

func (s *Series[T]) Segment(g *fsm.Graph[T]) (start, end *fsm.Transition[T]) {
	if len(s.items) == 0 {
		t := g.NewEpsilon()
		return t, t
	}
	start, end = s.items[0].Segment(g)
	for _, it := range s.items[1:] {
		innerStart, innerEnd := it.Segment(g)
		mid := g.NewState(false)
		end.SetTarget(mid)
		mid.AttachTransition(innerStart)
		end = innerEnd
	}
	return start, end
}

// Parallels matches any one of its items.
type Parallels[T any] struct {
	provider *Provider[T]
	items    []Object[T]
}

func (p *Parallels[T]) Provider() *Provider[T] { return p.provider }
func (p *Parallels[T]) Items() []Object[T] { return append([]Object[T](nil), p.items...) }
func (p *Parallels[T]) IsMatch(values ...T) bool { return IsMatch[T](p, values...) }

func (p *Parallels[T]) Equal(other Object[T]) bool {
	o, ok := other.(*Parallels[T])
	return ok && o.provider == p.provider && equalItems(p.items, o.items)
}

func (p *Parallels[T]) String() string { return joinItems(p.items, "|") }

func (p *Parallels[T]) Segment(g *fsm.Graph[T]) (start, end *fsm.Transition[T]) {
	if len(p.items) == 0 {
		t := g.NewEpsilon()
		return t, t
	}
	in, out := g.NewState(false), g.NewState(false)
	for _, it := range p.items {
		innerStart, innerEnd := it.Segment(g)
		in.AttachTransition(innerStart)
		innerEnd.SetTarget(out)
	}
	start, end = g.NewEpsilon(), g.NewEpsilon()
	start.SetTarget(in)
	out.AttachTransition(end)
	return start, end
}

// Repeat matches Inner at least Min and at most Max times. Max is Unbounded
// for no upper limit. Greedy only affects rendering: without captures or
// backtracking every strategy accepts the same inputs.
type Repeat[T any] struct {
	provider *Provider[T]
	inner    Object[T]
	min, max int
	greedy   bool
}

func (r *Repeat[T]) Provider() *Provider[T] { return r.provider }
func (r *Repeat[T]) Inner() Object[T] { return r.inner }
func (r *Repeat[T]) Min() int { return r.min }
func (r *Repeat[T]) Max() int { return r.max }
func (r *Repeat[T]) IsInfinite() bool { return r.max == Unbounded }
func (r *Repeat[T]) IsGreedy() bool { return r.greedy }
func (r *Repeat[T]) IsMatch(values ...T) bool { return IsMatch[T](r, values...) }

func (r *Repeat[T]) Equal(other Object[T]) bool {
	o, ok := other.(*Repeat[T])
	return ok && o.provider == r.provider && r.min == o.min && r.max == o.max &&
		r.greedy == o.greedy && r.inner.Equal(o.inner)
}

func (r *Repeat[T]) String() string {
	inner := r.inner.String()
	if _, nested := unwrap(r.inner).(*Repeat[T]); nested || inner == "" {
		inner = "(" + inner + ")"
	}
	var q string
	switch {
	case r.min == 0 && r.max == Unbounded:
		q = "*"
	case r.min == 1 && r.max == Unbounded:
		q = "+"
	case r.min == 0 && r.max == 1:
		q = "?"
	case r.min == r.max:
		q = "{" + strconv.Itoa(r.min) + "}"
	case r.max == Unbounded:
		q = "{" + strconv.Itoa(r.min) + ",}"
	default:
		q = "{" + strconv.Itoa(r.min) + "," + strconv.Itoa(r.max) + "}"
	}
	if !r.greedy {
		q += "?"
	}
	return inner + q
}

// Segment unrolls the repeat: Min mandatory copies of the inner fragment,
// then either one looping copy or Max-Min skippable copies.
func (r *Repeat[T]) Segment(g *fsm.Graph[T]) (start, end *fsm.Transition[T]) {
	start = g.NewEpsilon()
	cur := g.NewState(false)
	start.SetTarget(cur)

	for i := 0; i < r.min; i++ {
		innerStart, innerEnd := r.inner.Segment(g)
		cur.AttachTransition(innerStart)
		next := g.NewState(false)
		innerEnd.SetTarget(next)
		cur = next
	}

	if r.max == Unbounded {
		innerStart, innerEnd := r.inner.Segment(g)
		cur.AttachTransition(innerStart)
		innerEnd.SetTarget(cur)
	} else {
		exit := g.NewState(false)
		for i := r.min; i < r.max; i++ {
			innerStart, innerEnd := r.inner.Segment(g)
			cur.AttachTransition(innerStart)
			skip := g.NewEpsilon()
			skip.SetTarget(exit)
			cur.AttachTransition(skip)
			next := g.NewState(false)
			innerEnd.SetTarget(next)
			cur = next
		}
		last := g.NewEpsilon()
		last.SetTarget(exit)
		cur.AttachTransition(last)
		cur = exit
	}

	end = g.NewEpsilon()
	cur.AttachTransition(end)
	return start, end
}

func equalItems[T any](a, b []Object[T]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// joinItems renders a list node: a single item stands for itself, longer
// lists are grouped.
func joinItems[T any](items []Object[T], sep string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0].String()
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}

// unwrap strips single-item lists, which render as their item.
func unwrap[T any](o Object[T]) Object[T] {
	for {
		var items []Object[T]
		switch v := o.(type) {
		case *Series[T]:
			items = v.items
		case *Parallels[T]:
			items = v.items
		}
		if len(items) != 1 {
			return o
		}
		o = items[0]
	}
}
