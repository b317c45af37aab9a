package regex

import "slices"

// Concat returns x followed by y, folding where the result stays
// equivalent:
//
//	x · x{m,n}       => x{m+1,n+1}
//	x{a,b} · x{c,d}  => x{a+c,b+d}   (same inner and greediness)
//	(s...) · (t...)  => (s... t...)
//	x · (s...)       => (x s...)     when no item of s equals x
//
// Anything else becomes a two-item Series.
func Concat[T any](x, y Object[T]) Object[T] {
	p := provider("x", x)
	p.own("y", y)

	if ry, ok := y.(*Repeat[T]); ok {
		if x.Equal(ry.inner) {
			return &Repeat[T]{provider: p, inner: ry.inner, min: ry.min + 1, max: addBound(ry.max, 1), greedy: ry.greedy}
		}
		if rx, ok := x.(*Repeat[T]); ok && rx.greedy == ry.greedy && rx.inner.Equal(ry.inner) {
			return &Repeat[T]{provider: p, inner: rx.inner, min: rx.min + ry.min, max: addBound(rx.max, ry.max), greedy: rx.greedy}
		}
	}
	if sy, ok := y.(*Series[T]); ok {
		if sx, ok := x.(*Series[T]); ok {
			return p.Series(slices.Concat(sx.items, sy.items)...)
		}
		if !slices.ContainsFunc(sy.items, x.Equal) {
			return p.Series(slices.Concat([]Object[T]{x}, sy.items)...)
		}
	}
	return p.Series(x, y)
}

// Unions returns x or y. A Parallels y not already holding x absorbs it, and
// two Parallels merge.
func Unions[T any](x, y Object[T]) Object[T] {
	p := provider("x", x)
	p.own("y", y)

	if py, ok := y.(*Parallels[T]); ok {
		if px, ok := x.(*Parallels[T]); ok {
			return p.Parallels(slices.Concat(px.items, py.items)...)
		}
		if !slices.ContainsFunc(py.items, x.Equal) {
			return p.Parallels(slices.Concat([]Object[T]{x}, py.items)...)
		}
	}
	return p.Parallels(x, y)
}

// Times repeats x exactly n times. A Repeat has both bounds multiplied, an
// unbounded maximum stays unbounded, and x* is returned unchanged.
func Times[T any](x Object[T], n uint) *Repeat[T] {
	p := provider("x", x)
	if r, ok := x.(*Repeat[T]); ok {
		if r.min == 0 && r.max == Unbounded {
			return r
		}
		max := Unbounded
		if r.max != Unbounded {
			max = r.max * int(n)
		}
		return &Repeat[T]{provider: p, inner: r.inner, min: r.min * int(n), max: max, greedy: r.greedy}
	}
	return &Repeat[T]{provider: p, inner: x, min: int(n), max: int(n), greedy: true}
}

func provider[T any](name string, o Object[T]) *Provider[T] {
	if o == nil {
		panic(&ArgumentError{ParamName: name, Message: "value must not be nil"})
	}
	return o.Provider()
}

func addBound(max, n int) int {
	if max == Unbounded || n == Unbounded {
		return Unbounded
	}
	return max + n
}
