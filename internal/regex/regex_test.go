package regex

import (
	"errors"
	"testing"

	"automata/internal/fsm"
	"automata/internal/symbol"
)

// ------------------------------------------------------------------- helpers

func runes() *Provider[rune] {
	return NewProvider(symbol.Runes(), WithFormat(func(r rune) string { return string(r) }))
}

func acc(t *testing.T, o Object[rune], in string, want bool) {
	t.Helper()
	got, err := Match(o, []rune(in))
	if err != nil {
		t.Fatalf("%s on %q: %v", o, in, err)
	}
	if got != want {
		t.Fatalf("%s on %q want %v got %v", o, in, want, got)
	}
}

func same(t *testing.T, got, want Object[rune]) {
	t.Helper()
	if !got.Equal(want) {
		t.Fatalf("want %s got %s", want, got)
	}
}

func repeat(t *testing.T, p *Provider[rune], inner Object[rune], min, max int) *Repeat[rune] {
	t.Helper()
	r, err := p.NewRepeat(inner, min, max, true)
	if err != nil {
		t.Fatalf("repeat %s{%d,%d}: %v", inner, min, max, err)
	}
	return r
}

func mustPanicArg(t *testing.T, param string, f func()) {
	t.Helper()
	defer func() {
		argErr, ok := recover().(*ArgumentError)
		if !ok || argErr.ParamName != param {
			t.Fatalf("expected ArgumentError for %q, got %v", param, argErr)
		}
	}()
	f()
}

// ------------------------------------------------------------------- scenarios

func TestConst(t *testing.T) {
	p := runes()
	if !p.Const('a').IsMatch('a') {
		t.Fatal("a should match a")
	}
	if p.Const('a').IsMatch('b') {
		t.Fatal("a should not match b")
	}
}

func TestRange(t *testing.T) {
	digit := runes().Range('0', '9')
	if !digit.IsMatch('5') || digit.IsMatch('a') {
		t.Fatal("[0-9] should match 5 and reject a")
	}
}

func TestSeries(t *testing.T) {
	p := runes()
	ab := p.Series(p.Const('a'), p.Const('b'))
	acc(t, ab, "ab", true)
	acc(t, ab, "ba", false)
	acc(t, ab, "a", false)
	acc(t, ab, "abb", false)
}

func TestParallels(t *testing.T) {
	p := runes()
	ab := p.Parallels(p.Const('a'), p.Const('b'))
	acc(t, ab, "a", true)
	acc(t, ab, "b", true)
	acc(t, ab, "c", false)
	acc(t, ab, "", false)
}

func TestStar(t *testing.T) {
	p := runes()
	r, err := p.NewRepeat(p.Const('a'), 0, Unbounded, true)
	if err != nil {
		t.Fatal(err)
	}
	for _, in := range []string{"", "a", "aa", "aaaaaaa"} {
		acc(t, r, in, true)
	}
	acc(t, r, "ab", false)
}

func TestEmptyLists(t *testing.T) {
	p := runes()
	for _, o := range []Object[rune]{p.Series(), p.Parallels()} {
		acc(t, o, "", true)
		acc(t, o, "a", false)
	}
	// epsilon self-loop
	acc(t, p.Star(p.Series()), "", true)
	acc(t, p.Star(p.Series()), "a", false)
}

// ------------------------------------------------------------------- repeat

func TestRepeatBounds(t *testing.T) {
	p := runes()
	a := p.Const('a')

	twoToThree := repeat(t, p, a, 2, 3)
	for in, want := range map[string]bool{"": false, "a": false, "aa": true, "aaa": true, "aaaa": false} {
		acc(t, twoToThree, in, want)
	}

	atLeastTwo := repeat(t, p, a, 2, Unbounded)
	for in, want := range map[string]bool{"a": false, "aa": true, "aaaaa": true} {
		acc(t, atLeastTwo, in, want)
	}

	never := repeat(t, p, a, 0, 0)
	acc(t, never, "", true)
	acc(t, never, "a", false)

	acc(t, p.Optional(a), "", true)
	acc(t, p.Optional(a), "aa", false)
	acc(t, p.Plus(a), "", false)
	acc(t, p.Plus(a), "aaa", true)
}

func TestRepeatOfNullable(t *testing.T) {
	p := runes()
	o := p.Star(p.Star(p.Const('a')))
	acc(t, o, "", true)
	acc(t, o, "aaa", true)
	acc(t, o, "b", false)

	ab := p.Series(p.Optional(p.Const('a')), p.Optional(p.Const('b')))
	o = repeat(t, p, ab, 2, 2)
	for in, want := range map[string]bool{"": true, "abab": true, "bb": true, "aab": true, "abc": false, "bab": true, "bbb": false} {
		acc(t, o, in, want)
	}
}

func TestNewRepeatRejectsBadBounds(t *testing.T) {
	p := runes()
	for _, c := range []struct{ min, max int }{{3, 2}, {-1, 4}, {0, -2}} {
		_, err := p.NewRepeat(p.Const('a'), c.min, c.max, true)
		var oor *OutOfRangeError
		if !errors.As(err, &oor) {
			t.Fatalf("{%d,%d}: want OutOfRangeError got %v", c.min, c.max, err)
		}
		if oor.Min != c.min || oor.Max != c.max {
			t.Fatalf("error carries {%d,%d}", oor.Min, oor.Max)
		}
	}
}

// ------------------------------------------------------------------- ranges

func TestExclusiveRange(t *testing.T) {
	p := runes()
	inner := p.RangeExclusive('a', 'e', false, false)
	acc(t, inner, "a", false)
	acc(t, inner, "b", true)
	acc(t, inner, "d", true)
	acc(t, inner, "e", false)

	swapped := p.RangeExclusive('e', 'a', true, false)
	if swapped.Min() != 'a' || swapped.TakesMin() || !swapped.TakesMax() {
		t.Fatalf("reversed bounds not normalised: %s", swapped)
	}
	acc(t, swapped, "a", false)
	acc(t, swapped, "e", true)
}

func TestEmptyExclusiveRangeMatchesNothing(t *testing.T) {
	p := runes()
	empty := p.RangeExclusive('a', 'b', false, false)
	acc(t, empty, "", false)
	acc(t, empty, "a", false)
	acc(t, empty, "b", false)
	acc(t, p.Series(empty, p.Const('a')), "a", false)
	acc(t, p.Parallels(empty, p.Const('a')), "a", true)
}

func TestAnyAndNot(t *testing.T) {
	p := runes()
	acc(t, p.Any(), "x", true)
	acc(t, p.Any(), "\U0010FFFF", true)

	notMid := p.Not('b', 'y')
	acc(t, notMid, "a", true)
	acc(t, notMid, "z", true)
	acc(t, notMid, "m", false)

	acc(t, p.Not(0, 'a'), "a", false)
	acc(t, p.Not(0, 'a'), "b", true)

	nothing := p.Not(0, 0x10FFFF)
	acc(t, nothing, "a", false)
}

func TestCodeUnitDomain(t *testing.T) {
	p := NewProvider(symbol.CodeUnits())
	upper := p.Plus(p.Range(0x41, 0x5A))
	if !upper.IsMatch(0x41, 0x5A, 0x4D) {
		t.Fatal("upper-case code units should match")
	}
	if upper.IsMatch(0x61) {
		t.Fatal("lower-case code unit should not match")
	}
	if !p.Not(0, 0xFFFE).IsMatch(0xFFFF) {
		t.Fatal("0xFFFF is outside [0, 0xFFFE]")
	}
}

type token int

const (
	ident token = iota
	comma
	lparen
	rparen
)

func TestEnumDomain(t *testing.T) {
	p := NewProvider(symbol.New[token](symbol.NewEnum(ident, comma, lparen, rparen)))
	list := p.Series(
		p.Const(lparen),
		p.Optional(p.Series(p.Const(ident), p.Star(p.Series(p.Const(comma), p.Const(ident))))),
		p.Const(rparen),
	)
	for _, c := range []struct {
		in   []token
		want bool
	}{
		{[]token{lparen, rparen}, true},
		{[]token{lparen, ident, rparen}, true},
		{[]token{lparen, ident, comma, ident, comma, ident, rparen}, true},
		{[]token{lparen, ident, comma, rparen}, false},
		{[]token{lparen, ident}, false},
	} {
		if got := list.IsMatch(c.in...); got != c.want {
			t.Fatalf("%v want %v got %v", c.in, c.want, got)
		}
	}

	// member order drives ranges
	parens := p.Range(lparen, rparen)
	if !parens.IsMatch(rparen) || parens.IsMatch(comma) {
		t.Fatal("range over enum members")
	}
}

// ------------------------------------------------------------------- equality & folding

func TestEqualityIsProviderScoped(t *testing.T) {
	p, q := runes(), runes()
	if !p.Const('a').Equal(p.Const('a')) {
		t.Fatal("structurally equal objects of one provider should be equal")
	}
	if p.Const('a').Equal(q.Const('a')) {
		t.Fatal("objects of different providers must not be equal")
	}
	if p.Const('a').Equal(p.Range('a', 'a')) {
		t.Fatal("different kinds are never equal")
	}
	same(t, p.Star(p.Series(p.Const('a'), p.Range('0', '9'))), p.Star(p.Series(p.Const('a'), p.Range('0', '9'))))

	mustPanicArg(t, "items", func() { p.Series(q.Const('a')) })
	mustPanicArg(t, "items", func() { p.Parallels(nil) })
	mustPanicArg(t, "y", func() { Concat[rune](p.Const('a'), q.Const('b')) })
}

func TestConcatFolding(t *testing.T) {
	p := runes()
	a, b, c := p.Const('a'), p.Const('b'), p.Const('c')

	same(t, Concat[rune](a, p.Star(a)), repeat(t, p, a, 1, Unbounded))
	same(t, Concat[rune](a, repeat(t, p, a, 1, 2)), repeat(t, p, a, 2, 3))
	same(t, Concat[rune](repeat(t, p, a, 1, 2), repeat(t, p, a, 3, 4)), repeat(t, p, a, 4, 6))
	same(t, Concat[rune](a, p.Series(b, c)), p.Series(a, b, c))
	same(t, Concat[rune](a, p.Series(a, b)), p.Series(a, p.Series(a, b)))
	same(t, Concat[rune](p.Series(a, b), p.Series(c)), p.Series(a, b, c))
	same(t, Concat[rune](a, b), p.Series(a, b))

	lazy, err := p.NewRepeat(a, 1, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, folded := Concat[rune](p.Plus(a), lazy).(*Repeat[rune]); folded {
		t.Fatal("repeats of different greediness must not fold")
	}

	acc(t, Concat[rune](a, repeat(t, p, a, 1, 2)), "aaa", true)
	acc(t, Concat[rune](a, repeat(t, p, a, 1, 2)), "a", false)
}

func TestUnionsFolding(t *testing.T) {
	p := runes()
	a, b, c := p.Const('a'), p.Const('b'), p.Const('c')

	same(t, Unions[rune](a, p.Parallels(b, c)), p.Parallels(a, b, c))
	same(t, Unions[rune](a, p.Parallels(a, b)), p.Parallels(a, p.Parallels(a, b)))
	same(t, Unions[rune](p.Parallels(a), p.Parallels(b, c)), p.Parallels(a, b, c))
	same(t, Unions[rune](a, b), p.Parallels(a, b))

	acc(t, Unions[rune](a, p.Parallels(b, c)), "c", true)
}

func TestTimes(t *testing.T) {
	p := runes()
	a := p.Const('a')

	same(t, Times[rune](a, 3), repeat(t, p, a, 3, 3))
	same(t, Times[rune](repeat(t, p, a, 1, 2), 3), repeat(t, p, a, 3, 6))
	same(t, Times[rune](p.Plus(a), 2), repeat(t, p, a, 2, Unbounded))

	star := p.Star(a)
	if Times[rune](star, 5) != star {
		t.Fatal("x* times n is x*")
	}
	acc(t, Times[rune](p.Series(a, p.Const('b')), 2), "abab", true)
	acc(t, Times[rune](p.Series(a, p.Const('b')), 2), "ab", false)
}

func TestString(t *testing.T) {
	p := runes()
	a, b, c := p.Const('a'), p.Const('b'), p.Const('c')
	lazy, _ := p.NewRepeat(a, 2, 5, false)

	for _, tc := range []struct {
		o    Object[rune]
		want string
	}{
		{a, "a"},
		{p.Range('0', '9'), "[0-9]"},
		{p.RangeExclusive('a', 'z', false, true), "(a-z]"},
		{p.Series(a, b), "(ab)"},
		{p.Star(p.Parallels(a, p.Series(b, c))), "(a|(bc))*"},
		{p.Plus(p.Series(a, b)), "(ab)+"},
		{p.Optional(a), "a?"},
		{Times[rune](a, 3), "a{3}"},
		{repeat(t, p, a, 2, Unbounded), "a{2,}"},
		{lazy, "a{2,5}?"},
		{p.Star(p.Star(a)), "(a*)*"},
		{p.Star(p.Series()), "()*"},
	} {
		if got := tc.o.String(); got != tc.want {
			t.Fatalf("want %q got %q", tc.want, got)
		}
	}
}

// ------------------------------------------------------------------- matcher

func abb(p *Provider[rune]) Object[rune] {
	return p.Series(p.Star(p.Parallels(p.Const('a'), p.Const('b'))), p.Const('a'), p.Const('b'), p.Const('b'))
}

func TestCompileMinimized(t *testing.T) {
	p := runes()
	plain, err := Compile(abb(p))
	if err != nil {
		t.Fatal(err)
	}
	minimal, err := Compile(abb(p), Minimized())
	if err != nil {
		t.Fatal(err)
	}
	for in, want := range map[string]bool{"abb": true, "aabb": true, "babb": true, "ab": false, "abba": false, "": false} {
		if plain.IsMatch([]rune(in)...) != want || minimal.IsMatch([]rune(in)...) != want {
			t.Fatalf("%q: want %v", in, want)
		}
	}
	states, err := fsm.States(minimal.DFA())
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 4 {
		t.Fatalf("minimal DFA for (a|b)*abb has 4 states, got %d", len(states))
	}
}

func TestMatcherAutomata(t *testing.T) {
	p := runes()
	o := p.Parallels(p.Range('a', 'z'), p.Series(p.Const('m'), p.Const('x')))
	m, err := Compile[rune](o)
	if err != nil {
		t.Fatal(err)
	}
	states, err := fsm.States(m.DFA())
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range states {
		ts := s.Transitions()
		for i := range ts {
			if ts[i].IsEpsilon() {
				t.Fatal("DFA has an epsilon transition")
			}
			for j := i + 1; j < len(ts); j++ {
				for _, e := range ts[j].Entries() {
					if p.Symbols().Contains(ts[i].Entries(), e.From) || p.Symbols().Contains(ts[i].Entries(), e.To) {
						t.Fatalf("overlapping transitions out of s%d", s.ID())
					}
				}
			}
		}
	}
	if !m.IsMatch('m') || !m.IsMatch('m', 'x') || m.IsMatch('a', 'x') {
		t.Fatal("[a-z]|mx")
	}

	nfa, err := fsm.AllTransitions(m.NFA())
	if err != nil {
		t.Fatal(err)
	}
	var eps bool
	for _, tr := range nfa {
		eps = eps || tr.IsEpsilon()
	}
	if !eps {
		t.Fatal("NFA should keep its epsilon transitions")
	}
}

func BenchmarkMillionAs(b *testing.B) {
	p := runes()
	m, err := Compile[rune](p.Star(p.Const('a')), Minimized())
	if err != nil {
		b.Fatal(err)
	}
	in := make([]rune, 1_000_000)
	for i := range in {
		in[i] = 'a'
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !m.IsMatch(in...) {
			b.Fatal("no match")
		}
	}
}
