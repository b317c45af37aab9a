package pattern

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"automata/internal/regex"
	"automata/internal/symbol"
)

// NewProvider returns a rune provider whose objects render back in this
// package's syntax.
func NewProvider() *regex.Provider[rune] {
	return regex.NewProvider(symbol.Runes(), regex.WithFormat(Quote))
}

// Quote renders r as a literal of the pattern syntax.
func Quote(r rune) string {
	switch r {
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	}
	if strings.ContainsRune(`\|*+?(){}[]^.,-`, r) {
		return `\` + string(r)
	}
	if !unicode.IsPrint(r) {
		return fmt.Sprintf(`\x{%X}`, r)
	}
	return string(r)
}

// Compile parses src into an object of p.
func Compile(p *regex.Provider[rune], src string) (regex.Object[rune], error) {
	ast, err := Parse(src)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", src, err)
	}
	c := &compiler{p: p, symbols: p.Symbols()}
	o, err := c.pattern(ast)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", src, err)
	}
	return o, nil
}

func MustCompile(p *regex.Provider[rune], src string) regex.Object[rune] {
	o, err := Compile(p, src)
	if err != nil {
		panic(err)
	}
	return o
}

type compiler struct {
	p       *regex.Provider[rune]
	symbols *symbol.Provider[rune]
}

// pattern folds the alternatives with Unions, right to left.
func (c *compiler) pattern(ast *Pattern) (regex.Object[rune], error) {
	seqs := []*Sequence{ast.Head}
	for _, b := range ast.Tail {
		seqs = append(seqs, b.Sequence)
	}
	alts := make([]regex.Object[rune], len(seqs))
	for i, s := range seqs {
		o, err := c.sequence(s)
		if err != nil {
			return nil, err
		}
		alts[i] = o
	}
	out := alts[len(alts)-1]
	for i := len(alts) - 2; i >= 0; i-- {
		out = regex.Unions(alts[i], out)
	}
	return out, nil
}

// sequence folds the terms with Concat, right to left, so that runs like
// "aa*" collapse into one repeat.
func (c *compiler) sequence(s *Sequence) (regex.Object[rune], error) {
	if s == nil || len(s.Terms) == 0 {
		return c.p.Series(), nil
	}
	terms := make([]regex.Object[rune], len(s.Terms))
	for i, t := range s.Terms {
		o, err := c.term(t)
		if err != nil {
			return nil, err
		}
		terms[i] = o
	}
	out := terms[len(terms)-1]
	for i := len(terms) - 2; i >= 0; i-- {
		out = regex.Concat(terms[i], out)
	}
	return out, nil
}

func (c *compiler) term(t *Term) (regex.Object[rune], error) {
	o, err := c.atom(t.Atom)
	if err != nil || t.Quantifier == nil {
		return o, err
	}
	q := t.Quantifier
	min, max := 0, regex.Unbounded
	switch {
	case q.Kind.Op == "+":
		min = 1
	case q.Kind.Op == "?":
		max = 1
	case q.Kind.Count != nil:
		if min, max, err = q.Kind.Count.bounds(); err != nil {
			return nil, err
		}
	}
	r, err := c.p.NewRepeat(o, min, max, !q.Lazy)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (n *Count) bounds() (min, max int, err error) {
	if min, err = strconv.Atoi(n.Min); err != nil {
		return 0, 0, fmt.Errorf("repeat count: %w", err)
	}
	switch {
	case !n.Comma:
		return min, min, nil
	case n.Max == "":
		return min, regex.Unbounded, nil
	}
	if max, err = strconv.Atoi(n.Max); err != nil {
		return 0, 0, fmt.Errorf("repeat count: %w", err)
	}
	return min, max, nil
}

func (c *compiler) atom(a *Atom) (regex.Object[rune], error) {
	switch {
	case a.Empty:
		return c.p.Series(), nil
	case a.Group != nil:
		return c.pattern(a.Group)
	case a.Class != nil:
		return c.class(a.Class)
	case a.Any:
		return c.p.Any(), nil
	case a.Escaped != "":
		entries, err := c.escape(a.Escaped)
		if err != nil {
			return nil, err
		}
		return c.union(entries), nil
	}
	r, _ := utf8.DecodeRuneInString(a.Literal)
	return c.p.Const(r), nil
}

func (c *compiler) class(cl *Class) (regex.Object[rune], error) {
	var entries []symbol.Entry[rune]
	for _, it := range cl.Items {
		if it.To == "" {
			e, err := c.member(it.From)
			if err != nil {
				return nil, err
			}
			entries = append(entries, e...)
			continue
		}
		from, err := c.bound(it.From)
		if err != nil {
			return nil, err
		}
		to, err := c.bound(it.To)
		if err != nil {
			return nil, err
		}
		if from > to {
			return nil, fmt.Errorf("class range %s-%s is reversed", Quote(from), Quote(to))
		}
		entries = append(entries, c.symbols.IncludeRange(from, to)...)
	}
	if cl.Negated {
		entries = c.symbols.Complement(entries)
	} else {
		entries = c.symbols.SplitEntries(entries)
	}
	return c.union(entries), nil
}

// union turns disjoint entries into one object: a constant, a range, or
// their alternation. No entries yield an object matching nothing.
func (c *compiler) union(entries []symbol.Entry[rune]) regex.Object[rune] {
	item := func(e symbol.Entry[rune]) regex.Object[rune] {
		if e.From == e.To {
			return c.p.Const(e.From)
		}
		return c.p.Range(e.From, e.To)
	}
	switch len(entries) {
	case 0:
		d := c.symbols.Domain()
		return c.p.Not(d.First(), d.Last())
	case 1:
		return item(entries[0])
	}
	items := make([]regex.Object[rune], len(entries))
	for i, e := range entries {
		items[i] = item(e)
	}
	return c.p.Parallels(items...)
}

func (c *compiler) member(tok string) ([]symbol.Entry[rune], error) {
	if strings.HasPrefix(tok, `\`) {
		return c.escape(tok)
	}
	r, _ := utf8.DecodeRuneInString(tok)
	return c.symbols.Include(r), nil
}

// bound resolves one end of a class range, which must be a single symbol.
func (c *compiler) bound(tok string) (rune, error) {
	entries, err := c.member(tok)
	if err != nil {
		return 0, err
	}
	if len(entries) != 1 || entries[0].From != entries[0].To {
		return 0, fmt.Errorf("%s cannot bound a class range", tok)
	}
	return entries[0].From, nil
}

var classEscapes = map[rune][]symbol.Entry[rune]{
	'd': {{From: '0', To: '9'}},
	's': {{From: '\t', To: '\r'}, {From: ' ', To: ' '}},
	'w': {{From: '0', To: '9'}, {From: 'A', To: 'Z'}, {From: '_', To: '_'}, {From: 'a', To: 'z'}},
}

func (c *compiler) escape(tok string) ([]symbol.Entry[rune], error) {
	if strings.HasPrefix(tok, `\x{`) {
		v, err := strconv.ParseUint(tok[3:len(tok)-1], 16, 32)
		if err != nil || v > unicode.MaxRune {
			return nil, fmt.Errorf("invalid code point %s", tok)
		}
		return c.symbols.Include(rune(v)), nil
	}
	r, _ := utf8.DecodeRuneInString(tok[1:])
	switch r {
	case 'n':
		r = '\n'
	case 't':
		r = '\t'
	case 'r':
		r = '\r'
	case 'd', 's', 'w':
		return classEscapes[r], nil
	case 'D', 'S', 'W':
		return c.symbols.Complement(classEscapes[unicode.ToLower(r)]), nil
	}
	return c.symbols.Include(r), nil
}
