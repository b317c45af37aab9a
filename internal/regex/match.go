package regex

import (
	"fmt"

	"automata/internal/fsm"
)

// segmentNFA wires o's fragment between a fresh start state and a fresh
// terminal state in a new graph.
func segmentNFA[T any](o Object[T]) (*fsm.Graph[T], *fsm.NFA[T]) {
	g := fsm.NewGraph[T]()
	start, accept := g.NewState(false), g.NewState(true)
	s, e := o.Segment(g)
	start.AttachTransition(s)
	e.SetTarget(accept)
	return g, fsm.NewNFA[T](g, start)
}

// Match reports whether values, consumed in full, lead o's automaton to a
// terminal state. The NFA and DFA are rebuilt on every call.
func Match[T any](o Object[T], values []T) (bool, error) {
	p := provider("o", o)
	_, nfa := segmentNFA(o)
	start, err := nfa.Determine(p.symbols)
	if err != nil {
		return false, fmt.Errorf("determinize %s: %w", o, err)
	}
	return run(start, p, values)
}

// IsMatch is Match for callers that treat automaton faults as bugs.
func IsMatch[T any](o Object[T], values ...T) bool {
	ok, err := Match(o, values)
	if err != nil {
		panic(err)
	}
	return ok
}

func run[T any](start *fsm.State[T], p *Provider[T], values []T) (bool, error) {
	dfa := fsm.NewDFA(start)
	for _, v := range values {
		ok, err := dfa.Transit(v, p.symbols)
		if err != nil || !ok {
			return false, err
		}
	}
	return dfa.Accepting()
}

// Matcher holds the DFA of one object so it can be matched repeatedly.
type Matcher[T any] struct {
	object Object[T]
	dfa    *fsm.State[T]
}

type compileOptions struct {
	minimize bool
}

type CompileOption func(*compileOptions)

// Minimized makes Compile reduce the DFA to its minimal form.
func Minimized() CompileOption {
	return func(o *compileOptions) { o.minimize = true }
}

func Compile[T any](o Object[T], opts ...CompileOption) (*Matcher[T], error) {
	p := provider("o", o)
	var co compileOptions
	for _, opt := range opts {
		opt(&co)
	}
	g, nfa := segmentNFA(o)
	start, err := nfa.Determine(p.symbols)
	if err != nil {
		return nil, fmt.Errorf("determinize %s: %w", o, err)
	}
	if co.minimize {
		if start, err = fsm.Minimize(start, p.symbols, g); err != nil {
			return nil, fmt.Errorf("minimize %s: %w", o, err)
		}
	}
	return &Matcher[T]{object: o, dfa: start}, nil
}

func (m *Matcher[T]) Object() Object[T] { return m.object }

// DFA returns the start state of the compiled automaton.
func (m *Matcher[T]) DFA() *fsm.State[T] { return m.dfa }

// NFA builds a fresh, epsilon-carrying automaton for the object. It is not
// used for matching.
func (m *Matcher[T]) NFA() *fsm.State[T] {
	_, nfa := segmentNFA(m.object)
	start, _ := nfa.StartState()
	return start
}

func (m *Matcher[T]) Match(values []T) (bool, error) {
	return run(m.dfa, m.object.Provider(), values)
}

func (m *Matcher[T]) IsMatch(values ...T) bool {
	ok, err := m.Match(values)
	if err != nil {
		panic(err)
	}
	return ok
}
