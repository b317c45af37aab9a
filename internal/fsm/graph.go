package fsm

import (
	"slices"

	"automata/internal/symbol"
)

// Graph is the arena states and transitions are allocated from. Ids are
// unique within one Graph and stay stable for its lifetime, which is what
// union states are keyed by during determinization.
type Graph[T any] struct {
	states      int
	transitions int
}

func NewGraph[T any]() *Graph[T] { return &Graph[T]{} }

// NewState allocates a state.
func (g *Graph[T]) NewState(terminal bool) *State[T] {
	s := &State[T]{id: g.states, Terminal: terminal}
	g.states++
	return s
}

// NewTransition allocates an input transition over entries. It panics when
// entries is empty; use NewEpsilon for transitions that consume nothing.
func (g *Graph[T]) NewTransition(entries ...symbol.Entry[T]) *Transition[T] {
	if len(entries) == 0 {
		panic(&ArgumentError{ParamName: "entries", Message: "input transition needs at least one entry"})
	}
	t := &Transition[T]{id: g.transitions, entries: slices.Clone(entries)}
	g.transitions++
	return t
}

// NewEpsilon allocates an epsilon transition.
func (g *Graph[T]) NewEpsilon() *Transition[T] {
	t := &Transition[T]{id: g.transitions, epsilon: true}
	g.transitions++
	return t
}

// NewDFAState makes Graph a Builder: the merged state is terminal when any of
// the underlying states is.
func (g *Graph[T]) NewDFAState(states []*State[T]) *State[T] {
	terminal := slices.ContainsFunc(states, func(s *State[T]) bool { return s.Terminal })
	return g.NewState(terminal)
}

func (g *Graph[T]) NewDFATransition(entries []symbol.Entry[T], _ []*Transition[T]) *Transition[T] {
	return g.NewTransition(entries...)
}

// State is a node of an automaton. Identity is the pointer; ID is the arena
// handle used for set keys.
type State[T any] struct {
	id          int
	Terminal    bool
	transitions []*Transition[T]
}

func (s *State[T]) ID() int { return s.id }

// Transitions returns the outgoing transitions in attach order.
func (s *State[T]) Transitions() []*Transition[T] { return slices.Clone(s.transitions) }

// AttachTransition adds t to the outgoing set. It reports false when t was
// already attached.
func (s *State[T]) AttachTransition(t *Transition[T]) bool {
	mustNotBeNil("transition", t == nil)
	if slices.Contains(s.transitions, t) {
		return false
	}
	s.transitions = append(s.transitions, t)
	return true
}

// RemoveTransition drops t from the outgoing set. It reports false when t was
// not attached.
func (s *State[T]) RemoveTransition(t *Transition[T]) bool {
	mustNotBeNil("transition", t == nil)
	i := slices.Index(s.transitions, t)
	if i < 0 {
		return false
	}
	s.transitions = slices.Delete(s.transitions, i, i+1)
	return true
}

// Transition is an edge. Epsilon transitions carry no entries; input
// transitions carry a non-empty entry set. The target is not owned: several
// transitions may point at one state and cycles are allowed.
type Transition[T any] struct {
	id      int
	epsilon bool
	entries []symbol.Entry[T]
	target  *State[T]
}

func (t *Transition[T]) ID() int { return t.id }
func (t *Transition[T]) IsEpsilon() bool { return t.epsilon }
func (t *Transition[T]) Entries() []symbol.Entry[T] { return slices.Clone(t.entries) }
func (t *Transition[T]) Target() *State[T] { return t.target }

// SetTarget points t at s. Re-setting the current target is a no-op and
// reports false.
func (t *Transition[T]) SetTarget(s *State[T]) bool {
	mustNotBeNil("state", s == nil)
	if t.target == s {
		return false
	}
	t.target = s
	return true
}
