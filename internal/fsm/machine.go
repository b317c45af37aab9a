package fsm

import "automata/internal/symbol"

// Alphabet is the part of the symbol algebra the machines need.
// *symbol.Provider satisfies it.
type Alphabet[T any] interface {
	Contains(entries []symbol.Entry[T], v T) bool
	ContainsEntry(entries []symbol.Entry[T], e symbol.Entry[T]) bool
	SplitEntries(entries []symbol.Entry[T]) []symbol.Entry[T]
	Partition(entries []symbol.Entry[T]) []symbol.Entry[T]
}

// Builder creates the states and transitions of a determinized machine.
// Each DFA state stands for a set of NFA states, each DFA transition for the
// set of NFA transitions it merges.
type Builder[T any] interface {
	NewDFAState(states []*State[T]) *State[T]
	NewDFATransition(entries []symbol.Entry[T], transitions []*Transition[T]) *Transition[T]
}

// Machine is the common surface of NFA and DFA.
type Machine[T any] interface {
	StartState() (*State[T], error)
	CurrentState() (*State[T], error)
	SetStartState(s *State[T])
	Reset() error
	Transit(input T, a Alphabet[T]) (bool, error)
}

// FSM holds the start and current state shared by every machine kind.
type FSM[T any] struct {
	start   *State[T]
	current *State[T]
}

func (m *FSM[T]) StartState() (*State[T], error) {
	if m.start == nil {
		return nil, ErrUninitialized
	}
	return m.start, nil
}

func (m *FSM[T]) CurrentState() (*State[T], error) {
	if m.current == nil {
		return nil, ErrUninitialized
	}
	return m.current, nil
}

// SetStartState assigns the start state and resets the machine onto it.
func (m *FSM[T]) SetStartState(s *State[T]) {
	mustNotBeNil("state", s == nil)
	m.start = s
	m.current = s
}

// Reset moves the machine back to its start state.
func (m *FSM[T]) Reset() error {
	if m.start == nil {
		return ErrUninitialized
	}
	m.current = m.start
	return nil
}

// DFA executes a deterministic machine: outgoing entry sets of every state
// are pairwise disjoint.
type DFA[T any] struct {
	FSM[T]
}

func NewDFA[T any](start *State[T]) *DFA[T] {
	d := &DFA[T]{}
	d.SetStartState(start)
	return d
}

// Transit follows the first transition of the current state whose entries
// hold input. It reports false, without moving, when none does; there is no
// implicit reject state.
func (d *DFA[T]) Transit(input T, a Alphabet[T]) (bool, error) {
	cur, err := d.CurrentState()
	if err != nil {
		return false, err
	}
	for _, t := range cur.transitions {
		if !a.Contains(t.entries, input) {
			continue
		}
		if t.target == nil {
			return false, &MissingTargetError{Transition: t.id, From: cur.id}
		}
		d.current = t.target
		return true, nil
	}
	return false, nil
}

// Accepting reports whether the current state is terminal.
func (d *DFA[T]) Accepting() (bool, error) {
	cur, err := d.CurrentState()
	if err != nil {
		return false, err
	}
	return cur.Terminal, nil
}

// NFA is a build-time machine. It cannot consume input; Determine turns it
// into the start state of an equivalent DFA.
type NFA[T any] struct {
	FSM[T]
	builder Builder[T]
}

// NewNFA returns an NFA whose determinized states are made by b.
func NewNFA[T any](b Builder[T], start *State[T]) *NFA[T] {
	mustNotBeNil("builder", b == nil)
	n := &NFA[T]{builder: b}
	n.SetStartState(start)
	return n
}

func (n *NFA[T]) Transit(T, Alphabet[T]) (bool, error) { return false, ErrNotDeterministic }
