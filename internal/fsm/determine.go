package fsm

import (
	"slices"

	"github.com/bits-and-blooms/bitset"

	"automata/internal/symbol"
)

// idKey identifies a set of arena ids. Two sets with the same members give
// the same key regardless of insertion order.
func idKey(ids ...int) string {
	var b bitset.BitSet
	for _, id := range ids {
		b.Set(uint(id))
	}
	data, err := b.MarshalBinary()
	if err != nil {
		// MarshalBinary only fails on writer errors; it writes to memory.
		panic(err)
	}
	return string(data)
}

func stateKey[T any](states []*State[T]) string {
	ids := make([]int, len(states))
	for i, s := range states {
		ids[i] = s.id
	}
	return idKey(ids...)
}

func transitionKey[T any](ts []*Transition[T]) string {
	ids := make([]int, len(ts))
	for i, t := range ts {
		ids[i] = t.id
	}
	return idKey(ids...)
}

// unionState is a DFA state under construction: one specific set of NFA
// states. Equality is by that set only; the graph is cyclic so a structural
// comparison would not terminate.
type unionState[T any] struct {
	key         string
	states      []*State[T]
	transitions []*unionTransition[T]
	byInner     map[string]*unionTransition[T]
	built       *State[T]
}

func newUnionState[T any](states []*State[T]) *unionState[T] {
	states = slices.Clone(states)
	slices.SortFunc(states, func(a, b *State[T]) int { return a.id - b.id })
	states = slices.Compact(states)
	return &unionState[T]{
		key:     stateKey(states),
		states:  states,
		byInner: map[string]*unionTransition[T]{},
	}
}

func (u *unionState[T]) build(b Builder[T]) *State[T] {
	if u.built == nil {
		u.built = b.NewDFAState(slices.Clone(u.states))
		for _, t := range u.transitions {
			u.built.AttachTransition(t.build(b))
		}
	}
	return u.built
}

// unionTransition is a DFA transition under construction, identified by the
// NFA transitions it merges.
type unionTransition[T any] struct {
	entries []symbol.Entry[T]
	inner   []*Transition[T]
	target  *unionState[T]
	built   *Transition[T]
}

func (t *unionTransition[T]) build(b Builder[T]) *Transition[T] {
	if t.built == nil {
		t.built = b.NewDFATransition(slices.Clone(t.entries), slices.Clone(t.inner))
		t.built.SetTarget(t.target.build(b))
	}
	return t.built
}

type pieceGroup[T any] struct {
	targets []*State[T]
	pieces  []symbol.Entry[T]
	inner   []*Transition[T]
}

// Determine runs the subset construction and returns the start state of an
// equivalent DFA, built through the NFA's Builder. EpsilonClosure runs first.
//
// For every reachable set of NFA states the outgoing entries are partitioned
// into disjoint pieces; pieces leading to the same set of NFA states are
// coalesced into one DFA transition. The outgoing entry sets of each DFA
// state are therefore pairwise disjoint.
func (n *NFA[T]) Determine(a Alphabet[T]) (*State[T], error) {
	if err := n.EpsilonClosure(); err != nil {
		return nil, err
	}
	start, err := n.StartState()
	if err != nil {
		return nil, err
	}

	first := newUnionState([]*State[T]{start})
	seen := map[string]*unionState[T]{first.key: first}
	queue := []*unionState[T]{first}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		var outgoing []*Transition[T]
		var entries []symbol.Entry[T]
		for _, s := range cur.states {
			for _, t := range s.transitions {
				if t.target == nil {
					return nil, &MissingTargetError{Transition: t.id, From: s.id}
				}
				if slices.Contains(outgoing, t) {
					continue
				}
				outgoing = append(outgoing, t)
				entries = append(entries, t.entries...)
			}
		}

		var order []string
		groups := map[string]*pieceGroup[T]{}
		for _, piece := range a.Partition(entries) {
			var hits []*Transition[T]
			var targets []*State[T]
			for _, t := range outgoing {
				if a.ContainsEntry(t.entries, piece) {
					hits = append(hits, t)
					targets = append(targets, t.target)
				}
			}
			if len(hits) == 0 {
				continue
			}
			key := stateKey(targets)
			g, ok := groups[key]
			if !ok {
				g = &pieceGroup[T]{targets: targets}
				groups[key] = g
				order = append(order, key)
			}
			g.pieces = append(g.pieces, piece)
			for _, h := range hits {
				if !slices.Contains(g.inner, h) {
					g.inner = append(g.inner, h)
				}
			}
		}

		for _, key := range order {
			g := groups[key]
			next, ok := seen[key]
			if !ok {
				next = newUnionState(g.targets)
				seen[key] = next
				queue = append(queue, next)
			}
			innerKey := transitionKey(g.inner)
			if t, ok := cur.byInner[innerKey]; ok {
				t.entries = a.SplitEntries(append(t.entries, g.pieces...))
				continue
			}
			t := &unionTransition[T]{
				entries: a.SplitEntries(g.pieces),
				inner:   g.inner,
				target:  next,
			}
			cur.byInner[innerKey] = t
			cur.transitions = append(cur.transitions, t)
		}
	}

	return first.build(n.builder), nil
}
