package fsm

import "slices"

// EpsilonClosure removes every epsilon transition reachable from the start
// state, in place, without changing the accepted language.
//
// Only the start state and targets of input transitions survive as reachable
// states. Each of them receives the input transitions of its epsilon closure
// and becomes terminal when a terminal state is in that closure. States that
// were only reachable through epsilon edges drop out of the graph. Running
// it again is a no-op.
func (n *NFA[T]) EpsilonClosure() error {
	start, err := n.StartState()
	if err != nil {
		return err
	}
	all, err := AllTransitions(start)
	if err != nil {
		return err
	}
	if !slices.ContainsFunc(all, (*Transition[T]).IsEpsilon) {
		return nil
	}

	states, err := States(start)
	if err != nil {
		return err
	}
	available := map[*State[T]]bool{start: true}
	for _, t := range all {
		if !t.epsilon {
			available[t.target] = true
		}
	}

	for _, s := range states {
		if !available[s] {
			continue
		}
		closure, err := EpsilonReachable(s)
		if err != nil {
			return err
		}
		closure = slices.DeleteFunc(closure, func(c *State[T]) bool { return c == s })

		for _, c := range closure {
			for _, t := range c.transitions {
				if !t.epsilon {
					s.AttachTransition(t)
				}
			}
		}
		for _, t := range s.Transitions() {
			if t.epsilon {
				s.RemoveTransition(t)
			}
		}
		if slices.ContainsFunc(closure, func(c *State[T]) bool { return c.Terminal }) {
			s.Terminal = true
		}
	}
	return nil
}
