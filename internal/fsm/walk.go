package fsm

// States returns every state reachable from start, start first, in
// depth-first discovery order.
func States[T any](start *State[T]) ([]*State[T], error) {
	mustNotBeNil("start", start == nil)
	seen := map[*State[T]]bool{start: true}
	out := []*State[T]{start}
	stack := []*State[T]{start}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range s.transitions {
			if t.target == nil {
				return nil, &MissingTargetError{Transition: t.id, From: s.id}
			}
			if seen[t.target] {
				continue
			}
			seen[t.target] = true
			out = append(out, t.target)
			stack = append(stack, t.target)
		}
	}
	return out, nil
}

// AllTransitions returns every transition reachable from start.
func AllTransitions[T any](start *State[T]) ([]*Transition[T], error) {
	states, err := States(start)
	if err != nil {
		return nil, err
	}
	seen := map[*Transition[T]]bool{}
	var out []*Transition[T]
	for _, s := range states {
		for _, t := range s.transitions {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out, nil
}

// EpsilonReachable returns the states reachable from s through epsilon
// transitions only. s itself is included only when an epsilon cycle leads
// back to it.
func EpsilonReachable[T any](s *State[T]) ([]*State[T], error) {
	mustNotBeNil("state", s == nil)
	seen := map[*State[T]]bool{}
	var out []*State[T]
	stack := []*State[T]{s}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range cur.transitions {
			if t.target == nil {
				return nil, &MissingTargetError{Transition: t.id, From: cur.id}
			}
			if !t.epsilon || seen[t.target] {
				continue
			}
			seen[t.target] = true
			out = append(out, t.target)
			stack = append(stack, t.target)
		}
	}
	return out, nil
}
