package fsm

import (
	"slices"

	"automata/internal/symbol"
)

// Minimize returns the start state of the minimal DFA equivalent to the one
// rooted at start. New states and transitions come from b; the input graph is
// left untouched.
//
// Hopcroft partition refinement over the global alphabet partition of all
// reachable entries. Missing transitions go to an implicit sink, and states
// equivalent to the sink are dropped from the result.
func Minimize[T any](start *State[T], a Alphabet[T], b Builder[T]) (*State[T], error) {
	states, err := States(start)
	if err != nil {
		return nil, err
	}
	var all []symbol.Entry[T]
	for _, s := range states {
		for _, t := range s.transitions {
			all = append(all, t.entries...)
		}
	}
	alpha := a.Partition(all)

	// index len(states) is the sink
	n := len(states)
	index := make(map[*State[T]]int, n)
	for i, s := range states {
		index[s] = i
	}
	delta := make([][]int, n+1)
	for i := range delta {
		delta[i] = make([]int, len(alpha))
		for c := range alpha {
			delta[i][c] = n
		}
	}
	for i, s := range states {
		for c, piece := range alpha {
			for _, t := range s.transitions {
				if a.ContainsEntry(t.entries, piece) {
					delta[i][c] = index[t.target]
					break
				}
			}
		}
	}
	accept := func(i int) bool { return i < n && states[i].Terminal }

	// --- initial partition
	var acc, non []int
	for i := 0; i <= n; i++ {
		if accept(i) {
			acc = append(acc, i)
		} else {
			non = append(non, i)
		}
	}
	var blocks [][]int
	if len(acc) != 0 {
		blocks = append(blocks, acc)
	}
	blocks = append(blocks, non)
	blockOf := make([]int, n+1)
	for bi, blk := range blocks {
		for _, s := range blk {
			blockOf[s] = bi
		}
	}
	work := make([]int, len(blocks))
	inWork := make([]bool, len(blocks))
	for i := range work {
		work[i] = i
		inWork[i] = true
	}

	// --- refinement
	for len(work) > 0 {
		splitter := work[0]
		work = work[1:]
		inWork[splitter] = false
		members := slices.Clone(blocks[splitter])

		for c := range alpha {
			// preimage of the splitter on symbol c
			pre := map[int]bool{}
			for s := 0; s <= n; s++ {
				if slices.Contains(members, delta[s][c]) {
					pre[s] = true
				}
			}
			for bi := 0; bi < len(blocks); bi++ {
				var inter, diff []int
				for _, s := range blocks[bi] {
					if pre[s] {
						inter = append(inter, s)
					} else {
						diff = append(diff, s)
					}
				}
				if len(inter) == 0 || len(diff) == 0 {
					continue
				}
				blocks[bi] = inter
				blocks = append(blocks, diff)
				inWork = append(inWork, false)
				nb := len(blocks) - 1
				for _, s := range diff {
					blockOf[s] = nb
				}
				switch {
				case inWork[bi]:
					work = append(work, nb)
					inWork[nb] = true
				case len(inter) < len(diff):
					work = append(work, bi)
					inWork[bi] = true
				default:
					work = append(work, nb)
					inWork[nb] = true
				}
			}
		}
	}

	// --- rebuild, one state per block except the sink's
	sink := blockOf[n]
	if blockOf[0] == sink {
		// empty language
		return b.NewDFAState(nil), nil
	}
	built := make([]*State[T], len(blocks))
	for bi, blk := range blocks {
		if bi == sink {
			continue
		}
		group := make([]*State[T], 0, len(blk))
		for _, s := range blk {
			group = append(group, states[s])
		}
		built[bi] = b.NewDFAState(group)
	}
	for bi, blk := range blocks {
		if bi == sink {
			continue
		}
		rep := blk[0]
		var order []int
		pieces := map[int][]symbol.Entry[T]{}
		for c, piece := range alpha {
			tb := blockOf[delta[rep][c]]
			if tb == sink {
				continue
			}
			if _, ok := pieces[tb]; !ok {
				order = append(order, tb)
			}
			pieces[tb] = append(pieces[tb], piece)
		}
		for _, tb := range order {
			t := b.NewDFATransition(a.SplitEntries(pieces[tb]), nil)
			t.SetTarget(built[tb])
			built[bi].AttachTransition(t)
		}
	}
	return built[blockOf[0]], nil
}
