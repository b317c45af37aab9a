package dot

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"automata/internal/fsm"
	"automata/internal/symbol"
)

type Options[T any] struct {
	// RankDir is the Graphviz rankdir; LR when empty.
	RankDir string
	// Label renders the entries of an input transition.
	Label func([]symbol.Entry[T]) string
}

// Write prints a Graphviz representation of the automaton reachable from
// start. Terminal states are double circles; epsilon edges are labelled ε.
func Write[T any](w io.Writer, start *fsm.State[T], opts Options[T]) error {
	states, err := fsm.States(start)
	if err != nil {
		return err
	}
	if opts.RankDir == "" {
		opts.RankDir = "LR"
	}
	if opts.Label == nil {
		opts.Label = func(entries []symbol.Entry[T]) string { return fmt.Sprint(entries) }
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph G {")
	fmt.Fprintf(bw, "    rankdir=%s;\n", opts.RankDir)
	for _, s := range states {
		shape := "circle"
		if s.Terminal {
			shape = "doublecircle"
		}
		fmt.Fprintf(bw, "    q%d [shape=%s];\n", s.ID(), shape)
		for _, t := range s.Transitions() {
			label := "ε"
			if !t.IsEpsilon() {
				label = opts.Label(t.Entries())
			}
			fmt.Fprintf(bw, "    q%d -> q%d [label=%s];\n", s.ID(), t.Target().ID(), strconv.Quote(label))
		}
	}
	fmt.Fprintf(bw, "    _start [shape=point]; _start -> q%d;\n", start.ID())
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
