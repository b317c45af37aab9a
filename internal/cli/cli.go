// Package cli parses regexmatch flags and runs patterns against inputs.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"automata/internal/config"
	"automata/internal/dot"
	"automata/internal/fsm"
	"automata/internal/pattern"
	"automata/internal/regex"
)

// Config holds regexmatch configuration. Environment values are defaults
// that flags override.
type Config struct {
	Pattern   string
	DotFile   string
	Cases     string
	Graph     string `env:"AUTOMATA_GRAPH" envDefault:"dfa"`
	RankDir   string `env:"AUTOMATA_RANKDIR" envDefault:"LR"`
	Normalize bool   `env:"AUTOMATA_NORMALIZE" envDefault:"true"`
	Minimize  bool   `env:"AUTOMATA_MINIMIZE"`
	Verbose   bool   `env:"AUTOMATA_VERBOSE"`
	Inputs    []string
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Pattern, "re", "", "pattern to match")
	fs.StringVar(&cfg.DotFile, "dot", "", "write the automaton as Graphviz to this file (- for stdout)")
	fs.StringVar(&cfg.Graph, "graph", cfg.Graph, "automaton to export: nfa, dfa or min")
	fs.StringVar(&cfg.RankDir, "rankdir", cfg.RankDir, "Graphviz rankdir")
	fs.StringVar(&cfg.Cases, "cases", "", "YAML file of {pattern, input, want} cases")
	fs.BoolVar(&cfg.Normalize, "nfc", cfg.Normalize, "NFC-normalise inputs before matching")
	fs.BoolVar(&cfg.Minimize, "min", cfg.Minimize, "match with the minimal DFA")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Inputs = fs.Args()

	if cfg.Pattern == "" && cfg.Cases == "" {
		return Config{}, errors.New("one of -re or -cases is required")
	}
	switch cfg.Graph {
	case "nfa", "dfa", "min":
	default:
		return Config{}, fmt.Errorf("unknown graph %q", cfg.Graph)
	}
	return cfg, nil
}

// Run matches every input against the pattern, writes the requested graph
// and runs the case file. Results go to out, logs to errOut.
func Run(cfg Config, out, errOut io.Writer) error {
	logger := log.New(errOut, "regexmatch: ", 0)
	r := &runner{cfg: cfg, out: out, logger: logger, provider: pattern.NewProvider()}

	if cfg.Pattern != "" {
		if err := r.matchInputs(); err != nil {
			return err
		}
	}
	if cfg.Cases != "" {
		return r.runCases()
	}
	return nil
}

type runner struct {
	cfg      Config
	out      io.Writer
	logger   *log.Logger
	provider *regex.Provider[rune]
}

func (r *runner) debugf(format string, args ...any) {
	if r.cfg.Verbose {
		r.logger.Printf(format, args...)
	}
}

func (r *runner) input(s string) []rune {
	if r.cfg.Normalize {
		s = norm.NFC.String(s)
	}
	return []rune(s)
}

func (r *runner) compile(src string) (*regex.Matcher[rune], error) {
	o, err := pattern.Compile(r.provider, src)
	if err != nil {
		return nil, err
	}
	var opts []regex.CompileOption
	if r.cfg.Minimize {
		opts = append(opts, regex.Minimized())
	}
	m, err := regex.Compile(o, opts...)
	if err != nil {
		return nil, err
	}
	r.debugf("compiled %q as %s", src, o)
	return m, nil
}

func (r *runner) matchInputs() error {
	m, err := r.compile(r.cfg.Pattern)
	if err != nil {
		return err
	}
	if r.cfg.DotFile != "" {
		if err := r.writeGraph(m); err != nil {
			return err
		}
	}
	for _, in := range r.cfg.Inputs {
		verdict := "no match"
		if m.IsMatch(r.input(in)...) {
			verdict = "match"
		}
		fmt.Fprintf(r.out, "%q: %s\n", in, verdict)
	}
	return nil
}

func (r *runner) writeGraph(m *regex.Matcher[rune]) error {
	var start *fsm.State[rune]
	switch r.cfg.Graph {
	case "nfa":
		start = m.NFA()
	case "dfa":
		start = m.DFA()
	case "min":
		minimal, err := regex.Compile(m.Object(), regex.Minimized())
		if err != nil {
			return err
		}
		start = minimal.DFA()
	}

	w := r.out
	if r.cfg.DotFile != "-" {
		f, err := os.Create(r.cfg.DotFile)
		if err != nil {
			return fmt.Errorf("create %s: %w", r.cfg.DotFile, err)
		}
		defer f.Close()
		w = f
	}
	opts := dot.Options[rune]{RankDir: r.cfg.RankDir, Label: r.provider.Symbols().FormatEntries}
	if err := dot.Write(w, start, opts); err != nil {
		return fmt.Errorf("write %s graph: %w", r.cfg.Graph, err)
	}
	if r.cfg.DotFile != "-" {
		r.logger.Printf("DOT written to %s", r.cfg.DotFile)
	}
	return nil
}

// Case is one entry of a -cases file.
type Case struct {
	Pattern string `yaml:"pattern"`
	Input   string `yaml:"input"`
	Want    bool   `yaml:"want"`
}

func (r *runner) runCases() error {
	data, err := os.ReadFile(r.cfg.Cases)
	if err != nil {
		return fmt.Errorf("read cases: %w", err)
	}
	var cases []Case
	if err := yaml.Unmarshal(data, &cases); err != nil {
		return fmt.Errorf("decode %s: %w", r.cfg.Cases, err)
	}

	compiled := map[string]*regex.Matcher[rune]{}
	failed := 0
	for i, c := range cases {
		m, ok := compiled[c.Pattern]
		if !ok {
			if m, err = r.compile(c.Pattern); err != nil {
				return fmt.Errorf("case %d: %w", i+1, err)
			}
			compiled[c.Pattern] = m
		}
		got := m.IsMatch(r.input(c.Input)...)
		if got != c.Want {
			failed++
			fmt.Fprintf(r.out, "FAIL %q on %q: want %v got %v\n", c.Pattern, c.Input, c.Want, got)
			continue
		}
		r.debugf("ok %q on %q", c.Pattern, c.Input)
	}
	fmt.Fprintf(r.out, "%d/%d cases passed\n", len(cases)-failed, len(cases))
	if failed > 0 {
		return fmt.Errorf("%d of %d cases failed", failed, len(cases))
	}
	return nil
}
