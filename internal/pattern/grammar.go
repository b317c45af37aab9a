package pattern

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Pattern is a list of alternatives. A nil sequence is the empty
// alternative, as in "a|".
type Pattern struct {
	Head *Sequence `parser:"@@?"`
	Tail []*Branch `parser:"@@*"`
}

type Branch struct {
	Pipe     bool      `parser:"@'|'"`
	Sequence *Sequence `parser:"@@?"`
}

type Sequence struct {
	Terms []*Term `parser:"@@+"`
}

type Term struct {
	Atom       *Atom       `parser:"@@"`
	Quantifier *Quantifier `parser:"@@?"`
}

type Atom struct {
	Empty   bool     `parser:"  @( '(' ')' )"`
	Group   *Pattern `parser:"| '(' @@ ')'"`
	Class   *Class   `parser:"| @@"`
	Any     bool     `parser:"| @'.'"`
	Escaped string   `parser:"| @( Hex | Escaped )"`
	Literal string   `parser:"| @( Char | Digit | ',' | '-' | '^' | ']' | '}' )"`
}

type Quantifier struct {
	Kind *QuantifierKind `parser:"@@"`
	Lazy bool            `parser:"@'?'?"`
}

type QuantifierKind struct {
	Op    string `parser:"  @( '*' | '+' | '?' )"`
	Count *Count `parser:"| '{' @@ '}'"`
}

// Count is {m}, {m,} or {m,n}.
type Count struct {
	Min   string `parser:"@Digit+"`
	Comma bool   `parser:"@','?"`
	Max   string `parser:"@Digit*"`
}

type Class struct {
	Negated bool         `parser:"'[' @'^'?"`
	Items   []*ClassItem `parser:"@@+ ']'"`
}

// ClassItem is a single member or a From-To range. A literal '-' or ']'
// inside a class has to be escaped.
type ClassItem struct {
	From string `parser:"@( Hex | Escaped | Char | Digit | '|' | '*' | '+' | '?' | '(' | ')' | '{' | '}' | '.' | ',' | '^' | '[' )"`
	To   string `parser:"( '-' @( Hex | Escaped | Char | Digit | '|' | '*' | '+' | '?' | '(' | ')' | '{' | '}' | '.' | ',' | '^' | '[' ) )?"`
}

var patternLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Hex", Pattern: `\\x\{[0-9a-fA-F]+\}`},
	{Name: "Escaped", Pattern: `\\(?s:.)`},
	{Name: "Digit", Pattern: `[0-9]`},
	{Name: "Meta", Pattern: `[|*+?(){}\[\]^.,\-\\]`},
	{Name: "Char", Pattern: `(?s:.)`},
})

var parser = participle.MustBuild[Pattern](
	participle.Lexer(patternLexer),
	participle.UseLookahead(2),
)

// Parse returns the syntax tree of src. The empty pattern parses to an empty
// Pattern.
func Parse(src string) (*Pattern, error) {
	if src == "" {
		return &Pattern{}, nil
	}
	return parser.ParseString("pattern", src)
}
