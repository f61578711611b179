package lexer

// Kind is the type of a lexical token. SGF has no keywords or operators.
type Kind int

const (
	// Identifier is a property name.
	Identifier Kind = iota
	// Literal is a property value, unescaped.
	Literal
	// Separator is one of ( ) [ ] ;
	Separator
)

func (k Kind) String() string {
	switch k {
	case Identifier:
		return "identifier"
	case Literal:
		return "literal"
	default:
		return "separator"
	}
}

type Token struct {
	Kind Kind
	Text string
}

const (
	LeftParenthesis  = "("
	RightParenthesis = ")"
	LeftBracket      = "["
	RightBracket     = "]"
	SemiColon        = ";"
)

func (t Token) IsSeparator(text string) bool {
	return t.Kind == Separator && t.Text == text
}
