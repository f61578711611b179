package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSgf    = errors.New("invalid sgf")
	ErrInvalidGame   = errors.New("invalid game")
	ErrNodeNotInGame = errors.New("node can't be found in this game")
	ErrInternal      = errors.New("internal error")

	ErrRecordNotFound = errors.New("record not found")
	ErrGameIndex      = errors.New("game index out of range")
	ErrNodePath       = errors.New("node path does not exist")
	ErrCacheMiss      = errors.New("cache miss")
	ErrInputTooLarge  = errors.New("sgf input too large")
)

// Kind classifies a pipeline failure: user input (Syntax, Game), misuse
// (NodeDomain) or a bug in the pipeline itself (Internal).
type Kind int

const (
	KindSyntax Kind = iota
	KindGame
	KindNodeDomain
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindGame:
		return "game"
	case KindNodeDomain:
		return "node_domain"
	case KindInternal:
		return "internal"
	}
	return "unknown"
}

// Error is the single failure type of the sgf pipeline.
type Error struct {
	Kind Kind
	Rule string
	Msg  string

	// Char and Index locate lexical failures. Index counts characters
	// (runes) from the start of the input; it is -1 otherwise.
	Char  rune
	Index int
}

func (e *Error) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: %s (%q at index %d)", e.sentinel(), e.Msg, e.Char, e.Index)
	}
	return fmt.Sprintf("%s: %s", e.sentinel(), e.Msg)
}

func (e *Error) Unwrap() error {
	return e.sentinel()
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindSyntax:
		return ErrInvalidSgf
	case KindGame:
		return ErrInvalidGame
	case KindNodeDomain:
		return ErrNodeNotInGame
	default:
		return ErrInternal
	}
}

func Syntax(rule, format string, args ...any) *Error {
	return &Error{Kind: KindSyntax, Rule: rule, Msg: fmt.Sprintf(format, args...), Index: -1}
}

func SyntaxAt(rule string, char rune, index int, format string, args ...any) *Error {
	return &Error{Kind: KindSyntax, Rule: rule, Msg: fmt.Sprintf(format, args...), Char: char, Index: index}
}

func Game(rule, format string, args ...any) *Error {
	return &Error{Kind: KindGame, Rule: rule, Msg: fmt.Sprintf(format, args...), Index: -1}
}

func NodeDomain(format string, args ...any) *Error {
	return &Error{Kind: KindNodeDomain, Rule: "node-domain", Msg: fmt.Sprintf(format, args...), Index: -1}
}

func Internal(rule, format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Rule: rule, Msg: fmt.Sprintf(format, args...), Index: -1}
}

// KindOf reports the kind of a pipeline error anywhere in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// RuleOf returns the rule identifier of a pipeline error, or "".
func RuleOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Rule
	}
	return ""
}
