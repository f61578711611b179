// Package lexer turns SGF text into a flat list of tokens.
//
// See https://www.red-bean.com/sgf/sgf4.html
package lexer

import (
	"strings"
	"unicode"

	errs "sgf_engine/internal/errors"
)

const (
	RuleInvalidCharacter = "invalid-character"
	RuleUnexpectedEnd    = "unexpected-end"
)

type state int

const (
	stateDefault state = iota
	stateKey
	stateValue
)

// Tokenize reads the whole input and fails on the first lexical violation.
// Whitespace is discarded outside property values and kept inside them.
// Error indexes count characters (runes), not bytes.
func Tokenize(input string) ([]Token, error) {
	var (
		tokens   []Token
		buffer   strings.Builder
		current  = stateDefault
		escaping bool
	)

	emit := func(kind Kind, text string) {
		tokens = append(tokens, Token{Kind: kind, Text: text})
	}
	invalid := func(char rune, index int) error {
		return errs.SyntaxAt(RuleInvalidCharacter, char, index, "invalid character %q at index %d", char, index)
	}

	index := -1
	for _, char := range input {
		index++
		switch current {
		case stateDefault:
			switch {
			case char == '(' || char == ')' || char == ';':
				emit(Separator, string(char))
			case char == '[':
				emit(Separator, LeftBracket)
				buffer.Reset()
				current = stateValue
			case char >= 'A' && char <= 'Z':
				buffer.Reset()
				buffer.WriteRune(char)
				current = stateKey
			case unicode.IsSpace(char):
			default:
				return nil, invalid(char, index)
			}

		case stateKey:
			switch {
			case char >= 'A' && char <= 'Z':
				buffer.WriteRune(char)
			case char == '[':
				emit(Identifier, buffer.String())
				emit(Separator, LeftBracket)
				buffer.Reset()
				current = stateValue
			case unicode.IsSpace(char):
			default:
				return nil, invalid(char, index)
			}

		case stateValue:
			// a backslash toggles escaping; only a second backslash or an
			// escaped bracket clears it
			switch {
			case char == '\\':
				if escaping {
					buffer.WriteRune(char)
				}
				escaping = !escaping
			case char == ']' && escaping:
				buffer.WriteRune(char)
				escaping = false
			case char == ']':
				emit(Literal, buffer.String())
				emit(Separator, RightBracket)
				buffer.Reset()
				current = stateDefault
			default:
				buffer.WriteRune(char)
			}
		}
	}

	if current != stateDefault {
		return nil, errs.SyntaxAt(RuleUnexpectedEnd, 0, index+1, "unexpected end of input inside a property %s", stateName(current))
	}
	return tokens, nil
}

func stateName(s state) string {
	if s == stateKey {
		return "key"
	}
	return "value"
}
