// Package reader turns SGF text into a validated game collection.
package reader

import (
	"sgf_engine/internal/domain/sgf"
	"sgf_engine/internal/sgf/lexer"
	"sgf_engine/internal/sgf/parser"
	"sgf_engine/internal/sgf/validator"
)

// Read tokenizes, parses and validates text, stopping at the first error.
func Read(text string) (*sgf.GameCollection, error) {
	tokens, err := lexer.Tokenize(text)
	if err != nil {
		return nil, err
	}

	collection, err := parser.Parse(tokens)
	if err != nil {
		return nil, err
	}

	return validator.Validate(collection)
}
