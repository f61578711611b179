// Package parser builds game trees out of lexer tokens.
//
// See https://www.red-bean.com/sgf/sgf4.html
package parser

import (
	"sgf_engine/internal/domain/sgf"
	errs "sgf_engine/internal/errors"
	"sgf_engine/internal/sgf/lexer"
)

const (
	RuleDuplicateProperty = "duplicate-property"
	RuleUnclosedGame      = "unclosed-game"
)

// Parse groups tokens into games. Games without any non-empty node are
// dropped.
func Parse(tokens []lexer.Token) (*sgf.GameCollection, error) {
	collection := &sgf.GameCollection{}

	var gameTokens []lexer.Token
	index := 0
	for index < len(tokens) {
		token := tokens[index]

		// non separators outside a game carry no structure
		if token.Kind != lexer.Separator {
			index++
			continue
		}

		switch token.Text {
		case lexer.LeftParenthesis:
			var closed bool
			gameTokens, closed = extractGameTokens(tokens, index+1)
			if !closed {
				return nil, errs.Syntax(RuleUnclosedGame, "game opened at token %d is never closed", index)
			}
			index += len(gameTokens)

		case lexer.RightParenthesis:
			if len(gameTokens) > 0 {
				game, err := parseGame(gameTokens)
				if err != nil {
					return nil, err
				}
				if game != nil {
					collection.Games = append(collection.Games, game)
				}
				gameTokens = nil
			}
		}

		index++
	}

	return collection, nil
}

// extractGameTokens collects tokens from fromIndex up to the parenthesis
// closing the game, keeping nested variations balanced.
func extractGameTokens(tokens []lexer.Token, fromIndex int) ([]lexer.Token, bool) {
	var result []lexer.Token
	depth := 0
	for _, token := range tokens[fromIndex:] {
		if token.Kind == lexer.Separator {
			switch token.Text {
			case lexer.LeftParenthesis:
				depth++
			case lexer.RightParenthesis:
				if depth == 0 {
					return result, true
				}
				depth--
			}
		}
		result = append(result, token)
	}
	return result, false
}

// parseGame rebuilds the tree with a LIFO stack of parent nodes: '(' saves
// the current parent so the variation resumes from it, ')' restores it.
func parseGame(tokens []lexer.Token) (*sgf.Game, error) {
	builder := sgf.NewBuilder()

	var (
		stack  []*sgf.GameNode
		parent *sgf.GameNode
	)

	index := 0
	for index < len(tokens) {
		token := tokens[index]
		if token.Kind != lexer.Separator {
			index++
			continue
		}

		switch token.Text {
		case lexer.LeftParenthesis:
			if parent != nil {
				stack = append(stack, parent)
			}

		case lexer.RightParenthesis:
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
				stack = stack[:len(stack)-1]
			}

		case lexer.SemiColon:
			nodeTokens := extractNodeTokens(tokens, index+1)
			index += len(nodeTokens)

			properties, err := parseNode(nodeTokens)
			if err != nil {
				return nil, err
			}

			// empty nodes are not linked into the tree
			if len(properties) > 0 {
				node, err := builder.Add(parent, properties)
				if err != nil {
					return nil, errs.Internal("tree-building", "%v", err)
				}
				parent = node
			}
		}

		index++
	}

	return builder.Build(), nil
}

// extractNodeTokens collects tokens from fromIndex up to the next '(', ')'
// or ';'.
func extractNodeTokens(tokens []lexer.Token, fromIndex int) []lexer.Token {
	var result []lexer.Token
	for _, token := range tokens[fromIndex:] {
		if token.Kind == lexer.Separator {
			switch token.Text {
			case lexer.LeftParenthesis, lexer.RightParenthesis, lexer.SemiColon:
				return result
			}
		}
		result = append(result, token)
	}
	return result
}

// parseNode groups identifiers with the literals following them. Literals
// with no preceding identifier are dropped.
func parseNode(tokens []lexer.Token) ([]sgf.Property, error) {
	var (
		properties []sgf.Property
		seen       = make(map[string]struct{})
		key        string
		hasKey     bool
		values     []string
	)

	flush := func() {
		if hasKey {
			properties = append(properties, sgf.Property{Key: sgf.ParseKey(key), Values: values})
		}
	}

	for _, token := range tokens {
		switch token.Kind {
		case lexer.Identifier:
			flush()
			if _, dup := seen[token.Text]; dup {
				return nil, errs.Syntax(RuleDuplicateProperty, "property %s appears multiple times in the same node", token.Text)
			}
			seen[token.Text] = struct{}{}
			key, hasKey = token.Text, true
			values = []string{}

		case lexer.Literal:
			values = append(values, token.Text)
		}
	}
	flush()

	return properties, nil
}
