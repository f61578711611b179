// Package encoder writes game collections back to SGF text.
package encoder

import (
	"strings"

	"sgf_engine/internal/domain/sgf"
)

// leading keys are written first so the header of a root node reads the
// same for every record
var leadingKeys = []sgf.StandardKey{sgf.FileFormat, sgf.GameMode, sgf.Size, sgf.PlayerBlack, sgf.PlayerWhite,
	sgf.Date, sgf.Result, sgf.Komi, sgf.Rules}

// Encode serializes every game of the collection, variations included.
func Encode(collection *sgf.GameCollection) string {
	var builder strings.Builder
	for _, game := range collection.Games {
		EncodeGame(&builder, game)
	}
	return builder.String()
}

func EncodeGame(builder *strings.Builder, game *sgf.Game) {
	builder.WriteString("(")
	encodeSequence(builder, game.Root())
	builder.WriteString(")")
}

// encodeSequence writes node and its single-child descendants, then one
// parenthesized variation per child of the first branching node.
func encodeSequence(builder *strings.Builder, node *sgf.GameNode) {
	for {
		encodeNode(builder, node)
		if node.ChildCount() != 1 {
			break
		}
		node = node.Children()[0]
	}

	for _, child := range node.Children() {
		builder.WriteString("(")
		encodeSequence(builder, child)
		builder.WriteString(")")
	}
}

func encodeNode(builder *strings.Builder, node *sgf.GameNode) {
	builder.WriteString(";")

	properties := node.Properties()
	used := make([]bool, len(properties))
	if node.IsRoot() {
		for _, key := range leadingKeys {
			for i, p := range properties {
				if !used[i] && p.Key.Is(key) {
					used[i] = true
					encodeProperty(builder, p)
				}
			}
		}
	}

	for i, p := range properties {
		if !used[i] {
			encodeProperty(builder, p)
		}
	}
}

func encodeProperty(builder *strings.Builder, p sgf.Property) {
	builder.WriteString(p.Key.String())
	if len(p.Values) == 0 {
		builder.WriteString("[]")
		return
	}
	for _, v := range p.Values {
		builder.WriteString("[")
		builder.WriteString(Escape(v))
		builder.WriteString("]")
	}
}

var escaper = strings.NewReplacer(`\`, `\\`, `]`, `\]`)

// Escape protects the characters that would end or escape a value.
func Escape(v string) string {
	return escaper.Replace(v)
}
