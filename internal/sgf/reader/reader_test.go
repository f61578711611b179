package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgf_engine/internal/domain/sgf"
	errs "sgf_engine/internal/errors"
	"sgf_engine/internal/sgf/parser"
)

const gameRecord = `(;FF[4]GM[1]SZ[19]CA[UTF-8]AP[CGoban:3]
PB[Black player]PW[White player]KM[6.5]RE[W+R]
C[A short game \] with an escaped bracket]
;B[pd];W[dp];B[pp];W[dd]
(;B[fq]C[main line];W[cn])
(;B[qc]C[variation (with parentheses)];W[lr]))`

func TestRead(t *testing.T) {
	collection, err := Read(gameRecord)
	require.NoError(t, err)
	require.Len(t, collection.Games, 1)

	game := collection.Games[0]
	root := game.Root()
	assert.Equal(t, []string{"A short game ] with an escaped bracket"}, root.Values(sgf.Comment))
	assert.Equal(t, []string{"Black player"}, root.Values(sgf.PlayerBlack))

	fourth, err := game.NodeAt([]int{0, 0, 0, 0})
	require.NoError(t, err)
	require.Equal(t, 2, fourth.ChildCount())
	assert.Equal(t, []string{"variation (with parentheses)"}, fourth.Children()[1].Values(sgf.Comment))
}

func TestReadEmpty(t *testing.T) {
	collection, err := Read("")
	require.NoError(t, err)
	assert.Empty(t, collection.Games)
}

func TestReadStopsAtFirstStage(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind errs.Kind
		rule string
	}{
		{name: "lexical", text: "(;GM[1]SZ[9];b[aa])", kind: errs.KindSyntax, rule: "invalid-character"},
		{name: "duplicate key", text: "(;GM[1]SZ[9]AB[aa]AB[bb])", kind: errs.KindSyntax, rule: parser.RuleDuplicateProperty},
		{name: "semantic", text: "(;GM[1]SZ[9];B[zz])", kind: errs.KindGame, rule: "out-of-bounds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collection, err := Read(tt.text)
			require.Error(t, err)
			assert.Nil(t, collection)

			kind, ok := errs.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.rule, errs.RuleOf(err))
		})
	}
}
