package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgf_engine/internal/domain/sgf"
	errs "sgf_engine/internal/errors"
	"sgf_engine/internal/sgf/lexer"
	"sgf_engine/internal/sgf/parser"
)

func collectionOf(t *testing.T, text string) *sgf.GameCollection {
	t.Helper()
	tokens, err := lexer.Tokenize(text)
	require.NoError(t, err)
	collection, err := parser.Parse(tokens)
	require.NoError(t, err)
	return collection
}

func TestValidateAcceptsValidGames(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "root only", text: "(;GM[1]SZ[19])"},
		{name: "moves and pass", text: "(;GM[1]SZ[9]PB[Alice]PW[Bob];B[aa];W[];B[ii])"},
		{name: "setup ranges", text: "(;GM[1]SZ[9]AB[aa:cc]AW[dd][ee]AE[ff])"},
		{name: "game info away from root", text: "(;GM[1]SZ[9];B[aa]PB[Alice];W[bb])"},
		{name: "game info in sibling variations", text: "(;GM[1]SZ[9](;B[aa]RE[B+R])(;B[bb]RE[W+R]))"},
		{name: "ko with move", text: "(;GM[1]SZ[9];B[aa]KO[])"},
		{name: "single position annotation", text: "(;GM[1]SZ[9];B[aa]GB[1])"},
		{name: "arrows", text: "(;GM[1]SZ[9]AR[aa:bb][bb:aa][cc:dd])"},
		{name: "markup", text: "(;GM[1]SZ[9]LB[aa:one][bb:two]MA[cc]SQ[dd:ee]TR[ff]SL[gg])"},
		{name: "move number", text: "(;GM[1]SZ[9];B[aa]MN[0])"},
		{name: "custom keys", text: "(;GM[1]SZ[9]XX[whatever];B[aa]KGSDE[zz])"},
		{name: "multiple games", text: "(;GM[1]SZ[9])(;GM[1]SZ[13];W[mm])"},
		{name: "largest board", text: "(;GM[1]SZ[52];B[zz])"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collection := collectionOf(t, tt.text)
			got, err := Validate(collection)
			require.NoError(t, err)
			assert.Same(t, collection, got)

			again, err := Validate(got)
			require.NoError(t, err)
			assert.Same(t, collection, again)
		})
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		text string
		rule string
		kind errs.Kind
	}{
		{name: "no size", text: "(;GM[1])", rule: RuleSizeMissing, kind: errs.KindGame},
		{name: "empty size", text: "(;GM[1]SZ[])", rule: RuleSizeInvalid, kind: errs.KindGame},
		{name: "multiple sizes", text: "(;GM[1]SZ[9][19])", rule: RuleSizeMultiple, kind: errs.KindGame},
		{name: "non numeric size", text: "(;GM[1]SZ[big])", rule: RuleSizeInvalid, kind: errs.KindGame},
		{name: "rectangular size", text: "(;GM[1]SZ[19:13])", rule: RuleSizeInvalid, kind: errs.KindGame},
		{name: "zero size", text: "(;GM[1]SZ[0])", rule: RuleSizeInvalid, kind: errs.KindGame},
		{name: "oversized board", text: "(;GM[1]SZ[53])", rule: RuleSizeInvalid, kind: errs.KindGame},
		{name: "uppercase coordinate", text: "(;GM[1]SZ[52];B[ZZ])", rule: RuleMalformedPoint, kind: errs.KindGame},
		{name: "no game mode", text: "(;SZ[9])", rule: RuleGameModeMissing, kind: errs.KindGame},
		{name: "multiple game modes", text: "(;GM[1][1]SZ[9])", rule: RuleGameModeMultiple, kind: errs.KindGame},
		{name: "non numeric game mode", text: "(;GM[go]SZ[9])", rule: RuleGameModeInvalid, kind: errs.KindGame},
		{name: "chess", text: "(;GM[3]SZ[8])", rule: RuleGameModeNotGo, kind: errs.KindGame},
		{name: "size checked before game mode", text: "(;GM[3])", rule: RuleSizeMissing, kind: errs.KindGame},
		{name: "game info twice", text: "(;GM[1]SZ[9]PB[Alice];B[aa];W[bb]PW[Bob])", rule: RuleGameInfoRepeated, kind: errs.KindSyntax},
		{name: "root property in child", text: "(;GM[1]SZ[9];B[aa]SZ[9])", rule: RuleRootOutsideRoot, kind: errs.KindSyntax},
		{name: "setup with move", text: "(;GM[1]SZ[9];AB[aa]W[bb])", rule: RuleSetupWithMove, kind: errs.KindSyntax},
		{name: "malformed move", text: "(;GM[1]SZ[9];B[a])", rule: RuleMalformedPoint, kind: errs.KindGame},
		{name: "malformed range", text: "(;GM[1]SZ[9]AB[aa-bb])", rule: RuleMalformedPoint, kind: errs.KindGame},
		{name: "old style pass", text: "(;GM[1]SZ[19];B[tt])", rule: RuleOutOfBounds, kind: errs.KindGame},
		{name: "move at size", text: "(;GM[1]SZ[9];W[ja])", rule: RuleOutOfBounds, kind: errs.KindGame},
		{name: "range out of bounds", text: "(;GM[1]SZ[9]AW[aa:jj])", rule: RuleOutOfBounds, kind: errs.KindGame},
		{name: "duplicate setup point", text: "(;GM[1]SZ[9]AB[aa:bb]AW[bb])", rule: RuleDuplicateSetup, kind: errs.KindGame},
		{name: "duplicate point in one setup", text: "(;GM[1]SZ[9]AE[cc][cc])", rule: RuleDuplicateSetup, kind: errs.KindGame},
		{name: "black and white", text: "(;GM[1]SZ[9];B[aa]W[bb])", rule: RuleBlackAndWhite, kind: errs.KindGame},
		{name: "two move values", text: "(;GM[1]SZ[9];B[aa][bb])", rule: RuleMultipleMoves, kind: errs.KindGame},
		{name: "ko without move", text: "(;GM[1]SZ[9];KO[])", rule: RuleKoWithoutMove, kind: errs.KindGame},
		{name: "two position annotations", text: "(;GM[1]SZ[9];B[aa]DM[1]UC[1])", rule: RulePositionAnnotated, kind: errs.KindGame},
		{name: "arrow single point value", text: "(;GM[1]SZ[9]AR[aa])", rule: RuleArrowMalformed, kind: errs.KindGame},
		{name: "arrow garbage", text: "(;GM[1]SZ[9]AR[aa-bb])", rule: RuleArrowMalformed, kind: errs.KindGame},
		{name: "one point arrow", text: "(;GM[1]SZ[9]AR[cc:cc])", rule: RuleArrowOnePoint, kind: errs.KindGame},
		{name: "duplicate arrow", text: "(;GM[1]SZ[9]AR[aa:bb][aa:bb])", rule: RuleArrowDuplicate, kind: errs.KindGame},
		{name: "malformed markup", text: "(;GM[1]SZ[9]TR[a])", rule: RuleMarkupMalformed, kind: errs.KindGame},
		{name: "duplicate markup across keys", text: "(;GM[1]SZ[9]LB[aa:x]TR[aa])", rule: RuleDuplicateMarkup, kind: errs.KindGame},
		{name: "duplicate markup in range", text: "(;GM[1]SZ[9]SQ[aa:bb]MA[bb])", rule: RuleDuplicateMarkup, kind: errs.KindGame},
		{name: "move number list", text: "(;GM[1]SZ[9];B[aa]MN[1][2])", rule: RuleMoveNumberInvalid, kind: errs.KindGame},
		{name: "negative move number", text: "(;GM[1]SZ[9];B[aa]MN[-1])", rule: RuleMoveNumberInvalid, kind: errs.KindGame},
		{name: "text move number", text: "(;GM[1]SZ[9];B[aa]MN[ten])", rule: RuleMoveNumberInvalid, kind: errs.KindGame},
		{name: "second game invalid", text: "(;GM[1]SZ[9])(;GM[1]SZ[9];B[zz])", rule: RuleOutOfBounds, kind: errs.KindGame},
		{name: "only one variation invalid", text: "(;GM[1]SZ[9](;B[aa])(;B[aa];W[bb]KO[];B[cc]AB[dd]))", rule: RuleSetupWithMove, kind: errs.KindSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(collectionOf(t, tt.text))
			require.Error(t, err)
			assert.Nil(t, got)
			assert.Equal(t, tt.rule, errs.RuleOf(err))

			kind, ok := errs.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestValidateRuleOrder(t *testing.T) {
	// out-of-bounds and black-and-white both apply; bounds come first
	_, err := Validate(collectionOf(t, "(;GM[1]SZ[9];B[zz]W[aa])"))
	require.Error(t, err)
	assert.Equal(t, RuleOutOfBounds, errs.RuleOf(err))

	// root properties are checked before the setup/move mix
	_, err = Validate(collectionOf(t, "(;GM[1]SZ[9];AB[aa]B[bb]FF[4])"))
	require.Error(t, err)
	assert.Equal(t, RuleRootOutsideRoot, errs.RuleOf(err))
}

func TestVariations(t *testing.T) {
	game := collectionOf(t, "(;GM[1]SZ[9];B[aa](;W[bb];B[cc])(;W[dd](;B[ee])(;B[ff])))").Games[0]

	var got [][]string
	for _, variation := range Variations(game) {
		var moves []string
		for _, node := range variation[1:] {
			moves = append(moves, node.Properties()[0].First())
		}
		got = append(got, moves)
	}

	assert.Equal(t, [][]string{
		{"aa", "bb", "cc"},
		{"aa", "dd", "ee"},
		{"aa", "dd", "ff"},
	}, got)
}

func TestVariationsSingleNode(t *testing.T) {
	game := collectionOf(t, "(;GM[1]SZ[9])").Games[0]
	variations := Variations(game)
	require.Len(t, variations, 1)
	assert.Equal(t, []*sgf.GameNode{game.Root()}, variations[0])
}

func TestBoardSize(t *testing.T) {
	root := collectionOf(t, "(;GM[1]SZ[13])").Games[0].Root()
	size, err := BoardSize(root)
	require.NoError(t, err)
	assert.Equal(t, 13, size)
}

func TestMarkupPoints(t *testing.T) {
	points, err := MarkupPoints(sgf.Label, "cd:text with : colon")
	require.NoError(t, err)
	assert.Equal(t, []sgf.Point{{Column: 2, Row: 3}}, points)

	points, err = MarkupPoints(sgf.Square, "aa:bb")
	require.NoError(t, err)
	assert.Len(t, points, 4)

	_, err = MarkupPoints(sgf.Triangle, "A1")
	require.Error(t, err)
}

func TestValidateNil(t *testing.T) {
	_, err := Validate(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInternal)
}
