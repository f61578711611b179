// Package validator enforces the SGF and Go rules a grammar alone cannot
// express. It never mutates the collection it checks.
package validator

import (
	"strconv"

	"sgf_engine/internal/domain/sgf"
	errs "sgf_engine/internal/errors"
)

const MaxBoardSize = 52

const (
	RuleSizeMissing       = "size-missing"
	RuleSizeEmpty         = "size-empty"
	RuleSizeMultiple      = "size-multiple"
	RuleSizeInvalid       = "size-invalid"
	RuleGameModeMissing   = "game-mode-missing"
	RuleGameModeEmpty     = "game-mode-empty"
	RuleGameModeMultiple  = "game-mode-multiple"
	RuleGameModeInvalid   = "game-mode-invalid"
	RuleGameModeNotGo     = "game-mode-not-go"
	RuleGameInfoRepeated  = "game-info-repeated"
	RuleRootOutsideRoot   = "root-outside-root"
	RuleSetupWithMove     = "setup-with-move"
	RuleMalformedPoint    = "malformed-point"
	RuleOutOfBounds       = "out-of-bounds"
	RuleDuplicateSetup    = "duplicate-setup-point"
	RuleBlackAndWhite     = "black-and-white-move"
	RuleMultipleMoves     = "multiple-move-values"
	RuleKoWithoutMove     = "ko-without-move"
	RulePositionAnnotated = "multiple-position-annotations"
	RuleArrowMalformed    = "arrow-malformed"
	RuleArrowOnePoint     = "arrow-one-point"
	RuleArrowDuplicate    = "arrow-duplicate"
	RuleMarkupMalformed   = "markup-malformed"
	RuleDuplicateMarkup   = "duplicate-markup-point"
	RuleMoveNumberInvalid = "move-number-invalid"
)

var (
	pointKeys    = []sgf.StandardKey{sgf.AddBlack, sgf.AddWhite, sgf.AddEmpty, sgf.BlackMove, sgf.WhiteMove}
	setupKeys    = []sgf.StandardKey{sgf.AddBlack, sgf.AddWhite, sgf.AddEmpty}
	positionKeys = []sgf.StandardKey{sgf.EvenPosition, sgf.GoodForBlack, sgf.GoodForWhite, sgf.UnclearPosition}
	markupKeys   = []sgf.StandardKey{sgf.Label, sgf.MarkX, sgf.Selected, sgf.Square, sgf.Triangle}
)

// nodeRule checks a single node of a variation of a board of the given size.
type nodeRule func(node *sgf.GameNode, size int) error

var nodeRules = []nodeRule{
	checkRootProperties,
	checkSetupMoveMix,
	checkPointGrammar,
	checkBounds,
	checkSetupPoints,
	checkMoveColors,
	checkMoveValues,
	checkKo,
	checkPositionAnnotations,
	checkArrows,
	checkMarkup,
	checkMoveNumber,
}

// Validate checks every variation of every game and returns the collection
// unchanged, or the first violation found.
func Validate(collection *sgf.GameCollection) (*sgf.GameCollection, error) {
	if collection == nil {
		return nil, errs.Internal("nil-collection", "no collection to validate")
	}

	for _, game := range collection.Games {
		for _, variation := range Variations(game) {
			if err := ValidateVariation(variation); err != nil {
				return nil, err
			}
		}
	}

	return collection, nil
}

// Variations returns every root-to-leaf path of the game, in document
// order of the leaves.
func Variations(game *sgf.Game) [][]*sgf.GameNode {
	type frame struct {
		node *sgf.GameNode
		path []*sgf.GameNode
	}

	var variations [][]*sgf.GameNode
	stack := []frame{{node: game.Root(), path: []*sgf.GameNode{game.Root()}}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children := top.node.Children()
		if len(children) == 0 {
			variations = append(variations, top.path)
			continue
		}

		for i := len(children) - 1; i >= 0; i-- {
			path := make([]*sgf.GameNode, len(top.path), len(top.path)+1)
			copy(path, top.path)
			stack = append(stack, frame{node: children[i], path: append(path, children[i])})
		}
	}

	return variations
}

// ValidateVariation applies the root checks, then the per-variation checks,
// then the per-node checks in order.
func ValidateVariation(variation []*sgf.GameNode) error {
	if len(variation) == 0 {
		return nil
	}

	size, err := BoardSize(variation[0])
	if err != nil {
		return err
	}
	if err := checkGameMode(variation[0]); err != nil {
		return err
	}
	if err := checkGameInfo(variation); err != nil {
		return err
	}

	for _, node := range variation {
		for _, rule := range nodeRules {
			if err := rule(node, size); err != nil {
				return err
			}
		}
	}

	return nil
}

// BoardSize reads SZ from the root node.
func BoardSize(root *sgf.GameNode) (int, error) {
	property, ok := root.Property(sgf.Size)
	switch {
	case !ok:
		return 0, errs.Game(RuleSizeMissing, "no size property found at root node")
	case len(property.Values) == 0:
		return 0, errs.Game(RuleSizeEmpty, "size property is empty")
	case len(property.Values) > 1:
		return 0, errs.Game(RuleSizeMultiple, "multiple size property values")
	}

	size, err := strconv.Atoi(property.Values[0])
	if err != nil || size < 1 || size > MaxBoardSize {
		return 0, errs.Game(RuleSizeInvalid, "invalid size property value %q", property.Values[0])
	}
	return size, nil
}

func checkGameMode(root *sgf.GameNode) error {
	property, ok := root.Property(sgf.GameMode)
	switch {
	case !ok:
		return errs.Game(RuleGameModeMissing, "no game mode property found at root node")
	case len(property.Values) == 0:
		return errs.Game(RuleGameModeEmpty, "game mode property is empty")
	case len(property.Values) > 1:
		return errs.Game(RuleGameModeMultiple, "multiple game mode property values")
	}

	mode, err := strconv.Atoi(property.Values[0])
	if err != nil {
		return errs.Game(RuleGameModeInvalid, "invalid game mode property value %q", property.Values[0])
	}
	if mode != 1 {
		return errs.Game(RuleGameModeNotGo, "game mode property should be 1, got %d", mode)
	}
	return nil
}

func checkGameInfo(variation []*sgf.GameNode) error {
	count := 0
	for _, node := range variation {
		if node.HasClass(sgf.ClassGameInfo) {
			count++
		}
	}
	if count > 1 {
		return errs.Syntax(RuleGameInfoRepeated, "game info properties appear in %d nodes of the same variation", count)
	}
	return nil
}

func checkRootProperties(node *sgf.GameNode, _ int) error {
	if !node.IsRoot() && node.HasClass(sgf.ClassRoot) {
		return errs.Syntax(RuleRootOutsideRoot, "root node properties appear outside of a game root node")
	}
	return nil
}

func checkSetupMoveMix(node *sgf.GameNode, _ int) error {
	if node.HasClass(sgf.ClassSetup) && node.HasClass(sgf.ClassMove) {
		return errs.Syntax(RuleSetupWithMove, "setup property alongside move property in the same node")
	}
	return nil
}

func checkPointGrammar(node *sgf.GameNode, _ int) error {
	for _, key := range pointKeys {
		for _, v := range node.Values(key) {
			if !sgf.IsPointValue(v) {
				return errs.Game(RuleMalformedPoint, "%s contains a malformed point %q", key, v)
			}
		}
	}
	return nil
}

func checkBounds(node *sgf.GameNode, size int) error {
	for _, key := range pointKeys {
		points, err := sgf.ExpandAll(node.Values(key))
		if err != nil {
			return errs.Game(RuleMalformedPoint, "%s: %v", key, err)
		}
		for _, p := range points {
			if !p.Within(size) {
				return errs.Game(RuleOutOfBounds, "%s coordinate %s is out of bounds for size %d", key, p, size)
			}
		}
	}
	return nil
}

func checkSetupPoints(node *sgf.GameNode, _ int) error {
	seen := make(map[sgf.Point]struct{})
	for _, key := range setupKeys {
		points, err := sgf.ExpandAll(node.Values(key))
		if err != nil {
			return errs.Game(RuleMalformedPoint, "%s: %v", key, err)
		}
		for _, p := range points {
			if _, dup := seen[p]; dup {
				return errs.Game(RuleDuplicateSetup, "duplicate coordinate %s in setup node (AB / AE / AW)", p)
			}
			seen[p] = struct{}{}
		}
	}
	return nil
}

func checkMoveColors(node *sgf.GameNode, _ int) error {
	if node.Has(sgf.BlackMove) && node.Has(sgf.WhiteMove) {
		return errs.Game(RuleBlackAndWhite, "B and W moves appear in the same node")
	}
	return nil
}

func checkMoveValues(node *sgf.GameNode, _ int) error {
	if len(node.Values(sgf.BlackMove))+len(node.Values(sgf.WhiteMove)) > 1 {
		return errs.Game(RuleMultipleMoves, "multiple values in move node property")
	}
	return nil
}

func checkKo(node *sgf.GameNode, _ int) error {
	if node.Has(sgf.Ko) && !node.IsMoveNode() {
		return errs.Game(RuleKoWithoutMove, "KO appears in a node without B or W")
	}
	return nil
}

func checkPositionAnnotations(node *sgf.GameNode, _ int) error {
	count := 0
	for _, key := range positionKeys {
		if node.Has(key) {
			count++
		}
	}
	if count > 1 {
		return errs.Game(RulePositionAnnotated, "multiple DM / GB / GW / UC properties appear in the same node")
	}
	return nil
}

func checkArrows(node *sgf.GameNode, _ int) error {
	values := node.Values(sgf.Arrow)
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if len(v) != 5 || !sgf.IsPointValue(v) {
			return errs.Game(RuleArrowMalformed, "AR value %q is malformed", v)
		}
		if v[:2] == v[3:] {
			return errs.Game(RuleArrowOnePoint, "AR has a one-point value %q", v)
		}
		// raw comparison: reversed arrows are distinct values
		if _, dup := seen[v]; dup {
			return errs.Game(RuleArrowDuplicate, "duplicate AR value %q", v)
		}
		seen[v] = struct{}{}
	}
	return nil
}

func checkMarkup(node *sgf.GameNode, _ int) error {
	seen := make(map[sgf.Point]struct{})
	for _, key := range markupKeys {
		for _, v := range node.Values(key) {
			points, err := MarkupPoints(key, v)
			if err != nil {
				return errs.Game(RuleMarkupMalformed, "%s: %v", key, err)
			}
			for _, p := range points {
				if _, dup := seen[p]; dup {
					return errs.Game(RuleDuplicateMarkup, "duplicate coordinate %s inside markup node (LB / MA / SL / SQ / TR)", p)
				}
				seen[p] = struct{}{}
			}
		}
	}
	return nil
}

// MarkupPoints resolves one markup value. Labels are "point:text", only the
// point part is a coordinate.
func MarkupPoints(key sgf.StandardKey, v string) ([]sgf.Point, error) {
	if key == sgf.Label && len(v) > 2 && v[2] == ':' {
		v = v[:2]
	}
	return sgf.ExpandPoints(v)
}

func checkMoveNumber(node *sgf.GameNode, _ int) error {
	property, ok := node.Property(sgf.MoveNumber)
	if !ok {
		return nil
	}
	if len(property.Values) != 1 {
		return errs.Game(RuleMoveNumberInvalid, "MN property must carry exactly one value")
	}
	n, err := strconv.Atoi(property.Values[0])
	if err != nil || n < 0 {
		return errs.Game(RuleMoveNumberInvalid, "invalid MN property value %q", property.Values[0])
	}
	return nil
}
