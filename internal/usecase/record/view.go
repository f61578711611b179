package record

import (
	"fmt"
	"strconv"
	"strings"

	"sgf_engine/internal/domain/record"
	"sgf_engine/internal/domain/sgf"
	errs "sgf_engine/internal/errors"
	"sgf_engine/internal/sgf/interpreter"
	"sgf_engine/internal/sgf/validator"
)

// CacheKey names the cached position of one node of a stored record.
func CacheKey(id string, game int, path []int) string {
	parts := make([]string, len(path))
	for i, idx := range path {
		parts[i] = strconv.Itoa(idx)
	}
	return fmt.Sprintf("goban:%s:%d:%s", id, game, strings.Join(parts, "."))
}

// Summarize describes every game of a valid collection.
func Summarize(collection *sgf.GameCollection) *record.Summary {
	summary := &record.Summary{Games: make([]record.GameSummary, 0, len(collection.Games))}
	for _, game := range collection.Games {
		size, _ := validator.BoardSize(game.Root())

		moves := 0
		for _, node := range game.MainLine() {
			if node.IsMoveNode() {
				moves++
			}
		}

		summary.Games = append(summary.Games, record.GameSummary{
			Size:        size,
			Nodes:       game.Len(),
			Variations:  len(validator.Variations(game)),
			Moves:       moves,
			PlayerBlack: gameInfo(game, sgf.PlayerBlack),
			PlayerWhite: gameInfo(game, sgf.PlayerWhite),
			Result:      gameInfo(game, sgf.Result),
		})
	}
	return summary
}

// gameInfo finds key on the first node that carries it; game info may sit
// below the root.
func gameInfo(game *sgf.Game, key sgf.StandardKey) string {
	// the arena holds nodes in document order
	for id := range sgf.NodeID(game.Len()) {
		node, _ := game.Node(id)
		if prop, ok := node.Property(key); ok {
			return prop.First()
		}
	}
	return ""
}

func gobanAt(collection *sgf.GameCollection, game int, path []int) (*record.GobanView, error) {
	g, ok := collection.Game(game)
	if !ok {
		return nil, fmt.Errorf("%w: %d", errs.ErrGameIndex, game)
	}
	node, err := g.NodeAt(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrNodePath, err)
	}
	it, err := interpret(g)
	if err != nil {
		return nil, err
	}
	return gobanView(it, game, node)
}

func gobanView(it *interpreter.Interpreter, game int, node *sgf.GameNode) (*record.GobanView, error) {
	goban, err := it.GobanFor(node)
	if err != nil {
		return nil, err
	}

	path := it.Game().PathOf(node)
	if path == nil {
		path = []int{}
	}

	view := &record.GobanView{
		Game:          game,
		Path:          path,
		Size:          goban.Size(),
		CapturedBlack: goban.CapturedBlackStones(),
		CapturedWhite: goban.CapturedWhiteStones(),
		Children:      node.ChildCount(),
	}
	if comment, ok := node.Property(sgf.Comment); ok {
		view.Comment = comment.First()
	}
	if n, ok := goban.MoveNumber(); ok {
		view.MoveNumber = &n
	}
	if current, ok := goban.CurrentIntersection(); ok {
		stone := toStone(current)
		view.Current = &stone
	}

	stones := goban.Stones()
	view.Stones = make([]record.Stone, 0, len(stones))
	for _, s := range stones {
		view.Stones = append(view.Stones, toStone(s))
	}
	return view, nil
}

func toStone(i interpreter.Intersection) record.Stone {
	return record.Stone{
		Column: i.Column,
		Row:    i.Row,
		Point:  i.Point().String(),
		Color:  i.State.String(),
	}
}
