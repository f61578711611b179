// Package interpreter replays a game tree and computes the board position
// of every node, following https://www.red-bean.com/sgf/ff5/m_vs_ax.htm
package interpreter

import (
	"strconv"

	"sgf_engine/internal/domain/sgf"
	errs "sgf_engine/internal/errors"
	"sgf_engine/internal/sgf/validator"
)

const RuleMoveNumberLink = "move-number-link"

// Interpreter holds the goban of every node of one game. It is not safe
// for concurrent construction, but a built Interpreter is read-only.
type Interpreter struct {
	game   *sgf.Game
	gobans []*Goban
}

// New replays the whole game once, parents before children.
func New(game *sgf.Game) (*Interpreter, error) {
	if game == nil {
		return nil, errs.Internal("nil-game", "no game to interpret")
	}

	size, err := validator.BoardSize(game.Root())
	if err != nil {
		return nil, err
	}

	it := &Interpreter{game: game, gobans: make([]*Goban, game.Len())}

	stack := []*sgf.GameNode{game.Root()}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		goban, err := it.load(node, size)
		if err != nil {
			return nil, err
		}
		it.gobans[node.ID()] = goban

		children := node.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	return it, nil
}

func (it *Interpreter) Game() *sgf.Game { return it.game }

// GobanFor returns the position reached at node.
func (it *Interpreter) GobanFor(node *sgf.GameNode) (*Goban, error) {
	if !it.game.Contains(node) {
		return nil, errs.NodeDomain("node can't be found in this game")
	}
	return it.gobans[node.ID()], nil
}

func (it *Interpreter) load(node *sgf.GameNode, size int) (*Goban, error) {
	var b *board
	if parent := node.Parent(); parent != nil {
		b = it.gobans[parent.ID()].thaw(node)
	} else {
		b = emptyBoard(node, size)
	}

	var err error
	switch {
	case node.IsSetupNode():
		err = it.loadSetup(b)
	case node.IsMoveNode():
		err = it.loadMove(b)
	default:
		b.clearMoveNumber()
	}
	if err != nil {
		return nil, err
	}

	return b.freeze(), nil
}

// loadSetup clears AE points before placing AB then AW stones.
func (it *Interpreter) loadSetup(b *board) error {
	for _, step := range []struct {
		key   sgf.StandardKey
		state State
	}{
		{sgf.AddEmpty, Empty},
		{sgf.AddBlack, Black},
		{sgf.AddWhite, White},
	} {
		points, err := boardPoints(b, b.node.Values(step.key))
		if err != nil {
			return err
		}
		for _, p := range points {
			b.set(p, step.state)
		}
	}

	b.clearMoveNumber()
	return nil
}

func (it *Interpreter) loadMove(b *board) error {
	color := Black
	values := b.node.Values(sgf.BlackMove)
	if !b.node.Has(sgf.BlackMove) {
		color = White
		values = b.node.Values(sgf.WhiteMove)
	}

	points, err := boardPoints(b, values)
	if err != nil {
		return err
	}

	// an empty value is a pass and leaves the board untouched. A range
	// fills every point; captures are resolved around its first point.
	for _, p := range points {
		b.set(p, color)
	}
	if len(points) > 0 {
		capture(b, points[0])
	}

	return it.numberMove(b)
}

// capture removes every opponent group left without liberties by the stone
// at played, then the played group itself when it has none left.
func capture(b *board, played sgf.Point) {
	opponent := b.state(played).Opponent()

	var groups []*group
	for _, n := range played.Neighbors() {
		if !n.Within(b.size) || b.state(n) != opponent {
			continue
		}
		known := false
		for _, g := range groups {
			if g.contains(n) {
				known = true
				break
			}
		}
		if !known {
			groups = append(groups, expandGroup(b, n))
		}
	}

	for _, g := range groups {
		if g.isDead(b) {
			g.removeFrom(b)
		}
	}

	if own := expandGroup(b, played); own.isDead(b) {
		own.removeFrom(b)
	}
}

// numberMove takes MN when present, else the previous move number plus one.
func (it *Interpreter) numberMove(b *board) error {
	if property, ok := b.node.Property(sgf.MoveNumber); ok {
		n, err := strconv.Atoi(property.First())
		if err != nil || n < 0 {
			return errs.Game(validator.RuleMoveNumberInvalid, "invalid MN property value %q", property.First())
		}
		b.setMoveNumber(n)
		return nil
	}

	previous := b.node.PreviousMoveNode()
	if previous == nil {
		b.setMoveNumber(1)
		return nil
	}

	goban := it.gobans[previous.ID()]
	if goban == nil {
		return errs.Internal(RuleMoveNumberLink, "move number computation error: node %d not loaded", previous.ID())
	}
	n, ok := goban.MoveNumber()
	if !ok {
		return errs.Internal(RuleMoveNumberLink, "move number computation error: node %d has no move number", previous.ID())
	}
	b.setMoveNumber(n + 1)
	return nil
}

func boardPoints(b *board, values []string) ([]sgf.Point, error) {
	points, err := sgf.ExpandAll(values)
	if err != nil {
		return nil, errs.Game(validator.RuleMalformedPoint, "%v", err)
	}
	for _, p := range points {
		if !p.Within(b.size) {
			return nil, errs.Game(validator.RuleOutOfBounds, "coordinate %s is out of bounds for size %d", p, b.size)
		}
	}
	return points, nil
}

// playedPoint returns the point of the node's B or W move, if any.
func playedPoint(node *sgf.GameNode) (sgf.Point, bool) {
	property, ok := node.Property(sgf.BlackMove)
	if !ok {
		property, ok = node.Property(sgf.WhiteMove)
	}
	if !ok {
		return sgf.Point{}, false
	}
	points, err := sgf.ExpandAll(property.Values)
	if err != nil || len(points) == 0 {
		return sgf.Point{}, false
	}
	return points[0], true
}
