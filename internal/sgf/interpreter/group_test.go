package interpreter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sgf_engine/internal/domain/sgf"
)

func boardWith(size int, black, white []sgf.Point) *board {
	b := emptyBoard(nil, size)
	for _, p := range black {
		b.set(p, Black)
	}
	for _, p := range white {
		b.set(p, White)
	}
	return b
}

func pt(column, row int) sgf.Point { return sgf.Point{Column: column, Row: row} }

func TestExpandGroup(t *testing.T) {
	b := boardWith(5,
		[]sgf.Point{pt(0, 0), pt(1, 0), pt(1, 1), pt(3, 3)},
		[]sgf.Point{pt(2, 0)},
	)

	g := expandGroup(b, pt(0, 0))
	assert.Equal(t, Black, g.color)
	assert.Equal(t, 3, g.count())
	assert.True(t, g.contains(pt(1, 1)))
	assert.False(t, g.contains(pt(3, 3)))
	assert.False(t, g.contains(pt(2, 0)))
}

func TestExpandGroupOfEmpty(t *testing.T) {
	b := boardWith(3, []sgf.Point{pt(1, 1)}, nil)
	g := expandGroup(b, pt(0, 0))
	assert.Equal(t, 8, g.count())
}

func TestGroupIsDead(t *testing.T) {
	tests := []struct {
		name  string
		black []sgf.Point
		white []sgf.Point
		start sgf.Point
		dead  bool
	}{
		{
			name:  "lonely stone",
			black: []sgf.Point{pt(2, 2)},
			start: pt(2, 2),
		},
		{
			name:  "corner stone surrounded",
			black: []sgf.Point{pt(0, 0)},
			white: []sgf.Point{pt(1, 0), pt(0, 1)},
			start: pt(0, 0),
			dead:  true,
		},
		{
			name:  "edge group with one liberty",
			black: []sgf.Point{pt(0, 0), pt(1, 0)},
			white: []sgf.Point{pt(0, 1), pt(1, 1)},
			start: pt(1, 0),
		},
		{
			name:  "edge group surrounded",
			black: []sgf.Point{pt(0, 0), pt(1, 0)},
			white: []sgf.Point{pt(0, 1), pt(1, 1), pt(2, 0)},
			start: pt(0, 0),
			dead:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardWith(5, tt.black, tt.white)
			assert.Equal(t, tt.dead, expandGroup(b, tt.start).isDead(b))
		})
	}
}

func TestGroupRemoveFrom(t *testing.T) {
	b := boardWith(5, []sgf.Point{pt(0, 0), pt(1, 0)}, []sgf.Point{pt(4, 4)})

	expandGroup(b, pt(0, 0)).removeFrom(b)
	assert.Equal(t, Empty, b.state(pt(0, 0)))
	assert.Equal(t, Empty, b.state(pt(1, 0)))
	assert.Equal(t, 2, b.capturedBlack)

	expandGroup(b, pt(4, 4)).removeFrom(b)
	assert.Equal(t, 1, b.capturedWhite)
	assert.Equal(t, 2, b.capturedBlack)
}

func TestBoardFreezeIsolated(t *testing.T) {
	b := boardWith(3, []sgf.Point{pt(1, 1)}, nil)
	b.setMoveNumber(4)
	goban := b.freeze()

	child := goban.thaw(nil)
	child.set(pt(1, 1), Empty)
	child.clearMoveNumber()

	i, ok := goban.At(1, 1)
	assert.True(t, ok)
	assert.Equal(t, Black, i.State)
	n, ok := goban.MoveNumber()
	assert.True(t, ok)
	assert.Equal(t, 4, n)

	_, ok = goban.At(3, 0)
	assert.False(t, ok)
}

func TestStateOpponent(t *testing.T) {
	assert.Equal(t, White, Black.Opponent())
	assert.Equal(t, Black, White.Opponent())
	assert.Equal(t, Empty, Empty.Opponent())
	assert.Equal(t, "black", Black.String())
}
