package sgf

// GameCollection is the content of an SGF document: one or more games.
type GameCollection struct {
	Games []*Game
}

// Game returns the game at index i.
func (c *GameCollection) Game(i int) (*Game, bool) {
	if c == nil || i < 0 || i >= len(c.Games) {
		return nil, false
	}
	return c.Games[i], true
}
