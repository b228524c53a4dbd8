// Package mehen implements the rules of the spiral race game Mehen.
//
// A Game is not safe for concurrent use. Hosts that share one game between
// goroutines must guard every call with a single lock per game.
package mehen

const (
	PiecesPerPlayer = 6

	// StartPosition is off the board, FinishPosition is the snake's head.
	StartPosition  = 0
	FinishPosition = 36

	DiceSides = 6
)

// Game - the authoritative state of one Mehen game.
type Game struct {
	source Source

	currentPlayer Player
	diceValue     int
	gameOver      bool
	winner        Player

	light [PiecesPerPlayer]int
	dark  [PiecesPerPlayer]int
}

type Option func(*Game)

// WithSource - sets the randomness used for dice rolls.
func WithSource(source Source) Option {
	return func(g *Game) {
		if source != nil {
			g.source = source
		}
	}
}

// New - creates a fresh game: every piece at the start, Light to roll.
func New(opts ...Option) *Game {
	game := &Game{}
	for _, opt := range opts {
		opt(game)
	}

	if game.source == nil {
		game.source = defaultSource()
	}

	return game
}

// Reset - replaces the whole state with a fresh game. The dice source is kept.
func (that *Game) Reset() {
	*that = Game{source: that.source}
}

func (that *Game) CurrentPlayer() Player {
	return that.currentPlayer
}

// DiceValue - the pending roll, 0 when the current player must roll.
func (that *Game) DiceValue() int {
	return that.diceValue
}

func (that *Game) GameOver() bool {
	return that.gameOver
}

// Winner - reports the winning side once the game is over.
func (that *Game) Winner() (Player, bool) {
	if !that.gameOver {
		return Light, false
	}
	return that.winner, true
}

func (that *Game) pieces(player Player) *[PiecesPerPlayer]int {
	if player == Dark {
		return &that.dark
	}
	return &that.light
}

func (that *Game) switchPlayer() {
	that.currentPlayer = that.currentPlayer.Opponent()
}
