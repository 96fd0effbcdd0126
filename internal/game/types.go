// internal/game/types.go
//
// Core type definitions for the coin-triangle engine.
// Defines:
//   - Point: a 2D position in board units.
//   - Coin:  a uniquely identified disc with a current position.
//   - Layout: the simultaneous positions of all six coins, a value type.
//   - Board:  the playable rectangle.
//   - Game:   state for a single in-progress or finished session.

package game

import (
	"math"
	"time"
)

// NumCoins is the fixed number of coins on the board. Coin identities are
// always exactly {0..5}; a coin's identity never changes, only its position.
const NumCoins = 6

// MinMoves is the documented minimum number of moves needed to flip the
// default upward triangle into the downward target triangle.
const MinMoves = 3

// Point is a pair of real-valued board coordinates.
// X increases to the right, Y increases downward (screen coordinates).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Coin is a disc-shaped token with a stable identity and a current position.
// Transient UI state (selection highlights and the like) lives in the client,
// never here.
type Coin struct {
	ID  int
	Pos Point
}

// Layout holds all six coins indexed by identity: layout[i].ID == i always.
// It is a value type; operations return new layouts and never mutate in place.
type Layout [NumCoins]Coin

// NewLayout builds a layout from six positions in identity order.
func NewLayout(positions [NumCoins]Point) Layout {
	var l Layout
	for i, p := range positions {
		l[i] = Coin{ID: i, Pos: p}
	}
	return l
}

// With returns a copy of the layout with one coin's position replaced.
// No validation is performed here: legality of the destination is the
// caller's responsibility, established by only ever offering positions
// produced by ValidZones.
func (l Layout) With(id int, dest Point) Layout {
	l[id].Pos = dest
	return l
}

// Board is the playable rectangle. Coins must keep a one-radius margin
// from every edge.
type Board struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Game holds the state of a single puzzle session. The geometry functions in
// this package are pure; everything mutable (move counter, solved flag,
// timer) is owned here, by the session shell.
type Game struct {
	ID        string    // Unique session identifier (random hex string).
	Board     Board     // Playable rectangle.
	Radius    float64   // Coin radius in board units.
	Tolerance float64   // Max distance from a target slot still counted as solved.
	Start     Layout    // Layout the session began with (restored on Reset).
	Current   Layout    // Layout after the moves made so far.
	Target    Layout    // Downward-triangle goal, fixed for the session.
	Moves     int       // Number of moves applied so far.
	Solved    bool      // True once Current matches Target within Tolerance.
	StartedAt time.Time // Set at creation and on Reset; used for elapsed time.
}
