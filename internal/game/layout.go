// internal/game/layout.go
//
// Canonical board dimensions and the two reference layouts: the hex-packed
// upward start triangle and the mirrored downward target triangle.

package game

import "math"

// Reference board scale. The server layer may override board and radius from
// the environment; tolerance is fixed at 20 units in this scale.
const (
	DefaultRadius    = 30.0
	DefaultTolerance = 20.0
)

// DefaultBoard is the reference playable rectangle, sized for a portrait
// phone viewport.
var DefaultBoard = Board{Width: 360, Height: 560}

// rowStep returns the vertical distance between rows of a hex-packed
// triangle of coins with radius r (adjacent coins exactly tangent).
func rowStep(r float64) float64 {
	return math.Sqrt(3) * r
}

// StartLayout returns the upward triangle: coin 0 at the apex, coins 1–2 in
// the second row, coins 3–5 in the bottom row. Every neighboring pair is
// exactly 2r apart. The triangle is horizontally centered; vertically it is
// placed so start and target together are centered on the board.
func StartLayout(b Board, r float64) Layout {
	cx := b.Width / 2
	dy := rowStep(r)
	top := b.Height/2 - 2*dy
	return NewLayout([NumCoins]Point{
		{cx, top},
		{cx - r, top + dy},
		{cx + r, top + dy},
		{cx - 2*r, top + 2*dy},
		{cx, top + 2*dy},
		{cx + 2*r, top + 2*dy},
	})
}

// TargetLayout returns the downward triangle: the start layout mirrored
// about the horizontal line through its bottom row. Coins 3–5 keep their
// start positions; coins 1–2 drop one row and coin 0 becomes the inverted
// tip. Flipping start into target takes at least MinMoves moves.
func TargetLayout(b Board, r float64) Layout {
	start := StartLayout(b, r)
	axis := start[3].Pos.Y
	var positions [NumCoins]Point
	for i, c := range start {
		positions[i] = Point{c.Pos.X, 2*axis - c.Pos.Y}
	}
	return NewLayout(positions)
}
