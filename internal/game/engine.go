// internal/game/engine.go
//
// Session shell for a single puzzle: the mutable state around the pure
// geometry queries.
// Responsibilities:
//   - Create new sessions with the canonical (or a caller-supplied) start layout.
//   - Offer drop zones for a selected coin.
//   - Validate and apply moves: snap to an offered zone, count the move,
//     re-check completion.
//   - Track state transitions: playing → solved.
//
// Notes:
//   - The geometry itself (ValidZones, IsComplete) never validates callers;
//     all interaction discipline lives here.
//   - randomID() is a compact hex identifier for correlating server state.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math"
	"time"
)

// New constructs a session on the given board. If start is nil the canonical
// upward triangle is used; a custom start layout plays toward the same
// downward-triangle target.
func New(start *Layout, b Board, r float64) *Game {
	s := StartLayout(b, r)
	if start != nil {
		s = *start
	}
	return &Game{
		ID:        randomID(),
		Board:     b,
		Radius:    r,
		Tolerance: DefaultTolerance,
		Start:     s,
		Current:   s,
		Target:    TargetLayout(b, r),
		StartedAt: time.Now(),
	}
}

// ZonesFor returns the legal drop zones for the given coin on the current
// layout. Pure query; calling it does not change the session.
func (g *Game) ZonesFor(coin int) []Point {
	return ValidZones(g.Current, coin, g.Radius, g.Board)
}

// MoveTo applies one move, snapping dest to the nearest offered zone.
// Returns: the resulting layout, the new state string ("playing"/"solved"),
// or an error.
//
// Validation rules:
//   - Session must not already be solved.
//   - dest must lie within one coin radius of a zone ValidZones offers for
//     the coin right now; anything else is rejected.
//
// The snap keeps the engine's contract intact: the layout only ever receives
// positions the zone finder produced, so the stored coordinates are exact
// tangency points rather than wherever the client happened to tap.
func (g *Game) MoveTo(coin int, dest Point) (Layout, string, error) {
	if g.Solved {
		return g.Current, g.State(), errors.New("game solved")
	}
	zone, ok := nearestZone(g.ZonesFor(coin), dest, g.Radius)
	if !ok {
		return g.Current, g.State(), errors.New("not a legal zone")
	}
	g.Current = g.Current.With(coin, zone)
	g.Moves++
	if IsComplete(g.Current, g.Target, g.Tolerance) {
		g.Solved = true
	}
	return g.Current, g.State(), nil
}

// Reset restores the start layout, zeroes the move counter, and restarts the
// clock.
func (g *Game) Reset() {
	g.Current = g.Start
	g.Moves = 0
	g.Solved = false
	g.StartedAt = time.Now()
}

// State reports a coarse string representation of the current session state.
func (g *Game) State() string {
	if g.Solved {
		return "solved"
	}
	return "playing"
}

// nearestZone picks the zone closest to p, if any lies within snap distance.
func nearestZone(zones []Point, p Point, snap float64) (Point, bool) {
	best, bestD := Point{}, math.Inf(1)
	for _, z := range zones {
		if d := Dist(z, p); d < bestD {
			best, bestD = z, d
		}
	}
	return best, bestD <= snap
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
