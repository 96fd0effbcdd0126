// internal/game/zones.go
//
// Pure geometry queries over a layout snapshot.
// Responsibilities:
//   - ValidZones: the set of positions where the selected coin may be placed.
//   - IsComplete: whether a layout matches the target within tolerance.
//
// Both are pure functions: no state, no side effects, safe to call any
// number of times on the same inputs.

package game

import "math"

// zoneMergeEps is the distance under which two candidate positions are
// treated as the same drop zone. Distinct coin pairs can produce the same
// tangency point; merging keeps the result a set.
const zoneMergeEps = 1e-6

// ValidZones returns every position where the selected coin would rest
// tangent to two other coins without overlapping a third or leaving the
// board.
//
// For every unordered pair of unselected coins closer than 4r, the two
// placements tangent to both lie at the pair's midpoint offset
// perpendicularly by sqrt((2r)² − (d/2)²). Candidates are discarded when
// they leave less than one radius of margin to a board edge, or fall within
// 1.5r of any unselected coin. A coincident pair (distance zero) is skipped
// outright rather than reported as an error; it simply contributes no
// candidates.
//
// The selected coin's own position can legitimately survive as a zone: a
// coin already tangent to two others may be put back where it was.
func ValidZones(l Layout, selected int, radius float64, b Board) []Point {
	others := make([]Coin, 0, NumCoins-1)
	for _, c := range l {
		if c.ID != selected {
			others = append(others, c)
		}
	}

	var zones []Point
	for i := 0; i < len(others); i++ {
		for j := i + 1; j < len(others); j++ {
			a, c := others[i].Pos, others[j].Pos
			d := Dist(a, c)
			if d == 0 || d > 4*radius {
				continue
			}
			mid := Point{(a.X + c.X) / 2, (a.Y + c.Y) / 2}
			off := math.Sqrt(math.Max(0, 4*radius*radius-(d/2)*(d/2)))
			// Unit perpendicular to the pair's axis.
			px, py := -(c.Y-a.Y)/d, (c.X-a.X)/d

			for _, cand := range [2]Point{
				{mid.X + px*off, mid.Y + py*off},
				{mid.X - px*off, mid.Y - py*off},
			} {
				if !inBounds(cand, radius, b) || collides(cand, others, radius) {
					continue
				}
				if !containsPoint(zones, cand, zoneMergeEps) {
					zones = append(zones, cand)
				}
			}
		}
	}
	return zones
}

// inBounds reports whether p keeps a full coin radius of margin inside the
// board rectangle.
func inBounds(p Point, radius float64, b Board) bool {
	return p.X >= radius && p.X <= b.Width-radius &&
		p.Y >= radius && p.Y <= b.Height-radius
}

// collides reports whether p sits within 1.5r of any of the given coins.
func collides(p Point, coins []Coin, radius float64) bool {
	for _, c := range coins {
		if Dist(p, c.Pos) < 1.5*radius {
			return true
		}
	}
	return false
}

// containsPoint reports whether pts already holds a point within eps of p.
func containsPoint(pts []Point, p Point, eps float64) bool {
	for _, q := range pts {
		if Dist(q, p) < eps {
			return true
		}
	}
	return false
}

// IsComplete reports whether every coin sits strictly within tolerance of
// its identity-matched target slot. The check is order-sensitive: coin i
// must occupy slot i specifically, not any slot of the target shape.
func IsComplete(l, target Layout, tolerance float64) bool {
	for i := range l {
		if Dist(l[i].Pos, target[i].Pos) >= tolerance {
			return false
		}
	}
	return true
}
