// internal/game/scramble.go
//
// Deterministic layout scrambling for the daily challenge.

package game

import "math/rand"

// Scramble applies up to n pseudo-random legal moves to l and returns the
// result. The same seed always produces the same layout.
//
// Only reversible moves are taken: a coin is moved only when its current
// position is itself one of its valid zones, which means the move can be
// undone by a later legal move. Every scrambled layout therefore has a legal
// path back to l, and from the canonical start layout onward to the target,
// so a daily puzzle is always solvable.
func Scramble(l Layout, radius float64, b Board, seed int64, n int) Layout {
	rng := rand.New(rand.NewSource(seed))
	cur := l
	// A random pick may land on a coin that is not currently movable; give
	// each requested move a generous retry budget before giving up.
	for made, tries := 0, 0; made < n && tries < 50*(n+1); tries++ {
		id := rng.Intn(NumCoins)
		own := cur[id].Pos
		zones := ValidZones(cur, id, radius, b)
		if !containsPoint(zones, own, zoneMergeEps) {
			continue
		}
		dests := make([]Point, 0, len(zones))
		for _, z := range zones {
			if Dist(z, own) >= zoneMergeEps {
				dests = append(dests, z)
			}
		}
		if len(dests) == 0 {
			continue
		}
		cur = cur.With(id, dests[rng.Intn(len(dests))])
		made++
	}
	return cur
}
