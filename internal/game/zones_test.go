// internal/game/zones_test.go
package game

import (
	"math"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Every zone must be an exact double-tangency point: at distance 2r from at
// least two unselected coins.
func TestZonesTangentToTwoReferences(t *testing.T) {
	b, r := DefaultBoard, DefaultRadius
	l := StartLayout(b, r)

	for coin := 0; coin < NumCoins; coin++ {
		zones := ValidZones(l, coin, r, b)
		if len(zones) == 0 {
			t.Fatalf("coin %d: expected zones on the start layout, got none", coin)
		}
		for _, z := range zones {
			tangent := 0
			for _, c := range l {
				if c.ID == coin {
					continue
				}
				if math.Abs(Dist(z, c.Pos)-2*r) < 1e-6 {
					tangent++
				}
			}
			if tangent < 2 {
				t.Errorf("coin %d: zone %+v tangent to %d coins, want >= 2", coin, z, tangent)
			}
		}
	}
}

// Zones may never overlap an unselected coin or leave the margin.
func TestZonesRespectCollisionAndBounds(t *testing.T) {
	b, r := DefaultBoard, DefaultRadius
	l := StartLayout(b, r)

	for coin := 0; coin < NumCoins; coin++ {
		for _, z := range ValidZones(l, coin, r, b) {
			if z.X < r-1e-9 || z.X > b.Width-r+1e-9 || z.Y < r-1e-9 || z.Y > b.Height-r+1e-9 {
				t.Errorf("coin %d: zone %+v outside playable rectangle", coin, z)
			}
			for _, c := range l {
				if c.ID == coin {
					continue
				}
				if Dist(z, c.Pos) < 1.5*r-1e-9 {
					t.Errorf("coin %d: zone %+v within 1.5r of coin %d", coin, z, c.ID)
				}
			}
		}
	}
}

// A coincident pair must be skipped silently: no candidates, no panic.
func TestCoincidentPairContributesNothing(t *testing.T) {
	b, r := DefaultBoard, DefaultRadius
	stack := Point{100, 100}
	l := NewLayout([NumCoins]Point{{60, 60}, stack, stack, stack, stack, stack})

	if zones := ValidZones(l, 0, r, b); len(zones) != 0 {
		t.Errorf("expected no zones from coincident pairs, got %v", zones)
	}
}

// Pairs farther apart than 4r offer no resting place for a third coin.
func TestDistantPairsContributeNothing(t *testing.T) {
	b, r := DefaultBoard, DefaultRadius
	l := NewLayout([NumCoins]Point{
		{60, 60}, {210, 60}, {60, 210}, {210, 210}, {60, 360}, {210, 360},
	})
	for coin := 0; coin < NumCoins; coin++ {
		if zones := ValidZones(l, coin, r, b); len(zones) != 0 {
			t.Errorf("coin %d: expected no zones for spread layout, got %v", coin, zones)
		}
	}
}

// At exactly 4r the perpendicular offset collapses to zero and the pair
// contributes its midpoint once; a hair beyond, nothing.
func TestPairAtFourRadii(t *testing.T) {
	b, r := DefaultBoard, DefaultRadius
	base := [NumCoins]Point{
		{60, 480}, {105, 200}, {225, 200}, {60, 60}, {300, 60}, {300, 480},
	}

	l := NewLayout(base)
	zones := ValidZones(l, 0, r, b)
	if len(zones) != 1 {
		t.Fatalf("expected exactly one zone (the midpoint), got %v", zones)
	}
	if Dist(zones[0], Point{165, 200}) > 1e-9 {
		t.Errorf("zone %+v, want the midpoint (165,200)", zones[0])
	}

	base[2] = Point{226, 200} // distance 121 > 4r
	l = NewLayout(base)
	if zones := ValidZones(l, 0, r, b); len(zones) != 0 {
		t.Errorf("pair beyond 4r still produced zones: %v", zones)
	}
}

// Repeated queries on an unchanged layout return the same set.
func TestZonesIdempotent(t *testing.T) {
	b, r := DefaultBoard, DefaultRadius
	l := StartLayout(b, r)

	for coin := 0; coin < NumCoins; coin++ {
		first := sortedPoints(ValidZones(l, coin, r, b))
		second := sortedPoints(ValidZones(l, coin, r, b))
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("coin %d: zone sets differ (-first +second):\n%s", coin, diff)
		}
	}
}

func TestIsCompleteToleranceIsStrict(t *testing.T) {
	b, r := DefaultBoard, DefaultRadius
	target := TargetLayout(b, r)

	if !IsComplete(target, target, DefaultTolerance) {
		t.Fatal("target layout must complete against itself")
	}

	nudged := target.With(3, Point{target[3].Pos.X + DefaultTolerance - 1, target[3].Pos.Y})
	if !IsComplete(nudged, target, DefaultTolerance) {
		t.Error("displacement below tolerance should still count as complete")
	}

	onEdge := target.With(3, Point{target[3].Pos.X + DefaultTolerance, target[3].Pos.Y})
	if IsComplete(onEdge, target, DefaultTolerance) {
		t.Error("displacement of exactly the tolerance must not count (strictly less)")
	}
}

// Completion is order-sensitive: a layout matching the target shape with two
// coins swapped is not complete.
func TestIsCompleteOrderSensitive(t *testing.T) {
	b, r := DefaultBoard, DefaultRadius
	target := TargetLayout(b, r)

	swapped := target.With(1, target[2].Pos).With(2, target[1].Pos)
	if IsComplete(swapped, target, DefaultTolerance) {
		t.Error("swapped coins occupy the right slots but the wrong identities; must not complete")
	}
}

// sortedPoints orders a zone slice by (X, Y) so slices can be compared as sets.
func sortedPoints(pts []Point) []Point {
	out := append([]Point(nil), pts...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Y < out[j].Y
	})
	return out
}
