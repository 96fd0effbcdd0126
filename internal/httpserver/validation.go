// internal/httpserver/validation.go
//
// Validation for client-supplied start layouts on POST /game/new.
// Two layers:
//   - JSON Schema: exactly six {id,x,y} objects, ids 0–5, numeric coords.
//   - Semantic: ids form a permutation, coins stay inside the board margin,
//     no two coins overlap.
//
// The engine itself trusts its inputs; this is the boundary where untrusted
// client data gets checked.

package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/triflip/go-server/internal/game"
)

// coinDTO is the wire shape of one coin: flat id/x/y.
type coinDTO struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// layoutToWire flattens an engine layout into wire coins, identity order.
func layoutToWire(l game.Layout) []coinDTO {
	out := make([]coinDTO, 0, game.NumCoins)
	for _, c := range l {
		out = append(out, coinDTO{ID: c.ID, X: c.Pos.X, Y: c.Pos.Y})
	}
	return out
}

// layoutSchema is the structural contract for a custom start layout.
const layoutSchema = `{
  "type": "array",
  "minItems": 6,
  "maxItems": 6,
  "items": {
    "type": "object",
    "required": ["id", "x", "y"],
    "additionalProperties": false,
    "properties": {
      "id": {"type": "integer", "minimum": 0, "maximum": 5},
      "x": {"type": "number"},
      "y": {"type": "number"}
    }
  }
}`

var compiledLayoutSchema = mustCompileLayoutSchema()

func mustCompileLayoutSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("mem://layout.json", strings.NewReader(layoutSchema)); err != nil {
		panic(err)
	}
	schema, err := c.Compile("mem://layout.json")
	if err != nil {
		panic(err)
	}
	return schema
}

// parseLayout validates raw and converts it into an engine layout.
func parseLayout(raw json.RawMessage, b game.Board, radius float64) (game.Layout, error) {
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return game.Layout{}, errors.New("layout is not valid JSON")
	}
	if err := compiledLayoutSchema.Validate(decoded); err != nil {
		return game.Layout{}, err
	}

	var coins []coinDTO
	if err := json.Unmarshal(raw, &coins); err != nil {
		return game.Layout{}, err
	}

	var seen [game.NumCoins]bool
	var positions [game.NumCoins]game.Point
	for _, c := range coins {
		if seen[c.ID] {
			return game.Layout{}, fmt.Errorf("duplicate coin id %d", c.ID)
		}
		seen[c.ID] = true
		positions[c.ID] = game.Point{X: c.X, Y: c.Y}
	}

	for id, p := range positions {
		if p.X < radius || p.X > b.Width-radius || p.Y < radius || p.Y > b.Height-radius {
			return game.Layout{}, fmt.Errorf("coin %d is outside the playable area", id)
		}
	}
	for i := 0; i < game.NumCoins; i++ {
		for j := i + 1; j < game.NumCoins; j++ {
			if game.Dist(positions[i], positions[j]) < 1.5*radius {
				return game.Layout{}, fmt.Errorf("coins %d and %d overlap", i, j)
			}
		}
	}
	return game.NewLayout(positions), nil
}
