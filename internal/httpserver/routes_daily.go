// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes four endpoints under /daily:
//   - POST /daily/new         → start the daily puzzle (creates or reuses session)
//   - POST /daily/zones       → legal destinations for a coin in today's puzzle
//   - POST /daily/move        → apply a move to today's puzzle
//   - GET  /daily/leaderboard → fetch top 20 results for today (or a given date)
//
// Each user can play once per day (enforced by DB + in-memory session).
// Sessions are held in memory for active play and persisted to DB on solve.
// Everyone gets the same puzzle: the start layout is the canonical triangle
// scrambled by a deterministic seed derived from date + salt. The scrambler
// only makes reversible moves, so the day's puzzle is always solvable.

package httpserver

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/triflip/go-server/internal/daily"
	"github.com/triflip/go-server/internal/game"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv           *Server
	store         *daily.Store
	salt          string
	scrambleMoves int                      // scramble depth for the day's start layout
	sessions      map[string]*dailySession // active sessions keyed by userID|date
	mu            sync.Mutex               // guards sessions and their games
}

// dailySession holds transient in-memory state for an in-progress daily puzzle.
type dailySession struct {
	UserID   string
	Date     string
	G        *game.Game
	Finished bool
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	moves := 4
	if v := os.Getenv("DAILY_SCRAMBLE_MOVES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			moves = n
		}
	}
	dd := &dailyServer{
		srv:           s,
		store:         daily.NewStore(s.db),
		salt:          getEnv("DAILY_SALT", "local_dev_salt"),
		scrambleMoves: moves,
		sessions:      make(map[string]*dailySession),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/zones", dd.handleZones)
		r.Post("/move", dd.handleMove)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// dateKeyNow returns today's date key and the deterministic scramble seed.
func (d *dailyServer) dateKeyNow() (date string, seed int64) {
	now := time.Now().UTC()
	return daily.DateKey(now), daily.Seed(now, d.salt)
}

// newDailyGame builds today's puzzle: the canonical start triangle scrambled
// by seed. Scramble takes only reversible moves, so the result can always be
// played back to the start triangle and on to the target.
func (d *dailyServer) newDailyGame(seed int64) *game.Game {
	b, radius := d.srv.board, d.srv.radius
	start := game.Scramble(game.StartLayout(b, radius), radius, b, seed, d.scrambleMoves)
	return game.New(&start, b, radius)
}

// userIDWithAnon returns the authenticated user ID if logged in,
// otherwise ensures an anonymous ID via Server.ensureAnonID.
func (d *dailyServer) userIDWithAnon(w http.ResponseWriter, r *http.Request) (string, bool) {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID, true
	}
	return d.srv.ensureAnonID(w, r), true
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new. Board geometry is always present;
// layout and target are omitted once the user has already played.
type dailyNewRes struct {
	GameID    string     `json:"gameId"`
	Date      string     `json:"date"`
	Played    bool       `json:"played"`
	Board     game.Board `json:"board"`
	Radius    float64    `json:"radius"`
	Tolerance float64    `json:"tolerance"`
	Layout    []coinDTO  `json:"layout,omitempty"`
	Target    []coinDTO  `json:"target,omitempty"`
	Moves     int        `json:"moves"`
	State     string     `json:"state,omitempty"`
}

// handleNew creates or reuses a daily session for the current date.
// - If user already has a DB row for today → return Played=true.
// - Otherwise create/reuse an in-memory session and return the puzzle.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	date, seed := d.dateKeyNow()

	res := dailyNewRes{
		Date:      date,
		Board:     d.srv.board,
		Radius:    d.srv.radius,
		Tolerance: game.DefaultTolerance,
	}

	// Check if already played (persisted in DB).
	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		res.Played = true
		_ = json.NewEncoder(w).Encode(res)
		return
	}

	// Reuse or create session in memory.
	key := uid + "|" + date
	d.mu.Lock()
	sess, ok := d.sessions[key]
	if !ok {
		sess = &dailySession{UserID: uid, Date: date, G: d.newDailyGame(seed)}
		d.sessions[key] = sess
	}
	res.GameID = sess.G.ID
	res.Layout = layoutToWire(sess.G.Current)
	res.Target = layoutToWire(sess.G.Target)
	res.Moves = sess.G.Moves
	res.State = sess.G.State()
	d.mu.Unlock()

	_ = json.NewEncoder(w).Encode(res)
}

// -----------------------------------------------------------------------------
// /daily/zones

// dailyZonesReq is the request payload for /daily/zones.
type dailyZonesReq struct {
	GameID string `json:"gameId"`
	CoinID int    `json:"coinId"`
}

// handleZones returns legal destinations for a coin in today's session.
func (d *dailyServer) handleZones(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var p dailyZonesReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if p.GameID == "" || p.CoinID < 0 || p.CoinID >= game.NumCoins {
		http.Error(w, "invalid", http.StatusBadRequest)
		return
	}

	date, _ := d.dateKeyNow()
	key := uid + "|" + date
	d.mu.Lock()
	sess, ok := d.sessions[key]
	if !ok || sess.G.ID != p.GameID {
		d.mu.Unlock()
		http.Error(w, "no session", http.StatusConflict)
		return
	}
	zones := sess.G.ZonesFor(p.CoinID)
	d.mu.Unlock()

	if zones == nil {
		zones = []game.Point{}
	}
	_ = json.NewEncoder(w).Encode(zonesRes{Zones: zones})
}

// -----------------------------------------------------------------------------
// /daily/move

// dailyMoveReq is the request payload for /daily/move.
type dailyMoveReq struct {
	GameID string  `json:"gameId"`
	CoinID int     `json:"coinId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// dailyMoveRes is the response payload for /daily/move.
type dailyMoveRes struct {
	Layout []coinDTO `json:"layout"`
	State  string    `json:"state"` // in_progress | solved | locked
	Moves  int       `json:"moves"`
}

// handleMove validates and applies a move to today's daily session.
// - Ensures valid GameID and coin.
// - Rejects if no session; reports locked once finished.
// - Applies the move through the engine (snap + zone legality).
// - Updates session state; persists result to DB on solve.
func (d *dailyServer) handleMove(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var p dailyMoveReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if p.GameID == "" || p.CoinID < 0 || p.CoinID >= game.NumCoins {
		http.Error(w, "invalid", http.StatusBadRequest)
		return
	}

	date, _ := d.dateKeyNow()

	// Find session.
	key := uid + "|" + date
	d.mu.Lock()
	sess, ok := d.sessions[key]
	if !ok || sess.G.ID != p.GameID {
		d.mu.Unlock()
		http.Error(w, "no session", http.StatusConflict)
		return
	}
	if sess.Finished {
		res := dailyMoveRes{Layout: layoutToWire(sess.G.Current), State: "locked", Moves: sess.G.Moves}
		d.mu.Unlock()
		_ = json.NewEncoder(w).Encode(res)
		return
	}

	l, state, err := sess.G.MoveTo(p.CoinID, game.Point{X: p.X, Y: p.Y})
	if err != nil {
		d.mu.Unlock()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	solved := state == "solved"
	if solved {
		sess.Finished = true
	}
	moves := sess.G.Moves
	started := sess.G.StartedAt
	d.mu.Unlock()

	// Persist and return.
	if solved {
		elapsed := int(time.Since(started).Milliseconds())
		_ = d.store.InsertResult(r.Context(), daily.Result{
			UserID: uid, Date: date, Moves: moves, ElapsedMs: elapsed,
		})
		_ = json.NewEncoder(w).Encode(dailyMoveRes{Layout: layoutToWire(l), State: "solved", Moves: moves})
		return
	}
	_ = json.NewEncoder(w).Encode(dailyMoveRes{Layout: layoutToWire(l), State: "in_progress", Moves: moves})
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _ = d.dateKeyNow()
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []daily.LBRow{}
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
