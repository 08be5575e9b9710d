package room

import (
	"context"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

const (
	roomCodeLength = 6
	roomCodeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// DefaultRoomTTL is how long a room may exist before the sweep removes
	// it regardless of population. Guards against leaked rooms.
	DefaultRoomTTL = 4 * time.Hour

	// DefaultSweepInterval is how often the sweep runs
	DefaultSweepInterval = 30 * time.Minute
)

// Stats is the read-only operational summary of the registry
type Stats struct {
	TotalRooms   int `json:"totalRooms"`
	ActiveGames  int `json:"activeGames"`
	TotalPlayers int `json:"totalPlayers"`
}

// Registry owns every active room. It is the only component that creates or
// deletes rooms; a Room has no existence outside its registry. The registry
// mutex protects the room map and the player index only; game state is
// guarded by each room's own lock.
type Registry struct {
	logger        *log.Logger
	clock         quartz.Clock
	rng           *rand.Rand
	rngMu         sync.Mutex
	roomTTL       time.Duration
	sweepInterval time.Duration

	mu       sync.RWMutex
	rooms    map[string]*Room
	byPlayer map[string]string // identity -> room code
}

// Option configures a Registry
type Option func(*Registry)

// WithClock substitutes the clock, for tests
func WithClock(clock quartz.Clock) Option {
	return func(r *Registry) { r.clock = clock }
}

// WithRoomTTL overrides the room age ceiling
func WithRoomTTL(ttl time.Duration) Option {
	return func(r *Registry) { r.roomTTL = ttl }
}

// WithSweepInterval overrides how often the sweep runs
func WithSweepInterval(d time.Duration) Option {
	return func(r *Registry) { r.sweepInterval = d }
}

// NewRegistry creates an empty registry. The RNG is used for room codes and
// game shuffles; inject a seeded one for deterministic tests.
func NewRegistry(logger *log.Logger, rng *rand.Rand, opts ...Option) *Registry {
	r := &Registry{
		logger:        logger.WithPrefix("rooms"),
		clock:         quartz.NewReal(),
		rng:           rng,
		roomTTL:       DefaultRoomTTL,
		sweepInterval: DefaultSweepInterval,
		rooms:         make(map[string]*Room),
		byPlayer:      make(map[string]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateRoom allocates a fresh room with the host as its sole member
func (r *Registry) CreateRoom(hostID, hostName string) *Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	code := r.generateRoomCode()
	rm := newRoom(code, r.clock.Now(), hostID, hostName)
	r.rooms[code] = rm
	r.byPlayer[hostID] = code

	r.logger.Info("Room created", "code", code, "host", hostName)
	return rm
}

// generateRoomCode returns a code not currently in use. Caller holds the lock.
func (r *Registry) generateRoomCode() string {
	r.rngMu.Lock()
	defer r.rngMu.Unlock()
	for {
		code := make([]byte, roomCodeLength)
		for i := range code {
			code[i] = roomCodeChars[r.rng.IntN(len(roomCodeChars))]
		}
		if _, taken := r.rooms[string(code)]; !taken {
			return string(code)
		}
	}
}

// JoinRoom seats a player in an existing room as a non-host member
func (r *Registry) JoinRoom(code, id, name string) (*Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}

	if err := rm.addMember(id, name); err != nil {
		return nil, err
	}
	r.byPlayer[id] = code

	r.logger.Info("Player joined room", "code", code, "player", name, "members", rm.MemberCount())
	return rm, nil
}

// LeaveRoom unseats a player. An emptied room is deleted immediately; a
// departing host hands the room to the earliest-joined remaining member; a
// game in progress is forced over.
func (r *Registry) LeaveRoom(code, id string) (LeaveResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[code]
	if !ok {
		return LeaveResult{}, ErrRoomNotFound
	}

	res, empty := rm.removeMember(id)
	delete(r.byPlayer, id)

	if empty {
		delete(r.rooms, code)
		r.logger.Info("Room deleted, no players left", "code", code)
		return res, nil
	}

	if res.NewHostID != "" {
		r.logger.Info("New host assigned", "code", code, "host", res.NewHostID)
	}
	return res, nil
}

// StartGame deals a game to the room's members. Host enforcement belongs to
// the dispatch boundary; player-count validation belongs to the game.
func (r *Registry) StartGame(code string) (*Room, error) {
	r.mu.RLock()
	rm, ok := r.rooms[code]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrRoomNotFound
	}

	r.rngMu.Lock()
	err := rm.StartGame(r.rng)
	r.rngMu.Unlock()
	if err != nil {
		return nil, err
	}

	r.logger.Info("Game started", "code", code, "players", rm.MemberCount())
	return rm, nil
}

// Room returns a room by code
func (r *Registry) Room(code string) (*Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.rooms[code]
	return rm, ok
}

// RoomForPlayer is the reverse lookup used to route every player action
func (r *Registry) RoomForPlayer(id string) (*Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	code, ok := r.byPlayer[id]
	if !ok {
		return nil, false
	}
	rm, ok := r.rooms[code]
	return rm, ok
}

// Stats summarizes the registry for the operational stats endpoint
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var s Stats
	s.TotalRooms = len(r.rooms)
	for _, rm := range r.rooms {
		if rm.GameStarted() {
			s.ActiveGames++
		}
		s.TotalPlayers += rm.MemberCount()
	}
	return s
}

// Sweep deletes rooms that are empty or older than the TTL, regardless of
// activity. Returns how many rooms were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	removed := 0
	for code, rm := range r.rooms {
		if rm.MemberCount() > 0 && now.Sub(rm.CreatedAt) <= r.roomTTL {
			continue
		}
		for _, id := range rm.MemberIDs() {
			delete(r.byPlayer, id)
		}
		delete(r.rooms, code)
		removed++
		r.logger.Info("Swept room", "code", code, "age", now.Sub(rm.CreatedAt))
	}
	return removed
}

// Run sweeps periodically until ctx is cancelled
func (r *Registry) Run(ctx context.Context) error {
	waiter := r.clock.TickerFunc(ctx, r.sweepInterval, func() error {
		r.Sweep()
		return nil
	}, "sweep")

	err := waiter.Wait()
	if ctx.Err() != nil {
		return nil
	}
	return err
}
