package room

import (
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/lox/donkey/internal/game"
)

// Member is a player seated in a room
type Member struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"isHost"`
}

// Room is one game room: its members in join order, and once started, the
// authoritative game state. The room's mutex serializes every membership
// change and game action, so check-then-mutate sequences are atomic with
// respect to other actions on the same room.
type Room struct {
	Code      string
	CreatedAt time.Time

	mu      sync.Mutex
	hostID  string
	members []*Member
	game    *game.State
}

func newRoom(code string, createdAt time.Time, hostID, hostName string) *Room {
	return &Room{
		Code:      code,
		CreatedAt: createdAt,
		hostID:    hostID,
		members:   []*Member{{ID: hostID, Name: hostName, IsHost: true}},
	}
}

// HostID returns the current host's identity
func (r *Room) HostID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hostID
}

// Members returns a snapshot of the member list in join order
func (r *Room) Members() []Member {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Member, len(r.members))
	for i, m := range r.members {
		out[i] = *m
	}
	return out
}

// MemberIDs returns the member identities in join order
func (r *Room) MemberIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, len(r.members))
	for i, m := range r.members {
		ids[i] = m.ID
	}
	return ids
}

// MemberName returns the display name for an identity, or "" if not a member
func (r *Room) MemberName(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m := r.member(id); m != nil {
		return m.Name
	}
	return ""
}

// IsHost reports whether id is the room's host
func (r *Room) IsHost(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return id == r.hostID
}

// MemberCount returns the number of seated members
func (r *Room) MemberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// GameStarted reports whether a game has been started in this room
func (r *Room) GameStarted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game != nil
}

// GameInProgress reports whether a game is started and not yet over
func (r *Room) GameInProgress() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game != nil && r.game.InProgress()
}

func (r *Room) member(id string) *Member {
	for _, m := range r.members {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// addMember seats a new, non-host member
func (r *Room) addMember(id, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.game != nil {
		return ErrGameAlreadyStarted
	}
	if len(r.members) >= game.MaxPlayers {
		return ErrRoomFull
	}
	if r.member(id) != nil {
		return ErrAlreadyJoined
	}

	r.members = append(r.members, &Member{ID: id, Name: name})
	return nil
}

// LeaveResult reports the outcome of removing a member
type LeaveResult struct {
	RoomDeleted bool
	NewHostID   string // non-empty if host succession occurred
	GameEnded   bool   // true if an in-progress game was forced over
}

// removeMember unseats a member, promoting the earliest-joined remaining
// member to host if the host left, and forcing any running game over.
// Returns whether the room is now empty.
func (r *Room) removeMember(id string) (LeaveResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res LeaveResult

	idx := -1
	for i, m := range r.members {
		if m.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return res, false
	}

	wasHost := r.members[idx].IsHost
	r.members = append(r.members[:idx], r.members[idx+1:]...)

	if len(r.members) == 0 {
		res.RoomDeleted = true
		return res, true
	}

	if wasHost {
		next := r.members[0]
		next.IsHost = true
		r.hostID = next.ID
		res.NewHostID = next.ID
	}

	if r.game != nil && r.game.InProgress() {
		r.game.ForceOver("player left the game")
		res.GameEnded = true
	}

	return res, false
}

// StartGame deals a new game to the current members, in join order
func (r *Room) StartGame(rng *rand.Rand) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.game != nil {
		return ErrGameAlreadyStarted
	}

	ids := make([]string, len(r.members))
	for i, m := range r.members {
		ids[i] = m.ID
	}

	s, err := game.Start(rng, ids)
	if err != nil {
		return err
	}
	r.game = s
	return nil
}

// Apply runs fn against the room's game state under the room lock. Every
// game action must go through here so validation and mutation cannot
// interleave with another action on the same room. fn must not block.
func (r *Room) Apply(fn func(*game.State) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.game == nil || !r.game.InProgress() {
		return game.ErrGameNotInProgress
	}
	return fn(r.game)
}

// WithGame runs fn with the game state under the room lock regardless of
// whether the game is over. Used for read-only snapshots after game end.
func (r *Room) WithGame(fn func(*game.State)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.game == nil {
		return false
	}
	fn(r.game)
	return true
}
