package room

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/donkey/internal/game"
	"github.com/lox/donkey/internal/randutil"
)

func testRegistry(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	return NewRegistry(logger, randutil.New(42), opts...)
}

func TestCreateRoom(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	rm := reg.CreateRoom("host-1", "Alice")

	require.Len(t, rm.Code, roomCodeLength)
	require.Equal(t, "host-1", rm.HostID())
	require.True(t, rm.IsHost("host-1"))
	require.Equal(t, 1, rm.MemberCount())

	members := rm.Members()
	require.Len(t, members, 1)
	assert.Equal(t, "Alice", members[0].Name)
	assert.True(t, members[0].IsHost)

	got, ok := reg.Room(rm.Code)
	require.True(t, ok)
	assert.Same(t, rm, got)
}

func TestRoomCodesAreUnique(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		rm := reg.CreateRoom("host", "Host")
		require.False(t, seen[rm.Code], "duplicate room code %s", rm.Code)
		seen[rm.Code] = true
		_, err := reg.LeaveRoom(rm.Code, "host")
		require.NoError(t, err)
	}
}

func TestJoinRoom(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	rm := reg.CreateRoom("host-1", "Alice")

	joined, err := reg.JoinRoom(rm.Code, "p2", "Bob")
	require.NoError(t, err)
	require.Same(t, rm, joined)
	require.Equal(t, 2, rm.MemberCount())

	members := rm.Members()
	assert.Equal(t, "Bob", members[1].Name)
	assert.False(t, members[1].IsHost)

	// Joining routes future actions to this room.
	got, ok := reg.RoomForPlayer("p2")
	require.True(t, ok)
	assert.Same(t, rm, got)
}

func TestJoinRoomErrors(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	rm := reg.CreateRoom("host-1", "Alice")

	_, err := reg.JoinRoom("NOSUCH", "p2", "Bob")
	require.ErrorIs(t, err, ErrRoomNotFound)

	_, err = reg.JoinRoom(rm.Code, "host-1", "Alice")
	require.ErrorIs(t, err, ErrAlreadyJoined)

	for i := 0; i < game.MaxPlayers-1; i++ {
		_, err := reg.JoinRoom(rm.Code, string(rune('a'+i)), "Player")
		require.NoError(t, err)
	}
	_, err = reg.JoinRoom(rm.Code, "overflow", "Late")
	require.ErrorIs(t, err, ErrRoomFull)
}

func TestJoinAfterGameStarted(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	rm := reg.CreateRoom("host-1", "Alice")
	_, err := reg.JoinRoom(rm.Code, "p2", "Bob")
	require.NoError(t, err)

	_, err = reg.StartGame(rm.Code)
	require.NoError(t, err)

	_, err = reg.JoinRoom(rm.Code, "p3", "Carol")
	require.ErrorIs(t, err, ErrGameAlreadyStarted)
}

func TestStartGame(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	rm := reg.CreateRoom("host-1", "Alice")
	_, err := reg.JoinRoom(rm.Code, "p2", "Bob")
	require.NoError(t, err)

	started, err := reg.StartGame(rm.Code)
	require.NoError(t, err)
	require.Same(t, rm, started)
	require.True(t, rm.GameStarted())
	require.True(t, rm.GameInProgress())

	// Turn order follows join order.
	ok := rm.WithGame(func(s *game.State) {
		assert.Equal(t, []string{"host-1", "p2"}, s.TurnOrder)
		assert.Equal(t, "host-1", s.CurrentPlayerID())
	})
	require.True(t, ok)

	_, err = reg.StartGame(rm.Code)
	require.ErrorIs(t, err, ErrGameAlreadyStarted)
}

func TestStartGameRequiresTwoPlayers(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	rm := reg.CreateRoom("host-1", "Alice")

	_, err := reg.StartGame(rm.Code)
	require.ErrorIs(t, err, game.ErrInvalidPlayerCount)
	require.False(t, rm.GameStarted())
}

func TestLeaveRoomDeletesEmptyRoom(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	rm := reg.CreateRoom("host-1", "Alice")

	res, err := reg.LeaveRoom(rm.Code, "host-1")
	require.NoError(t, err)
	assert.True(t, res.RoomDeleted)

	_, ok := reg.Room(rm.Code)
	assert.False(t, ok)
	_, ok = reg.RoomForPlayer("host-1")
	assert.False(t, ok)
}

func TestLeaveRoomPromotesNewHost(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	rm := reg.CreateRoom("host-1", "Alice")
	_, err := reg.JoinRoom(rm.Code, "p2", "Bob")
	require.NoError(t, err)
	_, err = reg.JoinRoom(rm.Code, "p3", "Carol")
	require.NoError(t, err)

	res, err := reg.LeaveRoom(rm.Code, "host-1")
	require.NoError(t, err)
	assert.False(t, res.RoomDeleted)
	assert.Equal(t, "p2", res.NewHostID)

	// The earliest-joined remaining member is now host.
	require.Equal(t, "p2", rm.HostID())
	members := rm.Members()
	require.Len(t, members, 2)
	assert.True(t, members[0].IsHost)
}

func TestLeaveRoomEndsRunningGame(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	rm := reg.CreateRoom("host-1", "Alice")
	_, err := reg.JoinRoom(rm.Code, "p2", "Bob")
	require.NoError(t, err)
	_, err = reg.StartGame(rm.Code)
	require.NoError(t, err)

	res, err := reg.LeaveRoom(rm.Code, "p2")
	require.NoError(t, err)
	assert.True(t, res.GameEnded)
	assert.False(t, rm.GameInProgress())

	rm.WithGame(func(s *game.State) {
		assert.True(t, s.Over)
		assert.Empty(t, s.Donkey)
		assert.Equal(t, "player left the game", s.OverReason)
	})
}

func TestLeaveRoomUnknown(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	_, err := reg.LeaveRoom("NOSUCH", "p1")
	require.ErrorIs(t, err, ErrRoomNotFound)
}

func TestStats(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t)
	rm1 := reg.CreateRoom("h1", "Alice")
	_, err := reg.JoinRoom(rm1.Code, "p2", "Bob")
	require.NoError(t, err)
	_, err = reg.StartGame(rm1.Code)
	require.NoError(t, err)

	reg.CreateRoom("h2", "Carol")

	s := reg.Stats()
	assert.Equal(t, 2, s.TotalRooms)
	assert.Equal(t, 1, s.ActiveGames)
	assert.Equal(t, 3, s.TotalPlayers)
}

func TestSweepRemovesExpiredRooms(t *testing.T) {
	t.Parallel()

	clock := quartz.NewMock(t)
	reg := testRegistry(t, WithClock(clock), WithRoomTTL(time.Hour))

	old := reg.CreateRoom("h1", "Alice")
	clock.Advance(2 * time.Hour)
	fresh := reg.CreateRoom("h2", "Bob")

	removed := reg.Sweep()
	assert.Equal(t, 1, removed)

	_, ok := reg.Room(old.Code)
	assert.False(t, ok, "expired room should be gone")
	_, ok = reg.RoomForPlayer("h1")
	assert.False(t, ok, "player index entry should be cleaned up")
	_, ok = reg.Room(fresh.Code)
	assert.True(t, ok, "fresh room should survive")
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Parallel()

	clock := quartz.NewMock(t)
	reg := testRegistry(t, WithClock(clock), WithSweepInterval(time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- reg.Run(ctx) }()

	cancel()
	require.NoError(t, <-done)
}
