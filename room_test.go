package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(id string) *Client {
	return &Client{id: id, send: make(chan any, 16)}
}

func TestRoomRegistryCreate(t *testing.T) {
	reg := NewRoomRegistry()

	owner := testClient("c1")
	room := reg.Create(owner, UserRecord{Username: "alice"}, "Sala da Alice")

	assert.NotEmpty(t, room.ID)
	assert.Equal(t, roomWaiting, room.State)
	require.Len(t, room.Players, 1)
	assert.Equal(t, "alice", room.Players[0].User.Username)

	// Ids are unique across rooms.
	other := reg.Create(testClient("c2"), UserRecord{Username: "bruno"}, "Outra")
	assert.NotEqual(t, room.ID, other.ID)
}

func TestRoomRegistryJoin(t *testing.T) {
	t.Run("second participant fills the room", func(t *testing.T) {
		reg := NewRoomRegistry()
		room := reg.Create(testClient("c1"), UserRecord{Username: "alice"}, "Sala")

		joined, err := reg.Join(room.ID, testClient("c2"), UserRecord{Username: "bruno"})
		require.NoError(t, err)
		assert.Len(t, joined.Players, 2)
	})

	t.Run("unknown room is rejected", func(t *testing.T) {
		reg := NewRoomRegistry()

		_, err := reg.Join("room_nada", testClient("c1"), UserRecord{})
		assert.ErrorIs(t, err, errRoomUnavailable)
	})

	t.Run("full room is rejected", func(t *testing.T) {
		reg := NewRoomRegistry()
		room := reg.Create(testClient("c1"), UserRecord{}, "Sala")
		_, err := reg.Join(room.ID, testClient("c2"), UserRecord{})
		require.NoError(t, err)

		_, err = reg.Join(room.ID, testClient("c3"), UserRecord{})
		assert.ErrorIs(t, err, errRoomUnavailable)
	})

	t.Run("non-waiting room is rejected", func(t *testing.T) {
		reg := NewRoomRegistry()
		room := reg.Create(testClient("c1"), UserRecord{}, "Sala")
		room.State = roomPlaying

		_, err := reg.Join(room.ID, testClient("c2"), UserRecord{})
		assert.ErrorIs(t, err, errRoomUnavailable)
	})
}

func TestRoomRegistryList(t *testing.T) {
	reg := NewRoomRegistry()

	assert.Empty(t, reg.List())

	r1 := reg.Create(testClient("c1"), UserRecord{}, "Primeira")
	r2 := reg.Create(testClient("c2"), UserRecord{}, "Segunda")
	_, err := reg.Join(r2.ID, testClient("c3"), UserRecord{})
	require.NoError(t, err)

	listing := reg.List()
	require.Len(t, listing, 2)

	counts := map[string]int{}
	for _, summary := range listing {
		counts[summary.ID] = summary.Players
	}
	assert.Equal(t, 1, counts[r1.ID])
	assert.Equal(t, 2, counts[r2.ID])
}

func TestRoomRegistryRemoveParticipant(t *testing.T) {
	t.Run("empty rooms are deleted", func(t *testing.T) {
		reg := NewRoomRegistry()
		room := reg.Create(testClient("c1"), UserRecord{}, "Sala")

		affected := reg.RemoveParticipant("c1")
		assert.Empty(t, affected)
		assert.Nil(t, reg.Get(room.ID))
	})

	t.Run("non-empty rooms are reported for notification", func(t *testing.T) {
		reg := NewRoomRegistry()
		room := reg.Create(testClient("c1"), UserRecord{Username: "alice"}, "Sala")
		_, err := reg.Join(room.ID, testClient("c2"), UserRecord{Username: "bruno"})
		require.NoError(t, err)

		affected := reg.RemoveParticipant("c1")
		require.Len(t, affected, 1)
		assert.Equal(t, room.ID, affected[0].ID)
		require.Len(t, affected[0].Players, 1)
		assert.Equal(t, "bruno", affected[0].Players[0].User.Username)
	})

	t.Run("unknown participant touches nothing", func(t *testing.T) {
		reg := NewRoomRegistry()
		room := reg.Create(testClient("c1"), UserRecord{}, "Sala")

		affected := reg.RemoveParticipant("ghost")
		assert.Empty(t, affected)
		assert.NotNil(t, reg.Get(room.ID))
		assert.Len(t, reg.Get(room.ID).Players, 1)
	})
}
