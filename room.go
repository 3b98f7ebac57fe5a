package main

import (
	"crypto/rand"
	"errors"
	"time"
)

// Room lifecycle states.
const (
	roomWaiting  = "waiting"
	roomPlaying  = "playing"
	roomFinished = "finished"
)

var (
	errRoomUnavailable = errors.New("sala cheia ou inexistente")
)

// Participant binds a connection to the user record it carried into
// the room. The snapshot is what opponents see (name, avatar); coin
// mutations always go through the store, not this copy.
type Participant struct {
	Client *Client
	User   UserRecord
}

// Room holds up to two participants and, while playing or finished,
// one Game instance. A reset timer returns a finished room to waiting.
type Room struct {
	ID      string
	Name    string
	Players []*Participant
	State   string
	Game    *Game

	resetTimer *time.Timer
}

func (r *Room) participant(clientID string) *Participant {
	for _, p := range r.Players {
		if p.Client.id == clientID {
			return p
		}
	}
	return nil
}

// stopReset cancels a pending return-to-waiting, if any.
func (r *Room) stopReset() {
	if r.resetTimer != nil {
		r.resetTimer.Stop()
		r.resetTimer = nil
	}
}

// RoomSummary is the lobby-facing view of a room.
type RoomSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Players int    `json:"players"`
}

// RoomRegistry is the process-wide room collection. It is owned by
// the server event loop, which is the only goroutine that touches it,
// so it carries no lock of its own.
type RoomRegistry struct {
	rooms map[string]*Room
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{rooms: make(map[string]*Room)}
}

// newRoomID generates a crypto-random opaque room id and ensures it
// doesn't collide with existing rooms.
func (reg *RoomRegistry) newRoomID() string {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	for {
		buf := make([]byte, 9)
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		out := make([]byte, 9)
		for i := range out {
			out[i] = letters[int(buf[i])%len(letters)]
		}
		id := "room_" + string(out)

		if _, exists := reg.rooms[id]; !exists {
			return id
		}
	}
}

// Create opens a new waiting room with the owner as its first
// participant. Always succeeds for an authenticated caller.
func (reg *RoomRegistry) Create(owner *Client, user UserRecord, name string) *Room {
	room := &Room{
		ID:      reg.newRoomID(),
		Name:    name,
		Players: []*Participant{{Client: owner, User: user}},
		State:   roomWaiting,
	}
	reg.rooms[room.ID] = room

	return room
}

// Join adds a second participant. Rejected when the room is missing,
// full, or no longer waiting.
func (reg *RoomRegistry) Join(roomID string, client *Client, user UserRecord) (*Room, error) {
	room, ok := reg.rooms[roomID]
	if !ok || len(room.Players) >= 2 || room.State != roomWaiting {
		return nil, errRoomUnavailable
	}

	room.Players = append(room.Players, &Participant{Client: client, User: user})

	return room, nil
}

// Get looks up a room by id.
func (reg *RoomRegistry) Get(roomID string) *Room {
	return reg.rooms[roomID]
}

// List snapshots every room for lobby display.
func (reg *RoomRegistry) List() []RoomSummary {
	out := make([]RoomSummary, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		out = append(out, RoomSummary{
			ID:      room.ID,
			Name:    room.Name,
			Players: len(room.Players),
		})
	}
	return out
}

// Remove deletes a room outright, cancelling any pending reset.
func (reg *RoomRegistry) Remove(roomID string) {
	if room, ok := reg.rooms[roomID]; ok {
		room.stopReset()
		delete(reg.rooms, roomID)
	}
}

// RemoveParticipant pulls a departing connection out of every room it
// belongs to. Emptied rooms are deleted; the rest are returned so the
// caller can notify the remaining participant and settle any match in
// progress.
func (reg *RoomRegistry) RemoveParticipant(clientID string) (affected []*Room) {
	for id, room := range reg.rooms {
		dst := room.Players[:0]
		left := false
		for _, p := range room.Players {
			if p.Client.id == clientID {
				left = true
				continue
			}
			dst = append(dst, p)
		}
		room.Players = dst

		if !left {
			continue
		}

		if len(room.Players) == 0 {
			room.stopReset()
			delete(reg.rooms, id)
			continue
		}

		affected = append(affected, room)
	}

	return affected
}
