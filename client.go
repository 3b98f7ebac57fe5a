package main

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/gorilla/websocket"
)

// Client is one websocket connection plus its per-connection session
// state: the logged-in username (empty before login) and the optional
// word game. Session fields are owned by the server event loop; the
// pumps only move messages.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan any

	username string
	wordle   *WordleSession
}

// newClientID generates the opaque per-connection identity used as a
// participant id in rooms and games.
func newClientID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		panic("crypto/rand failure: " + err.Error())
	}
	return hex.EncodeToString(buf)
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{
		id:   newClientID(),
		conn: conn,
		send: make(chan any, 16),
	}
}

// readPump forwards every inbound message to the server loop in
// emission order, then reports the disconnect.
func (c *Client) readPump(s *Server) {
	defer func() {
		s.unreg <- c
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		s.events <- clientEvent{client: c, msg: msg}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
