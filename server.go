package main

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type clientEvent struct {
	client *Client
	msg    ClientMessage
}

// Server owns every room, game, and connection session. A single
// goroutine (run) processes connects, disconnects, client messages,
// and fired reset timers strictly sequentially, so no two actions on
// the same room or game ever interleave mid-mutation. The only
// blocking wait anywhere is the post-game reset delay, which is
// scheduled as a timer that posts back into the loop.
type Server struct {
	cfg     *Config
	logger  zerolog.Logger
	store   *Store
	catalog *Catalog
	words   *WordBank
	rooms   *RoomRegistry

	clients map[*Client]bool

	register chan *Client
	unreg    chan *Client
	events   chan clientEvent
	resets   chan string
	quit     chan struct{}
}

func NewServer(cfg *Config, logger zerolog.Logger, store *Store) *Server {
	return &Server{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		catalog:  NewCatalog(cfg.characters),
		words:    NewWordBank(cfg.wordlists, logger),
		rooms:    NewRoomRegistry(),
		clients:  make(map[*Client]bool),
		register: make(chan *Client),
		unreg:    make(chan *Client),
		events:   make(chan clientEvent),
		resets:   make(chan string),
		quit:     make(chan struct{}),
	}
}

func (s *Server) run(ctx context.Context) {
	defer close(s.quit)

	for {
		select {
		case c := <-s.register:
			s.clients[c] = true
			s.logger.Debug().Str("client", c.id).Msg("client connected")

		case c := <-s.unreg:
			s.handleDisconnect(c)

		case ev := <-s.events:
			s.dispatch(ev.client, ev.msg)

		case roomID := <-s.resets:
			s.handleRoomReset(roomID)

		case <-ctx.Done():
			return
		}
	}
}

// dispatch routes one validated client message. Everything below
// login requires a bound user; unauthenticated or unknown messages
// are dropped.
func (s *Server) dispatch(c *Client, msg ClientMessage) {
	if msg.Type == "login" {
		s.handleLogin(c, msg)
		return
	}

	if c.username == "" {
		s.logger.Debug().Str("client", c.id).Str("type", msg.Type).Msg("dropping message from unauthenticated client")
		return
	}

	switch msg.Type {
	case "get_data":
		s.handleGetData(c)
	case "buy_avatar":
		s.handleBuyAvatar(c, msg)
	case "equip_avatar":
		s.handleEquipAvatar(c, msg)
	case "create_room":
		s.handleCreateRoom(c, msg)
	case "join_room":
		s.handleJoinRoom(c, msg)
	case "req_refresh_rooms":
		s.trySend(c, UpdateRoomsMessage{Type: "update_rooms", Rooms: s.rooms.List()})
	case "game_action_eliminate":
		s.handleEliminate(c, msg)
	case "game_finish_turn":
		s.handleFinishTurn(c, msg)
	case "start_wordle_game":
		s.handleWordleStart(c, msg)
	case "wordle_submit_guess":
		s.handleWordleGuess(c, msg)
	case "wordle_request_hint":
		s.handleWordleHint(c)
	case "wordle_request_roulette":
		s.handleWordleRoulette(c)
	default:
		// ignore unknown types
	}
}

// trySend delivers without blocking the loop; a client whose buffer
// is full is dropped, same as any other disconnect.
func (s *Server) trySend(c *Client, msg any) {
	if _, ok := s.clients[c]; !ok {
		return
	}

	select {
	case c.send <- msg:
	default:
		delete(s.clients, c)
		close(c.send)
	}
}

// broadcastRooms pushes the lobby listing to every logged-in client.
func (s *Server) broadcastRooms() {
	listing := UpdateRoomsMessage{Type: "update_rooms", Rooms: s.rooms.List()}
	for c := range s.clients {
		if c.username != "" {
			s.trySend(c, listing)
		}
	}
}

// broadcastRoom sends a message to every participant of a room.
func (s *Server) broadcastRoom(room *Room, msg any) {
	for _, p := range room.Players {
		s.trySend(p.Client, msg)
	}
}

func (s *Server) handleLogin(c *Client, msg ClientMessage) {
	if msg.Username == "" {
		return
	}

	defaultAvatar := ""
	if chars, err := s.catalog.Scan(); err == nil && len(chars) > 0 {
		defaultAvatar = chars[0].Name
	}

	user, err := s.store.Login(msg.Username, msg.Password, defaultAvatar)
	if err != nil {
		s.trySend(c, errorMsg("Senha incorreta"))
		return
	}

	c.username = user.Username
	s.logger.Info().Str("user", user.Username).Str("client", c.id).Msg("login")

	s.trySend(c, LoginSuccessMessage{Type: "login_success", User: user})
	s.broadcastRooms()
}

func (s *Server) handleCreateRoom(c *Client, msg ClientMessage) {
	user, err := s.store.Get(c.username)
	if err != nil {
		return
	}

	room := s.rooms.Create(c, user, msg.Name)
	s.logger.Info().Str("room", room.ID).Str("user", c.username).Msg("room created")

	s.trySend(c, RoomJoinedMessage{Type: "room_joined", RoomID: room.ID, IsHost: true})
	s.broadcastRooms()
}

func (s *Server) handleJoinRoom(c *Client, msg ClientMessage) {
	user, err := s.store.Get(c.username)
	if err != nil {
		return
	}

	room, err := s.rooms.Join(msg.RoomID, c, user)
	if err != nil {
		s.trySend(c, errorMsg("Sala cheia ou inexistente"))
		return
	}

	s.logger.Info().Str("room", room.ID).Str("user", c.username).Msg("room joined")

	s.trySend(c, RoomJoinedMessage{Type: "room_joined", RoomID: room.ID})
	s.broadcastRoom(room, roomUpdate(room))

	if len(room.Players) == 2 {
		s.startMatch(room)
	}

	s.broadcastRooms()
}

func roomUpdate(room *Room) RoomUpdateMessage {
	msg := RoomUpdateMessage{
		Type:  "room_update",
		ID:    room.ID,
		Name:  room.Name,
		State: room.State,
	}
	for _, p := range room.Players {
		msg.Players = append(msg.Players, RoomPlayer{
			ID:     p.Client.id,
			Name:   p.User.Username,
			Avatar: p.User.Avatar,
		})
	}
	return msg
}

// startMatch draws the board and secrets when a room fills up. With
// fewer than ten characters on disk there is nothing to deal from, so
// the room is told and stays waiting.
func (s *Server) startMatch(room *Room) {
	chars, err := s.catalog.Scan()
	if err != nil || len(chars) < boardSize {
		s.broadcastRoom(room, errorMsg("Faltam personagens na pasta para jogar!"))
		return
	}

	p1 := room.Players[0]
	p2 := room.Players[1]

	room.Game = newGame(chars,
		&GamePlayer{ID: p1.Client.id, Name: p1.User.Username, Avatar: p1.User.Avatar},
		&GamePlayer{ID: p2.Client.id, Name: p2.User.Username, Avatar: p2.User.Avatar},
	)
	room.State = roomPlaying

	s.logger.Info().Str("room", room.ID).Str("p1", p1.User.Username).Str("p2", p2.User.Username).Msg("match started")

	start := GameStartMessage{
		Type:       "game_start",
		Characters: room.Game.Characters,
		Turn:       room.Game.Turn,
	}
	start.Players.P1 = RoomPlayer{ID: p1.Client.id, Name: p1.User.Username, Avatar: p1.User.Avatar}
	start.Players.P2 = RoomPlayer{ID: p2.Client.id, Name: p2.User.Username, Avatar: p2.User.Avatar}
	s.broadcastRoom(room, start)

	s.trySend(p1.Client, YourSecretMessage{Type: "your_secret", Character: room.Game.P1.Secret})
	s.trySend(p2.Client, YourSecretMessage{Type: "your_secret", Character: room.Game.P2.Secret})
}

func (s *Server) handleEliminate(c *Client, msg ClientMessage) {
	room := s.rooms.Get(msg.RoomID)
	if room == nil || room.State != roomPlaying {
		return
	}

	eliminated, ok := room.Game.ToggleEliminate(c.id, msg.CharName)
	if !ok {
		s.logger.Debug().Str("room", room.ID).Str("client", c.id).Msg("out-of-turn elimination dropped")
		return
	}

	// The board update goes only to the actor; eliminations are private.
	s.trySend(c, UpdateBoardMessage{Type: "update_board", Eliminated: eliminated})

	if winnerID, over := room.Game.CheckWin(c.id); over {
		s.finishMatch(room, winnerID)
	}
}

func (s *Server) handleFinishTurn(c *Client, msg ClientMessage) {
	room := s.rooms.Get(msg.RoomID)
	if room == nil || room.State != roomPlaying {
		return
	}

	next, ok := room.Game.PassTurn(c.id)
	if !ok {
		s.logger.Debug().Str("room", room.ID).Str("client", c.id).Msg("out-of-turn pass dropped")
		return
	}

	s.broadcastRoom(room, TurnChangeMessage{Type: "turn_change", Turn: next})
}

// finishMatch pays the winner, reveals both secrets to the room, and
// schedules the return to waiting.
func (s *Server) finishMatch(room *Room, winnerID string) {
	room.State = roomFinished

	game := room.Game
	winner := game.player(winnerID)

	if p := room.participant(winnerID); p != nil {
		if _, err := s.store.Credit(p.User.Username, winBounty); err != nil {
			s.logger.Error().Err(err).Str("user", p.User.Username).Msg("failed to credit win bounty")
		}
	}

	s.logger.Info().Str("room", room.ID).Str("winner", winner.Name).Msg("match finished")

	s.broadcastRoom(room, GameOverMessage{
		Type:       "game_over",
		WinnerName: winner.Name,
		WinnerID:   winnerID,
		P1Secret:   game.P1.Secret,
		P2Secret:   game.P2.Secret,
		P1ID:       game.P1.ID,
		P2ID:       game.P2.ID,
	})

	roomID := room.ID
	room.resetTimer = time.AfterFunc(s.cfg.resetDelay, func() {
		s.postReset(roomID)
	})
}

// postReset hands a fired reset timer to the event loop. A timer that
// outlives the loop must not leave its goroutine stuck on the send.
func (s *Server) postReset(roomID string) {
	select {
	case s.resets <- roomID:
	case <-s.quit:
	}
}

// handleRoomReset fires when a finished room's delay elapses. The
// room may have been torn down or forfeited in the meantime.
func (s *Server) handleRoomReset(roomID string) {
	room := s.rooms.Get(roomID)
	if room == nil || room.State != roomFinished {
		return
	}

	room.State = roomWaiting
	room.Game = nil
	room.resetTimer = nil

	s.broadcastRoom(room, RoomResetMessage{Type: "room_reset"})
}

// handleDisconnect tears down a connection's session state. A match
// the departing client was part of is forfeited: the game instance is
// cleared and the room returns to waiting rather than holding a
// one-player game open.
func (s *Server) handleDisconnect(c *Client) {
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}

	c.wordle = nil

	for _, room := range s.rooms.RemoveParticipant(c.id) {
		s.broadcastRoom(room, PlayerLeftMessage{Type: "player_left"})

		if room.Game != nil {
			room.stopReset()
			room.Game = nil
			room.State = roomWaiting
			s.broadcastRoom(room, RoomResetMessage{Type: "room_reset"})
		}
	}

	s.logger.Debug().Str("client", c.id).Msg("client disconnected")
	s.broadcastRooms()
}

func (s *Server) handleWordleStart(c *Client, msg ClientMessage) {
	lists := s.words.Load()
	c.wordle = newWordleSession(lists, msg.Theme, msg.Difficulty)

	s.trySend(c, WordleStartedMessage{Type: "wordle_game_started", Length: c.wordle.Length})
}

func (s *Server) handleWordleGuess(c *Client, msg ClientMessage) {
	if c.wordle == nil {
		return
	}

	guessed, feedback, ok := c.wordle.Guess(msg.Guess)
	if !ok {
		s.logger.Debug().Str("client", c.id).Msg("malformed guess length dropped")
		return
	}

	s.trySend(c, WordleGuessResultMessage{
		Type:         "wordle_guess_result",
		GuessedWord:  guessed,
		Feedback:     feedback,
		AttemptIndex: c.wordle.Attempts - 1,
	})

	switch {
	case c.wordle.Won(guessed):
		s.finishWordle(c, true)
	case c.wordle.Lost():
		s.finishWordle(c, false)
	}
}

func (s *Server) handleWordleHint(c *Client) {
	if c.wordle == nil {
		return
	}

	s.trySend(c, WordleHintMessage{Type: "wordle_hint_response", Hint: c.wordle.Hint})
}

func (s *Server) handleWordleRoulette(c *Client) {
	if c.wordle == nil {
		return
	}

	letters, message := c.wordle.Roulette()
	s.trySend(c, WordleRouletteMessage{Type: "wordle_roulette_response", Letters: letters, Message: message})
}

// finishWordle settles the coin reward or penalty, reveals the
// secret, and clears the session.
func (s *Server) finishWordle(c *Client, win bool) {
	var (
		user UserRecord
		err  error
	)
	if win {
		user, err = s.store.Credit(c.username, wordleWinReward)
	} else {
		user, err = s.store.DebitFloor(c.username, wordleLossPenalty)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("user", c.username).Msg("failed to settle word game")
	} else {
		s.trySend(c, UpdateDataMessage{Type: "update_data", User: user})
	}

	s.trySend(c, WordleGameOverMessage{
		Type:       "wordle_game_over",
		Win:        win,
		SecretWord: c.wordle.Word,
	})

	c.wordle = nil
}
