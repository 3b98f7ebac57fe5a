package main

// Messages coming from clients. One envelope covers every inbound
// event; unused fields stay empty and each handler validates what it
// needs before acting.
type ClientMessage struct {
	Type       string `json:"type"`                 // "login", "get_data", "buy_avatar", "equip_avatar", "create_room", "join_room", "req_refresh_rooms", "game_action_eliminate", "game_finish_turn", "start_wordle_game", "wordle_submit_guess", "wordle_request_hint", "wordle_request_roulette"
	Username   string `json:"username,omitempty"`   // login
	Password   string `json:"password,omitempty"`   // login
	Name       string `json:"name,omitempty"`       // create_room
	RoomID     string `json:"roomId,omitempty"`     // join_room / game actions
	CharName   string `json:"charName,omitempty"`   // buy_avatar / equip_avatar / game_action_eliminate
	Level      int    `json:"level,omitempty"`      // buy_avatar / equip_avatar
	Theme      string `json:"theme,omitempty"`      // start_wordle_game
	Difficulty string `json:"difficulty,omitempty"` // start_wordle_game
	Guess      string `json:"guess,omitempty"`      // wordle_submit_guess
}

// ErrorMessage carries a user-visible failure.
type ErrorMessage struct {
	Type    string `json:"type"` // "error_msg"
	Message string `json:"message"`
}

func errorMsg(text string) ErrorMessage {
	return ErrorMessage{Type: "error_msg", Message: text}
}

// LoginSuccessMessage acknowledges authentication with the full user
// record, matching what the store persists.
type LoginSuccessMessage struct {
	Type string     `json:"type"` // "login_success"
	User UserRecord `json:"user"`
}

// CatalogEntry enriches a character with the cosmetic levels that
// exist on disk for it.
type CatalogEntry struct {
	Character
	LevelsAvailable []int `json:"levelsAvailable"`
}

// UpdateDataMessage syncs profile and shop state. Catalog and prices
// are only populated on get_data; coin and inventory updates send the
// user alone.
type UpdateDataMessage struct {
	Type    string         `json:"type"` // "update_data"
	User    UserRecord     `json:"user"`
	Catalog []CatalogEntry `json:"catalog,omitempty"`
	Prices  map[int]int    `json:"prices,omitempty"`
}

// PurchaseSuccessMessage acknowledges a completed avatar purchase.
type PurchaseSuccessMessage struct {
	Type string     `json:"type"` // "purchase_success"
	User UserRecord `json:"user"`
}

// UpdateRoomsMessage is the lobby listing broadcast.
type UpdateRoomsMessage struct {
	Type  string        `json:"type"` // "update_rooms"
	Rooms []RoomSummary `json:"rooms"`
}

// RoomJoinedMessage confirms room entry to the joining client.
type RoomJoinedMessage struct {
	Type   string `json:"type"` // "room_joined"
	RoomID string `json:"roomId"`
	IsHost bool   `json:"isHost,omitempty"`
}

// RoomPlayer is the public view of a participant inside a room.
type RoomPlayer struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Avatar AvatarRef `json:"avatar"`
}

// RoomUpdateMessage is broadcast to a room when its roster changes.
type RoomUpdateMessage struct {
	Type    string       `json:"type"` // "room_update"
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	State   string       `json:"state"`
	Players []RoomPlayer `json:"players"`
}

// GameStartMessage announces a match: the shared board, whose turn it
// is, and both players' public info for the HUD. Secrets travel
// separately, one per participant.
type GameStartMessage struct {
	Type       string      `json:"type"` // "game_start"
	Characters []Character `json:"characters"`
	Turn       string      `json:"turn"`
	Players    struct {
		P1 RoomPlayer `json:"p1"`
		P2 RoomPlayer `json:"p2"`
	} `json:"players"`
}

// YourSecretMessage privately discloses a participant's own secret.
type YourSecretMessage struct {
	Type      string    `json:"type"` // "your_secret"
	Character Character `json:"character"`
}

// UpdateBoardMessage syncs the acting player's elimination set back
// to them only; the opponent never sees it.
type UpdateBoardMessage struct {
	Type       string   `json:"type"` // "update_board"
	Eliminated []string `json:"eliminated"`
}

// TurnChangeMessage announces the new turn holder to the room.
type TurnChangeMessage struct {
	Type string `json:"type"` // "turn_change"
	Turn string `json:"turn"`
}

// GameOverMessage reveals both secrets and the winner to the room.
type GameOverMessage struct {
	Type       string    `json:"type"` // "game_over"
	WinnerName string    `json:"winnerName"`
	WinnerID   string    `json:"winnerId"`
	P1Secret   Character `json:"p1Secret"`
	P2Secret   Character `json:"p2Secret"`
	P1ID       string    `json:"p1Id"`
	P2ID       string    `json:"p2Id"`
}

// RoomResetMessage tells a room it is back to waiting.
type RoomResetMessage struct {
	Type string `json:"type"` // "room_reset"
}

// PlayerLeftMessage tells remaining participants a peer disconnected.
type PlayerLeftMessage struct {
	Type string `json:"type"` // "player_left"
}

// WordleStartedMessage discloses only the secret word's length.
type WordleStartedMessage struct {
	Type   string `json:"type"` // "wordle_game_started"
	Length int    `json:"length"`
}

// WordleGuessResultMessage returns per-position feedback for a guess.
type WordleGuessResultMessage struct {
	Type         string   `json:"type"` // "wordle_guess_result"
	GuessedWord  string   `json:"guessedWord"`
	Feedback     []string `json:"feedback"`
	AttemptIndex int      `json:"attemptIndex"`
}

// WordleHintMessage discloses the selected word's hint string.
type WordleHintMessage struct {
	Type string `json:"type"` // "wordle_hint_response"
	Hint string `json:"hint"`
}

// WordleRouletteMessage discloses randomly revealed secret letters.
// Message is "zero" for an empty draw, "all_revealed" when nothing is
// left to reveal, "success" otherwise.
type WordleRouletteMessage struct {
	Type    string   `json:"type"` // "wordle_roulette_response"
	Letters []string `json:"letters"`
	Message string   `json:"message"`
}

// WordleGameOverMessage closes a word game, revealing the secret.
type WordleGameOverMessage struct {
	Type       string `json:"type"` // "wordle_game_over"
	Win        bool   `json:"win"`
	SecretWord string `json:"secretWord"`
}
