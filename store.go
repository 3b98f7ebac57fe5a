package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

var (
	errAlreadyOwned      = errors.New("item already owned")
	errInsufficientFunds = errors.New("moedas insuficientes")
	errUnknownUser       = errors.New("unknown user")
	errWrongPassword     = errors.New("senha incorreta")
)

// AvatarRef identifies an equipped or purchasable cosmetic:
// a character name plus a level (0 is the original art, always owned).
type AvatarRef struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type UserRecord struct {
	Username  string      `json:"username"`
	Password  string      `json:"password"`
	Coins     int         `json:"coins"`
	Inventory []AvatarRef `json:"inventory"`
	Avatar    AvatarRef   `json:"avatar"`
}

type database struct {
	Users []UserRecord `json:"users"`
}

// Store is the flat-file user repository. The whole database is kept
// in memory and rewritten to disk after every mutation, before any
// acknowledgment is sent. Reads hand out copies; callers never hold
// references into the store.
type Store struct {
	mu   sync.Mutex
	path string
	db   database
}

// OpenStore loads the database file, creating an empty one if it does
// not exist yet.
func OpenStore(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := s.save(); err != nil {
			return nil, fmt.Errorf("creating user database: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("reading user database: %w", err)
	default:
		if err := json.Unmarshal(data, &s.db); err != nil {
			return nil, fmt.Errorf("parsing user database: %w", err)
		}
	}

	return s, nil
}

// save assumes s.mu is already held (or that no other goroutine can
// see the store yet).
func (s *Store) save() error {
	data, err := json.MarshalIndent(&s.db, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o644)
}

func (s *Store) findLocked(username string) int {
	for i := range s.db.Users {
		if s.db.Users[i].Username == username {
			return i
		}
	}
	return -1
}

// Login authenticates a user, registering them on first sight. New
// users start with zero coins, an empty inventory, and defaultAvatar
// at level 0 (empty when no characters exist). Passwords are compared
// verbatim against the stored value.
func (s *Store) Login(username, password, defaultAvatar string) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLocked(username)
	if idx == -1 {
		user := UserRecord{
			Username:  username,
			Password:  password,
			Inventory: []AvatarRef{},
			Avatar:    AvatarRef{Name: defaultAvatar},
		}
		s.db.Users = append(s.db.Users, user)
		if err := s.save(); err != nil {
			return UserRecord{}, err
		}
		return user, nil
	}

	if s.db.Users[idx].Password != password {
		return UserRecord{}, errWrongPassword
	}

	return s.db.Users[idx], nil
}

// Get returns a copy of the user's current record.
func (s *Store) Get(username string) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLocked(username)
	if idx == -1 {
		return UserRecord{}, errUnknownUser
	}

	return s.db.Users[idx], nil
}

// Credit adds coins unconditionally.
func (s *Store) Credit(username string, amount int) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLocked(username)
	if idx == -1 {
		return UserRecord{}, errUnknownUser
	}

	s.db.Users[idx].Coins += amount
	if err := s.save(); err != nil {
		return UserRecord{}, err
	}

	return s.db.Users[idx], nil
}

// DebitFloor removes up to amount coins, never dropping below zero.
func (s *Store) DebitFloor(username string, amount int) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLocked(username)
	if idx == -1 {
		return UserRecord{}, errUnknownUser
	}

	s.db.Users[idx].Coins -= amount
	if s.db.Users[idx].Coins < 0 {
		s.db.Users[idx].Coins = 0
	}
	if err := s.save(); err != nil {
		return UserRecord{}, err
	}

	return s.db.Users[idx], nil
}

// Purchase charges cost and records the item. The balance is checked
// before ownership, so a short balance fails with errInsufficientFunds
// even for an already-owned item; a repeat purchase with sufficient
// funds is errAlreadyOwned and changes nothing.
func (s *Store) Purchase(username string, item AvatarRef, cost int) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLocked(username)
	if idx == -1 {
		return UserRecord{}, errUnknownUser
	}

	user := &s.db.Users[idx]

	if user.Coins < cost {
		return UserRecord{}, errInsufficientFunds
	}

	for _, owned := range user.Inventory {
		if owned == item {
			return UserRecord{}, errAlreadyOwned
		}
	}

	user.Coins -= cost
	user.Inventory = append(user.Inventory, item)
	if err := s.save(); err != nil {
		return UserRecord{}, err
	}

	return *user, nil
}

// Equip sets the active avatar. Level 0 is always owned; ownership of
// higher levels was established at purchase time.
func (s *Store) Equip(username string, avatar AvatarRef) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLocked(username)
	if idx == -1 {
		return UserRecord{}, errUnknownUser
	}

	s.db.Users[idx].Avatar = avatar
	if err := s.save(); err != nil {
		return UserRecord{}, err
	}

	return s.db.Users[idx], nil
}
