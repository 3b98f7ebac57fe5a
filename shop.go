package main

import (
	"errors"
)

// avatarPrices is the coin cost per cosmetic level. Level 0 is the
// original art and is never sold.
var avatarPrices = map[int]int{
	1: 50,
	2: 100,
	3: 150,
	4: 300,
	5: 600,
}

func (s *Server) handleGetData(c *Client) {
	user, err := s.store.Get(c.username)
	if err != nil {
		return
	}

	var catalog []CatalogEntry
	if chars, err := s.catalog.Scan(); err == nil {
		catalog = make([]CatalogEntry, 0, len(chars))
		for _, char := range chars {
			catalog = append(catalog, CatalogEntry{
				Character:       char,
				LevelsAvailable: s.catalog.AvailableLevels(char.Name),
			})
		}
	}

	s.trySend(c, UpdateDataMessage{
		Type:    "update_data",
		User:    user,
		Catalog: catalog,
		Prices:  avatarPrices,
	})
}

func (s *Server) handleBuyAvatar(c *Client, msg ClientMessage) {
	cost, ok := avatarPrices[msg.Level]
	if !ok {
		s.logger.Debug().Str("client", c.id).Int("level", msg.Level).Msg("purchase with unknown level dropped")
		return
	}

	user, err := s.store.Purchase(c.username, AvatarRef{Name: msg.CharName, Level: msg.Level}, cost)
	switch {
	case errors.Is(err, errAlreadyOwned):
		// No second charge, no ack.
		s.logger.Debug().Str("user", c.username).Str("char", msg.CharName).Int("level", msg.Level).Msg("repeat purchase dropped")
		return
	case err != nil:
		s.trySend(c, errorMsg("Moedas insuficientes!"))
		return
	}

	s.trySend(c, PurchaseSuccessMessage{Type: "purchase_success", User: user})
	s.trySend(c, UpdateDataMessage{Type: "update_data", User: user})
}

func (s *Server) handleEquipAvatar(c *Client, msg ClientMessage) {
	user, err := s.store.Equip(c.username, AvatarRef{Name: msg.CharName, Level: msg.Level})
	if err != nil {
		return
	}

	s.trySend(c, UpdateDataMessage{Type: "update_data", User: user})
}
