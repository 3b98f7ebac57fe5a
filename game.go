package main

import (
	"math/rand/v2"
)

// winBounty is the coin award for winning a deduction match.
const winBounty = 20

// boardSize is how many characters are drawn into a match's shared pool.
const boardSize = 10

// GamePlayer is one participant's private game state.
type GamePlayer struct {
	ID         string
	Name       string
	Avatar     AvatarRef
	Secret     Character
	Eliminated []string
}

// Game is one deduction match: a shared 10-character board, each
// participant's secret and personal elimination set, and a single
// turn field naming whoever may act. Secrets are drawn independently
// from the board with replacement, so both players can share a
// secret; that is intentional.
type Game struct {
	Characters []Character
	P1         *GamePlayer
	P2         *GamePlayer
	Turn       string
}

// newGame shuffles the catalog, takes the first boardSize characters,
// and draws both secrets from that board. The first-joined
// participant acts first.
func newGame(catalog []Character, p1, p2 *GamePlayer) *Game {
	board := make([]Character, len(catalog))
	copy(board, catalog)
	rand.Shuffle(len(board), func(i, j int) {
		board[i], board[j] = board[j], board[i]
	})
	board = board[:boardSize]

	p1.Secret = board[rand.IntN(len(board))]
	p2.Secret = board[rand.IntN(len(board))]
	p1.Eliminated = []string{}
	p2.Eliminated = []string{}

	return &Game{
		Characters: board,
		P1:         p1,
		P2:         p2,
		Turn:       p1.ID,
	}
}

// player returns the participant with the given id, or nil.
func (g *Game) player(id string) *GamePlayer {
	switch id {
	case g.P1.ID:
		return g.P1
	case g.P2.ID:
		return g.P2
	default:
		return nil
	}
}

// opponent returns the other participant, or nil for an unknown id.
func (g *Game) opponent(id string) *GamePlayer {
	switch id {
	case g.P1.ID:
		return g.P2
	case g.P2.ID:
		return g.P1
	default:
		return nil
	}
}

// ToggleEliminate flips charName in the actor's elimination set and
// returns the updated set. Toggling twice restores the prior set.
// Returns ok=false without mutating anything when the actor is
// unknown or does not hold the turn.
func (g *Game) ToggleEliminate(actorID, charName string) (eliminated []string, ok bool) {
	if g.Turn != actorID {
		return nil, false
	}

	actor := g.player(actorID)
	if actor == nil {
		return nil, false
	}

	found := false
	for i, name := range actor.Eliminated {
		if name == charName {
			actor.Eliminated = append(actor.Eliminated[:i], actor.Eliminated[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		actor.Eliminated = append(actor.Eliminated, charName)
	}

	return actor.Eliminated, true
}

// remaining lists the board characters the player has not eliminated.
func (g *Game) remaining(p *GamePlayer) []Character {
	out := make([]Character, 0, len(g.Characters))
	for _, c := range g.Characters {
		eliminated := false
		for _, name := range p.Eliminated {
			if name == c.Name {
				eliminated = true
				break
			}
		}
		if !eliminated {
			out = append(out, c)
		}
	}
	return out
}

// CheckWin evaluates the win condition for the acting participant
// only, in order: exactly one remaining character that equals the
// opponent's secret wins for the actor; the opponent's secret missing
// from the actor's remaining set means the actor eliminated the true
// answer and the opponent wins instead. At most one rule fires.
func (g *Game) CheckWin(actorID string) (winnerID string, over bool) {
	actor := g.player(actorID)
	opp := g.opponent(actorID)
	if actor == nil || opp == nil {
		return "", false
	}

	remaining := g.remaining(actor)

	if len(remaining) == 1 && remaining[0].Name == opp.Secret.Name {
		return actorID, true
	}

	for _, c := range remaining {
		if c.Name == opp.Secret.Name {
			return "", false
		}
	}

	return opp.ID, true
}

// PassTurn hands the turn to the other participant. No win check runs
// on a pass. Returns the new turn holder, or ok=false when the actor
// does not hold the turn.
func (g *Game) PassTurn(actorID string) (next string, ok bool) {
	if g.Turn != actorID {
		return "", false
	}

	opp := g.opponent(actorID)
	if opp == nil {
		return "", false
	}

	g.Turn = opp.ID

	return opp.ID, true
}
