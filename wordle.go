package main

import (
	"math/rand/v2"
)

const (
	wordleMaxAttempts = 5

	// Coin settlement for a finished word game. The loss penalty is
	// floored at a zero balance.
	wordleWinReward   = 3
	wordleLossPenalty = 1
)

// Feedback marks for one guess position.
const (
	markCorrect = "correct"
	markPresent = "present"
	markAbsent  = "absent"
)

// Built-in fallback when no wordlist entry matches the requested
// theme and difficulty.
var fallbackWord = WordEntry{Word: "MUNDO", Hint: "Nosso lar."}

// WordleSession is the per-connection word-guessing game state. The
// secret word never leaves the server until the game is over; clients
// only learn its length up front.
type WordleSession struct {
	Word        string
	Hint        string
	Length      int
	Attempts    int
	MaxAttempts int
	Revealed    []string
}

// difficultyFilter maps a difficulty tier to a word-length predicate.
// Unrecognized tiers behave like MEDIO.
func difficultyFilter(difficulty string) func(int) bool {
	switch difficulty {
	case "FACIL":
		return func(n int) bool { return n <= 4 }
	case "DIFICIL":
		return func(n int) bool { return n > 6 }
	default:
		return func(n int) bool { return n >= 4 && n <= 6 }
	}
}

// newWordleSession picks a word for the given theme and difficulty.
// Unknown themes fall back to the GERAL aggregate; an empty candidate
// set falls back to the built-in word. The secret is stored already
// normalized.
func newWordleSession(lists map[string][]WordEntry, theme, difficulty string) *WordleSession {
	fits := difficultyFilter(difficulty)

	pool, ok := lists[theme]
	if !ok {
		pool = lists[aggregateTheme]
	}

	var candidates []WordEntry
	for _, entry := range pool {
		if fits(len(normalizeWord(entry.Word))) {
			candidates = append(candidates, entry)
		}
	}

	selected := fallbackWord
	if len(candidates) > 0 {
		selected = candidates[rand.IntN(len(candidates))]
	}

	word := normalizeWord(selected.Word)

	return &WordleSession{
		Word:        word,
		Hint:        selected.Hint,
		Length:      len(word),
		MaxAttempts: wordleMaxAttempts,
		Revealed:    []string{},
	}
}

// scoreGuess computes per-position feedback with the multiset-aware
// two-pass algorithm: exact matches first, consuming from the
// secret's letter counts, then presence checks against whatever
// counts remain. A repeated guess letter is marked present only as
// many times as it is still unaccounted for in the secret.
func scoreGuess(secret, guess string) []string {
	feedback := make([]string, len(secret))
	for i := range feedback {
		feedback[i] = markAbsent
	}

	counts := map[byte]int{}
	for i := 0; i < len(secret); i++ {
		counts[secret[i]]++
	}

	for i := 0; i < len(secret); i++ {
		if guess[i] == secret[i] {
			feedback[i] = markCorrect
			counts[guess[i]]--
		}
	}

	for i := 0; i < len(secret); i++ {
		if feedback[i] == markCorrect {
			continue
		}
		if counts[guess[i]] > 0 {
			feedback[i] = markPresent
			counts[guess[i]]--
		}
	}

	return feedback
}

// Guess normalizes and evaluates one guess. It reports the feedback
// array and whether the guess consumed an attempt; a guess whose
// normalized length does not match the secret is dropped without
// touching the session. Input longer than the secret is truncated
// before the length check.
func (s *WordleSession) Guess(raw string) (guessed string, feedback []string, ok bool) {
	guessed = normalizeWord(raw)
	if len(guessed) > s.Length {
		guessed = guessed[:s.Length]
	}

	if len(guessed) != s.Length {
		return "", nil, false
	}

	s.Attempts++

	return guessed, scoreGuess(s.Word, guessed), true
}

// Won reports whether the given normalized guess matches the secret.
func (s *WordleSession) Won(guessed string) bool {
	return guessed == s.Word
}

// Lost reports whether the attempt budget is exhausted.
func (s *WordleSession) Lost() bool {
	return s.Attempts >= s.MaxAttempts
}

// Roulette draws a random count in [0, length] and reveals that many
// not-yet-revealed unique secret letters, without replacement. The
// message distinguishes the zero draw and the nothing-left case from
// a successful reveal.
func (s *WordleSession) Roulette() (letters []string, message string) {
	count := rand.IntN(s.Length + 1)
	if count == 0 {
		return []string{}, "zero"
	}

	seen := map[string]bool{}
	for _, letter := range s.Revealed {
		seen[letter] = true
	}

	var possible []string
	for _, letter := range uniqueLetters(s.Word) {
		if !seen[letter] {
			possible = append(possible, letter)
		}
	}

	if len(possible) == 0 {
		return []string{}, "all_revealed"
	}

	letters = []string{}
	for i := 0; i < count && len(possible) > 0; i++ {
		j := rand.IntN(len(possible))
		letter := possible[j]
		possible = append(possible[:j], possible[j+1:]...)
		letters = append(letters, letter)
		s.Revealed = append(s.Revealed, letter)
	}

	return letters, "success"
}

// uniqueLetters returns the distinct letters of word in first-seen order.
func uniqueLetters(word string) []string {
	seen := map[rune]bool{}
	var out []string
	for _, r := range word {
		if !seen[r] {
			seen[r] = true
			out = append(out, string(r))
		}
	}
	return out
}
