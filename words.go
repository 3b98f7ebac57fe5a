package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// aggregateTheme is the pseudo-theme holding the union of every list.
const aggregateTheme = "GERAL"

type WordEntry struct {
	Word string `json:"word"`
	Hint string `json:"hint"`
}

// WordBank loads themed word lists from a directory of JSON files,
// one list per theme, theme key = uppercased file stem.
type WordBank struct {
	dir    string
	logger zerolog.Logger
}

func NewWordBank(dir string, logger zerolog.Logger) *WordBank {
	return &WordBank{dir: dir, logger: logger}
}

// Load reads every wordlist and derives the GERAL aggregate. A missing
// directory or an unreadable list is not fatal; the caller falls back
// to the built-in word when nothing matches.
func (b *WordBank) Load() map[string][]WordEntry {
	lists := map[string][]WordEntry{}

	entries, err := os.ReadDir(b.dir)
	if err != nil {
		lists[aggregateTheme] = nil
		return lists
	}

	var all []WordEntry
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(b.dir, name))
		if err != nil {
			b.logger.Warn().Err(err).Str("file", name).Msg("skipping wordlist")
			continue
		}

		var list []WordEntry
		if err := json.Unmarshal(data, &list); err != nil {
			b.logger.Warn().Err(err).Str("file", name).Msg("skipping wordlist")
			continue
		}

		theme := strings.ToUpper(strings.TrimSuffix(name, ".json"))
		lists[theme] = list
		all = append(all, list...)
	}

	lists[aggregateTheme] = all

	return lists
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeWord decomposes accented characters to their base letter,
// drops everything that is not an ASCII letter, and uppercases.
// "Coração" normalizes to "CORACAO".
func normalizeWord(s string) string {
	flat, _, err := transform.String(stripMarks, s)
	if err != nil {
		flat = s
	}

	var sb strings.Builder
	for _, r := range flat {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			sb.WriteRune(unicode.ToUpper(r))
		}
	}

	return sb.String()
}
