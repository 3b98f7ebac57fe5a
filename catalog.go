package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Character is one catalog entry, derived from an image asset's base
// filename under <characters>/original.
type Character struct {
	Name     string `json:"name"`
	Filename string `json:"filename"`
}

// Catalog scans the character image directory on demand. Nothing is
// cached: dropping a new image into the folder makes it playable on
// the next scan, same as the asset layout intends.
type Catalog struct {
	dir string
}

func NewCatalog(dir string) *Catalog {
	return &Catalog{dir: dir}
}

// Scan lists every character with level-0 art. Unknown extensions are
// skipped; results are sorted by filename for a stable first entry
// (the default avatar for new users).
func (c *Catalog) Scan() ([]Character, error) {
	entries, err := os.ReadDir(filepath.Join(c.dir, "original"))
	if err != nil {
		return nil, fmt.Errorf("scanning characters: %w", err)
	}

	var chars []Character
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".png" && ext != ".jpg" {
			continue
		}

		chars = append(chars, Character{
			Name:     strings.TrimSuffix(name, filepath.Ext(name)),
			Filename: name,
		})
	}

	sort.Slice(chars, func(i, j int) bool {
		return chars[i].Filename < chars[j].Filename
	})

	return chars, nil
}

// AvailableLevels reports which cosmetic levels exist for a character.
// Level 0 is the original art and is always present in the result;
// levels 1-5 require <characters>/level/<n>/<name>.png on disk.
func (c *Catalog) AvailableLevels(name string) []int {
	levels := []int{0}

	for i := 1; i <= 5; i++ {
		path := filepath.Join(c.dir, "level", strconv.Itoa(i), name+".png")
		if _, err := os.Stat(path); err == nil {
			levels = append(levels, i)
		}
	}

	return levels
}
