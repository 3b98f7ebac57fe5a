package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWord(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"mundo", "MUNDO"},
		{"Coração", "CORACAO"},
		{"maçã", "MACA"},
		{"pão-de-ló", "PAODELO"},
		{"água 123", "AGUA"},
		{"ÉÍÓÚÀÃÕ", "EIOUAAO"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeWord(tt.in), "normalizeWord(%q)", tt.in)
	}
}

func TestWordBankLoad(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "animais.json"),
		[]byte(`[{"word":"gato","hint":"mia"},{"word":"cão","hint":"late"}]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "comidas.json"),
		[]byte(`[{"word":"feijão","hint":"com arroz"}]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quebrado.json"),
		[]byte(`{nope`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignorado.txt"),
		[]byte(`not a list`), 0o644))

	bank := NewWordBank(dir, zerolog.Nop())
	lists := bank.Load()

	assert.Len(t, lists["ANIMAIS"], 2)
	assert.Len(t, lists["COMIDAS"], 1)
	assert.NotContains(t, lists, "QUEBRADO")
	assert.NotContains(t, lists, "IGNORADO")

	// GERAL aggregates every theme.
	assert.Len(t, lists[aggregateTheme], 3)
}

func TestWordBankLoadMissingDir(t *testing.T) {
	bank := NewWordBank(filepath.Join(t.TempDir(), "nada"), zerolog.Nop())
	lists := bank.Load()

	assert.Empty(t, lists[aggregateTheme])

	// The word game still works: selection falls back to the
	// built-in word.
	s := newWordleSession(lists, "QUALQUER", "MEDIO")
	assert.Equal(t, "MUNDO", s.Word)
}
