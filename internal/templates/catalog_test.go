package templates

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "raid.json", `{
		"roles": {
			"Tank":   {"emoji": "🛡️", "limit": 2},
			"Healer": {"emoji": "💚", "limit": 2},
			"DPS":    {"emoji": "⚔️", "limit": 6}
		}
	}`)
	writeFile(t, dir, "pvp.json", `{"roles": {"Fighter": {"emoji": "🗡️", "limit": 10}}}`)
	writeFile(t, dir, "broken.json", `{"roles": `)
	writeFile(t, dir, "zero-limit.json", `{"roles": {"Tank": {"emoji": "🛡️", "limit": 0}}}`)
	writeFile(t, dir, "empty.json", `{"roles": {}}`)
	writeFile(t, dir, "notes.txt", `not a template`)

	catalog, err := Load(dir, log.New(io.Discard))
	require.NoError(t, err)

	// Malformed and non-JSON files are skipped, the rest load.
	assert.Equal(t, 2, catalog.Len())
	assert.Equal(t, []string{"pvp", "raid"}, catalog.Names())

	_, ok := catalog.Get("broken")
	assert.False(t, ok)

	raid, ok := catalog.Get("raid")
	require.True(t, ok)
	assert.Equal(t, "raid", raid.Name)
	require.Len(t, raid.Roles, 3)
	assert.Equal(t, "Tank", raid.Roles[0].Name)
	assert.Equal(t, 2, raid.Roles[0].Limit)
	assert.Equal(t, "⚔️", raid.Roles[2].Emoji)
}

func TestLoadPreservesDeclaredRoleOrder(t *testing.T) {
	dir := t.TempDir()
	// Declared order is not alphabetical; it must survive the decode.
	writeFile(t, dir, "ordered.json", `{
		"roles": {
			"Zulu":  {"emoji": "🇿", "limit": 1},
			"Mike":  {"emoji": "🇲", "limit": 1},
			"Alpha": {"emoji": "🇦", "limit": 1}
		}
	}`)

	catalog, err := Load(dir, log.New(io.Discard))
	require.NoError(t, err)

	tmpl, ok := catalog.Get("ordered")
	require.True(t, ok)
	require.Len(t, tmpl.Roles, 3)
	assert.Equal(t, "Zulu", tmpl.Roles[0].Name)
	assert.Equal(t, "Mike", tmpl.Roles[1].Name)
	assert.Equal(t, "Alpha", tmpl.Roles[2].Name)
}

func TestLoadIgnoresUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "extra.json", `{
		"comment": "anything",
		"roles": {"Tank": {"emoji": "🛡️", "limit": 1}},
		"version": 2
	}`)

	catalog, err := Load(dir, log.New(io.Discard))
	require.NoError(t, err)
	tmpl, ok := catalog.Get("extra")
	require.True(t, ok)
	assert.Len(t, tmpl.Roles, 1)
}

func TestLoadMissingDirectory(t *testing.T) {
	catalog, err := Load(filepath.Join(t.TempDir(), "absent"), log.New(io.Discard))
	require.NoError(t, err)
	assert.Zero(t, catalog.Len())
	assert.Empty(t, catalog.Names())
}
