package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ORBITNAV_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 300, cfg.Menu.AnimationDurationMS)
	require.Equal(t, 2000, cfg.Menu.CloseDelayMS)
	require.True(t, cfg.Menu.AutoClose)
	require.True(t, cfg.Menu.EnableKeyboard)
	require.NotEmpty(t, cfg.Menu.Items, "defaults should seed an item set")
	require.NotEmpty(t, cfg.Database.Path)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := `
[database]
path = "/tmp/orbitnav-test.db"

[menu]
radius = 90.0
auto_close = false
close_delay_ms = 500

[[menu.items]]
id = "home"
label = "Home"
href = "#home"

[[menu.items]]
id = "docs"
label = "Docs"
href = "https://example.com/docs"
external = true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	t.Setenv("ORBITNAV_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "/tmp/orbitnav-test.db", cfg.Database.Path)
	require.Equal(t, 90.0, cfg.Menu.Radius)
	require.False(t, cfg.Menu.AutoClose)
	require.Equal(t, 500, cfg.Menu.CloseDelayMS)
	require.Len(t, cfg.Menu.Items, 2)
	require.True(t, cfg.Menu.Items[1].External)
}

func TestNavConversionAssignsDensePositions(t *testing.T) {
	cfg := Config{
		Menu: MenuConfig{
			AnimationDurationMS: 250,
			CloseDelayMS:        1500,
			Radius:              100,
			SpreadDegrees:       90,
			StartDegrees:        180,
			Items: []ItemConfig{
				{ID: "a", Label: "A", Href: "#a"},
				{ID: "b", Label: "B", Href: "#b"},
				{ID: "c", Label: "C", Href: "https://example.com", External: true},
			},
		},
	}

	nc := cfg.Nav()
	require.Len(t, nc.Items, 3)
	for i, it := range nc.Items {
		require.Equal(t, i, it.Position)
	}
	require.Equal(t, "a", nc.Items[0].ID)
	require.True(t, nc.Items[2].External)
	require.Equal(t, 250, int(nc.AnimationDuration.Milliseconds()))
	require.Equal(t, 1500, int(nc.CloseDelay.Milliseconds()))
}
