package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/orbitnav/orbitnav/nav"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Menu     MenuConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings for the interaction log.
type DatabaseConfig struct {
	Path string
}

// MenuConfig holds the navigation menu tuning and its item set.
type MenuConfig struct {
	Items []ItemConfig

	AnimationDurationMS int `mapstructure:"animation_duration_ms"`
	Radius              float64
	CenterSize          float64 `mapstructure:"center_size"`
	ItemSize            float64 `mapstructure:"item_size"`

	AutoClose    bool `mapstructure:"auto_close"`
	CloseDelayMS int  `mapstructure:"close_delay_ms"`

	EnableKeyboard bool `mapstructure:"enable_keyboard"`
	EnableTouch    bool `mapstructure:"enable_touch"`

	SpreadDegrees float64 `mapstructure:"spread_degrees"`
	StartDegrees  float64 `mapstructure:"start_degrees"`

	CompactWidth  float64 `mapstructure:"compact_width"`
	CompactFactor float64 `mapstructure:"compact_factor"`
}

// ItemConfig is one configured menu entry.
type ItemConfig struct {
	ID       string
	Label    string
	Href     string
	Icon     string
	External bool
}

// UIConfig holds presentation settings for the terminal demo.
type UIConfig struct {
	SectionLines int `mapstructure:"section_lines"`
}

// Load reads configuration from file and env. Env var overrides use prefix ORBITNAV_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "orbitnav", "orbitnav.db"))
	v.SetDefault("menu.animation_duration_ms", 300)
	v.SetDefault("menu.radius", 120.0)
	v.SetDefault("menu.center_size", 56.0)
	v.SetDefault("menu.item_size", 44.0)
	v.SetDefault("menu.auto_close", true)
	v.SetDefault("menu.close_delay_ms", 2000)
	v.SetDefault("menu.enable_keyboard", true)
	v.SetDefault("menu.enable_touch", true)
	v.SetDefault("menu.spread_degrees", 360.0)
	v.SetDefault("menu.start_degrees", -90.0)
	v.SetDefault("menu.compact_width", 480.0)
	v.SetDefault("menu.compact_factor", 0.75)
	v.SetDefault("ui.section_lines", 18)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("ORBITNAV_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "orbitnav"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ORBITNAV")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if len(c.Menu.Items) == 0 {
		c.Menu.Items = defaultItems()
	}
	return c, nil
}

func defaultItems() []ItemConfig {
	return []ItemConfig{
		{ID: "home", Label: "Home", Href: "#home", Icon: "⌂"},
		{ID: "about", Label: "About", Href: "#about", Icon: "☺"},
		{ID: "projects", Label: "Projects", Href: "#projects", Icon: "⚒"},
		{ID: "writing", Label: "Writing", Href: "#writing", Icon: "✎"},
		{ID: "contact", Label: "Contact", Href: "#contact", Icon: "✉"},
		{ID: "source", Label: "Source", Href: "https://github.com/orbitnav/orbitnav", Icon: "⎋", External: true},
	}
}

// Nav converts the menu section into the coordinator's Config. Item positions
// are assigned densely in declaration order.
func (c Config) Nav() nav.Config {
	out := nav.DefaultConfig()
	out.AnimationDuration = time.Duration(c.Menu.AnimationDurationMS) * time.Millisecond
	out.Radius = c.Menu.Radius
	out.CenterSize = c.Menu.CenterSize
	out.ItemSize = c.Menu.ItemSize
	out.AutoClose = c.Menu.AutoClose
	out.CloseDelay = time.Duration(c.Menu.CloseDelayMS) * time.Millisecond
	out.EnableKeyboard = c.Menu.EnableKeyboard
	out.EnableTouch = c.Menu.EnableTouch
	out.SpreadDegrees = c.Menu.SpreadDegrees
	out.StartDegrees = c.Menu.StartDegrees
	out.CompactWidth = c.Menu.CompactWidth
	out.CompactFactor = c.Menu.CompactFactor

	out.Items = make([]nav.NavigationItem, 0, len(c.Menu.Items))
	for i, it := range c.Menu.Items {
		out.Items = append(out.Items, nav.NavigationItem{
			ID:       it.ID,
			Label:    it.Label,
			Href:     it.Href,
			Position: i,
			Icon:     it.Icon,
			External: it.External,
		})
	}
	return out
}
