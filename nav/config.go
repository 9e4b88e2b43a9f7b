package nav

import (
	"sort"
	"strings"
	"time"
)

// NavigationItem is one entry of the menu. Immutable once configured.
type NavigationItem struct {
	ID       string
	Label    string
	Href     string
	Position int // 0-based, dense
	Icon     string
	External bool
}

// SectionID returns the page-section identifier for fragment hrefs ("#about"
// -> "about") and "" for anything else. Only fragment items participate in
// scroll activation.
func (it NavigationItem) SectionID() string {
	if !strings.HasPrefix(it.Href, "#") {
		return ""
	}
	return strings.TrimPrefix(it.Href, "#")
}

// Config is the full menu configuration, set at construction and replaceable
// through UpdateConfig.
type Config struct {
	Items []NavigationItem

	AnimationDuration time.Duration
	Radius            float64
	CenterSize        float64
	ItemSize          float64

	AutoClose  bool
	CloseDelay time.Duration

	EnableKeyboard bool
	EnableTouch    bool

	// Radial arc parameters.
	SpreadDegrees float64
	StartDegrees  float64

	// Below CompactWidth the radius is multiplied by CompactFactor.
	CompactWidth  float64
	CompactFactor float64
}

// DefaultConfig returns the stock menu tuning without items.
func DefaultConfig() Config {
	return Config{
		AnimationDuration: 300 * time.Millisecond,
		Radius:            120,
		CenterSize:        56,
		ItemSize:          44,
		AutoClose:         true,
		CloseDelay:        2 * time.Second,
		EnableKeyboard:    true,
		EnableTouch:       true,
		SpreadDegrees:     360,
		StartDegrees:      -90,
		CompactWidth:      480,
		CompactFactor:     0.75,
	}
}

// ConfigPatch is a partial Config for UpdateConfig. Nil fields are left
// unchanged; a non-nil Items slice replaces the item set wholesale.
type ConfigPatch struct {
	Items []NavigationItem

	AnimationDuration *time.Duration
	Radius            *float64
	CenterSize        *float64
	ItemSize          *float64

	AutoClose  *bool
	CloseDelay *time.Duration

	EnableKeyboard *bool
	EnableTouch    *bool

	SpreadDegrees *float64
	StartDegrees  *float64

	CompactWidth  *float64
	CompactFactor *float64
}

func (p ConfigPatch) applyTo(c Config) Config {
	if p.Items != nil {
		c.Items = cloneItems(p.Items)
	}
	if p.AnimationDuration != nil {
		c.AnimationDuration = *p.AnimationDuration
	}
	if p.Radius != nil {
		c.Radius = *p.Radius
	}
	if p.CenterSize != nil {
		c.CenterSize = *p.CenterSize
	}
	if p.ItemSize != nil {
		c.ItemSize = *p.ItemSize
	}
	if p.AutoClose != nil {
		c.AutoClose = *p.AutoClose
	}
	if p.CloseDelay != nil {
		c.CloseDelay = *p.CloseDelay
	}
	if p.EnableKeyboard != nil {
		c.EnableKeyboard = *p.EnableKeyboard
	}
	if p.EnableTouch != nil {
		c.EnableTouch = *p.EnableTouch
	}
	if p.SpreadDegrees != nil {
		c.SpreadDegrees = *p.SpreadDegrees
	}
	if p.StartDegrees != nil {
		c.StartDegrees = *p.StartDegrees
	}
	if p.CompactWidth != nil {
		c.CompactWidth = *p.CompactWidth
	}
	if p.CompactFactor != nil {
		c.CompactFactor = *p.CompactFactor
	}
	return c
}

func cloneItems(items []NavigationItem) []NavigationItem {
	if items == nil {
		return nil
	}
	out := make([]NavigationItem, len(items))
	copy(out, items)
	return out
}

// itemsByID builds the id index. Duplicate ids keep the first occurrence.
func itemsByID(items []NavigationItem) map[string]NavigationItem {
	idx := make(map[string]NavigationItem, len(items))
	for _, it := range items {
		if _, dup := idx[it.ID]; dup {
			continue
		}
		idx[it.ID] = it
	}
	return idx
}

// sortedByPosition returns items ordered by Position for focus traversal.
func sortedByPosition(items []NavigationItem) []NavigationItem {
	out := cloneItems(items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}
