package nav

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// findMaxDistance bounds how sloppy a FindItem query may be before it stops
// matching anything.
const findMaxDistance = 3

// FindItem resolves a free-form query to an item: exact id first, then exact
// label, then prefix, then the closest id/label by edit distance within
// findMaxDistance. Matching is case-insensitive. Jump-style pickers use this
// so a typo like "projcts" still lands on "projects".
func (c *Coordinator) FindItem(query string) (NavigationItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return NavigationItem{}, false
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return NavigationItem{}, false
	}

	if it, ok := c.items[q]; ok {
		return it, true
	}
	for _, it := range c.ordered {
		if strings.ToLower(it.Label) == q {
			return it, true
		}
	}
	for _, it := range c.ordered {
		if strings.HasPrefix(strings.ToLower(it.ID), q) || strings.HasPrefix(strings.ToLower(it.Label), q) {
			return it, true
		}
	}

	bestDist := findMaxDistance + 1
	var best NavigationItem
	var found bool
	for _, it := range c.ordered {
		d := levenshtein.ComputeDistance(q, strings.ToLower(it.ID))
		if ld := levenshtein.ComputeDistance(q, strings.ToLower(it.Label)); ld < d {
			d = ld
		}
		if d < bestDist {
			bestDist = d
			best = it
			found = true
		}
	}
	return best, found
}
