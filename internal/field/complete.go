package field

import "strings"

// Completion filters a candidate pool by prefix match against the active
// text and tracks the selected suggestion. The pool has two parts: history
// candidates (most recent first, fixed at construction) and extended
// candidates injected by a Decorator (caller order, newest batch first).
type Completion struct {
	history  []string
	extended []string
	bound    int

	matches  []string
	selected int // index into matches, -1 = no explicit selection
	valid    bool
	dirty    bool // pool changed since the match list was built
}

// NewCompletion builds the history side of the pool from store entries
// (oldest first). Entries wider than the bound can never become the active
// text and are not offered.
func NewCompletion(entries []string, bound int) *Completion {
	c := &Completion{bound: bound, selected: -1}
	for i := len(entries) - 1; i >= 0; i-- {
		if len([]rune(entries[i])) <= bound {
			c.history = append(c.history, entries[i])
		}
	}
	return c
}

// Refresh rebuilds the match list for the given active text. The list is
// rebuilt only when the pool changed or no list exists yet; cycling through
// an existing list keeps it stable.
func (c *Completion) Refresh(active string, poolChanged bool) {
	if c.valid && !poolChanged && !c.dirty {
		return
	}
	// A candidate equal to the active text would be a suggestion with an
	// empty suffix; it is skipped.
	c.matches = c.matches[:0]
	for _, cand := range c.history {
		if cand != active && strings.HasPrefix(cand, active) {
			c.matches = append(c.matches, cand)
		}
	}
	for _, cand := range c.extended {
		if len([]rune(cand)) > c.bound {
			continue
		}
		if cand != active && strings.HasPrefix(cand, active) {
			c.matches = append(c.matches, cand)
		}
	}
	c.selected = -1
	c.valid = true
	c.dirty = false
}

// Cycle moves the selection through the match list, wrapping at both ends.
// A backward cycle with no prior selection starts from the last match.
func (c *Completion) Cycle(forward bool) {
	n := len(c.matches)
	if !c.valid || n == 0 {
		return
	}
	switch {
	case c.selected < 0 && forward:
		c.selected = 0
	case c.selected < 0:
		c.selected = n - 1
	case forward:
		c.selected = (c.selected + 1) % n
	default:
		c.selected = (c.selected - 1 + n) % n
	}
}

// Current returns the suggestion that would be accepted right now: the
// cycled selection if there is one, otherwise the top match.
func (c *Completion) Current() (string, bool) {
	if !c.valid || len(c.matches) == 0 {
		return "", false
	}
	if c.selected >= 0 {
		return c.matches[c.selected], true
	}
	return c.matches[0], true
}

// Suffix returns the part of the current suggestion past the active text,
// i.e. the dimmed overlay the sink renders after the cursor.
func (c *Completion) Suffix(active string) string {
	cur, ok := c.Current()
	if !ok || !strings.HasPrefix(cur, active) {
		return ""
	}
	return cur[len(active):]
}

// Clear drops the match list and selection without touching any buffer.
func (c *Completion) Clear() {
	c.matches = c.matches[:0]
	c.selected = -1
	c.valid = false
}

// Matches exposes the current match list (prefix law holds for every entry).
func (c *Completion) Matches() []string {
	return c.matches
}

// ExtendPool prepends caller-supplied candidates (directory listings and the
// like). No deduplication: duplicates are the caller's business.
func (c *Completion) ExtendPool(cands []string) {
	if len(cands) == 0 {
		return
	}
	c.extended = append(append([]string(nil), cands...), c.extended...)
	c.dirty = true
}

// ShrinkPool retracts every extended candidate under the given prefix.
func (c *Completion) ShrinkPool(prefix string) {
	kept := c.extended[:0]
	for _, cand := range c.extended {
		if !strings.HasPrefix(cand, prefix) {
			kept = append(kept, cand)
		}
	}
	if len(kept) != len(c.extended) {
		c.dirty = true
	}
	c.extended = kept
}

// ClearExtendedPool drops all extended candidates, keeping history ones.
func (c *Completion) ClearExtendedPool() {
	if len(c.extended) == 0 {
		return
	}
	c.extended = nil
	c.dirty = true
}
