// Package selection tracks which verified trade is highlighted in the
// ranked list and which one has its audit detail expanded. The two are
// deliberately independent: browsing the list never collapses an open
// detail, and toggling a detail never moves the list cursor.
package selection

// Coordinator holds the two panel-interaction states for the verified
// view. Zero value: nothing selected, nothing expanded.
type Coordinator struct {
	ids        []string
	selected   string
	expanded   string
	onSelected func(id string)
}

// NewCoordinator creates a coordinator. onSelected, if non-nil, fires
// whenever the list selection changes to a different trade, so the
// owner can sync dependent views (such as the chart ticker).
func NewCoordinator(onSelected func(id string)) *Coordinator {
	return &Coordinator{onSelected: onSelected}
}

// ApplyVerified installs a fresh ranked result set. Selection and
// expansion survive only if their trade ID is still present, by exact
// equality; stale references are cleared. When the previous expansion
// is gone and autoExpandFirst is set, the top-ranked trade expands,
// except on an empty set, which clears everything. A surviving
// expansion stays open rather than jumping to the new top rank, so a
// re-verify never pulls the detail out from under the user.
func (c *Coordinator) ApplyVerified(ids []string, autoExpandFirst bool) {
	c.ids = append([]string(nil), ids...)

	if len(ids) == 0 {
		c.setSelected("")
		c.expanded = ""
		return
	}

	if !contains(ids, c.selected) {
		c.setSelected(ids[0])
	}
	if !contains(ids, c.expanded) {
		if autoExpandFirst {
			c.expanded = ids[0]
		} else {
			c.expanded = ""
		}
	}
}

// Select highlights the trade with the given ID. Unknown IDs are
// ignored so the cursor can never point outside the list.
func (c *Coordinator) Select(id string) {
	if !contains(c.ids, id) {
		return
	}
	c.setSelected(id)
}

// SelectIndex highlights the trade at a zero-based list position.
func (c *Coordinator) SelectIndex(i int) {
	if i < 0 || i >= len(c.ids) {
		return
	}
	c.setSelected(c.ids[i])
}

// ToggleExpand opens the detail for id, or closes it if already open.
// At most one detail is open at a time; expanding is idempotent in the
// sense that toggling twice restores the prior state exactly. The list
// selection is untouched.
func (c *Coordinator) ToggleExpand(id string) {
	if !contains(c.ids, id) {
		return
	}
	if c.expanded == id {
		c.expanded = ""
	} else {
		c.expanded = id
	}
}

// CollapseAll closes any open detail.
func (c *Coordinator) CollapseAll() {
	c.expanded = ""
}

// Selected returns the highlighted trade ID, "" when the list is empty.
func (c *Coordinator) Selected() string { return c.selected }

// Expanded returns the ID whose detail is open, "" when none is.
func (c *Coordinator) Expanded() string { return c.expanded }

// IsExpanded reports whether the given trade's detail is open.
func (c *Coordinator) IsExpanded(id string) bool {
	return id != "" && c.expanded == id
}

// IDs returns the current ranked ID list in order.
func (c *Coordinator) IDs() []string {
	return append([]string(nil), c.ids...)
}

func (c *Coordinator) setSelected(id string) {
	if c.selected == id {
		return
	}
	c.selected = id
	if c.onSelected != nil && id != "" {
		c.onSelected(id)
	}
}

func contains(ids []string, id string) bool {
	if id == "" {
		return false
	}
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
