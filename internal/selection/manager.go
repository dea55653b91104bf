package selection

import (
	"math"

	"welcomecrm/internal/proposal"
)

// Selection is the client's in-progress choice state for one item. The
// zero value is the documented default for unknown items: unselected,
// no option, quantity 1 (quantity is normalized on read).
type Selection struct {
	Selected bool   `json:"selected"`
	OptionID string `json:"option_id,omitempty"`
	Quantity int    `json:"quantity"`
}

// Manager owns the item-id → Selection map for one viewer session.
//
// Per-section rules:
//   - 2+ items: exclusive-choice group, exactly one starts selected
//     (the default-flagged item, else the first).
//   - one optional item (or a fully optional section): starts selected
//     only when flagged default.
//   - one mandatory item: always starts selected.
//
// All operations are synchronous, in-memory transitions; callers drive a
// single viewer session from one goroutine.
type Manager struct {
	selections   map[string]Selection
	initial      map[string]Selection
	sectionItems map[string][]string
}

func NewManager(sections []*proposal.Section) *Manager {
	initial := make(map[string]Selection)
	sectionItems := make(map[string][]string)

	for _, section := range sections {
		items := section.Items
		ids := make([]string, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ID)
		}
		sectionItems[section.ID] = ids

		exclusive := len(items) >= 2
		allOptional := true
		for _, item := range items {
			if !item.IsOptional {
				allOptional = false
				break
			}
		}

		if exclusive {
			defaultIdx := 0
			for i, item := range items {
				if item.IsDefaultSelected {
					defaultIdx = i
					break
				}
			}
			for i, item := range items {
				initial[item.ID] = Selection{Selected: i == defaultIdx, Quantity: 1}
			}
			continue
		}

		for _, item := range items {
			if allOptional || item.IsOptional {
				initial[item.ID] = Selection{Selected: item.IsDefaultSelected, Quantity: 1}
			} else {
				initial[item.ID] = Selection{Selected: true, Quantity: 1}
			}
		}
	}

	m := &Manager{
		initial:      initial,
		sectionItems: sectionItems,
	}
	m.Reset()
	return m
}

func (m *Manager) get(itemID string) Selection {
	if sel, ok := m.selections[itemID]; ok {
		return sel
	}
	return Selection{Quantity: 1}
}

// Toggle flips an item's selected flag. Used for optional/toggle-mode
// items.
func (m *Manager) Toggle(itemID string) {
	sel := m.get(itemID)
	sel.Selected = !sel.Selected
	m.selections[itemID] = sel
}

// Select selects an item within its section. In an exclusive-choice
// section (2+ items) every sibling is deselected in the same step; in a
// smaller section it degrades to Toggle.
func (m *Manager) Select(sectionID, itemID string) {
	siblings := m.sectionItems[sectionID]
	if len(siblings) < 2 {
		m.Toggle(itemID)
		return
	}

	for _, id := range siblings {
		if id == itemID {
			continue
		}
		sel := m.get(id)
		sel.Selected = false
		m.selections[id] = sel
	}
	sel := m.get(itemID)
	sel.Selected = true
	m.selections[itemID] = sel
}

// SelectOption records an option choice. The item does not have to be
// selected.
func (m *Manager) SelectOption(itemID, optionID string) {
	sel := m.get(itemID)
	sel.OptionID = optionID
	m.selections[itemID] = sel
}

// ChangeQuantity floors the requested quantity and clamps it to 1.
func (m *Manager) ChangeQuantity(itemID string, quantity float64) {
	sel := m.get(itemID)
	sel.Quantity = int(math.Max(1, math.Floor(quantity)))
	m.selections[itemID] = sel
}

func (m *Manager) IsSelected(itemID string) bool {
	return m.get(itemID).Selected
}

func (m *Manager) SelectedOption(itemID string) string {
	return m.get(itemID).OptionID
}

func (m *Manager) Quantity(itemID string) int {
	if q := m.get(itemID).Quantity; q >= 1 {
		return q
	}
	return 1
}

// Reset restores the derived initial state. Used after a failed or
// abandoned acceptance.
func (m *Manager) Reset() {
	m.selections = make(map[string]Selection, len(m.initial))
	for id, sel := range m.initial {
		m.selections[id] = sel
	}
}

// Restore loads a client-submitted map over the current state,
// normalizing quantities on the way in.
func (m *Manager) Restore(selections map[string]Selection) {
	for id, sel := range Normalize(selections) {
		m.selections[id] = sel
	}
}

// Snapshot returns a copy of the current map.
func (m *Manager) Snapshot() map[string]Selection {
	out := make(map[string]Selection, len(m.selections))
	for id, sel := range m.selections {
		out[id] = sel
	}
	return out
}

// Normalize makes a client-submitted selection map safe: quantities are
// clamped to 1 and nil maps become empty ones.
func Normalize(selections map[string]Selection) map[string]Selection {
	out := make(map[string]Selection, len(selections))
	for id, sel := range selections {
		if sel.Quantity < 1 {
			sel.Quantity = 1
		}
		out[id] = sel
	}
	return out
}
