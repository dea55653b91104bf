package selection

import (
	"testing"

	"welcomecrm/internal/proposal"
)

// --------------------------------------------------
// FIXTURES
// --------------------------------------------------

func exclusiveSection() *proposal.Section {
	return &proposal.Section{
		ID:          "sec-hotels",
		SectionType: "hotels",
		Title:       "Hotéis",
		Items: []*proposal.Item{
			{ID: "hotel-a", ItemType: "hotel"},
			{ID: "hotel-b", ItemType: "hotel", IsDefaultSelected: true},
			{ID: "hotel-c", ItemType: "hotel"},
		},
	}
}

func optionalSection() *proposal.Section {
	return &proposal.Section{
		ID:          "sec-insurance",
		SectionType: "insurance",
		Title:       "Seguro",
		Items: []*proposal.Item{
			{ID: "insurance-a", ItemType: "insurance", IsOptional: true},
		},
	}
}

func mandatorySection() *proposal.Section {
	return &proposal.Section{
		ID:          "sec-flights",
		SectionType: "flights",
		Title:       "Voos",
		Items: []*proposal.Item{
			{ID: "flight-a", ItemType: "flight"},
		},
	}
}

// --------------------------------------------------
// INITIAL STATE
// --------------------------------------------------

func TestNewManager_ExclusiveSectionSelectsDefaultOnly(t *testing.T) {
	m := NewManager([]*proposal.Section{exclusiveSection()})

	if m.IsSelected("hotel-a") {
		t.Error("expected hotel-a unselected")
	}
	if !m.IsSelected("hotel-b") {
		t.Error("expected default-flagged hotel-b selected")
	}
	if m.IsSelected("hotel-c") {
		t.Error("expected hotel-c unselected")
	}
}

func TestNewManager_ExclusiveSectionFallsBackToFirst(t *testing.T) {
	section := exclusiveSection()
	section.Items[1].IsDefaultSelected = false

	m := NewManager([]*proposal.Section{section})
	if !m.IsSelected("hotel-a") {
		t.Error("expected first item selected when no default is flagged")
	}
	if m.IsSelected("hotel-b") || m.IsSelected("hotel-c") {
		t.Error("expected a single initial selection")
	}
}

func TestNewManager_OptionalItemFollowsDefaultFlag(t *testing.T) {
	m := NewManager([]*proposal.Section{optionalSection()})
	if m.IsSelected("insurance-a") {
		t.Error("expected optional non-default item unselected")
	}

	section := optionalSection()
	section.Items[0].IsDefaultSelected = true
	m = NewManager([]*proposal.Section{section})
	if !m.IsSelected("insurance-a") {
		t.Error("expected optional default item selected")
	}
}

func TestNewManager_LoneMandatoryItemAlwaysSelected(t *testing.T) {
	m := NewManager([]*proposal.Section{mandatorySection()})
	if !m.IsSelected("flight-a") {
		t.Error("expected lone mandatory item selected")
	}
}

// --------------------------------------------------
// TRANSITIONS
// --------------------------------------------------

func TestSelect_ExclusiveDeselectsSiblings(t *testing.T) {
	m := NewManager([]*proposal.Section{exclusiveSection()})

	m.Select("sec-hotels", "hotel-c")

	if !m.IsSelected("hotel-c") {
		t.Error("expected hotel-c selected")
	}
	if m.IsSelected("hotel-a") || m.IsSelected("hotel-b") {
		t.Error("expected siblings deselected")
	}
}

func TestSelect_SingleItemSectionDegradesToToggle(t *testing.T) {
	m := NewManager([]*proposal.Section{optionalSection()})

	m.Select("sec-insurance", "insurance-a")
	if !m.IsSelected("insurance-a") {
		t.Error("expected toggle on")
	}
	m.Select("sec-insurance", "insurance-a")
	if m.IsSelected("insurance-a") {
		t.Error("expected toggle off")
	}
}

func TestSelectOption_KeepsSelectionState(t *testing.T) {
	m := NewManager([]*proposal.Section{exclusiveSection()})

	m.SelectOption("hotel-a", "opt-suite")

	if m.SelectedOption("hotel-a") != "opt-suite" {
		t.Errorf("expected option 'opt-suite', got '%s'", m.SelectedOption("hotel-a"))
	}
	if m.IsSelected("hotel-a") {
		t.Error("option choice must not select the item")
	}
}

func TestChangeQuantity_Clamping(t *testing.T) {
	m := NewManager([]*proposal.Section{mandatorySection()})

	m.ChangeQuantity("flight-a", 3.7)
	if m.Quantity("flight-a") != 3 {
		t.Errorf("expected floored quantity 3, got %d", m.Quantity("flight-a"))
	}

	m.ChangeQuantity("flight-a", 0)
	if m.Quantity("flight-a") != 1 {
		t.Errorf("expected quantity clamped to 1, got %d", m.Quantity("flight-a"))
	}

	m.ChangeQuantity("flight-a", -5)
	if m.Quantity("flight-a") != 1 {
		t.Errorf("expected negative quantity clamped to 1, got %d", m.Quantity("flight-a"))
	}
}

func TestReset_RestoresInitialState(t *testing.T) {
	m := NewManager([]*proposal.Section{exclusiveSection(), optionalSection()})

	m.Select("sec-hotels", "hotel-c")
	m.Toggle("insurance-a")
	m.ChangeQuantity("hotel-c", 4)

	m.Reset()

	if !m.IsSelected("hotel-b") || m.IsSelected("hotel-c") {
		t.Error("expected exclusive default restored")
	}
	if m.IsSelected("insurance-a") {
		t.Error("expected optional item back to unselected")
	}
	if m.Quantity("hotel-c") != 1 {
		t.Errorf("expected quantity reset to 1, got %d", m.Quantity("hotel-c"))
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	m := NewManager([]*proposal.Section{mandatorySection()})

	snap := m.Snapshot()
	snap["flight-a"] = Selection{Selected: false, Quantity: 1}

	if !m.IsSelected("flight-a") {
		t.Error("mutating a snapshot must not touch the manager")
	}
}

func TestRestore_LoadsClientState(t *testing.T) {
	m := NewManager([]*proposal.Section{exclusiveSection()})

	m.Restore(map[string]Selection{
		"hotel-c": {Selected: true, OptionID: "opt-suite", Quantity: 0},
	})

	if !m.IsSelected("hotel-c") {
		t.Error("expected restored item selected")
	}
	if m.Quantity("hotel-c") != 1 {
		t.Errorf("expected restored quantity clamped to 1, got %d", m.Quantity("hotel-c"))
	}
	// Untouched entries keep their derived state.
	if !m.IsSelected("hotel-b") {
		t.Error("expected default hotel-b still selected")
	}
}

func TestNormalize_ClampsClientQuantities(t *testing.T) {
	in := map[string]Selection{
		"a": {Selected: true, Quantity: 0},
		"b": {Selected: true, Quantity: 3},
	}

	out := Normalize(in)
	if out["a"].Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", out["a"].Quantity)
	}
	if out["b"].Quantity != 3 {
		t.Errorf("expected quantity 3 untouched, got %d", out["b"].Quantity)
	}

	if out := Normalize(nil); out == nil {
		t.Error("expected empty map for nil input")
	}
}
