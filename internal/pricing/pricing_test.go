package pricing

import (
	"testing"

	"welcomecrm/internal/proposal"
	"welcomecrm/internal/selection"
)

// --------------------------------------------------
// ITEM PRICING
// --------------------------------------------------

func TestItemPrice_HotelNightsQuantityAndDelta(t *testing.T) {
	item := &proposal.Item{
		ID:       "item-hotel",
		ItemType: "hotel",
		RichContent: map[string]any{
			"hotel": map[string]any{
				"hotel_name":      "Hotel Teste",
				"price_per_night": float64(500),
				"nights":          float64(3),
			},
		},
		Options: []*proposal.Option{
			{ID: "opt-suite", OptionLabel: "Suíte", PriceDelta: 100},
		},
	}

	engine := NewEngine(nil)
	sel := selection.Selection{Selected: true, OptionID: "opt-suite", Quantity: 2}

	// (500 + 100) * 3 nights * 2 rooms
	if got := engine.ItemPrice(item, sel); got != 3600 {
		t.Errorf("expected 3600, got %v", got)
	}
}

func TestItemPrice_HotelFallsBackToBasePrice(t *testing.T) {
	item := &proposal.Item{
		ItemType:  "hotel",
		BasePrice: 800,
	}

	engine := NewEngine(nil)
	sel := selection.Selection{Selected: true, Quantity: 2}

	if got := engine.ItemPrice(item, sel); got != 1600 {
		t.Errorf("expected base_price fallback 1600, got %v", got)
	}
}

func TestItemPrice_FlightIgnoresQuantity(t *testing.T) {
	item := &proposal.Item{
		ItemType:  "flight",
		BasePrice: 9999,
		RichContent: map[string]any{
			"flights": map[string]any{
				"legs": []any{
					map[string]any{
						"leg_type": "outbound",
						"options": []any{
							map[string]any{"id": "o1", "price": float64(1200), "is_recommended": true},
						},
					},
					map[string]any{
						"leg_type": "return",
						"options": []any{
							map[string]any{"id": "r1", "price": float64(900)},
						},
					},
				},
			},
		},
	}

	engine := NewEngine(nil)

	one := engine.ItemPrice(item, selection.Selection{Selected: true, Quantity: 1})
	five := engine.ItemPrice(item, selection.Selection{Selected: true, Quantity: 5})

	if one != 2100 {
		t.Errorf("expected leg-sum 2100, got %v", one)
	}
	if five != one {
		t.Errorf("flight price must ignore quantity: %v vs %v", five, one)
	}
}

func TestItemPrice_ExperiencePerPerson(t *testing.T) {
	item := &proposal.Item{
		ItemType: "experience",
		RichContent: map[string]any{
			"experience": map[string]any{
				"price_type":   "per_person",
				"price":        float64(150),
				"participants": float64(4),
			},
		},
	}

	engine := NewEngine(nil)
	if got := engine.ItemPrice(item, selection.Selection{Selected: true, Quantity: 1}); got != 600 {
		t.Errorf("expected 150 * 4 participants = 600, got %v", got)
	}
}

func TestItemPrice_TransferFlatWithDelta(t *testing.T) {
	item := &proposal.Item{
		ItemType: "transfer",
		RichContent: map[string]any{
			"transfer": map[string]any{
				"origin":      "Aeroporto GRU",
				"destination": "Hotel",
				"price":       float64(300),
			},
		},
		Options: []*proposal.Option{
			{ID: "opt-van", OptionLabel: "Van", PriceDelta: 50},
		},
	}

	engine := NewEngine(nil)
	sel := selection.Selection{Selected: true, OptionID: "opt-van", Quantity: 3}

	// Flat price plus option delta, quantity ignored.
	if got := engine.ItemPrice(item, sel); got != 350 {
		t.Errorf("expected 350, got %v", got)
	}
}

func TestItemPrice_UnknownOptionContributesZero(t *testing.T) {
	item := &proposal.Item{
		ItemType:  "transfer",
		BasePrice: 200,
	}

	engine := NewEngine(nil)
	sel := selection.Selection{Selected: true, OptionID: "does-not-exist", Quantity: 1}

	if got := engine.ItemPrice(item, sel); got != 200 {
		t.Errorf("expected unknown option to add nothing, got %v", got)
	}
}

// --------------------------------------------------
// CURRENCY CONVERSION
// --------------------------------------------------

func TestConvert_SameCurrencyIsExact(t *testing.T) {
	engine := NewEngine(nil)

	value := 1234.56
	if got := engine.Convert(value, "BRL", "BRL"); got != value {
		t.Errorf("expected identity conversion, got %v", got)
	}
}

func TestConvert_UsesRateTable(t *testing.T) {
	engine := NewEngine(nil)

	if got := engine.Convert(100, "BRL", "USD"); got != 20 {
		t.Errorf("expected 100 BRL = 20 USD, got %v", got)
	}
	if got := engine.Convert(20, "USD", "BRL"); got != 100 {
		t.Errorf("expected 20 USD = 100 BRL, got %v", got)
	}
}

func TestConvert_UnknownCurrencyDefaultsToOne(t *testing.T) {
	engine := NewEngine(nil)

	if got := engine.Convert(100, "XYZ", "BRL"); got != 100 {
		t.Errorf("expected rate 1 for unknown currency, got %v", got)
	}
}

// --------------------------------------------------
// TOTALS
// --------------------------------------------------

func TestTotals_OnlySelectedItemsContribute(t *testing.T) {
	sections := []*proposal.Section{
		{
			ID: "sec-1",
			Items: []*proposal.Item{
				{ID: "a", ItemType: "transfer", BasePrice: 300},
				{ID: "b", ItemType: "transfer", BasePrice: 500},
			},
		},
		{
			ID: "sec-2",
			Items: []*proposal.Item{
				{ID: "c", ItemType: "transfer", BasePrice: 250},
			},
		},
	}
	selections := map[string]selection.Selection{
		"a": {Selected: true, Quantity: 1},
		"b": {Selected: false, Quantity: 1},
		"c": {Selected: true, Quantity: 1},
	}

	engine := NewEngine(nil)
	totals := engine.Totals(sections, selections, "BRL", "USD")

	if totals.TotalPrimary != 550 {
		t.Errorf("expected primary total 550, got %v", totals.TotalPrimary)
	}
	if totals.TotalSecondary != 110 {
		t.Errorf("expected secondary total 110, got %v", totals.TotalSecondary)
	}
	if totals.ItemsCount != 3 {
		t.Errorf("expected 3 items counted, got %d", totals.ItemsCount)
	}
	if totals.SelectedItemsCount != 2 {
		t.Errorf("expected 2 selected items, got %d", totals.SelectedItemsCount)
	}
}

func TestTotals_EmptySelectionsZeroTotal(t *testing.T) {
	sections := []*proposal.Section{
		{ID: "sec-1", Items: []*proposal.Item{{ID: "a", ItemType: "hotel", BasePrice: 900}}},
	}

	engine := NewEngine(nil)
	totals := engine.Totals(sections, nil, "BRL", "USD")

	if totals.TotalPrimary != 0 || totals.SelectedItemsCount != 0 {
		t.Errorf("expected zero totals, got %+v", totals)
	}
}
