package pricing

import (
	"welcomecrm/internal/proposal"
	"welcomecrm/internal/readers"
	"welcomecrm/internal/selection"
)

// Engine prices items and aggregates proposal totals. Rates is the
// static conversion table (base-unit anchored); it is injected so tests
// can substitute deterministic rates.
type Engine struct {
	Rates map[string]float64
}

func NewEngine(rates map[string]float64) *Engine {
	if rates == nil {
		rates = DefaultRates
	}
	return &Engine{Rates: rates}
}

// ItemPrice computes one item's price contribution under a selection,
// dispatched on item_type:
//
//	hotel       (pricePerNight + optionDelta) * nights * quantity
//	flight      sum of per-leg selected-option prices, quantity ignored
//	experience  (price + optionDelta) * participants when per_person
//	insurance   (price + optionDelta) * travelers when per_person
//	transfer    price + optionDelta
//	other       cruise total when the cruise reader matches, else base_price
func (e *Engine) ItemPrice(item *proposal.Item, sel selection.Selection) float64 {
	quantity := sel.Quantity
	if quantity < 1 {
		quantity = 1
	}
	delta := optionDelta(item, sel)

	switch item.ItemType {
	case "hotel":
		data := readers.ReadHotelData(item)
		if data == nil {
			return (item.BasePrice + delta) * float64(quantity)
		}
		nights := data.Nights
		if nights < 1 {
			nights = 1
		}
		return (data.PricePerNight + delta) * float64(nights) * float64(quantity)

	case "flight":
		data := readers.ReadFlightData(item)
		if data == nil {
			return item.BasePrice
		}
		return data.TotalPrice

	case "experience":
		data := readers.ReadExperienceData(item)
		if data == nil {
			return item.BasePrice + delta
		}
		price := data.Price + delta
		if data.PriceType == "per_person" {
			return price * float64(data.Participants)
		}
		return price

	case "insurance":
		data := readers.ReadInsuranceData(item)
		if data == nil {
			return item.BasePrice + delta
		}
		price := data.Price + delta
		if data.PriceType == "per_person" {
			return price * float64(data.Travelers)
		}
		return price

	case "transfer":
		data := readers.ReadTransferData(item)
		if data == nil {
			return item.BasePrice + delta
		}
		return data.Price + delta

	default:
		if data := readers.ReadCruiseData(item); data != nil {
			return data.TotalPrice + delta
		}
		return item.BasePrice + delta
	}
}

// optionDelta resolves the signed price offset of the chosen item option;
// an unset or unknown option id contributes 0.
func optionDelta(item *proposal.Item, sel selection.Selection) float64 {
	if sel.OptionID == "" {
		return 0
	}
	for _, opt := range item.Options {
		if opt.ID == sel.OptionID {
			return opt.PriceDelta
		}
	}
	return 0
}

// --------------------------------------------------
// AGGREGATE TOTALS
// --------------------------------------------------

type Totals struct {
	TotalPrimary       float64 `json:"total_primary"`
	TotalSecondary     float64 `json:"total_secondary"`
	PrimaryCurrency    string  `json:"primary_currency"`
	SecondaryCurrency  string  `json:"secondary_currency"`
	ItemsCount         int     `json:"items_count"`
	SelectedItemsCount int     `json:"selected_items_count"`
}

// Totals sums the price of exactly the selected items; unselected items
// contribute nothing, whatever their stored price.
func (e *Engine) Totals(
	sections []*proposal.Section,
	selections map[string]selection.Selection,
	primaryCurrency, secondaryCurrency string,
) Totals {
	t := Totals{
		PrimaryCurrency:   primaryCurrency,
		SecondaryCurrency: secondaryCurrency,
	}

	for _, section := range sections {
		for _, item := range section.Items {
			t.ItemsCount++

			sel, ok := selections[item.ID]
			if !ok || !sel.Selected {
				continue
			}

			t.SelectedItemsCount++
			t.TotalPrimary += e.ItemPrice(item, sel)
		}
	}

	t.TotalSecondary = e.Convert(t.TotalPrimary, primaryCurrency, secondaryCurrency)
	return t
}
