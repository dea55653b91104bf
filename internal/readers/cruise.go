package readers

import "welcomecrm/internal/proposal"

// ReadCruiseData extracts cruise view data from an item. Cruises only
// exist in the namespaced shape; there is no legacy flat fallback.
func ReadCruiseData(item *proposal.Item) *CruiseViewData {
	rc := item.RichContent
	if rc == nil {
		return nil
	}

	cruise := rawMap(rc["cruise"])
	if cruise == nil {
		return nil
	}

	embarkationDate := str(cruise, "embarkation_date")
	disembarkationDate := str(cruise, "disembarkation_date")
	nights := int(num(cruise, "nights"))
	if nights == 0 {
		nights = calculateNights(embarkationDate, disembarkationDate)
	}

	priceType := strOr(cruise, "price_type", "total")
	price := num(cruise, "price")
	if price == 0 {
		price = item.BasePrice
	}
	passengers := int(num(cruise, "passengers"))
	if passengers == 0 {
		passengers = 1
	}
	totalPrice := price
	if priceType == "per_person" {
		totalPrice = price * float64(passengers)
	}

	ports := make([]CruisePortViewData, 0)
	for _, port := range rawSlice(cruise["ports"]) {
		ports = append(ports, CruisePortViewData{
			PortName:         str(port, "port_name"),
			Country:          str(port, "country"),
			ArrivalDate:      str(port, "arrival_date"),
			IsEmbarkation:    boolVal(port, "is_embarkation"),
			IsDisembarkation: boolVal(port, "is_disembarkation"),
		})
	}

	options := make([]CruiseOptionViewData, 0)
	for _, opt := range rawSlice(cruise["options"]) {
		if !notFalse(opt, "enabled") {
			continue
		}
		options = append(options, CruiseOptionViewData{
			ID:            str(opt, "id"),
			CabinType:     str(opt, "cabin_type"),
			Label:         str(opt, "label"),
			Price:         num(opt, "price"),
			IsRecommended: boolVal(opt, "is_recommended"),
			Enabled:       true,
		})
	}

	return &CruiseViewData{
		CruiseName:         strOr(cruise, "cruise_name", item.Title),
		CruiseLine:         str(cruise, "cruise_line"),
		ShipName:           str(cruise, "ship_name"),
		Ports:              ports,
		EmbarkationDate:    embarkationDate,
		DisembarkationDate: disembarkationDate,
		Nights:             nights,
		CabinType:          str(cruise, "cabin_type"),
		BoardType:          str(cruise, "board_type"),
		PriceType:          priceType,
		Price:              price,
		Passengers:         passengers,
		TotalPrice:         totalPrice,
		Included:           strList(cruise["included"]),
		ImageURL:           itemImageURL(cruise, item),
		Options:            options,
	}
}
