package readers

import "welcomecrm/internal/proposal"

// ReadFlightData extracts flight view data from an item. Three stored
// shapes are tolerated: the rich_content.flights namespace with legs, a
// legacy flat list of segments (grouped into outbound/return legs), and
// legs directly at the rich_content root.
//
// The item total is the sum of each leg's selected-option price, not the
// item's base_price: the base_price can go stale when the builder edits
// options after pricing.
func ReadFlightData(item *proposal.Item) *FlightsViewData {
	rc := item.RichContent
	if rc == nil {
		return nil
	}

	flights := rawMap(rc["flights"])
	if flights == nil {
		if segments := rawSlice(rc["segments"]); len(segments) > 0 {
			return readLegacyFlightData(item, rc, segments)
		}
		if legs := rawSlice(rc["legs"]); len(legs) > 0 {
			return readLegsPayload(item, rc, legs)
		}
		return nil
	}

	rawLegs := rawSlice(flights["legs"])
	if len(rawLegs) == 0 {
		return nil
	}
	return readLegsPayload(item, flights, rawLegs)
}

func readLegsPayload(item *proposal.Item, container map[string]any, rawLegs []map[string]any) *FlightsViewData {
	var calculatedTotal float64

	legs := make([]FlightLegViewData, 0, len(rawLegs))
	for _, rawLeg := range rawLegs {
		options := make([]FlightOptionViewData, 0)
		for _, opt := range rawSlice(rawLeg["options"]) {
			if !notFalse(opt, "enabled") {
				continue
			}
			cabinClass := strOr(opt, "cabin_class", "economy")
			if label, ok := cabinClassLabels[cabinClass]; ok {
				cabinClass = label
			}
			departureTime := str(opt, "departure_time")
			arrivalTime := str(opt, "arrival_time")
			options = append(options, FlightOptionViewData{
				ID:            str(opt, "id"),
				AirlineCode:   str(opt, "airline_code"),
				AirlineName:   str(opt, "airline_name"),
				FlightNumber:  str(opt, "flight_number"),
				DepartureTime: departureTime,
				ArrivalTime:   arrivalTime,
				Duration:      legDuration(departureTime, arrivalTime),
				CabinClass:    cabinClass,
				Stops:         int(num(opt, "stops")),
				Baggage:       str(opt, "baggage"),
				Price:         num(opt, "price"),
				Currency:      strOr(opt, "currency", "BRL"),
				IsRecommended: boolVal(opt, "is_recommended"),
				Enabled:       true,
			})
		}

		selected := pickFlightOption(options)
		if selected != nil {
			calculatedTotal += selected.Price
		}

		legType := strOr(rawLeg, "leg_type", "outbound")
		label := str(rawLeg, "label")
		if label == "" {
			label = legLabel(legType)
		}

		legs = append(legs, FlightLegViewData{
			ID:              str(rawLeg, "id"),
			Type:            legType,
			Label:           label,
			OriginCode:      str(rawLeg, "origin_code"),
			OriginCity:      str(rawLeg, "origin_city"),
			DestinationCode: str(rawLeg, "destination_code"),
			DestinationCity: str(rawLeg, "destination_city"),
			Date:            str(rawLeg, "date"),
			SelectedOption:  selected,
			AllOptions:      options,
		})
	}

	totalPrice := calculatedTotal
	if totalPrice == 0 {
		totalPrice = item.BasePrice
	}

	return &FlightsViewData{
		Legs:             legs,
		ShowPrices:       notFalse(container, "show_prices"),
		AllowMixAirlines: notFalse(container, "allow_mix_airlines"),
		TotalPrice:       totalPrice,
	}
}

// pickFlightOption returns the recommended option, else the first one.
func pickFlightOption(options []FlightOptionViewData) *FlightOptionViewData {
	for i := range options {
		if options[i].IsRecommended {
			return &options[i]
		}
	}
	if len(options) > 0 {
		return &options[0]
	}
	return nil
}

func legLabel(legType string) string {
	if legType == "return" {
		return "VOLTA"
	}
	return "IDA"
}

// --------------------------------------------------
// LEGACY SEGMENTS SHAPE
// --------------------------------------------------

func readLegacyFlightData(item *proposal.Item, rc map[string]any, segments []map[string]any) *FlightsViewData {
	outbound, returnSegs := groupSegmentsIntoLegs(segments)

	legs := make([]FlightLegViewData, 0, 2)
	if len(outbound) > 0 {
		legs = append(legs, legFromSegments(outbound, "outbound", "IDA"))
	}
	if len(returnSegs) > 0 {
		legs = append(legs, legFromSegments(returnSegs, "return", "VOLTA"))
	}

	return &FlightsViewData{
		Legs:             legs,
		ShowPrices:       notFalse(rc, "show_prices"),
		AllowMixAirlines: notFalse(rc, "allow_mix_airlines"),
		TotalPrice:       item.BasePrice,
	}
}

// groupSegmentsIntoLegs partitions a flat segment list into outbound and
// return groups. It first looks for a segment arriving back at the very
// first departure airport and walks backward over contiguous connections
// to find where the return begins; failing that, a >2-day gap between
// consecutive segments marks the boundary. Ambiguous itineraries (round
// trips inside 48h, more than two groups) fall through to a single
// outbound leg.
func groupSegmentsIntoLegs(segments []map[string]any) (outbound, returnSegs []map[string]any) {
	if len(segments) == 0 {
		return nil, nil
	}
	if len(segments) == 1 {
		return segments, nil
	}

	originAirport := str(segments[0], "departure_airport")
	returnStart := -1

	for i := 1; i < len(segments); i++ {
		if str(segments[i], "arrival_airport") != originAirport {
			continue
		}
		for j := i; j >= 1; j-- {
			if str(segments[j-1], "arrival_airport") == str(segments[j], "departure_airport") {
				returnStart = j
			} else {
				break
			}
		}
		if returnStart == -1 {
			returnStart = i
		}
		break
	}

	if returnStart == -1 {
		for i := 0; i < len(segments)-1; i++ {
			arr, ok1 := parseDate(str(segments[i], "arrival_date"))
			dep, ok2 := parseDate(str(segments[i+1], "departure_date"))
			if !ok1 || !ok2 {
				continue
			}
			if dep.Sub(arr).Hours()/24 > 2 {
				returnStart = i + 1
				break
			}
		}
	}

	if returnStart == -1 {
		return segments, nil
	}
	return segments[:returnStart], segments[returnStart:]
}

func legFromSegments(segments []map[string]any, legType, label string) FlightLegViewData {
	first := segments[0]
	last := segments[len(segments)-1]

	cabinClass := strOr(first, "cabin_class", "economy")
	if l, ok := cabinClassLabels[cabinClass]; ok {
		cabinClass = l
	}

	departureTime := str(first, "departure_time")
	arrivalTime := str(last, "arrival_time")

	option := FlightOptionViewData{
		ID:            "seg-" + legType,
		AirlineCode:   str(first, "airline_code"),
		AirlineName:   str(first, "airline_name"),
		FlightNumber:  str(first, "flight_number"),
		DepartureTime: departureTime,
		ArrivalTime:   arrivalTime,
		Duration:      legDuration(departureTime, arrivalTime),
		CabinClass:    cabinClass,
		Stops:         len(segments) - 1,
		Baggage:       str(first, "baggage_included"),
		Currency:      "BRL",
		IsRecommended: true,
		Enabled:       true,
	}

	return FlightLegViewData{
		ID:              "leg-" + legType,
		Type:            legType,
		Label:           label,
		OriginCode:      str(first, "departure_airport"),
		OriginCity:      str(first, "departure_city"),
		DestinationCode: str(last, "arrival_airport"),
		DestinationCity: str(last, "arrival_city"),
		Date:            str(first, "departure_date"),
		SelectedOption:  &option,
		AllOptions:      []FlightOptionViewData{option},
	}
}
