package readers

import (
	"strings"

	"welcomecrm/internal/proposal"
)

// ReadTransferData extracts transfer view data from an item, or nil when
// the payload has no transfer shape.
func ReadTransferData(item *proposal.Item) *TransferViewData {
	rc := item.RichContent
	if rc == nil {
		return nil
	}

	transfer := rawMap(rc["transfer"])
	if transfer == nil {
		if str(rc, "origin") != "" && str(rc, "destination") != "" {
			return readLegacyTransferData(item, rc)
		}
		return nil
	}

	vehicleType := str(transfer, "vehicle_type")
	if label, ok := vehicleTypeLabels[vehicleType]; ok {
		vehicleType = label
	}

	options := make([]TransferOptionViewData, 0)
	for _, opt := range rawSlice(transfer["options"]) {
		if !notFalse(opt, "enabled") {
			continue
		}
		options = append(options, TransferOptionViewData{
			ID:            str(opt, "id"),
			Vehicle:       str(opt, "vehicle"),
			Label:         str(opt, "label"),
			Price:         num(opt, "price"),
			IsRecommended: boolVal(opt, "is_recommended"),
			Enabled:       true,
		})
	}

	origin := str(transfer, "origin")
	destination := str(transfer, "destination")

	price := num(transfer, "price")
	if price == 0 {
		price = item.BasePrice
	}

	passengers := int(num(transfer, "passengers"))
	if passengers == 0 {
		passengers = 1
	}

	return &TransferViewData{
		Origin:          origin,
		OriginType:      parseLocationType(str(transfer, "origin_type")),
		Destination:     destination,
		DestinationType: parseLocationType(str(transfer, "destination_type")),
		RouteLabel:      origin + " → " + destination,
		Date:            str(transfer, "date"),
		Time:            str(transfer, "time"),
		VehicleType:     vehicleType,
		Passengers:      passengers,
		Price:           price,
		Currency:        strOr(transfer, "currency", "BRL"),
		ImageURL:        itemImageURL(transfer, item),
		Options:         options,
	}
}

func readLegacyTransferData(item *proposal.Item, rc map[string]any) *TransferViewData {
	vehicleType := str(rc, "vehicle_type")
	if label, ok := vehicleTypeLabels[vehicleType]; ok {
		vehicleType = label
	}

	options := make([]TransferOptionViewData, 0, len(item.Options))
	for _, opt := range item.Options {
		options = append(options, TransferOptionViewData{
			ID:      opt.ID,
			Label:   opt.OptionLabel,
			Price:   opt.PriceDelta,
			Enabled: true,
		})
	}

	origin := str(rc, "origin")
	destination := str(rc, "destination")

	price := num(rc, "price")
	if price == 0 {
		price = item.BasePrice
	}

	passengers := int(num(rc, "passengers"))
	if passengers == 0 {
		passengers = 1
	}

	return &TransferViewData{
		Origin:          origin,
		OriginType:      parseLocationType(str(rc, "origin_type")),
		Destination:     destination,
		DestinationType: parseLocationType(str(rc, "destination_type")),
		RouteLabel:      origin + " → " + destination,
		Date:            str(rc, "date"),
		Time:            str(rc, "time"),
		VehicleType:     vehicleType,
		Passengers:      passengers,
		Price:           price,
		Currency:        strOr(rc, "currency", "BRL"),
		ImageURL:        itemImageURL(rc, item),
		Options:         options,
	}
}

func parseLocationType(value string) string {
	switch strings.ToLower(value) {
	case "airport", "aeroporto":
		return "airport"
	case "hotel":
		return "hotel"
	case "port", "porto":
		return "port"
	default:
		return "address"
	}
}
