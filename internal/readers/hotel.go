package readers

import "welcomecrm/internal/proposal"

// ReadHotelData extracts hotel view data from an item. It reads the
// rich_content.hotel namespace first and falls back to the legacy flat
// shape; nil means the item carries no usable hotel data.
func ReadHotelData(item *proposal.Item) *HotelViewData {
	rc := item.RichContent
	if rc == nil {
		return nil
	}

	hotel := rawMap(rc["hotel"])
	if hotel == nil {
		if str(rc, "hotel_name") != "" || str(rc, "location_city") != "" {
			return readLegacyHotelData(item, rc)
		}
		return nil
	}

	checkInDate := str(hotel, "check_in_date")
	checkOutDate := str(hotel, "check_out_date")
	nights := int(num(hotel, "nights"))
	if nights == 0 {
		nights = calculateNights(checkInDate, checkOutDate)
	}

	pricePerNight := num(hotel, "price_per_night")
	totalPrice := pricePerNight * float64(max(1, nights))

	options := make([]HotelOptionViewData, 0)
	for _, opt := range rawSlice(hotel["options"]) {
		if !notFalse(opt, "enabled") {
			continue
		}
		options = append(options, HotelOptionViewData{
			ID:            str(opt, "id"),
			Label:         str(opt, "label"),
			PriceDelta:    num(opt, "price_delta"),
			IsRecommended: boolVal(opt, "is_recommended"),
			Enabled:       true,
		})
	}

	boardType := str(hotel, "board_type")
	if label, ok := boardTypeLabels[boardType]; ok {
		boardType = label
	}

	return &HotelViewData{
		HotelName:          strOr(hotel, "hotel_name", item.Title),
		LocationCity:       str(hotel, "location_city"),
		StarRating:         num(hotel, "star_rating"),
		RoomType:           str(hotel, "room_type"),
		BoardType:          boardType,
		CheckInDate:        checkInDate,
		CheckOutDate:       checkOutDate,
		CheckInTime:        strOr(hotel, "check_in_time", "14:00"),
		CheckOutTime:       strOr(hotel, "check_out_time", "12:00"),
		Nights:             nights,
		PricePerNight:      pricePerNight,
		TotalPrice:         totalPrice,
		Amenities:          strList(hotel["amenities"]),
		CancellationPolicy: str(hotel, "cancellation_policy"),
		ImageURL:           itemImageURL(hotel, item),
		Images:             strList(hotel["images"]),
		Options:            options,
	}
}

// readLegacyHotelData reads the flat pre-builder shape. Upgrade options
// come from the proposal_options table in this format.
func readLegacyHotelData(item *proposal.Item, rc map[string]any) *HotelViewData {
	checkInDate := str(rc, "check_in_date")
	checkOutDate := str(rc, "check_out_date")
	nights := int(num(rc, "nights"))
	if nights == 0 {
		nights = calculateNights(checkInDate, checkOutDate)
	}

	pricePerNight := num(rc, "price_per_night")
	if pricePerNight == 0 {
		pricePerNight = item.BasePrice
	}

	options := make([]HotelOptionViewData, 0, len(item.Options))
	for _, opt := range item.Options {
		options = append(options, HotelOptionViewData{
			ID:         opt.ID,
			Label:      opt.OptionLabel,
			PriceDelta: opt.PriceDelta,
			Enabled:    true,
		})
	}

	boardType := str(rc, "board_type")
	if label, ok := boardTypeLabels[boardType]; ok {
		boardType = label
	}

	return &HotelViewData{
		HotelName:          strOr(rc, "hotel_name", item.Title),
		LocationCity:       str(rc, "location_city"),
		StarRating:         num(rc, "star_rating"),
		RoomType:           str(rc, "room_type"),
		BoardType:          boardType,
		CheckInDate:        checkInDate,
		CheckOutDate:       checkOutDate,
		CheckInTime:        strOr(rc, "check_in_time", "14:00"),
		CheckOutTime:       strOr(rc, "check_out_time", "12:00"),
		Nights:             nights,
		PricePerNight:      pricePerNight,
		TotalPrice:         pricePerNight * float64(max(1, nights)),
		Amenities:          strList(rc["amenities"]),
		CancellationPolicy: str(rc, "cancellation_policy"),
		ImageURL:           itemImageURL(rc, item),
		Images:             strList(rc["images"]),
		Options:            options,
	}
}

func itemImageURL(m map[string]any, item *proposal.Item) string {
	if url := str(m, "image_url"); url != "" {
		return url
	}
	if item.ImageURL != nil {
		return *item.ImageURL
	}
	return ""
}
