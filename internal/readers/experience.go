package readers

import (
	"strings"

	"welcomecrm/internal/proposal"
)

// ReadExperienceData extracts experience view data from an item, or nil
// when the payload has no experience shape.
func ReadExperienceData(item *proposal.Item) *ExperienceViewData {
	rc := item.RichContent
	if rc == nil {
		return nil
	}

	exp := rawMap(rc["experience"])
	if exp == nil {
		if str(rc, "name") != "" || str(rc, "meeting_point") != "" || str(rc, "duration") != "" {
			return readLegacyExperienceData(item, rc)
		}
		return nil
	}

	priceType := strOr(exp, "price_type", "total")
	price := num(exp, "price")
	if price == 0 {
		price = item.BasePrice
	}
	participants := int(num(exp, "participants"))
	if participants == 0 {
		participants = 1
	}
	totalPrice := price
	if priceType == "per_person" {
		totalPrice = price * float64(participants)
	}

	options := make([]ExperienceOptionViewData, 0)
	for _, opt := range rawSlice(exp["options"]) {
		if !notFalse(opt, "enabled") {
			continue
		}
		options = append(options, ExperienceOptionViewData{
			ID:            str(opt, "id"),
			Label:         str(opt, "label"),
			Price:         num(opt, "price"),
			IsRecommended: boolVal(opt, "is_recommended"),
			Enabled:       true,
		})
	}

	return &ExperienceViewData{
		Name:            strOr(exp, "name", item.Title),
		Date:            str(exp, "date"),
		Time:            str(exp, "time"),
		Duration:        str(exp, "duration"),
		LocationCity:    strOr(exp, "location_city", str(exp, "location")),
		MeetingPoint:    str(exp, "meeting_point"),
		Participants:    participants,
		PriceType:       priceType,
		Price:           price,
		TotalPrice:      totalPrice,
		Currency:        strOr(exp, "currency", "BRL"),
		Included:        strList(exp["included"]),
		DifficultyLevel: parseDifficultyLevel(str(exp, "difficulty_level")),
		ImageURL:        itemImageURL(exp, item),
		Options:         options,
	}
}

func readLegacyExperienceData(item *proposal.Item, rc map[string]any) *ExperienceViewData {
	priceType := strOr(rc, "price_type", "total")
	price := num(rc, "price")
	if price == 0 {
		price = item.BasePrice
	}
	participants := int(num(rc, "participants"))
	if participants == 0 {
		participants = 1
	}
	totalPrice := price
	if priceType == "per_person" {
		totalPrice = price * float64(participants)
	}

	options := make([]ExperienceOptionViewData, 0, len(item.Options))
	for _, opt := range item.Options {
		options = append(options, ExperienceOptionViewData{
			ID:      opt.ID,
			Label:   opt.OptionLabel,
			Price:   opt.PriceDelta,
			Enabled: true,
		})
	}

	return &ExperienceViewData{
		Name:            strOr(rc, "name", item.Title),
		Date:            str(rc, "date"),
		Time:            str(rc, "time"),
		Duration:        str(rc, "duration"),
		LocationCity:    strOr(rc, "location_city", str(rc, "location")),
		MeetingPoint:    str(rc, "meeting_point"),
		Participants:    participants,
		PriceType:       priceType,
		Price:           price,
		TotalPrice:      totalPrice,
		Currency:        strOr(rc, "currency", "BRL"),
		Included:        strList(rc["included"]),
		DifficultyLevel: parseDifficultyLevel(str(rc, "difficulty_level")),
		ImageURL:        itemImageURL(rc, item),
		Options:         options,
	}
}

// parseDifficultyLevel normalizes the builder's mixed pt/en difficulty
// values.
func parseDifficultyLevel(value string) string {
	switch strings.ToLower(value) {
	case "easy", "facil", "fácil":
		return "easy"
	case "moderate", "moderado", "moderada":
		return "moderate"
	case "challenging", "hard", "dificil", "difícil":
		return "challenging"
	default:
		return ""
	}
}
