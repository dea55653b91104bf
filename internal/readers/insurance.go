package readers

import (
	"strings"

	"welcomecrm/internal/proposal"
)

// ReadInsuranceData extracts insurance view data from an item, or nil
// when the payload has no insurance shape.
func ReadInsuranceData(item *proposal.Item) *InsuranceViewData {
	rc := item.RichContent
	if rc == nil {
		return nil
	}

	ins := rawMap(rc["insurance"])
	if ins == nil {
		if str(rc, "provider") != "" || rc["coverages"] != nil || rc["medical_coverage"] != nil {
			return readLegacyInsuranceData(item, rc)
		}
		return nil
	}

	priceType := strOr(ins, "price_type", "total")
	price := num(ins, "price")
	if price == 0 {
		price = item.BasePrice
	}
	travelers := int(num(ins, "travelers"))
	if travelers == 0 {
		travelers = 1
	}
	totalPrice := price
	if priceType == "per_person" {
		totalPrice = price * float64(travelers)
	}

	options := make([]InsuranceOptionViewData, 0)
	for _, opt := range rawSlice(ins["options"]) {
		if !notFalse(opt, "enabled") {
			continue
		}
		options = append(options, InsuranceOptionViewData{
			ID:            str(opt, "id"),
			Label:         str(opt, "label"),
			Tier:          parseTier(str(opt, "tier")),
			Price:         num(opt, "price"),
			IsRecommended: boolVal(opt, "is_recommended"),
			Enabled:       true,
		})
	}

	return &InsuranceViewData{
		Name:                    strOr(ins, "name", item.Title),
		Provider:                str(ins, "provider"),
		CoverageStart:           str(ins, "coverage_start"),
		CoverageEnd:             str(ins, "coverage_end"),
		Travelers:               travelers,
		MedicalCoverage:         num(ins, "medical_coverage"),
		MedicalCoverageCurrency: strOr(ins, "medical_coverage_currency", "USD"),
		Price:                   price,
		PriceType:               priceType,
		TotalPrice:              totalPrice,
		Coverages:               strList(ins["coverages"]),
		ImageURL:                itemImageURL(ins, item),
		Options:                 options,
	}
}

func readLegacyInsuranceData(item *proposal.Item, rc map[string]any) *InsuranceViewData {
	priceType := strOr(rc, "price_type", "total")
	price := num(rc, "price")
	if price == 0 {
		price = item.BasePrice
	}
	travelers := int(num(rc, "travelers"))
	if travelers == 0 {
		travelers = int(num(rc, "travelers_count"))
	}
	if travelers == 0 {
		travelers = 1
	}
	totalPrice := price
	if priceType == "per_person" {
		totalPrice = price * float64(travelers)
	}

	medicalCoverage := num(rc, "medical_coverage")
	if medicalCoverage == 0 {
		medicalCoverage = num(rc, "coverage_amount")
	}

	coverages := strList(rc["coverages"])
	if len(coverages) == 0 {
		coverages = strList(rc["features"])
	}

	options := make([]InsuranceOptionViewData, 0, len(item.Options))
	for _, opt := range item.Options {
		options = append(options, InsuranceOptionViewData{
			ID:      opt.ID,
			Label:   opt.OptionLabel,
			Tier:    "standard",
			Price:   opt.PriceDelta,
			Enabled: true,
		})
	}

	return &InsuranceViewData{
		Name:                    strOr(rc, "name", item.Title),
		Provider:                str(rc, "provider"),
		CoverageStart:           strOr(rc, "coverage_start", str(rc, "start_date")),
		CoverageEnd:             strOr(rc, "coverage_end", str(rc, "end_date")),
		Travelers:               travelers,
		MedicalCoverage:         medicalCoverage,
		MedicalCoverageCurrency: strOr(rc, "medical_coverage_currency", "USD"),
		Price:                   price,
		PriceType:               priceType,
		TotalPrice:              totalPrice,
		Coverages:               coverages,
		ImageURL:                itemImageURL(rc, item),
		Options:                 options,
	}
}

func parseTier(value string) string {
	switch strings.ToLower(value) {
	case "basic", "basico", "básico":
		return "basic"
	case "premium", "completo":
		return "premium"
	case "platinum", "platina":
		return "platinum"
	default:
		return "standard"
	}
}
