package viewer

import (
	"fmt"

	"welcomecrm/internal/proposal"
	"welcomecrm/internal/selection"
)

type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// Validate checks that every exclusive-choice section (2+ items) has a
// selected item. It reports every violation, one message per section;
// sections with 0 or 1 items never fail (those are always-selected or
// freely optional).
func Validate(sections []*proposal.Section, selections map[string]selection.Selection) ValidationResult {
	var errs []string

	for _, section := range sections {
		if len(section.Items) < 2 {
			continue
		}

		hasSelection := false
		for _, item := range section.Items {
			if selections[item.ID].Selected {
				hasSelection = true
				break
			}
		}
		if !hasSelection {
			errs = append(errs, fmt.Sprintf("Selecione uma opção em %q", section.Title))
		}
	}

	return ValidationResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}
