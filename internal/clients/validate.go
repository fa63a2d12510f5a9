package client

import (
	"strings"

	"github.com/petrolube/lubedash-backend/pkg/types"
)

// ValidateClientInput checks required fields for a new party record. All
// checks run independently so every missing field is reported at once.
func ValidateClientInput(input ClientInput) types.ValidationResult {
	var errs []string

	if strings.TrimSpace(input.PartyName) == "" {
		errs = append(errs, "Party name is required")
	}
	if strings.TrimSpace(input.PartyCode) == "" {
		errs = append(errs, "Party code is required")
	}
	if strings.TrimSpace(input.City) == "" {
		errs = append(errs, "City is required")
	}

	return types.NewValidationResult(errs)
}
