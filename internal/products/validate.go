package product

import (
	"strings"

	"github.com/petrolube/lubedash-backend/pkg/types"
)

// Catalog options surfaced to the dashboard UI.
var (
	Categories = []string{
		"Motor Oil",
		"Synthetic Oil",
		"Transmission Fluid",
		"Brake Fluid",
		"Coolant",
		"Gear Oil",
		"Hydraulic Fluid",
		"Grease",
	}

	ViscosityOptions = []string{"0W-20", "5W-20", "5W-30", "10W-30", "10W-40", "15W-40", "20W-50"}
)

// ValidateProductInput checks required fields for a catalog entry. A missing
// stock value decodes to zero and passes; only explicit negatives are flagged.
func ValidateProductInput(input ProductInput) types.ValidationResult {
	var errs []string

	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, "Product name is required")
	}
	if strings.TrimSpace(input.Category) == "" {
		errs = append(errs, "Category is required")
	}
	if input.Price.Sign() <= 0 {
		errs = append(errs, "Price must be greater than 0")
	}
	if input.Stock < 0 {
		errs = append(errs, "Stock cannot be negative")
	}

	return types.NewValidationResult(errs)
}
