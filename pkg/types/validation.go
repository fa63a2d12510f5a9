package types

// ValidationResult carries the outcome of an input validation pass. Errors
// preserves the field check order and is empty exactly when IsValid is true.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// NewValidationResult derives the validity flag from the collected errors.
func NewValidationResult(errors []string) ValidationResult {
	return ValidationResult{
		IsValid: len(errors) == 0,
		Errors:  errors,
	}
}
