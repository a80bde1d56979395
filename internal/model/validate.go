package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// MaxSearchLength is the longest free-text search, in characters, the listing
// endpoint accepts.
const MaxSearchLength = 200

// ValidateFilter checks a Filter for values the listing endpoint cannot accept.
// known may be nil to skip the organization check.
// It returns a *ValidationError if any rules fail, or nil if the filter is valid.
func ValidateFilter(f Filter, known OrganizationSet) error {
	var ve ValidationError

	if !f.Sex.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{Field: "sex", Message: fmt.Sprintf("invalid value %q", f.Sex)})
	}
	if !f.Size.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{Field: "size", Message: fmt.Sprintf("invalid value %q", f.Size)})
	}
	if !f.AgeCategory.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{Field: "age_category", Message: fmt.Sprintf("invalid value %q", f.AgeCategory)})
	}

	if f.OrganizationID < 0 {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "organization_id",
			Message: fmt.Sprintf("must be positive, got %d", f.OrganizationID),
		})
	} else if f.OrganizationID > 0 && known != nil && !known.Contains(f.OrganizationID) {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "organization_id",
			Message: fmt.Sprintf("unknown organization %d", f.OrganizationID),
		})
	}

	// Region without a country cannot be expressed to the backend.
	if f.AvailableToRegion != "" && isAny(f.AvailableToCountry) {
		ve.Errors = append(ve.Errors, FieldError{Field: "available_to_region", Message: "requires available_to_country"})
	}

	if utf8.RuneCountInString(f.Search) > MaxSearchLength {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "search",
			Message: fmt.Sprintf("must be %d characters or fewer", MaxSearchLength),
		})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}
