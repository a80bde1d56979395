package model

import "strings"

// Sex narrows the listing to male or female dogs.
type Sex string

const (
	SexAny    Sex = ""
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// String returns the string representation of the sex, "any" when neutral.
func (s Sex) String() string {
	if s == SexAny {
		return "any"
	}
	return string(s)
}

// IsValid checks whether the sex is a known value (including neutral).
func (s Sex) IsValid() bool {
	switch s {
	case SexAny, SexMale, SexFemale:
		return true
	}
	return false
}

// Size is the standardized size bucket assigned by the backend.
type Size string

const (
	SizeAny    Size = ""
	SizeTiny   Size = "Tiny"
	SizeSmall  Size = "Small"
	SizeMedium Size = "Medium"
	SizeLarge  Size = "Large"
	SizeXLarge Size = "XLarge"
)

// String returns the string representation of the size, "any" when neutral.
func (s Size) String() string {
	if s == SizeAny {
		return "any"
	}
	return string(s)
}

// IsValid checks whether the size is a known value (including neutral).
func (s Size) IsValid() bool {
	switch s {
	case SizeAny, SizeTiny, SizeSmall, SizeMedium, SizeLarge, SizeXLarge:
		return true
	}
	return false
}

// AgeCategory is the coarse age bucket assigned by the backend.
type AgeCategory string

const (
	AgeAny    AgeCategory = ""
	AgePuppy  AgeCategory = "Puppy"
	AgeYoung  AgeCategory = "Young"
	AgeAdult  AgeCategory = "Adult"
	AgeSenior AgeCategory = "Senior"
)

// String returns the string representation of the age category, "any" when neutral.
func (a AgeCategory) String() string {
	if a == AgeAny {
		return "any"
	}
	return string(a)
}

// IsValid checks whether the age category is a known value (including neutral).
func (a AgeCategory) IsValid() bool {
	switch a {
	case AgeAny, AgePuppy, AgeYoung, AgeAdult, AgeSenior:
		return true
	}
	return false
}

// Filter holds the criteria for listing adoptable dogs.
// The zero value is the neutral filter: every field at its zero value means
// "any" for that dimension. Filters are compared by value.
type Filter struct {
	Search             string      `json:"search,omitempty" toml:"search,omitempty"`
	Breed              string      `json:"breed,omitempty" toml:"breed,omitempty"`
	OrganizationID     int64       `json:"organization_id,omitempty" toml:"organization_id,omitempty"`
	Sex                Sex         `json:"sex,omitempty" toml:"sex,omitempty"`
	Size               Size        `json:"size,omitempty" toml:"size,omitempty"`
	AgeCategory        AgeCategory `json:"age_category,omitempty" toml:"age_category,omitempty"`
	LocationCountry    string      `json:"location_country,omitempty" toml:"location_country,omitempty"`
	AvailableToCountry string      `json:"available_to_country,omitempty" toml:"available_to_country,omitempty"`
	// AvailableToRegion is only meaningful together with AvailableToCountry.
	AvailableToRegion string `json:"available_to_region,omitempty" toml:"available_to_region,omitempty"`
}

// Equal reports whether f and other select the same dogs.
func (f Filter) Equal(other Filter) bool {
	return f == other
}

// IsNeutral reports whether f applies no constraint at all.
func (f Filter) IsNeutral() bool {
	return f == Filter{}
}

// Normalize returns a copy of f with surrounding whitespace trimmed and the
// region cleared when no concrete country is selected.
func (f Filter) Normalize() Filter {
	f.Search = strings.TrimSpace(f.Search)
	f.Breed = strings.TrimSpace(f.Breed)
	f.LocationCountry = strings.TrimSpace(f.LocationCountry)
	f.AvailableToCountry = strings.TrimSpace(f.AvailableToCountry)
	f.AvailableToRegion = strings.TrimSpace(f.AvailableToRegion)
	if isAny(f.AvailableToCountry) {
		f.AvailableToCountry = ""
		f.AvailableToRegion = ""
	}
	if isAny(f.LocationCountry) {
		f.LocationCountry = ""
	}
	if isAny(f.AvailableToRegion) {
		f.AvailableToRegion = ""
	}
	if f.OrganizationID < 0 {
		f.OrganizationID = 0
	}
	return f
}

// WithSearch returns a copy of f with the free-text search replaced.
func (f Filter) WithSearch(search string) Filter {
	f.Search = search
	return f.Normalize()
}

// isAny reports whether s is the neutral spelling of a free-form field.
func isAny(s string) bool {
	return s == "" || strings.EqualFold(s, "any")
}

// FilterPatch is a partial update to a Filter. Nil fields are left unchanged;
// a pointer to the zero value resets that field to neutral.
type FilterPatch struct {
	Search             *string
	Breed              *string
	OrganizationID     *int64
	Sex                *Sex
	Size               *Size
	AgeCategory        *AgeCategory
	LocationCountry    *string
	AvailableToCountry *string
	AvailableToRegion  *string
}

// Apply merges p into f and returns the normalized result.
func (p FilterPatch) Apply(f Filter) Filter {
	if p.Search != nil {
		f.Search = *p.Search
	}
	if p.Breed != nil {
		f.Breed = *p.Breed
	}
	if p.OrganizationID != nil {
		f.OrganizationID = *p.OrganizationID
	}
	if p.Sex != nil {
		f.Sex = *p.Sex
	}
	if p.Size != nil {
		f.Size = *p.Size
	}
	if p.AgeCategory != nil {
		f.AgeCategory = *p.AgeCategory
	}
	if p.LocationCountry != nil {
		f.LocationCountry = *p.LocationCountry
	}
	if p.AvailableToCountry != nil {
		f.AvailableToCountry = *p.AvailableToCountry
	}
	if p.AvailableToRegion != nil {
		f.AvailableToRegion = *p.AvailableToRegion
	}
	return f.Normalize()
}

// ResetPatch returns a patch that sets every field back to neutral.
func ResetPatch() FilterPatch {
	var (
		empty string
		org   int64
		sex   Sex
		size  Size
		age   AgeCategory
	)
	return FilterPatch{
		Search:             &empty,
		Breed:              &empty,
		OrganizationID:     &org,
		Sex:                &sex,
		Size:               &size,
		AgeCategory:        &age,
		LocationCountry:    &empty,
		AvailableToCountry: &empty,
		AvailableToRegion:  &empty,
	}
}

// PatchFrom returns a patch that replaces every field with the value in f.
func PatchFrom(f Filter) FilterPatch {
	return FilterPatch{
		Search:             &f.Search,
		Breed:              &f.Breed,
		OrganizationID:     &f.OrganizationID,
		Sex:                &f.Sex,
		Size:               &f.Size,
		AgeCategory:        &f.AgeCategory,
		LocationCountry:    &f.LocationCountry,
		AvailableToCountry: &f.AvailableToCountry,
		AvailableToRegion:  &f.AvailableToRegion,
	}
}

// Ptr returns a pointer to v, for building FilterPatch literals.
func Ptr[T any](v T) *T {
	return &v
}
