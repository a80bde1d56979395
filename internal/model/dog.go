package model

import (
	"encoding/json"
	"time"
)

// Dog is an adoptable animal as returned by the listing endpoint.
// The listing controller only relies on ID; everything else is carried
// through for the renderer.
type Dog struct {
	ID                int64            `json:"id"`
	Slug              string           `json:"slug,omitempty"`
	Name              string           `json:"name"`
	Breed             string           `json:"breed,omitempty"`
	StandardizedBreed string           `json:"standardized_breed,omitempty"`
	AgeText           string           `json:"age_text,omitempty"`
	AgeCategory       AgeCategory      `json:"age_category,omitempty"`
	Sex               string           `json:"sex,omitempty"`
	StandardizedSize  Size             `json:"standardized_size,omitempty"`
	PrimaryImageURL   string           `json:"primary_image_url,omitempty"`
	AdoptionURL       string           `json:"adoption_url,omitempty"`
	Status            string           `json:"status,omitempty"`
	Organization      *OrganizationRef `json:"organization,omitempty"`
	CreatedAt         *time.Time       `json:"created_at,omitempty"`
	Properties        json.RawMessage  `json:"properties,omitempty"`
}

// OrganizationRef is the subset of organization data embedded in a Dog.
type OrganizationRef struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug,omitempty"`
	Country string `json:"country,omitempty"`
	City    string `json:"city,omitempty"`
}

// Location returns a short human-readable location for the dog, or "".
func (d *Dog) Location() string {
	if d.Organization == nil {
		return ""
	}
	switch {
	case d.Organization.City != "" && d.Organization.Country != "":
		return d.Organization.City + ", " + d.Organization.Country
	case d.Organization.Country != "":
		return d.Organization.Country
	}
	return d.Organization.City
}
