package model

// Organization is a rescue organization listing dogs on the site.
type Organization struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Slug       string   `json:"slug,omitempty"`
	Country    string   `json:"country,omitempty"`
	City       string   `json:"city,omitempty"`
	WebsiteURL string   `json:"website_url,omitempty"`
	TotalDogs  int      `json:"total_dogs,omitempty"`
	ShipsTo    []string `json:"ships_to,omitempty"`
}

// OrganizationSet is the set of organization ids known to the page.
// A nil set contains nothing.
type OrganizationSet map[int64]struct{}

// NewOrganizationSet builds a set from the given organizations.
func NewOrganizationSet(orgs []Organization) OrganizationSet {
	s := make(OrganizationSet, len(orgs))
	for _, o := range orgs {
		s[o.ID] = struct{}{}
	}
	return s
}

// OrganizationIDs builds a set directly from ids.
func OrganizationIDs(ids ...int64) OrganizationSet {
	s := make(OrganizationSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is a known organization.
func (s OrganizationSet) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}
