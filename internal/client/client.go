// Package client provides the transport-agnostic gateway the listing
// controller fetches pages through, and an HTTP/JSON implementation that talks
// to the rescue dog REST API.
package client

import (
	"context"

	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/model"
)

// Gateway is the only component of the listing pipeline that performs I/O.
// Implementations must honour ctx cancellation on a best-effort basis and
// report it as ErrCancelled.
type Gateway interface {
	// ListDogs returns the page of dogs matching filter at the cursor position.
	ListDogs(ctx context.Context, filter model.Filter, cursor model.Cursor) (*Page, error)

	// ListOrganizations returns every organization known to the backend.
	ListOrganizations(ctx context.Context) ([]model.Organization, error)
}

// Page is one page of listing results.
type Page struct {
	Dogs []model.Dog `json:"results"`
	// Total is the backend's total match count when it reports one, otherwise -1.
	Total int `json:"total"`
}
