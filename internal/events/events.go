// Package events publishes listing telemetry and consumes upstream change
// notifications over NATS.
package events

import (
	"context"

	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/model"
)

// Topics published by the listing controller.
const (
	TopicFilterChanged = "listing.filter.changed"
	TopicPageLoaded    = "listing.page.loaded"
	TopicFetchFailed   = "listing.fetch.failed"
)

// Topics published upstream by the aggregator when its catalogue changes.
const (
	TopicAnimalsAll          = "animals.>"
	TopicAnimalCreated       = "animals.created"
	TopicAnimalUpdated       = "animals.updated"
	TopicAnimalRemoved       = "animals.removed"
	TopicOrganizationUpdated = "animals.organization.updated"
)

// Event types

// FilterChanged is emitted when a filter change has been applied and its
// first page accepted.
type FilterChanged struct {
	ListingID string       `json:"listing_id"`
	Filter    model.Filter `json:"filter"`
	Results   int          `json:"results"`
	HasMore   bool         `json:"has_more"`
}

// PageLoaded is emitted for every accepted page after the first.
type PageLoaded struct {
	ListingID string       `json:"listing_id"`
	Filter    model.Filter `json:"filter"`
	Page      int          `json:"page"`
	Added     int          `json:"added"`
	Total     int          `json:"total"`
}

// FetchFailed is emitted when an accepted request ends in an error.
type FetchFailed struct {
	ListingID  string       `json:"listing_id"`
	Kind       string       `json:"kind"`
	Filter     model.Filter `json:"filter"`
	Page       int          `json:"page"`
	StatusCode int          `json:"status_code,omitempty"`
	Error      string       `json:"error"`
}

// AnimalChanged is the payload of upstream animals.* notifications.
type AnimalChanged struct {
	AnimalID       int64  `json:"animal_id"`
	OrganizationID int64  `json:"organization_id,omitempty"`
	Change         string `json:"change,omitempty"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
