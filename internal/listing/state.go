package listing

import (
	"errors"

	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/client"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/model"
)

// ErrorKind classifies a user-visible fetch failure.
type ErrorKind string

const (
	ErrorNetwork ErrorKind = "network"
	ErrorHTTP    ErrorKind = "http"
)

// ErrorInfo is the error banner state. Cancellations never produce one.
type ErrorInfo struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	// Request is the kind of request that failed; Retry re-issues it.
	Request Kind
}

func newErrorInfo(kind Kind, err error) *ErrorInfo {
	info := &ErrorInfo{Kind: ErrorNetwork, Message: err.Error(), Request: kind}
	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) {
		info.Kind = ErrorHTTP
		info.StatusCode = httpErr.StatusCode
		info.Message = httpErr.Message
	}
	return info
}

// Snapshot is a read-only view of the controller state for the renderer.
type Snapshot struct {
	Items         []model.Dog
	IsLoading     bool
	IsLoadingMore bool
	HasMore       bool
	Err           *ErrorInfo
	Filter        model.Filter
	// Page is the last page whose results are included in Items.
	Page int
	// Query is the encoded address-bar state.
	Query string
}

// Empty reports whether the renderer should show the empty state.
func (s Snapshot) Empty() bool {
	return len(s.Items) == 0 && !s.IsLoading
}
