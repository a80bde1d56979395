// Package export writes a fully paged listing as JSONL and ships it to one or
// more destinations, once or on a schedule.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/client"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/listing"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/model"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/urlcodec"
)

// header is the first JSONL record written by WriteJSONL.
type header struct {
	Version   string       `json:"version"`
	Type      string       `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
	Query     string       `json:"query"`
	Filter    model.Filter `json:"filter"`
	DogCount  int          `json:"dog_count"`
	Pages     int          `json:"pages"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Summary describes one export run.
type Summary struct {
	Dogs  int
	Pages int
}

// Exporter pages through every result of a filter.
type Exporter struct {
	gateway  client.Gateway
	filter   model.Filter
	limit    int
	maxPages int
	logger   *zap.Logger
	now      func() time.Time
}

// NewExporter returns an exporter for filter using pages of limit dogs.
// maxPages bounds the walk; zero means no bound.
func NewExporter(gw client.Gateway, filter model.Filter, limit, maxPages int, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		gateway:  gw,
		filter:   filter.Normalize(),
		limit:    model.FirstPage(limit).Limit,
		maxPages: maxPages,
		logger:   logger,
		now:      time.Now,
	}
}

// Collect fetches pages in order until a short page, reconciling them the
// same way the interactive listing does. It stops early if a full page brings
// nothing new, which happens when the backend reorders under us.
func (e *Exporter) Collect(ctx context.Context) ([]model.Dog, int, error) {
	list := listing.NewList()
	cursor := model.FirstPage(e.limit)
	pages := 0
	for {
		page, err := e.gateway.ListDogs(ctx, e.filter, cursor)
		if err != nil {
			return nil, pages, fmt.Errorf("fetching page %d: %w", cursor.Page(), err)
		}
		pages++
		var dogs []model.Dog
		if page != nil {
			dogs = page.Dogs
		}

		if cursor.IsFirst() {
			list.Replace(dogs, cursor.Limit)
		} else if added := list.Append(dogs, cursor.Limit); added == 0 && len(dogs) > 0 {
			e.logger.Warn("page contained only known dogs, stopping", zap.Int("page", cursor.Page()))
			break
		}
		e.logger.Debug("export page fetched", zap.Int("page", cursor.Page()), zap.Int("dogs", list.Len()))

		if !list.HasMore() || (e.maxPages > 0 && pages >= e.maxPages) {
			break
		}
		cursor = cursor.Next()
	}
	return list.Items(), pages, nil
}

// WriteJSONL collects the listing and writes it to w: a header line followed
// by one line per dog, sorted by id.
func (e *Exporter) WriteJSONL(ctx context.Context, w io.Writer) (Summary, error) {
	dogs, pages, err := e.Collect(ctx)
	if err != nil {
		return Summary{Pages: pages}, err
	}
	sort.Slice(dogs, func(i, j int) bool { return dogs[i].ID < dogs[j].ID })

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:   "1",
		Type:      "header",
		Timestamp: e.now().UTC(),
		Query:     urlcodec.Encode(e.filter, model.Cursor{}),
		Filter:    e.filter,
		DogCount:  len(dogs),
		Pages:     pages,
	}); err != nil {
		return Summary{}, fmt.Errorf("encode header: %w", err)
	}
	for _, d := range dogs {
		if err := enc.Encode(record{Type: "dog", Data: d}); err != nil {
			return Summary{}, fmt.Errorf("encode dog %d: %w", d.ID, err)
		}
	}
	return Summary{Dogs: len(dogs), Pages: pages}, nil
}
