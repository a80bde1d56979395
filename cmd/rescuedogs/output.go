package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/listing"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/model"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/ui"
)

// listingJSON is the --json shape of a listing snapshot.
type listingJSON struct {
	Query   string       `json:"query"`
	Filter  model.Filter `json:"filter"`
	Page    int          `json:"page"`
	HasMore bool         `json:"has_more"`
	Count   int          `json:"count"`
	Dogs    []model.Dog  `json:"dogs"`
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printSnapshot(w io.Writer, s listing.Snapshot) error {
	if jsonOutput {
		dogs := s.Items
		if dogs == nil {
			dogs = []model.Dog{}
		}
		return printJSON(w, listingJSON{
			Query:   s.Query,
			Filter:  s.Filter,
			Page:    s.Page,
			HasMore: s.HasMore,
			Count:   len(s.Items),
			Dogs:    dogs,
		})
	}
	ui.RenderSnapshot(w, s, styles(w))
	return nil
}

// styles returns colored styles when w is a color-capable terminal.
func styles(w io.Writer) *ui.Styles {
	if f, ok := w.(*os.File); ok {
		return ui.NewStyles(ui.ShouldUseColor(f))
	}
	return ui.Plain()
}
