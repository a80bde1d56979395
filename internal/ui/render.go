package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/listing"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/model"
)

// FilterSummary describes f in one line, e.g. "size Large · sex female".
func FilterSummary(f model.Filter) string {
	var parts []string
	add := func(label, v string) {
		if v != "" {
			parts = append(parts, label+" "+v)
		}
	}
	if f.Search != "" {
		add("search", strconv.Quote(f.Search))
	}
	add("breed", f.Breed)
	if f.OrganizationID > 0 {
		add("org", strconv.FormatInt(f.OrganizationID, 10))
	}
	add("sex", string(f.Sex))
	add("size", string(f.Size))
	add("age", string(f.AgeCategory))
	add("in", f.LocationCountry)
	if f.AvailableToCountry != "" {
		to := f.AvailableToCountry
		if f.AvailableToRegion != "" {
			to += "/" + f.AvailableToRegion
		}
		add("adoptable to", to)
	}
	if len(parts) == 0 {
		return "all dogs"
	}
	return strings.Join(parts, " · ")
}

// DogLine formats one dog for list output.
func DogLine(d model.Dog, st *Styles) string {
	fields := []string{d.Name}
	for _, v := range []string{d.Breed, string(d.StandardizedSize), d.AgeText, d.Sex, d.Location()} {
		if v != "" {
			fields = append(fields, v)
		}
	}
	return fmt.Sprintf("%s %s", st.Muted(fmt.Sprintf("#%-6d", d.ID)), strings.Join(fields, st.Muted(" · ")))
}

// RenderDogs writes one line per dog.
func RenderDogs(w io.Writer, dogs []model.Dog, st *Styles) {
	for _, d := range dogs {
		fmt.Fprintln(w, DogLine(d, st))
	}
}

// RenderSnapshot writes the full listing view: filter header, items and the
// status footer (loading, error banner, load-more hint or empty state).
func RenderSnapshot(w io.Writer, s listing.Snapshot, st *Styles) {
	fmt.Fprintf(w, "%s %s\n", st.Accent("Filter:"), FilterSummary(s.Filter))
	if s.Query != "" {
		fmt.Fprintf(w, "%s\n", st.Muted("?"+s.Query))
	}

	switch {
	case s.IsLoading && len(s.Items) == 0:
		fmt.Fprintln(w, st.Muted("Loading dogs…"))
	case s.Empty() && s.Err == nil:
		fmt.Fprintln(w, st.Muted("No dogs match these filters. Try "+st.Command("clear")+"."))
	default:
		RenderDogs(w, s.Items, st)
	}

	if s.Err != nil {
		fmt.Fprintln(w, st.Error(ErrorBanner(s.Err))+" "+st.Muted("Type "+st.Command("retry")+" to try again."))
	}

	var footer []string
	footer = append(footer, fmt.Sprintf("%d dogs", len(s.Items)))
	if s.Page > 1 {
		footer = append(footer, fmt.Sprintf("page %d", s.Page))
	}
	switch {
	case s.IsLoading && len(s.Items) > 0:
		footer = append(footer, "updating…")
	case s.IsLoadingMore:
		footer = append(footer, "loading more…")
	case s.HasMore:
		footer = append(footer, st.Command("more")+" for the next page")
	}
	fmt.Fprintln(w, st.Muted(strings.Join(footer, " · ")))
}

// ErrorBanner is the user-facing text for a fetch failure.
func ErrorBanner(e *listing.ErrorInfo) string {
	what := "Couldn't load dogs"
	if e.Request == listing.KindLoadMore {
		what = "Couldn't load more dogs"
	}
	if e.Kind == listing.ErrorHTTP {
		return fmt.Sprintf("%s: the server answered %d (%s).", what, e.StatusCode, e.Message)
	}
	return what + ": check your connection."
}

// RenderOrganizations writes the organization directory.
func RenderOrganizations(w io.Writer, orgs []model.Organization, st *Styles) {
	for _, o := range orgs {
		loc := o.Country
		if o.City != "" {
			loc = o.City + ", " + o.Country
		}
		line := fmt.Sprintf("%s %s", st.Muted(fmt.Sprintf("%-5d", o.ID)), o.Name)
		if loc != "" {
			line += st.Muted(" · " + loc)
		}
		if o.TotalDogs > 0 {
			line += st.Muted(fmt.Sprintf(" · %d dogs", o.TotalDogs))
		}
		if len(o.ShipsTo) > 0 {
			line += st.Muted(" · ships to " + strings.Join(o.ShipsTo, ", "))
		}
		fmt.Fprintln(w, line)
	}
}
