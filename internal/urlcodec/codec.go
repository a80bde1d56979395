// Package urlcodec maps a listing filter and pagination cursor to and from the
// query string shown in the address bar. Decoding never fails: anything that
// does not validate falls back to the neutral value and is reported back so
// the caller can log it.
package urlcodec

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/model"
)

// Query parameter names.
const (
	ParamSearch             = "search"
	ParamBreed              = "breed"
	ParamOrganizationID     = "organization_id"
	ParamSex                = "sex"
	ParamSize               = "size"
	ParamAgeCategory        = "age_category"
	ParamLocationCountry    = "location_country"
	ParamAvailableToCountry = "available_to_country"
	ParamAvailableToRegion  = "available_to_region"
	ParamPage               = "page"
)

// MaxPage is the deepest page a link may restore. Each page up to it is
// fetched in turn.
const MaxPage = 500

// InvalidParam describes a query parameter that was discarded while decoding.
type InvalidParam struct {
	Name   string
	Value  string
	Reason string
}

func (p InvalidParam) String() string {
	return fmt.Sprintf("%s=%q: %s", p.Name, p.Value, p.Reason)
}

// Encode returns the query string (without a leading "?") for the filter and
// cursor. Neutral fields and page one are omitted so equivalent states always
// produce the same URL.
func Encode(f model.Filter, c model.Cursor) string {
	f = f.Normalize()
	q := url.Values{}
	if f.Search != "" {
		q.Set(ParamSearch, f.Search)
	}
	if f.Breed != "" {
		q.Set(ParamBreed, f.Breed)
	}
	if f.OrganizationID > 0 {
		q.Set(ParamOrganizationID, strconv.FormatInt(f.OrganizationID, 10))
	}
	if f.Sex != model.SexAny {
		q.Set(ParamSex, string(f.Sex))
	}
	if f.Size != model.SizeAny {
		q.Set(ParamSize, string(f.Size))
	}
	if f.AgeCategory != model.AgeAny {
		q.Set(ParamAgeCategory, string(f.AgeCategory))
	}
	if f.LocationCountry != "" {
		q.Set(ParamLocationCountry, f.LocationCountry)
	}
	if f.AvailableToCountry != "" {
		q.Set(ParamAvailableToCountry, f.AvailableToCountry)
		if f.AvailableToRegion != "" {
			q.Set(ParamAvailableToRegion, f.AvailableToRegion)
		}
	}
	if page := c.Page(); page > 1 {
		q.Set(ParamPage, strconv.Itoa(page))
	}
	// url.Values.Encode sorts by key.
	return q.Encode()
}

// Decode parses a query string (with or without a leading "?") into a filter
// and cursor. known is the set of organizations the page knows about; an
// organization id outside it decodes to "any". limit is the page size used to
// build the cursor.
func Decode(rawQuery string, known model.OrganizationSet, limit int) (model.Filter, model.Cursor, []InvalidParam) {
	var (
		f       model.Filter
		invalid []InvalidParam
	)
	cursor := model.FirstPage(limit)

	q, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		// ParseQuery keeps the pairs it could parse; carry on with those.
		invalid = append(invalid, InvalidParam{Name: "query", Value: rawQuery, Reason: err.Error()})
	}

	reject := func(name, value, reason string) {
		invalid = append(invalid, InvalidParam{Name: name, Value: value, Reason: reason})
	}

	if raw := strings.TrimSpace(q.Get(ParamSearch)); utf8.RuneCountInString(raw) > model.MaxSearchLength {
		reject(ParamSearch, raw, "too long")
	} else {
		f.Search = raw
	}
	if raw := q.Get(ParamBreed); !isAny(raw) {
		f.Breed = raw
	}

	if raw := q.Get(ParamOrganizationID); !isAny(raw) {
		id, err := strconv.ParseInt(raw, 10, 64)
		switch {
		case err != nil:
			reject(ParamOrganizationID, raw, "not a number")
		case !known.Contains(id):
			reject(ParamOrganizationID, raw, "unknown organization")
		default:
			f.OrganizationID = id
		}
	}

	if raw := q.Get(ParamSex); !isAny(raw) {
		sex := model.Sex(strings.ToLower(raw))
		if sex.IsValid() {
			f.Sex = sex
		} else {
			reject(ParamSex, raw, "unknown sex")
		}
	}

	if raw := q.Get(ParamSize); !isAny(raw) {
		if size, ok := parseSize(raw); ok {
			f.Size = size
		} else {
			reject(ParamSize, raw, "unknown size")
		}
	}

	if raw := q.Get(ParamAgeCategory); !isAny(raw) {
		if age, ok := parseAge(raw); ok {
			f.AgeCategory = age
		} else {
			reject(ParamAgeCategory, raw, "unknown age category")
		}
	}

	f.LocationCountry = q.Get(ParamLocationCountry)
	f.AvailableToCountry = q.Get(ParamAvailableToCountry)
	f.AvailableToRegion = q.Get(ParamAvailableToRegion)
	if !isAny(f.AvailableToRegion) && isAny(f.AvailableToCountry) {
		reject(ParamAvailableToRegion, f.AvailableToRegion, "region without country")
	}

	if raw := q.Get(ParamPage); raw != "" {
		page, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			reject(ParamPage, raw, "not a number")
		case page < 1:
			reject(ParamPage, raw, "must be at least 1")
		case page > MaxPage || page-1 > math.MaxInt/cursor.Limit:
			reject(ParamPage, raw, "too large")
		default:
			cursor = model.CursorForPage(page, limit)
		}
	}

	return f.Normalize(), cursor, invalid
}

// isAny reports whether s is empty or the literal neutral spelling.
func isAny(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "any")
}

// parseSize accepts the canonical spelling case-insensitively.
func parseSize(raw string) (model.Size, bool) {
	for _, s := range []model.Size{model.SizeTiny, model.SizeSmall, model.SizeMedium, model.SizeLarge, model.SizeXLarge} {
		if strings.EqualFold(raw, string(s)) {
			return s, true
		}
	}
	return model.SizeAny, false
}

func parseAge(raw string) (model.AgeCategory, bool) {
	for _, a := range []model.AgeCategory{model.AgePuppy, model.AgeYoung, model.AgeAdult, model.AgeSenior} {
		if strings.EqualFold(raw, string(a)) {
			return a, true
		}
	}
	return model.AgeAny, false
}
