package main

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/model"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/urlcodec"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/views"
)

// flagParams maps filter flags to their query parameter.
var flagParams = []struct {
	flag, param, usage string
}{
	{"search", urlcodec.ParamSearch, "free-text search"},
	{"breed", urlcodec.ParamBreed, "breed name"},
	{"org", urlcodec.ParamOrganizationID, "organization id (see 'rescuedogs orgs')"},
	{"sex", urlcodec.ParamSex, "male or female"},
	{"size", urlcodec.ParamSize, "Tiny, Small, Medium, Large or XLarge"},
	{"age", urlcodec.ParamAgeCategory, "Puppy, Young, Adult or Senior"},
	{"country", urlcodec.ParamLocationCountry, "country the dog is located in"},
	{"to-country", urlcodec.ParamAvailableToCountry, "country the dog can be adopted to"},
	{"to-region", urlcodec.ParamAvailableToRegion, "region within --to-country"},
}

func addFilterFlags(cmd *cobra.Command) {
	for _, f := range flagParams {
		cmd.Flags().String(f.flag, "", f.usage)
	}
	cmd.Flags().String("view", "", "start from a saved view")
	cmd.Flags().String("query", "", "raw listing query string, e.g. 'size=Large&page=2'")
}

// resolvedQuery is a validated listing query built from command-line flags.
type resolvedQuery struct {
	Query  string
	Filter model.Filter
	Cursor model.Cursor
	// Known is nil unless an organization filter forced a directory lookup.
	Known model.OrganizationSet
}

// hasFilterFlags reports whether any flag that shapes the query was given.
func hasFilterFlags(cmd *cobra.Command) bool {
	for _, f := range flagParams {
		if cmd.Flags().Changed(f.flag) {
			return true
		}
	}
	return cmd.Flags().Changed("view") || cmd.Flags().Changed("query")
}

// filterQuery builds the listing query from --view, --query and the filter
// flags, in that order of precedence (later wins). Invalid values are an
// error rather than silently dropped.
func filterQuery(ctx context.Context, cmd *cobra.Command, page int) (*resolvedQuery, error) {
	q := url.Values{}

	if name, _ := cmd.Flags().GetString("view"); name != "" {
		v, err := views.NewStore(cfg.ViewsFile).Get(name)
		if err != nil {
			return nil, err
		}
		q, _ = url.ParseQuery(v.Query())
	}
	if raw, _ := cmd.Flags().GetString("query"); raw != "" {
		extra, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
		if err != nil {
			return nil, fmt.Errorf("--query: %w", err)
		}
		for k, vs := range extra {
			q[k] = vs
		}
	}
	for _, f := range flagParams {
		if cmd.Flags().Changed(f.flag) {
			v, _ := cmd.Flags().GetString(f.flag)
			q.Set(f.param, v)
		}
	}
	if page > 1 {
		q.Set(urlcodec.ParamPage, strconv.Itoa(page))
	}

	var known model.OrganizationSet
	if q.Get(urlcodec.ParamOrganizationID) != "" {
		orgs, err := gateway.ListOrganizations(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading organizations: %w", err)
		}
		known = model.NewOrganizationSet(orgs)
	}

	filter, cursor, invalid := urlcodec.Decode(q.Encode(), known, cfg.PageSize)
	if len(invalid) > 0 {
		msgs := make([]string, len(invalid))
		for i, p := range invalid {
			msgs[i] = p.String()
		}
		return nil, fmt.Errorf("invalid filter: %s", strings.Join(msgs, "; "))
	}
	return &resolvedQuery{
		Query:  urlcodec.Encode(filter, cursor),
		Filter: filter,
		Cursor: cursor,
		Known:  known,
	}, nil
}

// parsePatch turns "size=Large sex=any breed=" style arguments into a patch.
// An empty value or "any" resets the field.
func parsePatch(args []string) (model.FilterPatch, error) {
	var p model.FilterPatch
	if len(args) == 0 {
		return p, fmt.Errorf("expected key=value pairs")
	}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return p, fmt.Errorf("%q: expected key=value", arg)
		}
		value = strings.TrimSpace(value)
		if strings.EqualFold(value, "any") {
			value = ""
		}
		switch strings.ToLower(key) {
		case "search":
			p.Search = &value
		case "breed":
			p.Breed = &value
		case "org", "organization", "organization_id":
			var id int64
			if value != "" {
				n, err := strconv.ParseInt(value, 10, 64)
				if err != nil || n < 1 {
					return p, fmt.Errorf("org: %q is not an organization id", value)
				}
				id = n
			}
			p.OrganizationID = &id
		case "sex":
			sex := model.Sex(strings.ToLower(value))
			if !sex.IsValid() {
				return p, fmt.Errorf("sex: %q is not male or female", value)
			}
			p.Sex = &sex
		case "size":
			size, ok := parseEnum(value, []model.Size{model.SizeTiny, model.SizeSmall, model.SizeMedium, model.SizeLarge, model.SizeXLarge})
			if !ok {
				return p, fmt.Errorf("size: unknown size %q", value)
			}
			p.Size = &size
		case "age", "age_category":
			age, ok := parseEnum(value, []model.AgeCategory{model.AgePuppy, model.AgeYoung, model.AgeAdult, model.AgeSenior})
			if !ok {
				return p, fmt.Errorf("age: unknown age category %q", value)
			}
			p.AgeCategory = &age
		case "country", "location_country":
			p.LocationCountry = &value
		case "to-country", "available_to_country":
			p.AvailableToCountry = &value
		case "to-region", "available_to_region":
			p.AvailableToRegion = &value
		default:
			return p, fmt.Errorf("unknown filter %q", key)
		}
	}
	return p, nil
}

// parseEnum matches value case-insensitively against options. The empty
// value is the neutral zero value.
func parseEnum[T ~string](value string, options []T) (T, bool) {
	var zero T
	if value == "" {
		return zero, true
	}
	for _, o := range options {
		if strings.EqualFold(value, string(o)) {
			return o, true
		}
	}
	return zero, false
}
