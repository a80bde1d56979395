package urlcodec

import (
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/model"
)

var known = model.OrganizationIDs(3, 12)

func TestEncode_NeutralIsEmpty(t *testing.T) {
	assert.Equal(t, "", Encode(model.Filter{}, model.FirstPage(20)))
}

func TestEncode_OmitsNeutralFields(t *testing.T) {
	f := model.Filter{Size: model.SizeSmall, Breed: "Poodle"}
	assert.Equal(t, "breed=Poodle&size=Small", Encode(f, model.FirstPage(20)))
}

func TestEncode_PageAndRegion(t *testing.T) {
	f := model.Filter{AvailableToCountry: "DE", AvailableToRegion: "Bavaria", OrganizationID: 3}
	got := Encode(f, model.CursorForPage(3, 20))
	assert.Equal(t, "available_to_country=DE&available_to_region=Bavaria&organization_id=3&page=3", got)
}

func TestEncode_DropsOrphanRegion(t *testing.T) {
	assert.Equal(t, "", Encode(model.Filter{AvailableToRegion: "Bavaria"}, model.FirstPage(20)))
}

func TestRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name   string
		filter model.Filter
		page   int
	}{
		{name: "Neutral", filter: model.Filter{}, page: 1},
		{name: "SearchWithSpaces", filter: model.Filter{Search: "good boy & friends"}, page: 1},
		{name: "Everything", filter: model.Filter{
			Search: "calm", Breed: "Labrador Retriever", OrganizationID: 12, Sex: model.SexMale,
			Size: model.SizeLarge, AgeCategory: model.AgeSenior, LocationCountry: "TR",
			AvailableToCountry: "UK", AvailableToRegion: "Scotland",
		}, page: 4},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cursor := model.CursorForPage(tc.page, 20)
			gotFilter, gotCursor, invalid := Decode(Encode(tc.filter, cursor), known, 20)
			assert.Empty(t, invalid)
			assert.Equal(t, cursor, gotCursor)
			if diff := cmp.Diff(tc.filter, gotFilter); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_EmptyIsNeutral(t *testing.T) {
	f, c, invalid := Decode("", known, 20)
	assert.True(t, f.IsNeutral())
	assert.Equal(t, model.FirstPage(20), c)
	assert.Empty(t, invalid)
}

func TestDecode_LeadingQuestionMark(t *testing.T) {
	f, c, _ := Decode("?size=Small&page=2", known, 20)
	assert.Equal(t, model.SizeSmall, f.Size)
	assert.Equal(t, 20, c.Offset)
}

func TestDecode_InvalidValuesFallBackToNeutral(t *testing.T) {
	for _, tc := range []struct {
		name      string
		query     string
		wantParam string
	}{
		{name: "UnknownOrganization", query: "organization_id=999", wantParam: ParamOrganizationID},
		{name: "NonNumericOrganization", query: "organization_id=abc", wantParam: ParamOrganizationID},
		{name: "NonNumericPage", query: "page=three", wantParam: ParamPage},
		{name: "ZeroPage", query: "page=0", wantParam: ParamPage},
		{name: "PageBeyondMax", query: "page=" + strconv.Itoa(MaxPage+1), wantParam: ParamPage},
		{name: "PageOverflowsOffset", query: "page=922337203685477581", wantParam: ParamPage},
		{name: "SearchTooLong", query: "search=" + strings.Repeat("a", model.MaxSearchLength+1), wantParam: ParamSearch},
		{name: "UnknownSize", query: "size=Enormous", wantParam: ParamSize},
		{name: "UnknownSex", query: "sex=robot", wantParam: ParamSex},
		{name: "UnknownAge", query: "age_category=Ancient", wantParam: ParamAgeCategory},
		{name: "RegionWithoutCountry", query: "available_to_region=Bavaria", wantParam: ParamAvailableToRegion},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f, c, invalid := Decode(tc.query, known, 20)
			assert.True(t, f.IsNeutral(), "filter = %+v", f)
			assert.Equal(t, model.FirstPage(20), c)
			require.Len(t, invalid, 1)
			assert.Equal(t, tc.wantParam, invalid[0].Name)
		})
	}
}

func TestDecode_Limits(t *testing.T) {
	_, c, invalid := Decode("page="+strconv.Itoa(MaxPage), known, 20)
	assert.Empty(t, invalid)
	assert.Equal(t, MaxPage, c.Page())
	assert.Equal(t, (MaxPage-1)*20, c.Offset)

	search := strings.Repeat("é", model.MaxSearchLength)
	f, _, invalid := Decode(Encode(model.Filter{Search: search}, model.FirstPage(20)), known, 20)
	assert.Empty(t, invalid)
	assert.Equal(t, search, f.Search)
	assert.NoError(t, model.ValidateFilter(f, known))
}

func TestDecode_NilKnownSetRejectsOrganization(t *testing.T) {
	f, _, invalid := Decode("organization_id=3", nil, 20)
	assert.Zero(t, f.OrganizationID)
	assert.Len(t, invalid, 1)
}

func TestDecode_AnyIsNeutral(t *testing.T) {
	f, _, invalid := Decode("size=any&sex=Any&age_category=ANY&available_to_country=any&available_to_region=any", known, 20)
	assert.True(t, f.IsNeutral())
	assert.Empty(t, invalid)
}

func TestDecode_CaseInsensitiveEnums(t *testing.T) {
	f, _, invalid := Decode("size=small&sex=FEMALE&age_category=puppy", known, 20)
	assert.Empty(t, invalid)
	assert.Equal(t, model.Filter{Size: model.SizeSmall, Sex: model.SexFemale, AgeCategory: model.AgePuppy}, f)
}

func TestDecode_MalformedQueryKeepsValidPairs(t *testing.T) {
	f, _, invalid := Decode("breed=Poodle&bad=%zz", known, 20)
	assert.Equal(t, "Poodle", f.Breed)
	require.NotEmpty(t, invalid)
	assert.Equal(t, "query", invalid[0].Name)
}

func TestInvalidParam_String(t *testing.T) {
	p := InvalidParam{Name: "page", Value: "x", Reason: "not a number"}
	assert.Equal(t, `page="x": not a number`, p.String())
}
