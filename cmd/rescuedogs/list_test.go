package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_JSON(t *testing.T) {
	api := &fakeAPI{dogs: catalogue(3)}
	setup(t, api)

	out, err := execute(t, "list", "--json", "--size", "large", "--sex", "female")
	require.NoError(t, err)

	got := decodeListing(t, out)
	assert.Equal(t, "sex=female&size=Large", got.Query)
	assert.Equal(t, 3, got.Count)
	assert.False(t, got.HasMore)
	assert.Equal(t, 1, got.Page)

	queries := api.recorded()
	require.Len(t, queries, 1)
	assert.Equal(t, "Large", queries[0].Get("size"))
	assert.Equal(t, "female", queries[0].Get("sex"))
	assert.Equal(t, "20", queries[0].Get("limit"))
}

func TestList_DeepPage(t *testing.T) {
	api := &fakeAPI{dogs: catalogue(7)}
	setup(t, api)
	t.Setenv("RESCUEDOGS_LISTING_PAGE_SIZE", "2")

	out, err := execute(t, "list", "--json", "--page", "3")
	require.NoError(t, err)

	got := decodeListing(t, out)
	assert.Equal(t, 6, got.Count)
	assert.Equal(t, 3, got.Page)
	assert.True(t, got.HasMore)
	assert.Equal(t, "page=3", got.Query)

	var offsets []string
	for _, q := range api.recorded() {
		offsets = append(offsets, q.Get("offset"))
	}
	assert.Equal(t, []string{"0", "2", "4"}, offsets)
}

func TestList_Text(t *testing.T) {
	setup(t, &fakeAPI{dogs: catalogue(2)})

	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Filter: all dogs")
	assert.Contains(t, out, "Dog 1")
	assert.Contains(t, out, "Dog 2")
	assert.Contains(t, out, "2 dogs")
}

func TestList_InvalidFilter(t *testing.T) {
	api := &fakeAPI{dogs: catalogue(2)}
	setup(t, api)

	_, err := execute(t, "list", "--sex", "robot")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `sex="robot"`)
	assert.Empty(t, api.recorded(), "no fetch for an invalid filter")
}

func TestList_UnknownOrganization(t *testing.T) {
	setup(t, &fakeAPI{dogs: catalogue(2)})

	_, err := execute(t, "list", "--org", "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown organization")

	_, err = execute(t, "list", "--org", "12")
	require.NoError(t, err)
}

func TestList_ServerError(t *testing.T) {
	setup(t, &fakeAPI{status: http.StatusServiceUnavailable})

	out, err := execute(t, "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maintenance")
	assert.Contains(t, out, "server answered 503")
}

func TestList_BadPage(t *testing.T) {
	setup(t, &fakeAPI{})

	_, err := execute(t, "list", "--page", "0")
	require.Error(t, err)

	_, err = execute(t, "list", "--page", "501")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestOrgs_JSON(t *testing.T) {
	setup(t, &fakeAPI{})

	out, err := execute(t, "orgs")
	require.NoError(t, err)
	assert.Contains(t, out, "Happy Paws")
	assert.Contains(t, out, "Street Dogs")
}
