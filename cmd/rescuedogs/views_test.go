package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViews_SaveListDelete(t *testing.T) {
	setup(t, &fakeAPI{})

	out, err := execute(t, "views", "save", "big-dogs", "--size", "large", "--description", "for the farm")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved view big-dogs")

	out, err = execute(t, "views", "list", "--json")
	require.NoError(t, err)
	var rows []viewJSON
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "big-dogs", rows[0].Name)
	assert.Equal(t, "size=Large", rows[0].Query)
	assert.Equal(t, "for the farm", rows[0].Description)
	assert.False(t, rows[0].Default)

	out, err = execute(t, "views", "show", "big-dogs")
	require.NoError(t, err)
	assert.Contains(t, out, "query: ?size=Large")

	_, err = execute(t, "views", "delete", "big-dogs")
	require.NoError(t, err)
	_, err = execute(t, "views", "show", "big-dogs")
	require.Error(t, err)
}

func TestViews_SaveRejectsBadName(t *testing.T) {
	setup(t, &fakeAPI{})

	_, err := execute(t, "views", "save", "Big Dogs", "--size", "large")
	require.Error(t, err)
}

func TestViews_DefaultAppliesToList(t *testing.T) {
	api := &fakeAPI{dogs: catalogue(2)}
	setup(t, api)

	_, err := execute(t, "views", "save", "pups", "--age", "puppy", "--default")
	require.NoError(t, err)

	out, err := execute(t, "views", "default")
	require.NoError(t, err)
	assert.Equal(t, "pups\n", out)

	out, err = execute(t, "list", "--json")
	require.NoError(t, err)
	assert.Equal(t, "age_category=Puppy", decodeListing(t, out).Query)

	// Explicit flags win over the default view.
	out, err = execute(t, "list", "--json", "--sex", "male")
	require.NoError(t, err)
	assert.Equal(t, "sex=male", decodeListing(t, out).Query)

	_, err = execute(t, "views", "default", "--unset")
	require.NoError(t, err)
	out, err = execute(t, "list", "--json")
	require.NoError(t, err)
	assert.Equal(t, "", decodeListing(t, out).Query)
}

func TestViews_ListFlagStartsFromView(t *testing.T) {
	setup(t, &fakeAPI{dogs: catalogue(1)})

	_, err := execute(t, "views", "save", "uk", "--to-country", "UK")
	require.NoError(t, err)

	out, err := execute(t, "list", "--json", "--view", "uk", "--to-region", "Wales")
	require.NoError(t, err)
	assert.Equal(t, "available_to_country=UK&available_to_region=Wales", decodeListing(t, out).Query)
}
