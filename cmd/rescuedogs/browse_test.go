package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/client"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/listing"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/model"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/ui"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/views"
)

// newSession wires a session to a fake API with a page size of two.
func newSession(t *testing.T, api *fakeAPI) (*session, *bytes.Buffer) {
	t.Helper()
	home := setup(t, api)
	base := strings.TrimSuffix(mustEnv(t, "RESCUEDOGS_API_URL"), "/")

	history := listing.NewMemoryHistory("")
	ctrl := listing.New(client.NewHTTPClient(base),
		listing.WithPageSize(2),
		listing.WithHistory(history),
		listing.WithOrganizations(model.OrganizationIDs(3, 12)),
		listing.WithDebounce(10*time.Millisecond),
	)
	t.Cleanup(ctrl.Close)

	var out bytes.Buffer
	s := &session{
		ctrl:    ctrl,
		history: history,
		store:   views.NewStore(filepath.Join(home, "views.toml")),
		known:   model.OrganizationIDs(3, 12),
		out:     &out,
		st:      ui.Plain(),
	}
	ctrl.Mount("", nil)
	settle(t, ctrl)
	return s, &out
}

func mustEnv(t *testing.T, key string) string {
	t.Helper()
	v, ok := os.LookupEnv(key)
	require.True(t, ok, key)
	return v
}

func settle(t *testing.T, ctrl *listing.Controller) listing.Snapshot {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	snap, err := waitSettled(ctx, ctrl)
	require.NoError(t, err)
	return snap
}

func run(t *testing.T, s *session, line string) {
	t.Helper()
	quit, err := s.exec(line)
	require.NoError(t, err, line)
	require.False(t, quit, line)
	settle(t, s.ctrl)
}

func TestSession_MoreAndFilter(t *testing.T) {
	s, _ := newSession(t, &fakeAPI{dogs: catalogue(5)})
	assert.Len(t, s.ctrl.Snapshot().Items, 2)

	run(t, s, "more")
	snap := s.ctrl.Snapshot()
	assert.Len(t, snap.Items, 4)
	assert.Equal(t, "page=2", snap.Query)
	assert.Equal(t, "page=2", s.history.Current())

	run(t, s, "filter size=large org=12")
	snap = s.ctrl.Snapshot()
	assert.Equal(t, model.Filter{Size: model.SizeLarge, OrganizationID: 12}, snap.Filter)
	assert.Len(t, snap.Items, 2)
	assert.Equal(t, "organization_id=12&size=Large", s.history.Current())

	run(t, s, "back")
	snap = s.ctrl.Snapshot()
	assert.True(t, snap.Filter.IsNeutral())
	assert.Equal(t, 2, snap.Page, "back restores the deep page")
	assert.Len(t, snap.Items, 4)

	run(t, s, "forward")
	assert.Equal(t, model.SizeLarge, s.ctrl.Snapshot().Filter.Size)

	run(t, s, "clear")
	assert.True(t, s.ctrl.Snapshot().Filter.IsNeutral())
}

func TestSession_Search(t *testing.T) {
	s, _ := newSession(t, &fakeAPI{dogs: catalogue(3)})

	_, err := s.exec("search  calm   family dog ")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return s.ctrl.Snapshot().Filter.Search == "calm family dog"
	}, 2*time.Second, 5*time.Millisecond)
}

func TestSession_SaveAndOpen(t *testing.T) {
	s, out := newSession(t, &fakeAPI{dogs: catalogue(3)})

	run(t, s, "filter sex=female age=senior")
	run(t, s, "save seniors quiet older girls")
	assert.Contains(t, out.String(), `saved view "seniors"`)

	v, err := s.store.Get("seniors")
	require.NoError(t, err)
	assert.Equal(t, "quiet older girls", v.Description)
	assert.Equal(t, "age_category=Senior&sex=female", v.Query())

	run(t, s, "clear")
	run(t, s, "open seniors")
	assert.Equal(t, model.Filter{Sex: model.SexFemale, AgeCategory: model.AgeSenior}, s.ctrl.Snapshot().Filter)

	out.Reset()
	run(t, s, "views")
	assert.Contains(t, out.String(), "seniors")
}

func TestSession_Errors(t *testing.T) {
	s, out := newSession(t, &fakeAPI{dogs: catalogue(1)})

	for _, line := range []string{"bogus", "filter", "filter size=huge", "open", "open missing", "save"} {
		_, err := s.exec(line)
		assert.Error(t, err, line)
	}

	run(t, s, "more")
	assert.Contains(t, out.String(), "nothing more to load")

	quit, err := s.exec("  QUIT ")
	require.NoError(t, err)
	assert.True(t, quit)

	quit, err = s.exec("   ")
	require.NoError(t, err)
	assert.False(t, quit)
}

func TestSession_Loop(t *testing.T) {
	s, out := newSession(t, &fakeAPI{dogs: catalogue(1)})

	err := s.loop(context.Background(), strings.NewReader("help\nshow\nbogus\nquit\nshow\n"))
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "load the next page")
	assert.Contains(t, text, "Dog 1")
	assert.Contains(t, text, `unknown command "bogus"`)
}
