package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/model"
)

// fakeAPI serves /api/animals from a fixed catalogue and records every query.
type fakeAPI struct {
	mu      sync.Mutex
	dogs    []model.Dog
	queries []url.Values
	status  int
}

func (a *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	switch r.URL.Path {
	case "/api/organizations":
		_, _ = w.Write([]byte(`[{"id": 3, "name": "Happy Paws", "country": "DE"}, {"id": 12, "name": "Street Dogs", "country": "TR"}]`))
	case "/api/animals":
		q := r.URL.Query()
		a.queries = append(a.queries, q)
		if a.status != 0 {
			w.WriteHeader(a.status)
			_, _ = w.Write([]byte(`{"detail": "maintenance"}`))
			return
		}
		offset, _ := strconv.Atoi(q.Get("offset"))
		limit, _ := strconv.Atoi(q.Get("limit"))
		page := []model.Dog{}
		for i := offset; i < len(a.dogs) && i < offset+limit; i++ {
			page = append(page, a.dogs[i])
		}
		_ = json.NewEncoder(w).Encode(page)
	default:
		http.NotFound(w, r)
	}
}

func (a *fakeAPI) recorded() []url.Values {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]url.Values(nil), a.queries...)
}

func catalogue(n int) []model.Dog {
	dogs := make([]model.Dog, n)
	for i := range dogs {
		dogs[i] = model.Dog{ID: int64(i + 1), Name: fmt.Sprintf("Dog %d", i+1), Breed: "Mixed"}
	}
	return dogs
}

// setup points the CLI at a fake API and an isolated home directory.
func setup(t *testing.T, api *fakeAPI) string {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("RESCUEDOGS_API_URL", srv.URL+"/api")
	t.Setenv("RESCUEDOGS_API_TOKEN", "")
	t.Setenv("RESCUEDOGS_LISTING_PAGE_SIZE", "")
	t.Setenv("RESCUEDOGS_NATS_URL", "")
	t.Setenv("RESCUEDOGS_LOG_LEVEL", "error")
	t.Setenv("RESCUEDOGS_VIEWS_FILE", filepath.Join(home, "views.toml"))
	t.Chdir(home)
	return home
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default so runs do not leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func decodeListing(t *testing.T, out string) listingJSON {
	t.Helper()
	var got listingJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got), out)
	return got
}
