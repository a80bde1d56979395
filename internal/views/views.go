// Package views persists named filter presets ("saved views") in a TOML file.
package views

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/model"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/urlcodec"
)

// ErrNotFound is returned when a named view does not exist.
var ErrNotFound = errors.New("view not found")

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,39}$`)

// File is the on-disk layout.
type File struct {
	Default string          `toml:"default,omitempty"`
	Views   map[string]View `toml:"views"`
}

// View is a saved filter.
type View struct {
	Description string       `toml:"description,omitempty"`
	Filter      model.Filter `toml:"filter"`
	UpdatedAt   time.Time    `toml:"updated_at"`
}

// Query returns the listing query string the view opens at.
func (v View) Query() string {
	return urlcodec.Encode(v.Filter, model.Cursor{})
}

// Entry is a view with its name, as returned by List.
type Entry struct {
	Name    string
	Default bool
	View
}

// Store reads and writes a views file.
type Store struct {
	path string
	now  func() time.Time
}

func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Path returns the file the store operates on.
func (s *Store) Path() string {
	return s.path
}

// Load reads the views file. A missing file yields an empty set.
func (s *Store) Load() (File, error) {
	var f File
	if _, err := toml.DecodeFile(s.path, &f); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return File{Views: map[string]View{}}, nil
		}
		return File{}, fmt.Errorf("reading views %s: %w", s.path, err)
	}
	if f.Views == nil {
		f.Views = map[string]View{}
	}
	return f, nil
}

// Save writes f atomically, creating the parent directory if needed.
func (s *Store) Save(f File) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating views dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".views-*.toml")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(f); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding views: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

// Put validates and stores a view under name, replacing any existing one.
// known may be nil to skip the organization check.
func (s *Store) Put(name, description string, filter model.Filter, known model.OrganizationSet) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid view name %q: use lowercase letters, digits, '-' or '_'", name)
	}
	filter = filter.Normalize()
	if err := model.ValidateFilter(filter, known); err != nil {
		return err
	}
	f, err := s.Load()
	if err != nil {
		return err
	}
	f.Views[name] = View{Description: description, Filter: filter, UpdatedAt: s.now().UTC()}
	return s.Save(f)
}

// Get returns the named view.
func (s *Store) Get(name string) (View, error) {
	f, err := s.Load()
	if err != nil {
		return View{}, err
	}
	v, ok := f.Views[name]
	if !ok {
		return View{}, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return v, nil
}

// Delete removes the named view. Deleting the default view clears the default.
func (s *Store) Delete(name string) error {
	f, err := s.Load()
	if err != nil {
		return err
	}
	if _, ok := f.Views[name]; !ok {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	delete(f.Views, name)
	if f.Default == name {
		f.Default = ""
	}
	return s.Save(f)
}

// SetDefault marks name as the view browse opens with. An empty name clears it.
func (s *Store) SetDefault(name string) error {
	f, err := s.Load()
	if err != nil {
		return err
	}
	if name != "" {
		if _, ok := f.Views[name]; !ok {
			return fmt.Errorf("%q: %w", name, ErrNotFound)
		}
	}
	f.Default = name
	return s.Save(f)
}

// Default returns the default view, if one is set.
func (s *Store) Default() (name string, v View, ok bool, err error) {
	f, err := s.Load()
	if err != nil {
		return "", View{}, false, err
	}
	v, ok = f.Views[f.Default]
	if !ok {
		return "", View{}, false, nil
	}
	return f.Default, v, true, nil
}

// List returns every view sorted by name.
func (s *Store) List() ([]Entry, error) {
	f, err := s.Load()
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(f.Views))
	for name, v := range f.Views {
		out = append(out, Entry{Name: name, Default: name == f.Default, View: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
