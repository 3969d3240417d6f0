// Package sites loads the target list for one scan run.
package sites

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	ErrNoSites     = errors.New("site list is empty")
	ErrMissingName = errors.New("site has no name")
	ErrMissingURL  = errors.New("site has no url")
)

// Site is one audit target: a display name for the report and the URL
// to fetch.
type Site struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Load reads a JSON array of {name, url} objects.
func Load(path string) ([]Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read site list: %w", err)
	}

	var list []Site
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse site list %s: %w", path, err)
	}

	if len(list) == 0 {
		return nil, ErrNoSites
	}
	for i, s := range list {
		if s.Name == "" {
			return nil, fmt.Errorf("site %d: %w", i, ErrMissingName)
		}
		if s.URL == "" {
			return nil, fmt.Errorf("site %q: %w", s.Name, ErrMissingURL)
		}
	}
	return list, nil
}
