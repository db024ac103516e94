// Package catalog loads the maintainer-edited lookup tables consumed during
// prepare: license metadata keyed by license id, and per-plugin metadata
// overrides keyed by plugin slug. Both are read once per run and never written.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// UnknownLicenseID is the id recorded when a bundle's license cannot be
// resolved against the license table. Records carrying it are flagged
// incomplete and left for a maintainer to fix by hand.
const UnknownLicenseID = "unknown"

// License describes one entry of the license table.
type License struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
	SPDX string `json:"spdx,omitempty"`
}

// Placeholder returns the documented stand-in license block used when a
// license id has no table entry. It must never look like real metadata.
func Placeholder() License {
	return License{Name: "Unknown"}
}

// Override holds maintainer-supplied metadata for one plugin. Every field is
// optional; a set field takes precedence over anything derived from the
// bundle itself.
type Override struct {
	Title       string   `json:"title,omitempty"`
	Author      string   `json:"author,omitempty"`
	Description string   `json:"description,omitempty"`
	License     string   `json:"license,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Homepage    string   `json:"homepage,omitempty"`
	SourceURL   string   `json:"source_code_url,omitempty"`
	DonateURL   string   `json:"donate_url,omitempty"`
}

// Catalog is the pair of lookup tables.
type Catalog struct {
	licenses  map[string]License
	overrides map[string]Override
}

// Load reads both tables from disk. A missing or malformed table file is
// fatal for the whole run; there is no partial-table recovery.
func Load(licensesPath, overridesPath string) (*Catalog, error) {
	c := &Catalog{}

	if err := readTable(licensesPath, &c.licenses); err != nil {
		return nil, err
	}
	if err := readTable(overridesPath, &c.overrides); err != nil {
		return nil, err
	}

	return c, nil
}

func readTable(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read lookup table %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse lookup table %s: %w", path, err)
	}
	return nil
}

// License looks up a license by id. The second return value reports whether
// the id had a table entry; callers get the placeholder block otherwise.
func (c *Catalog) License(id string) (License, bool) {
	lic, ok := c.licenses[id]
	if !ok {
		return Placeholder(), false
	}
	return lic, true
}

// Override returns the override entry for a plugin slug, if any.
func (c *Catalog) Override(slug string) (Override, bool) {
	o, ok := c.overrides[slug]
	return o, ok
}

// Licenses returns the number of loaded license entries.
func (c *Catalog) Licenses() int { return len(c.licenses) }

// Overrides returns the number of loaded override entries.
func (c *Catalog) Overrides() int { return len(c.overrides) }
