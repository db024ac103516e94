// Package manifest builds and persists the per-(plugin, target) manifest
// records consumed by the uploader. A record merges folder-derived defaults,
// metadata scraped from the bundle, and maintainer overrides, with overrides
// always winning. Unresolvable fields get documented placeholders and the
// record is flagged incomplete; nothing is ever invented.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/patchstorage/patchbot/internal/catalog"
	"github.com/patchstorage/patchbot/internal/lv2"
	"github.com/patchstorage/patchbot/internal/util"
)

// Remote state ids used by the hosting service.
const (
	StateWorkInProgress = 150
	StateReadyToGo      = 151
)

// DescriptionPlaceholder is recorded when neither the bundle nor an override
// provides a description.
const DescriptionPlaceholder = "No description available."

// License is the resolved license block embedded in a record.
type License struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
	SPDX string `json:"spdx,omitempty"`
}

// Record is one generated manifest, persisted next to its archive in the
// dist directory and read back unmodified during push.
type Record struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	UID         string   `json:"uid,omitempty"`
	Revision    string   `json:"revision"`
	State       int      `json:"state"`
	Platform    int      `json:"platform"`
	Target      string   `json:"target"`
	License     License  `json:"license"`
	Description string   `json:"content"`
	Author      string   `json:"author,omitempty"`
	Tags        []string `json:"tags"`
	Homepage    string   `json:"homepage,omitempty"`
	SourceURL   string   `json:"source_code_url,omitempty"`
	DonateURL   string   `json:"donate_url,omitempty"`
	Artifact    string   `json:"artifact,omitempty"`
	Artwork     string   `json:"artwork,omitempty"`
	SHA256      string   `json:"sha256,omitempty"`
	PatchID     int64    `json:"patch_id,omitempty"`
	Incomplete  bool     `json:"incomplete"`
	Missing     []string `json:"missing_fields,omitempty"`
}

// Build assembles the record for one bundle. meta may be the zero value when
// the bundle's Turtle files yielded nothing.
func Build(b lv2.Bundle, meta lv2.Metadata, cat *catalog.Catalog, platformID int, defaultTags []string) *Record {
	slug := b.Slug()
	override, _ := cat.Override(slug)

	r := &Record{
		Slug:     slug,
		UID:      meta.URI,
		Revision: meta.Revision(),
		State:    stateID(meta.Stability()),
		Platform: platformID,
		Target:   b.Target,
	}

	r.Title = resolveTitle(slug, meta, override)
	r.resolveLicense(meta, override, cat)
	r.resolveDescription(meta, override)

	if override.Author != "" {
		r.Author = override.Author
	} else {
		r.Author = meta.Author
	}

	r.Homepage = override.Homepage
	r.SourceURL = override.SourceURL
	r.DonateURL = override.DonateURL
	r.Tags = resolveTags(meta, override, defaultTags)

	// The hosting service wants cover art per entry. The bundle's modgui
	// screenshot is the only source; without one the record stays pushable
	// but is flagged for a maintainer to supply an image.
	if meta.Screenshot == "" {
		r.flagMissing("artwork")
	}

	return r
}

func resolveTitle(slug string, meta lv2.Metadata, override catalog.Override) string {
	if override.Title != "" {
		return override.Title
	}
	if meta.Name != "" {
		// Very short display names read badly on the hosting site.
		if len(meta.Name) < 5 {
			return meta.Name + " Plugin"
		}
		return meta.Name
	}
	return slug
}

func (r *Record) resolveLicense(meta lv2.Metadata, override catalog.Override, cat *catalog.Catalog) {
	id := override.License
	if id == "" {
		id = meta.License
	}
	if id == "" {
		id = catalog.UnknownLicenseID
	}

	entry, ok := cat.License(id)
	r.License = License{
		ID:   id,
		Name: entry.Name,
		URL:  entry.URL,
		SPDX: entry.SPDX,
	}
	if !ok {
		r.flagMissing("license")
	}
}

func (r *Record) resolveDescription(meta lv2.Metadata, override catalog.Override) {
	switch {
	case override.Description != "":
		r.Description = override.Description
	case meta.Comment != "":
		r.Description = meta.Comment
	default:
		r.Description = DescriptionPlaceholder
		r.flagMissing("description")
	}
}

func resolveTags(meta lv2.Metadata, override catalog.Override, defaultTags []string) []string {
	var tags []string
	if len(override.Tags) != 0 {
		tags = append(tags, override.Tags...)
	} else {
		for _, cat := range lv2.Categories(meta.Types) {
			tags = append(tags, util.Slugify(cat))
		}
	}
	tags = append(tags, defaultTags...)

	seen := make(map[string]bool)
	var out []string
	for _, tag := range tags {
		tag = strings.ToLower(tag)
		if tag != "" && !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}
	sort.Strings(out)
	return out
}

func (r *Record) flagMissing(field string) {
	r.Incomplete = true
	r.Missing = append(r.Missing, field)
}

func stateID(stability string) int {
	if stability == "experimental" {
		return StateWorkInProgress
	}
	return StateReadyToGo
}

// Basename returns the shared file stem for the record's outputs,
// e.g. "foo-rpi-aarch64".
func (r *Record) Basename() string {
	return fmt.Sprintf("%s-%s", r.Slug, r.Target)
}

// Filename returns the manifest file name within the dist directory.
func (r *Record) Filename() string {
	return r.Basename() + ".patchstorage.json"
}

// ArchiveName returns the archive file name within the dist directory.
func (r *Record) ArchiveName() string {
	return r.Basename() + ".tar.gz"
}

// ArtworkName returns the cover-art file name within the dist directory.
func (r *Record) ArtworkName() string {
	return r.Basename() + ".png"
}

// Write persists the record as indented JSON under dir, overwriting any
// previous manifest for the same (plugin, target).
func Write(dir string, r *Record) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode manifest for %s: %w", r.Slug, err)
	}
	data = append(data, '\n')

	path := filepath.Join(dir, r.Filename())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write manifest %s: %w", path, err)
	}
	return path, nil
}

// Read loads a manifest written by a previous prepare run. Maintainers may
// have hand-edited it; contents are trusted as-is.
func Read(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &r, nil
}
