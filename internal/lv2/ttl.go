package lv2

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Metadata holds the fields scraped from a bundle's Turtle files. Every field
// is optional; absent values stay zero and the manifest builder falls back to
// overrides or placeholders.
type Metadata struct {
	URI        string
	Name       string
	License    string // normalized license token, e.g. "gpl-3.0"
	Comment    string
	Author     string
	Minor      int
	Micro      int
	Types      []string // LV2 plugin type classes, e.g. "DelayPlugin"
	Screenshot string   // path to the modgui screenshot, if it exists
}

// The scanner is deliberately not an RDF parser: it pattern-matches the
// handful of predicates the manifest builder cares about. Bundles using
// exotic prefixes or spreading one statement over many lines lose fields,
// which the builder treats the same as missing metadata.
var (
	uriRe        = regexp.MustCompile(`<([^>]+)>\s*(?:\n\s*)?a\s+(?:lv2:Plugin|<http://lv2plug\.in/ns/lv2core#Plugin>)`)
	nameRe       = regexp.MustCompile(`doap:name\s+"([^"]+)"`)
	licenseURIRe = regexp.MustCompile(`doap:license\s+<([^>]+)>`)
	licenseStrRe = regexp.MustCompile(`doap:license\s+"([^"]+)"`)
	commentLRe   = regexp.MustCompile(`(?s)rdfs:comment\s+"""(.*?)"""`)
	commentSRe   = regexp.MustCompile(`rdfs:comment\s+"([^"]*)"`)
	minorRe      = regexp.MustCompile(`lv2:minorVersion\s+(\d+)`)
	microRe      = regexp.MustCompile(`lv2:microVersion\s+(\d+)`)
	authorRe     = regexp.MustCompile(`foaf:name\s+"([^"]+)"`)
	typeRe       = regexp.MustCompile(`lv2:([A-Za-z]+Plugin)\b`)
	screenshotRe = regexp.MustCompile(`modgui:screenshot\s+<([^>]+)>`)
)

// Placeholder comments some bundles ship instead of a real description.
var commentBlacklist = map[string]bool{"…": true, "...": true}

// ScanMetadata reads every .ttl file in the bundle directory and scrapes
// plugin metadata from them. Unreadable files are an error; unparseable
// content just yields empty fields.
func ScanMetadata(dir string) (Metadata, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.ttl"))
	if err != nil {
		return Metadata{}, fmt.Errorf("list ttl files in %s: %w", dir, err)
	}
	sort.Strings(paths)

	var meta Metadata
	seenTypes := make(map[string]bool)

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return Metadata{}, fmt.Errorf("read %s: %w", path, err)
		}
		text := string(data)

		if meta.URI == "" {
			if m := uriRe.FindStringSubmatch(text); m != nil {
				meta.URI = m[1]
			}
		}
		if meta.Name == "" {
			if m := nameRe.FindStringSubmatch(text); m != nil {
				meta.Name = strings.TrimSpace(m[1])
			}
		}
		if meta.License == "" {
			if m := licenseURIRe.FindStringSubmatch(text); m != nil {
				meta.License = normalizeLicense(m[1])
			} else if m := licenseStrRe.FindStringSubmatch(text); m != nil {
				meta.License = normalizeLicense(m[1])
			}
		}
		if meta.Comment == "" {
			if m := commentLRe.FindStringSubmatch(text); m != nil {
				meta.Comment = cleanComment(m[1])
			} else if m := commentSRe.FindStringSubmatch(text); m != nil {
				meta.Comment = cleanComment(m[1])
			}
		}
		if meta.Author == "" {
			if m := authorRe.FindStringSubmatch(text); m != nil {
				meta.Author = strings.TrimSpace(m[1])
			}
		}
		if meta.Minor == 0 {
			if m := minorRe.FindStringSubmatch(text); m != nil {
				meta.Minor, _ = strconv.Atoi(m[1])
			}
		}
		if meta.Micro == 0 {
			if m := microRe.FindStringSubmatch(text); m != nil {
				meta.Micro, _ = strconv.Atoi(m[1])
			}
		}
		for _, m := range typeRe.FindAllStringSubmatch(text, -1) {
			if m[1] != "Plugin" && !seenTypes[m[1]] {
				seenTypes[m[1]] = true
				meta.Types = append(meta.Types, m[1])
			}
		}
		if meta.Screenshot == "" {
			// modgui:screenshot references an image relative to the bundle;
			// keep it only when the file is actually there.
			if m := screenshotRe.FindStringSubmatch(text); m != nil {
				shot := filepath.Join(dir, filepath.FromSlash(m[1]))
				if _, err := os.Stat(shot); err == nil {
					meta.Screenshot = shot
				}
			}
		}
	}

	sort.Strings(meta.Types)
	return meta, nil
}

// normalizeLicense reduces a license URI or label to a lowercase token that
// can be looked up in the license table. URIs keep only their last path
// segment, so <http://opensource.org/licenses/GPL-3.0> becomes "gpl-3.0".
func normalizeLicense(v string) string {
	v = strings.TrimSpace(strings.TrimSuffix(v, "/"))
	if i := strings.LastIndexAny(v, "/#"); i >= 0 {
		v = v[i+1:]
	}
	return strings.ToLower(v)
}

func cleanComment(s string) string {
	s = strings.TrimSpace(s)
	if commentBlacklist[s] {
		return ""
	}
	return s
}

// Revision formats the LV2 minor/micro version pair, defaulting to "0.0".
func (m Metadata) Revision() string {
	return fmt.Sprintf("%d.%d", m.Minor, m.Micro)
}

// Stability classifies the revision per LV2 convention: 0.x is experimental,
// odd minor or micro is testing, the rest is stable.
func (m Metadata) Stability() string {
	if m.Minor == 0 {
		return "experimental"
	}
	if m.Minor%2 != 0 || m.Micro%2 != 0 {
		return "testing"
	}
	return "stable"
}
