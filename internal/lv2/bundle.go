// Package lv2 discovers LV2 plugin bundles under a per-target directory tree
// and extracts best-effort metadata from their Turtle files.
package lv2

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// BundleSuffix is the conventional folder suffix for LV2 bundles.
const BundleSuffix = ".lv2"

// Validation failures that cause a bundle to be skipped rather than aborting
// the run.
var (
	ErrNotADirectory = errors.New("not a directory")
	ErrNoManifest    = errors.New("no manifest.ttl in bundle")
	ErrNoBinary      = errors.New("no .so file in bundle")
)

// Bundle is one plugin folder discovered under a build target.
type Bundle struct {
	Target string // target slug, e.g. "rpi-aarch64"
	Name   string // folder name, e.g. "mod-bigmuff.lv2"
	Path   string // absolute or root-relative folder path
}

// Slug returns the bundle identifier with the .lv2 suffix stripped.
func (b Bundle) Slug() string {
	return strings.TrimSuffix(b.Name, BundleSuffix)
}

// Skipped records a folder that looked like a bundle but failed validation.
type Skipped struct {
	Target string
	Name   string
	Reason error
}

// Targets lists the build-target directories under root in sorted order.
func Targets(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read plugins directory %s: %w", root, err)
	}

	var targets []string
	for _, entry := range entries {
		if entry.IsDir() {
			targets = append(targets, entry.Name())
		}
	}
	sort.Strings(targets)
	return targets, nil
}

// Discover walks plugins/<target>/<bundle> and returns the valid bundles for
// the selector plus the folders skipped for failing validation. The selector
// is either a single target slug or "all".
func Discover(root, selector string) ([]Bundle, []Skipped, error) {
	var targets []string
	if selector == "all" {
		var err error
		targets, err = Targets(root)
		if err != nil {
			return nil, nil, err
		}
	} else {
		info, err := os.Stat(filepath.Join(root, selector))
		if err != nil || !info.IsDir() {
			return nil, nil, fmt.Errorf("target %q not found under %s", selector, root)
		}
		targets = []string{selector}
	}

	var (
		bundles []Bundle
		skipped []Skipped
	)

	for _, target := range targets {
		targetDir := filepath.Join(root, target)
		entries, err := os.ReadDir(targetDir)
		if err != nil {
			return nil, nil, fmt.Errorf("read target directory %s: %w", targetDir, err)
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			path := filepath.Join(targetDir, entry.Name())
			if err := Validate(path); err != nil {
				skipped = append(skipped, Skipped{Target: target, Name: entry.Name(), Reason: err})
				continue
			}
			bundles = append(bundles, Bundle{
				Target: target,
				Name:   entry.Name(),
				Path:   path,
			})
		}
	}

	return bundles, skipped, nil
}

// Validate checks that path holds recognizable plugin content: a manifest.ttl
// and at least one shared object.
func Validate(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return ErrNotADirectory
	}

	if _, err := os.Stat(filepath.Join(path, "manifest.ttl")); err != nil {
		return ErrNoManifest
	}

	matches, err := filepath.Glob(filepath.Join(path, "*.so"))
	if err != nil || len(matches) == 0 {
		return ErrNoBinary
	}

	return nil
}
