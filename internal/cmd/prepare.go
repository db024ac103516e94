package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/patchstorage/patchbot/internal/archive"
	"github.com/patchstorage/patchbot/internal/catalog"
	"github.com/patchstorage/patchbot/internal/lv2"
	"github.com/patchstorage/patchbot/internal/manifest"
)

func newPrepareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prepare [target|all]",
		Short: "Package plugin bundles and generate their manifests",
		Long: `Scan the plugin builds directory, pack each valid bundle into a tar.gz
archive, and write a manifest next to it in the dist directory.

A bundle folder must contain a manifest.ttl and at least one .so file;
anything else is skipped with a notice. A failure on one bundle never
stops the rest of the run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selector := "all"
			if len(args) == 1 {
				selector = args[0]
			}
			return runPrepare(selector)
		},
	}
	return cmd
}

func runPrepare(selector string) error {
	app := MustApp()
	cfg := app.Config

	cat, err := catalog.Load(cfg.LicensesFile, cfg.OverridesFile)
	if err != nil {
		return err
	}
	printDebug("Loaded %d licenses, %d plugin overrides", cat.Licenses(), cat.Overrides())

	if err := os.MkdirAll(cfg.DistDir, 0o755); err != nil {
		return fmt.Errorf("create dist directory: %w", err)
	}

	// One prepare at a time per dist directory; concurrent runs would race
	// on the archives.
	lock := flock.New(filepath.Join(cfg.DistDir, ".prepare.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock dist directory: %w", err)
	}
	if !locked {
		return fmt.Errorf("another prepare is already running against %s", cfg.DistDir)
	}
	defer lock.Unlock()

	bundles, skipped, err := lv2.Discover(cfg.PluginsDir, selector)
	if err != nil {
		return err
	}

	for _, s := range skipped {
		app.Out.Skip("%s/%s: %v", s.Target, s.Name, s.Reason)
	}

	var (
		records  []*manifest.Record
		prepared int
		failed   int
	)

	for _, b := range bundles {
		meta, err := lv2.ScanMetadata(b.Path)
		if err != nil {
			app.Out.Warning("%s/%s: reading metadata: %v", b.Target, b.Name, err)
		}

		rec := manifest.Build(b, meta, cat, cfg.PlatformID, cfg.DefaultTags)

		info, err := archive.Create(b.Path, filepath.Join(cfg.DistDir, rec.ArchiveName()))
		if err != nil {
			app.Out.Error("%s/%s: %v", b.Target, b.Name, err)
			failed++
			continue
		}
		rec.Artifact = rec.ArchiveName()
		rec.SHA256 = info.SHA256

		if meta.Screenshot != "" {
			if err := copyFile(meta.Screenshot, filepath.Join(cfg.DistDir, rec.ArtworkName())); err != nil {
				app.Out.Warning("%s/%s: copy artwork: %v", b.Target, b.Name, err)
			} else {
				rec.Artwork = rec.ArtworkName()
			}
		}

		if _, err := manifest.Write(cfg.DistDir, rec); err != nil {
			app.Out.Error("%s/%s: %v", b.Target, b.Name, err)
			failed++
			continue
		}

		prepared++
		records = append(records, rec)
		if rec.Incomplete {
			app.Out.Warning("%s: manifest incomplete, missing %v; edit %s before pushing",
				rec.Basename(), rec.Missing, rec.Filename())
		}
		app.Out.Success("%s: %s (%s)", rec.Basename(), rec.ArchiveName(), humanize.Bytes(uint64(info.Size)))
	}

	if app.Out.IsJSON() {
		return app.Out.JSON(records)
	}

	app.Out.Info("%d prepared, %d skipped, %d failed", prepared, len(skipped), failed)
	return nil
}

func copyFile(src, dest string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}
