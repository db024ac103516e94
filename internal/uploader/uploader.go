// Package uploader drives the push phase: it pairs manifests in the dist
// directory with their archives and submits each pair to the API. A failure
// on one item never aborts the rest of the batch.
package uploader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"github.com/patchstorage/patchbot/internal/api"
	"github.com/patchstorage/patchbot/internal/manifest"
	"github.com/patchstorage/patchbot/internal/output"
)

// Status tracks an item through the upload pipeline.
type Status int

const (
	StatusPending Status = iota
	StatusUploaded
	StatusSuccess
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusUploaded:
		return "uploaded"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Item is one (manifest, archive) pair queued for upload.
type Item struct {
	Record       *manifest.Record
	ManifestPath string
	ArchivePath  string
	Status       Status
	Err          error
	Patch        *api.Patch
}

// Summary aggregates batch results for the final report and exit decision.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
}

// Collect reads the manifests under distDir and pairs each with its archive.
// The selector is a target slug or "all". A manifest whose archive is missing
// becomes a failed item rather than an error; malformed manifest files abort,
// since pushing a half-read batch would be worse than pushing nothing.
func Collect(distDir, selector string) ([]*Item, error) {
	paths, err := filepath.Glob(filepath.Join(distDir, "*.patchstorage.json"))
	if err != nil {
		return nil, fmt.Errorf("scan dist directory %s: %w", distDir, err)
	}
	sort.Strings(paths)

	var items []*Item
	for _, path := range paths {
		rec, err := manifest.Read(path)
		if err != nil {
			return nil, err
		}
		if selector != "all" && rec.Target != selector {
			continue
		}

		item := &Item{
			Record:       rec,
			ManifestPath: path,
			ArchivePath:  filepath.Join(distDir, rec.ArchiveName()),
		}
		if _, err := os.Stat(item.ArchivePath); err != nil {
			item.Status = StatusFailed
			item.Err = fmt.Errorf("archive %s not found; run prepare first", rec.ArchiveName())
		}
		items = append(items, item)
	}

	return items, nil
}

// Options configures a Run.
type Options struct {
	// Targets maps target slugs to server-side target ids. May be nil when
	// the platform lookup failed; files are then uploaded untagged.
	Targets map[string]int

	// ShowProgress renders a byte-level progress bar per upload.
	ShowProgress bool

	Out   *output.Writer
	Debug bool
}

// Uploader submits collected items to the API.
type Uploader struct {
	client *api.Client
	opts   Options
}

// New creates an Uploader. The client must already hold an auth token.
func New(client *api.Client, opts Options) *Uploader {
	if opts.Out == nil {
		opts.Out = output.NewWriter("quiet")
	}
	return &Uploader{client: client, opts: opts}
}

// Run pushes every pending item, isolating failures per item. It returns a
// summary; the batch itself never errors once started.
func (u *Uploader) Run(ctx context.Context, items []*Item) Summary {
	summary := Summary{Total: len(items)}

	for _, item := range items {
		if item.Status == StatusFailed {
			summary.Failed++
			u.opts.Out.Error("%s: %s", item.Record.Basename(), item.Err)
			continue
		}

		if err := u.pushOne(ctx, item); err != nil {
			item.Status = StatusFailed
			item.Err = err
			summary.Failed++
			u.opts.Out.Error("%s: %s", item.Record.Basename(), err)
			continue
		}

		item.Status = StatusSuccess
		summary.Succeeded++
		u.opts.Out.Success("%s: published as %q (revision %s)",
			item.Record.Basename(), item.Patch.Title, item.Record.Revision)
	}

	return summary
}

func (u *Uploader) pushOne(ctx context.Context, item *Item) error {
	rec := item.Record

	f, err := os.Open(item.ArchivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat archive: %w", err)
	}

	u.opts.Out.Debug(u.opts.Debug, "uploading %s (%s)",
		filepath.Base(item.ArchivePath), humanize.Bytes(uint64(stat.Size())))

	var reader io.Reader = f
	if u.opts.ShowProgress {
		bar := progressbar.DefaultBytes(stat.Size(), rec.Basename())
		reader = io.TeeReader(f, bar)
		defer bar.Finish()
	}

	targetID := u.opts.Targets[rec.Target]
	fileID, err := u.client.UploadFile(ctx, filepath.Base(item.ArchivePath), reader, targetID)
	if err != nil {
		return err
	}

	req := api.PatchRequest{
		Title:     rec.Title,
		Content:   rec.Description,
		Revision:  rec.Revision,
		State:     rec.State,
		Platform:  rec.Platform,
		License:   rec.License.ID,
		Tags:      rec.Tags,
		SourceURL: rec.SourceURL,
		DonateURL: rec.DonateURL,
		Files:     []int64{fileID},
	}
	if rec.UID != "" {
		req.UIDs = []string{rec.UID}
	}

	if rec.Artwork != "" {
		artworkID, err := u.uploadArtwork(ctx, item)
		if err != nil {
			return err
		}
		req.Artwork = artworkID
	}
	item.Status = StatusUploaded

	// A hand-set patch_id in the manifest turns the submission into an
	// update of that entry; otherwise the server decides what a fresh
	// create means for an existing plugin.
	var patch *api.Patch
	if rec.PatchID != 0 {
		patch, err = u.client.UpdatePatch(ctx, rec.PatchID, req)
	} else {
		patch, err = u.client.CreatePatch(ctx, req)
	}
	if err != nil {
		return err
	}
	item.Patch = patch
	return nil
}

// uploadArtwork sends the cover art recorded in the manifest as its own
// file and returns the server-assigned id.
func (u *Uploader) uploadArtwork(ctx context.Context, item *Item) (int64, error) {
	path := filepath.Join(filepath.Dir(item.ArchivePath), item.Record.Artwork)
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open artwork: %w", err)
	}
	defer f.Close()

	return u.client.UploadFile(ctx, item.Record.Artwork, f, 0)
}

// FormatSummary renders the one-line batch result, e.g. "3 published, 1 failed".
func FormatSummary(s Summary) string {
	parts := []string{fmt.Sprintf("%d published", s.Succeeded)}
	if s.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", s.Failed))
	}
	return strings.Join(parts, ", ")
}
