package api

import (
	"context"
	"fmt"
)

// PatchRequest carries the manifest fields for a create-or-update call. The
// Files slice references ids returned by UploadFile.
type PatchRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Revision  string   `json:"revision"`
	State     int      `json:"state"`
	Platform  int      `json:"platform"`
	License   string   `json:"license"`
	Tags      []string `json:"tags,omitempty"`
	UIDs      []string `json:"uids,omitempty"`
	SourceURL string   `json:"source_code_url,omitempty"`
	DonateURL string   `json:"donate_url,omitempty"`
	Artwork   int64    `json:"artwork,omitempty"`
	Files     []int64  `json:"files"`
}

// Patch is the server's representation of a published plugin.
type Patch struct {
	ID       int64  `json:"id"`
	URL      string `json:"url"`
	Title    string `json:"title"`
	Revision string `json:"revision"`
}

// CreatePatch submits a new plugin entry. Whether re-submitting an existing
// plugin updates it or creates a duplicate is decided server-side; the CLI
// does not check beforehand.
func (c *Client) CreatePatch(ctx context.Context, req PatchRequest) (*Patch, error) {
	var patch Patch
	if _, err := c.Do(ctx, "POST", "/patches", req, &patch); err != nil {
		return nil, fmt.Errorf("submit %q: %w", req.Title, err)
	}
	return &patch, nil
}

// UpdatePatch replaces an existing plugin entry by id.
func (c *Client) UpdatePatch(ctx context.Context, id int64, req PatchRequest) (*Patch, error) {
	var patch Patch
	if _, err := c.Do(ctx, "PUT", fmt.Sprintf("/patches/%d", id), req, &patch); err != nil {
		return nil, fmt.Errorf("update %q: %w", req.Title, err)
	}
	return &patch, nil
}
