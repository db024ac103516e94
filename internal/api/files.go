package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
)

// FileUploadResponse is the payload from POST /files.
type FileUploadResponse struct {
	ID json.Number `json:"id"`
}

// UploadFile streams one archive to the files endpoint and returns the
// server-assigned file id. targetID tags the file with its build target;
// pass 0 to omit it.
func (c *Client) UploadFile(ctx context.Context, filename string, r io.Reader, targetID int) (int64, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		var err error
		defer func() { pw.CloseWithError(err) }()

		if targetID != 0 {
			if err = mw.WriteField("target", strconv.Itoa(targetID)); err != nil {
				return
			}
		}

		var part io.Writer
		part, err = mw.CreateFormFile("file", filename)
		if err != nil {
			return
		}
		if _, err = io.Copy(part, r); err != nil {
			return
		}
		err = mw.Close()
	}()

	var resp FileUploadResponse
	if _, err := c.DoMultipart(ctx, "/files", mw.FormDataContentType(), pr, &resp); err != nil {
		return 0, fmt.Errorf("upload file %s: %w", filename, err)
	}

	id, err := resp.ID.Int64()
	if err != nil {
		return 0, fmt.Errorf("upload file %s: bad file id %q", filename, resp.ID)
	}
	return id, nil
}
