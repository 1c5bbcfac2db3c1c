// Package upload sends photo files to the upload endpoint.
package upload

import (
	"PlanPhotos/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
)

type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{endpoint: endpoint, httpClient: hc}
}

// Upload streams body as multipart field "file" together with the target
// directory fields and returns the stored file names.
func (c *Client) Upload(ctx context.Context, meta model.UploadMeta, fileName string, body io.Reader) ([]model.UploadResult, error) {
	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeForm(form, meta, fileName, body))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, pr)
	if err != nil {
		pr.Close()
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload: error sending %s: %w", fileName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("upload: %s rejected with %s: %s", fileName, resp.Status, msg)
	}

	var results []model.UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("upload: error decoding response: %w", err)
	}
	return results, nil
}

func writeForm(form *multipart.Writer, meta model.UploadMeta, fileName string, body io.Reader) error {
	if err := form.WriteField("tgtDir", meta.TargetDirectory); err != nil {
		return err
	}
	if err := form.WriteField("clientDirName", meta.OwnerDirectoryName); err != nil {
		return err
	}
	part, err := form.CreateFormFile("file", filepath.Base(fileName))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, body); err != nil {
		return err
	}
	return form.Close()
}
