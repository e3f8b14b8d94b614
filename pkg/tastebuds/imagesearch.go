package tastebuds

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// SearchByImage uploads a food photo and returns restaurants serving similar
// dishes. This is the one operation that ships multipart form data instead
// of JSON; the response side goes through the usual normalization.
func (c *Client) SearchByImage(ctx context.Context, filename string, image io.Reader, location string) (*ImageSearchResponse, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart file field: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	query := url.Values{"location": {location}}
	var out ImageSearchResponse
	if err := c.do(ctx, "image_search", http.MethodPost, "/image-search/upload", query, &buf, writer.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
