package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"tutorhub-service/pkg/response"
)

// MaxUploadSize caps tutoring images at 5MB.
const MaxUploadSize = 5 << 20

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadTutoringImage posts the image as multipart form data and
// returns the public URL it will be served from. A missing file name
// gets a generated one. Size and MIME type are rejected before any
// network call.
func (c *Client) UploadTutoringImage(ctx context.Context, tutoringID, fileName, contentType string, size int64, file io.Reader) (string, error) {
	const op = "backend.UploadTutoringImage"

	if size > MaxUploadSize {
		return "", fmt.Errorf("%s: file exceeds %d bytes: %w", op, int64(MaxUploadSize), response.ErrValidation)
	}

	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%s: unsupported content type %q: %w", op, contentType, response.ErrValidation)
	}

	if fileName == "" {
		fileName = uuid.NewString() + ext
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if _, err := io.Copy(part, io.LimitReader(file, MaxUploadSize)); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := writer.WriteField("tutoringId", tutoringID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := writer.WriteField("fileName", fileName); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/storage/tutoring-images", &body)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.upload.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%s: status %d: %w", op, resp.StatusCode, response.ErrUpstream)
	}

	return c.ImageURL(tutoringID, fileName), nil
}

func (c *Client) ImageURL(tutoringID, fileName string) string {
	return c.baseURL + "/storage/tutoring-images/" + url.PathEscape(tutoringID) + "/" + url.PathEscape(fileName)
}

func (c *Client) DeleteTutoringImage(ctx context.Context, tutoringID, fileName string) error {
	const op = "backend.DeleteTutoringImage"

	path := "/storage/tutoring-images/" + url.PathEscape(tutoringID) + "/" + url.PathEscape(fileName)
	if _, err := c.send(ctx, http.MethodDelete, path, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
