package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"

	"github.com/Veraticus/wardrobe/internal/model"
)

// Upload sends one image to the classify endpoint.
func (c *Client) Upload(ctx context.Context, file model.PendingFile, autoClassify bool) (*model.ClassificationResult, error) {
	body, contentType, err := multipartBody(file, map[string]string{
		"auto_classify": strconv.FormatBool(autoClassify),
	})
	if err != nil {
		return nil, err
	}
	return c.classify(ctx, "/clothes/upload", body, contentType)
}

// PreviewClassify runs the classifier without registering the upload for confirmation.
func (c *Client) PreviewClassify(ctx context.Context, file model.PendingFile) (*model.ClassificationResult, error) {
	body, contentType, err := multipartBody(file, nil)
	if err != nil {
		return nil, err
	}
	return c.classify(ctx, "/clothes/preview-classify", body, contentType)
}

func (c *Client) classify(ctx context.Context, path string, body []byte, contentType string) (*model.ClassificationResult, error) {
	env, err := c.call(ctx, request{
		Method:      http.MethodPost,
		Path:        path,
		Body:        body,
		ContentType: contentType,
		Fallback:    msgUploadFailed,
	})
	if err != nil {
		return nil, err
	}

	var result model.ClassificationResult
	if err := decodeData(env, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// multipartBody encodes file under the "file" field plus any extra form fields.
func multipartBody(file model.PendingFile, fields map[string]string) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, "", fmt.Errorf("failed to write file part: %w", err)
	}

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
