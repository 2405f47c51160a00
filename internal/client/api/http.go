package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/minhvng/recruitcli/internal/logging"
)

// HTTPTransport implements Transport over net/http.
type HTTPTransport struct {
	baseURL string
	client  *http.Client
	log     logging.Logger
}

// NewHTTPTransport builds a transport rooted at baseURL. The timeout applies
// to every request; callers needing tighter deadlines pass them via context.
func NewHTTPTransport(baseURL string, timeout time.Duration, log logging.Logger) *HTTPTransport {
	return &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (t *HTTPTransport) Request(ctx context.Context, endpoint, method, token string, body any) (json.RawMessage, error) {

	reqBody, contentType, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("building request %s %s: %w", method, endpoint, err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	t.log.Debug(ctx, "api request", "method", method, "endpoint", endpoint)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %v: %w", method, endpoint, err, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response %s %s: %w", method, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: extractMessage(data)}
		t.log.Debug(ctx, "api error", "method", method, "endpoint", endpoint,
			"status", resp.StatusCode, "message", apiErr.Message)
		return nil, apiErr
	}

	if len(data) == 0 {
		return nil, nil
	}
	return json.RawMessage(data), nil
}

// encodeBody turns the request payload into a reader plus its Content-Type.
// Multipart bodies report the writer's generated boundary.
func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {

	case nil:
		return nil, "", nil

	case JSONBody:
		data, err := json.Marshal(b.Value)
		if err != nil {
			return nil, "", fmt.Errorf("encoding json body: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil

	case MultipartBody:
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		for name, value := range b.Fields {
			if err := w.WriteField(name, value); err != nil {
				return nil, "", fmt.Errorf("encoding form field %s: %w", name, err)
			}
		}
		if b.File != nil {
			part, err := createFilePart(w, b.File)
			if err != nil {
				return nil, "", err
			}
			if _, err := io.Copy(part, b.File.Content); err != nil {
				return nil, "", fmt.Errorf("encoding file part: %w", err)
			}
		}
		if err := w.Close(); err != nil {
			return nil, "", fmt.Errorf("closing multipart body: %w", err)
		}
		return &buf, w.FormDataContentType(), nil

	default:
		return nil, "", fmt.Errorf("unsupported body type %T", body)
	}
}

func createFilePart(w *multipart.Writer, f *FormFile) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, f.FieldName, f.FileName))
	ct := f.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("creating file part: %w", err)
	}
	return part, nil
}

// extractMessage pulls a human-readable error out of a failure body,
// preferring "detail", then "message", then a generic fallback.
func extractMessage(data []byte) string {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return "request failed"
}
