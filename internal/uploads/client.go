// Package uploads transmits document files to the intake storage
// endpoint and returns their stable references.
package uploads

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

	"github.com/pkg/errors"
)

const (
	uploadPath     = "/uploads/document"
	formFieldName  = "file"
	defaultTimeout = 60 * time.Second
)

// fallbackMessage is shown when the server rejects an upload without a
// usable body. Kept in the product's user-facing language.
const fallbackMessage = "Error al subir el archivo"

// UploadError describes a rejected document upload.
type UploadError struct {
	Status  int
	Message string
}

func (e *UploadError) Error() string { return e.Message }

// Result is the stable reference returned for a stored document. It is
// consumed immediately to fill the request's document_image_url; the
// original filename travels along as provenance.
type Result struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	StoredName  string `json:"stored_name"`
	ContentType string `json:"content_type"`
}

// Uploader posts document files to the intake upload endpoint.
type Uploader struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes an Uploader.
type Option func(*Uploader)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(u *Uploader) { u.httpClient = hc }
}

// NewUploader constructs an uploader for the given base endpoint.
func NewUploader(baseURL string, opts ...Option) *Uploader {
	u := &Uploader{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// UploadDocument sends the file as multipart form data and returns the
// stored reference. No client-side size or type checks; the server is
// the gatekeeper. No retries either, the caller decides what a failure
// means for its workflow.
func (u *Uploader) UploadDocument(ctx context.Context, filename, contentType string, r io.Reader) (*Result, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := createFilePart(writer, filename, contentType)
	if err != nil {
		return nil, errors.Wrap(err, "create form file")
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, errors.Wrap(err, "write form file")
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "close form")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+uploadPath, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		message := strings.TrimSpace(string(data))
		if message == "" {
			message = fallbackMessage
		}
		return nil, &UploadError{Status: resp.StatusCode, Message: message}
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Wrap(err, "decode upload response")
	}
	return &result, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// createFilePart mirrors multipart.Writer.CreateFormFile but keeps the
// caller's content type instead of forcing application/octet-stream.
func createFilePart(w *multipart.Writer, filename, contentType string) (io.Writer, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		formFieldName, quoteEscaper.Replace(filename)))
	h.Set("Content-Type", contentType)
	return w.CreatePart(h)
}
