package uploads

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUploadDocumentSendsMultipartFileField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/uploads/document" {
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()

		if header.Filename != "doc.jpg" {
			t.Errorf("expected filename doc.jpg, got %q", header.Filename)
		}
		if ct := header.Header.Get("Content-Type"); ct != "image/jpeg" {
			t.Errorf("expected content type image/jpeg, got %q", ct)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "fake image bytes" {
			t.Errorf("unexpected file contents %q", string(data))
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"url": "/static/uploads/stored.jpg",
			"filename": "doc.jpg",
			"stored_name": "stored.jpg",
			"content_type": "image/jpeg"
		}`))
	}))
	defer srv.Close()

	uploader := NewUploader(srv.URL)
	result, err := uploader.UploadDocument(context.Background(), "doc.jpg", "image/jpeg", strings.NewReader("fake image bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if result.URL != "/static/uploads/stored.jpg" {
		t.Fatalf("unexpected url %q", result.URL)
	}
	if result.Filename != "doc.jpg" || result.ContentType != "image/jpeg" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestUploadDocumentRejectionCarriesBodyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Tipo de archivo no permitido: text/plain"}`))
	}))
	defer srv.Close()

	uploader := NewUploader(srv.URL)
	_, err := uploader.UploadDocument(context.Background(), "doc.txt", "text/plain", strings.NewReader("x"))

	var upErr *UploadError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected *UploadError, got %v", err)
	}
	if upErr.Status != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", upErr.Status)
	}
	if !strings.Contains(upErr.Message, "Tipo de archivo no permitido") {
		t.Fatalf("expected body text in message, got %q", upErr.Message)
	}
}

func TestUploadDocumentFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	uploader := NewUploader(srv.URL)
	_, err := uploader.UploadDocument(context.Background(), "doc.jpg", "image/jpeg", strings.NewReader("x"))

	var upErr *UploadError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected *UploadError, got %v", err)
	}
	if upErr.Message != "Error al subir el archivo" {
		t.Fatalf("expected fallback message, got %q", upErr.Message)
	}
}
