package testutil

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"
)

// PNG is enough of a PNG file for content sniffing
var PNG = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)

// MultipartBody encodes one file under field and returns the body with its content type.
func MultipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("MultipartBody() failed: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("MultipartBody() failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("MultipartBody() failed: %v", err)
	}
	return &body, w.FormDataContentType()
}

// FileHeader builds the header a handler would receive for an uploaded file.
func FileHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body, contentType := MultipartBody(t, field, filename, content)
	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", contentType)
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("FileHeader() failed: %v", err)
	}
	return req.MultipartForm.File[field][0]
}
