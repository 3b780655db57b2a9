package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// Form is a prebuilt multipart/form-data request body. The request core
// passes it through unmodified; the boundary content type is the form's
// own, captured from the multipart writer when the form is closed.
type Form struct {
	buf         bytes.Buffer
	writer      *multipart.Writer
	contentType string
}

// NewForm returns an empty multipart form.
func NewForm() *Form {
	f := &Form{}
	f.writer = multipart.NewWriter(&f.buf)
	return f
}

// AddField appends a plain text field.
func (f *Form) AddField(name, value string) error {
	if err := f.writer.WriteField(name, value); err != nil {
		return fmt.Errorf("write form field %q: %w", name, err)
	}
	return nil
}

// AddFile appends a file part, copying the reader's content.
func (f *Form) AddFile(name, filename string, r io.Reader) error {
	part, err := f.writer.CreateFormFile(name, filename)
	if err != nil {
		return fmt.Errorf("create form file %q: %w", name, err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("copy form file %q: %w", name, err)
	}
	return nil
}

// Close finalizes the form. No parts may be added afterwards.
func (f *Form) Close() error {
	if err := f.writer.Close(); err != nil {
		return fmt.Errorf("close form: %w", err)
	}
	f.contentType = f.writer.FormDataContentType()
	return nil
}

// ContentType returns the multipart content type with the form's boundary.
// Empty until Close is called.
func (f *Form) ContentType() string {
	return f.contentType
}

// Reader returns the encoded body.
func (f *Form) Reader() io.Reader {
	return bytes.NewReader(f.buf.Bytes())
}
