package apiclient

import (
	"bytes"
	"io"
	"mime/multipart"
)

// Form accumulates multipart form fields and file parts. It mirrors what the
// mobile client builds with FormData for profile, product and company
// updates.
type Form struct {
	buf    bytes.Buffer
	writer *multipart.Writer
	err    error
}

// NewForm creates an empty multipart form.
func NewForm() *Form {
	f := &Form{}
	f.writer = multipart.NewWriter(&f.buf)
	return f
}

// Set adds a text field.
func (f *Form) Set(key, value string) *Form {
	if f.err == nil {
		f.err = f.writer.WriteField(key, value)
	}
	return f
}

// File adds a file part read from r.
func (f *Form) File(field, filename string, r io.Reader) *Form {
	if f.err != nil {
		return f
	}
	part, err := f.writer.CreateFormFile(field, filename)
	if err != nil {
		f.err = err
		return f
	}
	_, f.err = io.Copy(part, r)
	return f
}

// Encode finalizes the form and returns the body reader and content type.
func (f *Form) Encode() (io.Reader, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	if err := f.writer.Close(); err != nil {
		return nil, "", err
	}
	return &f.buf, f.writer.FormDataContentType(), nil
}
