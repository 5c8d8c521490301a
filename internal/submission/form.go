// Package submission drives one verification request from a filled-in
// form through validation, optional document upload and creation.
package submission

import (
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"verification-client/internal/requests"
)

// File is a document picked for upload but not yet transmitted.
type File struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// Form is the in-memory snapshot of one intake submission. The image
// requirement is satisfied by either an already uploaded URL or a
// pending file; the upload step turns the latter into the former.
type Form struct {
	FullName                 string `json:"full_name" validate:"required"`
	Email                    string `json:"email" validate:"required,email"`
	Phone                    string `json:"phone" validate:"required"`
	Country                  string `json:"country" validate:"required"`
	DocumentType             string `json:"document_type" validate:"required"`
	DocumentNumber           string `json:"document_number" validate:"required"`
	DocumentImageURL         string `json:"document_image_url" validate:"required_without=PendingFile"`
	OriginalDocumentFilename string `json:"original_document_filename"`
	PendingFile              *File  `json:"-"`
}

// FieldError describes one invalid form field. Errors are reported in
// field declaration order, one entry per field, and rendered by the UI
// rather than propagated as Go errors.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the required fields and returns their errors, in
// order. An empty result means the form may proceed to upload/submit.
func (f *Form) Validate() []FieldError {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "form", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, FieldError{Field: e.Field(), Message: messageFor(e)})
	}
	return out
}

func messageFor(e validator.FieldError) string {
	switch e.Tag() {
	case "email":
		return e.Field() + " must be a valid email address"
	default:
		return e.Field() + " is required"
	}
}

// Payload builds the creation payload from the form fields. Call only
// after Validate returns no errors and any pending file was uploaded.
func (f *Form) Payload() requests.CreatePayload {
	return requests.CreatePayload{
		FullName:                 f.FullName,
		Email:                    f.Email,
		Phone:                    f.Phone,
		Country:                  f.Country,
		DocumentType:             f.DocumentType,
		DocumentNumber:           f.DocumentNumber,
		DocumentImageURL:         f.DocumentImageURL,
		OriginalDocumentFilename: f.OriginalDocumentFilename,
	}
}
