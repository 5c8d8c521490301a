package submission

import (
	"strings"
	"testing"
)

func validForm() Form {
	return Form{
		FullName:                 "Juan Tester",
		Email:                    "juan@example.com",
		Phone:                    "5512345678",
		Country:                  "MX",
		DocumentType:             "INE",
		DocumentNumber:           "ABC123456",
		DocumentImageURL:         "https://example.com/doc.jpg",
		OriginalDocumentFilename: "doc.jpg",
	}
}

func TestValidateEmptyFormListsAllFieldsInOrder(t *testing.T) {
	form := Form{}
	errs := form.Validate()

	wantFields := []string{
		"full_name",
		"email",
		"phone",
		"country",
		"document_type",
		"document_number",
		"document_image_url",
	}
	if len(errs) != len(wantFields) {
		t.Fatalf("expected %d errors, got %d: %+v", len(wantFields), len(errs), errs)
	}
	for i, want := range wantFields {
		if errs[i].Field != want {
			t.Fatalf("expected error %d for %s, got %s", i, want, errs[i].Field)
		}
		if !strings.Contains(errs[i].Message, "required") {
			t.Fatalf("expected required message for %s, got %q", want, errs[i].Message)
		}
	}
}

func TestValidateSingleMissingField(t *testing.T) {
	form := validForm()
	form.Country = ""

	errs := form.Validate()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %+v", len(errs), errs)
	}
	if errs[0].Field != "country" || errs[0].Message != "country is required" {
		t.Fatalf("unexpected error %+v", errs[0])
	}
}

func TestValidateBadEmail(t *testing.T) {
	form := validForm()
	form.Email = "not-an-email"

	errs := form.Validate()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %+v", len(errs), errs)
	}
	if errs[0].Field != "email" || !strings.Contains(errs[0].Message, "valid email") {
		t.Fatalf("unexpected error %+v", errs[0])
	}
}

func TestValidatePendingFileSatisfiesImageRequirement(t *testing.T) {
	form := validForm()
	form.DocumentImageURL = ""
	form.PendingFile = &File{Name: "doc.jpg", ContentType: "image/jpeg", Reader: strings.NewReader("x")}

	if errs := form.Validate(); len(errs) != 0 {
		t.Fatalf("expected no errors with pending file, got %+v", errs)
	}

	form.PendingFile = nil
	errs := form.Validate()
	if len(errs) != 1 || errs[0].Field != "document_image_url" {
		t.Fatalf("expected document_image_url error without file, got %+v", errs)
	}
}

func TestValidFormProducesNoErrors(t *testing.T) {
	form := validForm()
	if errs := form.Validate(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %+v", errs)
	}
}
