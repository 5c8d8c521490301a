package requests

import "time"

// Status is the review lifecycle state of a verification request. New
// requests always start as pending; every later value is assigned by
// the server through the status endpoint.
type Status string

const (
	StatusPending      Status = "pending"
	StatusApproved     Status = "approved"
	StatusRejected     Status = "rejected"
	StatusRequiresInfo Status = "requires_info"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusRequiresInfo:
		return true
	}
	return false
}

// RiskLevel is the server-computed categorical risk assessment.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// VerificationRequest is the server-owned intake record. Status, risk
// figures and created_at are read-only on this side; they are never set
// locally, only round-tripped through the server.
type VerificationRequest struct {
	ID                       string    `json:"id"`
	FullName                 string    `json:"full_name"`
	Email                    string    `json:"email"`
	Phone                    string    `json:"phone"`
	Country                  string    `json:"country"`
	DocumentType             string    `json:"document_type"`
	DocumentNumber           string    `json:"document_number"`
	DocumentImageURL         string    `json:"document_image_url"`
	OriginalDocumentFilename string    `json:"original_document_filename"`
	Status                   Status    `json:"status"`
	RiskScore                int       `json:"risk_score"`
	RiskLevel                RiskLevel `json:"risk_level"`
	CreatedAt                time.Time `json:"created_at"`
}

// CreatePayload carries exactly the user-supplied fields of a new
// request. The original filename is provenance metadata taken from the
// upload step.
type CreatePayload struct {
	FullName                 string `json:"full_name"`
	Email                    string `json:"email"`
	Phone                    string `json:"phone"`
	Country                  string `json:"country"`
	DocumentType             string `json:"document_type"`
	DocumentNumber           string `json:"document_number"`
	DocumentImageURL         string `json:"document_image_url"`
	OriginalDocumentFilename string `json:"original_document_filename"`
}
