package submission

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"verification-client/internal/requests"
	"verification-client/internal/shared/telemetry"
	"verification-client/internal/uploads"
)

// State identifies where a submission currently is in its lifecycle.
// submitted is terminal; invalid, upload_failed and submit_failed are
// recoverable by editing the form or retrying.
type State string

const (
	StateIdle         State = "idle"
	StateValidating   State = "validating"
	StateInvalid      State = "invalid"
	StateUploading    State = "uploading"
	StateSubmitting   State = "submitting"
	StateSubmitted    State = "submitted"
	StateUploadFailed State = "upload_failed"
	StateSubmitFailed State = "submit_failed"
)

// DocumentUploader stores a picked file and returns its stable reference.
type DocumentUploader interface {
	UploadDocument(ctx context.Context, filename, contentType string, r io.Reader) (*uploads.Result, error)
}

// SubmitFunc receives the finalized creation payload. The default
// wiring calls requests.API.Create; an embedding UI may supply its own
// handler to keep the workflow decoupled from transport.
type SubmitFunc func(ctx context.Context, payload requests.CreatePayload) (*requests.VerificationRequest, error)

// ErrSubmitInFlight is returned when Submit is invoked while an earlier
// submission on the same Submitter has not finished. Disabling the
// submit control is a UI convention; this guard is the hard one.
var ErrSubmitInFlight = errors.New("submission already in flight")

// Submitter runs one form through the submission workflow. Each
// Submitter owns its form snapshot; instances are independent and the
// only shared resource is the server-side record.
type Submitter struct {
	mu         sync.Mutex
	form       Form
	uploader   DocumentUploader
	submit     SubmitFunc
	state      State
	fieldErrs  []FieldError
	uploading  bool
	submitting bool
	inflight   string
}

// NewSubmitter builds a workflow over the given form. The submit
// handler receives the finalized payload.
func NewSubmitter(form Form, uploader DocumentUploader, submit SubmitFunc) *Submitter {
	return &Submitter{
		form:     form,
		uploader: uploader,
		submit:   submit,
		state:    StateIdle,
	}
}

// NewAPISubmitter wires the workflow directly to the create operation.
func NewAPISubmitter(form Form, uploader DocumentUploader, api *requests.API) *Submitter {
	return NewSubmitter(form, uploader, api.Create)
}

// Submit runs the workflow once. Validation failures come back as the
// FieldError slice with a nil error and never reach the network; upload
// and transport failures come back as errors and leave the workflow in
// a retryable state. A second call while one is in flight is rejected
// with ErrSubmitInFlight.
func (s *Submitter) Submit(ctx context.Context) (*requests.VerificationRequest, []FieldError, error) {
	token := uuid.NewString()
	s.mu.Lock()
	if s.inflight != "" {
		s.mu.Unlock()
		return nil, nil, ErrSubmitInFlight
	}
	s.inflight = token
	s.state = StateValidating
	form := s.form
	s.mu.Unlock()
	defer s.release(token)

	if errs := form.Validate(); len(errs) > 0 {
		s.mu.Lock()
		s.state = StateInvalid
		s.fieldErrs = errs
		s.mu.Unlock()
		return nil, errs, nil
	}
	s.mu.Lock()
	s.fieldErrs = nil
	s.mu.Unlock()

	if form.PendingFile != nil && form.DocumentImageURL == "" {
		s.setUploading(true)
		result, err := s.uploader.UploadDocument(ctx, form.PendingFile.Name, form.PendingFile.ContentType, form.PendingFile.Reader)
		s.setUploading(false)
		if err != nil {
			s.setState(StateUploadFailed)
			telemetry.Logger.Warn("document upload failed", zap.Error(err))
			return nil, nil, errors.Wrap(err, "upload document")
		}

		s.mu.Lock()
		s.form.DocumentImageURL = result.URL
		s.form.OriginalDocumentFilename = result.Filename
		s.form.PendingFile = nil
		form = s.form
		s.mu.Unlock()
	}

	s.setSubmitting(true)
	created, err := s.submit(ctx, form.Payload())
	s.setSubmitting(false)
	if err != nil {
		s.setState(StateSubmitFailed)
		telemetry.Logger.Warn("request creation failed", zap.Error(err))
		return nil, nil, errors.Wrap(err, "create request")
	}

	s.setState(StateSubmitted)
	return created, nil, nil
}

func (s *Submitter) release(token string) {
	s.mu.Lock()
	if s.inflight == token {
		s.inflight = ""
	}
	s.mu.Unlock()
}

func (s *Submitter) setUploading(on bool) {
	s.mu.Lock()
	s.uploading = on
	if on {
		s.state = StateUploading
	}
	s.mu.Unlock()
}

func (s *Submitter) setSubmitting(on bool) {
	s.mu.Lock()
	s.submitting = on
	if on {
		s.state = StateSubmitting
	}
	s.mu.Unlock()
}

func (s *Submitter) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// State reports the workflow's current lifecycle state.
func (s *Submitter) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// FieldErrors returns the last validation result; non-empty exactly
// when the last Submit stopped at validation.
func (s *Submitter) FieldErrors() []FieldError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fieldErrs
}

// Uploading reports whether the upload step is in progress.
func (s *Submitter) Uploading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploading
}

// Submitting reports whether the create call is in progress.
func (s *Submitter) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// CanSubmit reports whether the submit control should be enabled: false
// while either busy flag is set, true once both clear.
func (s *Submitter) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.uploading && !s.submitting
}

// Snapshot returns a copy of the current form for re-rendering.
func (s *Submitter) Snapshot() Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// SetForm replaces the form snapshot after user edits.
func (s *Submitter) SetForm(form Form) {
	s.mu.Lock()
	s.form = form
	s.mu.Unlock()
}
