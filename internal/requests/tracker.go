package requests

import (
	"context"

	"github.com/pkg/errors"
)

// Tracker holds the locally displayed copy of a single request and
// keeps it in sync with the server across status transitions. The
// server stays authoritative: a transition may recompute risk figures,
// so the held entity is always replaced wholesale with the response,
// never patched locally.
type Tracker struct {
	api     *API
	current *VerificationRequest
}

// NewTracker constructs a tracker over the request façade.
func NewTracker(api *API) *Tracker {
	return &Tracker{api: api}
}

// Load fetches the request by id and starts tracking it.
func (t *Tracker) Load(ctx context.Context, id string) error {
	got, err := t.api.Get(ctx, id)
	if err != nil {
		return err
	}
	t.current = got
	return nil
}

// Track starts tracking an already fetched record.
func (t *Tracker) Track(r *VerificationRequest) {
	t.current = r
}

// Current returns the tracked record, or nil when nothing is loaded.
func (t *Tracker) Current() *VerificationRequest {
	return t.current
}

// Transition moves the tracked request to the given status. Any of the
// four states may be targeted from any other; reviewers can override
// freely. On failure the previously held record is retained unchanged.
func (t *Tracker) Transition(ctx context.Context, status Status) error {
	if t.current == nil {
		return errors.New("no request loaded")
	}
	updated, err := t.api.UpdateStatus(ctx, t.current.ID, status)
	if err != nil {
		return err
	}
	t.current = updated
	return nil
}
