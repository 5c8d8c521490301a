package requests_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"verification-client/internal/api"
	"verification-client/internal/requests"
)

type recordedCall struct {
	Method string
	Path   string
	Query  string
	Body   string
}

func recordingServer(t *testing.T, status int, response string) (*httptest.Server, *[]recordedCall) {
	t.Helper()
	calls := &[]recordedCall{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		*calls = append(*calls, recordedCall{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   string(body),
		})
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, calls
}

func TestListOmitsEmptyFilters(t *testing.T) {
	cases := []struct {
		name   string
		filter requests.ListFilter
		query  string
	}{
		{name: "no filters", filter: requests.ListFilter{}, query: ""},
		{name: "empty status omitted", filter: requests.ListFilter{Status: ""}, query: ""},
		{name: "status only", filter: requests.ListFilter{Status: requests.StatusApproved}, query: "status=approved"},
		{name: "name only", filter: requests.ListFilter{Name: "juan"}, query: "name=juan"},
		{name: "both", filter: requests.ListFilter{Name: "juan", Status: requests.StatusPending}, query: "name=juan&status=pending"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, calls := recordingServer(t, http.StatusOK, `[]`)
			facade := requests.NewAPI(api.NewClient(srv.URL))

			if _, err := facade.List(context.Background(), tc.filter); err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(*calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(*calls))
			}
			call := (*calls)[0]
			if call.Method != http.MethodGet || call.Path != "/requests" {
				t.Fatalf("unexpected call %s %s", call.Method, call.Path)
			}
			if call.Query != tc.query {
				t.Fatalf("expected query %q, got %q", tc.query, call.Query)
			}
		})
	}
}

func TestCreatePostsPayload(t *testing.T) {
	srv, calls := recordingServer(t, http.StatusOK, `{"id":"new-1","status":"pending"}`)
	facade := requests.NewAPI(api.NewClient(srv.URL))

	payload := requests.CreatePayload{
		FullName:                 "Juan Tester",
		Email:                    "juan@example.com",
		Phone:                    "5512345678",
		Country:                  "MX",
		DocumentType:             "INE",
		DocumentNumber:           "ABC123456",
		DocumentImageURL:         "https://example.com/doc.jpg",
		OriginalDocumentFilename: "doc.jpg",
	}
	created, err := facade.Create(context.Background(), payload)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != "new-1" || created.Status != requests.StatusPending {
		t.Fatalf("unexpected created record: %+v", created)
	}

	call := (*calls)[0]
	if call.Method != http.MethodPost || call.Path != "/requests" {
		t.Fatalf("unexpected call %s %s", call.Method, call.Path)
	}
	var sent requests.CreatePayload
	if err := json.Unmarshal([]byte(call.Body), &sent); err != nil {
		t.Fatalf("decode sent body: %v", err)
	}
	if sent != payload {
		t.Fatalf("expected payload %+v, got %+v", payload, sent)
	}
}

func TestUpdateStatusCallContract(t *testing.T) {
	srv, calls := recordingServer(t, http.StatusOK, `{"id":"abc","status":"approved"}`)
	facade := requests.NewAPI(api.NewClient(srv.URL))

	updated, err := facade.UpdateStatus(context.Background(), "abc", requests.StatusApproved)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != requests.StatusApproved {
		t.Fatalf("expected approved, got %s", updated.Status)
	}

	call := (*calls)[0]
	if call.Method != http.MethodPatch {
		t.Fatalf("expected PATCH, got %s", call.Method)
	}
	if call.Path != "/requests/abc/status" {
		t.Fatalf("unexpected path %s", call.Path)
	}
	if call.Body != `{"status":"approved"}` {
		t.Fatalf("unexpected body %s", call.Body)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	srv, calls := recordingServer(t, http.StatusOK, `{}`)
	facade := requests.NewAPI(api.NewClient(srv.URL))

	if _, err := facade.UpdateStatus(context.Background(), "abc", "archived"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
	if len(*calls) != 0 {
		t.Fatalf("expected no network call for unknown status")
	}
}

func TestDeleteAcceptsNoContent(t *testing.T) {
	srv, calls := recordingServer(t, http.StatusNoContent, "")
	facade := requests.NewAPI(api.NewClient(srv.URL))

	if err := facade.Delete(context.Background(), "abc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	call := (*calls)[0]
	if call.Method != http.MethodDelete || call.Path != "/requests/abc" {
		t.Fatalf("unexpected call %s %s", call.Method, call.Path)
	}
}
