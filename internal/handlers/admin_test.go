package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"folio/internal/render"
	"folio/internal/store"
)

func newDegradedAdmin(t *testing.T) *Admin {
	t.Helper()

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	return NewAdmin(
		renderer,
		store.NewPostStore(nil),
		store.NewProjectStore(nil),
		store.NewExperienceStore(nil),
		store.NewMediaStore(nil),
		nil, // no object storage
	)
}

func withID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestDashboardRendersWithoutBackend(t *testing.T) {
	a := newDegradedAdmin(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	rr := httptest.NewRecorder()
	a.Dashboard(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "<strong>0</strong> posts") {
		t.Error("dashboard does not show zero counts")
	}
}

func TestPostCreateValidationError(t *testing.T) {
	a := newDegradedAdmin(t)

	// Missing title: the form re-renders with an inline message, no redirect.
	req := postForm("/admin/posts", url.Values{
		"slug":         {"a-post"},
		"content":      {"body"},
		"published_at": {"2026-03-01"},
	})
	rr := httptest.NewRecorder()
	a.PostCreate(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Title is required.") {
		t.Error("validation message not shown")
	}
}

func TestPostCreateStoreUnavailableSurfaced(t *testing.T) {
	a := newDegradedAdmin(t)

	// Valid form, no store: the mutation error must be shown, not
	// swallowed into a silent redirect.
	req := postForm("/admin/posts", url.Values{
		"title":        {"A Post"},
		"slug":         {"a-post"},
		"content":      {"body"},
		"published_at": {"2026-03-01"},
	})
	rr := httptest.NewRecorder()
	a.PostCreate(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (form re-render)", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Saving failed") {
		t.Error("store failure not surfaced on the form")
	}
}

func TestPostEditUnknownID(t *testing.T) {
	a := newDegradedAdmin(t)

	req := withID(httptest.NewRequest(http.MethodGet, "/admin/posts/x/edit", nil), uuid.NewString())
	rr := httptest.NewRecorder()
	a.PostEdit(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestPostDeleteRedirectsDespiteFailure(t *testing.T) {
	a := newDegradedAdmin(t)

	req := withID(postForm("/admin/posts/x/delete", url.Values{}), uuid.NewString())
	rr := httptest.NewRecorder()
	a.PostDelete(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rr.Code)
	}
}

func TestExperienceCreateCurrentWithEndDateRejected(t *testing.T) {
	a := newDegradedAdmin(t)

	req := postForm("/admin/experience", url.Values{
		"company_name":  {"Acme"},
		"position":      {"Engineer"},
		"start_date":    {"2024-01-01"},
		"end_date":      {"2025-01-01"},
		"is_current":    {"on"},
		"display_order": {"1"},
	})
	rr := httptest.NewRecorder()
	a.ExperienceCreate(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "cannot have an end date") {
		t.Error("coupling violation not reported")
	}
}

func TestExperienceFormOptionalFields(t *testing.T) {
	req := postForm("/admin/experience", url.Values{
		"company_name":  {"Acme"},
		"company_url":   {"https://acme.example.com"},
		"position":      {"Engineer"},
		"location":      {"  "},
		"start_date":    {"2024-01-01"},
		"display_order": {"1"},
	})
	entry, errMsg := experienceFromForm(req)
	if errMsg != "" {
		t.Fatalf("errMsg = %q", errMsg)
	}
	if entry.CompanyURL == nil || *entry.CompanyURL != "https://acme.example.com" {
		t.Error("company URL not carried through")
	}
	if entry.Location != nil {
		t.Errorf("blank location = %q, want nil", *entry.Location)
	}
}

func TestExperienceCreateBadDisplayOrder(t *testing.T) {
	a := newDegradedAdmin(t)

	req := postForm("/admin/experience", url.Values{
		"company_name":  {"Acme"},
		"position":      {"Engineer"},
		"start_date":    {"2024-01-01"},
		"display_order": {"not-a-number"},
	})
	rr := httptest.NewRecorder()
	a.ExperienceCreate(rr, req)

	if !strings.Contains(rr.Body.String(), "Display order") {
		t.Error("display order validation not reported")
	}
}

func TestMediaUploadWithoutStorage(t *testing.T) {
	a := newDegradedAdmin(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/media/upload", nil)
	rr := httptest.NewRecorder()
	a.MediaUpload(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rr.Code)
	}
}

func TestMediaListWithoutStorage(t *testing.T) {
	a := newDegradedAdmin(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/media", nil)
	rr := httptest.NewRecorder()
	a.MediaList(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Uploads are disabled") {
		t.Error("disabled-storage notice not shown")
	}
}
