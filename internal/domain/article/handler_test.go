package article

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/panacare/panacare-api/internal/platform/auth"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc := newTestService()
	h := NewHandler(svc)
	e := echo.New()
	return h, e
}

func TestHandler_Create(t *testing.T) {
	h, e := newTestHandler()
	body := `{"author_id":"` + uuid.New().String() + `","title":"Sleep Hygiene Basics","body":"Keep a consistent schedule."}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestHandler_Get_BySlug(t *testing.T) {
	h, e := newTestHandler()
	a := validArticle()
	if err := h.svc.Create(nil, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(a.Slug)

	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_List_PatientSeesPublishedOnly(t *testing.T) {
	h, e := newTestHandler()
	draft := validArticle()
	if err := h.svc.Create(nil, draft); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	published := validArticle()
	published.Title = "Hydration and Heat"
	if err := h.svc.Create(nil, published); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := h.svc.Publish(nil, published.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), auth.UserRolesKey, []string{"patient"}))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(rec.Body.String(), draft.Title) {
		t.Errorf("draft leaked to patient caller: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), published.Title) {
		t.Errorf("published article missing: %s", rec.Body.String())
	}
}

func TestHandler_List_DoctorSeesDrafts(t *testing.T) {
	h, e := newTestHandler()
	draft := validArticle()
	if err := h.svc.Create(nil, draft); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), auth.UserRolesKey, []string{"doctor"}))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), draft.Title) {
		t.Errorf("doctor should see drafts: %s", rec.Body.String())
	}
}

func TestHandler_Publish(t *testing.T) {
	h, e := newTestHandler()
	a := validArticle()
	if err := h.svc.Create(nil, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(a.ID.String())

	if err := h.Publish(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
