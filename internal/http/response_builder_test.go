package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/planner"
)

func TestJSONResponseBuilder_Basic(t *testing.T) {
	w := httptest.NewRecorder()

	NewJSONResponse().
		Status(http.StatusCreated).
		Body(map[string]int{"n": 1}).
		Write(w)

	if w.Code != http.StatusCreated {
		t.Errorf("Status code = %d, want %d", w.Code, http.StatusCreated)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if strings.TrimSpace(w.Body.String()) != `{"n":1}` {
		t.Errorf("Body = %q", w.Body.String())
	}
}

func TestJSONResponseBuilder_RawAndHeader(t *testing.T) {
	w := httptest.NewRecorder()

	NewJSONResponse().
		Header("Content-Disposition", `attachment; filename="x.xlsx"`).
		Raw("application/octet-stream", []byte("PK")).
		Write(w)

	if w.Header().Get("Content-Type") != "application/octet-stream" {
		t.Errorf("Content-Type = %q", w.Header().Get("Content-Type"))
	}
	if w.Header().Get("Content-Disposition") == "" {
		t.Error("Content-Disposition not set")
	}
	if w.Body.String() != "PK" {
		t.Errorf("Body = %q", w.Body.String())
	}
}

func TestJSONResponseBuilder_EncodeFailure(t *testing.T) {
	w := httptest.NewRecorder()

	NewJSONResponse().Body(map[string]any{"f": func() {}}).Write(w)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Status code = %d, want 500", w.Code)
	}
}

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name       string
		builder    *JSONResponseBuilder
		wantStatus int
		wantError  string
	}{
		{"bad request", BadRequestError("Invalid input"), http.StatusBadRequest, "Invalid input"},
		{"unprocessable entity", UnprocessableEntityError("Validation failed"), http.StatusUnprocessableEntity, "Validation failed"},
		{"internal server error", InternalServerError("Something broke"), http.StatusInternalServerError, "Something broke"},
		{"not found", NotFoundError("Resource not found"), http.StatusNotFound, "Resource not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.builder.Write(w)

			if w.Code != tt.wantStatus {
				t.Errorf("Status code = %d, want %d", w.Code, tt.wantStatus)
			}
			var body ErrorBody
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error != tt.wantError {
				t.Errorf("error = %q, want %q", body.Error, tt.wantError)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{core.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("budget b1: %w", core.ErrNotFound), http.StatusNotFound},
		{core.ErrInvalidAmount, http.StatusUnprocessableEntity},
		{core.ErrNegativeAmount, http.StatusUnprocessableEntity},
		{fmt.Errorf("120%%: %w", planner.ErrOverAllocated), http.StatusUnprocessableEntity},
		{core.ErrMissingAmount, http.StatusBadRequest},
		{core.ErrMissingOwner, http.StatusBadRequest},
		{core.ErrEmptyName, http.StatusBadRequest},
		{core.ErrInvalidFrequency, http.StatusBadRequest},
		{errBadBody, http.StatusBadRequest},
		{errors.New("disk I/O error"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestFromErrorHidesInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/budgets", nil)

	FromError(r, errors.New("database is locked")).Write(w)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Status code = %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "locked") {
		t.Errorf("internal detail leaked: %s", w.Body.String())
	}
}
