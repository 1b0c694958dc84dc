package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/stembot/stembot-backend/internal/services"
)

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondServiceError(c, err)

	var envelope ErrorEnvelope
	if uErr := json.Unmarshal(w.Body.Bytes(), &envelope); uErr != nil {
		t.Fatalf("decode envelope: %v (body=%s)", uErr, w.Body.String())
	}
	return w, envelope
}

func TestRespondServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", services.ValidationError("bad input"), http.StatusBadRequest, "invalid_request"},
		{"not found", services.NotFoundError("missing"), http.StatusNotFound, "not_found"},
		{"conflict", services.ConflictError("duplicate"), http.StatusConflict, "conflict"},
		{"unauthorized", services.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"forbidden", services.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, envelope := respond(t, tt.err)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if envelope.Error.Code != tt.wantCode {
				t.Fatalf("code = %q, want %q", envelope.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestRespondServiceErrorQuota(t *testing.T) {
	err := &services.QuotaError{
		Code:    services.CodeUsageLimitExceeded,
		Message: "monthly AI limit reached",
	}
	w, envelope := respond(t, err)
	if w.Code != http.StatusPaymentRequired {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusPaymentRequired)
	}
	if envelope.Error.Code != services.CodeUsageLimitExceeded {
		t.Fatalf("code = %q, want %q", envelope.Error.Code, services.CodeUsageLimitExceeded)
	}
	if envelope.Error.Message != "monthly AI limit reached" {
		t.Fatalf("message = %q", envelope.Error.Message)
	}
}
