package errors

import (
	"net/http"
	"testing"

	"pgregory.net/rapid"
)

// ============================================
// Property Tests for the Error Taxonomy
// ============================================

// TestProperty_ErrorResponse_PreservesMessage tests that the wire body always
// carries the error's human-readable message
func TestProperty_ErrorResponse_PreservesMessage(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		msg := rapid.StringN(1, 200, -1).Draw(rt, "msg")
		requestID := rapid.String().Draw(rt, "requestID")

		apiErr := NewValidationError(msg)
		resp := NewErrorResponse(apiErr, requestID)

		if resp.Message != msg {
			t.Fatalf("PROPERTY VIOLATION: response message %q != error message %q", resp.Message, msg)
		}
		if resp.Code != apiErr.Code {
			t.Fatalf("PROPERTY VIOLATION: response code %s != error code %s", resp.Code, apiErr.Code)
		}
		if resp.RequestID != requestID {
			t.Fatalf("PROPERTY VIOLATION: response request id %q != %q", resp.RequestID, requestID)
		}
	})
}

func TestConstructors_HTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  *APIError
		want int
	}{
		{"validation", NewValidationError("bad input"), http.StatusBadRequest},
		{"invalid request", NewInvalidRequestError("bad request"), http.StatusBadRequest},
		{"forbidden", NewForbiddenError("not yours"), http.StatusForbidden},
		{"not found", NewNotFoundError(ErrWorkerNotFound, "gone"), http.StatusNotFound},
		{"conflict", NewConflictError(ErrAlreadyConnected, "dup"), http.StatusConflict},
		{"internal", ErrInternalServerError, http.StatusInternalServerError},
		{"invalid credentials", ErrInvalidCredentialsError, http.StatusUnauthorized},
		{"session expired", ErrSessionExpiredError, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.HTTPStatus != tc.want {
				t.Errorf("HTTP status = %d, want %d", tc.err.HTTPStatus, tc.want)
			}
			if tc.err.Error() != tc.err.Message {
				t.Errorf("Error() = %q, want the message %q", tc.err.Error(), tc.err.Message)
			}
		})
	}
}
