package errors_test

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "user-auth-service/src/error"
)

func TestReasonMessagesAndStatuses(t *testing.T) {
	tests := []struct {
		reason  apperrors.Reason
		message string
		status  int
	}{
		{apperrors.EmptyPassword, "Password cannot be empty", http.StatusBadRequest},
		{apperrors.ExceededMaxPasswordLength(64), "Password must not be more than 64 characters", http.StatusBadRequest},
		{apperrors.InvalidHashFormat, "Invalid password hash format", http.StatusInternalServerError},
		{apperrors.HashingError, "Error while hashing password", http.StatusInternalServerError},
		{apperrors.InvalidToken, "Authentication token is invalid or expired", http.StatusUnauthorized},
		{apperrors.ServerError, "Server Error. Please try again later", http.StatusInternalServerError},
		{apperrors.WrongCredentials, "Email or password is wrong", http.StatusUnauthorized},
		{apperrors.EmailExist, "A user with this email already exists", http.StatusConflict},
		{apperrors.UserNoLongerExist, "User belonging to this token no longer exists", http.StatusUnauthorized},
		{apperrors.TokenNotProvided, "You are not logged in, please provide a token", http.StatusUnauthorized},
		{apperrors.PermissionDenied, "You are not allowed to perform this action", http.StatusForbidden},
		{apperrors.UserNotAuthenticated, "Authentication required. Please log in.", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			first := apperrors.MessageFor(tt.reason)
			second := apperrors.MessageFor(tt.reason)
			if first != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, first)
			}
			if first != second {
				t.Errorf("message not stable: %q vs %q", first, second)
			}
			if got := tt.reason.Status(); got != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, got)
			}

			httpErr := apperrors.FromReason(tt.reason)
			if httpErr.Message != tt.message || httpErr.Status != tt.status {
				t.Errorf("FromReason = %+v", httpErr)
			}
		})
	}
}

func TestEveryParameterlessReasonHasADistinctMessage(t *testing.T) {
	seen := map[string]apperrors.ErrorMessage{}
	for _, m := range apperrors.AllMessages {
		msg := m.Message()
		if prev, ok := seen[msg]; ok {
			t.Errorf("reasons %d and %d share message %q", prev, m, msg)
		}
		seen[msg] = m
	}
	if len(seen) != 11 {
		t.Errorf("expected 11 reasons, got %d", len(seen))
	}
}

func TestExceededMaxPasswordLengthSubstitutesParameter(t *testing.T) {
	for _, n := range []int{8, 64, 128} {
		want := fmt.Sprintf("Password must not be more than %d characters", n)
		if got := apperrors.MessageFor(apperrors.ExceededMaxPasswordLength(n)); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

func TestUnknownReasonFallsBackToServerError(t *testing.T) {
	unknown := apperrors.ErrorMessage(999)
	if unknown.Message() != apperrors.MsgServerError {
		t.Errorf("expected server error message, got %q", unknown.Message())
	}
	if unknown.Status() != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", unknown.Status())
	}
	if apperrors.MessageFor(nil) != apperrors.MsgServerError {
		t.Errorf("nil reason should read as server error")
	}
}

func TestConstructorsPinStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperrors.HttpError
		status int
	}{
		{"server error", apperrors.NewServerError("db down"), http.StatusInternalServerError},
		{"bad request", apperrors.NewBadRequest("name is required"), http.StatusBadRequest},
		{"conflict", apperrors.NewConflict("duplicate"), http.StatusConflict},
		{"unauthorized", apperrors.NewUnauthorized("who are you"), http.StatusUnauthorized},
		{"forbidden", apperrors.NewForbidden("go away"), http.StatusForbidden},
		{"custom", apperrors.New("slow down", http.StatusTooManyRequests), http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := apperrors.ToResponse(tt.err)
			if status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, status)
			}
			if resp.Message != tt.err.Message {
				t.Errorf("message not copied verbatim: %q vs %q", resp.Message, tt.err.Message)
			}
			if resp.Status != "fail" {
				t.Errorf("expected status field fail, got %q", resp.Status)
			}
		})
	}
}

func TestToResponseIsDeterministic(t *testing.T) {
	e := apperrors.NewUnauthorized("token expired")
	s1, r1 := apperrors.ToResponse(e)
	s2, r2 := apperrors.ToResponse(e)
	if s1 != s2 || r1 != r2 {
		t.Errorf("ToResponse differs between calls: (%d,%v) vs (%d,%v)", s1, r1, s2, r2)
	}
	if e.Message != "token expired" || e.Status != http.StatusUnauthorized {
		t.Errorf("ToResponse mutated its input: %+v", e)
	}
}

func TestEnvelopeHasExactlyStatusAndMessage(t *testing.T) {
	errs := []*apperrors.HttpError{
		apperrors.FromReason(apperrors.PermissionDenied),
		apperrors.FromReason(apperrors.ExceededMaxPasswordLength(64)),
		apperrors.NewBadRequest(`quotes " and <html> survive`),
		apperrors.NewServerError(""),
	}

	for _, e := range errs {
		_, resp := apperrors.ToResponse(e)

		var decoded map[string]interface{}
		if err := json.Unmarshal([]byte(resp.String()), &decoded); err != nil {
			t.Fatalf("envelope is not valid JSON: %v", err)
		}
		if len(decoded) != 2 {
			t.Errorf("expected exactly 2 keys, got %v", decoded)
		}
		if decoded["status"] != "fail" {
			t.Errorf("expected status fail, got %v", decoded["status"])
		}
		if decoded["message"] != e.Message {
			t.Errorf("expected message %q, got %v", e.Message, decoded["message"])
		}
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	apperrors.WriteError(w, apperrors.FromReason(apperrors.EmailExist))

	res := w.Result()
	if res.StatusCode != http.StatusConflict {
		t.Errorf("expected 409, got %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}

	var body apperrors.ErrorResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != "fail" || body.Message != apperrors.MsgEmailExist {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestWriteErrorUnwrapsWrappedHttpError(t *testing.T) {
	w := httptest.NewRecorder()
	wrapped := fmt.Errorf("login: %w", apperrors.FromReason(apperrors.WrongCredentials))
	apperrors.WriteError(w, wrapped)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestWriteErrorHidesForeignErrors(t *testing.T) {
	w := httptest.NewRecorder()
	apperrors.WriteError(w, stderrors.New("pq: relation \"users\" does not exist"))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	var body apperrors.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Message != apperrors.MsgServerError {
		t.Errorf("internal detail leaked: %q", body.Message)
	}
}

func TestHttpErrorString(t *testing.T) {
	e := apperrors.NewBadRequest("bad")
	if got := e.Error(); got != "HttpError: message: bad, status: 400" {
		t.Errorf("unexpected Error() %q", got)
	}
}
