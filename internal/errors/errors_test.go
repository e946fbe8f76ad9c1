package errors

import (
	"fmt"
	"testing"
)

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		err    *JournalError
		code   ErrorCode
		status int
	}{
		{NewInvalidRequest("bad"), ErrInvalidRequest, 400},
		{NewNotFound("journal", 42), ErrNotFound, 404},
		{NewConflict("clash"), ErrConflict, 409},
		{NewInternal(fmt.Errorf("boom")), ErrInternal, 500},
	}

	for _, tt := range tests {
		if tt.err.Code != tt.code {
			t.Errorf("Code = %s, want %s", tt.err.Code, tt.code)
		}
		if tt.err.Status != tt.status {
			t.Errorf("Status = %d, want %d", tt.err.Status, tt.status)
		}
		if tt.err.Error() == "" {
			t.Error("Error() should not be empty")
		}
	}
}

func TestNotFoundDetails(t *testing.T) {
	err := NewNotFound("journal", 42)
	if err.Details["namespace"] != "journal" {
		t.Errorf("Details[namespace] = %v", err.Details["namespace"])
	}
	if err.Details["id"] != int64(42) {
		t.Errorf("Details[id] = %v", err.Details["id"])
	}
}

func TestIs(t *testing.T) {
	err := NewNotFound("journal", 1)
	if !Is(err, ErrNotFound) {
		t.Error("Is should match the code")
	}
	if Is(err, ErrInternal) {
		t.Error("Is should not match a different code")
	}
	if Is(fmt.Errorf("plain"), ErrNotFound) {
		t.Error("Is should not match a plain error")
	}
	if Is(nil, ErrNotFound) {
		t.Error("Is should not match nil")
	}
}
