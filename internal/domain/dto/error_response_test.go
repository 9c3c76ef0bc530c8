package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestNewErrorResponse(t *testing.T) {
	cases := []struct {
		name    string
		message string
		err     error
		text    string
		details string
	}{
		{"message only", "ladder data unavailable", nil, "ladder data unavailable", ""},
		{"with cause", "internal error", errors.New("kaboom"), "internal error: kaboom", "kaboom"},
		{"wrapped cause", "export failed", fmt.Errorf("write out.xlsx: %w", errors.New("disk full")), "export failed: write out.xlsx: disk full", "write out.xlsx: disk full"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp := NewErrorResponse(c.message, c.err)
			if resp.Error() != c.text || resp.ErrorDetails != c.details {
				t.Fatalf("got %q / %q, want %q / %q", resp.Error(), resp.ErrorDetails, c.text, c.details)
			}
			if resp.Timestamp.IsZero() || time.Since(resp.Timestamp) > time.Second {
				t.Fatalf("timestamp not set: %v", resp.Timestamp)
			}
		})
	}
}

// Commands return ErrorResponse by value and callers may wrap it further;
// errors.As must still find it.
func TestErrorResponse_ThroughWrapping(t *testing.T) {
	var err error = NewErrorResponse("internal error", errors.New("kaboom"))
	err = fmt.Errorf("command query: %w", err)

	var resp ErrorResponse
	if !errors.As(err, &resp) {
		t.Fatalf("errors.As did not find ErrorResponse in %v", err)
	}
	if resp.Message != "internal error" {
		t.Fatalf("unexpected %+v", resp)
	}
}

func TestErrorResponse_JSON(t *testing.T) {
	data, err := json.Marshal(NewErrorResponse("ladder data unavailable", nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"message":"ladder data unavailable"`) || strings.Contains(s, "error_details") {
		t.Fatalf("unexpected json %s", s)
	}
}
