package testutil

import (
	"errors"
	"fmt"
	"testing"
)

// Failure paths need a fake *testing.T, so only success cases and
// formatMessage are exercised here.

func TestAssertEqual_Success(t *testing.T) {
	AssertEqual(t, "hello", "hello")
	AssertEqual(t, []int{1, 2, 3}, []int{1, 2, 3})
	AssertEqual(t, map[string]string{"Event": "?"}, map[string]string{"Event": "?"}, "tags")
}

func TestAssertNoError_Success(t *testing.T) {
	AssertNoError(t, nil)
	AssertNoError(t, nil, "commit %d", 3)
}

func TestAssertErrorIs_Success(t *testing.T) {
	sentinel := errors.New("sentinel")
	AssertErrorIs(t, fmt.Errorf("wrapped: %w", sentinel), sentinel)
}

func TestAssertContains_Success(t *testing.T) {
	AssertContains(t, "1. e4 e5 1-0", "1-0")
	AssertNotContains(t, "1. e4 e5 1-0", "Nf3")
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"no args", nil, ""},
		{"plain string", []interface{}{"hello"}, "hello"},
		{"format string", []interface{}{"ply %d of %s", 3, "game"}, "ply 3 of game"},
		{"non-string", []interface{}{42}, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMessage(tt.args...); got != tt.want {
				t.Errorf("formatMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
