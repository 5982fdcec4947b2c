package logging

import (
	"context"
	"testing"
)

func TestWithCommand(t *testing.T) {
	ctx := WithCommand(context.Background(), "add")

	if got := GetCommand(ctx); got != "add" {
		t.Errorf("GetCommand() = %q, want %q", got, "add")
	}
}

func TestWithTaskID(t *testing.T) {
	ctx := WithTaskID(context.Background(), "0192f3a4")

	if got := GetTaskID(ctx); got != "0192f3a4" {
		t.Errorf("GetTaskID() = %q, want %q", got, "0192f3a4")
	}
}

func TestGetters_NotPresent(t *testing.T) {
	ctx := context.Background()

	if got := GetCommand(ctx); got != "" {
		t.Errorf("GetCommand() = %q, want empty string", got)
	}
	if got := GetTaskID(ctx); got != "" {
		t.Errorf("GetTaskID() = %q, want empty string", got)
	}
}
