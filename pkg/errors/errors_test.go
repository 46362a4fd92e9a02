package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	cause := errors.New("line 3: bad key")
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"plain", New(ErrCodeInvalidStage, "unknown stage %q", "dig"), `INVALID_STAGE: unknown stage "dig"`},
		{"wrapped", Wrap(ErrCodeInvalidConfig, cause, "decode %s", "dungeon.toml"), "INVALID_CONFIG: decode dungeon.toml: line 3: bad key"},
		{"precondition", Precondition("purge-doors", "build-graph"), "PRECONDITION_FAILED: purge-doors requires build-graph to run first"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := Wrap(ErrCodeInvalidPath, cause, "write map")
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false")
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
}

func TestCodeLookup(t *testing.T) {
	coded := New(ErrCodeInvalidPoint, "missing comma")
	tests := []struct {
		name  string
		err   error
		code  Code
		stage string
		msg   string
	}{
		{"coded", coded, ErrCodeInvalidPoint, "", "missing comma"},
		{"fmt wrapped", fmt.Errorf("--from: %w", coded), ErrCodeInvalidPoint, "", "missing comma"},
		{"outermost wins", Wrap(ErrCodeInvalidConfig, coded, "load"), ErrCodeInvalidConfig, "", "load: missing comma"},
		{"stage", Precondition("flood-fill", "rasterize"), ErrCodePrecondition, "flood-fill", "flood-fill requires rasterize to run first"},
		{"plain", errors.New("boom"), "", "", "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%q) = false", tt.code)
			}
			if got := StageOf(tt.err); got != tt.stage {
				t.Errorf("StageOf() = %q, want %q", got, tt.stage)
			}
			if got := UserMessage(tt.err); got != tt.msg {
				t.Errorf("UserMessage() = %q, want %q", got, tt.msg)
			}
		})
	}
	if Is(nil, ErrCodeInternal) || GetCode(nil) != "" {
		t.Error("nil error reported a code")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{context.Canceled, 130},
		{fmt.Errorf("stepper: %w", context.Canceled), 130},
		{New(ErrCodeInvalidPacing, "bad"), 2},
		{Precondition("rasterize", "generate-rooms"), 1},
		{New(ErrCodeInternal, "oops"), 1},
		{errors.New("plain"), 1},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func ExamplePrecondition() {
	err := Precondition("build-graph", "generate-doors")
	fmt.Println(GetCode(err), StageOf(err))
	fmt.Println(UserMessage(err))
	// Output:
	// PRECONDITION_FAILED build-graph
	// build-graph requires generate-doors to run first
}
