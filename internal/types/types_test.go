package types

import (
	"errors"
	"testing"
)

func TestAppError(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		err := NewAppError(ErrRender, "render failed", nil)
		if err.Error() != "render failed" {
			t.Errorf("Error() = %q", err.Error())
		}
		if err.Code != ErrRender {
			t.Errorf("Code = %s, want %s", err.Code, ErrRender)
		}
	})

	t.Run("message with details", func(t *testing.T) {
		err := NewAppErrorWithDetails(ErrConfig, "bad config", "missing field", nil)
		if err.Error() != "bad config: missing field" {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("unwraps its cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := NewAppError(ErrNetwork, "request failed", cause)
		if !errors.Is(err, cause) {
			t.Error("errors.Is does not reach the cause")
		}

		var appErr *AppError
		if !errors.As(err, &appErr) {
			t.Fatal("errors.As failed for *AppError")
		}
		if appErr.Code != ErrNetwork {
			t.Errorf("Code = %s, want %s", appErr.Code, ErrNetwork)
		}
	})
}

func TestIsValidPhase(t *testing.T) {
	valid := []ProcessPhase{
		PhaseIdle, PhaseExtracting, PhaseFunnifying,
		PhaseRewriting, PhaseRendering, PhaseComplete, PhaseError,
	}
	for _, p := range valid {
		if !IsValidPhase(p) {
			t.Errorf("IsValidPhase(%s) = false, want true", p)
		}
	}
	if IsValidPhase(ProcessPhase("warp-speed")) {
		t.Error("unknown phase reported valid")
	}
}
