package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"unauthenticated", Unauthenticated(), KindUnauthenticated},
		{"not found", NotFound("notebook"), KindNotFound},
		{"validation", Validation("title"), KindValidation},
		{"store unavailable", StoreUnavailable(errors.New("down")), KindStoreUnavailable},
		{"wrapped taxonomy error", fmt.Errorf("handler: %w", NotFound("entry")), KindNotFound},
		{"foreign error defaults to store unavailable", errors.New("boom"), KindStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(StoreUnavailable(errors.New("down"))) {
		t.Error("store errors must be retryable")
	}
	for _, err := range []error{Unauthenticated(), NotFound("x"), Validation("x")} {
		if IsRetryable(err) {
			t.Errorf("%v must not be retryable", err)
		}
	}
}

func TestSafeMessage(t *testing.T) {
	// Internal detail never reaches the caller.
	err := StoreUnavailable(errors.New("dial tcp 10.0.0.1:5432: connection refused"))
	if got := err.SafeMessage(); got != "service temporarily unavailable" {
		t.Errorf("SafeMessage() = %q", got)
	}

	if got := NotFound("notebook").SafeMessage(); got != "notebook not found" {
		t.Errorf("SafeMessage() = %q", got)
	}
}

func TestValidationCarriesField(t *testing.T) {
	err := Validation("email")
	if err.Field != "email" {
		t.Errorf("Field = %q, want %q", err.Field, "email")
	}
}
