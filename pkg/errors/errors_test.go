package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("connection refused")
	err := Wrap(CodeNetwork, cause, "fetching cart")

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to survive errors.Is")
	}
	if err.Code() != CodeNetwork {
		t.Fatalf("unexpected code: %s", err.Code())
	}
}

func TestAsThroughWrapping(t *testing.T) {
	inner := New(CodeInsufficientStock, "requested 5, available 2")
	outer := fmt.Errorf("updating quantity: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatal("expected typed error through fmt wrap")
	}
	if typed.Code() != CodeInsufficientStock {
		t.Fatalf("unexpected code: %s", typed.Code())
	}
}

func TestCodeOfPlainError(t *testing.T) {
	if CodeOf(stdErrors.New("oops")) != CodeInternal {
		t.Fatal("plain errors should map to internal")
	}
	if CodeOf(New(CodeInvalidCoupon, "nope")) != CodeInvalidCoupon {
		t.Fatal("typed errors should keep their code")
	}
}

func TestMetadataFallback(t *testing.T) {
	meta := MetadataFor(Code("UNKNOWN"))
	if meta.UserMessage != metadataByCode[CodeInternal].UserMessage {
		t.Fatal("unknown codes should use internal metadata")
	}
	if !MetadataFor(CodeRefreshRejected).RequiresLogin {
		t.Fatal("refresh rejection must require a fresh login")
	}
}

func TestDetails(t *testing.T) {
	err := New(CodeValidation, "validation failed").WithDetails(map[string]string{"email": "must be a valid email"})
	details, ok := err.Details().(map[string]string)
	if !ok || details["email"] == "" {
		t.Fatalf("details not preserved: %v", err.Details())
	}
}
