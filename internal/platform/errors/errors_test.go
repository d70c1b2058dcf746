package errors

import (
	"errors"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := WithMetadata(CodeNotationInvalid, "parse 3d", map[string]string{"Notation": "3d"})
	if !errors.Is(err, New(CodeNotationInvalid, "other message")) {
		t.Fatal("expected errors.Is to match on code")
	}
	if errors.Is(err, New(CodeConfigOutOfRange, "parse 3d")) {
		t.Fatal("expected errors.Is to reject a different code")
	}
}

func TestWrapUnwrapsCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(CodeEvaluationUnsupported, "evaluate", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable")
	}
	if err.Error() != "evaluate" {
		t.Fatalf("Error() = %q, want %q", err.Error(), "evaluate")
	}
}

func TestGetCodeAndMetadata(t *testing.T) {
	meta := map[string]string{"Setting": "MaxExplosions", "Value": "0"}
	err := WrapWithMetadata(CodeConfigOutOfRange, "bad config", meta, errors.New("cause"))
	wrapped := errors.Join(errors.New("context"), err)

	if got := GetCode(wrapped); got != CodeConfigOutOfRange {
		t.Fatalf("GetCode = %q, want %q", got, CodeConfigOutOfRange)
	}
	if !IsCode(wrapped, CodeConfigOutOfRange) {
		t.Fatal("expected IsCode to match")
	}
	if got := GetMetadata(wrapped)["Setting"]; got != "MaxExplosions" {
		t.Fatalf("metadata Setting = %q, want MaxExplosions", got)
	}
	if got := GetCode(errors.New("plain")); got != CodeUnknown {
		t.Fatalf("GetCode(plain) = %q, want %q", got, CodeUnknown)
	}
	if GetMetadata(errors.New("plain")) != nil {
		t.Fatal("expected nil metadata for plain error")
	}
}

func TestGRPCCodeMapping(t *testing.T) {
	tests := []struct {
		code Code
		want codes.Code
	}{
		{CodeNotationInvalid, codes.InvalidArgument},
		{CodeConfigOutOfRange, codes.InvalidArgument},
		{CodeSeedOutOfRange, codes.InvalidArgument},
		{CodeEvaluationUnsupported, codes.Unimplemented},
		{CodeComparisonInvalid, codes.Internal},
		{CodeUnknown, codes.Internal},
	}
	for _, tt := range tests {
		if got := tt.code.GRPCCode(); got != tt.want {
			t.Fatalf("%s.GRPCCode() = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestLocalizedMessage(t *testing.T) {
	err := WithMetadata(CodeNotationInvalid, "parse", map[string]string{
		"Notation": "d0",
		"Offset":   "1",
	})
	if got, want := LocalizedMessage(err, ""), "Invalid roll format: d0 (near offset 1)"; got != want {
		t.Fatalf("LocalizedMessage = %q, want %q", got, want)
	}
	if got, want := LocalizedMessage(errors.New("plain"), "en-US"), "An unexpected error occurred"; got != want {
		t.Fatalf("LocalizedMessage(plain) = %q, want %q", got, want)
	}
	if got := LocalizedMessage(nil, "en-US"); got != "" {
		t.Fatalf("LocalizedMessage(nil) = %q, want empty", got)
	}
}

func TestHandleErrorAttachesDetails(t *testing.T) {
	err := WithMetadata(CodeConfigOutOfRange, "max explosions", map[string]string{
		"Setting": "MaxExplosions",
		"Value":   "0",
	})
	st, ok := status.FromError(HandleError(err, ""))
	if !ok {
		t.Fatal("expected gRPC status")
	}
	if st.Code() != codes.InvalidArgument {
		t.Fatalf("status code = %v, want %v", st.Code(), codes.InvalidArgument)
	}

	var info *errdetails.ErrorInfo
	var localized *errdetails.LocalizedMessage
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			info = d
		case *errdetails.LocalizedMessage:
			localized = d
		}
	}
	if info == nil || info.Reason != string(CodeConfigOutOfRange) || info.Domain != Domain {
		t.Fatalf("unexpected error info: %+v", info)
	}
	if localized == nil || localized.Message != "MaxExplosions must be at least 1, got 0" {
		t.Fatalf("unexpected localized message: %+v", localized)
	}
}

func TestHandleErrorUnknown(t *testing.T) {
	if HandleError(nil, "") != nil {
		t.Fatal("expected nil for nil error")
	}
	st, _ := status.FromError(HandleError(errors.New("plain"), "en-US"))
	if st.Code() != codes.Internal {
		t.Fatalf("status code = %v, want %v", st.Code(), codes.Internal)
	}
}
