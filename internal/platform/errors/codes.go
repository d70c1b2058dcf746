// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Notation errors
	CodeNotationInvalid Code = "NOTATION_INVALID"

	// Evaluator configuration errors
	CodeConfigOutOfRange Code = "CONFIG_OUT_OF_RANGE"

	// Evaluation errors
	CodeEvaluationUnsupported Code = "EVALUATION_UNSUPPORTED"
	CodeComparisonInvalid     Code = "COMPARISON_INVALID"

	// Random/seed errors
	CodeSeedOutOfRange Code = "SEED_OUT_OF_RANGE"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - malformed notation, bad configuration
	case CodeNotationInvalid,
		CodeConfigOutOfRange,
		CodeSeedOutOfRange:
		return codes.InvalidArgument

	// Unimplemented - AST shapes the evaluator does not know about
	case CodeEvaluationUnsupported:
		return codes.Unimplemented

	default:
		return codes.Internal
	}
}
