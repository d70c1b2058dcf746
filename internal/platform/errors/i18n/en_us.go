package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnknown               = "UNKNOWN"
	CodeNotationInvalid       = "NOTATION_INVALID"
	CodeConfigOutOfRange      = "CONFIG_OUT_OF_RANGE"
	CodeEvaluationUnsupported = "EVALUATION_UNSUPPORTED"
	CodeComparisonInvalid     = "COMPARISON_INVALID"
	CodeSeedOutOfRange        = "SEED_OUT_OF_RANGE"
)

var enUSMessages = map[Code]string{
	CodeUnknown:               "An unexpected error occurred",
	CodeNotationInvalid:       "Invalid roll format: {{.Notation}} (near offset {{.Offset}})",
	CodeConfigOutOfRange:      "{{.Setting}} must be at least 1, got {{.Value}}",
	CodeEvaluationUnsupported: "This roll cannot be evaluated: {{.Kind}}",
	CodeComparisonInvalid:     "Unknown comparison operator {{.Operator}}",
	CodeSeedOutOfRange:        "Seed {{.Seed}} is out of range",
}
