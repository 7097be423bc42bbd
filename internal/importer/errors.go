package importer

import "fmt"

// ConversionFailureCode names the category of import/export failure.
type ConversionFailureCode string

const (
	FailureIndexFileMissing   ConversionFailureCode = "INDEX_FILE_MISSING"
	FailureFieldCountMismatch ConversionFailureCode = "FIELD_COUNT_MISMATCH"
	FailureMalformedLine      ConversionFailureCode = "MALFORMED_LINE"
	FailureIllegalEndState    ConversionFailureCode = "ILLEGAL_END_STATE"
)

// ConversionFailure reports a malformed input file during import or export.
// Grounded on the source format's own ConversionFailure exception: a
// recoverable, caller-visible error naming the offending line or file.
type ConversionFailure struct {
	Code    ConversionFailureCode
	Message string
}

func (e *ConversionFailure) Error() string {
	return string(e.Code) + ": " + e.Message
}

// NewConversionFailure builds a *ConversionFailure with a formatted message.
func NewConversionFailure(code ConversionFailureCode, format string, args ...any) *ConversionFailure {
	return &ConversionFailure{Code: code, Message: fmt.Sprintf(format, args...)}
}
