package service

import "fmt"

type ImportErrorCode string

const (
	ImportErrReadFile   ImportErrorCode = "READ_FILE"
	ImportErrConversion ImportErrorCode = "CONVERSION"
	ImportErrScheduling ImportErrorCode = "SCHEDULING"
	ImportErrPersist    ImportErrorCode = "PERSIST"
)

type ImportError struct {
	Code    ImportErrorCode
	Message string
}

func (e *ImportError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func newImportError(code ImportErrorCode, format string, args ...any) *ImportError {
	return &ImportError{Code: code, Message: fmt.Sprintf(format, args...)}
}

type ExportErrorCode string

const (
	ExportErrWriteFile ExportErrorCode = "WRITE_FILE"
	ExportErrRewrite   ExportErrorCode = "REWRITE"
	ExportErrLoad      ExportErrorCode = "LOAD"
)

type ExportError struct {
	Code    ExportErrorCode
	Message string
}

func (e *ExportError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func newExportError(code ExportErrorCode, format string, args ...any) *ExportError {
	return &ExportError{Code: code, Message: fmt.Sprintf(format, args...)}
}
