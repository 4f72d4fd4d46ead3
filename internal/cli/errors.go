package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Config errors
	ErrConfigInvalid  = "CONFIG_INVALID"
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Date errors
	ErrParseFailed  = "PARSE_FAILED"
	ErrInvalidUnit  = "INVALID_UNIT"
	ErrInvalidDate  = "INVALID_DATE"
	ErrInvalidInput = "INVALID_INPUT"

	// Registry errors
	ErrUnknownDialect = "UNKNOWN_DIALECT"
	ErrUnknownPattern = "UNKNOWN_PATTERN"

	// Scheduling errors
	ErrCommandFailed = "COMMAND_FAILED"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)
