package validation

// Error messages
const (
	ErrMsgReadData      = "failed to read"
	ErrMsgParseData     = "invalid JSON"
	ErrMsgUnknownSchema = "unknown schema"
	ErrMsgCompileSchema = "failed to compile schema"
	ErrMsgValidation    = "schema validation failed"
)
