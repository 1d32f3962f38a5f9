package errorcode

// Error taxonomy codes returned in response envelopes. INVALID_STATE covers
// the benign concurrent-race outcome of two admins acting on one record.
const (
	SUCCESS          = "SUCCESS"
	INPUT_ERR        = "INPUT_ERR"
	VALIDATION_ERR   = "VALIDATION_ERR"
	RECORD_NOT_FOUND = "RECORD_NOT_FOUND"
	INVALID_STATE    = "INVALID_STATE"
	UNAUTHORIZED     = "UNAUTHORIZED"
	FORBIDDEN        = "FORBIDDEN"
	SERVER_ERR       = "SERVER_ERR"
)

// Client-facing messages. Kept short and free of internals, full context is
// logged server side.
var (
	SUCCESS_MSG          = "Request Processed Successfully"
	INPUT_ERR_MSG        = "Invalid Input Supplied. See documentation"
	VALIDATION_ERR_MSG   = "Validation Failed For Some Fields"
	SERVER_ERR_MSG       = "Request Could Not Be Processed. Server encountered an error"
	UUID_CAST_ERR_MSG    = "Cannot cast Id, ensure to be passing a valid id"
	EMPTY_AUTH_KEY_MSG   = "Authentication token is required"
	INVALID_TOKEN_MSG    = "Authentication token is not valid"
	FORBIDDEN_MSG        = "Access forbidden, appropriate role not granted"
	REASON_REQUIRED_MSG  = "A rejection reason is required"
	RECORD_NOT_FOUND_MSG = "Record not found"
	SERVICE_TOKEN_MSG    = "Access restricted to service accounts"
)
