package services

// Error is the user-facing failure returned by every Session operation.
// Message is safe to render directly; Code is a stable identifier for
// programmatic handling and tests. Raw transport or storage errors never
// cross the session boundary unwrapped.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Error codes.
const (
	CodeNetwork            = "network_error"
	CodeUnreachable        = "server_unreachable"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUserNotFound       = "user_not_found"
	CodeAccountInactive    = "account_inactive"
	CodeAccessDenied       = "access_denied"
	CodeStorage            = "storage_error"
	CodePermissionDenied   = "permission_denied"
	CodeSSOUser            = "sso_user"
	CodeRemote             = "remote_error"
)
