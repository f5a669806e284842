package services

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/mmadmin/internal/client/mattermost"
)

// rule maps one recognizable remote failure onto a user-facing result.
// Rules are evaluated in order; the first match wins. When match is set it
// takes priority over substr; otherwise substr is looked up
// case-insensitively in the error text.
type rule struct {
	substr  string
	match   func(error) bool
	code    string
	message string
}

// classify translates a remote error into a *Error using the given rule
// table. Unmatched errors surface the remote message verbatim under the
// fallback code; errors with no text at all get the fallback message.
func classify(err error, rules []rule, fallbackCode string, fallbackMessage string) *Error {
	text := err.Error()
	lower := strings.ToLower(text)

	for _, r := range rules {
		if r.match != nil {
			if r.match(err) {
				return &Error{Code: r.code, Message: r.message}
			}
			continue
		}
		if r.substr != "" && strings.Contains(lower, r.substr) {
			return &Error{Code: r.code, Message: r.message}
		}
	}

	if text == "" {
		return &Error{Code: fallbackCode, Message: fallbackMessage}
	}
	return &Error{Code: fallbackCode, Message: text}
}

// isRemoteReply reports whether the server actually answered: either with a
// structured API error or with a non-OK liveness status. Anything else is a
// transport-level failure (DNS, refused connection, timeout).
func isRemoteReply(err error) bool {
	var appErr *mattermost.AppError
	return errors.As(err, &appErr) || errors.Is(err, mattermost.ErrUnavailable)
}

var loginRules = []rule{
	{substr: "invalid_user_password", code: CodeInvalidCredentials, message: "Invalid username or password"},
	{substr: "user_not_found", code: CodeUserNotFound, message: "User not found"},
	{substr: "account_inactive", code: CodeAccountInactive, message: "Account is inactive"},
}

// The ping table is exhaustive: probe failures never surface raw transport
// text to the user. A reply from the server (even an error reply) means the
// URL points somewhere real; everything else is a connectivity problem.
var pingRules = []rule{
	{match: isRemoteReply, code: CodeUnreachable, message: "Server not reachable. Please verify the URL is correct."},
	{match: func(error) bool { return true }, code: CodeNetwork, message: "Unable to connect to server. Please check the URL and try again."},
}

var passwordResetRules = []rule{
	{substr: "permission", code: CodePermissionDenied, message: "Permission denied. You need admin privileges to reset passwords."},
	{substr: "sso", code: CodeSSOUser, message: "Cannot reset password for SSO users"},
	{substr: "not found", code: CodeUserNotFound, message: "User not found"},
}

var updateActiveRules = []rule{
	{substr: "not_found", code: CodeUserNotFound, message: "User not found"},
	{substr: "permission", code: CodePermissionDenied, message: "Permission denied. You need admin privileges to manage users."},
}
