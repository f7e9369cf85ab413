package dexshare

import "strings"

// Reason strings carried by the typed errors below. Callers that need finer
// granularity than the error type can compare against these.
const (
	ReasonMinutesInvalid   = "minutes must be between 1 and 1440"
	ReasonMaxCountInvalid  = "max count must be between 1 and 288"
	ReasonUsernameInvalid  = "username must be a non-empty string"
	ReasonPasswordInvalid  = "password must be a non-empty string"
	ReasonAccountIDInvalid = "account ID must be a UUID"
	ReasonAccountIDDefault = "account ID is the default all-zero UUID"
	ReasonSessionIDInvalid = "session ID must be a UUID"
	ReasonSessionIDDefault = "session ID is the default all-zero UUID"
	ReasonNoUserID         = "one of username or account ID is required"
	ReasonTooManyUserIDs   = "only one of username or account ID may be set"
	ReasonSerialInvalid    = "serial number must be a non-empty string"
	ReasonReadingInvalid   = "glucose reading record incorrectly formatted"
	ReasonTrendInvalid     = "trend direction outside the known set"

	ReasonAuthenticateFailed = "failed to authenticate, check credentials"
	ReasonMaxAttempts        = "maximum authentication attempts exceeded"
	ReasonNoFollowers        = "share monitoring session not active, no followers configured"

	ReasonSessionNotFound = "session ID not found"
	ReasonSessionInvalid  = "session not valid"
)

// ArgumentError reports input rejected before or while talking to the Share
// API: out-of-range windows, malformed credentials, unparseable records.
type ArgumentError struct {
	Reason string
	Detail string
}

func (e *ArgumentError) Error() string {
	if e.Detail == "" {
		return "argument error: " + e.Reason
	}
	return "argument error: " + e.Reason + ": " + e.Detail
}

// AccountError reports a credential or account-state problem. Not retryable.
type AccountError struct {
	Reason string
}

func (e *AccountError) Error() string {
	return "account error: " + e.Reason
}

// SessionError reports an expired or otherwise rejected session ID. The
// client re-authenticates once and retries when it sees one of these.
type SessionError struct {
	Reason string
}

func (e *SessionError) Error() string {
	return "session error: " + e.Reason
}

// ServerError carries a vendor error code the taxonomy does not recognize,
// verbatim.
type ServerError struct {
	Code    string
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return "server error: " + e.Code
	}
	return "server error: " + e.Code + ": " + e.Message
}

func newArgumentError(reason, detail string) *ArgumentError {
	return &ArgumentError{Reason: reason, Detail: detail}
}

// vendorErrors maps Share API error codes to taxonomy errors. The vendor
// never documented these codes and has changed them before, so the mapping is
// kept as data rather than branching logic; unknown codes fall through to a
// ServerError. Codes that multiplex several failures get refined by message
// substring, matching observed server behavior.
var vendorErrors = map[string]func(message string) error{
	"SessionIdNotFound": func(string) error {
		return &SessionError{Reason: ReasonSessionNotFound}
	},
	"SessionNotValid": func(string) error {
		return &SessionError{Reason: ReasonSessionInvalid}
	},
	"AccountPasswordInvalid": func(string) error {
		return &AccountError{Reason: ReasonAuthenticateFailed}
	},
	"SSO_AuthenticateMaxAttemptsExceeded": func(string) error {
		return &AccountError{Reason: ReasonMaxAttempts}
	},
	"SSO_InternalError": func(message string) error {
		if strings.Contains(message, "Cannot Authenticate by AccountName") ||
			strings.Contains(message, "Cannot Authenticate by AccountId") {
			return &AccountError{Reason: ReasonAuthenticateFailed}
		}
		return nil
	},
	"MonitoringSessionNotActive": func(string) error {
		return &AccountError{Reason: ReasonNoFollowers}
	},
	"MonitoredReceiverNotAssigned": func(string) error {
		return &AccountError{Reason: ReasonNoFollowers}
	},
	"InvalidArgument": func(message string) error {
		switch {
		case strings.Contains(message, "accountName"):
			return newArgumentError(ReasonUsernameInvalid, "")
		case strings.Contains(message, "password"):
			return newArgumentError(ReasonPasswordInvalid, "")
		case strings.Contains(message, "UUID"):
			return newArgumentError(ReasonAccountIDInvalid, "")
		}
		return nil
	},
}

// mapVendorError converts a vendor error payload to a taxonomy error, or nil
// when the code is unset or means nothing to us.
func mapVendorError(code, message string) error {
	if code == "" {
		return nil
	}
	if build, ok := vendorErrors[code]; ok {
		if err := build(message); err != nil {
			return err
		}
	}
	return &ServerError{Code: code, Message: message}
}
