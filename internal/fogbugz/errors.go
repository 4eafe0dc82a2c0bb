package fogbugz

import "fmt"

// Code identifies a structured error returned by the remote service.
// The service reports these as numeric strings in the error element's
// code attribute; they are matched here by name, never by position in
// the payload.
type Code string

const (
	// CodeBadCredentials — logon rejected the email/password pair.
	CodeBadCredentials Code = "1"
	// CodeAmbiguousLogon — the email matched more than one account.
	CodeAmbiguousLogon Code = "2"
	// CodeNotLoggedOn — the session token is missing or expired. The
	// client re-authenticates once and retries when it sees this.
	CodeNotLoggedOn Code = "3"
	// CodeMissingArgument — a required command parameter was absent.
	CodeMissingArgument Code = "4"
)

// APIError is a structured error payload returned by the remote
// service for a specific command.
type APIError struct {
	Cmd     string
	Code    Code
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fogbugz %s: remote error %s: %s", e.Cmd, e.Code, e.Message)
}

// AuthError indicates logon failed outright or the single
// re-authentication retry was exhausted. Fatal to the run.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fogbugz auth: %s: %v", e.Message, e.Err)
	}
	return "fogbugz auth: " + e.Message
}

func (e *AuthError) Unwrap() error { return e.Err }

// TransportError covers non-success HTTP statuses and undecodable
// responses. It carries the command so the operator knows which call
// failed; there is no retry.
type TransportError struct {
	Cmd     string
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fogbugz %s: %s: %v", e.Cmd, e.Message, e.Err)
	}
	return fmt.Sprintf("fogbugz %s: %s", e.Cmd, e.Message)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedRecordError reports a remote record missing a required
// field. The raw XML fragment is preserved for operator diagnosis.
// Aggregation aborts rather than skip the record, so hours are never
// silently undercounted.
type MalformedRecordError struct {
	Kind string
	Raw  string
	Err  error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed %s record: %v (raw: %s)", e.Kind, e.Err, e.Raw)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }
