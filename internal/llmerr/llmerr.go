// Package llmerr turns failures from the media encoder and the model transport into a closed set
// of user-facing error kinds.
package llmerr

import "net/http"

// Kind is a user-actionable failure category.
type Kind int

const (
	Unknown Kind = iota
	MissingCredential
	NetworkFailure
	QuotaExceeded
	InvalidRequest
	ProviderUnavailable
)

func (k Kind) String() string {
	switch k {
	case MissingCredential:
		return "MissingCredential"
	case NetworkFailure:
		return "NetworkFailure"
	case QuotaExceeded:
		return "QuotaExceeded"
	case InvalidRequest:
		return "InvalidRequest"
	case ProviderUnavailable:
		return "ProviderUnavailable"
	default:
		return "Unknown"
	}
}

// HTTPStatus is the status the gateway answers with for this kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case NetworkFailure, InvalidRequest:
		return http.StatusBadGateway
	case QuotaExceeded:
		return http.StatusTooManyRequests
	case ProviderUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

var remediation = map[Kind]string{
	MissingCredential:   "The API key is not configured. Set API_KEY and try again.",
	NetworkFailure:      "Could not reach the model provider. Check the network connection or the API_BASE_URL proxy setting.",
	QuotaExceeded:       "The provider's rate limit or quota was reached. Wait a minute and retry, or switch to a lighter model.",
	InvalidRequest:      "The provider rejected the request. Verify that the API key is valid and the request is well formed.",
	ProviderUnavailable: "The model provider is temporarily unavailable. Please retry later.",
}

// Error is a classified failure. It is terminal: nothing in this module retries it.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// New builds an Error of kind with its fixed remediation message. Unknown errors show the raw
// cause instead.
func New(kind Kind, cause error) *Error {
	msg, ok := remediation[kind]
	if !ok {
		msg = "Unexpected error"
		if cause != nil {
			msg += ": " + cause.Error()
		}
	}
	return &Error{Kind: kind, Message: msg, Cause: cause}
}
