package llmerr

import (
	"errors"
	"net"
	"strings"

	"bible-hub/internal/llm"
)

// observation is the normalized view of a failure the rules match against.
type observation struct {
	err    error
	status int
	text   string
}

type rule struct {
	kind  Kind
	match func(o observation) bool
}

// rules are evaluated in order; the first match wins.
var rules = []rule{
	{MissingCredential, func(o observation) bool {
		return errors.Is(o.err, llm.ErrMissingCredential) ||
			containsAny(o.text, "api key is missing", "missing api key", "api_key is missing")
	}},
	{NetworkFailure, func(o observation) bool {
		var netErr net.Error
		return errors.As(o.err, &netErr) ||
			containsAny(o.text, "failed to fetch", "fetch failed", "networkerror", "network error",
				"connection refused", "connection reset", "no such host", "dial tcp", "econnrefused",
				"tls handshake")
	}},
	{QuotaExceeded, func(o observation) bool {
		return o.status == 429 ||
			hasCode(o.text, "429") ||
			containsAny(o.text, "quota", "resource_exhausted", "rate limit", "rate_limit", "too many requests")
	}},
	{InvalidRequest, func(o observation) bool {
		switch o.status {
		case 400, 401, 403, 404:
			return true
		}
		return hasCode(o.text, "400") || hasCode(o.text, "401") || hasCode(o.text, "403") ||
			containsAny(o.text, "invalid_argument", "api key not valid", "api_key_invalid", "invalid api key",
				"permission_denied", "unauthenticated")
	}},
	{ProviderUnavailable, func(o observation) bool {
		return o.status >= 500 ||
			hasCode(o.text, "500") || hasCode(o.text, "502") || hasCode(o.text, "503") || hasCode(o.text, "504") ||
			containsAny(o.text, "unavailable", "overloaded", "internal error", "bad gateway")
	}},
}

// Classify maps any failure to exactly one Error. Errors that are already classified pass through.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}
	o := observation{err: err, text: strings.ToLower(err.Error())}
	var pe *llm.ProviderError
	if errors.As(err, &pe) {
		o.status = pe.StatusCode
	}
	for _, r := range rules {
		if r.match(o) {
			return New(r.kind, err)
		}
	}
	return New(Unknown, err)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// hasCode reports whether code occurs in s not embedded in a longer number.
func hasCode(s, code string) bool {
	for i := 0; ; {
		idx := strings.Index(s[i:], code)
		if idx < 0 {
			return false
		}
		start := i + idx
		end := start + len(code)
		if (start == 0 || !isDigit(s[start-1])) && (end == len(s) || !isDigit(s[end])) {
			return true
		}
		i = start + 1
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
