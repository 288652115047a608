// Package redact provides helpers for scrubbing sensitive information from
// strings before they are logged. Error messages originating in the
// database or auth layers can carry connection strings, credentials, or
// raw tokens; everything logged through the API error responders passes
// through here first.
package redact

import "regexp"

// Redaction placeholders.
const (
	credentialPlaceholder = "[REDACTED_CREDENTIAL]"
	tokenPlaceholder      = "[REDACTED_TOKEN]"
)

var patterns = []struct {
	re          *regexp.Regexp
	placeholder string
}{
	// Connection strings with embedded credentials
	{regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`), "$1://" + credentialPlaceholder + "@"},
	// password=..., passwd: '...', pwd="..."
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`), "$1$2" + credentialPlaceholder},
	// Secrets and keys in key=value form
	{regexp.MustCompile(`(?i)(secret|api[_-]?key|signing[_-]?key)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`), "$1$2" + credentialPlaceholder},
	// JWT compact serialization (three base64url segments starting with eyJ)
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`), tokenPlaceholder},
	// Bearer header values
	{regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/=]+`), "Bearer " + tokenPlaceholder},
}

// String scrubs sensitive fragments from the input string.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, p := range patterns {
		result = p.re.ReplaceAllString(result, p.placeholder)
	}
	return result
}

// Error scrubs an error's message. Returns the empty string for nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
