// Package redact strips credentials, connection strings, file paths, SQL and
// stack traces from strings before they are logged or returned to clients.
// Store drivers put all of these into their error messages.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedStackPlaceholder      = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules run in order; earlier rules see the unmodified input.
var rules = []rule{
	// Stack traces swallow the rest of the message.
	{regexp.MustCompile(`(?:goroutine \d+ \[|panic: )[\s\S]*`), RedactedStackPlaceholder},

	// Userinfo in database and cache URLs; the scheme is kept for context.
	{
		regexp.MustCompile(`(?i)\b(postgres|postgresql|redis|rediss)://[^\s@/]+@`),
		"${1}://" + RedactedCredentialPlaceholder + "@",
	},

	{regexp.MustCompile(`(?i)\b(?:password|passwd|pwd)\s*[=:]\s*['"]?[^'"&\s]+['"]?`), RedactedCredentialPlaceholder},
	{regexp.MustCompile(`(?i)\b(?:api[_-]?key|token|secret)\s*[=:]\s*['"]?[A-Za-z0-9_\-.~+/]{8,}['"]?`), RedactedKeyPlaceholder},

	// Only upper-case keywords, so prose such as "failed to update task" survives.
	{regexp.MustCompile(`\b(?:SELECT|INSERT INTO|UPDATE|DELETE FROM)\s[^;\n]*`), RedactedSQLPlaceholder},

	{regexp.MustCompile(`(?:/[\w.-]+){2,}`), RedactedPathPlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(?:\\[^\\\s]+)+`), RedactedPathPlaceholder},
}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
