package safety

import "regexp"

var (
	emailPattern  = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern  = regexp.MustCompile(`\+?[0-9][0-9\-() ]{7,}[0-9]`)
	cardPattern   = regexp.MustCompile(`\b(?:\d[ -]*?){13,19}\b`)
	handlePattern = regexp.MustCompile(`(^|[\s(])@[A-Za-z0-9_][A-Za-z0-9_.]{1,30}`)
)

// RedactPII masks common high-risk PII patterns, including the social
// handles people drop into journal entries. Utterance text that leaves
// the process through log lines goes through this first.
func RedactPII(input string) (redacted string, changed bool) {
	out := input

	// Emails go first so an address is never half-eaten by the handle
	// pattern.
	next := emailPattern.ReplaceAllString(out, "[REDACTED_EMAIL]")
	changed = changed || next != out
	out = next

	// Run card redaction before phone to avoid card numbers being
	// classified as phone numbers.
	next = cardPattern.ReplaceAllString(out, "[REDACTED_CARD]")
	changed = changed || next != out
	out = next

	next = phonePattern.ReplaceAllString(out, "[REDACTED_PHONE]")
	changed = changed || next != out
	out = next

	next = handlePattern.ReplaceAllString(out, "${1}[REDACTED_HANDLE]")
	changed = changed || next != out
	out = next

	return out, changed
}
