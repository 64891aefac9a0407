package dedupe

import "strings"

// MinPhoneDigits is the shortest phone number that can act as a duplicate
// key. Shorter values are usually extensions or partial numbers and would
// produce false positives.
const MinPhoneDigits = 8

func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizePhone strips everything but digits. Returns "" when fewer than
// MinPhoneDigits remain, so the value produces no exact-key match.
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) < MinPhoneDigits {
		return ""
	}
	return digits
}

// NormalizeTaxID strips all whitespace. SIRET numbers are commonly entered
// with grouping spaces ("123 456 789 00012").
func NormalizeTaxID(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
