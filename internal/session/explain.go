package session

import "sentra/phishing-api/internal/domain"

// Explanation copy shown next to a result. Safe verdicts get their own
// message; suspicious and dangerous share the cautionary one. The simple
// variants trade precision for plain language.
const (
	explainSafeNormal = "No phishing indicators were detected in this message. " +
		"Its risk score is low and it does not match known phishing patterns. " +
		"As always, stay cautious with unexpected requests."

	explainRiskyNormal = "This message matches one or more known phishing patterns. " +
		"Do not click any links, download attachments, or reply with personal " +
		"information. If it claims to be from a company you use, contact that " +
		"company through its official website instead."

	explainSafeSimple = "This message looks okay. We didn't find anything scary in it."

	explainRiskySimple = "This message looks like a trick. Don't click anything " +
		"in it and don't share your passwords or personal details."
)

// Explain returns the canned explanation for a status in the given mode.
// Unknown modes read as normal.
func Explain(status, mode string) string {
	safe := status == domain.StatusSafe
	if mode == domain.ModeSimple {
		if safe {
			return explainSafeSimple
		}
		return explainRiskySimple
	}
	if safe {
		return explainSafeNormal
	}
	return explainRiskyNormal
}
