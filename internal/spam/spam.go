// Package spam implements the heuristic used to classify inbound contact
// messages before the operator notification is dispatched.
//
// The classifier is a fixed, inspectable rule set: a handful of independent
// boolean indicators, each contributing the same fixed weight when it
// matches. There is no counting, no confidence weighting, and no state; the
// score only gates the notification email, never persistence.
package spam

import "regexp"

// Weight is the fixed contribution of each matched indicator.
const Weight = 0.25

// LikelyThreshold is the score at or above which a message is treated as
// likely spam and no notification is dispatched. With four body indicators
// plus the sender-address check at 0.25 each, at least three signals must
// fire to reach it, so a single innocuous match (e.g. one shared URL) can
// never suppress the notification on its own.
const LikelyThreshold = 0.7

// bodyIndicators are applied case-insensitively to the message body.
// Each pattern counts at most once regardless of how often it matches.
var bodyIndicators = []*regexp.Regexp{
	// Adult / pharma / gambling keyword blocklist.
	regexp.MustCompile(`(?i)\b(viagra|cialis|casino|porn)\b`),
	// "free ... money" / "make ... money" phrasing, order-sensitive.
	regexp.MustCompile(`(?i)\b(free.*money|make.*money)\b`),
	// Urgency language followed later by a money/help ask.
	regexp.MustCompile(`(?i)\b(urgent|emergency)\b.*\b(money|help)\b`),
	// Any bare URL.
	regexp.MustCompile(`(?i)http[s]?://[^\s]*`),
}

// digitRunLocalPart matches 5+ consecutive digits in the local part of an
// email address (i.e. immediately before the '@').
var digitRunLocalPart = regexp.MustCompile(`\d{5,}[^@]*@`)

// Score computes the spam likelihood of a message body and sender email.
// It is pure and deterministic: each matched body indicator adds Weight,
// a 5+ digit run in the email local part adds Weight, and the result is
// clamped to 1.0 (five signals would otherwise sum to 1.25).
func Score(body, email string) float64 {
	score := 0.0
	for _, re := range bodyIndicators {
		if re.MatchString(body) {
			score += Weight
		}
	}
	if digitRunLocalPart.MatchString(email) {
		score += Weight
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// Likely reports whether score meets the notification-suppression threshold.
func Likely(score float64) bool { return score >= LikelyThreshold }
