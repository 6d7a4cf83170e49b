package detect

import "strings"

// Keyword groups used by the behavior, context and urgency layers.
// Matched as lowercase substrings; multi-word entries match across
// whitespace exactly as written.

var pressureWords = []string{
	"now", "immediately", "urgent", "urgently", "hurry", "quick", "quickly",
	"asap", "right away", "at once", "don't delay", "final", "last chance",
	"deadline", "expires", "expiring", "limited time",
}

var temporalPressureWords = []string{
	"now", "immediately", "today", "tonight", "within", "expires", "deadline",
	"right away", "before midnight", "in the next",
}

var threatOfLossWords = []string{
	"blocked", "suspended", "frozen", "deactivated", "lose", "lost", "forfeit",
	"penalty", "fine", "legal action", "arrest", "cancelled", "terminated",
	"miss out", "seized",
}

var callToActionWords = []string{
	"click", "pay", "send", "transfer", "share", "verify", "confirm", "call",
	"download", "install", "reply", "submit", "deposit", "claim",
}

var requestVerbs = []string{
	"send", "give", "share", "pay", "transfer", "provide", "tell me",
	"deposit", "forward", "submit",
}

var paymentWords = []string{
	"pay", "payment", "fee", "charge", "deposit", "transfer", "upi", "paypal",
	"bank account", "wire", "bitcoin", "gift card", "money",
}

var rewardWords = []string{
	"prize", "reward", "won", "winner", "winnings", "lottery", "jackpot",
	"cashback", "gift", "bonus", "voucher",
}

var noPaymentClaims = []string{
	"no payment", "no fee", "no charge", "completely free", "free of cost",
	"nothing to pay", "won't cost", "will not cost", "no money needed",
}

var sensitiveAskWords = []string{
	"otp", "password", "pin", "cvv", "card number", "account number",
	"aadhaar", "ssn", "date of birth", "verification code",
}

// containsAny reports whether lowercased text contains any entry.
func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// countOccurrences counts how many distinct entries appear in the text.
func countOccurrences(lower string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(lower, w) {
			n++
		}
	}
	return n
}

// pressureDensity is the ratio of pressure-word hits to total tokens.
func pressureDensity(text string) float64 {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0
	}
	hits := countOccurrences(strings.ToLower(text), pressureWords)
	return float64(hits) / float64(len(tokens))
}
