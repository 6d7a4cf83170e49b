package analysis

// Lookup tables for reasoning and safety advice. Table-driven so the
// explanation surface can grow without touching derivation logic.

// categoryReasons maps a matched scam category to a human-readable
// explanation sentence.
var categoryReasons = map[string]string{
	"banking":                "Message pressures the recipient around bank accounts, cards or one-time passwords.",
	"phishing":               "Message pushes the recipient toward a link, login page or attachment.",
	"fake_offer":             "Message dangles an unsolicited prize, offer or guaranteed return.",
	"urgency":                "Message manufactures time pressure to short-circuit deliberation.",
	"contact_request":        "Message tries to move the conversation to an unmonitored channel.",
	"emotional_manipulation": "Message leans on emotional appeals, secrecy or isolation tactics.",
	"authority_validation":   "Message claims institutional authority to legitimize its demands.",
	"multilingual":           "Message uses known scam phrasing in a non-English language.",
	"brand_impersonation":    "Message impersonates a well-known brand or service.",
	"sensitive_data":         "Message requests identity or credential details no legitimate party asks for in chat.",
	"intelligence":           "Message carries payment handles, phone numbers or untrusted links.",
	"contextual":             "Message shows situational red flags given its position in the conversation.",
}

// adviceRule emits one safety-advice line when its condition holds.
type adviceRule struct {
	categories []string // any of these matched categories triggers the rule
	advice     string
}

var adviceRules = []adviceRule{
	{[]string{"banking", "sensitive_data"}, "Never share OTPs, PINs, passwords or card details with anyone, including callers claiming to be your bank."},
	{[]string{"phishing", "brand_impersonation"}, "Do not open links or attachments from unverified senders; navigate to official sites directly."},
	{[]string{"fake_offer"}, "Legitimate prizes never require an upfront fee; treat unsolicited winnings as fraud."},
	{[]string{"urgency"}, "Urgency is a pressure tactic; slow down and verify through an independent channel."},
	{[]string{"authority_validation"}, "Government agencies and banks do not demand payments or credentials over chat; verify via official numbers."},
	{[]string{"contact_request"}, "Keep the conversation on the original platform; moving channels removes safety protections."},
	{[]string{"emotional_manipulation"}, "Be wary of secrecy demands and emotional appeals from people you have never met."},
	{[]string{"intelligence"}, "Do not call numbers, visit links or pay handles supplied in unsolicited messages."},
}

// Vulnerability indicator phrase lists. High indicators show acute fear or
// prior compliance; medium indicators show confusion or help-seeking.
var highVulnerabilityPhrases = []string{
	"i'm scared", "i am scared", "i'm frightened", "please help me",
	"i already paid", "i already sent", "i gave them", "don't tell my family",
	"i'm panicking", "i am in trouble",
}

var mediumVulnerabilityPhrases = []string{
	"confused", "i don't understand", "not sure", "what should i do",
	"is this real", "can you help", "worried", "nervous", "help me",
	"what do i do",
}

// legitimacyClaimPhrases mark a counterpart insisting on authenticity.
// Fraud actors assert legitimacy unprompted far more often than genuine
// contacts do.
var legitimacyClaimPhrases = []string{
	"this is real", "this is genuine", "this is legit", "this is legitimate",
	"i am genuine", "i'm genuine", "not a scam", "not a fraud",
	"100% real", "100% genuine", "my bank", "trust me, this is",
	"i am really from", "i'm really from",
}

// Archetype keyword groups, checked in priority order by classifyArchetype.
var (
	otpArchetypeWords       = []string{"otp", "one time password", "one-time password", "verification code", "security code"}
	bankArchetypeWords      = []string{"bank", "account blocked", "account suspended", "kyc", "debit card", "credit card", "net banking"}
	techArchetypeWords      = []string{"microsoft", "windows", "virus", "tech support", "remote access", "anydesk", "teamviewer", "your computer"}
	prizeArchetypeWords     = []string{"won", "winner", "prize", "lottery", "jackpot", "lucky draw", "claim your"}
	legalArchetypeWords     = []string{"legal action", "arrest", "warrant", "court", "police", "lawsuit", "summons", "digital arrest"}
	emergencyArchetypeWords = []string{"emergency", "accident", "hospital", "stranded", "urgent help", "bail", "send money now"}
)

// Archetype labels used in reporting.
const (
	ArchetypeOTP         = "otp_fraud"
	ArchetypeBankImpers  = "bank_impersonation"
	ArchetypeTechSupport = "tech_support"
	ArchetypePrize       = "prize_scam"
	ArchetypeLegalThreat = "legal_threat"
	ArchetypeEmergency   = "emergency_request"
	ArchetypeUnknown     = "unknown"
)
