package patterns

// defaultPhrases is the flat known-scam phrase list. These are exact
// wordings collected from reported fraud conversations; a hit here weighs
// more than a regex hit in the pattern layer.
func defaultPhrases() []Phrase {
	return []Phrase{
		{Text: "you have been selected", Weight: 0.6},
		{Text: "your account will be blocked", Weight: 0.7},
		{Text: "share your otp", Weight: 0.9},
		{Text: "send me the code", Weight: 0.8},
		{Text: "pay a small fee", Weight: 0.7},
		{Text: "100% genuine", Weight: 0.6},
		{Text: "no risk involved", Weight: 0.6},
		{Text: "limited time offer", Weight: 0.5},
		{Text: "kindly do the needful", Weight: 0.4},
		{Text: "your parcel is on hold", Weight: 0.7},
		{Text: "dear customer", Weight: 0.3},
		{Text: "update your kyc", Weight: 0.8},
		{Text: "anydesk", Weight: 0.8},
		{Text: "teamviewer", Weight: 0.7},
		{Text: "screen sharing app", Weight: 0.7},
		{Text: "gift card codes", Weight: 0.7},
		{Text: "western union", Weight: 0.6},
		{Text: "money gram", Weight: 0.6},
		{Text: "processing charges", Weight: 0.6},
		{Text: "refundable deposit", Weight: 0.6},
		{Text: "tax clearance", Weight: 0.6},
		{Text: "customs clearance fee", Weight: 0.7},
		{Text: "verify your identity immediately", Weight: 0.7},
		{Text: "this is not a scam", Weight: 0.8},
		{Text: "do not disconnect the call", Weight: 0.8},
		{Text: "you are under digital arrest", Weight: 0.95},
	}
}
