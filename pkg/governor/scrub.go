package governor

import "strings"

// Phrases that mark a sentence as information-seeking even without a
// question mark. Matched case-insensitively.
var infoSeekingPhrases = []string{
	"can you",
	"could you",
	"would you",
	"will you",
	"what is your",
	"what's your",
	"where do you",
	"tell me",
	"send me",
	"give me",
	"share your",
	"let me know",
	"i need your",
	"i want to know",
	"how do i",
	"how can i",
}

// ScrubInformationSeeking removes question sentences and info-seeking
// phrasing from a reply for BLOCKING mode. It returns the scrubbed reply
// and whether anything was removed. A reply that was entirely
// information-seeking is replaced by BlockedAcknowledgement, which still
// counts as changed.
func ScrubInformationSeeking(reply string) (string, bool) {
	sentences := splitSentences(reply)
	kept := make([]string, 0, len(sentences))
	changed := false
	for _, s := range sentences {
		if isInformationSeeking(s) {
			changed = true
			continue
		}
		kept = append(kept, s)
	}
	if len(kept) == 0 {
		return BlockedAcknowledgement, true
	}
	out := strings.Join(kept, " ")
	// Belt and braces: no question mark survives BLOCKING mode.
	if strings.Contains(out, "?") {
		out = strings.ReplaceAll(out, "?", ".")
		changed = true
	}
	return out, changed
}

func isInformationSeeking(sentence string) bool {
	if strings.Contains(sentence, "?") {
		return true
	}
	lower := strings.ToLower(sentence)
	for _, phrase := range infoSeekingPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// splitSentences breaks text on terminal punctuation, keeping the
// punctuation with its sentence. Good enough for short chat replies.
func splitSentences(text string) []string {
	var out []string
	var b strings.Builder
	for _, r := range text {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(b.String()); s != "" {
				out = append(out, s)
			}
			b.Reset()
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		out = append(out, s)
	}
	return out
}
