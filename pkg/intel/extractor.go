// Package intel extracts structured entities from raw message text:
// payment handles, phone numbers and URLs. The intelligence layer of the
// scorer consumes these, and they surface in audit records for reporting.
package intel

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Pre-compiled extraction patterns (compiled once, used many times).
var (
	reUPIHandle  = regexp.MustCompile(`\b[a-zA-Z0-9.\-_]{2,}@(upi|ybl|okaxis|oksbi|okhdfcbank|okicici|paytm|apl|axl|ibl)\b`)
	rePayPalMe   = regexp.MustCompile(`(?i)paypal\.me/[a-zA-Z0-9_]+`)
	reCashTag    = regexp.MustCompile(`(?:^|\s)\$[a-zA-Z][a-zA-Z0-9_]{2,19}\b`)
	reVenmo      = regexp.MustCompile(`(?i)venmo\.com/[a-zA-Z0-9\-_]+`)
	reBTCAddress = regexp.MustCompile(`\b(bc1[a-z0-9]{25,60}|[13][a-km-zA-HJ-NP-Z1-9]{25,34})\b`)
	reETHAddress = regexp.MustCompile(`\b0x[a-fA-F0-9]{40}\b`)
	reIBAN       = regexp.MustCompile(`\b[A-Z]{2}\d{2}[A-Z0-9]{11,30}\b`)

	// International and local phone formats. Minimum 8 digits after
	// stripping separators so order numbers and short codes don't match.
	rePhone = regexp.MustCompile(`(?:\+?\d{1,3}[\s.-]?)?(?:\(\d{2,4}\)[\s.-]?)?\d{3,5}[\s.-]?\d{3,5}(?:[\s.-]?\d{2,5})?`)

	reURL = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s<>"')]+`)

	reDigits = regexp.MustCompile(`\d`)
)

// trustedDomains are hosts whose links never count as intelligence
// signals. Kept small on purpose: anything not on the list is suspect in
// a conversation with a suspected fraud actor.
var trustedDomains = map[string]bool{
	"google.com":    true,
	"wikipedia.org": true,
	"github.com":    true,
	"microsoft.com": true,
	"apple.com":     true,
	"gov.in":        true,
	"irs.gov":       true,
}

// Intelligence holds the structured entities pulled from one message.
// Slices are deduplicated and sorted so extraction is deterministic.
type Intelligence struct {
	PaymentHandles []string `json:"payment_handles,omitempty"`
	PhoneNumbers   []string `json:"phone_numbers,omitempty"`
	URLs           []string `json:"urls,omitempty"` // non-trusted URLs only
}

// TypeCount returns how many distinct intelligence types are present.
// Two or more types in a single message is a strong composite signal.
func (i Intelligence) TypeCount() int {
	n := 0
	if len(i.PaymentHandles) > 0 {
		n++
	}
	if len(i.PhoneNumbers) > 0 {
		n++
	}
	if len(i.URLs) > 0 {
		n++
	}
	return n
}

// IsEmpty reports whether no entities were extracted.
func (i Intelligence) IsEmpty() bool {
	return i.TypeCount() == 0
}

// Normalize applies NFKC normalization so fullwidth and compatibility
// forms (a common obfuscation in scam messages) match the ASCII patterns.
func Normalize(text string) string {
	return norm.NFKC.String(text)
}

// Extract pulls payment handles, phone numbers and non-trusted URLs from
// the message. Input is NFKC-normalized first.
func Extract(text string) Intelligence {
	text = Normalize(text)

	var out Intelligence
	out.PaymentHandles = extractPaymentHandles(text)
	out.URLs = extractSuspiciousURLs(text)
	out.PhoneNumbers = extractPhones(text, out.PaymentHandles, out.URLs)
	return out
}

func extractPaymentHandles(text string) []string {
	var handles []string
	for _, re := range []*regexp.Regexp{reUPIHandle, rePayPalMe, reVenmo, reBTCAddress, reETHAddress, reIBAN} {
		handles = append(handles, re.FindAllString(text, -1)...)
	}
	for _, m := range reCashTag.FindAllString(text, -1) {
		handles = append(handles, strings.TrimSpace(m))
	}
	return dedupeSorted(handles)
}

func extractSuspiciousURLs(text string) []string {
	var urls []string
	for _, raw := range reURL.FindAllString(text, -1) {
		u := strings.TrimRight(raw, ".,;:!?")
		if !isTrustedURL(u) {
			urls = append(urls, u)
		}
	}
	return dedupeSorted(urls)
}

func extractPhones(text string, handles, urls []string) []string {
	// Mask already-claimed spans so digits inside wallet addresses or URLs
	// are not re-extracted as phone numbers.
	for _, claimed := range append(append([]string{}, handles...), urls...) {
		text = strings.ReplaceAll(text, claimed, " ")
	}

	var phones []string
	for _, m := range rePhone.FindAllString(text, -1) {
		digits := len(reDigits.FindAllString(m, -1))
		if digits >= 8 && digits <= 15 {
			phones = append(phones, strings.TrimSpace(m))
		}
	}
	return dedupeSorted(phones)
}

func isTrustedURL(u string) bool {
	host := hostOf(u)
	if host == "" {
		return false
	}
	for domain := range trustedDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

func hostOf(u string) string {
	s := strings.ToLower(u)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}
	return s
}

func dedupeSorted(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
