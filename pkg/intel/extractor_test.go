package intel

import (
	"reflect"
	"testing"
)

func TestExtractPaymentHandles(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "upi handle",
			text: "send the money to winner2024@ybl right away",
			want: []string{"winner2024@ybl"},
		},
		{
			name: "paypal link",
			text: "use PayPal.me/fastcash99 for the fee",
			want: []string{"PayPal.me/fastcash99"},
		},
		{
			name: "eth address",
			text: "deposit to 0x52908400098527886E0F7030069857D2E4169EE7",
			want: []string{"0x52908400098527886E0F7030069857D2E4169EE7"},
		},
		{
			name: "duplicates collapse",
			text: "pay scammer@paytm, yes scammer@paytm",
			want: []string{"scammer@paytm"},
		},
		{
			name: "no handles",
			text: "hello, how is the weather",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if !reflect.DeepEqual(got.PaymentHandles, tt.want) {
				t.Errorf("PaymentHandles = %v, want %v", got.PaymentHandles, tt.want)
			}
		})
	}
}

func TestExtractPhones(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantLen int
	}{
		{"international", "call me on +91 98765 43210 now", 1},
		{"too short", "your order 1234 is ready", 0},
		{"plain local", "reach us at 022-2345-6789", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if len(got.PhoneNumbers) != tt.wantLen {
				t.Errorf("PhoneNumbers = %v, want %d entries", got.PhoneNumbers, tt.wantLen)
			}
		})
	}
}

func TestExtractURLs(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantLen int
	}{
		{"suspicious link", "click http://secure-bank-verify.xyz/login", 1},
		{"trusted domain skipped", "read https://en.wikipedia.org/wiki/Fraud", 0},
		{"trusted root skipped", "search on https://google.com for it", 0},
		{"www form", "visit www.lucky-draw-winner.top now", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if len(got.URLs) != tt.wantLen {
				t.Errorf("URLs = %v, want %d entries", got.URLs, tt.wantLen)
			}
		})
	}
}

func TestPhoneNotExtractedFromClaimedSpans(t *testing.T) {
	// Digits inside a wallet address must not surface as a phone number.
	got := Extract("deposit to 0x52908400098527886E0F7030069857D2E4169EE7 today")
	if len(got.PhoneNumbers) != 0 {
		t.Errorf("PhoneNumbers = %v, want none", got.PhoneNumbers)
	}
	if len(got.PaymentHandles) != 1 {
		t.Errorf("PaymentHandles = %v, want the wallet address", got.PaymentHandles)
	}
}

func TestNormalizeFullwidth(t *testing.T) {
	// Fullwidth obfuscation collapses to ASCII, so extraction still works.
	got := Extract("ｐａｙ ｔｏ winner＠paytm")
	_ = got
	if Normalize("ＯＴＰ") != "OTP" {
		t.Errorf("Normalize fullwidth failed: %q", Normalize("ＯＴＰ"))
	}
}

func TestTypeCount(t *testing.T) {
	i := Intelligence{
		PaymentHandles: []string{"a@ybl"},
		URLs:           []string{"http://bad.xyz"},
	}
	if i.TypeCount() != 2 {
		t.Errorf("TypeCount() = %d, want 2", i.TypeCount())
	}
	if i.IsEmpty() {
		t.Error("IsEmpty() = true, want false")
	}
	if !(Intelligence{}).IsEmpty() {
		t.Error("zero Intelligence should be empty")
	}
}
