package httputil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClientSingleton(t *testing.T) {
	if Client(TierMedium) != Client(TierMedium) {
		t.Error("same tier should return the same client")
	}
	if Client(TierFast) == Client(TierSlow) {
		t.Error("different tiers should return different clients")
	}
}

func TestClientTimeouts(t *testing.T) {
	tests := []struct {
		tier    TimeoutTier
		want    time.Duration
		getFunc func() *http.Client
	}{
		{TierFast, 5 * time.Second, FastClient},
		{TierMedium, 30 * time.Second, MediumClient},
		{TierSlow, 60 * time.Second, SlowClient},
	}
	for _, tt := range tests {
		if c := tt.getFunc(); c.Timeout != tt.want {
			t.Errorf("tier %d: timeout = %v, want %v", tt.tier, c.Timeout, tt.want)
		}
	}
}

func TestSlowClientServesWebhookCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"reply":"one moment please"}`))
	}))
	defer srv.Close()

	client := SlowClient()
	for i := 0; i < 10; i++ {
		resp, err := client.Get(srv.URL)
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		body, err := ReadResponseBody(resp.Body, MaxResponseSize)
		DrainAndClose(resp.Body)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(body), "reply") {
			t.Fatalf("request %d: body = %q", i, body)
		}
	}
}

func TestReadResponseBody(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		maxSize int64
		wantLen int
	}{
		{"normal read", "hello world", 1024, 11},
		{"truncated read", strings.Repeat("x", 1000), 100, 100},
		{"default max size", "test", 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadResponseBody(strings.NewReader(tt.input), tt.maxSize)
			if err != nil {
				t.Fatalf("ReadResponseBody() error = %v", err)
			}
			if len(got) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestReadErrorBody(t *testing.T) {
	largeError := strings.Repeat("error details ", 100000)

	got, err := ReadErrorBody(strings.NewReader(largeError))
	if err != nil {
		t.Fatalf("ReadErrorBody() error = %v", err)
	}
	if len(got) > 1024*1024 {
		t.Errorf("ReadErrorBody() should cap at 1MB, got %d bytes", len(got))
	}
}

type trackingReader struct {
	io.Reader
	fullyRead bool
}

func (r *trackingReader) Read(p []byte) (n int, err error) {
	n, err = r.Reader.Read(p)
	if err == io.EOF {
		r.fullyRead = true
	}
	return
}

func TestDrainAndClose(t *testing.T) {
	r := &trackingReader{Reader: bytes.NewReader([]byte("test data"))}
	DrainAndClose(io.NopCloser(r))
	if !r.fullyRead {
		t.Error("DrainAndClose should fully drain the body")
	}
}

func TestDrainAndCloseNil(t *testing.T) {
	DrainAndClose(nil)
}
