package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/DecoyDeskAI/warden/pkg/analysis"
	"github.com/DecoyDeskAI/warden/pkg/httputil"
)

// ReplyRequest carries the context a generator needs to draft a decoy
// reply. The governor still has the final word on whatever comes back.
type ReplyRequest struct {
	SessionID   string `json:"session_id"`
	UserMessage string `json:"user_message"`
	State       string `json:"state"`
	Archetype   string `json:"archetype"`
	Turn        int    `json:"turn"`
}

// ReplyGenerator drafts the proposed reply for a turn.
type ReplyGenerator interface {
	Generate(ctx context.Context, req ReplyRequest) (string, error)
}

// ====================================================================
// Local fallback generator
// ====================================================================

// Stalling replies keyed by scam archetype. Chosen round-robin by turn
// number so a session doesn't repeat itself back-to-back. None of them
// volunteer information; the BLOCKING scrub still applies on top.
var fallbackReplies = map[string][]string{
	analysis.ArchetypeOTP: {
		"I have not received any code yet.",
		"My phone is acting up, the message is not coming through.",
		"Let me check my messages, the network here is slow.",
	},
	analysis.ArchetypeBankImpers: {
		"I will need to visit my branch first.",
		"My netbanking has been locked for a while, I keep meaning to fix it.",
		"I do not have my passbook with me right now.",
	},
	analysis.ArchetypeTechSupport: {
		"My computer is very old, it takes a long time to start.",
		"The screen went blank again, give me a moment.",
		"I am not good with computers, my nephew usually helps me.",
	},
	analysis.ArchetypePrize: {
		"That sounds wonderful, I have never won anything before.",
		"I told my neighbour about this, she was so surprised.",
		"I am still looking for the email you mentioned.",
	},
	analysis.ArchetypeLegalThreat: {
		"This is very worrying, I need to sit down.",
		"I have never been in trouble with the law before.",
		"Let me find my reading glasses first.",
	},
	analysis.ArchetypeEmergency: {
		"Oh no, that is terrible news.",
		"I am trying to reach the family now.",
		"Please give me some time, I am quite shaken.",
	},
	analysis.ArchetypeUnknown: {
		"I see, tell me more.",
		"Sorry, I was away from my phone.",
		"I am a little busy right now but go on.",
	},
}

// FallbackGenerator produces deterministic stalling replies locally. It
// rate limits itself so a runaway client cannot turn the engine into a
// reply firehose.
type FallbackGenerator struct {
	limiter *rate.Limiter
}

// NewFallbackGenerator returns a local generator allowing perSecond
// replies with a small burst.
func NewFallbackGenerator(perSecond float64) *FallbackGenerator {
	if perSecond <= 0 {
		perSecond = 10
	}
	return &FallbackGenerator{
		limiter: rate.NewLimiter(rate.Limit(perSecond), 5),
	}
}

// Generate picks a stalling reply for the request's archetype, rotating
// by turn number. Blocks on the rate limiter; the only error is context
// cancellation.
func (g *FallbackGenerator) Generate(ctx context.Context, req ReplyRequest) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}
	pool, ok := fallbackReplies[req.Archetype]
	if !ok {
		pool = fallbackReplies[analysis.ArchetypeUnknown]
	}
	return pool[req.Turn%len(pool)], nil
}

// ====================================================================
// Remote webhook generator
// ====================================================================

// WebhookGenerator requests replies from a remote persona service. The
// engine falls back to the local generator when the webhook fails, so a
// flaky persona service degrades engagement quality, never safety.
type WebhookGenerator struct {
	url    string
	client *http.Client
}

// NewWebhookGenerator creates a generator POSTing to url.
func NewWebhookGenerator(url string) *WebhookGenerator {
	return &WebhookGenerator{
		url:    url,
		client: httputil.SlowClient(),
	}
}

type webhookResponse struct {
	Reply string `json:"reply"`
}

// Generate POSTs the request as JSON and expects {"reply": "..."} back.
func (g *WebhookGenerator) Generate(ctx context.Context, req ReplyRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("engine: marshal reply request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("engine: build reply request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("engine: reply webhook: %w", err)
	}
	defer httputil.DrainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := httputil.ReadErrorBody(resp.Body)
		return "", fmt.Errorf("engine: reply webhook status %d: %s", resp.StatusCode, body)
	}

	raw, err := httputil.ReadResponseBody(resp.Body, httputil.MaxResponseSize)
	if err != nil {
		return "", fmt.Errorf("engine: read reply webhook response: %w", err)
	}
	var out webhookResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("engine: decode reply webhook response: %w", err)
	}
	if out.Reply == "" {
		return "", fmt.Errorf("engine: reply webhook returned empty reply")
	}
	return out.Reply, nil
}
