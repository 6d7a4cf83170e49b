// Package config holds global settings for the Warden engine.
// All settings can be configured via environment variables or
// programmatically; every empirical scoring constant is a named,
// overridable field rather than a literal buried in scoring code.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds global settings for the Warden gateway and engine.
type Config struct {
	// === Core Settings ===
	AuditLogPath string // Path to audit log file (default: "audit_events.jsonl")
	PatternFile  string // Optional YAML pattern override file ("" = built-in catalogue)

	// === Session Storage ===
	RedisAddr     string // Redis address ("" = in-memory session store)
	RedisPassword string
	RedisDB       int
	PostgresDSN   string        // Postgres DSN for session archival ("" = archival disabled)
	SessionTTL    time.Duration // Idle session expiry (default: 1 hour)

	// === Reply Generation ===
	ReplyWebhookURL string // Remote reply generator endpoint ("" = local fallback only)

	// === Pipeline ===
	MaxConcurrentTurns  int // Bound on in-flight pipeline executions (default: 64)
	LedgerRetryAttempts int // CAS retries on ledger write conflict (default: 3)

	// === Detection Knobs ===
	Scoring  ScoringConfig
	Governor GovernorConfig
}

// ScoringConfig names every empirical constant in the multi-layer scorer
// and analysis engine. The defaults are carried over from field-tuned
// values; they are exposed here so tests and operators can override them
// without re-deriving intent.
type ScoringConfig struct {
	// Layer weights for the combined confidence (must sum to 1.0).
	PatternWeight      float64
	BehaviorWeight     float64
	ContextWeight      float64
	IntelligenceWeight float64
	UrgencyWeight      float64

	// Floor rule: if any single layer reaches LayerAlertThreshold the total
	// is floored at FlooredConfidence; two or more such layers multiply the
	// total by MultiLayerBoost (capped at 1.0).
	LayerAlertThreshold float64
	FlooredConfidence   float64
	MultiLayerBoost     float64

	// Confidence at or above ScamThreshold marks the message as a scam.
	ScamThreshold float64

	// Risk tier bands.
	TierCritical float64
	TierHigh     float64
	TierMedium   float64
	TierLow      float64

	// Pattern layer hit weights. Phrase hits outweigh regex hits.
	RegexHitWeight  float64
	PhraseHitWeight float64

	// Token-set similarity above which two user turns count as repetition.
	RepetitionSimilarity float64

	// Legitimacy-claim adjustment: confidence is reduced by
	// LegitimacyReduction but never below LegitimacyFloor once any scam
	// signal existed.
	LegitimacyReduction float64
	LegitimacyFloor     float64

	// Scam-detected turns floor the ledger probability at this value (0-100).
	DetectedProbabilityFloor int
}

// GovernorConfig holds the response governor's mode thresholds.
// Accumulated confidence below Defensive passes replies through unchanged;
// the remaining bands escalate one-directionally.
type GovernorConfig struct {
	DefensiveThreshold float64 // >= this: reply flagged
	BlockingThreshold  float64 // >= this: reply stripped of questions
	TerminateThreshold float64 // >= this: fixed refusal reply
	MaxRepetition      int     // repetition count that forces TERMINATE
}

// DefaultScoringConfig returns the field-tuned scoring constants.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		PatternWeight:      0.40,
		BehaviorWeight:     0.20,
		ContextWeight:      0.25,
		IntelligenceWeight: 0.10,
		UrgencyWeight:      0.05,

		LayerAlertThreshold: 0.30,
		FlooredConfidence:   0.35,
		MultiLayerBoost:     1.5,

		ScamThreshold: 0.15,

		TierCritical: 0.80,
		TierHigh:     0.60,
		TierMedium:   0.40,
		TierLow:      0.20,

		RegexHitWeight:  0.25,
		PhraseHitWeight: 0.40,

		RepetitionSimilarity: 0.65,

		LegitimacyReduction: 0.25,
		LegitimacyFloor:     0.30,

		DetectedProbabilityFloor: 30,
	}
}

// DefaultGovernorConfig returns the default mode ladder thresholds.
func DefaultGovernorConfig() GovernorConfig {
	return GovernorConfig{
		DefensiveThreshold: 0.15,
		BlockingThreshold:  0.30,
		TerminateThreshold: 0.50,
		MaxRepetition:      3,
	}
}

// NewDefaultConfig creates a Config with sensible defaults.
// All settings can be overridden via environment variables.
func NewDefaultConfig() *Config {
	return &Config{
		AuditLogPath: GetEnv("WARDEN_AUDIT_LOG", "audit_events.jsonl"),
		PatternFile:  GetEnv("WARDEN_PATTERN_FILE", ""),

		RedisAddr:     GetEnv("WARDEN_REDIS_ADDR", ""),
		RedisPassword: GetEnv("WARDEN_REDIS_PASSWORD", ""),
		RedisDB:       GetEnvInt("WARDEN_REDIS_DB", 0),
		PostgresDSN:   GetEnv("WARDEN_POSTGRES_DSN", ""),
		SessionTTL:    time.Duration(GetEnvInt("WARDEN_SESSION_TTL_SECONDS", 3600)) * time.Second,

		ReplyWebhookURL: GetEnv("WARDEN_REPLY_WEBHOOK_URL", ""),

		MaxConcurrentTurns:  clampInt(GetEnvInt("WARDEN_MAX_CONCURRENT_TURNS", 64), 1, 4096),
		LedgerRetryAttempts: clampInt(GetEnvInt("WARDEN_LEDGER_RETRIES", 3), 1, 10),

		Scoring:  DefaultScoringConfig(),
		Governor: DefaultGovernorConfig(),
	}
}

// NewHighSecurityConfig creates a Config that escalates earlier.
// Expect more false positives; the decoy disengages sooner.
func NewHighSecurityConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.Governor.DefensiveThreshold = 0.10
	cfg.Governor.BlockingThreshold = 0.20
	cfg.Governor.TerminateThreshold = 0.35
	cfg.Scoring.ScamThreshold = 0.10
	return cfg
}

// NewHighEngagementConfig creates a Config that keeps the counterpart
// talking longer before locking down. Use for intelligence-gathering
// deployments where maximizing scammer time investment matters more than
// early termination.
func NewHighEngagementConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.Governor.BlockingThreshold = 0.40
	cfg.Governor.TerminateThreshold = 0.65
	return cfg
}

// clampInt ensures a value is within bounds.
func clampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Validate checks internal consistency of the detection knobs.
// Violations are configuration errors: fatal at startup, never
// recoverable per-request.
func (c *Config) Validate() error {
	s := c.Scoring
	sum := s.PatternWeight + s.BehaviorWeight + s.ContextWeight + s.IntelligenceWeight + s.UrgencyWeight
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("scoring layer weights must sum to 1.0, got %.4f", sum)
	}
	if !(s.TierLow < s.TierMedium && s.TierMedium < s.TierHigh && s.TierHigh < s.TierCritical) {
		return fmt.Errorf("risk tier bands must be strictly increasing")
	}
	g := c.Governor
	if !(g.DefensiveThreshold < g.BlockingThreshold && g.BlockingThreshold < g.TerminateThreshold) {
		return fmt.Errorf("governor thresholds must be strictly increasing")
	}
	if g.MaxRepetition < 1 {
		return fmt.Errorf("governor max repetition must be >= 1")
	}
	if s.LegitimacyReduction < 0 || s.LegitimacyReduction >= 1 {
		return fmt.Errorf("legitimacy reduction must be in [0,1)")
	}
	if s.DetectedProbabilityFloor < 0 || s.DetectedProbabilityFloor > 100 {
		return fmt.Errorf("detected probability floor must be in [0,100]")
	}
	return nil
}

// MustValidate calls Validate and panics if validation fails.
// Call this at startup before serving traffic.
func (c *Config) MustValidate() {
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("configuration validation failed: %v", err))
	}
}

// Helper functions for environment variable parsing.
// These are exported for use by other packages.

// GetEnv returns the value of an environment variable or a default value.
func GetEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// GetEnvBool returns the boolean value of an environment variable or a default value.
func GetEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

// GetEnvFloat returns the float64 value of an environment variable or a default value.
func GetEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return defaultValue
}

// GetEnvInt returns the integer value of an environment variable or a default value.
func GetEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return defaultValue
}

// GetEnvSlice returns a comma-separated list from an environment variable or a default value.
func GetEnvSlice(key string, defaultValue []string) []string {
	if v := os.Getenv(key); v != "" {
		var parts []string
		for _, p := range strings.Split(v, ",") {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		if len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}
