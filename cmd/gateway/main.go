package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/DecoyDeskAI/warden/pkg/config"
	"github.com/DecoyDeskAI/warden/pkg/engine"
	"github.com/DecoyDeskAI/warden/pkg/httputil"
	"github.com/DecoyDeskAI/warden/pkg/ledger"
	"github.com/DecoyDeskAI/warden/pkg/patterns"
	"github.com/DecoyDeskAI/warden/pkg/telemetry"
)

const Version = "0.1.0"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		port := "3000"
		if len(os.Args) > 2 {
			port = os.Args[2]
		}
		runHTTPServer(port)
	case "scan":
		if len(os.Args) < 3 {
			fmt.Println("Usage: warden scan <text>")
			os.Exit(1)
		}
		runCLIScan(strings.Join(os.Args[2:], " "))
	case "version":
		fmt.Printf("Warden v%s\n", Version)
		fmt.Println("Scam Detection & Governance Engine")
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("Warden v%s - Scam Detection & Governance Engine\n\n", Version)
	fmt.Println("Usage:")
	fmt.Println("  warden serve [port]  Start HTTP gateway (default: 3000)")
	fmt.Println("  warden scan <text>   Score a single message on the CLI")
	fmt.Println("  warden version       Show version")
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Println("  warden serve 8080")
	fmt.Println("  warden scan \"share your OTP to unblock your account\"")
	fmt.Println("")
	fmt.Println("Environment Variables:")
	fmt.Println("  WARDEN_REDIS_ADDR         Redis address for session storage (default: in-memory)")
	fmt.Println("  WARDEN_POSTGRES_DSN       Postgres DSN for session archival (default: disabled)")
	fmt.Println("  WARDEN_PATTERN_FILE       YAML pattern override file (default: built-in catalogue)")
	fmt.Println("  WARDEN_REPLY_WEBHOOK_URL  Remote reply generator endpoint (default: local fallback)")
	fmt.Println("  WARDEN_AUDIT_LOG          Audit trail file (default: audit_events.jsonl)")
}

// ============================================================================
// Component wiring
// ============================================================================

func buildRegistry(cfg *config.Config) *patterns.Registry {
	if cfg.PatternFile == "" {
		return patterns.Get()
	}
	reg, err := patterns.LoadFile(cfg.PatternFile)
	if err != nil {
		log.Fatalf("pattern file %s: %v", cfg.PatternFile, err)
	}
	log.Printf("loaded %d patterns from %s", reg.TotalPatterns(), cfg.PatternFile)
	return reg
}

func buildStore(cfg *config.Config) ledger.Store {
	if cfg.RedisAddr == "" {
		log.Println("session store: in-memory")
		return ledger.NewMemoryStore(ledger.WithMaxAge(cfg.SessionTTL))
	}
	store := ledger.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SessionTTL)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		log.Fatalf("redis %s: %v", cfg.RedisAddr, err)
	}
	log.Printf("session store: redis %s", cfg.RedisAddr)
	return store
}

func buildEngine(cfg *config.Config) (*engine.Engine, *ledger.Archiver) {
	registry := buildRegistry(cfg)
	store := buildStore(cfg)

	auditor, err := telemetry.NewAuditor(cfg.AuditLogPath)
	if err != nil {
		log.Fatalf("audit log: %v", err)
	}

	opts := []engine.Option{
		engine.WithAuditor(auditor),
		engine.WithLogger(slog.Default()),
	}

	var archiver *ledger.Archiver
	if cfg.PostgresDSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		archiver, err = ledger.NewArchiver(ctx, cfg.PostgresDSN)
		cancel()
		if err != nil {
			log.Fatalf("postgres archiver: %v", err)
		}
		opts = append(opts, engine.WithArchiver(archiver))
		log.Println("session archival: postgres")
	}

	if cfg.ReplyWebhookURL != "" {
		opts = append(opts, engine.WithReplyGenerator(engine.NewWebhookGenerator(cfg.ReplyWebhookURL)))
		log.Printf("reply generation: webhook %s", cfg.ReplyWebhookURL)
	} else {
		log.Println("reply generation: local fallback")
	}

	return engine.New(cfg, registry, store, opts...), archiver
}

// ============================================================================
// HTTP Server Mode
// ============================================================================

func runHTTPServer(port string) {
	cfg := config.NewDefaultConfig()
	cfg.MustValidate()

	eng, _ := buildEngine(cfg)
	turns := httputil.NewSemaphore(cfg.MaxConcurrentTurns)

	app := fiber.New(fiber.Config{
		AppName: "Warden",
	})

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "version": Version})
	})

	// Full pipeline: scores the message, advances the session, and
	// returns the governed reply. Omitting session_id starts a session.
	app.Post("/v1/message", func(c fiber.Ctx) error {
		var req struct {
			SessionID string `json:"session_id"`
			Message   string `json:"message"`
		}
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
		}
		if req.Message == "" {
			return c.Status(400).JSON(fiber.Map{"error": "message field is required"})
		}

		if err := turns.Acquire(c.Context()); err != nil {
			return c.Status(503).JSON(fiber.Map{"error": "gateway at capacity"})
		}
		defer turns.Release()

		result, err := eng.ProcessMessage(c.Context(), req.SessionID, req.Message)
		if err != nil {
			log.Printf("process message: %v", err)
			return c.Status(500).JSON(fiber.Map{"error": "processing failed"})
		}
		return c.JSON(result)
	})

	// Stateless single-message scoring, no session side effects. Load is
	// shed rather than queued here.
	app.Post("/v1/scan", func(c fiber.Ctx) error {
		var req struct {
			Text string `json:"text"`
		}
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
		}
		if req.Text == "" {
			return c.Status(400).JSON(fiber.Map{"error": "text field is required"})
		}

		if !turns.TryAcquire() {
			return c.Status(503).JSON(fiber.Map{"error": "gateway at capacity"})
		}
		defer turns.Release()

		return c.JSON(eng.Scan(req.Text, nil))
	})

	app.Get("/v1/session/:id", func(c fiber.Ctx) error {
		record, err := eng.GetSession(c.Context(), c.Params("id"))
		if err != nil {
			log.Printf("get session: %v", err)
			return c.Status(500).JSON(fiber.Map{"error": "lookup failed"})
		}
		if record == nil {
			return c.Status(404).JSON(fiber.Map{"error": "session not found"})
		}
		return c.JSON(record)
	})

	// Archives (when configured) and removes the session.
	app.Delete("/v1/session/:id", func(c fiber.Ctx) error {
		err := eng.EndSession(c.Context(), c.Params("id"))
		switch {
		case err == nil:
			return c.JSON(fiber.Map{"status": "ended"})
		case err == engine.ErrSessionNotFound:
			return c.Status(404).JSON(fiber.Map{"error": "session not found"})
		default:
			log.Printf("end session: %v", err)
			return c.Status(500).JSON(fiber.Map{"error": "end session failed"})
		}
	})

	log.Printf("Warden gateway starting on :%s", port)
	log.Printf("Endpoints:")
	log.Printf("  GET    /health          - Health check")
	log.Printf("  POST   /v1/message      - Process a turn (session pipeline)")
	log.Printf("  POST   /v1/scan         - Stateless message scoring")
	log.Printf("  GET    /v1/session/:id  - Inspect session state")
	log.Printf("  DELETE /v1/session/:id  - Archive and end a session")

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}

// ============================================================================
// CLI Scan Mode
// ============================================================================

func runCLIScan(text string) {
	cfg := config.NewDefaultConfig()
	cfg.MustValidate()

	eng := engine.New(cfg, buildRegistry(cfg), ledger.NewMemoryStore())
	result := eng.Scan(text, nil)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))

	if result.Detection.IsScam {
		os.Exit(2)
	}
}
