// Entry point for the scribe documentation generator: MCP over stdio or QUIC,
// plus a small read-only HTTP API.
package main

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/scribe/docgen"
	"github.com/hazyhaar/scribe/mcpquic"
	"github.com/hazyhaar/scribe/shield"
)

func main() {
	// .env is optional; real env vars win.
	_ = godotenv.Load()

	logLevel := env("LOG_LEVEL", "info")
	var lvl slog.Level
	switch logLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	// Logs go to stderr: stdout carries the MCP stdio framing.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := docgen.Config{
		OutputDir:          env("OUTPUT_DIR", "data/output"),
		DBPath:             env("DOCGEN_DB", "db/docgen.db"),
		TemplatesDir:       env("TEMPLATES_DIR", "data/templates"),
		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		AnthropicKey:       os.Getenv("ANTHROPIC_API_KEY"),
		OpenRouterKey:      os.Getenv("OPENROUTER_API_KEY"),
		DefaultProvider:    env("DEFAULT_AI_PROVIDER", "openai"),
		DefaultModel:       env("DEFAULT_MODEL", "gpt-4o-mini"),
		DefaultMaxTokens:   envInt("DEFAULT_MAX_TOKENS", 4000),
		DefaultTemperature: envFloat("DEFAULT_TEMPERATURE", 0.3),
		AITimeout:          envDuration("AI_TIMEOUT", 120*time.Second),
	}

	svc, err := docgen.New(ctx, cfg, logger)
	if err != nil {
		slog.Error("docgen service", "error", err)
		os.Exit(1)
	}
	defer svc.Close()

	mcpSrv := mcp.NewServer(&mcp.Implementation{
		Name:    "scribe",
		Version: "1.0.0",
	}, nil)
	svc.RegisterMCP(mcpSrv)

	// HTTP API (read-only) on the side, useful for dashboards and checks.
	go serveHTTP(ctx, svc, logger)

	switch env("MCP_TRANSPORT", "stdio") {
	case "quic":
		runQUIC(ctx, mcpSrv, logger)
	default:
		slog.Info("MCP stdio starting")
		if err := mcpSrv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
			slog.Error("MCP stdio", "error", err)
			os.Exit(1)
		}
	}
	slog.Info("server stopped")
}

func runQUIC(ctx context.Context, mcpSrv *mcp.Server, logger *slog.Logger) {
	quicAddr := env("MCP_QUIC_ADDR", ":9444")
	certFile := env("TLS_CERT", "")
	keyFile := env("TLS_KEY", "")

	var (
		tlsCfg *tls.Config
		err    error
	)
	if certFile != "" && keyFile != "" {
		tlsCfg, err = mcpquic.ServerTLSConfig(certFile, keyFile)
	} else {
		tlsCfg, err = mcpquic.SelfSignedTLSConfig()
	}
	if err != nil {
		slog.Error("MCP QUIC TLS", "error", err)
		os.Exit(1)
	}

	ql, err := mcpquic.NewListener(quicAddr, tlsCfg, mcpSrv, logger)
	if err != nil {
		slog.Error("MCP QUIC listener", "error", err)
		os.Exit(1)
	}
	defer ql.Close()

	slog.Info("MCP QUIC starting", "addr", quicAddr)
	if err := ql.Serve(ctx); err != nil && ctx.Err() == nil {
		slog.Error("MCP QUIC", "error", err)
		os.Exit(1)
	}
}

func serveHTTP(ctx context.Context, svc *docgen.Service, logger *slog.Logger) {
	port := env("PORT", "8086")

	r := chi.NewRouter()
	for _, mw := range shield.DefaultStack() {
		r.Use(mw)
	}
	if pw := os.Getenv("AUTH_PASSWORD"); pw != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			slog.Error("auth password hash", "error", err)
			os.Exit(1)
		}
		r.Use(basicAuth(hash))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, map[string]string{"status": "ok"})
	})

	r.Get("/api/types", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, svc.ListTypes())
	})

	r.Get("/api/documents", func(w http.ResponseWriter, r *http.Request) {
		docs, err := svc.ListDocuments(r.Context(), r.URL.Query().Get("doc_type"))
		if err != nil {
			writeError(w, 500, err)
			return
		}
		if docs == nil {
			docs = []*docgen.Document{}
		}
		writeJSON(w, 200, docs)
	})

	r.Get("/api/documents/{documentID}", func(w http.ResponseWriter, r *http.Request) {
		doc, err := svc.GetDocument(r.Context(), chi.URLParam(r, "documentID"))
		if errors.Is(err, docgen.ErrDocumentNotFound) {
			writeError(w, 404, err)
			return
		}
		if err != nil {
			writeError(w, 500, err)
			return
		}
		writeJSON(w, 200, doc)
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("http shutdown", "error", err)
		}
	}()

	slog.Info("http starting", "port", port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("http server", "error", err)
	}
}

// basicAuth gates all HTTP routes behind a single shared password. The
// username is ignored.
func basicAuth(hash []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, pass, ok := r.BasicAuth()
			if !ok || bcrypt.CompareHashAndPassword(hash, []byte(pass)) != nil {
				w.Header().Set("WWW-Authenticate", `Basic realm="scribe"`)
				writeJSON(w, 401, map[string]string{"error": "unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// --- Helpers ---

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func envDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func envFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return def
	}
	return v
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
