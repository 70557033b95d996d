package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SendMailRequest is the payload the storefront relay sender posts.
type SendMailRequest struct {
	To      string `json:"to" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body"`
}

// SendMailResponse confirms acceptance of a mail.
type SendMailResponse struct {
	MessageID  string    `json:"message_id"`
	To         string    `json:"to"`
	AcceptedAt time.Time `json:"accepted_at"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status      string    `json:"status"`
	SinkID      string    `json:"sink_id"`
	Timestamp   time.Time `json:"timestamp"`
	AcceptRate  float64   `json:"accept_rate"`
	MailsStored int       `json:"mails_stored"`
}

// MailSink simulates an HTTP mail relay. Accepted mails are kept in memory so
// a developer can inspect what the storefront would have sent.
type MailSink struct {
	mu         sync.Mutex
	acceptRate float64
	minDelay   time.Duration
	maxDelay   time.Duration
	sinkID     string
	rng        *rand.Rand
	stored     []SendMailResponse
}

func NewMailSink(acceptRate float64, minDelay, maxDelay time.Duration) *MailSink {
	return &MailSink{
		acceptRate: acceptRate,
		minDelay:   minDelay,
		maxDelay:   maxDelay,
		sinkID:     "MAIL_SINK_" + uuid.New().String()[:8],
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (m *MailSink) accept(req *SendMailRequest) (*SendMailResponse, bool) {
	// Simulate network delay
	time.Sleep(m.randomDelay())

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rng.Float64() >= m.acceptRate {
		log.Warn().
			Str("to", req.To).
			Str("subject", req.Subject).
			Msg("Mail rejected by sink")
		return nil, false
	}

	resp := SendMailResponse{
		MessageID:  uuid.New().String(),
		To:         req.To,
		AcceptedAt: time.Now(),
	}
	m.stored = append(m.stored, resp)

	log.Info().
		Str("message_id", resp.MessageID).
		Str("to", req.To).
		Str("subject", req.Subject).
		Str("body", truncate(req.Body, 200)).
		Msg("Mail accepted")

	return &resp, true
}

func (m *MailSink) randomDelay() time.Duration {
	delta := m.maxDelay - m.minDelay
	if delta <= 0 {
		return m.minDelay
	}
	m.mu.Lock()
	randomDelta := time.Duration(m.rng.Int63n(int64(delta)))
	m.mu.Unlock()
	return m.minDelay + randomDelta
}

func (m *MailSink) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stored)
}

func (m *MailSink) all() []SendMailResponse {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SendMailResponse, len(m.stored))
	copy(out, m.stored)
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n]) + "..."
}

// Handler struct holds the mail sink and routes
type Handler struct {
	sink *MailSink
}

func NewHandler(sink *MailSink) *Handler {
	return &Handler{sink: sink}
}

// SendMail handles a single mail delivery request
func (h *Handler) SendMail(c *gin.Context) {
	var req SendMailRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	resp, ok := h.sink.accept(&req)
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Mail sink temporarily rejecting",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListMails returns everything accepted so far
func (h *Handler) ListMails(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"mails": h.sink.all(),
		"count": h.sink.count(),
	})
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:      "healthy",
		SinkID:      h.sink.sinkID,
		Timestamp:   time.Now(),
		AcceptRate:  h.sink.acceptRate,
		MailsStored: h.sink.count(),
	})
}

// UpdateConfig allows changing sink configuration at runtime
func (h *Handler) UpdateConfig(c *gin.Context) {
	var config struct {
		AcceptRate *float64 `json:"accept_rate"`
	}

	if err := c.ShouldBindJSON(&config); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	if config.AcceptRate != nil {
		if *config.AcceptRate >= 0 && *config.AcceptRate <= 1.0 {
			h.sink.mu.Lock()
			h.sink.acceptRate = *config.AcceptRate
			h.sink.mu.Unlock()
			log.Info().Float64("rate", *config.AcceptRate).Msg("Updated accept rate")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Configuration updated",
		"accept_rate": h.sink.acceptRate,
	})
}

// SetupRouter configures all routes
func SetupRouter(handler *Handler) *gin.Engine {
	router := gin.Default()

	// Add request logging middleware
	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", duration).
			Msg("Request processed")
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/mail/send", handler.SendMail)
		v1.GET("/mail", handler.ListMails)
		v1.GET("/health", handler.HealthCheck)
		v1.PUT("/config", handler.UpdateConfig)
	}

	// Root health check
	router.GET("/health", handler.HealthCheck)

	return router
}

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Get configuration from environment
	port := getEnv("PORT", "8082")
	acceptRate := getEnvFloat("ACCEPT_RATE", 1)
	minDelay := getEnvDuration("MIN_DELAY", 50*time.Millisecond)
	maxDelay := getEnvDuration("MAX_DELAY", 500*time.Millisecond)

	log.Info().
		Str("port", port).
		Float64("accept_rate", acceptRate).
		Dur("min_delay", minDelay).
		Dur("max_delay", maxDelay).
		Msg("Starting Mail Sink")

	// Create mail sink
	sink := NewMailSink(acceptRate, minDelay, maxDelay)
	handler := NewHandler(sink)
	router := SetupRouter(handler)

	// Setup HTTP server
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var f float64
		if _, err := fmt.Sscanf(value, "%f", &f); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
