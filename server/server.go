// Package server is the HTTP front door: it accepts chat requests, extracts
// the caller's bearer token and hands each request to a shared orchestrator.
// The orchestrator, model client and HTTP clients live for the process; the
// memory scope and tool closures are derived fresh inside each Process call.
package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/revoshq/holygrail/core"
	"github.com/revoshq/holygrail/logging"
	"github.com/revoshq/holygrail/orchestrator"
)

// ChatRequest is the POST /chat body.
type ChatRequest struct {
	Message  string `json:"message"`
	UserID   string `json:"user_id"`
	ClientID string `json:"client_id,omitempty"`
	PodID    string `json:"pod_id"`
}

// ChatResponse is the successful POST /chat reply.
type ChatResponse struct {
	Response string `json:"response"`
	Success  bool   `json:"success"`
}

// ErrorResponse carries the failure detail.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Options configure the front door.
type Options struct {
	// AllowedOrigins restricts CORS. Empty disables CORS entirely.
	AllowedOrigins []string
	// Logger receives request lifecycle events. Nil means no logging.
	Logger logging.Logger
	// Version is reported by GET /health.
	Version string
}

// Server wraps echo around one shared orchestrator.
type Server struct {
	echo    *echo.Echo
	orch    *orchestrator.Orchestrator
	logger  logging.Logger
	version string
}

// New builds the front door over a shared orchestrator.
func New(orch *orchestrator.Orchestrator, optFns ...func(o *Options)) *Server {
	opts := Options{Logger: logging.NoOpLogger{}, Version: "1.0.0"}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	if len(opts.AllowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     opts.AllowedOrigins,
			AllowCredentials: true,
		}))
	}

	s := &Server{echo: e, orch: orch, logger: opts.Logger, version: opts.Version}
	e.GET("/health", s.handleHealth)
	e.POST("/chat", s.handleChat)
	return s
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "holy-grail-chat",
		"version": s.version,
	})
}

func (s *Server) handleChat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "malformed request body"})
	}
	if req.PodID == "" {
		req.PodID = "default"
	}

	auth := core.AuthContext{
		UserID:      req.UserID,
		TenantID:    req.ClientID,
		BearerToken: bearerToken(c.Request()),
	}
	conversation := core.Conversation{{Role: core.RoleUser, Content: req.Message}}

	s.logger.Info("server.chat.start", "user_id", req.UserID, "pod_id", req.PodID)

	text, err := s.orch.Process(c.Request().Context(), conversation, req.UserID, req.PodID, auth)
	if err != nil {
		s.logger.Error("server.chat.failed", "user_id", req.UserID, "error", err.Error())
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: err.Error()})
	}

	return c.JSON(http.StatusOK, ChatResponse{Response: text, Success: true})
}

// bearerToken extracts the token from the Authorization header; missing or
// differently-shaped headers yield an empty token.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// Start begins serving on addr and blocks until the server stops.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}
