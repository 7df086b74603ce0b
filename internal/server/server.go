// Package server exposes metadata extraction over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/joacominatel/pgmeta/internal/metadata"
)

// Extractor produces a metadata tree for a filter. *app.Service satisfies it.
type Extractor interface {
	Extract(ctx context.Context, f metadata.Filter) (metadata.Tree, error)
}

// Pinger is implemented by extractors backed by a live connection. Health
// reports them unavailable when the ping fails.
type Pinger interface {
	Ping(ctx context.Context) error
}

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// MetadataResponse is the payload of GET /metadata.
type MetadataResponse struct {
	Filter metadata.Filter `json:"filter"`
	Stats  metadata.Stats  `json:"stats"`
	Tree   metadata.Tree   `json:"tree"`
}

const requestIDHeader = "X-Request-ID"

// Handler serves the metadata endpoints.
type Handler struct {
	extractor Extractor
	logger    *slog.Logger
	timeout   time.Duration
}

// NewHandler creates a Handler. timeout bounds each extraction; zero means
// no extra bound beyond the request context.
func NewHandler(extractor Extractor, logger *slog.Logger, timeout time.Duration) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{extractor: extractor, logger: logger, timeout: timeout}
}

// GetMetadata handles GET /metadata?table=&schema=&database=
func (h *Handler) GetMetadata(c *gin.Context) {
	var f metadata.Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		fail(c, http.StatusBadRequest, err, "Invalid filter")
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	tree, err := h.extractor.Extract(ctx, f)
	if err != nil {
		h.logger.ErrorContext(ctx, "extract metadata",
			"request_id", c.GetString(requestIDHeader),
			"error", err,
		)
		fail(c, http.StatusBadGateway, err, "Failed to extract metadata")
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Status: "success",
		Data: MetadataResponse{
			Filter: f,
			Stats:  tree.Count(),
			Tree:   tree,
		},
	})
}

// Health handles GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	if p, ok := h.extractor.(Pinger); ok {
		if err := p.Ping(c.Request.Context()); err != nil {
			fail(c, http.StatusServiceUnavailable, err, "database unavailable")
			return
		}
	}
	c.JSON(http.StatusOK, APIResponse{Status: "success", Message: "ok"})
}

func fail(c *gin.Context, status int, err error, message string) {
	resp := APIResponse{Status: "error", Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	c.AbortWithStatusJSON(status, resp)
}

// requestID tags every request with an ID, reusing the caller's if present.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// accessLog writes one structured record per request.
func accessLog(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.InfoContext(c.Request.Context(), "request",
			"request_id", c.GetString(requestIDHeader),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// NewRouter wires the handler into a gin engine.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), accessLog(h.logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	router.GET("/healthz", h.Health)
	router.GET("/metadata", h.GetMetadata)
	return router
}

// New creates the HTTP server for addr.
func New(addr string, h *Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      NewRouter(h),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
}
