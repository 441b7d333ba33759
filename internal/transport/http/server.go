package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomrelay/internal/config"
	"github.com/vovakirdan/roomrelay/internal/core"
)

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewServer builds the HTTP server: health, metrics, the relay websocket and
// the bootstrap API. A nil metrics handler leaves /metrics unrouted.
func NewServer(hub *core.Hub, cfg config.Config, logger *zerolog.Logger, metrics stdhttp.Handler) *stdhttp.Server {
	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(hub, cfg, logger, metrics),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

// NewRouter mounts /ws directly on a ServeMux and hands every other path to
// the gin engine. The websocket handshake must hijack an unwritten
// ResponseWriter, which gin's writer does not allow once the 101 is sent.
func NewRouter(hub *core.Hub, cfg config.Config, logger *zerolog.Logger, metrics stdhttp.Handler) stdhttp.Handler {
	mux := stdhttp.NewServeMux()
	mux.Handle("/ws", NewWSHandler(hub, cfg.WS, logger))
	mux.Handle("/", newEngine(logger, metrics))
	return mux
}

func newEngine(logger *zerolog.Logger, metrics stdhttp.Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", healthHandler)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	bootstrap := NewBootstrapHandlers(logger)
	api := router.Group("/api")
	{
		api.POST("/new", bootstrap.New)
		api.POST("/join", bootstrap.Join)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, ErrorResponse{Error: "not found"})
	})
	return router
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
