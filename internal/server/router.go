package server

import (
	"database/sql"
	"fmt"

	"github.com/binhbb2204/Top-Movies/internal/health"
	"github.com/binhbb2204/Top-Movies/internal/movie"
	"github.com/binhbb2204/Top-Movies/internal/web"
	"github.com/binhbb2204/Top-Movies/pkg/logger"
	"github.com/binhbb2204/Top-Movies/pkg/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Options are the collaborators the router wires together.
type Options struct {
	DB           *sql.DB
	Movies       *movie.Handler
	Logger       *logger.Logger
	AllowOrigins []string
}

// NewRouter builds the gin engine serving the movie pages plus health and metrics.
func NewRouter(opts Options) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(RequestID(), AccessLog(opts.Logger), gin.Recovery())

	if len(opts.AllowOrigins) > 0 {
		config := cors.DefaultConfig()
		config.AllowOrigins = opts.AllowOrigins
		config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
		config.ExposeHeaders = []string{"Content-Length", requestIDHeader}
		router.Use(cors.New(config))
	}

	healthHandler := health.NewHandler(opts.DB)
	router.GET("/healthz", healthHandler.Healthz)
	router.GET("/readyz", healthHandler.Readyz)
	router.GET("/metrics", metrics.NewHandler().Metrics)

	h := opts.Movies
	router.GET("/", h.Home)
	router.GET("/add", h.AddForm)
	router.POST("/add", h.Add)
	router.GET("/select", h.Select)
	router.GET("/update", h.EditForm)
	router.POST("/update", h.Edit)
	router.GET("/delete/:id", h.Delete)

	return router, nil
}
