// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package server

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	sloggin "github.com/samber/slog-gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	"github.com/nextrip/core/internal/db"
	"github.com/nextrip/core/internal/onboarding"
	"github.com/nextrip/core/internal/server/templates"
)

//go:embed all:static
var staticFS embed.FS

func NewServer(
	serviceName string,
	staticDir string,
	backend *onboarding.Client,
	trips db.TripStore,
	voyages db.VoyageStore,
) *Server {
	return &Server{
		logger:      slog.Default().WithGroup("http"),
		serviceName: serviceName,
		staticDir:   staticDir,
		backend:     backend,
		trips:       trips,
		voyages:     voyages,
	}
}

type Server struct {
	serviceName string
	staticDir   string
	logger      *slog.Logger
	backend     *onboarding.Client
	trips       db.TripStore
	voyages     db.VoyageStore
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mux := gin.New()
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	middlewares := []gin.HandlerFunc{
		sloggin.NewWithConfig(s.logger,
			sloggin.Config{
				DefaultLevel:     slog.LevelInfo,
				ClientErrorLevel: slog.LevelWarn,
				ServerErrorLevel: slog.LevelError,
			},
		),
		gin.Recovery(), cors.Default(), otelgin.Middleware(s.serviceName), slogAddTraceAttributes,
	}

	username := "admin"
	if v, ok := os.LookupEnv("NEXTRIP_ADMIN"); ok {
		username = v
	}

	password := "admin"
	if v, ok := os.LookupEnv("NEXTRIP_PASSWORD"); ok {
		password = v
	}

	adminArea := mux.Group("/admin")
	adminArea.Use(append(middlewares, gin.BasicAuth(gin.Accounts{
		username: password,
	}))...)

	var staticDir fs.FS
	var err error
	switch {
	case s.staticDir != "":
		staticDir = os.DirFS(s.staticDir)
	default:
		staticDir, err = fs.Sub(staticFS, "static")
		if err != nil {
			panic(err)
		}
	}

	mux.StaticFS("/static", http.FS(fs.FS(staticDir)))

	mux.Use(middlewares...)
	tripHandler := templates.NewTripHandler(s.backend, s.trips, s.voyages)
	mux.GET("/", tripHandler.RenderPlanForm)
	mux.GET("/plan", tripHandler.RenderPlanForm)
	mux.POST("/plan/submit", tripHandler.SubmitPlan)
	mux.POST("/plan/dynamic", tripHandler.SubmitDynamicStep)

	tripArea := mux.Group("/trip/:uuid")
	tripArea.Use(tripExists(s.trips))
	tripArea.GET("", tripHandler.RenderTrip)
	tripArea.GET("/graph", tripHandler.RenderGraph)
	tripArea.GET("/node/:nodeid", tripHandler.RenderNodeDetail)

	adminArea.GET("/", tripHandler.RenderAdminOverview)

	mux.NoRoute(notFound)

	mux.ServeHTTP(w, r)
}

func tripExists(db db.TripStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "Middleware.tripExists")
		defer span.End()

		id, err := uuid.Parse(c.Param("uuid"))
		if err != nil {
			span.RecordError(err)
			notFound(c)
			c.Abort()
			return
		}
		if _, err := db.GetTripByID(ctx, id); err != nil {
			span.RecordError(err)
			notFound(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"code": "PAGE_NOT_FOUND", "message": "Page not found"})
}

func slogAddTraceAttributes(c *gin.Context) {
	sloggin.AddCustomAttributes(c,
		slog.String("trace-id", trace.SpanFromContext(c.Request.Context()).SpanContext().TraceID().String()),
	)
	sloggin.AddCustomAttributes(c,
		slog.String("span-id", trace.SpanFromContext(c.Request.Context()).SpanContext().SpanID().String()),
	)
	c.Next()
}
