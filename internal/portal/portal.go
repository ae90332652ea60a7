package portal

import (
	"log/slog"
	"net/http"
	"os"

	sloghttp "github.com/samber/slog-http"

	"github.com/nextrip/core/internal/auth"
	templates "github.com/nextrip/core/internal/portal/tmp"
)

type Portal struct {
	logger  *slog.Logger
	address string
	routes  map[string]http.Handler
	//NOTE: just temporary until templ implementation
	templates templates.TemplateHandler
	auth      *auth.Service
}

func NewPortal(
	logger *slog.Logger,
	address string,
	templates templates.TemplateHandler,
	authService *auth.Service,
) *Portal {
	return &Portal{
		logger:    logger,
		address:   address,
		templates: templates,
		auth:      authService,
	}
}

func (p *Portal) ServeHTTP() {
	mux := http.NewServeMux()

	loggerMW := sloghttp.NewWithConfig(
		p.logger, sloghttp.Config{
			DefaultLevel:     slog.LevelInfo,
			ClientErrorLevel: slog.LevelWarn,
			ServerErrorLevel: slog.LevelError,
			WithUserAgent:    true,
		},
	)

	p.routes = p.addRoutes()
	registerRoutes(mux, p.routes)

	portal := &http.Server{
		Addr:    p.address,
		Handler: loggerMW(mux),
	}

	p.logger.Info("listening on", "address", p.address)
	if err := portal.ListenAndServe(); err != nil {
		p.logger.Error("failed to run server", "error", err)
		os.Exit(1)
	}
}
