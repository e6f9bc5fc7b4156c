package http

import (
	"context"
	"net/http"

	_ "github.com/DRSN-tech/catalog-admin/docs" // Регистрация swagger-документации
	"github.com/DRSN-tech/catalog-admin/internal/cfg"
	"github.com/DRSN-tech/catalog-admin/internal/usecase"
	"github.com/DRSN-tech/catalog-admin/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// RouterDeps — обработчики, которые монтирует Router. ImageUC и Health могут быть nil.
type RouterDeps struct {
	GraphQL      http.Handler
	GraphQLPath  string
	ImageUC      usecase.ImageUC
	MaxImageSize int64
	Health       func(ctx context.Context) error
}

type Router struct {
	router *chi.Mux
	cfg    *cfg.HTTPConfig
	logger logger.Logger
}

func NewRouter(router *chi.Mux, cfg *cfg.HTTPConfig, logger logger.Logger) *Router {
	return &Router{router: router, cfg: cfg, logger: logger}
}

func (r *Router) Init(deps RouterDeps) {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.RealIP)
	r.router.Use(middleware.Recoverer)

	if r.cfg.EnableCORS {
		r.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
			MaxAge:         300,
		}))
	}

	r.router.Get("/healthz", healthHandler(deps.Health, r.logger))

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.router.Get(deps.GraphQLPath, deps.GraphQL.ServeHTTP)
	r.router.Post(deps.GraphQLPath, deps.GraphQL.ServeHTTP)

	if deps.ImageUC == nil {
		return
	}

	imgHandler := NewImageHandler(deps.ImageUC, r.logger, deps.MaxImageSize)
	r.router.Get("/images/{key}", imgHandler.getImage)
	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerImageRoutes(v1, imgHandler)
	})
}

func registerImageRoutes(router chi.Router, h *ImageHandler) {
	router.Route("/images", func(img chi.Router) {
		img.Post("/", h.uploadImage)
		img.Delete("/{key}", h.deleteImage)
	})
}
