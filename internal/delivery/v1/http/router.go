package http

import (
	"fmt"
	"net/http"

	_ "github.com/DRSN-tech/marketplace/docs" // Импорт описания swagger
	"github.com/DRSN-tech/marketplace/internal/usecase"
	"github.com/DRSN-tech/marketplace/pkg/e"
	"github.com/DRSN-tech/marketplace/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// RouterOptions — параметры маршрутизатора, не относящиеся к бизнес-логике.
type RouterOptions struct {
	SwaggerHost   string
	MaxUploadSize int64
}

type Router struct {
	router *chi.Mux
	logger logger.Logger
	opts   RouterOptions
}

func NewRouter(router *chi.Mux, logger logger.Logger, opts RouterOptions) *Router {
	return &Router{router: router, logger: logger, opts: opts}
}

func (r *Router) Init(authUC usecase.AuthUC, catalogUC usecase.CatalogUC, orderUC usecase.OrderUC) {
	r.router.Use(
		middleware.RequestID,
		middleware.RealIP,
		RequestLogger(r.logger),
		middleware.Recoverer,
		middleware.StripSlashes,
	)

	r.router.NotFound(func(w http.ResponseWriter, req *http.Request) {
		WriteError(w, e.New(e.ErrNotFound, "route not found"))
	})
	r.router.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		WriteError(w, e.ErrMethodNotSupported)
	})

	if r.opts.SwaggerHost != "" {
		r.router.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL(fmt.Sprintf("http://%s/swagger/doc.json", r.opts.SwaggerHost)), // ссылка на JSON
		))
	}

	requireAuth := RequireAuth(authUC, r.logger)

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerAuthRoutes(v1, NewAuthHandler(authUC, r.logger), requireAuth)
		registerCategoryRoutes(v1, NewCategoryHandler(catalogUC, r.logger), requireAuth)
		registerProductRoutes(v1, NewProductHandler(catalogUC, r.logger, r.opts.MaxUploadSize), requireAuth)
		registerOrderRoutes(v1, NewOrderHandler(orderUC, r.logger), requireAuth)
	})
}

type authMiddleware = func(http.Handler) http.Handler

func registerAuthRoutes(router chi.Router, h *AuthHandler, requireAuth authMiddleware) {
	router.Post("/register", h.register)
	router.Post("/login", h.login)
	router.Post("/token/refresh", h.refresh)

	router.Group(func(private chi.Router) {
		private.Use(requireAuth)
		private.Post("/logout", h.logout)
		private.Get("/users/me", h.me)
	})
}

func registerCategoryRoutes(router chi.Router, h *CategoryHandler, requireAuth authMiddleware) {
	router.Route("/categories", func(c chi.Router) {
		c.Get("/", h.listCategories)
		c.With(requireAuth).Post("/", h.createCategory)
	})
}

func registerProductRoutes(router chi.Router, h *ProductHandler, requireAuth authMiddleware) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", h.listProducts)
		pr.Get("/{id}", h.getProduct)
		pr.Get("/{id}/asset", h.downloadAsset)

		pr.Group(func(private chi.Router) {
			private.Use(requireAuth)
			private.Post("/", h.createProduct)
			private.Put("/{id}", h.updateProduct)
			private.Patch("/{id}", h.updateProduct)
			private.Delete("/{id}", h.deleteProduct)
			private.Put("/{id}/asset", h.uploadAsset)
		})
	})
}

func registerOrderRoutes(router chi.Router, h *OrderHandler, requireAuth authMiddleware) {
	router.Route("/orders", func(o chi.Router) {
		o.Use(requireAuth)
		o.Post("/", h.placeOrder)
		o.Get("/user", h.listMyOrders)
		o.Get("/{id}", h.getOrder)
	})
}
