package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/basaam0/receipt-roundup/internal/handlers"
	"github.com/basaam0/receipt-roundup/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)

	rh := handlers.NewReceiptHandlers(deps)

	// Image serving stays outside the auth group: the recognition fetch
	// reads receipt images back through this route.
	r.Get("/serve-image", rh.ServeImage)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewMiddleware(deps.Firebase).FirebaseAuth)
		r.Mount("/", rh.ReceiptRoutes())
	})

	return r
}
