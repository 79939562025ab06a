package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/storecatalog/pkg/app"
	"github.com/ghuser/storecatalog/pkg/auth"
	"github.com/ghuser/storecatalog/pkg/httpx"
	"github.com/ghuser/storecatalog/services/catalog/application/handlers"
	appsvcs "github.com/ghuser/storecatalog/services/catalog/application/services"
)

// CatalogRoutes registers the catalog, AI and auth endpoints on the provided
// chi router. Mount it under /api.
func CatalogRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)

	r.Route("/auth", func(r chi.Router) {
		r.Use(httpx.APITimeout())
		r.Post("/login", auth.LoginHandler(a.SessionStore, a.Users, a.Logger))
		r.Post("/logout", auth.LogoutHandler(a.SessionStore, a.Logger))
	})

	r.Group(func(r chi.Router) {
		r.Use(httpx.APITimeout())
		r.Use(auth.RequireAuth(a.SessionStore, a.Users, a.Logger))
		Mount(r, svcs)
	})
}

// Mount registers the authenticated item and AI endpoints. Callers supply
// authentication middleware.
func Mount(r chi.Router, svcs *appsvcs.Services) {
	r.Route("/items", func(r chi.Router) {
		r.Get("/", handlers.NewListItemsHandler(svcs).Execute)
		r.Post("/", handlers.NewPostItemHandler(svcs).Execute)
		r.Get("/search", handlers.NewSearchItemsHandler(svcs).Execute)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handlers.NewGetItemHandler(svcs).Execute)
			r.Patch("/", handlers.NewPatchItemHandler(svcs).Execute)
			r.Delete("/", handlers.NewDeleteItemHandler(svcs).Execute)
			r.Put("/price", handlers.NewPutItemPriceHandler(svcs).Execute)
		})
	})
	r.Route("/ai", func(r chi.Router) {
		r.Post("/items", handlers.NewPostAIItemHandler(svcs).Execute)
		r.Get("/items/{id}", handlers.NewGetAIItemHandler(svcs).Execute)
		r.Post("/generate", handlers.NewPostAIGenerateHandler(svcs).Execute)
	})
}
