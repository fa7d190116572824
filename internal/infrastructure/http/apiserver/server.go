// Package apiserver provides the pure JSON API HTTP server: no templates,
// no frontend, just the chi-routed REST surface spec.md §6 names.
package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/larderai/pantry/internal/infrastructure/config"
	"github.com/larderai/pantry/internal/infrastructure/http/handlers"
	"github.com/larderai/pantry/internal/infrastructure/http/middleware"
	"github.com/larderai/pantry/internal/ports/inbound"
)

// Server is the headless JSON API server.
type Server struct {
	config *config.Config
	logger *zap.Logger
	router *chi.Mux
	server *http.Server
}

// NewServer wires every inbound service into its route group.
func NewServer(
	cfg *config.Config,
	log *zap.Logger,
	recipes inbound.RecipeService,
	pantrySvc inbound.PantryService,
	cookability inbound.CookabilityService,
	search inbound.SearchService,
	substitution inbound.SubstitutionService,
	ingredients inbound.IngredientService,
) *Server {
	s := &Server{config: cfg, logger: log}
	s.router = s.setupRoutes(recipes, pantrySvc, cookability, search, substitution, ingredients)
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

func (s *Server) setupRoutes(
	recipes inbound.RecipeService,
	pantrySvc inbound.PantryService,
	cookability inbound.CookabilityService,
	search inbound.SearchService,
	substitution inbound.SubstitutionService,
	ingredients inbound.IngredientService,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS())
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(middleware.JSONOnly())

	health := handlers.NewHealthHandlers(s.logger)
	r.Get("/health", health.Health)

	recipeH := handlers.NewRecipeHandlers(recipes, s.logger)
	pantryH := handlers.NewPantryHandlers(pantrySvc, s.logger)
	cookabilityH := handlers.NewCookabilityHandlers(cookability, s.logger)
	searchH := handlers.NewSearchHandlers(search, s.logger)
	substitutionH := handlers.NewSubstitutionHandlers(substitution, s.logger)
	ingredientH := handlers.NewIngredientHandlers(ingredients, s.logger)

	// Every documented endpoint lives under /api (spec.md §6).
	r.Route("/api", func(r chi.Router) {
		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", recipeH.ListRecipes)
			r.Post("/", recipeH.CreateRecipe)
			r.Get("/search", searchH.SimpleSearch)
			r.Post("/hybrid-search", searchH.HybridSearch)
			r.Get("/almost-cookable", cookabilityH.AlmostCookable)
			r.Get("/{name}", recipeH.GetRecipe)
			r.Delete("/{name}", recipeH.DeleteRecipe)
			r.Get("/{name}/missing", substitutionH.Missing)
			r.Get("/{name}/substitutions", substitutionH.Substitutions)
		})

		r.Get("/cuisines", recipeH.Cuisines)

		r.Route("/fridge", func(r chi.Router) {
			r.Get("/", pantryH.List)
			r.Put("/", pantryH.ReplaceAll)
			r.Put("/order", pantryH.Reorder)
			r.Post("/{item}", pantryH.Add)
			r.Put("/{item}", pantryH.SetCount)
			r.Delete("/{item}", pantryH.Remove)
		})

		r.Route("/generate", func(r chi.Router) {
			r.Get("/", cookabilityH.Made)
			r.Post("/", cookabilityH.Simulate)
		})

		r.Route("/search", func(r chi.Router) {
			r.Post("/index-all", searchH.IndexAll)
			r.Get("/stats", searchH.Stats)
		})

		r.Route("/ingredients", func(r chi.Router) {
			r.Post("/seed-aliases", ingredientH.SeedCommonAliases)
			r.Get("/{name}/resolve", ingredientH.Resolve)
			r.Get("/{name}/aliases", ingredientH.Aliases)
			r.Post("/{name}/generate-aliases", ingredientH.GenerateAliases)
			r.Post("/{canonical}/aliases", ingredientH.AddAlias)
		})
	})

	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
