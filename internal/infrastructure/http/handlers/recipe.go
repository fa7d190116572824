package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	domainrecipe "github.com/larderai/pantry/internal/domain/recipe"
	"github.com/larderai/pantry/internal/ports/inbound"
	apperrors "github.com/larderai/pantry/pkg/errors"
)

// RecipeHandlers serves GET/POST/DELETE /recipes and GET /cuisines.
type RecipeHandlers struct {
	recipes inbound.RecipeService
	logger  *zap.Logger
}

func NewRecipeHandlers(recipes inbound.RecipeService, logger *zap.Logger) *RecipeHandlers {
	return &RecipeHandlers{recipes: recipes, logger: logger}
}

// recipeDTO is the wire shape of one recipe (spec.md §6).
type recipeDTO struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Seasonings   []string `json:"seasonings"`
	CuisineType  string   `json:"cuisineType,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	ImageURL     string   `json:"imageUrl,omitempty"`
}

func toRecipeDTO(r *domainrecipe.Recipe) recipeDTO {
	return recipeDTO{
		Name:         r.Name,
		Ingredients:  r.Ingredients,
		Seasonings:   r.Seasonings,
		CuisineType:  string(r.Cuisine),
		Instructions: r.Instructions,
		ImageURL:     r.ImageRef,
	}
}

// ListRecipes handles GET /recipes.
func (h *RecipeHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	byCuisine, err := h.recipes.ListByCuisine(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	out := make(map[string][]recipeDTO, len(byCuisine))
	for cuisine, recipes := range byCuisine {
		dtos := make([]recipeDTO, len(recipes))
		for i, rc := range recipes {
			dtos[i] = toRecipeDTO(rc)
		}
		out[string(cuisine)] = dtos
	}
	writeOK(w, h.logger, out)
}

// GetRecipe handles GET /recipes/{name}.
func (h *RecipeHandlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	rc, err := h.recipes.GetRecipe(r.Context(), name)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, h.logger, toRecipeDTO(rc))
}

type createRecipeRequest struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Seasonings   []string `json:"seasonings"`
	CuisineType  string   `json:"cuisineType"`
	Instructions string   `json:"instructions"`
	ImageURL     string   `json:"imageUrl"`
}

// CreateRecipe handles POST /recipes.
func (h *RecipeHandlers) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req createRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperrors.NewInvalidArgument("malformed request body"))
		return
	}

	rc, err := h.recipes.AddRecipe(r.Context(), inbound.RecipeInput{
		Name:         req.Name,
		Ingredients:  req.Ingredients,
		Seasonings:   req.Seasonings,
		CuisineType:  req.CuisineType,
		Instructions: req.Instructions,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeCreated(w, h.logger, toRecipeDTO(rc))
}

// DeleteRecipe handles DELETE /recipes/{name}.
func (h *RecipeHandlers) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.recipes.DeleteRecipe(r.Context(), name); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeOK(w, h.logger, nil)
}

// Cuisines handles GET /cuisines.
func (h *RecipeHandlers) Cuisines(w http.ResponseWriter, r *http.Request) {
	all := domainrecipe.AllCuisines()
	type cuisineDTO struct {
		Name        string `json:"name"`
		DisplayName string `json:"displayName"`
	}
	out := make([]cuisineDTO, len(all))
	for i, c := range all {
		out[i] = cuisineDTO{Name: string(c), DisplayName: c.DisplayName()}
	}
	writeOK(w, h.logger, out)
}
