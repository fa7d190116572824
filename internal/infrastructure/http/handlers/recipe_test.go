package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainrecipe "github.com/larderai/pantry/internal/domain/recipe"
	"github.com/larderai/pantry/internal/ports/inbound"
	apperrors "github.com/larderai/pantry/pkg/errors"
)

type fakeRecipeService struct {
	recipes   map[string]*domainrecipe.Recipe
	addErr    error
	deleteErr error
}

func (f *fakeRecipeService) AddRecipe(ctx context.Context, in inbound.RecipeInput) (*domainrecipe.Recipe, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	rc, err := domainrecipe.NewRecipe(in.Name, in.Ingredients, in.Seasonings, domainrecipe.CuisineType(in.CuisineType), in.Instructions, in.ImageURL)
	if err != nil {
		return nil, apperrors.NewInvalidArgument(err.Error())
	}
	if f.recipes == nil {
		f.recipes = map[string]*domainrecipe.Recipe{}
	}
	f.recipes[rc.Name] = rc
	return rc, nil
}

func (f *fakeRecipeService) DeleteRecipe(ctx context.Context, name string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.recipes[name]; !ok {
		return apperrors.NewNotFound("recipe")
	}
	delete(f.recipes, name)
	return nil
}

func (f *fakeRecipeService) GetRecipe(ctx context.Context, name string) (*domainrecipe.Recipe, error) {
	rc, ok := f.recipes[name]
	if !ok {
		return nil, apperrors.NewNotFound("recipe")
	}
	return rc, nil
}

func (f *fakeRecipeService) ListByCuisine(ctx context.Context) (map[domainrecipe.CuisineType][]*domainrecipe.Recipe, error) {
	out := map[domainrecipe.CuisineType][]*domainrecipe.Recipe{}
	for _, rc := range f.recipes {
		out[rc.Cuisine] = append(out[rc.Cuisine], rc)
	}
	return out, nil
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestRecipeHandlers_CreateRecipe_ReturnsCreated(t *testing.T) {
	svc := &fakeRecipeService{}
	h := NewRecipeHandlers(svc, zap.NewNop())

	body, _ := json.Marshal(createRecipeRequest{
		Name: "toast", Ingredients: []string{"bread"}, CuisineType: "AMERICAN", Instructions: "toast it",
	})
	req := httptest.NewRequest(http.MethodPost, "/recipes", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateRecipe(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
}

func TestRecipeHandlers_CreateRecipe_MalformedBodyReturns400(t *testing.T) {
	svc := &fakeRecipeService{}
	h := NewRecipeHandlers(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/recipes", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()

	h.CreateRecipe(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecipeHandlers_GetRecipe_MissingReturns404(t *testing.T) {
	svc := &fakeRecipeService{}
	h := NewRecipeHandlers(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/recipes/nonexistent", nil)
	req = withURLParam(req, "name", "nonexistent")
	rec := httptest.NewRecorder()

	h.GetRecipe(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecipeHandlers_GetRecipe_FoundReturnsDTO(t *testing.T) {
	rc, err := domainrecipe.NewRecipe("toast", []string{"bread"}, nil, domainrecipe.CuisineAmerican, "toast it", "")
	require.NoError(t, err)
	svc := &fakeRecipeService{recipes: map[string]*domainrecipe.Recipe{"toast": rc}}
	h := NewRecipeHandlers(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/recipes/toast", nil)
	req = withURLParam(req, "name", "toast")
	rec := httptest.NewRecorder()

	h.GetRecipe(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
}

func TestRecipeHandlers_DeleteRecipe_MissingReturns404(t *testing.T) {
	svc := &fakeRecipeService{}
	h := NewRecipeHandlers(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodDelete, "/recipes/nonexistent", nil)
	req = withURLParam(req, "name", "nonexistent")
	rec := httptest.NewRecorder()

	h.DeleteRecipe(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecipeHandlers_Cuisines_ListsAllWithDisplayNames(t *testing.T) {
	svc := &fakeRecipeService{}
	h := NewRecipeHandlers(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/cuisines", nil)
	rec := httptest.NewRecorder()

	h.Cuisines(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
}
