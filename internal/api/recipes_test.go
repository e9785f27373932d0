package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/foodgram/backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRecipeEndpoint(t *testing.T) {
	engine, db := setupTestRouter(t)
	token := registerTestUser(t, engine, "author")
	tag, ingredient := seedCatalog(t, db)

	w := doJSON(engine, http.MethodPost, "/api/v1/recipes", token, recipePayload(tag, ingredient))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Author struct {
			Username string `json:"username"`
		} `json:"author"`
		Tags []struct {
			Slug string `json:"slug"`
		} `json:"tags"`
		Ingredients []struct {
			Name            string `json:"name"`
			MeasurementUnit string `json:"measurement_unit"`
			Amount          int    `json:"amount"`
		} `json:"ingredients"`
		IsFavorited      bool `json:"is_favorited"`
		IsInShoppingCart bool `json:"is_in_shopping_cart"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Pancakes", resp.Name)
	assert.Equal(t, "author", resp.Author.Username)
	require.Len(t, resp.Tags, 1)
	assert.Equal(t, "breakfast", resp.Tags[0].Slug)
	require.Len(t, resp.Ingredients, 1)
	assert.Equal(t, "Flour", resp.Ingredients[0].Name)
	assert.Equal(t, "g", resp.Ingredients[0].MeasurementUnit)
	assert.Equal(t, 200, resp.Ingredients[0].Amount)
	assert.False(t, resp.IsFavorited)
	assert.False(t, resp.IsInShoppingCart)
}

func TestCreateRecipeRequiresAuth(t *testing.T) {
	engine, db := setupTestRouter(t)
	tag, ingredient := seedCatalog(t, db)

	w := doJSON(engine, http.MethodPost, "/api/v1/recipes", "", recipePayload(tag, ingredient))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateRecipeValidationMessage(t *testing.T) {
	engine, db := setupTestRouter(t)
	token := registerTestUser(t, engine, "author")
	_, ingredient := seedCatalog(t, db)

	w := doJSON(engine, http.MethodPost, "/api/v1/recipes", token, map[string]interface{}{
		"name":         "Pancakes",
		"text":         "Mix and fry.",
		"cooking_time": 20,
		"tags":         []string{},
		"ingredients": []map[string]interface{}{
			{"id": ingredient.ID.String(), "amount": 200},
		},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "must add a tag.", resp.Error)
}

func TestUpdateRecipeForbiddenForNonAuthor(t *testing.T) {
	engine, db := setupTestRouter(t)
	authorToken := registerTestUser(t, engine, "author")
	otherToken := registerTestUser(t, engine, "intruder")
	tag, ingredient := seedCatalog(t, db)

	recipeID := createTestRecipe(t, engine, authorToken, tag, ingredient)

	w := doJSON(engine, http.MethodPatch, "/api/v1/recipes/"+recipeID, otherToken, map[string]interface{}{
		"name": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(engine, http.MethodDelete, "/api/v1/recipes/"+recipeID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestFavoriteLifecycle(t *testing.T) {
	engine, db := setupTestRouter(t)
	token := registerTestUser(t, engine, "reader")
	tag, ingredient := seedCatalog(t, db)
	recipeID := createTestRecipe(t, engine, token, tag, ingredient)

	w := doJSON(engine, http.MethodPost, relationPath(recipeID, "favorite"), token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var short struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		CookingTime int    `json:"cooking_time"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &short))
	assert.Equal(t, recipeID, short.ID)
	assert.Equal(t, "Pancakes", short.Name)
	assert.Equal(t, 20, short.CookingTime)

	w = doJSON(engine, http.MethodPost, relationPath(recipeID, "favorite"), token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(engine, http.MethodDelete, relationPath(recipeID, "favorite"), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(engine, http.MethodDelete, relationPath(recipeID, "favorite"), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListRecipesAnonymous(t *testing.T) {
	engine, db := setupTestRouter(t)
	token := registerTestUser(t, engine, "author")
	tag, ingredient := seedCatalog(t, db)
	recipeID := createTestRecipe(t, engine, token, tag, ingredient)

	w := doJSON(engine, http.MethodPost, relationPath(recipeID, "favorite"), token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(engine, http.MethodGet, "/api/v1/recipes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count   int64 `json:"count"`
		Results []struct {
			ID          string `json:"id"`
			IsFavorited bool   `json:"is_favorited"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 1, resp.Count)
	require.Len(t, resp.Results, 1)
	// Relation flags stay false for anonymous callers.
	assert.False(t, resp.Results[0].IsFavorited)

	w = doJSON(engine, http.MethodGet, "/api/v1/recipes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.True(t, resp.Results[0].IsFavorited)
}

func TestDownloadShoppingCart(t *testing.T) {
	engine, db := setupTestRouter(t)
	token := registerTestUser(t, engine, "shopper")
	tag, ingredient := seedCatalog(t, db)
	recipeID := createTestRecipe(t, engine, token, tag, ingredient)

	w := doJSON(engine, http.MethodPost, relationPath(recipeID, "shopping_cart"), token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(engine, http.MethodGet, "/api/v1/recipes/download_shopping_cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "attachment; filename=shopping_list.txt", w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, service.ShoppingListHeader+"\nFlour - 200 g.", w.Body.String())
}

func TestGetRecipeNotFound(t *testing.T) {
	engine, _ := setupTestRouter(t)

	w := doJSON(engine, http.MethodGet, "/api/v1/recipes/5f8d7a2e-1111-4222-8333-444455556666", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(engine, http.MethodGet, "/api/v1/recipes/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
