package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/router"
	"github.com/foodgram/backend/internal/testhelpers"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:            "test-secret",
		AllowedOrigins:       []string{"http://localhost:5173"},
		ShoppingListFilename: "shopping_list.txt",
	}
	db := testhelpers.OpenTestDB(t)
	return router.Setup(cfg, db, nil, nil), db
}

// registerTestUser registers through the API and returns the issued token.
func registerTestUser(t *testing.T, engine *gin.Engine, handle string) string {
	t.Helper()

	w := doJSON(engine, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":      handle + "@example.com",
		"username":   handle,
		"first_name": "Test",
		"last_name":  "User",
		"password":   "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func doJSON(engine *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func seedCatalog(t *testing.T, db *gorm.DB) (models.Tag, models.Ingredient) {
	t.Helper()
	tag := testhelpers.CreateTag(t, db, "Breakfast", "#E26C2D", "breakfast")
	ingredient := testhelpers.CreateIngredient(t, db, "Flour", "g")
	return tag, ingredient
}

func recipePayload(tag models.Tag, ingredient models.Ingredient) gin.H {
	return gin.H{
		"name":         "Pancakes",
		"text":         "Mix and fry.",
		"cooking_time": 20,
		"tags":         []string{tag.ID.String()},
		"ingredients": []gin.H{
			{"id": ingredient.ID.String(), "amount": 200},
		},
	}
}

func createTestRecipe(t *testing.T, engine *gin.Engine, token string, tag models.Tag, ingredient models.Ingredient) string {
	t.Helper()

	w := doJSON(engine, http.MethodPost, "/api/v1/recipes", token, recipePayload(tag, ingredient))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

func relationPath(recipeID, relation string) string {
	return fmt.Sprintf("/api/v1/recipes/%s/%s", recipeID, relation)
}
