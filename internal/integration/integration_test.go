package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/router"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/testhelpers"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRecipeFlowAgainstPostgres runs the full register → create recipe →
// cart → download flow against a real PostgreSQL instance. Skipped when
// docker is unavailable.
func TestRecipeFlowAgainstPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}

	db := testhelpers.SetupPostgres(t)
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:            "integration-secret",
		AllowedOrigins:       []string{"http://localhost:5173"},
		ShoppingListFilename: "shopping_list.txt",
	}
	engine := router.Setup(cfg, db, nil, nil)

	do := func(method, path, token string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
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

	w := do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":      "chef@example.com",
		"username":   "chef",
		"first_name": "Head",
		"last_name":  "Chef",
		"password":   "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var reg struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))

	tag := testhelpers.CreateTag(t, db, "Dinner", "#8775D2", "dinner")
	flour := testhelpers.CreateIngredient(t, db, "Flour", "g")
	milk := testhelpers.CreateIngredient(t, db, "Milk", "ml")

	w = do(http.MethodPost, "/api/v1/recipes", reg.Token, gin.H{
		"name":         "Pancakes",
		"text":         "Mix and fry.",
		"cooking_time": 20,
		"tags":         []string{tag.ID.String()},
		"ingredients": []gin.H{
			{"id": flour.ID.String(), "amount": 200},
			{"id": milk.ID.String(), "amount": 300},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Race safety rests on the composite unique index: the second insert of
	// the same (user, recipe) pair must map to a conflict, in Postgres too.
	w = do(http.MethodPost, "/api/v1/recipes/"+created.ID+"/shopping_cart", reg.Token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = do(http.MethodPost, "/api/v1/recipes/"+created.ID+"/shopping_cart", reg.Token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(http.MethodGet, "/api/v1/recipes/download_shopping_cart", reg.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=shopping_list.txt", w.Header().Get("Content-Disposition"))
	assert.Equal(t, service.ShoppingListHeader+"\nFlour - 200 g.\nMilk - 300 ml.", w.Body.String())

	var joins int64
	require.NoError(t, db.Model(&models.RecipeIngredient{}).Count(&joins).Error)
	assert.EqualValues(t, 2, joins)
}
