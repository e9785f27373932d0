package service

import (
	"context"
	"testing"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/testhelpers"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func relationTestEnv(t *testing.T) (*RelationService, uuid.UUID, *models.Recipe) {
	t.Helper()
	db := testhelpers.OpenTestDB(t)
	recipes := NewRecipeService(db, nil)
	user := testhelpers.CreateUser(t, db, "reader")
	author := testhelpers.CreateUser(t, db, "cook")
	tag := testhelpers.CreateTag(t, db, "Lunch", "#49B64E", "lunch")
	flour := testhelpers.CreateIngredient(t, db, "Flour", "g")

	recipe, err := recipes.Create(context.Background(), author.ID, RecipeInput{
		Name:        "Bread",
		Text:        "Bake it.",
		CookingTime: 60,
		TagIDs:      []uuid.UUID{tag.ID},
		Ingredients: []IngredientAmount{{ID: flour.ID, Amount: 500}},
	})
	require.NoError(t, err)

	return NewRelationService(db), user.ID, recipe
}

func TestAddFavoriteIsIdempotentlyRejected(t *testing.T) {
	svc, userID, recipe := relationTestEnv(t)

	got, err := svc.AddFavorite(context.Background(), userID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, got.ID)

	_, err = svc.AddFavorite(context.Background(), userID, recipe.ID)
	assert.ErrorIs(t, err, ErrAlreadyFavorited)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRemoveFavoriteNotFound(t *testing.T) {
	svc, userID, recipe := relationTestEnv(t)

	err := svc.RemoveFavorite(context.Background(), userID, recipe.ID)
	assert.ErrorIs(t, err, ErrRelationNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFavoriteRoundTrip(t *testing.T) {
	svc, userID, recipe := relationTestEnv(t)

	_, err := svc.AddFavorite(context.Background(), userID, recipe.ID)
	require.NoError(t, err)
	require.NoError(t, svc.RemoveFavorite(context.Background(), userID, recipe.ID))

	// The second removal has nothing left to delete.
	err = svc.RemoveFavorite(context.Background(), userID, recipe.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddToCartConflictAndMissingRecipe(t *testing.T) {
	svc, userID, recipe := relationTestEnv(t)

	_, err := svc.AddToCart(context.Background(), userID, recipe.ID)
	require.NoError(t, err)

	_, err = svc.AddToCart(context.Background(), userID, recipe.ID)
	assert.ErrorIs(t, err, ErrAlreadyInCart)

	_, err = svc.AddToCart(context.Background(), userID, uuid.New())
	assert.ErrorIs(t, err, ErrRecipeNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFavoriteAndCartAreIndependent(t *testing.T) {
	svc, userID, recipe := relationTestEnv(t)

	_, err := svc.AddFavorite(context.Background(), userID, recipe.ID)
	require.NoError(t, err)

	// Favoriting does not place the recipe in the cart.
	err = svc.RemoveFromCart(context.Background(), userID, recipe.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
