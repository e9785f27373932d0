package service

import (
	"context"
	"testing"

	"github.com/foodgram/backend/internal/testhelpers"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func cartRecipe(t *testing.T, db *gorm.DB, recipes *RecipeService, authorID uuid.UUID, tagID uuid.UUID, name string, amounts []IngredientAmount) uuid.UUID {
	t.Helper()
	recipe, err := recipes.Create(context.Background(), authorID, RecipeInput{
		Name:        name,
		Text:        "Cook it.",
		CookingTime: 30,
		TagIDs:      []uuid.UUID{tagID},
		Ingredients: amounts,
	})
	require.NoError(t, err)
	return recipe.ID
}

func TestPurchasesSumsAcrossRecipes(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	recipes := NewRecipeService(db, nil)
	relations := NewRelationService(db)
	svc := NewShoppingListService(db)

	user := testhelpers.CreateUser(t, db, "shopper")
	tag := testhelpers.CreateTag(t, db, "Dinner", "#8775D2", "dinner")
	flour := testhelpers.CreateIngredient(t, db, "Flour", "g")
	milk := testhelpers.CreateIngredient(t, db, "Milk", "ml")

	first := cartRecipe(t, db, recipes, user.ID, tag.ID, "Pancakes", []IngredientAmount{
		{ID: flour.ID, Amount: 200},
		{ID: milk.ID, Amount: 300},
	})
	second := cartRecipe(t, db, recipes, user.ID, tag.ID, "Bread", []IngredientAmount{
		{ID: flour.ID, Amount: 300},
	})

	_, err := relations.AddToCart(context.Background(), user.ID, first)
	require.NoError(t, err)
	_, err = relations.AddToCart(context.Background(), user.ID, second)
	require.NoError(t, err)

	items, err := svc.Purchases(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, PurchaseItem{Name: "Flour", TotalAmount: 500, MeasurementUnit: "g"}, items[0])
	assert.Equal(t, PurchaseItem{Name: "Milk", TotalAmount: 300, MeasurementUnit: "ml"}, items[1])
}

func TestPurchasesIgnoresOtherUsersCarts(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	recipes := NewRecipeService(db, nil)
	relations := NewRelationService(db)
	svc := NewShoppingListService(db)

	shopper := testhelpers.CreateUser(t, db, "shopper")
	other := testhelpers.CreateUser(t, db, "other")
	tag := testhelpers.CreateTag(t, db, "Lunch", "#49B64E", "lunch")
	flour := testhelpers.CreateIngredient(t, db, "Flour", "g")

	recipeID := cartRecipe(t, db, recipes, shopper.ID, tag.ID, "Bread", []IngredientAmount{
		{ID: flour.ID, Amount: 500},
	})
	_, err := relations.AddToCart(context.Background(), other.ID, recipeID)
	require.NoError(t, err)

	items, err := svc.Purchases(context.Background(), shopper.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRenderFormat(t *testing.T) {
	svc := NewShoppingListService(nil)

	body := svc.Render([]PurchaseItem{
		{Name: "Flour", TotalAmount: 500, MeasurementUnit: "g"},
		{Name: "Milk", TotalAmount: 300, MeasurementUnit: "ml"},
	})
	assert.Equal(t, ShoppingListHeader+"\nFlour - 500 g.\nMilk - 300 ml.", body)
}

func TestRenderEmptyCart(t *testing.T) {
	svc := NewShoppingListService(nil)
	assert.Equal(t, ShoppingListHeader+"\n", svc.Render(nil))
}
