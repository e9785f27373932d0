package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/foodgram/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShoppingListHeader keeps the original export format byte-for-byte,
// including its leading Latin "C".
const ShoppingListHeader = "Cписок покупок:"

// PurchaseItem is one aggregated line of the shopping list.
type PurchaseItem struct {
	Name            string
	TotalAmount     int
	MeasurementUnit string
}

// ShoppingListService aggregates the ingredient amounts across every recipe
// in a user's cart into a consolidated purchase list.
type ShoppingListService struct {
	db *gorm.DB
}

func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{db: db}
}

// Purchases groups the cart's join rows by ingredient identity and sums the
// amounts. Grouping is strictly by ingredient id; the unit is an attribute
// of that identity, so no reconciliation across units is needed. Name order
// is for stable output only; the list is unordered by contract.
func (s *ShoppingListService) Purchases(ctx context.Context, userID uuid.UUID) ([]PurchaseItem, error) {
	var items []PurchaseItem
	err := s.db.WithContext(ctx).
		Model(&models.RecipeIngredient{}).
		Select("ingredients.name AS name, SUM(recipe_ingredients.amount) AS total_amount, ingredients.measurement_unit AS measurement_unit").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.id, ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Render produces the downloadable plain-text body: a fixed header line
// followed by one line per aggregated ingredient. An empty cart yields the
// header only.
func (s *ShoppingListService) Render(items []PurchaseItem) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%s - %d %s.", item.Name, item.TotalAmount, item.MeasurementUnit)
	}
	return ShoppingListHeader + "\n" + strings.Join(lines, "\n")
}
