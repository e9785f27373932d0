package service

import (
	"context"
	"errors"

	"github.com/foodgram/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RelationService toggles membership of a (user, recipe) pair in the
// Favorite and ShoppingCart sets. Both relations share one helper; only the
// row type and the conflict error differ.
type RelationService struct {
	db *gorm.DB
}

func NewRelationService(db *gorm.DB) *RelationService {
	return &RelationService{db: db}
}

func (s *RelationService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	return s.add(ctx, recipeID,
		&models.Favorite{UserID: userID, RecipeID: recipeID},
		ErrAlreadyFavorited)
}

func (s *RelationService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.remove(ctx, userID, recipeID, &models.Favorite{})
}

func (s *RelationService) AddToCart(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	return s.add(ctx, recipeID,
		&models.ShoppingCart{UserID: userID, RecipeID: recipeID},
		ErrAlreadyInCart)
}

func (s *RelationService) RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.remove(ctx, userID, recipeID, &models.ShoppingCart{})
}

// add inserts the membership row after checking the recipe exists. The
// composite unique index decides races: of two concurrent adds exactly one
// insert succeeds and the other maps to the conflict error.
func (s *RelationService) add(ctx context.Context, recipeID uuid.UUID, row interface{}, conflictErr error) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictErr
		}
		return nil, err
	}
	return &recipe, nil
}

func (s *RelationService) remove(ctx context.Context, userID, recipeID uuid.UUID, model interface{}) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRelationNotFound
	}
	return nil
}
