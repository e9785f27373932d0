package service

import (
	"context"
	"errors"

	"github.com/foodgram/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeService is the composition engine: it validates an author-supplied
// recipe payload and persists the recipe together with its tag links and
// ingredient join rows as one atomic unit.
type RecipeService struct {
	db      *gorm.DB
	storage ImageStorage
}

func NewRecipeService(db *gorm.DB, storage ImageStorage) *RecipeService {
	if storage == nil {
		storage = PassthroughStorage{}
	}
	return &RecipeService{
		db:      db,
		storage: storage,
	}
}

// IngredientAmount references a catalog ingredient with the amount used.
type IngredientAmount struct {
	ID     uuid.UUID `json:"id"`
	Amount int       `json:"amount"`
}

// RecipeInput is the create payload. The author never comes from the
// payload; it is passed in from the authenticated caller.
type RecipeInput struct {
	Name        string             `json:"name"`
	Text        string             `json:"text"`
	CookingTime int                `json:"cooking_time"`
	Image       string             `json:"image"`
	TagIDs      []uuid.UUID        `json:"tags"`
	Ingredients []IngredientAmount `json:"ingredients"`
}

// RecipeUpdate is the update payload. Nil slices mean "leave untouched";
// present slices fully replace the prior set.
type RecipeUpdate struct {
	Name        *string             `json:"name"`
	Text        *string             `json:"text"`
	CookingTime *int                `json:"cooking_time"`
	Image       *string             `json:"image"`
	TagIDs      *[]uuid.UUID        `json:"tags"`
	Ingredients *[]IngredientAmount `json:"ingredients"`
}

// validateComposition applies the composition rules in order, failing fast
// with a distinct message per rule.
func validateComposition(tagIDs []uuid.UUID, ingredients []IngredientAmount) error {
	if len(tagIDs) == 0 {
		return validationErr("must add a tag.")
	}
	if len(ingredients) == 0 {
		return validationErr("must add an ingredient.")
	}
	for _, ing := range ingredients {
		if ing.Amount <= 0 {
			return validationErr("amount must be greater than 0.")
		}
	}
	seen := make(map[uuid.UUID]struct{}, len(ingredients))
	for _, ing := range ingredients {
		if _, dup := seen[ing.ID]; dup {
			return validationErr("ingredients must be unique.")
		}
		seen[ing.ID] = struct{}{}
	}
	return nil
}

// Create validates and persists a recipe with its tag and ingredient
// composition in a single transaction.
func (s *RecipeService) Create(ctx context.Context, authorID uuid.UUID, input RecipeInput) (*models.Recipe, error) {
	if err := validateComposition(input.TagIDs, input.Ingredients); err != nil {
		return nil, err
	}

	if input.CookingTime < 1 {
		return nil, validationErr("cooking time must be at least 1.")
	}

	imageURL := input.Image
	if imageURL != "" {
		stored, err := s.storage.Store(ctx, imageURL)
		if err != nil {
			return nil, err
		}
		imageURL = stored
	}

	recipe := models.Recipe{
		AuthorID:    &authorID,
		Name:        input.Name,
		ImageURL:    imageURL,
		Text:        input.Text,
		CookingTime: input.CookingTime,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, input.TagIDs)
		if err != nil {
			return err
		}
		if err := resolveIngredients(tx, input.Ingredients); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(&recipe).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}
		return createIngredientRows(tx, recipe.ID, input.Ingredients)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, recipe.ID)
}

// Update applies a partial update. A tag or ingredient set present in the
// payload fully replaces the stored set. Only the author may update.
func (s *RecipeService) Update(ctx context.Context, actorID, recipeID uuid.UUID, input RecipeUpdate) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.AuthorID == nil || *recipe.AuthorID != actorID {
		return nil, ErrNotRecipeAuthor
	}

	if input.TagIDs != nil && len(*input.TagIDs) == 0 {
		return nil, validationErr("must add a tag.")
	}
	if input.Ingredients != nil {
		if len(*input.Ingredients) == 0 {
			return nil, validationErr("must add an ingredient.")
		}
		for _, ing := range *input.Ingredients {
			if ing.Amount <= 0 {
				return nil, validationErr("amount must be greater than 0.")
			}
		}
		seen := make(map[uuid.UUID]struct{}, len(*input.Ingredients))
		for _, ing := range *input.Ingredients {
			if _, dup := seen[ing.ID]; dup {
				return nil, validationErr("ingredients must be unique.")
			}
			seen[ing.ID] = struct{}{}
		}
	}
	if input.CookingTime != nil && *input.CookingTime < 1 {
		return nil, validationErr("cooking time must be at least 1.")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Text != nil {
			updates["text"] = *input.Text
		}
		if input.CookingTime != nil {
			updates["cooking_time"] = *input.CookingTime
		}
		if input.Image != nil && *input.Image != "" {
			stored, err := s.storage.Store(ctx, *input.Image)
			if err != nil {
				return err
			}
			updates["image_url"] = stored
		}
		if len(updates) > 0 {
			if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
				return err
			}
		}

		if input.TagIDs != nil {
			tags, err := resolveTags(tx, *input.TagIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&recipe).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}

		if input.Ingredients != nil {
			// Full replace: drop every prior join row, then insert the new set.
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
				return err
			}
			if err := resolveIngredients(tx, *input.Ingredients); err != nil {
				return err
			}
			if err := createIngredientRows(tx, recipe.ID, *input.Ingredients); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, recipeID)
}

func resolveTags(tx *gorm.DB, ids []uuid.UUID) ([]models.Tag, error) {
	var tags []models.Tag
	if err := tx.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, validationErr("tag does not exist.")
	}
	return tags, nil
}

func resolveIngredients(tx *gorm.DB, entries []IngredientAmount) error {
	ids := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	var count int64
	if err := tx.Model(&models.Ingredient{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return validationErr("ingredient does not exist.")
	}
	return nil
}

func createIngredientRows(tx *gorm.DB, recipeID uuid.UUID, entries []IngredientAmount) error {
	rows := make([]models.RecipeIngredient, len(entries))
	for i, e := range entries {
		rows[i] = models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: e.ID,
			Amount:       e.Amount,
		}
	}
	return tx.Create(&rows).Error
}

// Get loads a recipe with its full composition for read-shaping.
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Preload("Author").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// ListFilter restricts the recipe listing. Favorited and InCart apply only
// when Actor is set; anonymous callers get the unrestricted listing.
type ListFilter struct {
	TagSlugs  []string
	AuthorID  *uuid.UUID
	Favorited bool
	InCart    bool
	Actor     *uuid.UUID
}

// List returns recipes newest-first with the filter applied, plus the total
// count before pagination.
func (s *RecipeService) List(ctx context.Context, filter ListFilter, offset, limit int) ([]models.Recipe, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	if len(filter.TagSlugs) > 0 {
		// Any-match on tag slugs; a subquery keeps the row set free of
		// join duplicates so Count stays correct.
		tagged := s.db.Model(&models.Tag{}).
			Select("recipe_tags.recipe_id").
			Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
			Where("tags.slug IN ?", filter.TagSlugs)
		query = query.Where("recipes.id IN (?)", tagged)
	}
	if filter.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if filter.Actor != nil {
		if filter.Favorited {
			query = query.Joins(
				"JOIN favorites ON favorites.recipe_id = recipes.id AND favorites.user_id = ?",
				*filter.Actor,
			)
		}
		if filter.InCart {
			query = query.Joins(
				"JOIN shopping_carts ON shopping_carts.recipe_id = recipes.id AND shopping_carts.user_id = ?",
				*filter.Actor,
			)
		}
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var recipes []models.Recipe
	err := query.
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Preload("Author").
		Order("recipes.pub_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}
	return recipes, count, nil
}

// Delete removes a recipe and, through the cascade on the join rows, its
// ingredient composition. Only the author may delete.
func (s *RecipeService) Delete(ctx context.Context, actorID, recipeID uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	if recipe.AuthorID == nil || *recipe.AuthorID != actorID {
		return ErrNotRecipeAuthor
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.ShoppingCart{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}

// RelationFlags reports favorite/cart membership of the given recipes for
// one user. Anonymous callers get empty sets.
func (s *RecipeService) RelationFlags(ctx context.Context, userID *uuid.UUID, recipeIDs []uuid.UUID) (favorited, inCart map[uuid.UUID]bool, err error) {
	favorited = make(map[uuid.UUID]bool)
	inCart = make(map[uuid.UUID]bool)
	if userID == nil || len(recipeIDs) == 0 {
		return favorited, inCart, nil
	}

	var favIDs []uuid.UUID
	err = s.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id IN ?", *userID, recipeIDs).
		Pluck("recipe_id", &favIDs).Error
	if err != nil {
		return nil, nil, err
	}
	for _, id := range favIDs {
		favorited[id] = true
	}

	var cartIDs []uuid.UUID
	err = s.db.WithContext(ctx).Model(&models.ShoppingCart{}).
		Where("user_id = ? AND recipe_id IN ?", *userID, recipeIDs).
		Pluck("recipe_id", &cartIDs).Error
	if err != nil {
		return nil, nil, err
	}
	for _, id := range cartIDs {
		inCart[id] = true
	}
	return favorited, inCart, nil
}
