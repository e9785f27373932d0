package api

import (
	"context"
	"net/http"

	"github.com/foodgram/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// shapeRecipes turns loaded recipes into full projections with the
// per-caller booleans resolved in two batched lookups. Anonymous callers
// get all-false flags.
func (h *RecipeHandler) shapeRecipes(c *gin.Context, recipes []models.Recipe) ([]RecipeResponse, error) {
	actor := optionalUserID(c)
	ctx := c.Request.Context()

	recipeIDs := make([]uuid.UUID, len(recipes))
	var authorIDs []uuid.UUID
	for i, r := range recipes {
		recipeIDs[i] = r.ID
		if r.AuthorID != nil {
			authorIDs = append(authorIDs, *r.AuthorID)
		}
	}

	favorited, inCart, err := h.recipes.RelationFlags(ctx, actor, recipeIDs)
	if err != nil {
		return nil, err
	}
	subscribed, err := h.follows.IsSubscribedSet(ctx, actor, authorIDs)
	if err != nil {
		return nil, err
	}

	results := make([]RecipeResponse, len(recipes))
	for i, r := range recipes {
		authorSubscribed := false
		if r.AuthorID != nil {
			authorSubscribed = subscribed[*r.AuthorID]
		}
		results[i] = newRecipeResponse(r, favorited[r.ID], inCart[r.ID], authorSubscribed)
	}
	return results, nil
}

// addRelation runs one membership add and answers with the lightweight
// recipe projection on success.
func (h *RecipeHandler) addRelation(c *gin.Context, add func(context.Context, uuid.UUID, uuid.UUID) (*models.Recipe, error)) {
	actorID, _ := currentUserID(c)
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := add(c.Request.Context(), actorID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newRecipeShortResponse(*recipe))
}

func (h *RecipeHandler) removeRelation(c *gin.Context, remove func(context.Context, uuid.UUID, uuid.UUID) error) {
	actorID, _ := currentUserID(c)
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := remove(c.Request.Context(), actorID, recipeID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
