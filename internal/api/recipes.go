package api

import (
	"net/http"

	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/pagination"
	"github.com/foodgram/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RecipeHandler struct {
	recipes      *service.RecipeService
	relations    *service.RelationService
	shopping     *service.ShoppingListService
	follows      *service.FollowService
	auth         *service.AuthService
	listFilename string

	// Optional; nil when Redis is not configured.
	createLimiter *middleware.RateLimiter
	modifyLimiter *middleware.RateLimiter
}

func NewRecipeHandler(
	recipes *service.RecipeService,
	relations *service.RelationService,
	shopping *service.ShoppingListService,
	follows *service.FollowService,
	auth *service.AuthService,
	listFilename string,
	createLimiter, modifyLimiter *middleware.RateLimiter,
) *RecipeHandler {
	return &RecipeHandler{
		recipes:       recipes,
		relations:     relations,
		shopping:      shopping,
		follows:       follows,
		auth:          auth,
		listFilename:  listFilename,
		createLimiter: createLimiter,
		modifyLimiter: modifyLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	recipes := rg.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuthMiddleware(h.auth), h.ListRecipes)
		recipes.GET("/download_shopping_cart", middleware.AuthMiddleware(h.auth), h.DownloadShoppingCart)
		recipes.GET("/:id", middleware.OptionalAuthMiddleware(h.auth), h.GetRecipe)
		recipes.POST("", h.writeChain(h.createLimiter, h.CreateRecipe)...)
		recipes.PATCH("/:id", h.writeChain(h.modifyLimiter, h.UpdateRecipe)...)
		recipes.DELETE("/:id", middleware.AuthMiddleware(h.auth), h.DeleteRecipe)
		recipes.POST("/:id/favorite", middleware.AuthMiddleware(h.auth), h.AddFavorite)
		recipes.DELETE("/:id/favorite", middleware.AuthMiddleware(h.auth), h.RemoveFavorite)
		recipes.POST("/:id/shopping_cart", middleware.AuthMiddleware(h.auth), h.AddToCart)
		recipes.DELETE("/:id/shopping_cart", middleware.AuthMiddleware(h.auth), h.RemoveFromCart)
	}
}

func (h *RecipeHandler) writeChain(limiter *middleware.RateLimiter, handler gin.HandlerFunc) []gin.HandlerFunc {
	chain := []gin.HandlerFunc{middleware.AuthMiddleware(h.auth)}
	if limiter != nil {
		chain = append(chain, limiter.RateLimitMiddleware())
	}
	return append(chain, handler)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	actor := optionalUserID(c)
	params := pagination.FromValues(queryInt(c, "page", 1), queryInt(c, "limit", pagination.DefaultLimit))

	filter := service.ListFilter{
		TagSlugs:  c.QueryArray("tags"),
		Favorited: queryBool(c, "is_favorited"),
		InCart:    queryBool(c, "is_in_shopping_cart"),
		Actor:     actor,
	}
	if author := c.Query("author"); author != "" {
		authorID, err := uuid.Parse(author)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
			return
		}
		filter.AuthorID = &authorID
	}

	recipes, count, err := h.recipes.List(c.Request.Context(), filter, params.Offset(), params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	results, err := h.shapeRecipes(c, recipes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.NewEnvelope(count, results))
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	results, err := h.shapeRecipes(c, []models.Recipe{*recipe})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results[0])
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	actorID, _ := currentUserID(c)

	var input service.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), actorID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	results, err := h.shapeRecipes(c, []models.Recipe{*recipe})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, results[0])
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	actorID, _ := currentUserID(c)
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var input service.RecipeUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), actorID, recipeID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	results, err := h.shapeRecipes(c, []models.Recipe{*recipe})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results[0])
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	actorID, _ := currentUserID(c)
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), actorID, recipeID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	h.addRelation(c, h.relations.AddFavorite)
}

func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	h.removeRelation(c, h.relations.RemoveFavorite)
}

func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.addRelation(c, h.relations.AddToCart)
}

func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.removeRelation(c, h.relations.RemoveFromCart)
}

func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	actorID, _ := currentUserID(c)

	items, err := h.shopping.Purchases(c.Request.Context(), actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	body := h.shopping.Render(items)
	c.Header("Content-Disposition", "attachment; filename="+h.listFilename)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}
