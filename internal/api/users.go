package api

import (
	"errors"
	"net/http"

	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/pagination"
	"github.com/foodgram/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserHandler struct {
	db      *gorm.DB
	follows *service.FollowService
	auth    *service.AuthService
}

func NewUserHandler(db *gorm.DB, follows *service.FollowService, auth *service.AuthService) *UserHandler {
	return &UserHandler{
		db:      db,
		follows: follows,
		auth:    auth,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("", middleware.OptionalAuthMiddleware(h.auth), h.ListUsers)
		users.GET("/me", middleware.AuthMiddleware(h.auth), h.Me)
		users.GET("/subscriptions", middleware.AuthMiddleware(h.auth), h.Subscriptions)
		users.GET("/:id", middleware.OptionalAuthMiddleware(h.auth), h.GetUser)
		users.POST("/:id/subscribe", middleware.AuthMiddleware(h.auth), h.Subscribe)
		users.DELETE("/:id/subscribe", middleware.AuthMiddleware(h.auth), h.Unsubscribe)
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	params := pagination.FromValues(queryInt(c, "page", 1), queryInt(c, "limit", pagination.DefaultLimit))

	var count int64
	if err := h.db.Model(&models.User{}).Count(&count).Error; err != nil {
		respondError(c, err)
		return
	}

	var users []models.User
	if err := h.db.Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&users).Error; err != nil {
		respondError(c, err)
		return
	}

	ids := make([]uuid.UUID, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	subscribed, err := h.follows.IsSubscribedSet(c.Request.Context(), optionalUserID(c), ids)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]UserResponse, len(users))
	for i, u := range users {
		results[i] = newUserResponse(u, subscribed[u.ID])
	}
	c.JSON(http.StatusOK, pagination.NewEnvelope(count, results))
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, _ := currentUserID(c)

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user, false))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		respondError(c, err)
		return
	}

	subscribed, err := h.follows.IsSubscribedSet(c.Request.Context(), optionalUserID(c), []uuid.UUID{user.ID})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user, subscribed[user.ID]))
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	actorID, _ := currentUserID(c)
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	profile, err := h.follows.Subscribe(c.Request.Context(), actorID, authorID, queryInt(c, "recipes_limit", 0))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newFollowResponse(*profile))
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	actorID, _ := currentUserID(c)
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.follows.Unsubscribe(c.Request.Context(), actorID, authorID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Subscriptions(c *gin.Context) {
	actorID, _ := currentUserID(c)
	params := pagination.FromValues(queryInt(c, "page", 1), queryInt(c, "limit", pagination.DefaultLimit))

	profiles, count, err := h.follows.Subscriptions(
		c.Request.Context(), actorID,
		params.Offset(), params.Limit,
		queryInt(c, "recipes_limit", 0),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]FollowResponse, len(profiles))
	for i, p := range profiles {
		results[i] = newFollowResponse(p)
	}
	c.JSON(http.StatusOK, pagination.NewEnvelope(count, results))
}
