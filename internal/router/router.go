package router

import (
	"net/http"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/api"
	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Setup wires services, handlers and middleware into the gin engine.
// redisClient and storage may be nil; rate limiting and S3 uploads are
// simply disabled then.
func Setup(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3Config *config.S3Config) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authService := service.NewAuthService(db, cfg.JWTSecret)
	catalogService := service.NewCatalogService(db)
	relationService := service.NewRelationService(db)
	followService := service.NewFollowService(db)
	shoppingService := service.NewShoppingListService(db)

	var storage service.ImageStorage
	if s3Config != nil {
		storage = service.NewS3ImageStorage(s3Config)
	}
	recipeService := service.NewRecipeService(db, storage)

	var createLimiter, modifyLimiter *middleware.RateLimiter
	if redisClient != nil {
		createLimiter = middleware.NewRecipeCreationRateLimiter(redisClient)
		modifyLimiter = middleware.NewRecipeModificationRateLimiter(redisClient)
	}

	v1 := router.Group("/api/v1")
	{
		api.NewAuthHandler(authService).RegisterRoutes(v1)
		api.NewUserHandler(db, followService, authService).RegisterRoutes(v1)
		api.NewCatalogHandler(catalogService).RegisterRoutes(v1)
		api.NewRecipeHandler(
			recipeService, relationService, shoppingService, followService,
			authService, cfg.ShoppingListFilename,
			createLimiter, modifyLimiter,
		).RegisterRoutes(v1)
	}

	return router
}
