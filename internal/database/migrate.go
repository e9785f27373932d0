package database

import (
	"github.com/foodgram/backend/internal/models"
	"gorm.io/gorm"
)

// RunMigrations creates or updates the schema for every entity. Tables are
// migrated parents-first so foreign keys resolve.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Favorite{},
		&models.ShoppingCart{},
	)
}
