package testhelpers

import (
	"fmt"
	"testing"

	"github.com/foodgram/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser inserts a user with a deterministic email/username derived
// from the given handle.
func CreateUser(t *testing.T, db *gorm.DB, handle string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Email:        fmt.Sprintf("%s@example.com", handle),
		Username:     handle,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %q: %v", handle, err)
	}
	return user
}

func CreateTag(t *testing.T, db *gorm.DB, name, color, slug string) models.Tag {
	t.Helper()

	tag := models.Tag{Name: name, Color: color, Slug: slug}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("failed to create tag %q: %v", name, err)
	}
	return tag
}

func CreateIngredient(t *testing.T, db *gorm.DB, name, unit string) models.Ingredient {
	t.Helper()

	ingredient := models.Ingredient{Name: name, MeasurementUnit: unit}
	if err := db.Create(&ingredient).Error; err != nil {
		t.Fatalf("failed to create ingredient %q: %v", name, err)
	}
	return ingredient
}
