package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/database"
	"github.com/foodgram/backend/internal/models"
	"gorm.io/gorm"
)

// Loads the ingredient and tag catalog from JSON fixtures. Existing rows
// (matched by name or slug) are left alone, so the command is rerunnable.
func main() {
	ingredientsPath := flag.String("ingredients", "fixtures/ingredients.json", "path to ingredients fixture")
	tagsPath := flag.String("tags", "fixtures/tags.json", "path to tags fixture")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := seedIngredients(db, *ingredientsPath); err != nil {
		log.Fatalf("Failed to seed ingredients: %v", err)
	}
	if err := seedTags(db, *tagsPath); err != nil {
		log.Fatalf("Failed to seed tags: %v", err)
	}

	log.Println("Catalog seeded")
}

func seedIngredients(db *gorm.DB, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var entries []struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}

	for _, e := range entries {
		ingredient := models.Ingredient{Name: e.Name, MeasurementUnit: e.MeasurementUnit}
		if err := db.Where("name = ? AND measurement_unit = ?", e.Name, e.MeasurementUnit).
			FirstOrCreate(&ingredient).Error; err != nil {
			return err
		}
	}
	log.Printf("Loaded %d ingredients", len(entries))
	return nil
}

func seedTags(db *gorm.DB, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var entries []struct {
		Name  string `json:"name"`
		Color string `json:"color"`
		Slug  string `json:"slug"`
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}

	for _, e := range entries {
		tag := models.Tag{Name: e.Name, Color: e.Color, Slug: e.Slug}
		if err := db.Where("slug = ?", e.Slug).FirstOrCreate(&tag).Error; err != nil {
			return err
		}
	}
	log.Printf("Loaded %d tags", len(entries))
	return nil
}
