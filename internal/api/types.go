package api

import (
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/service"
)

// Response projections. Ingredient entries carry the catalog identifier with
// name and unit denormalized alongside the amount, so clients never need a
// second lookup.

type UserResponse struct {
	Email        string `json:"email"`
	ID           string `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

func newUserResponse(u models.User, subscribed bool) UserResponse {
	return UserResponse{
		Email:        u.Email,
		ID:           u.ID.String(),
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
}

// FollowResponse decorates the base user projection with the recipe preview
// and count; is_subscribed is fixed to true by construction.
type FollowResponse struct {
	UserResponse
	RecipesCount int64                 `json:"recipes_count"`
	Recipes      []RecipeShortResponse `json:"recipes"`
}

func newFollowResponse(p service.FollowProfile) FollowResponse {
	recipes := make([]RecipeShortResponse, len(p.Recipes))
	for i, r := range p.Recipes {
		recipes[i] = newRecipeShortResponse(r)
	}
	return FollowResponse{
		UserResponse: newUserResponse(p.User, p.IsSubscribed),
		RecipesCount: p.RecipesCount,
		Recipes:      recipes,
	}
}

// RecipeShortResponse is the lightweight projection returned by membership
// adds and subscription previews.
type RecipeShortResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

func newRecipeShortResponse(r models.Recipe) RecipeShortResponse {
	return RecipeShortResponse{
		ID:          r.ID.String(),
		Name:        r.Name,
		Image:       r.ImageURL,
		CookingTime: r.CookingTime,
	}
}

type TagResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

func newTagResponse(t models.Tag) TagResponse {
	return TagResponse{
		ID:    t.ID.String(),
		Name:  t.Name,
		Color: t.Color,
		Slug:  t.Slug,
	}
}

type IngredientResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func newIngredientResponse(i models.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:              i.ID.String(),
		Name:            i.Name,
		MeasurementUnit: i.MeasurementUnit,
	}
}

type RecipeIngredientResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type RecipeResponse struct {
	ID               string                     `json:"id"`
	Tags             []TagResponse              `json:"tags"`
	Author           *UserResponse              `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
}

func newRecipeResponse(r models.Recipe, favorited, inCart, authorSubscribed bool) RecipeResponse {
	tags := make([]TagResponse, len(r.Tags))
	for i, t := range r.Tags {
		tags[i] = newTagResponse(t)
	}

	ingredients := make([]RecipeIngredientResponse, len(r.Ingredients))
	for i, ri := range r.Ingredients {
		ingredients[i] = RecipeIngredientResponse{
			ID:              ri.IngredientID.String(),
			Name:            ri.Ingredient.Name,
			MeasurementUnit: ri.Ingredient.MeasurementUnit,
			Amount:          ri.Amount,
		}
	}

	var author *UserResponse
	if r.Author != nil {
		a := newUserResponse(*r.Author, authorSubscribed)
		author = &a
	}

	return RecipeResponse{
		ID:               r.ID.String(),
		Tags:             tags,
		Author:           author,
		Ingredients:      ingredients,
		IsFavorited:      favorited,
		IsInShoppingCart: inCart,
		Name:             r.Name,
		Image:            r.ImageURL,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
}
