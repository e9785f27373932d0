package service

import (
	"context"
	"testing"

	"github.com/foodgram/backend/internal/testhelpers"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListIngredientsPrefixSearch(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	svc := NewCatalogService(db)

	testhelpers.CreateIngredient(t, db, "Flour", "g")
	testhelpers.CreateIngredient(t, db, "Flax seeds", "g")
	testhelpers.CreateIngredient(t, db, "Milk", "ml")

	all, err := svc.ListIngredients(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	matched, err := svc.ListIngredients(context.Background(), "fl")
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, "Flax seeds", matched[0].Name)
	assert.Equal(t, "Flour", matched[1].Name)

	none, err := svc.ListIngredients(context.Background(), "zz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTagLookup(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	svc := NewCatalogService(db)

	tag := testhelpers.CreateTag(t, db, "Breakfast", "#E26C2D", "breakfast")

	got, err := svc.GetTag(context.Background(), tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "breakfast", got.Slug)

	_, err = svc.GetTag(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetIngredientNotFound(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	svc := NewCatalogService(db)

	_, err := svc.GetIngredient(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
