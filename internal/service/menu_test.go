package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sufrah/backend/internal/models"
	"github.com/sufrah/backend/internal/storage"
	"github.com/sufrah/backend/internal/testhelpers"
	"github.com/sufrah/backend/internal/types"
)

func TestMenuListsHideInvisible(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewMenuService(db, storage.NewMemoryStore())
	ctx := context.Background()

	visible := testhelpers.CreateTestMenuItem(t, db, "Kabsa", 45)
	hidden := testhelpers.CreateTestMenuItem(t, db, "Old Dish", 30)
	require.Nil(t, svc.SetVisibility(ctx, types.CategoryMainMenu, hidden.ID, false))

	items, appErr := svc.ListMainMenu(ctx)
	require.Nil(t, appErr)
	require.Len(t, items, 1)
	assert.Equal(t, visible.ID, items[0].ID)
}

func TestCreateMenuItems(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewMenuService(db, storage.NewMemoryStore())
	ctx := context.Background()

	t.Run("main item requires positive price", func(t *testing.T) {
		appErr := svc.CreateMainMenuItem(ctx, &models.MenuItem{Name: "Free Lunch", Price: 0})
		require.NotNil(t, appErr)
		assert.Equal(t, types.ErrorKindValidation, appErr.Kind)
	})

	t.Run("customized meal needs nutritional content", func(t *testing.T) {
		appErr := svc.CreateCustomizedMeal(ctx, &models.CustomizedMealMenu{Name: "Air"})
		require.NotNil(t, appErr)
		assert.Equal(t, types.ErrorKindValidation, appErr.Kind)
	})

	t.Run("negative coefficient rejected", func(t *testing.T) {
		appErr := svc.CreateCustomizedMeal(ctx, &models.CustomizedMealMenu{
			Name: "Broken", Protein: 20, Fadd: 5, Carbs: 10,
			Prp: 1, Prc: 1, Prf: -0.5, Mf: 1, Sf: 1, Of: 1, Fmf: 0.3,
		})
		require.NotNil(t, appErr)
		assert.Equal(t, types.ErrorKindValidation, appErr.Kind)
	})

	t.Run("valid customized meal", func(t *testing.T) {
		meal := models.CustomizedMealMenu{
			Name: "Chicken", Protein: 25, Fadd: 8, Carbs: 30,
			Prp: 0.4, Prc: 0.2, Prf: 0.6, Mf: 4.2, Sf: 1.8, Of: 1.1, Fmf: 0.3,
		}
		require.Nil(t, svc.CreateCustomizedMeal(ctx, &meal))
		assert.NotEqual(t, uuid.Nil, meal.ID)
	})
}

func TestPlanOptions(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewMenuService(db, storage.NewMemoryStore())
	ctx := context.Background()

	option := models.PlanOption{Kind: types.PlanOptionMealsPerDay, Value: 3, Visible: true}
	require.Nil(t, svc.CreatePlanOption(ctx, &option))

	t.Run("duplicate value rejected", func(t *testing.T) {
		dup := models.PlanOption{Kind: types.PlanOptionMealsPerDay, Value: 3, Visible: true}
		appErr := svc.CreatePlanOption(ctx, &dup)
		require.NotNil(t, appErr)
		assert.Equal(t, types.ErrorKindBusinessRule, appErr.Kind)
	})

	t.Run("hidden options drop out of the list", func(t *testing.T) {
		require.Nil(t, svc.SetPlanOptionVisibility(ctx, option.ID, false))
		options, appErr := svc.ListPlanOptions(ctx, types.PlanOptionMealsPerDay)
		require.Nil(t, appErr)
		assert.Empty(t, options)
	})

	t.Run("invalid kind", func(t *testing.T) {
		bad := models.PlanOption{Kind: types.PlanOptionKind("weeks"), Value: 2}
		appErr := svc.CreatePlanOption(ctx, &bad)
		require.NotNil(t, appErr)
		assert.Equal(t, types.ErrorKindValidation, appErr.Kind)
	})
}

func TestUploadImage(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	blobs := storage.NewMemoryStore()
	svc := NewMenuService(db, blobs)
	ctx := context.Background()

	item := testhelpers.CreateTestMenuItem(t, db, "Kabsa", 45)
	payload := []byte{0xFF, 0xD8, 0xFF}

	t.Run("stores blob and records key", func(t *testing.T) {
		key, appErr := svc.UploadImage(ctx, types.CategoryMainMenu, item.ID, payload, "image/jpeg")
		require.Nil(t, appErr)
		assert.Equal(t, fmt.Sprintf("menu/%s/%s", types.CategoryMainMenu, item.ID), key)

		data, err := blobs.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, payload, data)

		var got models.MenuItem
		require.NoError(t, db.First(&got, "id = ?", item.ID).Error)
		assert.Equal(t, key, got.ImageKey)
	})

	t.Run("missing item leaves no orphan blob", func(t *testing.T) {
		missing := uuid.New()
		_, appErr := svc.UploadImage(ctx, types.CategoryMainMenu, missing, payload, "image/jpeg")
		require.NotNil(t, appErr)
		assert.Equal(t, types.ErrorKindNotFound, appErr.Kind)

		key := fmt.Sprintf("menu/%s/%s", types.CategoryMainMenu, missing)
		_, err := blobs.Get(ctx, key)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
