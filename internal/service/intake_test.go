package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sufrah/backend/internal/models"
	"github.com/sufrah/backend/internal/testhelpers"
	"github.com/sufrah/backend/internal/types"
)

func TestCreateIntakeProfile(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewIntakeService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "intake@example.com")
	testhelpers.CreateTestIntakeConfig(t, db, types.DietClean)

	req := types.CustomizedMealIntakeRequest{
		DietCategory:       types.DietClean,
		Protein:            120,
		Fat:                60,
		Carbs:              180,
		MealDurationRepeat: 3,
	}

	profile, appErr := svc.CreateProfile(ctx, user.ID, req)
	require.Nil(t, appErr)

	// 120*4 + 180*4 + 60*9 = 1740 kcal over a 700 divisor rounds to 2.
	assert.Equal(t, 2, profile.MealPerDay)
	assert.Equal(t, 3, profile.MealDurationRepeat)
	assert.Equal(t, types.DietClean, profile.Diet)

	t.Run("intake is one-time", func(t *testing.T) {
		_, appErr := svc.CreateProfile(ctx, user.ID, req)
		require.NotNil(t, appErr)
		assert.Equal(t, types.ErrorKindBusinessRule, appErr.Kind)
	})

	t.Run("admin delete allows a redo", func(t *testing.T) {
		require.Nil(t, svc.DeleteProfile(ctx, user.ID))
		_, appErr := svc.CreateProfile(ctx, user.ID, req)
		assert.Nil(t, appErr)
	})
}

func TestCreateIntakeProfileBounds(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewIntakeService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "bounds@example.com")
	testhelpers.CreateTestIntakeConfig(t, db, types.DietKeto)

	base := types.CustomizedMealIntakeRequest{
		DietCategory:       types.DietKeto,
		Protein:            100,
		Fat:                120,
		Carbs:              30,
		MealDurationRepeat: 2,
	}

	t.Run("valid intake", func(t *testing.T) {
		profile, appErr := svc.CreateProfile(ctx, user.ID, base)
		require.Nil(t, appErr)
		require.Nil(t, svc.DeleteProfile(ctx, user.ID))
		assert.GreaterOrEqual(t, profile.MealPerDay, 1)
	})

	t.Run("protein above bound", func(t *testing.T) {
		req := base
		req.Protein = 500
		_, appErr := svc.CreateProfile(ctx, user.ID, req)
		require.NotNil(t, appErr)
		assert.Equal(t, types.ErrorKindValidation, appErr.Kind)
	})

	t.Run("calories below bound", func(t *testing.T) {
		req := base
		req.Protein, req.Fat, req.Carbs = 30, 15, 10
		_, appErr := svc.CreateProfile(ctx, user.ID, req)
		require.NotNil(t, appErr)
		assert.Equal(t, types.ErrorKindValidation, appErr.Kind)
	})

	t.Run("unconfigured diet", func(t *testing.T) {
		req := base
		req.DietCategory = types.DietClean
		_, appErr := svc.CreateProfile(ctx, user.ID, req)
		require.NotNil(t, appErr)
		assert.Equal(t, types.ErrorKindNotFound, appErr.Kind)
	})

	t.Run("invalid diet category", func(t *testing.T) {
		req := base
		req.DietCategory = types.DietCategory("carnivore")
		_, appErr := svc.CreateProfile(ctx, user.ID, req)
		require.NotNil(t, appErr)
		assert.Equal(t, types.ErrorKindValidation, appErr.Kind)
	})
}

func TestGetIntakeProfile(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewIntakeService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "getprofile@example.com")

	_, appErr := svc.GetProfile(ctx, user.ID)
	require.NotNil(t, appErr)
	assert.Equal(t, types.ErrorKindNotFound, appErr.Kind)

	testhelpers.CreateTestMealProfile(t, db, user.ID, 100, 50, 150, 3, 2)

	profile, appErr := svc.GetProfile(ctx, user.ID)
	require.Nil(t, appErr)
	assert.Equal(t, 100.0, profile.Protein)
}

func TestCreateIntakeProfileRepeatBounds(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewIntakeService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "repeat@example.com")
	testhelpers.CreateTestIntakeConfig(t, db, types.DietClean)

	base := types.CustomizedMealIntakeRequest{
		DietCategory: types.DietClean,
		Protein:      120,
		Fat:          60,
		Carbs:        180,
	}

	for _, repeat := range []int{0, 8, -1} {
		req := base
		req.MealDurationRepeat = repeat
		_, appErr := svc.CreateProfile(ctx, user.ID, req)
		require.NotNil(t, appErr, "repeat %d", repeat)
		assert.Equal(t, types.ErrorKindValidation, appErr.Kind)
	}

	req := base
	req.MealDurationRepeat = 7
	_, appErr := svc.CreateProfile(ctx, user.ID, req)
	assert.Nil(t, appErr)
}

func TestUpsertIntakeConfig(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewIntakeService(db)
	ctx := context.Background()

	cfg := models.AdminCustomizedMealConfig{
		Diet:                   types.DietKeto,
		MinProtein:             20, MaxProtein: 300,
		MinFat:                 20, MaxFat: 250,
		MinCarbs:               5, MaxCarbs: 100,
		MinCalories:            600, MaxCalories: 5000,
		CaloriesPerMealDivisor: 650,
	}
	require.Nil(t, svc.UpsertConfig(ctx, &cfg))

	t.Run("intake runs against the stored bounds", func(t *testing.T) {
		user := testhelpers.CreateTestUser(t, db, "configured@example.com")
		profile, appErr := svc.CreateProfile(ctx, user.ID, types.CustomizedMealIntakeRequest{
			DietCategory:       types.DietKeto,
			Protein:            100,
			Fat:                120,
			Carbs:              30,
			MealDurationRepeat: 2,
		})
		require.Nil(t, appErr)
		// 100*4 + 30*4 + 120*9 = 1600 kcal over a 650 divisor rounds to 2.
		assert.Equal(t, 2, profile.MealPerDay)
	})

	t.Run("second upsert replaces the row", func(t *testing.T) {
		next := cfg
		next.ID = uuid.Nil
		next.CaloriesPerMealDivisor = 800
		require.Nil(t, svc.UpsertConfig(ctx, &next))
		assert.Equal(t, cfg.ID, next.ID)

		configs, appErr := svc.ListConfigs(ctx)
		require.Nil(t, appErr)
		require.Len(t, configs, 1)
		assert.Equal(t, 800.0, configs[0].CaloriesPerMealDivisor)
	})

	t.Run("inverted bounds rejected", func(t *testing.T) {
		bad := cfg
		bad.ID = uuid.Nil
		bad.MinProtein, bad.MaxProtein = 300, 20
		appErr := svc.UpsertConfig(ctx, &bad)
		require.NotNil(t, appErr)
		assert.Equal(t, types.ErrorKindValidation, appErr.Kind)
	})

	t.Run("invalid diet rejected", func(t *testing.T) {
		bad := cfg
		bad.ID = uuid.Nil
		bad.Diet = types.DietCategory("paleo")
		appErr := svc.UpsertConfig(ctx, &bad)
		require.NotNil(t, appErr)
		assert.Equal(t, types.ErrorKindValidation, appErr.Kind)
	})
}
