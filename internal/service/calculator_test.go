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

func TestCalories(t *testing.T) {
	assert.Equal(t, 0.0, Calories(0, 0, 0))
	// 4/4/9 kcal per gram.
	assert.InDelta(t, 100*4+200*4+50*9, Calories(100, 200, 50), 1e-9)
}

func TestBodyFatFactor(t *testing.T) {
	cases := []struct {
		percent float64
		want    float64
	}{
		{5, 0.07},
		{9.9, 0.07},
		{10, 0.12},
		{14.9, 0.12},
		{15, 0.17},
		{22, 0.22},
		{28, 0.27},
		{33, 0.32},
		{39, 0.37},
		{40, 0.42},
		{55, 0.42},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BodyFatFactor(tc.percent), "percent %v", tc.percent)
	}
}

func TestBMR(t *testing.T) {
	metrics := types.UserMetrics{
		WeightKg:       80,
		HeightCm:       180,
		Age:            30,
		Male:           true,
		BodyFatPercent: 18,
	}

	classic := 88.362 + 13.397*80 + 4.799*180 - 5.677*30
	adjusted := 370 + 21.6*(1-0.17)*80
	want := (classic + adjusted) / 2
	assert.InDelta(t, want, BMR(metrics), 1e-9)

	// The female curve differs for identical body data.
	metrics.Male = false
	assert.Less(t, BMR(metrics), want)
}

func TestComputeKetoMacros(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewCalculatorService(db)
	ctx := context.Background()

	metrics := types.UserMetrics{
		WeightKg:            70,
		HeightCm:            170,
		Age:                 25,
		Male:                true,
		BodyFatPercent:      20,
		ActivityLevelFactor: 2,
		DietGoal:            "maintain",
	}

	result, appErr := svc.ComputeKetoMacros(ctx, metrics)
	require.Nil(t, appErr)

	assert.InDelta(t, result.BMR*1.375, result.TDEE, 1e-9)
	assert.InDelta(t, result.TDEE, result.Calories, 1e-9) // maintain = 1.00

	// 25/5/70 split; keto derives fat grams at 4 kcal/g.
	assert.InDelta(t, result.Calories*0.25/4, result.Protein, 1e-9)
	assert.InDelta(t, result.Calories*0.05/4, result.Carb, 1e-9)
	assert.InDelta(t, result.Calories*0.70/4, result.Fat, 1e-9)
}

func TestComputeMacros(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewCalculatorService(db)
	ctx := context.Background()

	metrics := types.UserMetrics{
		WeightKg:            60,
		HeightCm:            165,
		Age:                 35,
		BodyFatPercent:      28,
		ActivityLevelFactor: 1,
		DietGoal:            "lose",
	}

	result, appErr := svc.ComputeMacros(ctx, metrics)
	require.Nil(t, appErr)

	assert.InDelta(t, result.BMR*1.2, result.TDEE, 1e-9)
	assert.InDelta(t, result.TDEE*0.80, result.Calories, 1e-9)

	// 30/40/30 split with fat at 9 kcal/g.
	assert.InDelta(t, result.Calories*0.30/4, result.Protein, 1e-9)
	assert.InDelta(t, result.Calories*0.40/4, result.Carb, 1e-9)
	assert.InDelta(t, result.Calories*0.30/9, result.Fat, 1e-9)
}

func TestCalculatorConfigOverrides(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewCalculatorService(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.ActivityLevelFactor{
		ID: uuid.New(), Level: 3, Multiplier: 1.5,
	}).Error)
	require.NoError(t, db.Create(&models.CalorieFraction{
		ID: uuid.New(), DietGoal: "gain", Fraction: 1.10,
	}).Error)
	require.NoError(t, db.Create(&models.CalorieFraction{
		ID: uuid.New(), DietGoal: "gain", BodyType: "ectomorph", Fraction: 1.25,
	}).Error)

	base := types.UserMetrics{
		WeightKg:            75,
		HeightCm:            175,
		Age:                 28,
		Male:                true,
		BodyFatPercent:      15,
		ActivityLevelFactor: 3,
		DietGoal:            "gain",
	}

	t.Run("admin multiplier beats default", func(t *testing.T) {
		result, appErr := svc.ComputeMacros(ctx, base)
		require.Nil(t, appErr)
		assert.InDelta(t, result.BMR*1.5, result.TDEE, 1e-9)
		assert.InDelta(t, result.TDEE*1.10, result.Calories, 1e-9)
	})

	t.Run("goal plus body type beats goal-only", func(t *testing.T) {
		metrics := base
		metrics.BodyType = "ectomorph"
		result, appErr := svc.ComputeMacros(ctx, metrics)
		require.Nil(t, appErr)
		assert.InDelta(t, result.TDEE*1.25, result.Calories, 1e-9)
	})

	t.Run("unconfigured body type falls through to goal", func(t *testing.T) {
		metrics := base
		metrics.BodyType = "endomorph"
		result, appErr := svc.ComputeMacros(ctx, metrics)
		require.Nil(t, appErr)
		assert.InDelta(t, result.TDEE*1.10, result.Calories, 1e-9)
	})

	t.Run("unknown diet goal", func(t *testing.T) {
		metrics := base
		metrics.DietGoal = "bulk"
		_, appErr := svc.ComputeMacros(ctx, metrics)
		require.NotNil(t, appErr)
		assert.Equal(t, types.ErrorKindValidation, appErr.Kind)
	})

	t.Run("activity level out of range", func(t *testing.T) {
		metrics := base
		metrics.ActivityLevelFactor = 7
		_, appErr := svc.ComputeMacros(ctx, metrics)
		require.NotNil(t, appErr)
		assert.Equal(t, types.ErrorKindValidation, appErr.Kind)
	})
}

func TestSetActivityLevelFactor(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewCalculatorService(db)
	ctx := context.Background()

	metrics := types.UserMetrics{
		WeightKg:            75,
		HeightCm:            175,
		Age:                 28,
		Male:                true,
		BodyFatPercent:      15,
		ActivityLevelFactor: 4,
		DietGoal:            "maintain",
	}

	factor, appErr := svc.SetActivityLevelFactor(ctx, 4, 1.6)
	require.Nil(t, appErr)
	assert.Equal(t, 4, factor.Level)

	result, appErr := svc.ComputeMacros(ctx, metrics)
	require.Nil(t, appErr)
	assert.InDelta(t, result.BMR*1.6, result.TDEE, 1e-9)

	t.Run("second set replaces the override", func(t *testing.T) {
		updated, appErr := svc.SetActivityLevelFactor(ctx, 4, 1.7)
		require.Nil(t, appErr)
		assert.Equal(t, factor.ID, updated.ID)

		result, appErr := svc.ComputeMacros(ctx, metrics)
		require.Nil(t, appErr)
		assert.InDelta(t, result.BMR*1.7, result.TDEE, 1e-9)
	})

	t.Run("level out of range", func(t *testing.T) {
		_, appErr := svc.SetActivityLevelFactor(ctx, 7, 2.0)
		require.NotNil(t, appErr)
		assert.Equal(t, types.ErrorKindValidation, appErr.Kind)
	})

	t.Run("non-positive multiplier", func(t *testing.T) {
		_, appErr := svc.SetActivityLevelFactor(ctx, 2, 0)
		require.NotNil(t, appErr)
		assert.Equal(t, types.ErrorKindValidation, appErr.Kind)
	})
}

func TestSetCalorieFraction(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewCalculatorService(db)
	ctx := context.Background()

	metrics := types.UserMetrics{
		WeightKg:            75,
		HeightCm:            175,
		Age:                 28,
		Male:                true,
		BodyFatPercent:      15,
		ActivityLevelFactor: 1,
		DietGoal:            "lose",
	}

	fraction, appErr := svc.SetCalorieFraction(ctx, "lose", "", 0.75)
	require.Nil(t, appErr)

	result, appErr := svc.ComputeMacros(ctx, metrics)
	require.Nil(t, appErr)
	assert.InDelta(t, result.TDEE*0.75, result.Calories, 1e-9)

	t.Run("body-type pair stored separately", func(t *testing.T) {
		pair, appErr := svc.SetCalorieFraction(ctx, "lose", "endomorph", 0.70)
		require.Nil(t, appErr)
		assert.NotEqual(t, fraction.ID, pair.ID)

		withBody := metrics
		withBody.BodyType = "endomorph"
		result, appErr := svc.ComputeMacros(ctx, withBody)
		require.Nil(t, appErr)
		assert.InDelta(t, result.TDEE*0.70, result.Calories, 1e-9)
	})

	t.Run("second set replaces the value", func(t *testing.T) {
		updated, appErr := svc.SetCalorieFraction(ctx, "lose", "", 0.78)
		require.Nil(t, appErr)
		assert.Equal(t, fraction.ID, updated.ID)
	})

	t.Run("missing goal", func(t *testing.T) {
		_, appErr := svc.SetCalorieFraction(ctx, "", "", 1.0)
		require.NotNil(t, appErr)
		assert.Equal(t, types.ErrorKindValidation, appErr.Kind)
	})
}
