package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sufrah/backend/internal/testhelpers"
	"github.com/sufrah/backend/internal/types"
)

// Runs the discount rule lifecycle against a containerized Postgres so
// the unique rule-per-category index and the range queries are covered
// on the production driver, not just sqlite.
func TestDiscountRulePostgres(t *testing.T) {
	db := testhelpers.SetupPostgresTestDB(t)
	svc := NewDiscountService(db)
	ctx := context.Background()

	first, appErr := svc.CreateRange(ctx, types.CreateDiscountRangeRequest{
		Category:   types.CategoryMainMenu,
		Min:        100,
		Max:        300,
		Percentage: 10,
		IsActive:   true,
	})
	require.Nil(t, appErr)

	t.Run("second range joins the same rule", func(t *testing.T) {
		second, appErr := svc.CreateRange(ctx, types.CreateDiscountRangeRequest{
			Category:   types.CategoryMainMenu,
			Min:        301,
			Max:        600,
			Percentage: 15,
			IsActive:   true,
		})
		require.Nil(t, appErr)
		assert.Equal(t, first.RuleID, second.RuleID)
	})

	t.Run("active overlap rejected", func(t *testing.T) {
		_, appErr := svc.CreateRange(ctx, types.CreateDiscountRangeRequest{
			Category:   types.CategoryMainMenu,
			Min:        250,
			Max:        400,
			Percentage: 20,
			IsActive:   true,
		})
		require.NotNil(t, appErr)
		assert.Equal(t, types.ErrorKindBusinessRule, appErr.Kind)
	})

	t.Run("resolve picks the matching range", func(t *testing.T) {
		amount, percentage, appErr := svc.Resolve(ctx, types.CategoryMainMenu, 400)
		require.Nil(t, appErr)
		assert.Equal(t, 15.0, percentage)
		assert.Equal(t, 60.0, amount)
	})

	t.Run("deactivated range stops matching", func(t *testing.T) {
		_, appErr := svc.UpdateRange(ctx, first.ID, types.UpdateDiscountRangeRequest{
			Min:        first.Min,
			Max:        first.Max,
			Percentage: first.Percentage,
			IsActive:   false,
		})
		require.Nil(t, appErr)

		amount, _, appErr := svc.Resolve(ctx, types.CategoryMainMenu, 200)
		require.Nil(t, appErr)
		assert.Zero(t, amount)
	})
}
