package testhelpers

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sufrah/backend/internal/models"
	"github.com/sufrah/backend/internal/types"
)

// CreateTestUser inserts a user plus a verified profile and returns the
// user. The password is always "password123".
func CreateTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        email,
		Phone:        "+966500000001",
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	profile := &models.UserProfile{
		ID:              uuid.New(),
		UserID:          user.ID,
		Username:        fmt.Sprintf("user-%s", user.ID.String()[:8]),
		Verified:        true,
		DeliveryAddress: "12 Corniche Road",
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return user
}

// CreateTestMenuItem inserts a visible main-menu item.
func CreateTestMenuItem(t *testing.T, db *gorm.DB, name string, price float64) *models.MenuItem {
	t.Helper()

	item := &models.MenuItem{
		ID:      uuid.New(),
		Name:    name,
		Price:   price,
		Visible: true,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test menu item: %v", err)
	}
	return item
}

// CreateTestOfferedMeal inserts a visible package offer.
func CreateTestOfferedMeal(t *testing.T, db *gorm.DB, name string, price float64) *models.OfferedMeal {
	t.Helper()

	item := &models.OfferedMeal{
		ID:      uuid.New(),
		Name:    name,
		Price:   price,
		Visible: true,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test offered meal: %v", err)
	}
	return item
}

// CreateTestCustomizedMeal inserts a visible customized meal with the
// given nutritional facts and coefficients.
func CreateTestCustomizedMeal(t *testing.T, db *gorm.DB, meal models.CustomizedMealMenu) *models.CustomizedMealMenu {
	t.Helper()

	if meal.ID == uuid.Nil {
		meal.ID = uuid.New()
	}
	if meal.Name == "" {
		meal.Name = "Grilled Chicken"
	}
	meal.Visible = true
	if err := db.Create(&meal).Error; err != nil {
		t.Fatalf("failed to create test customized meal: %v", err)
	}
	return &meal
}

// CreateTestMealProfile inserts the user's macro-target profile.
func CreateTestMealProfile(t *testing.T, db *gorm.DB, userID uuid.UUID, protein, fat, carbs float64, mealPerDay, repeat int) *models.UserCustomizedMealProfile {
	t.Helper()

	profile := &models.UserCustomizedMealProfile{
		ID:                 uuid.New(),
		UserID:             userID,
		Diet:               types.DietClean,
		Protein:            protein,
		Fat:                fat,
		Carbs:              carbs,
		MealPerDay:         mealPerDay,
		MealDurationRepeat: repeat,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test meal profile: %v", err)
	}
	return profile
}

// CreateTestIntakeConfig inserts admin intake bounds wide enough to
// accept any sensible test intake.
func CreateTestIntakeConfig(t *testing.T, db *gorm.DB, diet types.DietCategory) *models.AdminCustomizedMealConfig {
	t.Helper()

	cfg := &models.AdminCustomizedMealConfig{
		ID:                     uuid.New(),
		Diet:                   diet,
		MinProtein:             10,
		MaxProtein:             400,
		MinFat:                 10,
		MaxFat:                 300,
		MinCarbs:               5,
		MaxCarbs:               500,
		MinCalories:            500,
		MaxCalories:            6000,
		CaloriesPerMealDivisor: 700,
	}
	if err := db.Create(cfg).Error; err != nil {
		t.Fatalf("failed to create test intake config: %v", err)
	}
	return cfg
}
