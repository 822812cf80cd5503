package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sufrah/backend/internal/models"
	"github.com/sufrah/backend/internal/notify"
	"github.com/sufrah/backend/internal/service"
	"github.com/sufrah/backend/internal/storage"
	"github.com/sufrah/backend/internal/testhelpers"
)

const testJWTSecret = "test-secret"

func setupTestAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	router := gin.New()
	SetupAPI(router, db, nil, storage.NewMemoryStore(), notify.NewHub(), testJWTSecret)
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     "Test User",
		"username": "user-" + email,
		"email":    email,
		"phone":    "+966500000001",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func adminToken(t *testing.T, db *gorm.DB) string {
	t.Helper()

	admin := testhelpers.CreateTestUser(t, db, "admin@example.com")
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", admin.ID).Update("is_admin", true).Error)
	admin.IsAdmin = true

	token, err := service.NewAuthService(db, testJWTSecret).GenerateToken(admin)
	require.NoError(t, err)
	return token
}

func TestAuthEndpoints(t *testing.T) {
	router, _ := setupTestAPI(t)

	token := registerAndLogin(t, router, "auth@example.com")
	assert.NotEmpty(t, token)

	t.Run("login with valid credentials", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"email":    "auth@example.com",
			"password": "password123",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"email":    "auth@example.com",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("duplicate registration", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
			"name":     "Test User",
			"username": "dupe",
			"email":    "auth@example.com",
			"phone":    "+966500000001",
			"password": "password123",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router, _ := setupTestAPI(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/cart", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	router, db := setupTestAPI(t)

	userToken := registerAndLogin(t, router, "customer@example.com")
	w := doJSON(t, router, http.MethodPost, "/api/v1/admin/discounts/ranges", userToken, gin.H{
		"category":   "mainMenu",
		"min":        100.0,
		"max":        200.0,
		"percentage": 10.0,
		"is_active":  true,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/admin/discounts/ranges", adminToken(t, db), gin.H{
		"category":   "mainMenu",
		"min":        100.0,
		"max":        200.0,
		"percentage": 10.0,
		"is_active":  true,
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestCartFlow(t *testing.T) {
	router, db := setupTestAPI(t)

	token := registerAndLogin(t, router, "cartflow@example.com")
	item := testhelpers.CreateTestMenuItem(t, db, "Kabsa", 45)

	w := doJSON(t, router, http.MethodPost, "/api/v1/cart/main/lines", token, gin.H{
		"menu_item_id": item.ID,
		"quantity":     2.0,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Status bool `json:"status"`
		Data   struct {
			MainMealCart struct {
				Subtotal float64 `json:"subtotal"`
			} `json:"main_meal_cart"`
			GrandTotal float64 `json:"grand_total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Status)
	assert.InDelta(t, 90.0, envelope.Data.MainMealCart.Subtotal, 1e-9)
	assert.InDelta(t, 90.0, envelope.Data.GrandTotal, 1e-9)
}

func TestPlaceOrderRejectsUnverifiedProfile(t *testing.T) {
	router, db := setupTestAPI(t)

	token := registerAndLogin(t, router, "unverified@example.com")
	item := testhelpers.CreateTestMenuItem(t, db, "Mandi", 40)

	w := doJSON(t, router, http.MethodPost, "/api/v1/cart/main/lines", token, gin.H{
		"menu_item_id": item.ID,
		"quantity":     1.0,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Registration leaves the profile unverified; checkout is gated.
	w = doJSON(t, router, http.MethodPost, "/api/v1/orders", token, gin.H{})
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	require.NoError(t, db.Model(&models.UserProfile{}).
		Where("username = ?", "user-unverified@example.com").
		Update("verified", true).Error)

	w = doJSON(t, router, http.MethodPost, "/api/v1/orders", token, gin.H{})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestBilingualErrorEnvelope(t *testing.T) {
	router, db := setupTestAPI(t)

	token := registerAndLogin(t, router, "envelope@example.com")
	require.NoError(t, db.Model(&models.UserProfile{}).
		Where("username = ?", "user-envelope@example.com").
		Update("verified", true).Error)

	// Verified user, empty carts: the business rule comes back in both
	// locales.
	w := doJSON(t, router, http.MethodPost, "/api/v1/orders", token, gin.H{})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

	var envelope struct {
		Status  bool `json:"status"`
		Message struct {
			EN string `json:"en"`
			AR string `json:"ar"`
		} `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Status)
	assert.Equal(t, "no items in cart", envelope.Message.EN)
	assert.Equal(t, "لا توجد عناصر في السلة", envelope.Message.AR)
}

func TestCartLineRemovalPaths(t *testing.T) {
	router, db := setupTestAPI(t)

	token := registerAndLogin(t, router, "removal@example.com")
	item := testhelpers.CreateTestMenuItem(t, db, "Saleeg", 38)

	w := doJSON(t, router, http.MethodPost, "/api/v1/cart/main/lines", token, gin.H{
		"menu_item_id": item.ID,
		"quantity":     1.0,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.Data.ID)

	t.Run("unknown category segment", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/api/v1/cart/mainMenu/lines/"+created.Data.ID, token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	t.Run("segment matches the add routes", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/api/v1/cart/main/lines/"+created.Data.ID, token, nil)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})
}

func TestIntakeAdminSurface(t *testing.T) {
	router, db := setupTestAPI(t)

	userToken := registerAndLogin(t, router, "intakeapi@example.com")
	admin := adminToken(t, db)

	// Intake is closed until an admin configures the diet's bounds.
	intakeBody := gin.H{
		"diet_category":        "clean diet",
		"protein":              120.0,
		"fat":                  60.0,
		"carbs":                180.0,
		"meal_duration_repeat": 3,
	}
	w := doJSON(t, router, http.MethodPost, "/api/v1/intake", userToken, intakeBody)
	require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	configBody := gin.H{
		"diet_category":             "clean diet",
		"min_protein":               10.0,
		"max_protein":               400.0,
		"min_fat":                   10.0,
		"max_fat":                   300.0,
		"min_carbs":                 5.0,
		"max_carbs":                 500.0,
		"min_calories":              500.0,
		"max_calories":              6000.0,
		"calories_per_meal_divisor": 700.0,
	}

	t.Run("config route is admin-only", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/api/v1/admin/intake/configs", userToken, configBody)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	w = doJSON(t, router, http.MethodPut, "/api/v1/admin/intake/configs", admin, configBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/v1/admin/intake/configs", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/intake", userToken, intakeBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var profile struct {
		Data struct {
			UserID string `json:"user_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	require.NotEmpty(t, profile.Data.UserID)

	t.Run("profile delete is admin-only", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/api/v1/admin/intake/"+profile.Data.UserID, userToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin delete forces a re-intake", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/api/v1/admin/intake/"+profile.Data.UserID, admin, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = doJSON(t, router, http.MethodPost, "/api/v1/intake", userToken, intakeBody)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})
}

func TestCalculatorAdminOverrides(t *testing.T) {
	router, db := setupTestAPI(t)

	userToken := registerAndLogin(t, router, "calcadmin@example.com")
	admin := adminToken(t, db)

	body := gin.H{"level": 3, "multiplier": 1.5}

	w := doJSON(t, router, http.MethodPut, "/api/v1/admin/calculator/activity-levels", userToken, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/v1/admin/calculator/activity-levels", admin, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPut, "/api/v1/admin/calculator/fractions", admin, gin.H{
		"diet_goal": "maintain",
		"fraction":  0.95,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The override flows into the user-facing calculator.
	w = doJSON(t, router, http.MethodPost, "/api/v1/calculator/macros", userToken, gin.H{
		"weight_kg":             75.0,
		"height_cm":             175.0,
		"age":                   28,
		"male":                  true,
		"body_fat_percent":      15.0,
		"activity_level_factor": 3,
		"diet_goal":             "maintain",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result struct {
		Data struct {
			TDEE     float64 `json:"tdee"`
			BMR      float64 `json:"bmr"`
			Calories float64 `json:"calories"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.InDelta(t, result.Data.BMR*1.5, result.Data.TDEE, 1e-6)
	assert.InDelta(t, result.Data.TDEE*0.95, result.Data.Calories, 1e-6)
}
