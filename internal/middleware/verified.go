package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sufrah/backend/internal/models"
	"github.com/sufrah/backend/internal/types"
)

// RequireVerifiedProfile blocks checkout-grade operations until an
// administrator has verified the user's profile. It must run after
// AuthMiddleware.
func RequireVerifiedProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		userID, ok := userIDVal.(uuid.UUID)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		var profile models.UserProfile
		err := db.Where("user_id = ?", userID).First(&profile).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check profile status"})
			c.Abort()
			return
		}

		if errors.Is(err, gorm.ErrRecordNotFound) || !profile.Verified {
			c.JSON(http.StatusForbidden, types.Fail(types.NewBusinessError(
				"your account is not verified yet",
				"لم يتم التحقق من حسابك بعد",
			)))
			c.Abort()
			return
		}

		c.Next()
	}
}
