package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sufrah/backend/internal/models"
	"github.com/sufrah/backend/internal/storage"
	"github.com/sufrah/backend/internal/types"
)

// MenuService manages the three catalogs. Item images live in the blob
// store under the item's id.
type MenuService struct {
	db    *gorm.DB
	blobs storage.BlobStore
}

// NewMenuService creates a new MenuService instance
func NewMenuService(db *gorm.DB, blobs storage.BlobStore) *MenuService {
	return &MenuService{db: db, blobs: blobs}
}

// ListMainMenu returns visible main-menu items.
func (s *MenuService) ListMainMenu(ctx context.Context) ([]models.MenuItem, *types.AppError) {
	var items []models.MenuItem
	if err := s.db.WithContext(ctx).Where("visible = ?", true).Find(&items).Error; err != nil {
		log.Printf("main menu list failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}
	return items, nil
}

// ListOfferedMeals returns visible package offers.
func (s *MenuService) ListOfferedMeals(ctx context.Context) ([]models.OfferedMeal, *types.AppError) {
	var items []models.OfferedMeal
	if err := s.db.WithContext(ctx).Where("visible = ?", true).Find(&items).Error; err != nil {
		log.Printf("offers list failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}
	return items, nil
}

// ListCustomizedMeals returns visible customized-meal menu entries.
func (s *MenuService) ListCustomizedMeals(ctx context.Context) ([]models.CustomizedMealMenu, *types.AppError) {
	var items []models.CustomizedMealMenu
	if err := s.db.WithContext(ctx).Where("visible = ?", true).Find(&items).Error; err != nil {
		log.Printf("customized menu list failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}
	return items, nil
}

// CreateMainMenuItem inserts a priced main-menu item.
func (s *MenuService) CreateMainMenuItem(ctx context.Context, item *models.MenuItem) *types.AppError {
	if item.Price <= 0 {
		return types.NewValidationError("price must be positive", "يجب أن يكون السعر موجباً")
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		log.Printf("main menu create failed: %v", err)
		return types.ErrSomethingWentWrong()
	}
	return nil
}

// CreateOfferedMeal inserts a priced package offer.
func (s *MenuService) CreateOfferedMeal(ctx context.Context, item *models.OfferedMeal) *types.AppError {
	if item.Price <= 0 {
		return types.NewValidationError("price must be positive", "يجب أن يكون السعر موجباً")
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		log.Printf("offered meal create failed: %v", err)
		return types.ErrSomethingWentWrong()
	}
	return nil
}

// CreateCustomizedMeal inserts a customized-meal menu entry. The
// coefficients feed the apportionment formula, so none may be negative
// and the share factors must be positive.
func (s *MenuService) CreateCustomizedMeal(ctx context.Context, item *models.CustomizedMealMenu) *types.AppError {
	if item.Protein <= 0 && item.Fadd <= 0 && item.Carbs <= 0 {
		return types.NewValidationError(
			"meal must have nutritional content",
			"يجب أن تحتوي الوجبة على قيم غذائية",
		)
	}
	for _, v := range []float64{item.Prp, item.Prc, item.Prf, item.Mf, item.Sf, item.Of, item.Fmf} {
		if v < 0 {
			return types.NewValidationError("coefficients must not be negative", "المعاملات لا تقبل قيماً سالبة")
		}
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		log.Printf("customized meal create failed: %v", err)
		return types.ErrSomethingWentWrong()
	}
	return nil
}

// SetVisibility toggles an item in or out of the live catalog. Carts
// referencing a hidden item keep their lines; aggregation skips them.
func (s *MenuService) SetVisibility(ctx context.Context, category types.Category, itemID uuid.UUID, visible bool) *types.AppError {
	var res *gorm.DB
	switch category {
	case types.CategoryMainMenu:
		res = s.db.WithContext(ctx).Model(&models.MenuItem{}).Where("id = ?", itemID).Update("visible", visible)
	case types.CategoryOffers:
		res = s.db.WithContext(ctx).Model(&models.OfferedMeal{}).Where("id = ?", itemID).Update("visible", visible)
	case types.CategoryCustomizeOrder:
		res = s.db.WithContext(ctx).Model(&models.CustomizedMealMenu{}).Where("id = ?", itemID).Update("visible", visible)
	default:
		return types.NewValidationError("invalid menu category", "فئة قائمة غير صالحة")
	}
	if res.Error != nil {
		log.Printf("visibility update failed: %v", res.Error)
		return types.ErrSomethingWentWrong()
	}
	if res.RowsAffected == 0 {
		return types.NewNotFoundError("menu item not found", "عنصر القائمة غير موجود")
	}
	return nil
}

// ListPlanOptions returns the visible options for one plan parameter.
func (s *MenuService) ListPlanOptions(ctx context.Context, kind types.PlanOptionKind) ([]models.PlanOption, *types.AppError) {
	if !kind.IsValid() {
		return nil, types.NewValidationError("invalid plan option kind", "نوع خيار الخطة غير صالح")
	}
	var options []models.PlanOption
	if err := s.db.WithContext(ctx).Where("kind = ? AND visible = ?", kind, true).Order("value").Find(&options).Error; err != nil {
		log.Printf("plan options list failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}
	return options, nil
}

// CreatePlanOption adds a selectable value for a plan parameter.
func (s *MenuService) CreatePlanOption(ctx context.Context, option *models.PlanOption) *types.AppError {
	if !option.Kind.IsValid() {
		return types.NewValidationError("invalid plan option kind", "نوع خيار الخطة غير صالح")
	}
	if option.Value <= 0 {
		return types.NewValidationError("plan option value must be positive", "يجب أن تكون قيمة خيار الخطة موجبة")
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.PlanOption{}).
		Where("kind = ? AND value = ?", option.Kind, option.Value).Count(&count).Error; err != nil {
		log.Printf("plan option lookup failed: %v", err)
		return types.ErrSomethingWentWrong()
	}
	if count > 0 {
		return types.NewBusinessError("plan option already exists", "خيار الخطة موجود مسبقاً")
	}
	if option.ID == uuid.Nil {
		option.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(option).Error; err != nil {
		log.Printf("plan option create failed: %v", err)
		return types.ErrSomethingWentWrong()
	}
	return nil
}

// SetPlanOptionVisibility hides or shows one plan option.
func (s *MenuService) SetPlanOptionVisibility(ctx context.Context, optionID uuid.UUID, visible bool) *types.AppError {
	res := s.db.WithContext(ctx).Model(&models.PlanOption{}).Where("id = ?", optionID).Update("visible", visible)
	if res.Error != nil {
		log.Printf("plan option visibility update failed: %v", res.Error)
		return types.ErrSomethingWentWrong()
	}
	if res.RowsAffected == 0 {
		return types.NewNotFoundError("plan option not found", "خيار الخطة غير موجود")
	}
	return nil
}

// UploadImage stores an item image and records its key on the item.
func (s *MenuService) UploadImage(ctx context.Context, category types.Category, itemID uuid.UUID, data []byte, contentType string) (string, *types.AppError) {
	key := fmt.Sprintf("menu/%s/%s", category, itemID)
	if err := s.blobs.Put(ctx, key, data, contentType); err != nil {
		log.Printf("image upload failed: %v", err)
		return "", types.ErrSomethingWentWrong()
	}

	var res *gorm.DB
	switch category {
	case types.CategoryMainMenu:
		res = s.db.WithContext(ctx).Model(&models.MenuItem{}).Where("id = ?", itemID).Update("image_key", key)
	case types.CategoryOffers:
		res = s.db.WithContext(ctx).Model(&models.OfferedMeal{}).Where("id = ?", itemID).Update("image_key", key)
	case types.CategoryCustomizeOrder:
		res = s.db.WithContext(ctx).Model(&models.CustomizedMealMenu{}).Where("id = ?", itemID).Update("image_key", key)
	default:
		return "", types.NewValidationError("invalid menu category", "فئة قائمة غير صالحة")
	}
	if res.Error != nil {
		log.Printf("image key update failed: %v", res.Error)
		return "", types.ErrSomethingWentWrong()
	}
	if res.RowsAffected == 0 {
		// Roll the orphaned blob back; the item does not exist.
		if err := s.blobs.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
			log.Printf("orphan blob cleanup failed: %v", err)
		}
		return "", types.NewNotFoundError("menu item not found", "عنصر القائمة غير موجود")
	}
	return key, nil
}
