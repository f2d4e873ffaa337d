package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// categoryService handles category business logic.
type categoryService struct {
	db    *gorm.DB
	users UserServicer
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB, users UserServicer) CategoryServicer {
	return &categoryService{db: db, users: users}
}

// CreateCategory creates a category for the effective user. Category
// names are unique per user.
func (s *categoryService) CreateCategory(requestingUserID uint, targetUserID *uint, name, icon string, categoryType models.CategoryType) (*models.Category, error) {
	userID, err := s.users.ResolveUser(requestingUserID, targetUserID, true)
	if err != nil {
		return nil, err
	}

	var count int64
	s.db.Model(&models.Category{}).Where("user_id = ? AND name = ?", userID, name).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.Category{
		UserID: userID,
		Name:   name,
		Icon:   icon,
		Type:   categoryType,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// GetUserCategories returns the effective user's categories.
func (s *categoryService) GetUserCategories(requestingUserID uint, targetUserID *uint) ([]models.Category, error) {
	userID, err := s.users.ResolveUser(requestingUserID, targetUserID, false)
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// UpdateCategory updates a category's name, icon, or type.
func (s *categoryService) UpdateCategory(requestingUserID, categoryID uint, name, icon string, categoryType *models.CategoryType) (*models.Category, error) {
	category, err := s.getOwned(requestingUserID, categoryID, true)
	if err != nil {
		return nil, err
	}

	if name != "" && name != category.Name {
		var count int64
		s.db.Model(&models.Category{}).
			Where("user_id = ? AND name = ? AND id <> ?", category.UserID, name, category.ID).
			Count(&count)
		if count > 0 {
			return nil, apperrors.ErrDuplicateCategory
		}
	}

	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if icon != "" {
		updates["icon"] = icon
	}
	if categoryType != nil {
		updates["type"] = *categoryType
	}
	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return category, nil
}

// DeleteCategory soft-deletes a category. Transactions keep their
// category reference; reads treat a deleted category as uncategorized.
func (s *categoryService) DeleteCategory(requestingUserID, categoryID uint) error {
	category, err := s.getOwned(requestingUserID, categoryID, true)
	if err != nil {
		return err
	}
	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ValidateOwnership checks that a category belongs to a user.
func (s *categoryService) ValidateOwnership(userID, categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

func (s *categoryService) getOwned(requestingUserID, categoryID uint, write bool) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if _, err := s.users.ResolveUser(requestingUserID, &category.UserID, write); err != nil {
		return nil, err
	}
	return &category, nil
}
