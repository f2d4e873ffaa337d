package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// notificationService handles in-app notifications.
type notificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new NotificationServicer.
func NewNotificationService(db *gorm.DB) NotificationServicer {
	return &notificationService{db: db}
}

// CreateIfAbsent creates a notification unless one of the same type for
// the same budget was already created inside the window. The check and
// insert are not atomic; a duplicate under concurrent reads is benign.
func (s *notificationService) CreateIfAbsent(userID uint, budgetID uint, notificationType models.NotificationType, message string, windowStart, windowEnd time.Time) error {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND budget_id = ? AND type = ?", userID, budgetID, notificationType).
		Where("created_at >= ? AND created_at < ?", windowStart, windowEnd).
		Count(&count).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil
	}

	notification := &models.Notification{
		UserID:   userID,
		BudgetID: &budgetID,
		Type:     notificationType,
		Message:  message,
	}
	if err := s.db.Create(notification).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetUserNotifications returns a page of the user's notifications,
// newest first, optionally filtered by read state.
func (s *notificationService) GetUserNotifications(userID uint, read *bool, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error) {
	page.Defaults()

	query := s.db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if read != nil {
		query = query.Where("read = ?", *read)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&notifications).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(notifications, page.Page, page.PageSize, total)
	return &resp, nil
}

// MarkAsRead marks one notification as read.
func (s *notificationService) MarkAsRead(userID, notificationID uint) (*models.Notification, error) {
	notification, err := s.getOwned(userID, notificationID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(notification).Update("read", true).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	notification.Read = true
	return notification, nil
}

// MarkAllAsRead marks all of the user's unread notifications as read
// and returns how many changed.
func (s *notificationService) MarkAllAsRead(userID uint) (int64, error) {
	result := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	if result.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected, nil
}

// CountUnread returns the number of unread notifications for a user.
func (s *notificationService) CountUnread(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count, nil
}

// DeleteNotification removes a notification.
func (s *notificationService) DeleteNotification(userID, notificationID uint) error {
	notification, err := s.getOwned(userID, notificationID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(notification).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *notificationService) getOwned(userID, notificationID uint) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.Where("id = ? AND user_id = ?", notificationID, userID).First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &notification, nil
}
