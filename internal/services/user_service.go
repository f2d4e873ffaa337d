package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// userService handles user-related business logic.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// CreateUser registers a new user
func (s *userService) CreateUser(name, email, password string) (*models.User, error) {
	// Validate input
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}

	// Check if user with email exists
	var count int64
	s.db.Model(&models.User{}).Where("email = ?", strings.ToLower(email)).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Create user
	user := &models.User{
		Name:     name,
		Email:    strings.ToLower(email),
		Password: string(hashedPassword),
		Role:     models.UserRoleUser,
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email
func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// VerifyPassword checks if the provided password matches the stored hash
func (s *userService) VerifyPassword(user *models.User, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	return err == nil
}

// StoreRefreshTokenHash persists the hash of the user's current refresh token.
func (s *userService) StoreRefreshTokenHash(userID uint, tokenHash string) error {
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("refresh_token_hash", tokenHash).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetRefreshTokenHash returns the stored refresh token hash for a user.
func (s *userService) GetRefreshTokenHash(userID uint) (string, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return "", err
	}
	return user.RefreshTokenHash, nil
}

// CanAccessUserData reports whether requestingUserID may view
// targetUserID's data. A user always has access to their own data;
// otherwise access requires the admin role and an active mentor link to
// the target. Re-derived on every call, never cached.
func (s *userService) CanAccessUserData(requestingUserID, targetUserID uint) (bool, error) {
	if requestingUserID == targetUserID {
		return true, nil
	}

	requester, err := s.GetUserByID(requestingUserID)
	if err != nil {
		return false, err
	}
	if !requester.IsAdmin() {
		return false, nil
	}

	target, err := s.GetUserByID(targetUserID)
	if err != nil {
		return false, err
	}
	return target.MentorID != nil && *target.MentorID == requestingUserID, nil
}

// ResolveUser returns the effective user an operation acts on. With no
// target it is the requester. With a target it enforces the delegation
// check; write operations additionally require FULL_ACCESS on the mentee.
func (s *userService) ResolveUser(requestingUserID uint, targetUserID *uint, write bool) (uint, error) {
	if targetUserID == nil || *targetUserID == requestingUserID {
		return requestingUserID, nil
	}

	canAccess, err := s.CanAccessUserData(requestingUserID, *targetUserID)
	if err != nil {
		return 0, err
	}
	if !canAccess {
		return 0, apperrors.ErrForbidden
	}

	if write {
		target, err := s.GetUserByID(*targetUserID)
		if err != nil {
			return 0, err
		}
		if target.MentorPermission == models.MentorPermissionReadOnly {
			return 0, apperrors.ErrReadOnlyAccess
		}
	}

	return *targetUserID, nil
}

// AssignMentor links a mentee to the admin as mentor with the given
// permission. Only admins may assign mentors.
func (s *userService) AssignMentor(adminID, menteeID uint, permission models.MentorPermission) (*models.User, error) {
	admin, err := s.GetUserByID(adminID)
	if err != nil {
		return nil, err
	}
	if !admin.IsAdmin() {
		return nil, apperrors.ErrAdminOnly
	}

	mentee, err := s.GetUserByID(menteeID)
	if err != nil {
		return nil, err
	}

	if permission == "" {
		permission = models.MentorPermissionReadOnly
	}

	updates := map[string]interface{}{
		"mentor_id":         adminID,
		"mentor_permission": permission,
	}
	if err := s.db.Model(mentee).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return mentee, nil
}

// RemoveMentor removes the mentor link from a mentee. Admins may only
// remove their own mentees.
func (s *userService) RemoveMentor(adminID, menteeID uint) (*models.User, error) {
	admin, err := s.GetUserByID(adminID)
	if err != nil {
		return nil, err
	}
	if !admin.IsAdmin() {
		return nil, apperrors.ErrAdminOnly
	}

	mentee, err := s.GetUserByID(menteeID)
	if err != nil {
		return nil, err
	}
	if mentee.MentorID == nil || *mentee.MentorID != adminID {
		return nil, apperrors.WithMessage(apperrors.ErrForbidden, "You can only remove your own mentees")
	}

	if err := s.db.Model(mentee).Update("mentor_id", nil).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	mentee.MentorID = nil
	return mentee, nil
}

// GetMentees returns the users mentored by the given admin.
func (s *userService) GetMentees(adminID uint) ([]models.User, error) {
	admin, err := s.GetUserByID(adminID)
	if err != nil {
		return nil, err
	}
	if !admin.IsAdmin() {
		return nil, apperrors.ErrAdminOnly
	}

	var mentees []models.User
	if err := s.db.Where("mentor_id = ?", adminID).Find(&mentees).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return mentees, nil
}

// GetAssignableUsers returns non-admin users available for mentor assignment.
func (s *userService) GetAssignableUsers(adminID uint) ([]models.User, error) {
	admin, err := s.GetUserByID(adminID)
	if err != nil {
		return nil, err
	}
	if !admin.IsAdmin() {
		return nil, apperrors.ErrAdminOnly
	}

	var users []models.User
	if err := s.db.Where("role = ? AND id <> ?", models.UserRoleUser, adminID).Find(&users).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return users, nil
}
