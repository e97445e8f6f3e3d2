package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
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
func (s *userService) CreateUser(username, email, password, firstName, lastName string, dob *time.Time, initialBalance decimal.Decimal) (*models.User, error) {
	// Validate input
	if username == "" || email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "username, email and password are required")
	}

	email = strings.ToLower(email)

	// Check uniqueness up front for a precise error message
	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateUsername
	}

	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Username:       username,
		Email:          email,
		Password:       string(hashedPassword),
		FirstName:      firstName,
		LastName:       lastName,
		DOB:            dob,
		InitialBalance: initialBalance,
	}

	if err := s.db.Create(user).Error; err != nil {
		// Two registrations racing past the count check land here; the
		// unique indexes are the source of truth.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Wrap(s.classifyDuplicate(username, email), err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username
func (s *userService) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
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

// UpdateUser applies a partial update to the user's own profile.
// The owner of a record can never change; there is no owner field to update.
func (s *userService) UpdateUser(userID string, update UserUpdate) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Username != nil && *update.Username != "" {
		updates["username"] = *update.Username
	}
	if update.Email != nil && *update.Email != "" {
		updates["email"] = strings.ToLower(*update.Email)
	}
	if update.Password != nil && *update.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		updates["password"] = string(hashed)
	}
	if update.FirstName != nil {
		updates["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		updates["last_name"] = *update.LastName
	}
	if update.DOB != nil {
		updates["dob"] = *update.DOB
	}
	if update.AvatarURL != nil {
		updates["avatar_url"] = *update.AvatarURL
	}
	if update.InitialBalance != nil {
		updates["initial_balance"] = *update.InitialBalance
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				username, _ := updates["username"].(string)
				email, _ := updates["email"].(string)
				return nil, apperrors.Wrap(s.classifyDuplicate(username, email), err)
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return user, nil
}

// classifyDuplicate decides which unique column a rejected insert or update
// collided on by checking which of the attempted values is already taken.
// The winner of the race holds the row, so the lookup is authoritative.
func (s *userService) classifyDuplicate(username, email string) *apperrors.AppError {
	var count int64
	if username != "" {
		if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err == nil && count > 0 {
			return apperrors.ErrDuplicateUsername
		}
	}
	if email != "" {
		if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err == nil && count > 0 {
			return apperrors.ErrDuplicateEmail
		}
	}
	return apperrors.ErrDuplicateUsername
}

// DeleteUser removes the user and everything they own in a single
// transaction: transactions, categories, goals, and auth tokens.
func (s *userService) DeleteUser(userID string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		// Transactions reference categories, so they go first.
		if err := tx.Where("user_id = ?", userID).Delete(&models.Transaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Category{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Goal{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.AuthToken{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(user).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// GetTotalBalance computes initial_balance + income - expenses across the
// user's transactions, grouped by the owning category's type.
func (s *userService) GetTotalBalance(userID string) (decimal.Decimal, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return decimal.Zero, err
	}

	sumByType := func(categoryType models.CategoryType) (decimal.Decimal, error) {
		var total decimal.Decimal
		err := s.db.Model(&models.Transaction{}).
			Joins("JOIN categories ON categories.id = transactions.category_id").
			Where("transactions.user_id = ? AND categories.type = ?", userID, categoryType).
			Select("COALESCE(SUM(transactions.amount), 0)").
			Scan(&total).Error
		if err != nil {
			return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return total, nil
	}

	income, err := sumByType(models.CategoryTypeIncome)
	if err != nil {
		return decimal.Zero, err
	}
	expenses, err := sumByType(models.CategoryTypeExpense)
	if err != nil {
		return decimal.Zero, err
	}

	return user.InitialBalance.Add(income).Sub(expenses), nil
}
