package services

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// UserUpdate holds optional profile fields for a partial update.
// Nil fields are left unchanged.
type UserUpdate struct {
	Username       *string
	Email          *string
	Password       *string
	FirstName      *string
	LastName       *string
	DOB            *time.Time
	AvatarURL      *string
	InitialBalance *decimal.Decimal
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, email, password, firstName, lastName string, dob *time.Time, initialBalance decimal.Decimal) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	UpdateUser(userID string, update UserUpdate) (*models.User, error)
	DeleteUser(userID string) error
	GetTotalBalance(userID string) (decimal.Decimal, error)
}

// TokenServicer defines the contract for opaque auth token management.
type TokenServicer interface {
	IssueToken(userID string) (string, error)
	ResolveToken(raw string) (string, error)
	RevokeToken(raw string) error
	RevokeUserTokens(userID string) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, name string, categoryType models.CategoryType, color string) (*models.Category, error)
	GetUserCategories(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetUserCategoriesByType(userID string, categoryType models.CategoryType, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID, name string, categoryType models.CategoryType, color string) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	CategoryID *string
}

// TransactionUpdate holds optional transaction fields for a partial update.
type TransactionUpdate struct {
	CategoryID  *string
	Title       *string
	Description *string
	Amount      *decimal.Decimal
	Date        *time.Time
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID, categoryID, title, description string, amount decimal.Decimal, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, update TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// GoalUpdate holds optional goal fields for a partial update.
type GoalUpdate struct {
	Title       *string
	Description *string
	Amount      *decimal.Decimal
	Date        *time.Time
}

// GoalServicer defines the contract for goal-related business logic.
type GoalServicer interface {
	CreateGoal(userID, title, description string, amount decimal.Decimal, date time.Time) (*models.Goal, error)
	GetUserGoals(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error)
	GetGoalByID(userID, goalID string) (*models.Goal, error)
	UpdateGoal(userID, goalID string, update GoalUpdate) (*models.Goal, error)
	DeleteGoal(userID, goalID string) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
