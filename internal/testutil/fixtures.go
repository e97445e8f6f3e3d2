package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username and email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	n := nextID()
	return CreateTestUserWithUsername(t, db, fmt.Sprintf("user%d", n))
}

// CreateTestUserWithUsername creates a user with the given username.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Password1!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@test.com", username),
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   fmt.Sprintf("Test Category %d", nextID()),
		Type:   categoryType,
		Color:  "#000000",
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction in the given category.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, categoryID, amount string) *models.Transaction {
	t.Helper()

	transaction := &models.Transaction{
		UserID:     userID,
		CategoryID: categoryID,
		Title:      fmt.Sprintf("Test Transaction %d", nextID()),
		Amount:     decimal.RequireFromString(amount),
		Date:       time.Now().UTC().Truncate(time.Second),
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}

// CreateTestGoal creates a goal with the given target amount.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID, amount string) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		UserID: userID,
		Title:  fmt.Sprintf("Test Goal %d", nextID()),
		Amount: decimal.RequireFromString(amount),
		Date:   time.Now().UTC().AddDate(1, 0, 0).Truncate(time.Second),
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}
