package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
	"fintrack/internal/uuid"
)

func TestCreateUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("alice", "alice@example.com", "Password1!", "Alice", "Smith", nil, decimal.RequireFromString("100.00"))
		testutil.AssertNoError(t, err)

		if user.ID == "" {
			t.Fatal("expected generated user ID")
		}
		if user.Username != "alice" {
			t.Errorf("expected username alice, got %s", user.Username)
		}
		if user.Password == "Password1!" {
			t.Error("password should be stored hashed")
		}
		if !user.InitialBalance.Equal(decimal.RequireFromString("100.00")) {
			t.Errorf("expected initial balance 100.00, got %s", user.InitialBalance)
		}
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("", "a@example.com", "Password1!", "", "", nil, decimal.Zero)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateUser("alice", "", "Password1!", "", "", nil, decimal.Zero)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateUser("alice", "a@example.com", "", "", "", nil, decimal.Zero)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate_username", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("alice", "alice@example.com", "Password1!", "", "", nil, decimal.Zero)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("alice", "other@example.com", "Password1!", "", "", nil, decimal.Zero)
		testutil.AssertAppError(t, err, "DUPLICATE_USERNAME")
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("alice", "alice@example.com", "Password1!", "", "", nil, decimal.Zero)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("bob", "alice@example.com", "Password1!", "", "", nil, decimal.Zero)
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("email_is_lowercased", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("alice", "Alice@Example.COM", "Password1!", "", "", nil, decimal.Zero)
		testutil.AssertNoError(t, err)

		if user.Email != "alice@example.com" {
			t.Errorf("expected lowercased email, got %s", user.Email)
		}
	})
}

func TestVerifyPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	user, err := svc.CreateUser("alice", "alice@example.com", "Password1!", "", "", nil, decimal.Zero)
	testutil.AssertNoError(t, err)

	if !svc.VerifyPassword(user, "Password1!") {
		t.Error("expected correct password to verify")
	}
	if svc.VerifyPassword(user, "wrong-password") {
		t.Error("expected wrong password to fail")
	}
}

func TestGetUserByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		found, err := svc.GetUserByID(user.ID)
		testutil.AssertNoError(t, err)
		if found.Username != user.Username {
			t.Errorf("expected username %s, got %s", user.Username, found.Username)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.GetUserByID(uuid.New())
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		firstName := "Alice"
		balance := decimal.RequireFromString("250.00")
		updated, err := svc.UpdateUser(user.ID, UserUpdate{
			FirstName:      &firstName,
			InitialBalance: &balance,
		})
		testutil.AssertNoError(t, err)

		if updated.FirstName != "Alice" {
			t.Errorf("expected first name Alice, got %s", updated.FirstName)
		}

		// Untouched fields survive
		if updated.Username != user.Username {
			t.Errorf("username should be unchanged, got %s", updated.Username)
		}
	})

	t.Run("password_is_rehashed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		newPassword := "NewPassword2@"
		_, err := svc.UpdateUser(user.ID, UserUpdate{Password: &newPassword})
		testutil.AssertNoError(t, err)

		reloaded, err := svc.GetUserByID(user.ID)
		testutil.AssertNoError(t, err)

		if reloaded.Password == newPassword {
			t.Error("password should be stored hashed")
		}
		if !svc.VerifyPassword(reloaded, newPassword) {
			t.Error("new password should verify")
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		name := "Ghost"
		_, err := svc.UpdateUser(uuid.New(), UserUpdate{FirstName: &name})
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("cascades_to_owned_records", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		testutil.CreateTestTransaction(t, db, user.ID, category.ID, "10.00")
		testutil.CreateTestGoal(t, db, user.ID, "500.00")

		testutil.AssertNoError(t, svc.DeleteUser(user.ID))

		_, err := svc.GetUserByID(user.ID)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")

		var count int64
		for _, model := range []interface{}{&models.Category{}, &models.Transaction{}, &models.Goal{}, &models.AuthToken{}} {
			if err := db.Model(model).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
				t.Fatalf("count query failed: %v", err)
			}
			if count != 0 {
				t.Errorf("expected no %T rows after user deletion, got %d", model, count)
			}
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		err := svc.DeleteUser(uuid.New())
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestGetTotalBalance(t *testing.T) {
	t.Run("income_minus_expenses", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("alice", "alice@example.com", "Password1!", "", "", nil, decimal.RequireFromString("100.00"))
		testutil.AssertNoError(t, err)

		income := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)
		expense := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		testutil.CreateTestTransaction(t, db, user.ID, income.ID, "1500.00")
		testutil.CreateTestTransaction(t, db, user.ID, expense.ID, "200.50")
		testutil.CreateTestTransaction(t, db, user.ID, expense.ID, "99.50")

		total, err := svc.GetTotalBalance(user.ID)
		testutil.AssertNoError(t, err)

		// 100.00 + 1500.00 - 200.50 - 99.50
		if !total.Equal(decimal.RequireFromString("1300.00")) {
			t.Errorf("expected total balance 1300.00, got %s", total)
		}
	})

	t.Run("no_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("bob", "bob@example.com", "Password1!", "", "", nil, decimal.RequireFromString("42.00"))
		testutil.AssertNoError(t, err)

		total, err := svc.GetTotalBalance(user.ID)
		testutil.AssertNoError(t, err)

		if !total.Equal(decimal.RequireFromString("42.00")) {
			t.Errorf("expected total balance 42.00, got %s", total)
		}
	})

	t.Run("other_users_excluded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)

		bobIncome := testutil.CreateTestCategory(t, db, bob.ID, models.CategoryTypeIncome)
		testutil.CreateTestTransaction(t, db, bob.ID, bobIncome.ID, "9999.00")

		total, err := svc.GetTotalBalance(alice.ID)
		testutil.AssertNoError(t, err)

		if !total.Equal(alice.InitialBalance) {
			t.Errorf("expected alice's balance to ignore bob's transactions, got %s", total)
		}
	})
}

func TestClassifyDuplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db).(*userService)

	_, err := svc.CreateUser("alice", "alice@example.com", "Password1!", "", "", nil, decimal.Zero)
	testutil.AssertNoError(t, err)

	t.Run("email_collision", func(t *testing.T) {
		appErr := svc.classifyDuplicate("someone-new", "alice@example.com")
		if appErr.Code != "DUPLICATE_EMAIL" {
			t.Errorf("expected DUPLICATE_EMAIL, got %s", appErr.Code)
		}
	})

	t.Run("username_collision", func(t *testing.T) {
		appErr := svc.classifyDuplicate("alice", "new@example.com")
		if appErr.Code != "DUPLICATE_USERNAME" {
			t.Errorf("expected DUPLICATE_USERNAME, got %s", appErr.Code)
		}
	})

	t.Run("username_wins_when_both_collide", func(t *testing.T) {
		appErr := svc.classifyDuplicate("alice", "alice@example.com")
		if appErr.Code != "DUPLICATE_USERNAME" {
			t.Errorf("expected DUPLICATE_USERNAME, got %s", appErr.Code)
		}
	})

	t.Run("email_only_known", func(t *testing.T) {
		appErr := svc.classifyDuplicate("", "alice@example.com")
		if appErr.Code != "DUPLICATE_EMAIL" {
			t.Errorf("expected DUPLICATE_EMAIL, got %s", appErr.Code)
		}
	})
}
