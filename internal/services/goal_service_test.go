package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/pagination"
	"fintrack/internal/testutil"
	"fintrack/internal/uuid"
)

func TestCreateGoal(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		date := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
		goal, err := svc.CreateGoal(user.ID, "New laptop", "Save up for a laptop", decimal.RequireFromString("2000.00"), date)
		testutil.AssertNoError(t, err)

		if goal.ID == "" {
			t.Fatal("expected generated goal ID")
		}
		if goal.Title != "New laptop" {
			t.Errorf("expected title 'New laptop', got %s", goal.Title)
		}
		if !goal.Amount.Equal(decimal.RequireFromString("2000.00")) {
			t.Errorf("expected amount 2000.00, got %s", goal.Amount)
		}
	})

	t.Run("missing_title", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGoal(user.ID, "", "", decimal.RequireFromString("100.00"), time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("negative_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGoal(user.ID, "Impossible", "", decimal.RequireFromString("-5.00"), time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("zero_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGoal(user.ID, "No deadline", "", decimal.RequireFromString("100.00"), time.Time{})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserGoals(t *testing.T) {
	t.Run("owner_scoped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)

		testutil.CreateTestGoal(t, db, alice.ID, "100.00")
		testutil.CreateTestGoal(t, db, alice.ID, "200.00")
		testutil.CreateTestGoal(t, db, bob.ID, "300.00")

		result, err := svc.GetUserGoals(alice.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Errorf("expected 2 goals for alice, got %d", result.TotalItems)
		}
		for _, goal := range result.Data {
			if goal.UserID != alice.ID {
				t.Errorf("goal %s belongs to wrong user", goal.ID)
			}
		}
	})

	t.Run("latest_target_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		near := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
		far := time.Date(2028, 12, 1, 0, 0, 0, 0, time.UTC)

		_, err := svc.CreateGoal(user.ID, "Near", "", decimal.RequireFromString("100.00"), near)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateGoal(user.ID, "Far", "", decimal.RequireFromString("200.00"), far)
		testutil.AssertNoError(t, err)

		result, err := svc.GetUserGoals(user.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		if len(result.Data) != 2 {
			t.Fatalf("expected 2 goals, got %d", len(result.Data))
		}
		if result.Data[0].Title != "Far" {
			t.Errorf("expected goal with latest date first, got %s", result.Data[0].Title)
		}
	})
}

func TestGetGoalByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, "500.00")

		found, err := svc.GetGoalByID(user.ID, goal.ID)
		testutil.AssertNoError(t, err)
		if found.Title != goal.Title {
			t.Errorf("expected title %s, got %s", goal.Title, found.Title)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetGoalByID(user.ID, uuid.New())
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})

	t.Run("other_users_goal_is_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, alice.ID, "500.00")

		_, err := svc.GetGoalByID(bob.ID, goal.ID)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}

func TestUpdateGoal(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, "500.00")

		title := "Adjusted goal"
		amount := decimal.RequireFromString("750.00")
		updated, err := svc.UpdateGoal(user.ID, goal.ID, GoalUpdate{
			Title:  &title,
			Amount: &amount,
		})
		testutil.AssertNoError(t, err)

		if updated.Title != "Adjusted goal" {
			t.Errorf("expected updated title, got %s", updated.Title)
		}
		if !updated.Amount.Equal(amount) {
			t.Errorf("expected amount 750.00, got %s", updated.Amount)
		}
	})

	t.Run("negative_amount_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, "500.00")

		amount := decimal.RequireFromString("-1.00")
		_, err := svc.UpdateGoal(user.ID, goal.ID, GoalUpdate{Amount: &amount})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		title := "Nope"
		_, err := svc.UpdateGoal(user.ID, uuid.New(), GoalUpdate{Title: &title})
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}

func TestDeleteGoal(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, "500.00")

		testutil.AssertNoError(t, svc.DeleteGoal(user.ID, goal.ID))

		_, err := svc.GetGoalByID(user.ID, goal.ID)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})

	t.Run("other_users_goal_is_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, alice.ID, "500.00")

		err := svc.DeleteGoal(bob.ID, goal.ID)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")

		_, err = svc.GetGoalByID(alice.ID, goal.ID)
		testutil.AssertNoError(t, err)
	})
}
