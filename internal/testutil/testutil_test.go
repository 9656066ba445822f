package testutil_test

import (
	"testing"
	"time"

	"fundit/internal/errors"
	"fundit/internal/models"
	"fundit/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "incomes", "expenses", "budgets", "general_savings", "savings_goals", "repayment_goals", "history", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have an ID")
	}

	goal := testutil.CreateTestSavingsGoal(t, db, user.ID, "2500.00", "800.00")
	if goal.CurrentAmount.String() != "800.00" {
		t.Errorf("expected current amount 800.00, got %s", goal.CurrentAmount)
	}

	var stored models.SavingsGoal
	if err := db.First(&stored, "id = ?", goal.ID).Error; err != nil {
		t.Fatalf("failed to reload savings goal: %v", err)
	}
	if stored.GoalAmount.String() != "2500.00" {
		t.Errorf("expected goal amount 2500.00 after reload, got %s", stored.GoalAmount)
	}

	date := models.NewDate(2025, time.March, 1)
	saving := testutil.CreateTestGeneralSaving(t, db, user.ID, "100.00", date)
	if saving.Date.String() != "2025-03-01" {
		t.Errorf("expected date 2025-03-01, got %s", saving.Date)
	}

	guest := testutil.CreateTestGuest(t, db, 24*time.Hour)
	if !guest.IsGuest {
		t.Error("expected guest flag")
	}
	if time.Since(guest.CreatedAt) < 23*time.Hour {
		t.Errorf("expected backdated guest, created %s", guest.CreatedAt)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrGoalNotFound, "custom message")
	testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}

func TestAssertValidationFields(t *testing.T) {
	err := errors.Validation(map[string]string{"deadline": "Deadline is required for fixed goals"})
	testutil.AssertValidationFields(t, err, "deadline")
}

func TestAssertMoney(t *testing.T) {
	testutil.AssertMoney(t, models.MustMoney("12.5"), "12.50")
}
