package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fundit/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of fixture users.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestGuest creates a guest user whose created_at is age in the past.
func CreateTestGuest(t *testing.T, db *gorm.DB, age time.Duration) *models.User {
	t.Helper()

	user := &models.User{
		Email:    fmt.Sprintf("guest_%d@example.com", nextID()),
		IsGuest:  true,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test guest: %v", err)
	}
	created := time.Now().Add(-age)
	if err := db.Model(user).UpdateColumn("created_at", created).Error; err != nil {
		t.Fatalf("failed to backdate test guest: %v", err)
	}
	user.CreatedAt = created
	return user
}

// CreateTestIncome creates an income entry of amount on date.
func CreateTestIncome(t *testing.T, db *gorm.DB, userID, amount string, date models.Date, recurring bool) *models.Income {
	t.Helper()

	income := &models.Income{
		Owned:            models.Owned{UserID: userID},
		Amount:           models.MustMoney(amount),
		Date:             date,
		Category:         "salary",
		RecurringMonthly: recurring,
	}
	if err := db.Create(income).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return income
}

// CreateTestExpense creates a food expense of amount on date.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, amount string, date models.Date, recurring bool) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		Owned:            models.Owned{UserID: userID},
		Amount:           models.MustMoney(amount),
		Date:             date,
		Category:         "food",
		RecurringMonthly: recurring,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestBudget creates a budget for category. A nil date is only valid
// for recurring budgets.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID, category string, date *models.Date, recurring bool) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Owned:            models.Owned{UserID: userID},
		Category:         category,
		Amount:           models.MustMoney("100.00"),
		Date:             date,
		RecurringMonthly: recurring,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestGeneralSaving creates a general saving holding amount.
func CreateTestGeneralSaving(t *testing.T, db *gorm.DB, userID, amount string, date models.Date) *models.GeneralSaving {
	t.Helper()

	saving := &models.GeneralSaving{
		Owned:       models.Owned{UserID: userID},
		SavingsName: fmt.Sprintf("Savings %d", nextID()),
		Amount:      models.MustMoney(amount),
		Date:        date,
	}
	if err := db.Create(saving).Error; err != nil {
		t.Fatalf("failed to create test general saving: %v", err)
	}
	return saving
}

// CreateTestSavingsGoal creates an ongoing travel savings goal.
func CreateTestSavingsGoal(t *testing.T, db *gorm.DB, userID, goalAmount, currentAmount string) *models.SavingsGoal {
	t.Helper()

	goal := &models.SavingsGoal{
		Owned: models.Owned{UserID: userID},
		TargetGoal: models.TargetGoal{
			Category:      "travel / holiday",
			GoalName:      fmt.Sprintf("Trip %d", nextID()),
			GoalAmount:    models.MustMoney(goalAmount),
			CurrentAmount: models.MustMoney(currentAmount),
			DeadlineMode:  models.DeadlineOngoing,
		},
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test savings goal: %v", err)
	}
	return goal
}

// CreateTestRepaymentGoal creates an ongoing credit card repayment goal.
func CreateTestRepaymentGoal(t *testing.T, db *gorm.DB, userID, goalAmount, currentAmount string) *models.RepaymentGoal {
	t.Helper()

	goal := &models.RepaymentGoal{
		Owned: models.Owned{UserID: userID},
		TargetGoal: models.TargetGoal{
			Category:      "credit card",
			GoalName:      fmt.Sprintf("Card %d", nextID()),
			GoalAmount:    models.MustMoney(goalAmount),
			CurrentAmount: models.MustMoney(currentAmount),
			DeadlineMode:  models.DeadlineOngoing,
		},
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test repayment goal: %v", err)
	}
	return goal
}
