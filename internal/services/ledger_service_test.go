package services

import (
	"testing"
	"time"

	"fundit/internal/models"
	"fundit/internal/pagination"
	"fundit/internal/testutil"
)

func datePtr(d models.Date) *models.Date { return &d }

func TestLedgerCreate(t *testing.T) {
	t.Run("valid_income", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)

		income, err := svc.Create(user.ID, &models.Income{
			Amount: models.MustMoney("3200.00"), Date: models.NewDate(2025, time.January, 15), Category: "salary",
		})
		testutil.AssertNoError(t, err)

		if income.ID == "" {
			t.Fatal("expected income ID")
		}
		if income.UserID != user.ID {
			t.Errorf("expected owner %s, got %s", user.ID, income.UserID)
		}
	})

	t.Run("custom_category_requires_label", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Create(user.ID, &models.Expense{
			Amount: models.MustMoney("10.00"), Date: models.NewDate(2025, time.January, 15), Category: "custom",
		})
		testutil.AssertValidationFields(t, err, "custom_category")
	})

	t.Run("unknown_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Create(user.ID, &models.Expense{
			Amount: models.MustMoney("10.00"), Date: models.NewDate(2025, time.January, 15), Category: "yachts",
		})
		testutil.AssertValidationFields(t, err, "category")
	})

	t.Run("one_off_budget_requires_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Create(user.ID, &models.Budget{Amount: models.MustMoney("300.00"), Category: "food"})
		testutil.AssertValidationFields(t, err, "date")

		_, err = svc.Create(user.ID, &models.Budget{Amount: models.MustMoney("300.00"), Category: "food", RecurringMonthly: true})
		testutil.AssertNoError(t, err)
	})
}

func TestLedgerList(t *testing.T) {
	page := pagination.PageRequest{Page: 1, PageSize: 20}

	t.Run("month_includes_earlier_recurring", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestIncome(t, db, user.ID, "3200.00", models.NewDate(2025, time.January, 15), true)
		testutil.CreateTestIncome(t, db, user.ID, "80.00", models.NewDate(2025, time.January, 15), false)
		testutil.CreateTestIncome(t, db, user.ID, "50.00", models.NewDate(2025, time.March, 2), false)
		testutil.CreateTestIncome(t, db, user.ID, "20.00", models.NewDate(2025, time.April, 2), true)

		result, err := svc.List(user.ID, PeriodFilter{Month: "2025-03"}, page)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Fatalf("expected 2 incomes for March, got %d", result.TotalItems)
		}
		if result.Data[0].Amount.String() != "3200.00" || result.Data[1].Amount.String() != "50.00" {
			t.Errorf("expected recurring salary then March entry ordered by date, got %s, %s",
				result.Data[0].Amount, result.Data[1].Amount)
		}
	})

	t.Run("december_rolls_into_next_year", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestExpense(t, db, user.ID, "10.00", models.NewDate(2024, time.December, 31), false)
		testutil.CreateTestExpense(t, db, user.ID, "20.00", models.NewDate(2025, time.January, 1), false)

		result, err := svc.List(user.ID, PeriodFilter{Month: "2024-12"}, page)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 expense in December, got %d", result.TotalItems)
		}
	})

	t.Run("year_filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestExpense(t, db, user.ID, "10.00", models.NewDate(2024, time.December, 31), true)
		testutil.CreateTestExpense(t, db, user.ID, "20.00", models.NewDate(2025, time.June, 1), false)

		year := 2025
		result, err := svc.List(user.ID, PeriodFilter{Year: &year}, page)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 expense in 2025, got %d", result.TotalItems)
		}
	})

	t.Run("malformed_month_ignored", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestIncome(t, db, user.ID, "1.00", models.NewDate(2025, time.January, 1), false)
		testutil.CreateTestIncome(t, db, user.ID, "2.00", models.NewDate(2025, time.July, 1), false)

		result, err := svc.List(user.ID, PeriodFilter{Month: "march"}, page)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Errorf("expected filter to be ignored, got %d items", result.TotalItems)
		}
	})

	t.Run("budgets_include_undated_recurring", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestBudget(t, db, user.ID, "food", nil, true)
		testutil.CreateTestBudget(t, db, user.ID, "debt", datePtr(models.NewDate(2025, time.March, 15)), false)
		testutil.CreateTestBudget(t, db, user.ID, "housing", datePtr(models.NewDate(2025, time.May, 15)), false)

		result, err := svc.List(user.ID, PeriodFilter{Month: "2025-03"}, page)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Errorf("expected 2 budgets for March, got %d", result.TotalItems)
		}
	})

	t.Run("returns_user_entries_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		testutil.CreateTestIncome(t, db, user1.ID, "1.00", models.NewDate(2025, time.January, 1), false)
		testutil.CreateTestIncome(t, db, user2.ID, "2.00", models.NewDate(2025, time.January, 1), false)

		result, err := svc.List(user1.ID, PeriodFilter{}, page)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 income, got %d", result.TotalItems)
		}
	})
}

func TestLedgerUpdateDelete(t *testing.T) {
	t.Run("update_replaces_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)
		income := testutil.CreateTestIncome(t, db, user.ID, "1.00", models.NewDate(2025, time.January, 1), true)

		updated, err := svc.Update(user.ID, income.ID, &models.Income{
			Amount: models.MustMoney("99.99"), Date: models.NewDate(2025, time.February, 1),
			Category: "custom", CustomCategory: "Etsy",
		})
		testutil.AssertNoError(t, err)

		if updated.Amount.String() != "99.99" || updated.CustomCategory != "Etsy" {
			t.Errorf("unexpected update result: %s %s", updated.Amount, updated.CustomCategory)
		}
		if updated.RecurringMonthly {
			t.Error("expected recurring flag cleared")
		}
	})

	t.Run("update_wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		income := testutil.CreateTestIncome(t, db, owner.ID, "1.00", models.NewDate(2025, time.January, 1), false)

		_, err := svc.Update(other.ID, income.ID, &models.Income{
			Amount: models.MustMoney("2.00"), Date: models.NewDate(2025, time.January, 1), Category: "salary",
		})
		testutil.AssertAppError(t, err, "INCOME_NOT_FOUND")
	})

	t.Run("delete", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)
		expense := testutil.CreateTestExpense(t, db, user.ID, "1.00", models.NewDate(2025, time.January, 1), false)

		testutil.AssertNoError(t, svc.Delete(user.ID, expense.ID))

		_, err := svc.Get(user.ID, expense.ID)
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")

		err = svc.Delete(user.ID, expense.ID)
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})
}
