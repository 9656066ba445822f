package services

import (
	"testing"
	"time"

	"fundit/internal/models"
	"fundit/internal/pagination"
	"fundit/internal/testutil"
)

func TestSeedDemoData(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewGuestService(db)
	user := testutil.CreateTestUser(t, db)

	testutil.AssertNoError(t, svc.SeedDemoData(user.ID, 2025))

	counts := map[string]struct {
		model interface{}
		want  int64
	}{
		"incomes":         {&models.Income{}, 5},
		"expenses":        {&models.Expense{}, 6},
		"budgets":         {&models.Budget{}, 3},
		"general_savings": {&models.GeneralSaving{}, 2},
		"savings_goals":   {&models.SavingsGoal{}, 2},
		"repayment_goals": {&models.RepaymentGoal{}, 2},
		"history":         {&models.History{}, 12},
	}
	for table, c := range counts {
		var got int64
		db.Model(c.model).Where("user_id = ?", user.ID).Count(&got)
		if got != c.want {
			t.Errorf("%s: expected %d rows, got %d", table, c.want, got)
		}
	}

	goals := NewGoalService(db)
	list, err := goals.ListGoals(user.ID, models.GoalKindSavingsGoal, PeriodFilter{})
	testutil.AssertNoError(t, err)
	for _, goal := range list {
		history, err := goals.ListHistory(user.ID, models.RefOf(goal))
		testutil.AssertNoError(t, err)
		if len(history) != 2 {
			t.Fatalf("expected 2 history entries per goal, got %d", len(history))
		}
		if history[0].Date.String() != "2025-04-20" || history[0].Action != models.GoalActionRemove {
			t.Errorf("expected latest entry remove on 2025-04-20, got %s on %s", history[0].Action, history[0].Date)
		}
	}

	incomes, err := NewIncomeService(db).List(user.ID, PeriodFilter{Month: "2025-03"}, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if incomes.TotalItems != 3 {
		t.Errorf("expected 3 recurring incomes in March, got %d", incomes.TotalItems)
	}
}

func TestDeleteStaleGuests(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewGuestService(db)

	stale := testutil.CreateTestGuest(t, db, 13*time.Hour)
	fresh := testutil.CreateTestGuest(t, db, time.Hour)
	member := testutil.CreateTestUser(t, db)
	db.Model(member).UpdateColumn("created_at", time.Now().Add(-48*time.Hour))
	testutil.AssertNoError(t, svc.SeedDemoData(stale.ID, 2025))

	deleted, err := svc.DeleteStaleGuests(12 * time.Hour)
	testutil.AssertNoError(t, err)
	if deleted != 1 {
		t.Fatalf("expected 1 guest deleted, got %d", deleted)
	}

	users := NewUserService(db)
	_, err = users.GetUserByID(stale.ID)
	testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	if _, err := users.GetUserByID(fresh.ID); err != nil {
		t.Errorf("fresh guest should be kept: %v", err)
	}
	if _, err := users.GetUserByID(member.ID); err != nil {
		t.Errorf("regular user should be kept: %v", err)
	}

	var left int64
	db.Model(&models.History{}).Where("user_id = ?", stale.ID).Count(&left)
	if left != 0 {
		t.Errorf("expected stale guest history removed, %d left", left)
	}
}
