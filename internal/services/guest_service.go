package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "fundit/internal/errors"
	"fundit/internal/logger"
	"fundit/internal/models"
)

// guestService seeds demo data for guests and removes expired guests.
type guestService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGuestService creates a new GuestServicer.
func NewGuestService(db *gorm.DB) GuestServicer {
	return &guestService{db: db, now: time.Now}
}

type demoMutation struct {
	action models.GoalAction
	amount string
}

var (
	generalSavingDemoHistory = []demoMutation{{models.GoalActionAdd, "100.00"}, {models.GoalActionRemove, "30.00"}}
	savingsGoalDemoHistory   = []demoMutation{{models.GoalActionAdd, "100.00"}, {models.GoalActionRemove, "50.00"}}
	repaymentGoalDemoHistory = []demoMutation{{models.GoalActionAdd, "200.00"}, {models.GoalActionRemove, "100.00"}}
)

// SeedDemoData fills a fresh account with a year of sample records.
func (s *guestService) SeedDemoData(userID string, year int) error {
	jan := func(day int) models.Date { return models.NewDate(year, time.January, day) }
	on := func(month time.Month) *models.Date {
		d := models.NewDate(year, month, 15)
		return &d
	}
	owned := models.Owned{UserID: userID}

	incomes := []models.Income{
		{Owned: owned, Category: "salary", Amount: models.MustMoney("3200.00"), Date: jan(15), RecurringMonthly: true},
		{Owned: owned, Category: "extra income", Amount: models.MustMoney("300.00"), Date: jan(15), RecurringMonthly: true},
		{Owned: owned, Category: "other", Amount: models.MustMoney("30.00"), Date: jan(15), RecurringMonthly: true},
		{Owned: owned, Category: "investments", Amount: models.MustMoney("80.00"), Date: jan(15)},
		{Owned: owned, Category: "custom", CustomCategory: "Etsy", Amount: models.MustMoney("300.00"), Date: *on(time.May), RecurringMonthly: true},
	}
	expenses := []models.Expense{
		{Owned: owned, Category: "housing", Amount: models.MustMoney("1400.00"), Date: jan(15), RecurringMonthly: true},
		{Owned: owned, Category: "personal", Amount: models.MustMoney("200.00"), Date: jan(15), RecurringMonthly: true},
		{Owned: owned, Category: "food", Amount: models.MustMoney("300.00"), Date: jan(15), RecurringMonthly: true},
		{Owned: owned, Category: "entertainment", Amount: models.MustMoney("60.00"), Date: jan(15), RecurringMonthly: true},
		{Owned: owned, Category: "debt", Amount: models.MustMoney("150.00"), Date: jan(15), RecurringMonthly: true},
		{Owned: owned, Category: "savings", Amount: models.MustMoney("200.00"), Date: jan(15), RecurringMonthly: true},
	}
	budgets := []models.Budget{
		{Owned: owned, Category: "savings", Amount: models.MustMoney("400.00"), Date: on(time.January), RecurringMonthly: true},
		{Owned: owned, Category: "debt", Amount: models.MustMoney("200.00"), Date: on(time.January), RecurringMonthly: true},
		{Owned: owned, Category: "food", Amount: models.MustMoney("300.00"), Date: on(time.January), RecurringMonthly: true},
	}
	generalSavings := []models.GeneralSaving{
		{Owned: owned, SavingsName: "Emergency Fund", Amount: models.MustMoney("1100.00"), Date: *on(time.March)},
		{Owned: owned, SavingsName: "Main Savings", Amount: models.MustMoney("2800.00"), Date: jan(15)},
	}
	savingsGoals := []models.SavingsGoal{
		{Owned: owned, TargetGoal: models.TargetGoal{
			Category: "travel / holiday", GoalName: "Italy Trip",
			GoalAmount: models.MustMoney("2500.00"), CurrentAmount: models.MustMoney("800.00"),
			DeadlineMode: models.DeadlineFixed, Deadline: on(time.January),
		}},
		{Owned: owned, TargetGoal: models.TargetGoal{
			Category: "new home", GoalName: "First Home",
			GoalAmount: models.MustMoney("50000.00"), CurrentAmount: models.MustMoney("20000.00"),
			DeadlineMode: models.DeadlineOngoing,
		}},
	}
	repaymentGoals := []models.RepaymentGoal{
		{Owned: owned, TargetGoal: models.TargetGoal{
			Category: "credit card", GoalName: "Barclays Credit Card",
			GoalAmount: models.MustMoney("2500.00"), CurrentAmount: models.MustMoney("2100.00"),
			DeadlineMode: models.DeadlineFixed, Deadline: on(time.October),
		}},
		{Owned: owned, TargetGoal: models.TargetGoal{
			Category: "credit card", GoalName: "Natwest Credit Card",
			GoalAmount: models.MustMoney("700.00"), CurrentAmount: models.MustMoney("300.00"),
			DeadlineMode: models.DeadlineFixed, Deadline: on(time.August),
		}},
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, rows := range []interface{}{&incomes, &expenses, &budgets, &generalSavings, &savingsGoals, &repaymentGoals} {
			if err := tx.Create(rows).Error; err != nil {
				return err
			}
		}

		var history []models.History
		for i := range generalSavings {
			history = append(history, demoHistory(&generalSavings[i], generalSavingDemoHistory, year, time.March)...)
		}
		for i := range savingsGoals {
			history = append(history, demoHistory(&savingsGoals[i], savingsGoalDemoHistory, year, time.March)...)
		}
		for i := range repaymentGoals {
			history = append(history, demoHistory(&repaymentGoals[i], repaymentGoalDemoHistory, year, time.February)...)
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("seeded demo data", "user_id", userID, "year", year, "history_rows", 2*(len(generalSavings)+len(savingsGoals)+len(repaymentGoals)))
	return nil
}

// demoHistory returns one row per mutation, on the 20th of consecutive
// months starting at first.
func demoHistory(entity models.GoalEntity, mutations []demoMutation, year int, first time.Month) []models.History {
	owner := entity.OwnerID()
	rows := make([]models.History, 0, len(mutations))
	for i, m := range mutations {
		rows = append(rows, models.History{
			UserID:     &owner,
			Action:     m.action,
			Amount:     models.MustMoney(m.amount),
			Date:       models.NewDate(year, first+time.Month(i), 20),
			TargetKind: entity.Kind(),
			TargetID:   entity.GetID(),
		})
	}
	return rows
}

// DeleteStaleGuests removes guest users created more than olderThan ago,
// together with everything they own.
func (s *guestService) DeleteStaleGuests(olderThan time.Duration) (int64, error) {
	cutoff := s.now().Add(-olderThan)

	var ids []string
	err := s.db.Model(&models.User{}).
		Where("is_guest = ? AND created_at < ?", true, cutoff).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var deleted int64
	for _, id := range ids {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			return deleteUserRows(tx, id)
		})
		if err != nil {
			logger.Get().Errorw("failed to delete guest", "error", err, "user_id", id)
			continue
		}
		deleted++
	}

	logger.Get().Infow("deleted stale guests", "count", deleted, "cutoff", cutoff)
	return deleted, nil
}
