package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "fundit/internal/errors"
	"fundit/internal/models"
)

// goalService implements the goal-tracking engine.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// ParseMutationInput converts raw update-amount input. The amount is
// checked first, then the date, then the action.
func ParseMutationInput(action, amount, date string) (models.GoalAction, decimal.Decimal, models.Date, error) {
	amt, err := models.ParseMoney(amount)
	if err != nil || !amt.IsPositive() || !amt.HasCents() {
		return "", decimal.Zero, models.Date{}, apperrors.ErrInvalidAmount
	}

	if strings.TrimSpace(date) == "" {
		return "", decimal.Zero, models.Date{}, apperrors.ErrInvalidDate
	}
	effective, err := models.ParseDate(date)
	if err != nil {
		return "", decimal.Zero, models.Date{}, apperrors.ErrInvalidDate
	}

	act := models.GoalAction(action)
	if !act.Valid() {
		return "", decimal.Zero, models.Date{}, apperrors.ErrInvalidAction
	}

	return act, amt.Decimal, effective, nil
}

// CreateGoal validates and stores a new goal entity owned by userID.
func (s *goalService) CreateGoal(userID string, entity models.GoalEntity) (models.GoalEntity, error) {
	entity.SetOwner(userID)
	if err := entity.Validate(); err != nil {
		return nil, err
	}
	if err := s.db.Create(entity).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entity, nil
}

// ListGoals returns the user's entities of kind. General savings honour the
// year/month filter without the recurring clause.
func (s *goalService) ListGoals(userID string, kind models.GoalKind, filter PeriodFilter) ([]models.GoalEntity, error) {
	query := s.db.Where("user_id = ?", userID)

	var err error
	out := []models.GoalEntity{}
	switch kind {
	case models.GoalKindGeneralSaving:
		query = applyMonthFilter(applyYearFilter(query, filter.Year), filter.Month, false)
		var rows []models.GeneralSaving
		err = query.Order("date ASC").Find(&rows).Error
		for i := range rows {
			out = append(out, &rows[i])
		}
	case models.GoalKindSavingsGoal:
		var rows []models.SavingsGoal
		err = query.Order("created_at ASC").Find(&rows).Error
		for i := range rows {
			out = append(out, &rows[i])
		}
	case models.GoalKindRepaymentGoal:
		var rows []models.RepaymentGoal
		err = query.Order("created_at ASC").Find(&rows).Error
		for i := range rows {
			out = append(out, &rows[i])
		}
	default:
		return nil, apperrors.ErrInvalidGoalKind
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return out, nil
}

// GetGoal loads one entity scoped to its owner.
func (s *goalService) GetGoal(userID string, ref models.TargetRef) (models.GoalEntity, error) {
	return s.load(s.db, ref, userID)
}

// UpdateGoal replaces the user-editable fields of an entity. The running
// amount only changes through ApplyGoalMutation.
func (s *goalService) UpdateGoal(userID string, ref models.TargetRef, entity models.GoalEntity) (models.GoalEntity, error) {
	existing, err := s.GetGoal(userID, ref)
	if err != nil {
		return nil, err
	}

	entity.SetOwner(userID)
	entity.SetRunningAmount(existing.RunningAmount())
	if err := entity.Validate(); err != nil {
		return nil, err
	}

	err = s.db.Model(existing).
		Select("*").
		Omit("id", "user_id", "created_at", existing.AmountField()).
		Updates(entity).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetGoal(userID, ref)
}

// DeleteGoal removes an entity. Its history is kept.
func (s *goalService) DeleteGoal(userID string, ref models.TargetRef) error {
	entity := ref.Kind.New()
	if entity == nil {
		return apperrors.ErrInvalidGoalKind
	}
	result := s.db.Where("id = ? AND user_id = ?", ref.ID, userID).Delete(entity)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrGoalNotFound
	}
	return nil
}

// ApplyGoalMutation adds amount to or removes it from the entity's running
// amount and records the change in History. The row is locked and
// re-read inside the transaction, so concurrent mutations of the same
// entity serialise and either both writes land or neither does.
func (s *goalService) ApplyGoalMutation(entity models.GoalEntity, action models.GoalAction, amount decimal.Decimal, date models.Date) error {
	if !action.Valid() {
		return apperrors.ErrInvalidAction
	}
	if !amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}

	ref := models.RefOf(entity)
	var updated decimal.Decimal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		locked, err := s.load(tx.Clauses(clause.Locking{Strength: "UPDATE"}), ref, "")
		if err != nil {
			return err
		}

		updated = locked.RunningAmount()
		switch action {
		case models.GoalActionAdd:
			updated = updated.Add(amount)
		case models.GoalActionRemove:
			updated = updated.Sub(amount)
		}

		if err := tx.Model(locked).Update(locked.AmountField(), models.NewMoney(updated)).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		owner := locked.OwnerID()
		record := &models.History{
			UserID:     &owner,
			Action:     action,
			Amount:     models.NewMoney(amount),
			Date:       date,
			TargetKind: ref.Kind,
			TargetID:   ref.ID,
		}
		if err := tx.Create(record).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	entity.SetRunningAmount(updated)
	return nil
}

// ListHistory returns the user's history for ref, latest effective date
// first. Entries outlive their target; RelatedObjectRepr is nil then.
func (s *goalService) ListHistory(userID string, ref models.TargetRef) ([]HistoryEntry, error) {
	if !ref.Kind.Valid() {
		return nil, apperrors.ErrInvalidGoalKind
	}

	var rows []models.History
	err := s.db.
		Where("target_kind = ? AND target_id = ? AND user_id = ?", ref.Kind, ref.ID, userID).
		Order("date DESC").Order("created_at DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	entries := make([]HistoryEntry, 0, len(rows))
	if len(rows) == 0 {
		return entries, nil
	}

	var repr *string
	target, err := s.load(s.db, ref, userID)
	switch {
	case err == nil:
		text := target.String()
		repr = &text
	case !errors.Is(err, apperrors.ErrGoalNotFound):
		return nil, err
	}

	for _, row := range rows {
		entries = append(entries, HistoryEntry{History: row, RelatedObjectRepr: repr})
	}
	return entries, nil
}

// load fetches the entity for ref. An empty userID skips the owner scope.
func (s *goalService) load(db *gorm.DB, ref models.TargetRef, userID string) (models.GoalEntity, error) {
	entity := ref.Kind.New()
	if entity == nil {
		return nil, apperrors.ErrInvalidGoalKind
	}

	query := db.Where("id = ?", ref.ID)
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.First(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entity, nil
}
