package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fundit/internal/errors"
	"fundit/internal/models"
	"fundit/internal/pagination"
)

// ledgerEntry constrains P to the pointer type of a ledger model T.
type ledgerEntry[T any] interface {
	*T
	models.LedgerEntry
}

// ledgerService implements LedgerServicer for one ledger model.
type ledgerService[T any, P ledgerEntry[T]] struct {
	db       *gorm.DB
	notFound *apperrors.AppError
	order    string
	// yearFilter is false for budgets, which are only filtered by month.
	yearFilter bool
}

// NewIncomeService creates the LedgerServicer for income entries.
func NewIncomeService(db *gorm.DB) LedgerServicer[models.Income] {
	return &ledgerService[models.Income, *models.Income]{
		db: db, notFound: apperrors.ErrIncomeNotFound, order: "date ASC", yearFilter: true,
	}
}

// NewExpenseService creates the LedgerServicer for expense entries.
func NewExpenseService(db *gorm.DB) LedgerServicer[models.Expense] {
	return &ledgerService[models.Expense, *models.Expense]{
		db: db, notFound: apperrors.ErrExpenseNotFound, order: "date ASC", yearFilter: true,
	}
}

// NewBudgetService creates the LedgerServicer for budgets.
func NewBudgetService(db *gorm.DB) LedgerServicer[models.Budget] {
	return &ledgerService[models.Budget, *models.Budget]{
		db: db, notFound: apperrors.ErrBudgetNotFound, order: "date ASC, category ASC",
	}
}

// Create validates and stores a new entry owned by userID.
func (s *ledgerService[T, P]) Create(userID string, entry *T) (*T, error) {
	p := P(entry)
	p.SetOwner(userID)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entry, nil
}

// List returns the user's entries matching filter, ordered by date.
func (s *ledgerService[T, P]) List(userID string, filter PeriodFilter, page pagination.PageRequest) (*pagination.PageResponse[T], error) {
	page.Defaults()

	query := s.db.Model(new(T)).Where("user_id = ?", userID)
	if s.yearFilter {
		query = applyYearFilter(query, filter.Year)
	}
	query = applyMonthFilter(query, filter.Month, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []T
	if err := query.Order(s.order).Scopes(pagination.Paginate(page)).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(entries, page.Page, page.PageSize, total)
	return &resp, nil
}

// Get returns one entry scoped to its owner.
func (s *ledgerService[T, P]) Get(userID, id string) (*T, error) {
	entry := new(T)
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.notFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entry, nil
}

// Update replaces the editable fields of an entry with those of entry.
func (s *ledgerService[T, P]) Update(userID, id string, entry *T) (*T, error) {
	existing, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	p := P(entry)
	p.SetOwner(userID)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	err = s.db.Model(existing).Select("*").Omit("id", "user_id", "created_at").Updates(entry).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.Get(userID, id)
}

// Delete removes an entry.
func (s *ledgerService[T, P]) Delete(userID, id string) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(new(T))
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return s.notFound
	}
	return nil
}

func applyYearFilter(query *gorm.DB, year *int) *gorm.DB {
	if year == nil {
		return query
	}
	start, next := models.YearWindow(*year)
	return query.Where("date >= ? AND date < ?", start, next)
}

// applyMonthFilter keeps rows dated in month. With recurring set, monthly
// recurring rows dated up to the next month start are kept as well.
func applyMonthFilter(query *gorm.DB, month string, recurring bool) *gorm.DB {
	if month == "" {
		return query
	}
	start, next, err := models.MonthWindow(month)
	if err != nil {
		return query
	}
	if !recurring {
		return query.Where("date >= ? AND date < ?", start, next)
	}
	return query.Where("((date >= ? AND date < ?) OR (recurring_monthly = ? AND (date IS NULL OR date <= ?)))",
		start, next, true, next)
}
