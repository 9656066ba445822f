package services

import (
	"time"

	"github.com/shopspring/decimal"

	"fundit/internal/models"
	"fundit/internal/pagination"
)

// UserSettings holds the profile fields a user may change. Nil fields are
// left untouched.
type UserSettings struct {
	FirstName *string
	LastName  *string
	Email     *string
	Sex       *models.Sex
	DOB       *models.Date
	Currency  *string
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	CreateGuestUser() (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
	UpdateSettings(userID string, settings UserSettings) (*models.User, error)
	ChangePassword(userID, currentPassword, newPassword string) error
	DeleteUser(userID string) error
}

// PeriodFilter narrows a listing to a calendar year and/or month.
// Month is YYYY-MM; a malformed month is ignored.
type PeriodFilter struct {
	Year  *int
	Month string
}

// LedgerServicer defines the CRUD contract shared by income, expenses and budgets.
type LedgerServicer[T any] interface {
	Create(userID string, entry *T) (*T, error)
	List(userID string, filter PeriodFilter, page pagination.PageRequest) (*pagination.PageResponse[T], error)
	Get(userID, id string) (*T, error)
	Update(userID, id string, entry *T) (*T, error)
	Delete(userID, id string) error
}

// HistoryEntry is a History row with a readable description of its target.
// RelatedObjectRepr is nil when the target no longer exists.
type HistoryEntry struct {
	models.History
	RelatedObjectRepr *string `json:"related_object_repr"`
}

// GoalServicer defines the contract for the goal-tracking engine.
type GoalServicer interface {
	CreateGoal(userID string, entity models.GoalEntity) (models.GoalEntity, error)
	ListGoals(userID string, kind models.GoalKind, filter PeriodFilter) ([]models.GoalEntity, error)
	GetGoal(userID string, ref models.TargetRef) (models.GoalEntity, error)
	UpdateGoal(userID string, ref models.TargetRef, entity models.GoalEntity) (models.GoalEntity, error)
	DeleteGoal(userID string, ref models.TargetRef) error
	ApplyGoalMutation(entity models.GoalEntity, action models.GoalAction, amount decimal.Decimal, date models.Date) error
	ListHistory(userID string, ref models.TargetRef) ([]HistoryEntry, error)
}

// GuestServicer defines the contract for guest sessions and demo data.
type GuestServicer interface {
	SeedDemoData(userID string, year int) error
	DeleteStaleGuests(olderThan time.Duration) (int64, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID string, action models.AuditAction, resourceType, resourceID, ipAddress string, changes map[string]any)
}
