package models

import "github.com/shopspring/decimal"

// GoalKind identifies one of the goal entity variants. Its values double
// as the URL segment of the goal endpoints.
type GoalKind string

const (
	GoalKindGeneralSaving GoalKind = "general-savings"
	GoalKindSavingsGoal   GoalKind = "savings-goals"
	GoalKindRepaymentGoal GoalKind = "repayment-goals"
)

// GoalKinds lists every known kind.
var GoalKinds = []GoalKind{GoalKindGeneralSaving, GoalKindSavingsGoal, GoalKindRepaymentGoal}

// Valid reports whether k is a known kind.
func (k GoalKind) Valid() bool {
	switch k {
	case GoalKindGeneralSaving, GoalKindSavingsGoal, GoalKindRepaymentGoal:
		return true
	}
	return false
}

// New returns an empty entity of this kind, or nil for an unknown kind.
func (k GoalKind) New() GoalEntity {
	switch k {
	case GoalKindGeneralSaving:
		return &GeneralSaving{}
	case GoalKindSavingsGoal:
		return &SavingsGoal{}
	case GoalKindRepaymentGoal:
		return &RepaymentGoal{}
	}
	return nil
}

// TargetRef points at exactly one goal entity.
type TargetRef struct {
	Kind GoalKind `json:"kind"`
	ID   string   `json:"id"`
}

// RefOf returns the reference to e.
func RefOf(e GoalEntity) TargetRef {
	return TargetRef{Kind: e.Kind(), ID: e.GetID()}
}

// GoalEntity is an owned record with a running balance that only changes
// through add/remove mutations recorded in History.
type GoalEntity interface {
	Kind() GoalKind
	GetID() string
	OwnerID() string
	SetOwner(userID string)
	// AmountField is the column holding the running amount.
	AmountField() string
	RunningAmount() decimal.Decimal
	SetRunningAmount(decimal.Decimal)
	Validate() error
	String() string
}

// GoalAction is the direction of a running-amount mutation.
type GoalAction string

const (
	GoalActionAdd    GoalAction = "add"
	GoalActionRemove GoalAction = "remove"
)

// Valid reports whether a is add or remove.
func (a GoalAction) Valid() bool {
	return a == GoalActionAdd || a == GoalActionRemove
}

// DeadlineMode says whether a goal runs open-ended or to a fixed date.
type DeadlineMode string

const (
	DeadlineOngoing DeadlineMode = "ongoing"
	DeadlineFixed   DeadlineMode = "fixed"
)

// GoalOtherCategory is the escape value of the goal category sets.
const GoalOtherCategory = "other"

// Category choices for savings and repayment goals.
var (
	SavingsGoalCategories = []string{
		"emergency fund", "travel / holiday", "new home", "home renovation",
		"car / vehicle", "education / courses", "wedding / event",
		"tech / gadgets", "christmas / gifts", "special event", "gifts",
		"rainy day fund", "investment fund", "luxury purchase", "other",
	}
	RepaymentGoalCategories = []string{
		"credit card", "loan", "student loan", "mortgage", "car finance",
		"buy now pay later", "medical bills", "overdraft", "utility arrears",
		"tax debt", "family or friend loan", "business loan", "other",
	}
)

// TargetGoal holds the columns shared by savings and repayment goals.
type TargetGoal struct {
	Category       string       `gorm:"size:100;not null" json:"category"`
	CustomCategory string       `gorm:"size:100" json:"custom_category"`
	GoalName       string       `gorm:"size:100;not null" json:"goal_name"`
	GoalAmount     Money        `gorm:"type:decimal(10,2);not null" json:"goal_amount"`
	CurrentAmount  Money        `gorm:"type:decimal(10,2);not null;default:0" json:"current_amount"`
	DeadlineMode   DeadlineMode `gorm:"size:10;not null" json:"deadline_mode"`
	Deadline       *Date        `json:"deadline"`
}

// AmountField implements GoalEntity.
func (g *TargetGoal) AmountField() string { return "current_amount" }

// RunningAmount implements GoalEntity.
func (g *TargetGoal) RunningAmount() decimal.Decimal { return g.CurrentAmount.Decimal }

// SetRunningAmount implements GoalEntity.
func (g *TargetGoal) SetRunningAmount(v decimal.Decimal) { g.CurrentAmount = NewMoney(v) }

func (g *TargetGoal) validate(categories []string) error {
	errs := fieldErrors{}
	errs.checkCategory(g.Category, categories, GoalOtherCategory, g.CustomCategory)
	if g.GoalName == "" {
		errs.add("goal_name", "This field is required.")
	}
	switch g.DeadlineMode {
	case DeadlineOngoing:
	case DeadlineFixed:
		if g.Deadline == nil || g.Deadline.IsZero() {
			errs.add("deadline", "Deadline is required when the deadline mode is fixed.")
		}
	case "":
		errs.add("deadline_mode", "This field is required.")
	default:
		errs.add("deadline_mode", `"`+string(g.DeadlineMode)+`" is not a valid choice.`)
	}
	return errs.err()
}

// SavingsGoal tracks progress towards saving GoalAmount.
type SavingsGoal struct {
	Base
	Owned
	TargetGoal
}

// Kind implements GoalEntity.
func (g *SavingsGoal) Kind() GoalKind { return GoalKindSavingsGoal }

// Validate implements GoalEntity.
func (g *SavingsGoal) Validate() error { return g.validate(SavingsGoalCategories) }

func (g *SavingsGoal) String() string {
	return "Savings Goal " + g.GoalAmount.String() + " for " + g.Category
}

// RepaymentGoal tracks progress towards paying off GoalAmount of debt.
type RepaymentGoal struct {
	Base
	Owned
	TargetGoal
}

// Kind implements GoalEntity.
func (g *RepaymentGoal) Kind() GoalKind { return GoalKindRepaymentGoal }

// Validate implements GoalEntity.
func (g *RepaymentGoal) Validate() error { return g.validate(RepaymentGoalCategories) }

func (g *RepaymentGoal) String() string {
	return "Repayments Goal " + g.GoalAmount.String() + " for " + g.Category
}

// GeneralSaving is a named pot of savings without a target.
type GeneralSaving struct {
	Base
	Owned
	SavingsName string `gorm:"size:100;not null" json:"savings_name"`
	Amount      Money  `gorm:"type:decimal(10,2);not null;default:0" json:"amount"`
	Date        Date   `gorm:"not null;index" json:"date"`
}

// Kind implements GoalEntity.
func (g *GeneralSaving) Kind() GoalKind { return GoalKindGeneralSaving }

// AmountField implements GoalEntity.
func (g *GeneralSaving) AmountField() string { return "amount" }

// RunningAmount implements GoalEntity.
func (g *GeneralSaving) RunningAmount() decimal.Decimal { return g.Amount.Decimal }

// SetRunningAmount implements GoalEntity.
func (g *GeneralSaving) SetRunningAmount(v decimal.Decimal) { g.Amount = NewMoney(v) }

// Validate implements GoalEntity.
func (g *GeneralSaving) Validate() error {
	errs := fieldErrors{}
	if g.SavingsName == "" {
		errs.add("savings_name", "This field is required.")
	}
	if g.Date.IsZero() {
		errs.add("date", "This field is required.")
	}
	return errs.err()
}

func (g *GeneralSaving) String() string {
	return "Savings " + g.Amount.String() + " for " + g.Date.String()
}

// Table names stay stable regardless of struct naming.
func (GeneralSaving) TableName() string { return "general_savings" }
func (SavingsGoal) TableName() string   { return "savings_goals" }
func (RepaymentGoal) TableName() string { return "repayment_goals" }
