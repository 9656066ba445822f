package models

// LedgerEntry is implemented by the plain CRUD records: income, expenses
// and budgets.
type LedgerEntry interface {
	GetID() string
	OwnerID() string
	SetOwner(userID string)
	Validate() error
}

// Category choices for ledger records. "custom" needs custom_category.
var (
	IncomeCategories = []string{
		"salary", "extra income", "investments", "pension", "other", "custom",
	}
	ExpenseCategories = []string{
		"housing", "transport", "food", "healthcare", "personal",
		"entertainment", "debt", "savings", "miscellaneous", "custom",
	}
)

// LedgerCustomCategory is the escape value of the ledger category sets.
const LedgerCustomCategory = "custom"

// Income records money received on a date.
type Income struct {
	Base
	Owned
	Amount           Money  `gorm:"type:decimal(10,2);not null" json:"amount"`
	Date             Date   `gorm:"not null;index" json:"date"`
	Category         string `gorm:"size:100;not null" json:"category"`
	CustomCategory   string `gorm:"size:100" json:"custom_category"`
	RecurringMonthly bool   `gorm:"not null;default:false" json:"recurring_monthly"`
}

// Validate checks the category invariant.
func (i *Income) Validate() error {
	errs := fieldErrors{}
	if i.Date.IsZero() {
		errs.add("date", "This field is required.")
	}
	errs.checkCategory(i.Category, IncomeCategories, LedgerCustomCategory, i.CustomCategory)
	return errs.err()
}

func (i *Income) String() string {
	return "Income of " + i.Amount.String() + " for " + i.Category + " on " + i.Date.String()
}

// Expense records money spent on a date.
type Expense struct {
	Base
	Owned
	Amount           Money  `gorm:"type:decimal(10,2);not null" json:"amount"`
	Date             Date   `gorm:"not null;index" json:"date"`
	Category         string `gorm:"size:100;not null" json:"category"`
	CustomCategory   string `gorm:"size:100" json:"custom_category"`
	RecurringMonthly bool   `gorm:"not null;default:false" json:"recurring_monthly"`
}

// Validate checks the category invariant.
func (e *Expense) Validate() error {
	errs := fieldErrors{}
	if e.Date.IsZero() {
		errs.add("date", "This field is required.")
	}
	errs.checkCategory(e.Category, ExpenseCategories, LedgerCustomCategory, e.CustomCategory)
	return errs.err()
}

func (e *Expense) String() string {
	return "Expense " + e.Amount.String() + " for " + e.Category + " on " + e.Date.String()
}

// Budget caps spending for an expense category, either every month or for
// the single month of Date.
type Budget struct {
	Base
	Owned
	Category         string `gorm:"size:100;not null" json:"category"`
	CustomCategory   string `gorm:"size:100" json:"custom_category"`
	Amount           Money  `gorm:"type:decimal(10,2);not null" json:"amount"`
	RecurringMonthly bool   `gorm:"not null;default:false" json:"recurring_monthly"`
	Date             *Date  `gorm:"index" json:"date"`
}

// Validate checks the category invariant and that one-off budgets carry a date.
func (b *Budget) Validate() error {
	errs := fieldErrors{}
	errs.checkCategory(b.Category, ExpenseCategories, LedgerCustomCategory, b.CustomCategory)
	if !b.RecurringMonthly && (b.Date == nil || b.Date.IsZero()) {
		errs.add("date", "Date is required if the budget is not recurring monthly.")
	}
	return errs.err()
}

func (b *Budget) String() string {
	label := b.Category
	if b.Category == LedgerCustomCategory && b.CustomCategory != "" {
		label = b.CustomCategory
	}
	return "Budget " + b.Amount.String() + " for " + label
}
