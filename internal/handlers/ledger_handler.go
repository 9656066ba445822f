package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fundit/internal/models"
	"fundit/internal/pagination"
	"fundit/internal/services"
)

// ledgerRequest is a request payload that converts into a ledger model.
type ledgerRequest[T any] interface {
	toModel() *T
}

// IncomeRequest represents the payload for creating or replacing an income entry
type IncomeRequest struct {
	Amount           *models.Money `json:"amount" binding:"required"`
	Date             models.Date   `json:"date"`
	Category         string        `json:"category" binding:"max=100"`
	CustomCategory   string        `json:"custom_category" binding:"max=100"`
	RecurringMonthly bool          `json:"recurring_monthly"`
}

func (r *IncomeRequest) toModel() *models.Income {
	return &models.Income{
		Amount:           *r.Amount,
		Date:             r.Date,
		Category:         r.Category,
		CustomCategory:   r.CustomCategory,
		RecurringMonthly: r.RecurringMonthly,
	}
}

// ExpenseRequest represents the payload for creating or replacing an expense entry
type ExpenseRequest struct {
	Amount           *models.Money `json:"amount" binding:"required"`
	Date             models.Date   `json:"date"`
	Category         string        `json:"category" binding:"max=100"`
	CustomCategory   string        `json:"custom_category" binding:"max=100"`
	RecurringMonthly bool          `json:"recurring_monthly"`
}

func (r *ExpenseRequest) toModel() *models.Expense {
	return &models.Expense{
		Amount:           *r.Amount,
		Date:             r.Date,
		Category:         r.Category,
		CustomCategory:   r.CustomCategory,
		RecurringMonthly: r.RecurringMonthly,
	}
}

// BudgetRequest represents the payload for creating or replacing a budget
type BudgetRequest struct {
	Amount           *models.Money `json:"amount" binding:"required"`
	Category         string        `json:"category" binding:"max=100"`
	CustomCategory   string        `json:"custom_category" binding:"max=100"`
	RecurringMonthly bool          `json:"recurring_monthly"`
	Date             *models.Date  `json:"date"`
}

func (r *BudgetRequest) toModel() *models.Budget {
	return &models.Budget{
		Amount:           *r.Amount,
		Category:         r.Category,
		CustomCategory:   r.CustomCategory,
		RecurringMonthly: r.RecurringMonthly,
		Date:             r.Date,
	}
}

// bindLedger binds the JSON body into the request type R and converts it.
func bindLedger[T any, R any, PR interface {
	*R
	ledgerRequest[T]
}](c *gin.Context) (*T, error) {
	req := PR(new(R))
	if err := c.ShouldBindJSON(req); err != nil {
		return nil, bindError(err)
	}
	return req.toModel(), nil
}

// LedgerHandler serves the CRUD endpoints of one ledger model.
type LedgerHandler[T any, P interface {
	*T
	models.LedgerEntry
}] struct {
	service      services.LedgerServicer[T]
	auditService services.AuditServicer
	// resource names the model in responses and audit entries.
	resource string
	bind     func(c *gin.Context) (*T, error)
}

// NewIncomeHandler creates the handler for /income.
func NewIncomeHandler(service services.LedgerServicer[models.Income], auditService services.AuditServicer) *LedgerHandler[models.Income, *models.Income] {
	return &LedgerHandler[models.Income, *models.Income]{
		service: service, auditService: auditService, resource: "income",
		bind: bindLedger[models.Income, IncomeRequest, *IncomeRequest],
	}
}

// NewExpenseHandler creates the handler for /expenses.
func NewExpenseHandler(service services.LedgerServicer[models.Expense], auditService services.AuditServicer) *LedgerHandler[models.Expense, *models.Expense] {
	return &LedgerHandler[models.Expense, *models.Expense]{
		service: service, auditService: auditService, resource: "expense",
		bind: bindLedger[models.Expense, ExpenseRequest, *ExpenseRequest],
	}
}

// NewBudgetHandler creates the handler for /budgets.
func NewBudgetHandler(service services.LedgerServicer[models.Budget], auditService services.AuditServicer) *LedgerHandler[models.Budget, *models.Budget] {
	return &LedgerHandler[models.Budget, *models.Budget]{
		service: service, auditService: auditService, resource: "budget",
		bind: bindLedger[models.Budget, BudgetRequest, *BudgetRequest],
	}
}

// Create handles creating a ledger entry
// @Summary     Create a ledger entry
// @Description Create an income entry, expense entry or budget for the authenticated user
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body IncomeRequest true "Entry data (ExpenseRequest or BudgetRequest on their routes)"
// @Success     201 {object} map[string]interface{} "Created entry"
// @Failure     400 {object} ErrorResponse "Invalid input or validation error"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /income [post]
// @Router      /expenses [post]
// @Router      /budgets [post]
func (h *LedgerHandler[T, P]) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.bind(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	created, err := h.service.Create(userID, entry)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditCreate, h.resource, P(created).GetID(), c.ClientIP(), nil)

	c.JSON(http.StatusCreated, gin.H{h.resource: created})
}

// List handles listing ledger entries
// @Summary     List ledger entries
// @Description List entries, optionally filtered by year (YYYY) and month (YYYY-MM). The month filter also keeps monthly recurring entries.
// @Tags        ledger
// @Produce     json
// @Security    BearerAuth
// @Param       year      query int    false "Year"
// @Param       month     query string false "Month (YYYY-MM)"
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Page size"
// @Success     200 {object} map[string]interface{} "Paginated entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /income [get]
// @Router      /expenses [get]
// @Router      /budgets [get]
func (h *LedgerHandler[T, P]) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	filter, err := parsePeriodFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.service.List(userID, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get handles fetching a single ledger entry
// @Summary     Get a ledger entry
// @Tags        ledger
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Entry ID"
// @Success     200 {object} map[string]interface{} "Entry"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /income/{id} [get]
// @Router      /expenses/{id} [get]
// @Router      /budgets/{id} [get]
func (h *LedgerHandler[T, P]) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.service.Get(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{h.resource: entry})
}

// Update handles replacing a ledger entry
// @Summary     Update a ledger entry
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string        true "Entry ID"
// @Param       request body IncomeRequest true "Entry data"
// @Success     200 {object} map[string]interface{} "Updated entry"
// @Failure     400 {object} ErrorResponse "Invalid input or validation error"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /income/{id} [put]
// @Router      /expenses/{id} [put]
// @Router      /budgets/{id} [put]
func (h *LedgerHandler[T, P]) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.bind(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	updated, err := h.service.Update(userID, id, entry)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditUpdate, h.resource, id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{h.resource: updated})
}

// Delete handles removing a ledger entry
// @Summary     Delete a ledger entry
// @Tags        ledger
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Entry ID"
// @Success     200 {object} map[string]string "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /income/{id} [delete]
// @Router      /expenses/{id} [delete]
// @Router      /budgets/{id} [delete]
func (h *LedgerHandler[T, P]) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.service.Delete(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditDelete, h.resource, id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
}
