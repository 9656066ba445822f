package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fundit/internal/errors"
	"fundit/internal/models"
	"fundit/internal/services"
)

// GoalHandler handles the goal entity endpoints
type GoalHandler struct {
	goalService  services.GoalServicer
	auditService services.AuditServicer
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService services.GoalServicer, auditService services.AuditServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService, auditService: auditService}
}

// GeneralSavingRequest represents the payload for a general saving
type GeneralSavingRequest struct {
	SavingsName string        `json:"savings_name" binding:"max=100"`
	Amount      *models.Money `json:"amount" binding:"required"`
	Date        models.Date   `json:"date"`
}

// TargetGoalRequest represents the payload for a savings or repayment goal
type TargetGoalRequest struct {
	Category       string        `json:"category" binding:"max=100"`
	CustomCategory string        `json:"custom_category" binding:"max=100"`
	GoalName       string        `json:"goal_name" binding:"max=100"`
	GoalAmount     *models.Money `json:"goal_amount" binding:"required"`
	CurrentAmount  *models.Money `json:"current_amount"`
	DeadlineMode   string        `json:"deadline_mode" binding:"omitempty,deadline_mode"`
	Deadline       *models.Date  `json:"deadline"`
}

func (r *TargetGoalRequest) toTargetGoal() models.TargetGoal {
	goal := models.TargetGoal{
		Category:       r.Category,
		CustomCategory: r.CustomCategory,
		GoalName:       r.GoalName,
		GoalAmount:     *r.GoalAmount,
		DeadlineMode:   models.DeadlineMode(r.DeadlineMode),
		Deadline:       r.Deadline,
	}
	if r.CurrentAmount != nil {
		goal.CurrentAmount = *r.CurrentAmount
	}
	return goal
}

// UpdateAmountRequest represents an add/remove mutation of the running amount.
// Amount may be sent as a string or a number.
type UpdateAmountRequest struct {
	Action string      `json:"action" example:"add"`
	Amount looseString `json:"amount" swaggertype:"string" example:"200.00"`
	Date   string      `json:"date" example:"2025-03-15"`
}

// bindGoal binds the JSON body into an entity of kind.
func bindGoal(c *gin.Context, kind models.GoalKind) (models.GoalEntity, error) {
	switch kind {
	case models.GoalKindGeneralSaving:
		var req GeneralSavingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, bindError(err)
		}
		return &models.GeneralSaving{SavingsName: req.SavingsName, Amount: *req.Amount, Date: req.Date}, nil
	case models.GoalKindSavingsGoal, models.GoalKindRepaymentGoal:
		var req TargetGoalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, bindError(err)
		}
		if kind == models.GoalKindSavingsGoal {
			return &models.SavingsGoal{TargetGoal: req.toTargetGoal()}, nil
		}
		return &models.RepaymentGoal{TargetGoal: req.toTargetGoal()}, nil
	}
	return nil, apperrors.ErrInvalidGoalKind
}

// CreateGoal handles creating a goal entity
// @Summary     Create a goal entity
// @Description Create a general saving, savings goal or repayment goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       kind    path string            true "general-savings, savings-goals or repayment-goals"
// @Param       request body TargetGoalRequest true "Goal data (GeneralSavingRequest for general-savings)"
// @Success     201 {object} map[string]interface{} "Created goal"
// @Failure     400 {object} ErrorResponse "Invalid input or validation error"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /goal-entities/{kind} [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	kind, err := parseGoalKind(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entity, err := bindGoal(c, kind)
	if err != nil {
		respondWithError(c, err)
		return
	}

	created, err := h.goalService.CreateGoal(userID, entity)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditCreate, string(kind), created.GetID(), c.ClientIP(), nil)

	c.JSON(http.StatusCreated, gin.H{"goal": created})
}

// ListGoals handles listing goal entities of one kind
// @Summary     List goal entities
// @Description List the user's entities of a kind. General savings accept year and month filters.
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       kind  path  string true  "Goal kind"
// @Param       year  query int    false "Year"
// @Param       month query string false "Month (YYYY-MM)"
// @Success     200 {object} map[string]interface{} "Goals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /goal-entities/{kind} [get]
func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	kind, err := parseGoalKind(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter, err := parsePeriodFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goals, err := h.goalService.ListGoals(userID, kind, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": goals})
}

// GetGoal handles fetching a single goal entity
// @Summary     Get a goal entity
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       kind path string true "Goal kind"
// @Param       id   path string true "Goal ID"
// @Success     200 {object} map[string]interface{} "Goal"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /goal-entities/{kind}/{id} [get]
func (h *GoalHandler) GetGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ref, err := parseGoalRef(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.GetGoal(userID, ref)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// UpdateGoal handles replacing a goal entity's editable fields
// @Summary     Update a goal entity
// @Description Replace the editable fields. The running amount is only changed through update-amount.
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       kind    path string            true "Goal kind"
// @Param       id      path string            true "Goal ID"
// @Param       request body TargetGoalRequest true "Goal data"
// @Success     200 {object} map[string]interface{} "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input or validation error"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /goal-entities/{kind}/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ref, err := parseGoalRef(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entity, err := bindGoal(c, ref.Kind)
	if err != nil {
		respondWithError(c, err)
		return
	}

	updated, err := h.goalService.UpdateGoal(userID, ref, entity)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditUpdate, string(ref.Kind), ref.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"goal": updated})
}

// DeleteGoal handles removing a goal entity
// @Summary     Delete a goal entity
// @Description Delete the entity. Its history stays listable.
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       kind path string true "Goal kind"
// @Param       id   path string true "Goal ID"
// @Success     200 {object} map[string]string "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /goal-entities/{kind}/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ref, err := parseGoalRef(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goalService.DeleteGoal(userID, ref); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditDelete, string(ref.Kind), ref.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
}

// UpdateAmount handles an add/remove mutation of a goal's running amount
// @Summary     Update running amount
// @Description Add to or remove from the running amount and record the change in history. A YYYY-MM date means the 15th of that month.
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       kind    path string              true "Goal kind"
// @Param       id      path string              true "Goal ID"
// @Param       request body UpdateAmountRequest true "Mutation"
// @Success     200 {object} map[string]string "e.g. {\"status\": \"current_amount updated\"}"
// @Failure     400 {object} ErrorResponse "INVALID_AMOUNT, INVALID_DATE or INVALID_ACTION"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /goal-entities/{kind}/{id}/update-amount [post]
func (h *GoalHandler) UpdateAmount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ref, err := parseGoalRef(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.GetGoal(userID, ref)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	action, amount, date, err := services.ParseMutationInput(req.Action, string(req.Amount), req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goalService.ApplyGoalMutation(goal, action, amount, date); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditUpdateAmount, string(ref.Kind), ref.ID, c.ClientIP(), map[string]interface{}{
		"action": action,
		"amount": amount.StringFixed(2),
		"date":   date.String(),
	})

	c.JSON(http.StatusOK, gin.H{"status": goal.AmountField() + " updated"})
}

// ListHistory handles listing a goal entity's history
// @Summary     Goal history
// @Description Mutations of the entity, latest effective date first. related_object_repr is null once the entity is deleted.
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       kind path string true "Goal kind"
// @Param       id   path string true "Goal ID"
// @Success     200 {object} map[string]interface{} "History entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /goal-entities/{kind}/{id}/history [get]
func (h *GoalHandler) ListHistory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ref, err := parseGoalRef(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entries, err := h.goalService.ListHistory(userID, ref)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": entries})
}
