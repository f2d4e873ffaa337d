package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/money"
	"fintrack/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// CreateBudgetRequest represents the request payload for creating a budget.
// Month is zero-based. A nil category makes a general budget covering all
// uncategorized spending.
type CreateBudgetRequest struct {
	CategoryID  *uint  `json:"category_id"`
	Month       *int   `json:"month" binding:"required,min=0,max=11"`
	Year        int    `json:"year" binding:"required,min=1970"`
	LimitAmount string `json:"limit_amount" binding:"required"`
}

// UpdateBudgetRequest represents the request payload for updating a budget
type UpdateBudgetRequest struct {
	LimitAmount *string `json:"limit_amount"`
	Month       *int    `json:"month" binding:"omitempty,min=0,max=11"`
	Year        *int    `json:"year" binding:"omitempty,min=1970"`
}

// BudgetUsageResponse is a budget with its computed usage, amounts formatted
// as decimal strings.
type BudgetUsageResponse struct {
	ID          uint    `json:"id"`
	UserID      uint    `json:"user_id"`
	CategoryID  *uint   `json:"category_id,omitempty"`
	Month       int     `json:"month"`
	Year        int     `json:"year"`
	LimitAmount string  `json:"limit_amount"`
	Spent       string  `json:"spent"`
	Remaining   string  `json:"remaining"`
	Percentage  float64 `json:"percentage"`
	IsIncome    bool    `json:"is_income"`
}

func toBudgetUsageResponse(usage *services.BudgetUsage) BudgetUsageResponse {
	return BudgetUsageResponse{
		ID:          usage.ID,
		UserID:      usage.UserID,
		CategoryID:  usage.CategoryID,
		Month:       usage.Month,
		Year:        usage.Year,
		LimitAmount: money.FormatCents(usage.LimitAmount),
		Spent:       money.FormatCents(usage.Spent),
		Remaining:   money.FormatCents(usage.Remaining),
		Percentage:  usage.Percentage,
		IsIncome:    usage.IsIncome,
	}
}

// CreateBudget handles the creation of a new budget
// @Summary     Create a budget
// @Description Create a monthly spending limit for a category, or a general one
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       target_user_id query int false "Act on this user's data (mentors only)"
// @Param       request body CreateBudgetRequest true "Budget details"
// @Success     201 {object} MessageResponse "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Budget already exists for this period"
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	targetUserID, err := parseTargetUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	limit, err := money.ParseCents(req.LimitAmount)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid limit_amount"))
		return
	}

	budget, err := h.budgetService.CreateBudget(userID, targetUserID, req.CategoryID, *req.Month, req.Year, limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_BUDGET", "budget", budget.ID, c.ClientIP(),
		map[string]interface{}{"month": *req.Month, "year": req.Year, "limit_amount": req.LimitAmount})

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// GetBudgets lists budgets for a month with usage computed
// @Summary     List budgets
// @Description List budgets for a month with spent and remaining amounts
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       target_user_id query int false "Act on this user's data (mentors only)"
// @Param       month query int false "Zero-based month, defaults to current"
// @Param       year query int false "Year, defaults to current"
// @Success     200 {object} []BudgetUsageResponse "Budgets with usage"
// @Failure     400 {object} ErrorResponse "Invalid month or year"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	targetUserID, err := parseTargetUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	now := time.Now()
	month := int(now.Month()) - 1
	year := now.Year()
	if raw := c.Query("month"); raw != "" {
		v, parseErr := strconv.Atoi(raw)
		if parseErr != nil || v < 0 || v > 11 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid month"))
			return
		}
		month = v
	}
	if raw := c.Query("year"); raw != "" {
		v, parseErr := strconv.Atoi(raw)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year"))
			return
		}
		year = v
	}

	usages, err := h.budgetService.GetUserBudgets(userID, targetUserID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	items := make([]BudgetUsageResponse, 0, len(usages))
	for i := range usages {
		items = append(items, toBudgetUsageResponse(&usages[i]))
	}
	c.JSON(http.StatusOK, gin.H{"budgets": items})
}

// UpdateBudget handles updating a budget
// @Summary     Update budget
// @Description Update a budget's limit or period
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Param       request body UpdateBudgetRequest true "Fields to update"
// @Success     200 {object} MessageResponse "Budget updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var limit *int64
	if req.LimitAmount != nil {
		cents, parseErr := money.ParseCents(*req.LimitAmount)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid limit_amount"))
			return
		}
		limit = &cents
	}

	budget, err := h.budgetService.UpdateBudget(userID, budgetID, limit, req.Month, req.Year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_BUDGET", "budget", budgetID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteBudget handles the deletion of a budget
// @Summary     Delete budget
// @Description Delete a budget
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} MessageResponse "Budget deleted"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteBudget(userID, budgetID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_BUDGET", "budget", budgetID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted successfully"})
}
