package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/services"
)

// AnalyticsHandler handles analytics requests.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// CategoryTotalResponse is a per-category aggregate with the total formatted
// as a decimal string.
type CategoryTotalResponse struct {
	CategoryID   *uint  `json:"category_id"`
	CategoryName string `json:"category_name"`
	Icon         string `json:"icon,omitempty"`
	Total        string `json:"total"`
}

// MonthTotalResponse is a per-month aggregate.
type MonthTotalResponse struct {
	Month int    `json:"month"`
	Total string `json:"total"`
}

// YearlySummaryResponse aggregates a year of activity.
type YearlySummaryResponse struct {
	Year          int    `json:"year"`
	TotalIncome   string `json:"total_income"`
	TotalExpenses string `json:"total_expenses"`
	Balance       string `json:"balance"`
}

func toCategoryTotalResponses(totals []services.CategoryTotal) []CategoryTotalResponse {
	items := make([]CategoryTotalResponse, 0, len(totals))
	for _, t := range totals {
		items = append(items, CategoryTotalResponse{
			CategoryID:   t.CategoryID,
			CategoryName: t.CategoryName,
			Icon:         t.Icon,
			Total:        money.FormatCents(t.Total),
		})
	}
	return items
}

// monthYearParams reads month and year query parameters, defaulting to the
// current period. Month is zero-based.
func monthYearParams(c *gin.Context) (int, int, error) {
	now := time.Now()
	month := int(now.Month()) - 1
	year := now.Year()
	if raw := c.Query("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 || v > 11 {
			return 0, 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid month")
		}
		month = v
	}
	if raw := c.Query("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year")
		}
		year = v
	}
	return month, year, nil
}

func yearParam(c *gin.Context) (int, error) {
	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year")
		}
		year = v
	}
	return year, nil
}

// GetExpensesByCategory returns expense totals grouped by category
// @Summary     Expenses by category
// @Description Expense totals for a month grouped by category, largest first
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       target_user_id query int false "Act on this user's data (mentors only)"
// @Param       month query int false "Zero-based month, defaults to current"
// @Param       year query int false "Year, defaults to current"
// @Success     200 {object} []CategoryTotalResponse "Category totals"
// @Failure     400 {object} ErrorResponse "Invalid month or year"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analytics/expenses-by-category [get]
func (h *AnalyticsHandler) GetExpensesByCategory(c *gin.Context) {
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
	month, year, err := monthYearParams(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.analyticsService.GetExpensesByCategory(userID, targetUserID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": toCategoryTotalResponses(totals)})
}

// GetIncomeByCategory returns income totals grouped by category
// @Summary     Income by category
// @Description Income totals for a month grouped by category, largest first
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       target_user_id query int false "Act on this user's data (mentors only)"
// @Param       month query int false "Zero-based month, defaults to current"
// @Param       year query int false "Year, defaults to current"
// @Success     200 {object} []CategoryTotalResponse "Category totals"
// @Failure     400 {object} ErrorResponse "Invalid month or year"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analytics/income-by-category [get]
func (h *AnalyticsHandler) GetIncomeByCategory(c *gin.Context) {
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
	month, year, err := monthYearParams(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.analyticsService.GetIncomeByCategory(userID, targetUserID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": toCategoryTotalResponses(totals)})
}

// GetMonthlyTrend returns per-month totals for a year
// @Summary     Monthly trend
// @Description Totals for each month of a year, optionally filtered by type
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       target_user_id query int false "Act on this user's data (mentors only)"
// @Param       year query int false "Year, defaults to current"
// @Param       type query string false "income or expense"
// @Success     200 {object} []MonthTotalResponse "Monthly totals"
// @Failure     400 {object} ErrorResponse "Invalid year or type"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analytics/monthly-trend [get]
func (h *AnalyticsHandler) GetMonthlyTrend(c *gin.Context) {
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
	year, err := yearParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var transactionType *models.TransactionType
	if raw := c.Query("type"); raw != "" {
		t := models.TransactionType(raw)
		if t != models.TransactionTypeIncome && t != models.TransactionTypeExpense {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid type"))
			return
		}
		transactionType = &t
	}

	trend, err := h.analyticsService.GetMonthlyTrend(userID, targetUserID, year, transactionType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	items := make([]MonthTotalResponse, 0, len(trend))
	for _, m := range trend {
		items = append(items, MonthTotalResponse{Month: m.Month, Total: money.FormatCents(m.Total)})
	}
	c.JSON(http.StatusOK, gin.H{"trend": items})
}

// GetYearlySummary returns income, expense, and balance totals for a year
// @Summary     Yearly summary
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       target_user_id query int false "Act on this user's data (mentors only)"
// @Param       year query int false "Year, defaults to current"
// @Success     200 {object} YearlySummaryResponse "Yearly summary"
// @Failure     400 {object} ErrorResponse "Invalid year"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /analytics/yearly-summary [get]
func (h *AnalyticsHandler) GetYearlySummary(c *gin.Context) {
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
	year, err := yearParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.analyticsService.GetYearlySummary(userID, targetUserID, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": YearlySummaryResponse{
		Year:          summary.Year,
		TotalIncome:   money.FormatCents(summary.TotalIncome),
		TotalExpenses: money.FormatCents(summary.TotalExpenses),
		Balance:       money.FormatCents(summary.Balance),
	}})
}
