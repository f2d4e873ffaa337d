package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/services"
)

// RecurringHandler handles recurring-transaction requests.
type RecurringHandler struct {
	recurringService services.RecurringServicer
	auditService     services.AuditServicer
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(recurringService services.RecurringServicer, auditService services.AuditServicer) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService, auditService: auditService}
}

// RecurringTransactionRequest represents the request payload for creating or
// updating a recurring transaction. Amount is a decimal string.
type RecurringTransactionRequest struct {
	Name          string                    `json:"name" binding:"required,max=200"`
	Amount        string                    `json:"amount" binding:"required"`
	Type          models.TransactionType    `json:"type" binding:"required,transaction_type"`
	CategoryID    *uint                     `json:"category_id"`
	BankAccountID uint                      `json:"bank_account_id" binding:"required"`
	Frequency     models.RecurringFrequency `json:"frequency" binding:"required,frequency"`
	StartDate     string                    `json:"start_date" binding:"required"`
	EndDate       *string                   `json:"end_date"`
	NextDueDate   *string                   `json:"next_due_date"`
	IsActive      *bool                     `json:"is_active"`
}

// RecurringTransactionResponse represents a recurring transaction in the response
type RecurringTransactionResponse struct {
	ID            uint                      `json:"id"`
	UserID        uint                      `json:"user_id"`
	BankAccountID uint                      `json:"bank_account_id"`
	CategoryID    *uint                     `json:"category_id,omitempty"`
	Name          string                    `json:"name"`
	Amount        string                    `json:"amount"`
	Type          models.TransactionType    `json:"type"`
	Frequency     models.RecurringFrequency `json:"frequency"`
	StartDate     time.Time                 `json:"start_date"`
	EndDate       *time.Time                `json:"end_date,omitempty"`
	NextDueDate   time.Time                 `json:"next_due_date"`
	IsActive      bool                      `json:"is_active"`
}

func toRecurringResponse(rt *models.RecurringTransaction) RecurringTransactionResponse {
	return RecurringTransactionResponse{
		ID:            rt.ID,
		UserID:        rt.UserID,
		BankAccountID: rt.BankAccountID,
		CategoryID:    rt.CategoryID,
		Name:          rt.Name,
		Amount:        money.FormatCents(rt.Amount),
		Type:          rt.Type,
		Frequency:     rt.Frequency,
		StartDate:     rt.StartDate,
		EndDate:       rt.EndDate,
		NextDueDate:   rt.NextDueDate,
		IsActive:      rt.IsActive,
	}
}

func (r *RecurringTransactionRequest) toInput() (services.RecurringTransactionInput, error) {
	amount, err := money.ParseCents(r.Amount)
	if err != nil {
		return services.RecurringTransactionInput{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid amount")
	}
	startDate, err := parseFlexibleTime(r.StartDate)
	if err != nil {
		return services.RecurringTransactionInput{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid start_date")
	}

	input := services.RecurringTransactionInput{
		Name:          r.Name,
		Amount:        amount,
		Type:          r.Type,
		CategoryID:    r.CategoryID,
		BankAccountID: r.BankAccountID,
		Frequency:     r.Frequency,
		StartDate:     startDate,
		NextDueDate:   startDate,
		IsActive:      r.IsActive,
	}
	if r.EndDate != nil && *r.EndDate != "" {
		endDate, parseErr := parseFlexibleTime(*r.EndDate)
		if parseErr != nil {
			return services.RecurringTransactionInput{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid end_date")
		}
		input.EndDate = &endDate
	}
	if r.NextDueDate != nil && *r.NextDueDate != "" {
		nextDue, parseErr := parseFlexibleTime(*r.NextDueDate)
		if parseErr != nil {
			return services.RecurringTransactionInput{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid next_due_date")
		}
		input.NextDueDate = nextDue
	}
	return input, nil
}

// CreateRecurringTransaction handles the creation of a recurring transaction
// @Summary     Create a recurring transaction
// @Description Create a recurring income or expense definition
// @Tags        recurring-transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RecurringTransactionRequest true "Recurring transaction details"
// @Success     201 {object} RecurringTransactionResponse "Recurring transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bank account or category not found"
// @Router      /recurring-transactions [post]
func (h *RecurringHandler) CreateRecurringTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecurringTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurring, err := h.recurringService.CreateRecurringTransaction(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_RECURRING_TRANSACTION", "recurring_transaction", recurring.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "frequency": req.Frequency})

	c.JSON(http.StatusCreated, gin.H{"recurring_transaction": toRecurringResponse(recurring)})
}

// GetRecurringTransactions lists the user's recurring transactions
// @Summary     List recurring transactions
// @Tags        recurring-transactions
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} []RecurringTransactionResponse "Recurring transactions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /recurring-transactions [get]
func (h *RecurringHandler) GetRecurringTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurrings, err := h.recurringService.GetUserRecurringTransactions(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	items := make([]RecurringTransactionResponse, 0, len(recurrings))
	for i := range recurrings {
		items = append(items, toRecurringResponse(&recurrings[i]))
	}
	c.JSON(http.StatusOK, gin.H{"recurring_transactions": items})
}

// UpdateRecurringTransaction handles updating a recurring transaction
// @Summary     Update recurring transaction
// @Tags        recurring-transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Recurring transaction ID"
// @Param       request body RecurringTransactionRequest true "Recurring transaction details"
// @Success     200 {object} RecurringTransactionResponse "Recurring transaction updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Recurring transaction not found"
// @Router      /recurring-transactions/{id} [put]
func (h *RecurringHandler) UpdateRecurringTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	recurringID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecurringTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurring, err := h.recurringService.UpdateRecurringTransaction(userID, recurringID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_RECURRING_TRANSACTION", "recurring_transaction", recurringID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"recurring_transaction": toRecurringResponse(recurring)})
}

// ToggleRecurringTransaction flips a recurring transaction's active flag
// @Summary     Toggle recurring transaction
// @Description Pause or resume a recurring transaction
// @Tags        recurring-transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Recurring transaction ID"
// @Success     200 {object} RecurringTransactionResponse "Recurring transaction toggled"
// @Failure     400 {object} ErrorResponse "Invalid recurring transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Recurring transaction not found"
// @Router      /recurring-transactions/{id}/toggle [patch]
func (h *RecurringHandler) ToggleRecurringTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	recurringID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurring, err := h.recurringService.ToggleActive(userID, recurringID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recurring_transaction": toRecurringResponse(recurring)})
}

// DeleteRecurringTransaction handles the deletion of a recurring transaction
// @Summary     Delete recurring transaction
// @Description Delete a recurring transaction; already generated transactions are kept
// @Tags        recurring-transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Recurring transaction ID"
// @Success     200 {object} MessageResponse "Recurring transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid recurring transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Recurring transaction not found"
// @Router      /recurring-transactions/{id} [delete]
func (h *RecurringHandler) DeleteRecurringTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	recurringID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.recurringService.DeleteRecurringTransaction(userID, recurringID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_RECURRING_TRANSACTION", "recurring_transaction", recurringID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Recurring transaction deleted successfully"})
}

// GenerateTransactions materializes all due recurring transactions
// @Summary     Generate due recurring transactions
// @Description Create transactions for every active definition that is due, advancing its schedule
// @Tags        recurring-transactions
// @Produce     json
// @Param       X-API-Key header string false "Sweep API key"
// @Success     200 {object} map[string]interface{} "Generated transactions"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Router      /recurring-transactions/generate [post]
func (h *RecurringHandler) GenerateTransactions(c *gin.Context) {
	generated, err := h.recurringService.GenerateTransactions(time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"generated": generated,
		"count":     len(generated),
	})
}
