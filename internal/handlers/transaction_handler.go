package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// CreateTransactionRequest represents the request payload for creating a
// transaction. Amount is a decimal string ("150.00"). Type transfer requires
// to_bank_account_id; installments above one create an installment series.
type CreateTransactionRequest struct {
	BankAccountID        uint                   `json:"bank_account_id" binding:"required"`
	ToBankAccountID      *uint                  `json:"to_bank_account_id"`
	CategoryID           *uint                  `json:"category_id"`
	Name                 string                 `json:"name" binding:"required,max=200"`
	Amount               string                 `json:"amount" binding:"required"`
	Date                 *string                `json:"date"`
	Type                 models.TransactionType `json:"type" binding:"required,transaction_type"`
	Installments         int                    `json:"installments" binding:"omitempty,min=1,max=120"`
	TotalAmount          *string                `json:"total_amount"`
	FirstInstallmentDate *string                `json:"first_installment_date"`
}

// UpdateTransactionRequest represents the request payload for updating a transaction
type UpdateTransactionRequest struct {
	BankAccountID *uint                   `json:"bank_account_id"`
	CategoryID    *uint                   `json:"category_id"`
	Name          string                  `json:"name" binding:"omitempty,max=200"`
	Amount        *string                 `json:"amount"`
	Date          *string                 `json:"date"`
	Type          *models.TransactionType `json:"type" binding:"omitempty,transaction_type"`
}

// TransactionResponse represents a transaction in the response
type TransactionResponse struct {
	ID                     uint                   `json:"id"`
	UserID                 uint                   `json:"user_id"`
	BankAccountID          uint                   `json:"bank_account_id"`
	CategoryID             *uint                  `json:"category_id,omitempty"`
	Name                   string                 `json:"name"`
	Amount                 string                 `json:"amount"`
	Date                   time.Time              `json:"date"`
	Type                   models.TransactionType `json:"type"`
	RelatedTransactionID   *uint                  `json:"related_transaction_id,omitempty"`
	InstallmentGroupID     *string                `json:"installment_group_id,omitempty"`
	InstallmentNumber      *int                   `json:"installment_number,omitempty"`
	TotalInstallments      *int                   `json:"total_installments,omitempty"`
	InstallmentTotalAmount *string                `json:"installment_total_amount,omitempty"`
}

func toTransactionResponse(tx *models.Transaction) TransactionResponse {
	r := TransactionResponse{
		ID:                   tx.ID,
		UserID:               tx.UserID,
		BankAccountID:        tx.BankAccountID,
		CategoryID:           tx.CategoryID,
		Name:                 tx.Name,
		Amount:               money.FormatCents(tx.Amount),
		Date:                 tx.Date,
		Type:                 tx.Type,
		RelatedTransactionID: tx.RelatedTransactionID,
		InstallmentGroupID:   tx.InstallmentGroupID,
		InstallmentNumber:    tx.InstallmentNumber,
		TotalInstallments:    tx.TotalInstallments,
	}
	if tx.InstallmentTotalAmount != nil {
		total := money.FormatCents(*tx.InstallmentTotalAmount)
		r.InstallmentTotalAmount = &total
	}
	return r
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Create an income, expense, transfer, or installment series
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       target_user_id query int false "Act on this user's data (mentors only)"
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} TransactionResponse "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account or category not found"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
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

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	amount, err := money.ParseCents(req.Amount)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid amount"))
		return
	}

	input := services.CreateTransactionInput{
		BankAccountID:   req.BankAccountID,
		ToBankAccountID: req.ToBankAccountID,
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Amount:          amount,
		Date:            time.Now(),
		Type:            req.Type,
		Installments:    req.Installments,
	}

	if req.Date != nil && *req.Date != "" {
		parsed, parseErr := parseFlexibleTime(*req.Date)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		input.Date = parsed
	}
	if req.TotalAmount != nil {
		total, parseErr := money.ParseCents(*req.TotalAmount)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid total_amount"))
			return
		}
		input.TotalAmount = &total
	}
	if req.FirstInstallmentDate != nil && *req.FirstInstallmentDate != "" {
		parsed, parseErr := parseFlexibleTime(*req.FirstInstallmentDate)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		input.FirstInstallmentDate = &parsed
	}

	transaction, err := h.transactionService.CreateTransaction(userID, targetUserID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{"type": req.Type, "amount": req.Amount, "bank_account_id": req.BankAccountID})

	c.JSON(http.StatusCreated, gin.H{"transaction": toTransactionResponse(transaction)})
}

// GetTransactions lists transactions with filters and pagination
// @Summary     List transactions
// @Description List transactions, newest first, with optional filters
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       target_user_id query int false "Act on this user's data (mentors only)"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       month query int false "Zero-based month (requires year)"
// @Param       year query int false "Year"
// @Param       start_date query string false "Range start (RFC3339 or YYYY-MM-DD)"
// @Param       end_date query string false "Range end"
// @Param       bank_account_id query int false "Bank account filter"
// @Param       category_ids query string false "Comma-separated category IDs"
// @Param       name query string false "Name substring filter"
// @Param       min_amount query string false "Minimum amount (decimal string)"
// @Param       max_amount query string false "Maximum amount"
// @Param       type query string false "income, expense, or transfer"
// @Success     200 {object} pagination.PageResponse[TransactionResponse] "Transactions"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
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

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetUserTransactions(userID, targetUserID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	items := make([]TransactionResponse, 0, len(result.Data))
	for i := range result.Data {
		items = append(items, toTransactionResponse(&result.Data[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"data":        items,
		"page":        result.Page,
		"page_size":   result.PageSize,
		"total_items": result.TotalItems,
		"total_pages": result.TotalPages,
	})
}

// parseTransactionFilter builds a TransactionFilter from query parameters.
func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	intParam := func(name string) (*int, error) {
		raw := c.Query(name)
		if raw == "" {
			return nil, nil
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+name)
		}
		return &v, nil
	}
	timeParam := func(name string) (*time.Time, error) {
		raw := c.Query(name)
		if raw == "" {
			return nil, nil
		}
		t, err := parseFlexibleTime(raw)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+name)
		}
		return &t, nil
	}
	amountParam := func(name string) (*int64, error) {
		raw := c.Query(name)
		if raw == "" {
			return nil, nil
		}
		cents, err := money.ParseSignedCents(raw)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+name)
		}
		return &cents, nil
	}

	var err error
	if filter.Month, err = intParam("month"); err != nil {
		return filter, err
	}
	if filter.Year, err = intParam("year"); err != nil {
		return filter, err
	}
	if filter.StartDate, err = timeParam("start_date"); err != nil {
		return filter, err
	}
	if filter.EndDate, err = timeParam("end_date"); err != nil {
		return filter, err
	}
	if filter.MinAmount, err = amountParam("min_amount"); err != nil {
		return filter, err
	}
	if filter.MaxAmount, err = amountParam("max_amount"); err != nil {
		return filter, err
	}

	if raw := c.Query("bank_account_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid bank_account_id")
		}
		accountID := uint(id)
		filter.BankAccountID = &accountID
	}
	if raw := c.Query("category_ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
			if err != nil {
				return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid category_ids")
			}
			filter.CategoryIDs = append(filter.CategoryIDs, uint(id))
		}
	}
	filter.Name = c.Query("name")
	if raw := c.Query("type"); raw != "" {
		transactionType := models.TransactionType(raw)
		switch transactionType {
		case models.TransactionTypeIncome, models.TransactionTypeExpense, models.TransactionTypeTransfer:
			filter.Type = &transactionType
		default:
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid type")
		}
	}
	return filter, nil
}

// GetTransactionByID returns a single transaction
// @Summary     Get transaction
// @Description Get a transaction by ID
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} TransactionResponse "Transaction"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": toTransactionResponse(transaction)})
}

// UpdateTransaction handles updating a transaction
// @Summary     Update transaction
// @Description Update a transaction; transfer legs update in lockstep, installment members allow name/category only
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to update"
// @Success     200 {object} TransactionResponse "Transaction updated"
// @Failure     400 {object} ErrorResponse "Invalid input or installment edit"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.UpdateTransactionInput{
		BankAccountID: req.BankAccountID,
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Type:          req.Type,
	}
	if req.Amount != nil {
		amount, parseErr := money.ParseCents(*req.Amount)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid amount"))
			return
		}
		input.Amount = &amount
	}
	if req.Date != nil && *req.Date != "" {
		parsed, parseErr := parseFlexibleTime(*req.Date)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		input.Date = &parsed
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, transactionID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_TRANSACTION", "transaction", transactionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"transaction": toTransactionResponse(transaction)})
}

// DeleteTransaction handles the deletion of a transaction
// @Summary     Delete transaction
// @Description Delete a transaction; transfer pairs and installment groups are removed whole
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_TRANSACTION", "transaction", transactionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
