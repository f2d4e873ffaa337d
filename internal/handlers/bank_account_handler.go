package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/services"
)

// BankAccountHandler handles bank-account-related requests.
type BankAccountHandler struct {
	bankAccountService services.BankAccountServicer
	auditService       services.AuditServicer
}

// NewBankAccountHandler creates a new BankAccountHandler.
func NewBankAccountHandler(bankAccountService services.BankAccountServicer, auditService services.AuditServicer) *BankAccountHandler {
	return &BankAccountHandler{bankAccountService: bankAccountService, auditService: auditService}
}

// CreateBankAccountRequest represents the request payload for creating a bank account
type CreateBankAccountRequest struct {
	Name           string                 `json:"name" binding:"required,max=100"`
	Color          string                 `json:"color" binding:"required,hex_color"`
	Type           models.BankAccountType `json:"type" binding:"required,account_type"`
	InitialBalance string                 `json:"initial_balance"`
}

// UpdateBankAccountRequest represents the request payload for updating a bank account
type UpdateBankAccountRequest struct {
	Name           string                  `json:"name" binding:"omitempty,max=100"`
	Color          string                  `json:"color" binding:"omitempty,hex_color"`
	Type           *models.BankAccountType `json:"type" binding:"omitempty,account_type"`
	InitialBalance *string                 `json:"initial_balance"`
}

// BankAccountResponse represents a bank account in the response
type BankAccountResponse struct {
	ID             uint                   `json:"id"`
	UserID         uint                   `json:"user_id"`
	Name           string                 `json:"name"`
	Color          string                 `json:"color"`
	Type           models.BankAccountType `json:"type"`
	InitialBalance string                 `json:"initial_balance"`
	CurrentBalance string                 `json:"current_balance,omitempty"`
}

func toBankAccountResponse(account *models.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		ID:             account.ID,
		UserID:         account.UserID,
		Name:           account.Name,
		Color:          account.Color,
		Type:           account.Type,
		InitialBalance: money.FormatCents(account.InitialBalance),
	}
}

// CreateBankAccount handles the creation of a new bank account
// @Summary     Create a bank account
// @Description Create a new bank account for the user (or a mentee via target_user_id)
// @Tags        bank-accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       target_user_id query int false "Act on this user's data (mentors only)"
// @Param       request body CreateBankAccountRequest true "Bank account details"
// @Success     201 {object} BankAccountResponse "Bank account created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Read-only access"
// @Router      /bank-accounts [post]
func (h *BankAccountHandler) CreateBankAccount(c *gin.Context) {
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

	var req CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var initialBalance int64
	if req.InitialBalance != "" {
		initialBalance, err = money.ParseSignedCents(req.InitialBalance)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid initial_balance"))
			return
		}
	}

	account, err := h.bankAccountService.CreateBankAccount(userID, targetUserID, req.Name, req.Color, req.Type, initialBalance)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_BANK_ACCOUNT", "bank_account", account.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "type": req.Type})

	c.JSON(http.StatusCreated, gin.H{"bank_account": toBankAccountResponse(account)})
}

// GetBankAccounts lists the user's bank accounts with current balances
// @Summary     List bank accounts
// @Description List all bank accounts with their computed current balances
// @Tags        bank-accounts
// @Produce     json
// @Security    BearerAuth
// @Param       target_user_id query int false "Act on this user's data (mentors only)"
// @Success     200 {array} BankAccountResponse "Bank accounts"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "No delegated access"
// @Router      /bank-accounts [get]
func (h *BankAccountHandler) GetBankAccounts(c *gin.Context) {
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

	accounts, err := h.bankAccountService.GetUserBankAccounts(userID, targetUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	response := make([]BankAccountResponse, 0, len(accounts))
	for i := range accounts {
		r := toBankAccountResponse(&accounts[i].BankAccount)
		r.CurrentBalance = money.FormatCents(accounts[i].CurrentBalance)
		response = append(response, r)
	}
	c.JSON(http.StatusOK, gin.H{"bank_accounts": response})
}

// UpdateBankAccount handles updating a bank account
// @Summary     Update a bank account
// @Description Update a bank account's name, color, type, or initial balance
// @Tags        bank-accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Bank account ID"
// @Param       request body UpdateBankAccountRequest true "Fields to update"
// @Success     200 {object} BankAccountResponse "Bank account updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bank account not found"
// @Router      /bank-accounts/{id} [put]
func (h *BankAccountHandler) UpdateBankAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var initialBalance *int64
	if req.InitialBalance != nil {
		cents, err := money.ParseSignedCents(*req.InitialBalance)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid initial_balance"))
			return
		}
		initialBalance = &cents
	}

	account, err := h.bankAccountService.UpdateBankAccount(userID, accountID, req.Name, req.Color, req.Type, initialBalance)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_BANK_ACCOUNT", "bank_account", accountID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"bank_account": toBankAccountResponse(account)})
}

// DeleteBankAccount handles deleting a bank account
// @Summary     Delete a bank account
// @Description Delete a bank account and all of its transactions
// @Tags        bank-accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Bank account ID"
// @Success     200 {object} MessageResponse "Bank account deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bank account not found"
// @Router      /bank-accounts/{id} [delete]
func (h *BankAccountHandler) DeleteBankAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.bankAccountService.DeleteBankAccount(userID, accountID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_BANK_ACCOUNT", "bank_account", accountID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Bank account deleted successfully"})
}
