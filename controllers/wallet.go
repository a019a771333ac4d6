// controllers/wallet.go
package controllers

import (
	"errors"
	"net/http"

	"salonhub-backend/config"
	"salonhub-backend/models"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type WithdrawInput struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description"`
}

// GetWallet returns the authenticated user's wallet balance. Users who
// have never received funds see a zero balance.
func GetWallet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var wallet models.Wallet
	err := config.DB.Where("user_id = ?", userID).First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, gin.H{"balance": 0.0, "isActive": true})
		return
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, wallet)
}

// GetWalletTransactions lists the user's ledger entries, newest first.
func GetWalletTransactions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := config.DB.Where("user_id = ?", userID)
	if txnType := c.Query("type"); txnType != "" {
		query = query.Where("transaction_type = ?", txnType)
	}

	var transactions []models.Transaction
	if err := query.Order("created_at DESC").Limit(100).Find(&transactions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// Withdraw debits the user's wallet. An insufficient balance is
// rejected without touching the wallet or the ledger.
func Withdraw(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input WithdrawInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	done, err := paymentService().WalletWithdraw(userID, input.Amount, input.Description)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to process withdrawal")
		return
	}
	if !done {
		utils.RespondWithError(c, http.StatusConflict, "Insufficient wallet balance")
		return
	}

	var wallet models.Wallet
	if err := config.DB.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, wallet)
}
