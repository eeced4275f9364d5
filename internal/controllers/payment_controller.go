package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"impound_manager/internal/config"
	"impound_manager/internal/models"
)

// RecordPayment appends a payment to the ledger of an open procedure.
// The ledger is append-only; there is no update or delete.
func RecordPayment(c *gin.Context) {
	var input struct {
		ProcedureID uint                 `json:"procedure_id" binding:"required"`
		Amount      int64                `json:"amount" binding:"required"`
		Method      models.PaymentMethod `json:"method" binding:"required"`
		Reference   string               `json:"reference"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !input.Method.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment method"})
		return
	}

	payment, err := Lifecycle.RecordPayment(c.Request.Context(), input.ProcedureID, input.Amount, input.Method, input.Reference)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"payment_id":   payment.ID,
		"procedure_id": payment.ProcedureID,
		"amount":       payment.Amount,
		"method":       payment.Method,
	}).Info("payment recorded")

	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

// ListPayments supports optional ?procedure_id= and ?owner_id= filters.
func ListPayments(c *gin.Context) {
	query := config.DB
	if proc := c.Query("procedure_id"); proc != "" {
		query = query.Where("procedure_id = ?", proc)
	}
	if owner := c.Query("owner_id"); owner != "" {
		query = query.Where("owner_id = ?", owner)
	}

	var payments []models.Payment
	if err := query.Order("paid_at DESC").Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing payments: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": payments})
}

// GetBalance reports the outstanding balance of a procedure, recomputed from
// the ledger on every call.
func GetBalance(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	balance, err := Lifecycle.OutstandingBalance(c.Request.Context(), id)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"procedure_id": id, "outstanding_balance": balance})
}
