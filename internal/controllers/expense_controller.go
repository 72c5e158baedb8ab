package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"car_tracker/internal/middleware"
	"car_tracker/internal/models"
	"car_tracker/internal/notify"
	"car_tracker/internal/store"
)

type expenseInput struct {
	Date        models.Date     `json:"date" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Notes       string          `json:"notes"`
}

func CreateExpense(c *gin.Context) {
	var input expenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expense input: " + err.Error()})
		return
	}

	userID := middleware.UserID(c)
	carID, ok := paramID(c, "carId")
	if !ok {
		return
	}

	rec := models.Expense{
		Date:        input.Date,
		Category:    input.Category,
		Description: input.Description,
		Amount:      input.Amount,
		Notes:       input.Notes,
	}
	id, err := recordStore.Create(userID, carID, store.ExpenseRecord(&rec))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if toasts != nil {
		toasts.Show(userID, "Expense added", notify.SeveritySuccess)
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "record": rec})
}

func ListExpenses(c *gin.Context) {
	userID := middleware.UserID(c)
	carID, ok := paramID(c, "carId")
	if !ok {
		return
	}

	records, err := recordStore.List(userID, carID, store.KindExpense)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func DeleteExpense(c *gin.Context) {
	userID := middleware.UserID(c)
	carID, ok := paramID(c, "carId")
	if !ok {
		return
	}
	recordID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := recordStore.Remove(userID, carID, store.KindExpense, recordID); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}
