package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetCashierID extracts the cashier ID from the Gin context
func GetCashierID(c *gin.Context) *uuid.UUID {
	cashierIDVal, exists := c.Get("cashier_id")
	if !exists {
		return nil
	}
	cashierID, ok := cashierIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &cashierID
}

// GetCashierUsername extracts the cashier username from the Gin context
func GetCashierUsername(c *gin.Context) string {
	username, exists := c.Get("cashier_username")
	if !exists {
		return ""
	}
	return username.(string)
}
