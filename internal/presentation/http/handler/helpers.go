package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetCashierID extracts the cashier ID from the Gin context
func GetCashierID(c *gin.Context) *uuid.UUID {
	idVal, exists := c.Get("cashier_id")
	if !exists {
		return nil
	}
	id, ok := idVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

// GetCashierName extracts the cashier name from the Gin context
func GetCashierName(c *gin.Context) string {
	name, exists := c.Get("cashier_name")
	if !exists {
		return ""
	}
	return name.(string)
}

// GetCashierRole extracts the cashier role from the Gin context
func GetCashierRole(c *gin.Context) string {
	role, exists := c.Get("cashier_role")
	if !exists {
		return ""
	}
	return role.(string)
}
