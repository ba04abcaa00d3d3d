package handler

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/rcifuentes/caja-api/internal/application/service"
	"github.com/rcifuentes/caja-api/internal/presentation/http/dto/request"
	"github.com/rcifuentes/caja-api/internal/presentation/http/dto/response"
)

// TillHandler handles till requests
type TillHandler struct {
	tillService *service.TillService
}

// NewTillHandler creates a new till handler
func NewTillHandler(tillService *service.TillService) *TillHandler {
	return &TillHandler{tillService: tillService}
}

// Close handles closing the cashier's till. The request must carry
// confirm=true; the UI asks the cashier before sending it.
func (h *TillHandler) Close(c *gin.Context) {
	cashierID := GetCashierID(c)
	if cashierID == nil {
		response.Unauthorized(c, "Cashier not authenticated")
		return
	}

	var req request.CloseTillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if !req.Confirm {
		response.BadRequest(c, "Debes confirmar el cierre de caja.")
		return
	}

	closing, err := h.tillService.Close(c.Request.Context(), *cashierID)
	if err != nil {
		response.Error(c, err)
		return
	}

	log.Printf("Till %d closed by %s", closing.TillID, GetCashierUsername(c))
	response.OK(c, "Caja cerrada con éxito", gin.H{"till_id": closing.TillID})
}
