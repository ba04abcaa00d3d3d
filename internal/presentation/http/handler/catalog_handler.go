package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rcifuentes/caja-api/internal/application/service"
	"github.com/rcifuentes/caja-api/internal/presentation/http/dto/response"
	"github.com/rcifuentes/caja-api/pkg/debounce"
)

// CatalogHandler handles product search requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Search handles product search by free text or code. A search superseded
// by a faster-typing cashier answers 204: the UI only renders the trailing
// result.
func (h *CatalogHandler) Search(c *gin.Context) {
	cashierID := GetCashierID(c)
	if cashierID == nil {
		response.Unauthorized(c, "Cashier not authenticated")
		return
	}

	products, err := h.catalogService.Search(c.Request.Context(), *cashierID, c.Query("q"))
	if err != nil {
		if errors.Is(err, debounce.ErrSuperseded) {
			response.NoContent(c)
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Products retrieved successfully", products)
}
