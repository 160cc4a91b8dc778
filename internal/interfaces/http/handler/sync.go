package handler

import (
	"github.com/gin-gonic/gin"
	salesapp "github.com/hisaabos/backend/internal/application/sales"
)

// SyncHandler handles storefront order import API endpoints
type SyncHandler struct {
	BaseHandler
	syncService *salesapp.SyncService
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(syncService *salesapp.SyncService) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
	}
}

// SyncAll pulls pending orders from every configured storefront. Each
// platform reports its own outcome; one broken platform does not fail the
// request.
func (h *SyncHandler) SyncAll(c *gin.Context) {
	results := h.syncService.SyncAll(c.Request.Context())
	h.Success(c, results)
}

// TestConnections checks every configured storefront's credentials
func (h *SyncHandler) TestConnections(c *gin.Context) {
	results := h.syncService.TestConnections(c.Request.Context())
	h.Success(c, results)
}

// PushStock pushes current stock levels of linked products to every
// configured storefront
func (h *SyncHandler) PushStock(c *gin.Context) {
	results, err := h.syncService.PushStockLevels(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, results)
}
