package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fundit/internal/logger"
	"fundit/internal/services"
)

// AdminHandler serves maintenance endpoints guarded by the admin API key.
type AdminHandler struct {
	guestService services.GuestServicer
	guestMaxAge  time.Duration
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(guestService services.GuestServicer, guestMaxAge time.Duration) *AdminHandler {
	return &AdminHandler{guestService: guestService, guestMaxAge: guestMaxAge}
}

// CleanupGuests deletes guest accounts older than the configured max age
// @Summary     Delete stale guests
// @Description Remove guest accounts, and all their data, created before the guest max age
// @Tags        admin
// @Produce     json
// @Param       X-API-Key header string true "Admin API key"
// @Success     200 {object} map[string]int64 "Number of deleted guests"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/cleanup-guests [post]
func (h *AdminHandler) CleanupGuests(c *gin.Context) {
	deleted, err := h.guestService.DeleteStaleGuests(h.guestMaxAge)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Get().Infow("stale guests removed", "deleted", deleted, "max_age", h.guestMaxAge.String())

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
