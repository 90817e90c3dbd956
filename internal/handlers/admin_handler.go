package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/services"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminHandler struct {
	BaseHandler
	seedService   services.SeedService
	exportService services.ExportService
}

func NewAdminHandler(seedService services.SeedService, exportService services.ExportService, logger utils.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:   NewBaseHandler(logger),
		seedService:   seedService,
		exportService: exportService,
	}
}

// SeedDemoData inserts the demo dataset
// @Summary Seed demo data
// @Description Insert demo accounts, listings, sessions, and chats; skipped when already present
// @Tags admin
// @Produce json
// @Success 200 {object} services.SeedResult
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /admin/seed [post]
func (h *AdminHandler) SeedDemoData(c *gin.Context) {
	h.LogRequest(c, "Seeding demo data")

	result, err := h.seedService.Seed(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExportDirectory downloads the tutor directory as a workbook
// @Summary Export directory
// @Description Download the full tutor directory as an xlsx workbook
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /admin/export [get]
func (h *AdminHandler) ExportDirectory(c *gin.Context) {
	h.LogRequest(c, "Exporting directory")

	data, err := h.exportService.ExportDirectory(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("tutor-directory-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
