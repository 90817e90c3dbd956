package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/services"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/utils"
)

type DirectoryHandler struct {
	BaseHandler
	service services.DirectoryService
}

func NewDirectoryHandler(service services.DirectoryService, logger utils.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// SearchTutors searches the tutor directory
// @Summary Search tutors
// @Description Search the directory of curated listings and registered tutors
// @Tags directory
// @Produce json
// @Param q query string false "Search text matched against name, subjects, and courses"
// @Param year query string false "Filter by academic year, or 'all' (default)"
// @Param faculty query string false "Filter by faculty, or 'all' (default)"
// @Success 200 {object} services.DirectorySearchResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tutors [get]
func (h *DirectoryHandler) SearchTutors(c *gin.Context) {
	query := c.Query("q")
	year := c.DefaultQuery("year", services.FilterAll)
	faculty := c.DefaultQuery("faculty", services.FilterAll)

	h.LogRequest(c, "Searching tutors", "query", query, "year", year, "faculty", faculty)

	result, err := h.service.Search(c.Request.Context(), query, year, faculty)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTutor retrieves a single directory entry
// @Summary Get tutor
// @Description Get a directory entry by ID, curated listing or registered tutor
// @Tags directory
// @Produce json
// @Param id path string true "Tutor ID"
// @Success 200 {object} services.TutorListingResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /tutors/{id} [get]
func (h *DirectoryHandler) GetTutor(c *gin.Context) {
	tutorID := c.Param("id")
	if tutorID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Tutor ID is required",
		})
		return
	}

	h.LogRequest(c, "Getting tutor", "tutor_id", tutorID)

	tutor, err := h.service.GetTutor(c.Request.Context(), tutorID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tutor)
}
