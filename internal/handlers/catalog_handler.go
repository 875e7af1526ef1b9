package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizdash/builder-service/internal/models"
	"github.com/quizdash/builder-service/internal/repositories"
	"github.com/quizdash/builder-service/internal/services"
	"github.com/quizdash/builder-service/internal/utils"
)

// CatalogHandler serves the type catalog and saved structures.
type CatalogHandler struct {
	BaseHandler
	catalogService services.CatalogService
	exportService  services.ExportService
}

func NewCatalogHandler(
	catalogService services.CatalogService,
	exportService services.ExportService,
	logger utils.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler:    NewBaseHandler(logger),
		catalogService: catalogService,
		exportService:  exportService,
	}
}

// ListTypes returns the fixed question-type catalog
func (h *CatalogHandler) ListTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"types": h.catalogService.ListTypes(c.Request.Context()),
	})
}

// GetStructure returns one saved structure by ID
func (h *CatalogHandler) GetStructure(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	structure, err := h.catalogService.GetStructure(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, structure)
}

// GetStructureByMetadata returns the structure saved for a question
func (h *CatalogHandler) GetStructureByMetadata(c *gin.Context) {
	metadataID := h.parseIDParam(c, "metadata_id")
	if metadataID == 0 {
		return
	}

	structure, err := h.catalogService.GetByMetadata(c.Request.Context(), metadataID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, structure)
}

// ListStructures returns a filtered, paginated page of structures
func (h *CatalogHandler) ListStructures(c *gin.Context) {
	filters := h.parseStructureFilters(c)

	list, err := h.catalogService.ListStructures(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// DeleteStructure removes a saved structure
func (h *CatalogHandler) DeleteStructure(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting structure", "structure_id", id)

	if err := h.catalogService.DeleteStructure(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Structure deleted"})
}

// GetStats returns per-type structure counts
func (h *CatalogHandler) GetStats(c *gin.Context) {
	counts, err := h.catalogService.CountByType(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

// ExportStructures dumps structures as XLSX or JSON depending on the
// format query parameter
func (h *CatalogHandler) ExportStructures(c *gin.Context) {
	filters := h.parseStructureFilters(c)
	filters.Limit = 0 // export is unpaginated

	switch c.DefaultQuery("format", "xlsx") {
	case "json":
		data, err := h.exportService.ExportJSON(c.Request.Context(), filters)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename=structures.json")
		c.Data(http.StatusOK, "application/json", data)
	case "xlsx":
		data, err := h.exportService.ExportXLSX(c.Request.Context(), filters)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename=structures.xlsx")
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Unsupported export format",
			Details: "format must be xlsx or json",
		})
	}
}

func (h *CatalogHandler) parseStructureFilters(c *gin.Context) repositories.StructureFilters {
	page := h.parseIntQuery(c, "page", 1)
	size := h.parseIntQuery(c, "size", 20)
	if page < 1 {
		page = 1
	}

	filters := repositories.StructureFilters{
		Limit:     size,
		Offset:    (page - 1) * size,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if t := c.Query("type"); t != "" {
		qt := models.QuestionType(t)
		filters.BuilderType = &qt
	}
	if metadataID := h.parseIntQuery(c, "metadata_id", 0); metadataID > 0 {
		id := uint(metadataID)
		filters.MetadataID = &id
	}
	return filters
}
