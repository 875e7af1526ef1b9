package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizdash/builder-service/internal/builder"
	"github.com/quizdash/builder-service/internal/models"
	"github.com/quizdash/builder-service/internal/services"
	"github.com/quizdash/builder-service/internal/utils"
	"github.com/quizdash/builder-service/internal/validator"
)

// BuilderHandler exposes the authoring wizard over HTTP.
type BuilderHandler struct {
	BaseHandler
	builderService services.BuilderService
	validator      *validator.Validator
}

func NewBuilderHandler(
	builderService services.BuilderService,
	validator *validator.Validator,
	logger utils.Logger,
) *BuilderHandler {
	return &BuilderHandler{
		BaseHandler:    NewBaseHandler(logger),
		builderService: builderService,
		validator:      validator,
	}
}

type StartSessionRequest struct {
	MetadataID uint `json:"metadata_id" validate:"required"`
}

type SelectTypeRequest struct {
	Type string `json:"type" validate:"required,question_type"`
}

// StartSession opens a new authoring session for a question
func (h *BuilderHandler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Starting builder session", "metadata_id", req.MetadataID)

	view, err := h.builderService.StartSession(c.Request.Context(), req.MetadataID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetSession returns the current wizard state
func (h *BuilderHandler) GetSession(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	view, err := h.builderService.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CancelSession discards a session and its in-progress structure
func (h *BuilderHandler) CancelSession(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	h.LogRequest(c, "Cancelling builder session", "session_id", sessionID)

	if err := h.builderService.CancelSession(c.Request.Context(), sessionID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Session cancelled"})
}

// SelectType picks the question variant for the session
func (h *BuilderHandler) SelectType(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	var req SelectTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	view, err := h.builderService.SelectType(c.Request.Context(), sessionID, models.QuestionType(req.Type))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Advance moves the wizard one step forward
func (h *BuilderHandler) Advance(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	view, err := h.builderService.Advance(c.Request.Context(), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Back moves the wizard one step backward
func (h *BuilderHandler) Back(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	view, err := h.builderService.Back(c.Request.Context(), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ApplyAction runs one edit against the in-progress structure
func (h *BuilderHandler) ApplyAction(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	var action builder.Action
	if err := c.ShouldBindJSON(&action); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	if err := h.validator.Validate(&action); err != nil {
		h.handleServiceError(c, err)
		return
	}

	view, err := h.builderService.ApplyAction(c.Request.Context(), sessionID, action)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Validate reports every rule violation of the in-progress structure
func (h *BuilderHandler) Validate(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	verrs, err := h.builderService.Validate(c.Request.Context(), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"valid":    len(verrs) == 0,
		"errors":   verrs,
		"messages": verrs.Messages(),
	})
}

// Preview returns the learner-facing display payload for the current
// structure, shuffles included
func (h *BuilderHandler) Preview(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	payload, err := h.builderService.Preview(c.Request.Context(), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// Save persists the finished structure and completes the session
func (h *BuilderHandler) Save(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	h.LogRequest(c, "Saving structure", "session_id", sessionID)

	result, err := h.builderService.Save(c.Request.Context(), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
