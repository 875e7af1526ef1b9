package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizdash/builder-service/internal/services"
	"github.com/quizdash/builder-service/internal/utils"
	"github.com/quizdash/builder-service/internal/validator"
)

type HandlerManager struct {
	builderHandler *BuilderHandler
	catalogHandler *CatalogHandler
	healthHandler  *HealthHandler
}

func NewHandlerManager(
	builderService services.BuilderService,
	catalogService services.CatalogService,
	exportService services.ExportService,
	validator *validator.Validator,
	logger utils.Logger,
	health *HealthHandler,
) *HandlerManager {
	return &HandlerManager{
		builderHandler: NewBuilderHandler(builderService, validator, logger),
		catalogHandler: NewCatalogHandler(catalogService, exportService, logger),
		healthHandler:  health,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthHandler.Check)

	v1 := router.Group("/api/v1")
	{
		// Question type catalog
		v1.GET("/question-types", hm.catalogHandler.ListTypes)

		// Builder session routes
		sessions := v1.Group("/builder/sessions")
		{
			sessions.POST("", hm.builderHandler.StartSession)
			sessions.GET("/:id", hm.builderHandler.GetSession)
			sessions.DELETE("/:id", hm.builderHandler.CancelSession)

			sessions.POST("/:id/type", hm.builderHandler.SelectType)
			sessions.POST("/:id/advance", hm.builderHandler.Advance)
			sessions.POST("/:id/back", hm.builderHandler.Back)
			sessions.POST("/:id/actions", hm.builderHandler.ApplyAction)

			sessions.GET("/:id/validate", hm.builderHandler.Validate)
			sessions.GET("/:id/preview", hm.builderHandler.Preview)
			sessions.POST("/:id/save", hm.builderHandler.Save)
		}

		// Saved structure routes (read side)
		structures := v1.Group("/structures")
		{
			structures.GET("", hm.catalogHandler.ListStructures)
			structures.GET("/stats", hm.catalogHandler.GetStats)
			structures.GET("/export", hm.catalogHandler.ExportStructures)
			structures.GET("/:id", hm.catalogHandler.GetStructure)
			structures.DELETE("/:id", hm.catalogHandler.DeleteStructure)
			structures.GET("/metadata/:metadata_id", hm.catalogHandler.GetStructureByMetadata)
		}
	}
}

// HealthHandler reports service liveness and its dependencies.
type HealthHandler struct {
	pingers map[string]func() error
}

func NewHealthHandler(pingers map[string]func() error) *HealthHandler {
	return &HealthHandler{pingers: pingers}
}

func (h *HealthHandler) Check(c *gin.Context) {
	status := http.StatusOK
	deps := make(map[string]string, len(h.pingers))
	for name, ping := range h.pingers {
		if err := ping(); err != nil {
			deps[name] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			deps[name] = "ok"
		}
	}

	c.JSON(status, gin.H{
		"status":       map[bool]string{true: "healthy", false: "degraded"}[status == http.StatusOK],
		"service":      "builder-service",
		"dependencies": deps,
	})
}
