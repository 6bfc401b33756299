package drafts

import (
	"venuepay/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupDraftRoutes configures all draft-related routes
func SetupDraftRoutes(rg *gin.RouterGroup, controller *Controller) {
	drafts := rg.Group("/drafts")
	drafts.Use(middleware.JWTAuth())
	{
		drafts.PUT("", controller.SaveDraft)
		drafts.GET("/:id", controller.GetDraft)
		drafts.DELETE("/:id", controller.ClearDraft)
		drafts.POST("/summary/take", controller.TakeSummary)
	}
}
