package drafts

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"venuepay/internal/shared/middleware"
	"venuepay/internal/shared/utils/response"
)

type Controller struct {
	repo Repository
}

func NewController(repo Repository) *Controller {
	return &Controller{repo: repo}
}

// SaveDraft handles PUT /api/v1/drafts
func (c *Controller) SaveDraft(ctx *gin.Context) {
	uid, exists := ctx.Get(middleware.ContextUserID)
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var draft BookingDraft
	if err := ctx.ShouldBindJSON(&draft); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, response.ValidationErrors(err))
		return
	}

	if draft.ID == "" {
		draft.ID = uuid.New().String()
	}
	if s, ok := uid.(string); ok {
		draft.UserID = s
	}

	if err := c.repo.Save(ctx.Request.Context(), &draft); err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to save draft", nil, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Draft saved", draft, nil)
}

// GetDraft handles GET /api/v1/drafts/:id
func (c *Controller) GetDraft(ctx *gin.Context) {
	draft, err := c.repo.Load(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrDraftNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking draft not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to load draft", nil, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Draft loaded", draft, nil)
}

// ClearDraft handles DELETE /api/v1/drafts/:id
func (c *Controller) ClearDraft(ctx *gin.Context) {
	if err := c.repo.Clear(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to clear draft", nil, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Draft cleared", nil, nil)
}

// TakeSummary handles POST /api/v1/drafts/summary/take
// Returns and deletes the pending booking summary so the landing toast shows
// at most once.
func (c *Controller) TakeSummary(ctx *gin.Context) {
	uid, exists := ctx.Get(middleware.ContextUserID)
	userIDStr, ok := uid.(string)
	if !exists || !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	summary, err := c.repo.TakeSummary(ctx.Request.Context(), userIDStr)
	if err != nil {
		if errors.Is(err, ErrSummaryNotFound) {
			response.RespondJSON(ctx, "success", http.StatusOK, "No pending summary", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to load summary", nil, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Summary taken", summary, nil)
}
