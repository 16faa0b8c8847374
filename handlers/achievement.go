package handlers

import (
	"context"
	"net/http"

	"github.com/tutorzindia/site/models"
	"github.com/tutorzindia/site/pkg"
	"github.com/tutorzindia/site/pkg/gateway"
	"github.com/tutorzindia/site/pkg/i18n"
	"github.com/tutorzindia/site/services"
)

// AchievementHandler serves the admin achievement endpoints.
type AchievementHandler struct {
	achievementService services.AchievementService
}

// NewAchievementHandler returns the handler.
func NewAchievementHandler(achievementService services.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

var achievementOptions = gateway.Options{
	Name:          "achievement",
	Success:       gateway.OutcomeReset,
	SuccessStatus: http.StatusCreated,
	Messages: gateway.Messages{
		SuccessTitle: "achievement.added",
		Failure:      "achievement.failed",
	},
}

// List godoc
// GET /api/admin/achievements
func (h *AchievementHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.achievementService.List(r.Context(), userFrom(r))
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, items)
}

// Create godoc
// POST /api/admin/achievements
func (h *AchievementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.AchievementRequest
	if err := decodeJSON(r, &req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var a *models.Achievement
	res := gateway.Submit(r.Context(), i18n.FromRequest(r), &req, func(ctx context.Context) error {
		var err error
		a, err = h.achievementService.Create(ctx, userFrom(r), &req)
		return err
	}, achievementOptions)

	res.Write(w, a)
}
