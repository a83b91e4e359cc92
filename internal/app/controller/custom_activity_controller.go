package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindjournal/mindjournal-backend/internal/app/service"
	apperrors "github.com/mindjournal/mindjournal-backend/internal/errors"
	"github.com/mindjournal/mindjournal-backend/internal/middleware"
)

type CustomActivityController struct {
	activityService service.CustomActivityService
}

func NewCustomActivityController(activityService service.CustomActivityService) *CustomActivityController {
	return &CustomActivityController{activityService: activityService}
}

type CustomActivityRequest struct {
	Email    string `json:"email"`
	Activity string `json:"activity"`
}

// List returns the user's custom activity labels
// GET /api/custom-activities/:email
func (ctrl *CustomActivityController) List(c *gin.Context) {
	names, err := ctrl.activityService.List(c.Request.Context(), c.Param("email"))
	if err != nil {
		ctrl.fail(c, err, "Failed to fetch activities")
		return
	}
	c.JSON(http.StatusOK, names)
}

// Add stores a label; adding an existing label is a no-op
// POST /api/custom-activities
func (ctrl *CustomActivityController) Add(c *gin.Context) {
	var req CustomActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.InvalidBody(c, "")
		return
	}

	names, err := ctrl.activityService.Add(c.Request.Context(), req.Email, req.Activity)
	if err != nil {
		ctrl.fail(c, err, "Failed to add activity")
		return
	}
	c.JSON(http.StatusOK, names)
}

// Remove deletes a label
// DELETE /api/custom-activities
func (ctrl *CustomActivityController) Remove(c *gin.Context) {
	var req CustomActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.InvalidBody(c, "")
		return
	}

	names, err := ctrl.activityService.Remove(c.Request.Context(), req.Email, req.Activity)
	if err != nil {
		ctrl.fail(c, err, "Failed to delete activity")
		return
	}
	c.JSON(http.StatusOK, names)
}

func (ctrl *CustomActivityController) fail(c *gin.Context, err error, message string) {
	if errors.Is(err, service.ErrValidation) {
		apperrors.ParseAndRespond(c, err, "activities")
		return
	}
	middleware.GetLoggerFromContext(c).Error(message, err)
	apperrors.InternalError(c, message)
}
