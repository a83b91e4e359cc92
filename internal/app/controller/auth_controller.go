package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindjournal/mindjournal-backend/internal/app/model"
	"github.com/mindjournal/mindjournal-backend/internal/app/service"
	apperrors "github.com/mindjournal/mindjournal-backend/internal/errors"
	"github.com/mindjournal/mindjournal-backend/internal/middleware"
)

type AuthController struct {
	passwordResetService service.PasswordResetService
}

func NewAuthController(passwordResetService service.PasswordResetService) *AuthController {
	return &AuthController{
		passwordResetService: passwordResetService,
	}
}

type ForgotPasswordRequest struct {
	Email string             `json:"email" binding:"required"`
	Users []model.UserRecord `json:"users" binding:"required"`
}

type VerifyTokenRequest struct {
	Email string `json:"email" binding:"required"`
	Token string `json:"token" binding:"required"`
}

type ResetPasswordRequest struct {
	Email       string             `json:"email" binding:"required"`
	Token       string             `json:"token" binding:"required"`
	NewPassword string             `json:"newPassword" binding:"required"`
	Users       []model.UserRecord `json:"users" binding:"required"`
}

type ForgotPasswordResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	MessageID string `json:"messageId"`
}

type ResetPasswordResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Users   []model.UserRecord `json:"users"`
}

// ForgotPassword issues a reset token and mails the reset link
// POST /api/auth/forgot-password
func (ctrl *AuthController) ForgotPassword(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid forgot password request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.InvalidBody(c, "Email and users data are required")
		return
	}

	result, err := ctrl.passwordResetService.RequestReset(c.Request.Context(), req.Email, req.Users)
	if err != nil {
		apperrors.ParseAndRespond(c, err, "reset request")
		return
	}

	c.JSON(http.StatusOK, ForgotPasswordResponse{
		Success:   result.Success,
		Message:   result.Message,
		MessageID: result.MessageID,
	})
}

// VerifyToken checks a reset token before the reset form is shown
// POST /api/auth/verify-token
func (ctrl *AuthController) VerifyToken(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req VerifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid verify token request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.InvalidBody(c, "Email and token are required")
		return
	}

	result, err := ctrl.passwordResetService.Verify(c.Request.Context(), req.Email, req.Token)
	if err != nil {
		log.Error("Failed to verify reset token", err)
		apperrors.InternalError(c, "Failed to verify token")
		return
	}
	if !result.Valid {
		apperrors.BadRequest(c, apperrors.AuthTokenInvalid, result.Reason)
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// ResetPassword redeems a reset token and returns the updated users
// POST /api/auth/reset-password
func (ctrl *AuthController) ResetPassword(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid reset password request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.InvalidBody(c, "Email, token, new password, and users data are required")
		return
	}

	users, err := ctrl.passwordResetService.ConfirmReset(
		c.Request.Context(),
		req.Email,
		req.Token,
		req.NewPassword,
		req.Users,
	)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidToken) && !errors.Is(err, service.ErrValidation) && !errors.Is(err, service.ErrNotFound) {
			log.Error("Failed to reset password", err)
			apperrors.InternalError(c, "Failed to reset password")
			return
		}
		apperrors.ParseAndRespond(c, err, "reset password")
		return
	}

	c.JSON(http.StatusOK, ResetPasswordResponse{
		Success: true,
		Message: "Password reset successfully!",
		Users:   users,
	})
}
