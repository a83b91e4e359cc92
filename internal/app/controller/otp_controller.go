package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mindjournal/mindjournal-backend/internal/app/service"
	"github.com/mindjournal/mindjournal-backend/internal/middleware"
)

type OTPController struct {
	otpService service.OTPService
}

func NewOTPController(otpService service.OTPService) *OTPController {
	return &OTPController{otpService: otpService}
}

type SendOTPRequest struct {
	Email string `json:"email" binding:"required"`
}

type VerifyOTPRequest struct {
	Email string   `json:"email" binding:"required"`
	OTP   OTPInput `json:"otp" binding:"required"`
}

// OTPInput accepts the code as a JSON string or a JSON number.
type OTPInput string

func (o *OTPInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = OTPInput(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("otp must be a string or a number")
	}
	// Exponent forms such as 1.23456e5 are spelled out in decimal.
	if f, err := n.Float64(); err == nil && strings.ContainsAny(n.String(), "eE") {
		*o = OTPInput(strconv.FormatFloat(f, 'f', -1, 64))
		return nil
	}
	*o = OTPInput(n.String())
	return nil
}

// SendOTP mails a fresh verification code
// POST /send-otp
func (ctrl *OTPController) SendOTP(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid send OTP request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	if err := ctrl.otpService.SendOTP(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrValidation) {
			log.Warn("Rejected OTP request for malformed email", map[string]interface{}{
				"email": req.Email,
			})
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send OTP"})
			return
		}
		log.Error("Failed to send OTP", err, map[string]interface{}{
			"email": req.Email,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send OTP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
}

// VerifyOTP checks and consumes a verification code
// POST /verify-otp
func (ctrl *OTPController) VerifyOTP(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid verify OTP request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{"verified": false})
		return
	}

	verified, err := ctrl.otpService.VerifyOTP(c.Request.Context(), req.Email, string(req.OTP))
	if err != nil {
		log.Error("Failed to verify OTP", err, map[string]interface{}{
			"email": req.Email,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"verified": false})
		return
	}
	if !verified {
		c.JSON(http.StatusBadRequest, gin.H{"verified": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"verified": true})
}
