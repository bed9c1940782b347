package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type sendOTPRequest struct {
	Phone string `json:"phone"`
}

type verifyOTPRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

func (s *Server) SendOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("Invalid request body"))
		return
	}
	if req.Phone == "" {
		AbortWithError(c, newValidationError("Phone number is required"))
		return
	}
	if !s.smsOTPLimiter.Allow(req.Phone) {
		AbortWithError(c, ErrTooManyRequests)
		return
	}

	if err := s.authsvc.SendPhoneOTP(c.Request.Context(), req.Phone); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent successfully"})
}

func (s *Server) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("Invalid request body"))
		return
	}
	if req.Phone == "" || req.OTP == "" {
		AbortWithError(c, newValidationError("Phone number and OTP are required"))
		return
	}

	if err := s.authsvc.VerifyPhoneOTP(c.Request.Context(), req.Phone, req.OTP); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP verified successfully"})
}
