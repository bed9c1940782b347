package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/fixitworks/fixit/internal/auth/domain"
	userdomain "github.com/fixitworks/fixit/internal/user/domain"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleLoginRequest struct {
	Token string `json:"token"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type newPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

type publicUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type authResponse struct {
	Message string     `json:"message"`
	Token   string     `json:"token"`
	User    publicUser `json:"user"`
}

func (s *Server) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("Invalid request body"))
		return
	}
	if strings.TrimSpace(req.Name) == "" || req.Email == "" || req.Password == "" {
		AbortWithError(c, newValidationError("Name, email and password are required"))
		return
	}

	result, err := s.authsvc.Signup(c.Request.Context(), authdomain.SignupRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{
		Message: "Signup successful",
		Token:   result.Token,
		User:    s.toPublicUser(c, result.User),
	})
}

func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("Invalid request body"))
		return
	}
	if req.Email == "" || req.Password == "" {
		AbortWithError(c, newValidationError("Email and password are required"))
		return
	}

	result, err := s.authsvc.Signin(c.Request.Context(), authdomain.SigninRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   result.Token,
		User:    s.toPublicUser(c, result.User),
	})
}

func (s *Server) GoogleLogin(c *gin.Context) {
	var req googleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("Invalid request body"))
		return
	}

	result, err := s.authsvc.GoogleLogin(c.Request.Context(), req.Token)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   result.Token,
		User:    s.toPublicUser(c, result.User),
	})
}

func (s *Server) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("Invalid request body"))
		return
	}
	if req.Email == "" {
		AbortWithError(c, newValidationError("Email is required"))
		return
	}
	if !s.resetOTPLimiter.Allow(strings.ToLower(strings.TrimSpace(req.Email))) {
		AbortWithError(c, ErrTooManyRequests)
		return
	}

	if err := s.authsvc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent to email"})
}

func (s *Server) NewPassword(c *gin.Context) {
	var req newPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("Invalid request body"))
		return
	}
	if req.Email == "" || req.OTP == "" || req.NewPassword == "" {
		AbortWithError(c, newValidationError("Email, OTP and new password are required"))
		return
	}

	err := s.authsvc.ResetPassword(c.Request.Context(), authdomain.ResetPasswordRequest{
		Email:       req.Email,
		Code:        req.OTP,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}

// toPublicUser projects the stored account for responses. Locally stored
// avatar paths are resolved against the request host; external URLs pass
// through unchanged.
func (s *Server) toPublicUser(c *gin.Context, u *userdomain.User) publicUser {
	out := publicUser{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
	}
	if u.AvatarPath != nil && *u.AvatarPath != "" {
		out.AvatarURL = absoluteURL(c, *u.AvatarPath)
	}
	return out
}

func absoluteURL(c *gin.Context, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return scheme + "://" + c.Request.Host + path
}
