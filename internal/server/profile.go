package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/fixitworks/fixit/internal/auth/domain"
)

// UpdateProfile accepts multipart form data so the avatar can ride along with
// the text fields. Every field is optional; omitted ones keep their values.
func (s *Server) UpdateProfile(c *gin.Context) {
	userID, ok := s.userIDFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	req := authdomain.UpdateProfileRequest{
		UserID: userID,
		Name:   c.PostForm("name"),
		Email:  c.PostForm("email"),
	}

	if file, err := c.FormFile("avatar"); err == nil {
		f, err := file.Open()
		if err != nil {
			AbortWithError(c, err)
			return
		}
		defer func() { _ = f.Close() }()
		req.AvatarName = file.Filename
		req.Avatar = io.Reader(f)
	}

	user, err := s.authsvc.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated",
		"user":    s.toPublicUser(c, user),
	})
}
