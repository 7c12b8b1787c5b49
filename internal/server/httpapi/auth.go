package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var in registerRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	profile, token, err := s.identity.Register(c.Request.Context(), in.Email, in.Password, in.Name)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"user": ownProfileView(profile), "token": token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var in loginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	profile, token, err := s.identity.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"user": ownProfileView(profile), "token": token})
}

func (s *Server) handleLogout(c *gin.Context) {
	s.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// handleSyncProfile is the idempotent profile upsert clients call after
// establishing a session. It returns the profile as stored, so an existing
// role or verified flag is never lost.
func (s *Server) handleSyncProfile(c *gin.Context) {
	caller := currentProfile(c)
	if err := s.gate.RequireAuthenticated(caller); err != nil {
		s.writeError(c, err)
		return
	}

	profile, err := s.identity.EnsureProfile(c.Request.Context(), caller.ID, caller.Email, caller.Name)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": ownProfileView(profile)})
}

type updateProfileRequest struct {
	Name      string  `json:"name"`
	Username  *string `json:"username"`
	Bio       string  `json:"bio"`
	AvatarURL string  `json:"avatarUrl"`
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	var in updateProfileRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	profile, err := s.identity.UpdateOwnProfile(c.Request.Context(), currentProfile(c), in.Name, in.Username, in.Bio, in.AvatarURL)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": ownProfileView(profile)})
}
