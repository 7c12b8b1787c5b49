package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handlePublicProfile(c *gin.Context) {
	profile, stats, err := s.identity.PublicProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": publicProfileView(profile),
		"stats": profileStatsView{
			PostCount:    stats.PostCount,
			LikeCount:    stats.LikeCount,
			CommentCount: stats.CommentCount,
		},
	})
}

func (s *Server) handleSearchUsers(c *gin.Context) {
	list, err := s.directory.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": newProfileViews(list, false)})
}

func (s *Server) handleListUsers(c *gin.Context) {
	list, err := s.accounts.ListUsers(c.Request.Context(), currentProfile(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": newProfileViews(list, true)})
}

type banRequest struct {
	Banned bool `json:"banned"`
}

func (s *Server) handleBanUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in banRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	if err := s.accounts.SetBanned(c.Request.Context(), currentProfile(c), id, in.Banned); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type roleRequest struct {
	Role string `json:"role"`
}

func (s *Server) handleSetRole(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in roleRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	if err := s.accounts.SetRole(c.Request.Context(), currentProfile(c), id, in.Role); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type verifyRequest struct {
	Verified bool `json:"verified"`
}

func (s *Server) handleVerifyUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in verifyRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	if err := s.accounts.SetVerified(c.Request.Context(), currentProfile(c), id, in.Verified); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
