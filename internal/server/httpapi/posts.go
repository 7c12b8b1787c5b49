package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type postRequest struct {
	Title    string  `json:"title"`
	Content  *string `json:"content"`
	ImageURL string  `json:"imageUrl"`
}

func (s *Server) handleCreatePost(c *gin.Context) {
	var in postRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	post, err := s.moderation.Create(c.Request.Context(), currentProfile(c), in.Title, in.Content, in.ImageURL)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": newPostView(post)})
}

func (s *Server) handleGetPost(c *gin.Context) {
	post, err := s.moderation.Get(c.Request.Context(), currentProfile(c), c.Param("slug"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": newPostView(post)})
}

func (s *Server) handleUpdatePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in postRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	post, err := s.moderation.Update(c.Request.Context(), currentProfile(c), id, in.Title, in.Content, in.ImageURL)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": newPostView(post)})
}

func (s *Server) handleDeletePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.moderation.Delete(c.Request.Context(), currentProfile(c), id); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleListPosts(c *gin.Context) {
	list, err := s.moderation.ListPublished(c.Request.Context(), currentProfile(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": newPostViews(list)})
}

func (s *Server) handleListMyPosts(c *gin.Context) {
	list, err := s.moderation.ListMine(c.Request.Context(), currentProfile(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": newPostViews(list)})
}

func (s *Server) handleListPendingPosts(c *gin.Context) {
	list, err := s.moderation.ListPending(c.Request.Context(), currentProfile(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": newPostViews(list)})
}

// handlePendingCount feeds the polled admin badge.
func (s *Server) handlePendingCount(c *gin.Context) {
	n, err := s.moderation.PendingCount(c.Request.Context(), currentProfile(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": n})
}

func (s *Server) handleApprovePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	changed, err := s.moderation.Approve(c.Request.Context(), currentProfile(c), id)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"approved": true, "changed": changed})
}
