package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleToggleLike(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	liked, count, err := s.interaction.ToggleLike(c.Request.Context(), currentProfile(c), id)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked, "likeCount": count})
}

type commentRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleAddComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in commentRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	comment, err := s.interaction.AddComment(c.Request.Context(), currentProfile(c), id, in.Content)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": newCommentView(comment)})
}

// handleListComments is addressed by slug like the post page itself.
func (s *Server) handleListComments(c *gin.Context) {
	caller := currentProfile(c)

	post, err := s.moderation.Get(c.Request.Context(), caller, c.Param("slug"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	list, err := s.interaction.ListComments(c.Request.Context(), caller, post.ID)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": newCommentViews(list)})
}

func (s *Server) handleDeleteComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.interaction.DeleteComment(c.Request.Context(), currentProfile(c), id); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
