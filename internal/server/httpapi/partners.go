package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type partnerRequest struct {
	Name      string `json:"name"`
	LogoURL   string `json:"logoUrl"`
	SortOrder int    `json:"sortOrder"`
}

func (s *Server) handleListPartners(c *gin.Context) {
	list, err := s.partners.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"partners": newPartnerViews(list)})
}

func (s *Server) handleCreatePartner(c *gin.Context) {
	var in partnerRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	partner, err := s.partners.Create(c.Request.Context(), currentProfile(c), in.Name, in.LogoURL, in.SortOrder)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"partner": newPartnerView(partner)})
}

func (s *Server) handleUpdatePartner(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in partnerRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	if err := s.partners.Update(c.Request.Context(), currentProfile(c), id, in.Name, in.LogoURL, in.SortOrder); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleDeletePartner(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.partners.Delete(c.Request.Context(), currentProfile(c), id); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
