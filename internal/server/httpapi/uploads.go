package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handlePresignUpload hands the client a short-lived PUT URL so media goes
// straight from the browser to object storage. The gate runs here because
// the storage service itself never sees the caller.
func (s *Server) handlePresignUpload(c *gin.Context) {
	if err := s.gate.RequireAuthenticated(currentProfile(c)); err != nil {
		s.writeError(c, err)
		return
	}

	key, uploadURL, publicURL, err := s.storage.PresignPut(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"key":       key,
		"uploadUrl": uploadURL,
		"publicUrl": publicURL,
	})
}

// handleAdminUpload accepts a multipart file and stores it server-side.
func (s *Server) handleAdminUpload(c *gin.Context) {
	if err := s.gate.RequireAdmin(currentProfile(c)); err != nil {
		s.writeError(c, err)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		s.writeError(c, err)
		return
	}
	defer f.Close()

	url, err := s.storage.Upload(c.Request.Context(), fh.Header.Get("Content-Type"), f)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
