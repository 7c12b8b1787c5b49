package httpapi

import (
	"errors"
	"net/http"

	"github.com/Bangbenzzz/blogerz-sub000/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// pathID returns the :id route parameter when it is a well-formed UUID.
// The id columns are UUID-typed, so a malformed id cannot reference any
// row; it reads as not found instead of a driver conversion error.
func pathID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return "", false
	}
	return id, true
}

// writeError maps a service error onto an HTTP status. Anything outside the
// sentinel taxonomy becomes a generic 500; the detail is only logged.
func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, common.ErrorForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, common.ErrorBanned):
		c.JSON(http.StatusForbidden, gin.H{"error": "account is banned"})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, common.ErrorConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict"})
	default:
		s.logger.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
