package response

import (
	"log"
	"net/http"

	"anoa.com/tutorcabinet/internal/model"
	"anoa.com/tutorcabinet/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// GetActor retrieves the authenticated identity from the context
func GetActor(c *gin.Context) (model.Identity, error) {
	v, exists := c.Get("actor")
	if !exists {
		return model.Identity{}, apperror.ErrUnauthorized
	}

	actor, ok := v.(model.Identity)
	if !ok {
		return model.Identity{}, apperror.ErrUnauthorized
	}

	return actor, nil
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
