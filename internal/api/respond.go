package api

import (
	"errors"
	"net/http"

	"github.com/san98215/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// responder turns service errors into the JSON error envelope.
type responder struct {
	log logrus.FieldLogger
	// production hides internal error details from clients.
	production bool
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"success": false, "message": message})
}

// fail maps typed service errors to their status. Anything else is logged
// and answered with 500 and the fallback message.
func (r responder) fail(c *gin.Context, err error, fallback string) {
	var (
		validationErr *service.ValidationError
		authnErr      *service.AuthenticationError
		authzErr      *service.AuthorizationError
		notFoundErr   *service.NotFoundError
	)
	switch {
	case errors.As(err, &validationErr):
		abortWithError(c, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &authnErr):
		abortWithError(c, http.StatusUnauthorized, authnErr.Message)
	case errors.As(err, &authzErr):
		abortWithError(c, http.StatusForbidden, authzErr.Message)
	case errors.As(err, &notFoundErr):
		abortWithError(c, http.StatusNotFound, notFoundErr.Message)
	default:
		r.log.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"route":  c.FullPath(),
		}).Error(fallback)
		body := gin.H{"success": false, "message": fallback}
		if !r.production {
			body["error"] = err.Error()
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	}
}

// badRequest answers a body that could not be decoded.
func badRequest(c *gin.Context, err error) {
	abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
}
