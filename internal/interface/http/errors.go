package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog-api/internal/application"
	"github.com/oksasatya/go-ddd-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog-api/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-blog-api/pkg/helpers"
	"github.com/oksasatya/go-ddd-blog-api/pkg/response"
)

// writeError maps service errors onto the envelope. Not-found and ownership
// failures keep their own status; everything else collapses to status/fallback.
func writeError(c *gin.Context, logger *logrus.Logger, err error, notFound string, status int, fallback string) {
	switch {
	case errors.Is(err, application.ErrNotFound):
		response.JSON(c, response.Error[any](c, http.StatusNotFound, notFound, nil))
	case errors.Is(err, application.ErrNotAuthorized):
		response.JSON(c, response.Error[any](c, http.StatusUnauthorized, "not authorized", nil))
	default:
		helpers.LogError(logger, fallback, err, logrus.Fields{"request_id": c.GetString("request_id")})
		response.JSON(c, response.Error[any](c, status, fallback, nil))
	}
}

// requester returns the identity set by the auth middleware. Routes using it
// are always guarded, so a missing id is treated as unauthorized.
func requester(c *gin.Context) (entity.UserID, bool) {
	uid, ok := middleware.UserID(c)
	if !ok {
		response.JSON(c, response.Error[any](c, http.StatusUnauthorized, "not authorized", nil))
	}
	return uid, ok
}
