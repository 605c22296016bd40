package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog-api/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog-api/pkg/helpers"
	"github.com/oksasatya/go-ddd-blog-api/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth validates the bearer access token and sets userID in the Gin context on success.
// When users is non-nil the token subject must still exist.
func Auth(jwt *helpers.JWTManager, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Abort(c, response.Error[any](c, http.StatusUnauthorized, "not authorized, no token", nil))
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			response.Abort(c, response.Error[any](c, http.StatusUnauthorized, "not authorized, token failed", err.Error()))
			return
		}
		if users != nil {
			if _, err := users.GetByID(c.Request.Context(), entity.UserID(claims.UserID)); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					response.Abort(c, response.Error[any](c, http.StatusUnauthorized, "not authorized, user not found", nil))
					return
				}
				_ = c.Error(err)
				response.Abort(c, response.Error[any](c, http.StatusInternalServerError, "error verifying user", nil))
				return
			}
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

// UserID returns the identity set by Auth.
func UserID(c *gin.Context) (entity.UserID, bool) {
	id := c.GetString(CtxUserIDKey)
	return entity.UserID(id), id != ""
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
