package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-ddd-blog-api/internal/interface/middleware"
)

// Limits carries the shared rate-limit backend. A nil Redis disables limiting.
type Limits struct {
	Redis *redis.Client
	Allow middleware.AllowFunc
}

func (l Limits) perIP(max int) gin.HandlerFunc {
	return middleware.RateLimit(l.Redis, max, time.Minute, middleware.KeyByIPAndPath(), l.Allow)
}

func (l Limits) perUser(max int) gin.HandlerFunc {
	return middleware.RateLimit(l.Redis, max, time.Minute, middleware.KeyByUserID(), l.Allow)
}
