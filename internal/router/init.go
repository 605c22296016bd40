package router

import (
	"github.com/oksasatya/go-ddd-blog-api/internal/container"
	handlers "github.com/oksasatya/go-ddd-blog-api/internal/interface/http"
	"github.com/oksasatya/go-ddd-blog-api/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-blog-api/internal/router/modules"
)

// InitModules builds handlers from c and registers every feature module.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	limits := modules.Limits{Redis: c.RateLimitRedis()}
	if c.Config != nil && c.Config.Env != "production" {
		limits.Allow = middleware.AllowPrivateIP()
	}

	guard := middleware.Auth(c.JWT, c.Users)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(c.AuthService(), c.Logger), guard, limits))
	r.Add(modules.NewPostModule(handlers.NewPostHandler(c.PostService(), c.Logger), guard, c.Uploader(), limits))
	r.Add(modules.NewCommentModule(handlers.NewCommentHandler(c.CommentService(), c.Logger), guard, limits))

	if c.Config != nil && c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(limits))
	}
}
