package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-blog-api/internal/interface/http"
)

type CommentModule struct {
	Handler *handlers.CommentHandler
	Guard   gin.HandlerFunc
	Limits  Limits
}

func NewCommentModule(h *handlers.CommentHandler, guard gin.HandlerFunc, limits Limits) *CommentModule {
	return &CommentModule{Handler: h, Guard: guard, Limits: limits}
}

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	rg.GET("/comments/:postId", m.Handler.ListByPost)

	auth := rg.Group("/comments")
	auth.Use(m.Guard, m.Limits.perUser(120))
	{
		auth.POST("", m.Handler.Create)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
