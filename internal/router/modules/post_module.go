package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-blog-api/internal/interface/http"
	"github.com/oksasatya/go-ddd-blog-api/pkg/upload"
)

// PostModule wires the post routes. Reads are public; writes require a bearer
// token, and create additionally accepts one image under the "image" field.
type PostModule struct {
	Handler  *handlers.PostHandler
	Guard    gin.HandlerFunc
	Uploader *upload.Uploader
	Limits   Limits
}

func NewPostModule(h *handlers.PostHandler, guard gin.HandlerFunc, u *upload.Uploader, limits Limits) *PostModule {
	return &PostModule{Handler: h, Guard: guard, Uploader: u, Limits: limits}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	rg.GET("/posts", m.Handler.List)
	rg.GET("/posts/search", m.Handler.Search)
	rg.GET("/posts/:id", m.Handler.Get)

	// Auth runs before the upload so rejected requests never touch storage.
	auth := rg.Group("/posts")
	auth.Use(m.Guard, m.Limits.perUser(60))
	{
		auth.POST("", m.Uploader.Single("image"), m.Handler.Create)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
