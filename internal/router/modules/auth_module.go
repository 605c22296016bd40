package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-blog-api/internal/interface/http"
)

// AuthModule: POST /auth/register, POST /auth/login (per-IP limits), GET /auth/me (guarded).
type AuthModule struct {
	Handler *handlers.AuthHandler
	Guard   gin.HandlerFunc
	Limits  Limits
}

func NewAuthModule(h *handlers.AuthHandler, guard gin.HandlerFunc, limits Limits) *AuthModule {
	return &AuthModule{Handler: h, Guard: guard, Limits: limits}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/register", m.Limits.perIP(10), m.Handler.Register)
	rg.POST("/auth/login", m.Limits.perIP(10), m.Handler.Login)
	rg.GET("/auth/me", m.Guard, m.Handler.Me)
}
