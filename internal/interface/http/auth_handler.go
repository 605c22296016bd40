package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog-api/internal/application"
	"github.com/oksasatya/go-ddd-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog-api/pkg/response"
	"github.com/oksasatya/go-ddd-blog-api/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID        entity.UserID `json:"id"`
	Email     string        `json:"email"`
	Name      string        `json:"name"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

func sessionData(s *application.Session) gin.H {
	return gin.H{"user": toUserResponse(s.User), "token": s.AccessToken}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}
	s, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.JSON(c, response.Error[any](c, http.StatusConflict, "user already exists", nil))
			return
		}
		writeError(c, h.Logger, err, "user not found", http.StatusInternalServerError, "error registering user")
		return
	}
	response.JSON(c, response.Success(c, http.StatusCreated, sessionData(s), "registered", gin.H{"expires_at": s.ExpiresAt}))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}
	s, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.JSON(c, response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil))
			return
		}
		writeError(c, h.Logger, err, "user not found", http.StatusInternalServerError, "error logging in")
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, sessionData(s), "login successful", gin.H{"expires_at": s.ExpiresAt}))
}

func (h *AuthHandler) Me(c *gin.Context) {
	uid, ok := requester(c)
	if !ok {
		return
	}
	u, err := h.Svc.Profile(c.Request.Context(), uid)
	if err != nil {
		writeError(c, h.Logger, err, "user not found", http.StatusInternalServerError, "error fetching profile")
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, toUserResponse(u), "profile", nil))
}
