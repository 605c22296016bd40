package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog-api/internal/application"
	"github.com/oksasatya/go-ddd-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog-api/pkg/helpers"
	"github.com/oksasatya/go-ddd-blog-api/pkg/response"
	"github.com/oksasatya/go-ddd-blog-api/pkg/validation"
)

type CommentHandler struct {
	Svc    *application.CommentService
	Logger *logrus.Logger
}

func NewCommentHandler(svc *application.CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Svc: svc, Logger: logger}
}

type createCommentRequest struct {
	PostID  string `json:"postId" form:"postId"`
	Content string `json:"content" form:"content"`
}

type updateCommentRequest struct {
	Content string `json:"content" form:"content"`
}

// Create collapses every failure, bad payload included, into 400.
func (h *CommentHandler) Create(c *gin.Context) {
	uid, ok := requester(c)
	if !ok {
		return
	}
	var req createCommentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "error adding comment", validation.ToDetails(err)))
		return
	}
	cm, err := h.Svc.Create(c.Request.Context(), uid, entity.PostID(req.PostID), req.Content)
	if err != nil {
		helpers.LogInfo(h.Logger, "comment rejected", logrus.Fields{"request_id": c.GetString("request_id"), "error": err.Error()})
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "error adding comment", nil))
		return
	}
	response.JSON(c, response.Success(c, http.StatusCreated, cm, "comment added", nil))
}

func (h *CommentHandler) ListByPost(c *gin.Context) {
	list, err := h.Svc.ListByPost(c.Request.Context(), entity.PostID(c.Param("postId")))
	if err != nil {
		writeError(c, h.Logger, err, "comments not found", http.StatusInternalServerError, "error fetching comments")
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, list, "comments", nil))
}

func (h *CommentHandler) Update(c *gin.Context) {
	uid, ok := requester(c)
	if !ok {
		return
	}
	var req updateCommentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}
	cm, err := h.Svc.Update(c.Request.Context(), uid, entity.CommentID(c.Param("id")), req.Content)
	if err != nil {
		writeError(c, h.Logger, err, "comment not found", http.StatusInternalServerError, "error updating comment")
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, cm, "comment updated", nil))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	uid, ok := requester(c)
	if !ok {
		return
	}
	id := entity.CommentID(c.Param("id"))
	if err := h.Svc.Delete(c.Request.Context(), uid, id); err != nil {
		writeError(c, h.Logger, err, "comment not found", http.StatusInternalServerError, "error deleting comment")
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, gin.H{"id": id}, "comment removed", nil))
}
