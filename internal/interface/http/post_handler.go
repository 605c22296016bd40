package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog-api/internal/application"
	"github.com/oksasatya/go-ddd-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog-api/pkg/helpers"
	"github.com/oksasatya/go-ddd-blog-api/pkg/response"
	"github.com/oksasatya/go-ddd-blog-api/pkg/upload"
	"github.com/oksasatya/go-ddd-blog-api/pkg/validation"
)

type PostHandler struct {
	Svc    *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(svc *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

// postRequest binds from JSON or multipart form. Categories may be repeated
// form values or a single JSON array string.
type postRequest struct {
	Title      string   `json:"title" form:"title"`
	Content    string   `json:"content" form:"content"`
	Categories []string `json:"categories" form:"categories"`
}

func (r *postRequest) categories() []string {
	if len(r.Categories) == 1 && strings.HasPrefix(strings.TrimSpace(r.Categories[0]), "[") {
		var list []string
		if err := json.Unmarshal([]byte(r.Categories[0]), &list); err == nil {
			return list
		}
	}
	if r.Categories == nil {
		return []string{}
	}
	return r.Categories
}

func (h *PostHandler) Create(c *gin.Context) {
	uid, ok := requester(c)
	if !ok {
		return
	}
	var req postRequest
	if err := c.ShouldBind(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), uid, application.CreatePostInput{
		Title:      req.Title,
		Content:    req.Content,
		Categories: req.categories(),
		Image:      upload.PathFrom(c),
	})
	if err != nil {
		writeError(c, h.Logger, err, "post not found", http.StatusInternalServerError, "error creating post")
		return
	}
	response.JSON(c, response.Success(c, http.StatusCreated, p, "post created", nil))
}

func (h *PostHandler) List(c *gin.Context) {
	page := queryInt(c, "page", application.DefaultPage)
	limit := queryInt(c, "limit", application.DefaultLimit)
	res, err := h.Svc.List(c.Request.Context(), page, limit)
	if err != nil {
		writeError(c, h.Logger, err, "post not found", http.StatusInternalServerError, "error fetching posts")
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, res, "posts", nil))
}

func (h *PostHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), entity.PostID(c.Param("id")))
	if err != nil {
		writeError(c, h.Logger, err, "post not found", http.StatusInternalServerError, "error fetching post")
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, p, "post", nil))
}

func (h *PostHandler) Update(c *gin.Context) {
	uid, ok := requester(c)
	if !ok {
		return
	}
	var req postRequest
	if err := c.ShouldBind(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), uid, entity.PostID(c.Param("id")), application.UpdatePostInput{
		Title:      req.Title,
		Content:    req.Content,
		Categories: req.categories(),
	})
	if err != nil {
		writeError(c, h.Logger, err, "post not found", http.StatusInternalServerError, "error updating post")
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, p, "post updated", nil))
}

func (h *PostHandler) Delete(c *gin.Context) {
	uid, ok := requester(c)
	if !ok {
		return
	}
	id := entity.PostID(c.Param("id"))
	if err := h.Svc.Delete(c.Request.Context(), uid, id); err != nil {
		writeError(c, h.Logger, err, "post not found", http.StatusInternalServerError, "error deleting post")
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, gin.H{"id": id}, "post removed", nil))
}

// Search queries the post index. Returns an empty list when search is not configured.
func (h *PostHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size := queryInt(c, "size", 10)
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		helpers.LogError(h.Logger, "search posts failed", err, logrus.Fields{"request_id": c.GetString("request_id")})
		response.JSON(c, response.Error[any](c, http.StatusInternalServerError, "search failed", nil))
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, hits, "ok", gin.H{"count": len(hits)}))
}

// queryInt reads a positive integer query value; anything else yields def.
func queryInt(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 1 {
		return def
	}
	return n
}
