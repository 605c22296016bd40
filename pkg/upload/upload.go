package upload

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog-api/pkg/helpers"
	"github.com/oksasatya/go-ddd-blog-api/pkg/response"
)

const (
	// MaxSize is the largest accepted file, in bytes.
	MaxSize int64 = 1_000_000

	pathKey    = "upload_path"
	maxRetries = 5
	// room for the non-file form fields next to the file itself
	formOverhead int64 = 1 << 20
)

var (
	ErrUnsupportedType = errors.New("images only")
	ErrTooLarge        = errors.New("file too large")
	ErrTooManyFiles    = errors.New("only one file is accepted")
	ErrInvalidForm     = errors.New("invalid multipart form")
)

var (
	imageExts  = map[string]bool{".jpeg": true, ".jpg": true, ".png": true}
	imageTypes = regexp.MustCompile(`jpeg|jpg|png`)
)

// Uploader accepts at most one image per request under a fixed form field.
type Uploader struct {
	Store   Storage
	Logger  *logrus.Logger
	MaxSize int64
	Now     func() time.Time
}

func NewUploader(store Storage, logger *logrus.Logger) *Uploader {
	return &Uploader{Store: store, Logger: logger, MaxSize: MaxSize, Now: time.Now}
}

// PathFrom returns the public path stored by Single, or "" when no file was sent.
func PathFrom(c *gin.Context) string {
	return c.GetString(pathKey)
}

// Validate checks size, extension, declared MIME type and sniffed content.
// All of them must pass.
func (u *Uploader) Validate(fh *multipart.FileHeader) error {
	if fh.Size > u.MaxSize {
		return ErrTooLarge
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !imageExts[ext] {
		return ErrUnsupportedType
	}
	if !imageTypes.MatchString(strings.ToLower(fh.Header.Get("Content-Type"))) {
		return ErrUnsupportedType
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return err
	}
	if !mt.Is("image/jpeg") && !mt.Is("image/png") {
		return ErrUnsupportedType
	}
	return nil
}

// Single reads the file under field, validates it and stores it before the
// next handler runs. Requests without a file pass through untouched.
func (u *Uploader) Single(field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
			c.Next()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, u.MaxSize+formOverhead)

		fh, err := c.FormFile(field)
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				c.Next()
				return
			}
			u.reject(c, classify(err))
			return
		}
		if c.Request.MultipartForm != nil && len(c.Request.MultipartForm.File[field]) > 1 {
			u.reject(c, ErrTooManyFiles)
			return
		}
		if err := u.Validate(fh); err != nil {
			u.reject(c, err)
			return
		}

		publicPath, err := u.save(c, field, fh)
		if err != nil {
			helpers.LogError(u.Logger, "upload store failed", err, logrus.Fields{"request_id": c.GetString("request_id")})
			response.Abort(c, response.Error[any](c, http.StatusInternalServerError, "upload failed", nil))
			return
		}
		c.Set(pathKey, publicPath)
		c.Next()
	}
}

func (u *Uploader) save(c *gin.Context, field string, fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	for i := 0; i < maxRetries; i++ {
		f, err := fh.Open()
		if err != nil {
			return "", err
		}
		name := fmt.Sprintf("%s-%d%s", field, u.Now().UnixNano(), ext)
		p, err := u.Store.Save(c.Request.Context(), name, fh.Header.Get("Content-Type"), f)
		_ = f.Close()
		if errors.Is(err, ErrExists) {
			continue
		}
		return p, err
	}
	return "", ErrExists
}

func (u *Uploader) reject(c *gin.Context, err error) {
	helpers.LogInfo(u.Logger, "upload rejected", logrus.Fields{"request_id": c.GetString("request_id"), "error": err.Error()})
	response.Abort(c, response.Error[any](c, http.StatusBadRequest, err.Error(), nil))
}

func classify(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large") {
		return ErrTooLarge
	}
	return ErrInvalidForm
}
