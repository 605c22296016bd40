package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0}, 64)...)
	jpegBytes = append([]byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"), bytes.Repeat([]byte{0}, 64)...)
)

type filePart struct {
	name        string
	contentType string
	body        []byte
}

func multipartBody(t *testing.T, fields map[string]string, files ...filePart) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, f.name))
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.body)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func newEngine(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)
	u := NewUploader(store, nil)

	r := gin.New()
	r.POST("/posts", u.Single("image"), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"image": PathFrom(c), "title": c.PostForm("title")})
	})
	return r, dir
}

func do(r http.Handler, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/posts", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSingleAcceptsImages(t *testing.T) {
	for _, f := range []filePart{
		{"photo.PNG", "image/png", pngBytes},
		{"photo.jpg", "image/jpeg", jpegBytes},
		{"photo.jpeg", "image/jpeg", jpegBytes},
	} {
		t.Run(f.name, func(t *testing.T) {
			r, dir := newEngine(t)
			body, ct := multipartBody(t, map[string]string{"title": "A"}, f)
			w := do(r, body, ct)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

			var got map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, "A", got["title"])
			assert.True(t, strings.HasPrefix(got["image"], "/uploads/image-"), got["image"])
			assert.Equal(t, strings.ToLower(filepath.Ext(f.name)), filepath.Ext(got["image"]))

			stored, err := os.ReadFile(filepath.Join(dir, filepath.Base(got["image"])))
			require.NoError(t, err)
			assert.Equal(t, f.body, stored)
		})
	}
}

func TestSingleRejects(t *testing.T) {
	big := append(append([]byte{}, pngBytes...), bytes.Repeat([]byte{0}, int(MaxSize))...)

	tests := []struct {
		name  string
		files []filePart
		msg   string
	}{
		{"gif extension", []filePart{{"anim.gif", "image/gif", []byte("GIF89a")}}, ErrUnsupportedType.Error()},
		{"png extension with gif mime", []filePart{{"anim.png", "image/gif", pngBytes}}, ErrUnsupportedType.Error()},
		{"declared png but text content", []filePart{{"fake.png", "image/png", []byte("hello world")}}, ErrUnsupportedType.Error()},
		{"oversize", []filePart{{"huge.png", "image/png", big}}, ErrTooLarge.Error()},
		{"two files", []filePart{{"a.png", "image/png", pngBytes}, {"b.png", "image/png", pngBytes}}, ErrTooManyFiles.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, dir := newEngine(t)
			body, ct := multipartBody(t, map[string]string{"title": "A"}, tt.files...)
			w := do(r, body, ct)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.msg)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestSingleWithoutFile(t *testing.T) {
	r, _ := newEngine(t)
	body, ct := multipartBody(t, map[string]string{"title": "A"})
	w := do(r, body, ct)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"image":"","title":"A"}`, w.Body.String())

	w = do(r, bytes.NewBufferString(`{"title":"A"}`), "application/json")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"image":"","title":""}`, w.Body.String())
}

type collidingStore struct {
	taken int
	saved []string
}

func (s *collidingStore) Save(_ context.Context, name, _ string, _ io.Reader) (string, error) {
	if s.taken > 0 {
		s.taken--
		return "", ErrExists
	}
	s.saved = append(s.saved, name)
	return "/uploads/" + name, nil
}

func TestSaveRetriesOnCollision(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &collidingStore{taken: 2}
	u := NewUploader(store, nil)
	var tick int64
	u.Now = func() time.Time { tick++; return time.Unix(0, tick) }

	r := gin.New()
	r.POST("/posts", u.Single("image"), func(c *gin.Context) {
		c.String(http.StatusCreated, PathFrom(c))
	})
	body, ct := multipartBody(t, nil, filePart{"a.png", "image/png", pngBytes})
	w := do(r, body, ct)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/uploads/image-3.png", w.Body.String())
	assert.Equal(t, []string{"image-3.png"}, store.saved)
}
