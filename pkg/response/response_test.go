package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("request_id", "rid-1") })
	r.GET("/ok", func(c *gin.Context) {
		JSON(c, Success(c, http.StatusCreated, []string{}, "created", map[string]int{"n": 0}))
	})
	r.GET("/fail", func(c *gin.Context) {
		Abort(c, Error[any](c, http.StatusNotFound, "post not found", nil))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.Equal(t, http.StatusCreated, w.Code)
	var ok map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ok))
	assert.Equal(t, true, ok["success"])
	assert.Equal(t, "rid-1", ok["request_id"])
	assert.Equal(t, []any{}, ok["data"])
	assert.NotContains(t, ok, "error")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	var fail map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fail))
	assert.Equal(t, false, fail["success"])
	assert.Equal(t, "post not found", fail["message"])
	assert.EqualValues(t, http.StatusNotFound, fail["status"])
}

func TestDefaultStatuses(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, http.StatusOK, Success(c, 0, 1, "", nil).Status)
	assert.Equal(t, http.StatusBadRequest, Error[any](c, 0, "", nil).Status)
}
