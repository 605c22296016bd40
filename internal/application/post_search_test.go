package application

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-blog-api/pkg/helpers"
)

func newSearchService(t *testing.T, status int, body string) *PostService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	es, err := helpers.NewESClient([]string{srv.URL}, "", "")
	require.NoError(t, err)
	return NewPostService(nil, nil, helpers.NewDiscardLogger(), es, "posts")
}

func TestSearchReturnsHits(t *testing.T) {
	svc := newSearchService(t, http.StatusOK, `{"hits":{"hits":[{"_id":"1","_source":{"title":"Go"}}]}}`)

	hits, err := svc.Search(context.Background(), "go", 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Go", hits[0]["title"])
}

func TestSearchErrorStatusFails(t *testing.T) {
	svc := newSearchService(t, http.StatusBadRequest, `{"error":{"type":"search_phase_execution_exception"},"status":400}`)

	hits, err := svc.Search(context.Background(), "go", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Nil(t, hits)
}
