package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"page-insights-backend/internal/domains/page"
)

type stubAcquisition struct {
	resp *page.AcquireResp
	err  error
}

func (s *stubAcquisition) Acquire(ctx context.Context, req page.AcquireRequest) (*page.AcquireResp, error) {
	return s.resp, s.err
}

type stubQuery struct {
	detail *page.PageDetailResp
	err    error
}

func (s *stubQuery) GetPage(ctx context.Context, pageID string, includePosts, includePeople bool) (*page.PageDetailResp, error) {
	return s.detail, s.err
}

func (s *stubQuery) ListPages(ctx context.Context, q page.ListPagesQuery) ([]page.PageSummaryResp, page.PaginationMeta, error) {
	return nil, page.PaginationMeta{}, s.err
}

func (s *stubQuery) GetPosts(ctx context.Context, pageID string, q page.ListPostsQuery) ([]page.Post, page.PaginationMeta, error) {
	return nil, page.PaginationMeta{}, s.err
}

func (s *stubQuery) GetPostComments(ctx context.Context, pageID, postID string, q page.ListQuery) ([]page.Comment, page.PaginationMeta, error) {
	return nil, page.PaginationMeta{}, s.err
}

func (s *stubQuery) GetPeople(ctx context.Context, pageID string, role page.Role, q page.ListQuery) ([]page.PersonProfile, page.PaginationMeta, error) {
	return nil, page.PaginationMeta{}, s.err
}

type stubAnalytics struct {
	snapshot *page.AnalyticsSnapshot
	err      error
}

func (s *stubAnalytics) GetAnalytics(ctx context.Context, pageID string) (*page.AnalyticsSnapshot, error) {
	return s.snapshot, s.err
}

func (s *stubAnalytics) RequestSummary(ctx context.Context, pageID string) error { return s.err }
func (s *stubAnalytics) GenerateSummary(ctx context.Context, pageID string) error { return s.err }

func newTestRouter(acq *stubAcquisition, q *stubQuery, a *stubAnalytics) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPageHandler(acq, q, a)

	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.POST("/pages/acquire", h.Acquire)
	v1.GET("/pages/:page_id", h.Get)
	v1.GET("/pages/:page_id/analytics", h.GetAnalytics)
	v1.POST("/pages/:page_id/summary", h.RequestSummary)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestAcquireReturns201(t *testing.T) {
	acq := &stubAcquisition{resp: &page.AcquireResp{
		PageID:     "acme-corp",
		Source:     page.SourceSynthetic,
		Depth:      3,
		PostsCount: 15,
		AcquiredAt: time.Now(),
	}}
	r := newTestRouter(acq, &stubQuery{}, &stubAnalytics{})

	w := doRequest(r, http.MethodPost, "/api/v1/pages/acquire",
		`{"identifier":"acme-corp","depth":3}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "acme-corp", data["page_id"])
	assert.Equal(t, "synthetic", data["source"])
}

func TestAcquireRejectsBadDepth(t *testing.T) {
	r := newTestRouter(&stubAcquisition{}, &stubQuery{}, &stubAnalytics{})

	w := doRequest(r, http.MethodPost, "/api/v1/pages/acquire",
		`{"identifier":"acme-corp","depth":7}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, false, body["success"])
}

func TestAcquireRejectsMissingIdentifier(t *testing.T) {
	r := newTestRouter(&stubAcquisition{}, &stubQuery{}, &stubAnalytics{})

	w := doRequest(r, http.MethodPost, "/api/v1/pages/acquire", `{"depth":2}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"page not found", page.ErrPageNotFound, http.StatusNotFound, "PAGE_NOT_FOUND"},
		{"acquisition failed", page.ErrAcquisitionFailed, http.StatusBadGateway, "ACQUISITION_FAILED"},
		{"storage failure", page.ErrStorage, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&stubAcquisition{}, &stubQuery{err: tt.err}, &stubAnalytics{})

			w := doRequest(r, http.MethodGet, "/api/v1/pages/acme-corp", "")
			assert.Equal(t, tt.wantStatus, w.Code)

			body := decodeEnvelope(t, w)
			errObj := body["error"].(map[string]interface{})
			assert.Equal(t, tt.wantCode, errObj["code"])
		})
	}
}

func TestInternalErrorsAreMasked(t *testing.T) {
	r := newTestRouter(&stubAcquisition{}, &stubQuery{err: page.ErrStorage}, &stubAnalytics{})

	w := doRequest(r, http.MethodGet, "/api/v1/pages/acme-corp", "")
	body := decodeEnvelope(t, w)
	errObj := body["error"].(map[string]interface{})
	assert.Equal(t, "Internal server error", errObj["message"])
}

func TestRequestSummaryAccepted(t *testing.T) {
	r := newTestRouter(&stubAcquisition{}, &stubQuery{}, &stubAnalytics{})

	w := doRequest(r, http.MethodPost, "/api/v1/pages/acme-corp/summary", "")
	assert.Equal(t, http.StatusAccepted, w.Code)

	body := decodeEnvelope(t, w)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "queued", data["status"])
}

func TestGetAnalytics(t *testing.T) {
	a := &stubAnalytics{snapshot: &page.AnalyticsSnapshot{
		PageID:            "acme-corp",
		TotalPosts:        15,
		AverageEngagement: 0.42,
	}}
	r := newTestRouter(&stubAcquisition{}, &stubQuery{}, a)

	w := doRequest(r, http.MethodGet, "/api/v1/pages/acme-corp/analytics", "")
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeEnvelope(t, w)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "acme-corp", data["page_id"])
	assert.InDelta(t, 0.42, data["average_engagement"], 1e-9)
}
